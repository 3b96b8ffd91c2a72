package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dbarkol/telco-ai-solution-labs/types"
	"github.com/dbarkol/telco-ai-solution-labs/utils"
)

// uploadBatchSize caps how many documents go into one index upload call.
const uploadBatchSize = 100

// BatchEmbedder is the embedding surface the indexing job needs.
type BatchEmbedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Indexer is the index-store surface the indexing job needs.
type Indexer interface {
	EnsureSchema(ctx context.Context) error
	BatchUpsert(ctx context.Context, docs []types.SearchDocument, batchSize int) error
}

// IndexSummary reports what one indexing run produced.
type IndexSummary struct {
	DocumentName  string
	TotalPages    int
	TotalChunks   int
	PagesCovered  int
	EmbeddingDims int
	Duration      time.Duration
}

// IndexingService runs the one-shot batch pipeline:
// extract -> chunk -> embed -> upload. It is not safe against partial failure;
// re-running it overwrites the previous run's chunks.
type IndexingService struct {
	documents *DocumentService
	chunker   *ChunkerService
	embedder  BatchEmbedder
	store     Indexer
}

func NewIndexingService(documents *DocumentService, chunker *ChunkerService, embedder BatchEmbedder, store Indexer) *IndexingService {
	return &IndexingService{
		documents: documents,
		chunker:   chunker,
		embedder:  embedder,
		store:     store,
	}
}

// Run indexes one document end to end and returns a summary.
func (s *IndexingService) Run(ctx context.Context, documentPath string) (*IndexSummary, error) {
	start := time.Now()
	documentName := utils.GetFileNameWithoutExt(documentPath)

	if err := s.store.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to prepare index schema: %w", err)
	}

	pages, err := s.documents.ExtractPages(documentPath)
	if err != nil {
		return nil, fmt.Errorf("failed to extract %s: %w", documentPath, err)
	}
	chunks := s.chunker.ChunkPages(pages)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no text extracted from %s", documentPath)
	}
	log.Printf("Created %d chunks from %d pages", len(chunks), len(pages))

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}
	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("embedding count mismatch: %d chunks, %d vectors", len(chunks), len(vectors))
	}

	// One timestamp for the whole run so all chunks version together.
	indexedAt := time.Now().UTC()
	docs := make([]types.SearchDocument, len(chunks))
	for i, chunk := range chunks {
		docs[i] = types.SearchDocument{
			ChunkID:       chunk.ChunkID,
			Content:       chunk.Content,
			ContentVector: vectors[i],
			PageNumbers:   chunk.PageNumbers,
			SectionTitle:  chunk.SectionTitle,
			ChunkIndex:    chunk.ChunkIndex,
			DocumentName:  documentName,
			IndexedAt:     indexedAt,
		}
	}
	if err := s.store.BatchUpsert(ctx, docs, uploadBatchSize); err != nil {
		return nil, fmt.Errorf("failed to upload documents: %w", err)
	}

	covered := make(map[int]bool)
	for _, chunk := range chunks {
		for _, p := range chunk.PageNumbers {
			covered[p] = true
		}
	}
	dims := 0
	if len(vectors) > 0 {
		dims = len(vectors[0])
	}
	return &IndexSummary{
		DocumentName:  documentName,
		TotalPages:    len(pages),
		TotalChunks:   len(chunks),
		PagesCovered:  len(covered),
		EmbeddingDims: dims,
		Duration:      time.Since(start),
	}, nil
}
