package database

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/dbarkol/telco-ai-solution-labs/types"
	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
)

// WeaviateStore implements VectorStore on a Weaviate class holding one object
// per manual chunk. Vectors are supplied by the caller (vectorizer "none"), so
// the embedding model stays outside the store. Hybrid search uses ranked
// (reciprocal-rank) fusion; confidence thresholds elsewhere are calibrated to
// that score scale.
type WeaviateStore struct {
	client     *weaviate.Client
	className  string
	dimensions int
}

func NewWeaviateStore(host, apiKey, className string, dimensions int) (*WeaviateStore, error) {
	var scheme string
	if strings.Contains(host, "https") {
		scheme = "https"
	} else {
		scheme = "http"
	}
	host = strings.TrimPrefix(host, scheme+"://")

	cfg := weaviate.Config{
		Host:   host,
		Scheme: scheme,
	}
	if apiKey != "" {
		cfg.AuthConfig = auth.ApiKey{Value: apiKey}
	}
	client, err := weaviate.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create weaviate client: %w", err)
	}
	return &WeaviateStore{
		client:     client,
		className:  className,
		dimensions: dimensions,
	}, nil
}

// classObject declares the chunk schema. HNSW parameters trade recall against
// latency and memory; ef/efConstruction follow the reference deployment.
func (s *WeaviateStore) classObject() *models.Class {
	return &models.Class{
		Class:       s.className,
		Description: "One chunk of the device reference manual",
		Vectorizer:  "none",
		Properties: []*models.Property{
			{Name: "chunkId", DataType: []string{"text"}},
			{Name: "content", DataType: []string{"text"}},
			{Name: "pageNumbers", DataType: []string{"int[]"}},
			{Name: "sectionTitle", DataType: []string{"text"}},
			{Name: "chunkIndex", DataType: []string{"int"}},
			{Name: "documentName", DataType: []string{"text"}},
			{Name: "indexedAt", DataType: []string{"date"}},
		},
		VectorIndexType: "hnsw",
		VectorIndexConfig: map[string]interface{}{
			"distance":       "cosine",
			"maxConnections": 16,
			"efConstruction": 400,
			"ef":             500,
		},
	}
}

// EnsureSchema creates the class when it is missing and leaves an existing
// class untouched, so re-indexing against an unchanged schema is a no-op here.
func (s *WeaviateStore) EnsureSchema(ctx context.Context) error {
	schema, err := s.client.Schema().Getter().Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to get schema: %w", err)
	}
	for _, class := range schema.Classes {
		if class.Class == s.className {
			return nil
		}
	}
	if err := s.client.Schema().ClassCreator().WithClass(s.classObject()).Do(ctx); err != nil {
		return fmt.Errorf("failed to create %s class: %w", s.className, err)
	}
	return nil
}

// Reset drops and recreates the class.
func (s *WeaviateStore) Reset(ctx context.Context) error {
	if err := s.client.Schema().ClassDeleter().WithClassName(s.className).Do(ctx); err != nil {
		return fmt.Errorf("failed to delete %s class: %w", s.className, err)
	}
	if err := s.client.Schema().ClassCreator().WithClass(s.classObject()).Do(ctx); err != nil {
		return fmt.Errorf("failed to create %s class: %w", s.className, err)
	}
	return nil
}

// DeleteIndex removes the class and everything in it.
func (s *WeaviateStore) DeleteIndex(ctx context.Context) error {
	return s.client.Schema().ClassDeleter().WithClassName(s.className).Do(ctx)
}

// BatchUpsert uploads documents in batches. Object IDs are derived
// deterministically from document name and chunk ID, so re-running an indexing
// job overwrites the previous run instead of duplicating it.
func (s *WeaviateStore) BatchUpsert(ctx context.Context, docs []types.SearchDocument, batchSize int) error {
	total := len(docs)
	for i := 0; i < total; i += batchSize {
		end := i + batchSize
		if end > total {
			end = total
		}

		batcher := s.client.Batch().ObjectsBatcher()
		for j := i; j < end; j++ {
			doc := docs[j]
			if len(doc.ContentVector) != s.dimensions {
				return fmt.Errorf("chunk %s: vector has %d dimensions, index expects %d",
					doc.ChunkID, len(doc.ContentVector), s.dimensions)
			}
			batcher = batcher.WithObjects(&models.Object{
				Class: s.className,
				ID:    chunkObjectID(doc.DocumentName, doc.ChunkID),
				Properties: map[string]interface{}{
					"chunkId":      doc.ChunkID,
					"content":      doc.Content,
					"pageNumbers":  doc.PageNumbers,
					"sectionTitle": doc.SectionTitle,
					"chunkIndex":   doc.ChunkIndex,
					"documentName": doc.DocumentName,
					"indexedAt":    doc.IndexedAt.Format(time.RFC3339),
				},
				Vector: doc.ContentVector,
			})
		}

		resp, err := batcher.Do(ctx)
		if err != nil {
			return fmt.Errorf("failed to upload batch %d-%d: %w", i, end, err)
		}
		for _, obj := range resp {
			if obj.Result != nil && obj.Result.Errors != nil && len(obj.Result.Errors.Error) > 0 {
				return fmt.Errorf("failed to upload object %s: %s", obj.ID, obj.Result.Errors.Error[0].Message)
			}
		}
		log.Printf("Uploaded batch %d-%d of %d chunks", i, end, total)
	}
	return nil
}

// HybridSearch runs the combined BM25 + vector query and returns the matches
// with their ranked-fusion score.
func (s *WeaviateStore) HybridSearch(ctx context.Context, query string, vector []float32, limit int) ([]types.RetrievedMatch, error) {
	fields := []graphql.Field{
		{Name: "chunkId"},
		{Name: "content"},
		{Name: "pageNumbers"},
		{Name: "sectionTitle"},
		{Name: "_additional", Fields: []graphql.Field{{Name: "score"}}},
	}
	hybrid := (&graphql.HybridArgumentBuilder{}).
		WithQuery(query).
		WithVector(vector).
		WithFusionType(graphql.Ranked)

	result, err := s.client.GraphQL().Get().
		WithClassName(s.className).
		WithFields(fields...).
		WithHybrid(hybrid).
		WithLimit(limit).
		Do(ctx)
	if err != nil {
		return nil, err
	}
	if result.Errors != nil {
		return nil, fmt.Errorf("hybrid search failed: %v", result.Errors[0].Message)
	}

	var matches []types.RetrievedMatch
	get, ok := result.Data["Get"].(map[string]interface{})
	if !ok {
		return matches, nil
	}
	data, ok := get[s.className].([]interface{})
	if !ok {
		return matches, nil
	}
	for _, item := range data {
		doc, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		match := types.RetrievedMatch{
			ChunkID:      asString(doc["chunkId"]),
			Content:      asString(doc["content"]),
			PageNumbers:  asIntSlice(doc["pageNumbers"]),
			SectionTitle: asString(doc["sectionTitle"]),
		}
		if additional, ok := doc["_additional"].(map[string]interface{}); ok {
			match.Score = asScore(additional["score"])
		}
		matches = append(matches, match)
	}
	return matches, nil
}

// chunkObjectID derives a stable UUID from the document and chunk identity.
func chunkObjectID(documentName, chunkID string) strfmt.UUID {
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte("weaviate://"+documentName+"/"+chunkID))
	return strfmt.UUID(id.String())
}

// Helper functions for the loosely typed GraphQL results.

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asIntSlice(v interface{}) []int {
	arr, ok := v.([]interface{})
	if !ok {
		return nil
	}
	result := make([]int, 0, len(arr))
	for _, item := range arr {
		if f, ok := item.(float64); ok {
			result = append(result, int(f))
		}
	}
	return result
}

// asScore handles both encodings Weaviate uses for _additional.score.
func asScore(v interface{}) float64 {
	switch value := v.(type) {
	case float64:
		return value
	case string:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
