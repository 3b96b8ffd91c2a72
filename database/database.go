package database

import (
	"context"

	"github.com/dbarkol/telco-ai-solution-labs/types"
)

// VectorStore is the hybrid lexical+vector index the pipeline runs against.
type VectorStore interface {
	// EnsureSchema creates the index class if it does not exist yet.
	EnsureSchema(ctx context.Context) error
	// Reset drops and recreates the index class.
	Reset(ctx context.Context) error
	// BatchUpsert uploads documents in batches of batchSize, overwriting
	// documents that share a chunk identifier.
	BatchUpsert(ctx context.Context, docs []types.SearchDocument, batchSize int) error
	// HybridSearch combines BM25 and vector search over the index and returns
	// the top matches with their fusion score.
	HybridSearch(ctx context.Context, query string, vector []float32, limit int) ([]types.RetrievedMatch, error)
	// DeleteIndex removes the index class entirely.
	DeleteIndex(ctx context.Context) error
}
