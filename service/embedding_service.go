package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"
	openai "github.com/sashabaranov/go-openai"
)

// embedBatchSize caps how many texts go into a single embeddings request. The
// limit exists to respect provider payload limits, not for parallelism:
// sub-batches are issued sequentially and results concatenated in input order.
const embedBatchSize = 16

const (
	embedMaxRetries      = 2 // 3 attempts total
	embedInitialInterval = 2 * time.Second
	embedMaxInterval     = 10 * time.Second
)

// EmbeddingService turns text into dense vectors via an OpenAI-compatible
// embeddings endpoint. Transient failures are retried with exponential backoff.
type EmbeddingService struct {
	client          *openai.Client
	model           string
	batchSize       int
	initialInterval time.Duration
	maxInterval     time.Duration
}

func NewEmbeddingService(clientConfig openai.ClientConfig, model string) *EmbeddingService {
	return &EmbeddingService{
		client:          openai.NewClientWithConfig(clientConfig),
		model:           model,
		batchSize:       embedBatchSize,
		initialInterval: embedInitialInterval,
		maxInterval:     embedMaxInterval,
	}
}

// Embed returns the vector for a single text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := s.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch embeds all texts, splitting the work into fixed-size sub-batches.
// The result has exactly one vector per input, in input order.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	all := make([][]float32, 0, len(texts))
	for i := 0; i < len(texts); i += s.batchSize {
		end := i + s.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch := texts[i:end]

		resp, err := s.createWithRetry(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("failed to embed batch %d-%d: %w", i, end, err)
		}
		if len(resp.Data) != len(batch) {
			return nil, fmt.Errorf("embedding count mismatch: sent %d texts, got %d vectors", len(batch), len(resp.Data))
		}

		// The API reports each item's position; order by it rather than
		// trusting response order.
		ordered := make([][]float32, len(batch))
		for _, item := range resp.Data {
			if item.Index < 0 || item.Index >= len(batch) {
				return nil, fmt.Errorf("embedding index %d out of range for batch of %d", item.Index, len(batch))
			}
			ordered[item.Index] = item.Embedding
		}
		all = append(all, ordered...)
	}
	return all, nil
}

func (s *EmbeddingService) createWithRetry(ctx context.Context, batch []string) (openai.EmbeddingResponse, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = s.initialInterval
	policy.MaxInterval = s.maxInterval

	var resp openai.EmbeddingResponse
	err := backoff.Retry(func() error {
		var err error
		resp, err = s.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Input: batch,
			Model: openai.EmbeddingModel(s.model),
		})
		if err != nil {
			log.Printf("Embedding request failed, will retry: %v", err)
		}
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(policy, embedMaxRetries), ctx))
	return resp, err
}
