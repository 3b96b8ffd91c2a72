package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dbarkol/telco-ai-solution-labs/types"
)

// systemPromptTemplate is the grounding policy for the generation step. The
// assembled context block is interpolated into %s.
const systemPromptTemplate = `You are a helpful support assistant for a 5G home internet gateway.
Your role is to answer troubleshooting questions about the gateway device
using ONLY the information provided in the context below.

IMPORTANT GUIDELINES:
1. Only answer based on the provided context. If the answer is not in the context, say so clearly.
2. Be specific and provide step-by-step instructions when applicable.
3. Always cite the page number(s) where you found the information (e.g., "According to page 12...").
4. If the question is unclear, ask for clarification.
5. Format your response clearly with numbered steps for procedures.
6. If multiple solutions exist, present them in order of likelihood to resolve the issue.

CONTEXT FROM DOCUMENTATION:
%s

Remember: Only use information from the context above. Do not make up information or provide general advice not grounded in the documentation.`

// notFoundAnswer is the fixed response for zero retrieval matches. Not an
// error: a defined low-confidence terminal outcome.
const notFoundAnswer = "I couldn't find relevant information in the documentation to answer your question. Please try rephrasing or ask about a different topic covered by the gateway manual."

// contextBlockSeparator visually divides source blocks in the prompt.
const contextBlockSeparator = "\n---\n"

// ErrEmptyCompletion is returned when the generation service produced no
// content for a non-empty context.
var ErrEmptyCompletion = errors.New("generation service returned empty content")

// Embedder produces a dense vector for one piece of text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Searcher is the hybrid retrieval surface of the index store.
type Searcher interface {
	HybridSearch(ctx context.Context, query string, vector []float32, limit int) ([]types.RetrievedMatch, error)
}

// Generator produces an answer from a system prompt and a user prompt.
type Generator interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// StreamGenerator is implemented by generators that can stream the answer.
type StreamGenerator interface {
	CompleteStream(ctx context.Context, systemPrompt, userPrompt string, handler types.StreamHandler) (string, error)
}

// RAGService orchestrates one query: embed, hybrid search, context assembly,
// grounded generation, confidence. It holds no mutable state between queries.
type RAGService struct {
	embedder  Embedder
	store     Searcher
	generator Generator
	policy    ScorePolicy
	topK      int
}

func NewRAGService(embedder Embedder, store Searcher, generator Generator, policy ScorePolicy, topK int) *RAGService {
	if policy == nil {
		policy = NewRankedFusionPolicy()
	}
	if topK <= 0 {
		topK = 5
	}
	return &RAGService{
		embedder:  embedder,
		store:     store,
		generator: generator,
		policy:    policy,
		topK:      topK,
	}
}

// Retrieve embeds the query and asks the store for the top-K hybrid matches.
func (s *RAGService) Retrieve(ctx context.Context, query string) ([]types.RetrievedMatch, error) {
	return s.RetrieveTop(ctx, query, s.topK)
}

func (s *RAGService) RetrieveTop(ctx context.Context, query string, limit int) ([]types.RetrievedMatch, error) {
	if limit <= 0 {
		limit = s.topK
	}
	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	matches, err := s.store.HybridSearch(ctx, query, vector, limit)
	if err != nil {
		return nil, fmt.Errorf("hybrid search failed: %w", err)
	}
	return matches, nil
}

// Query runs the full retrieve-augment-generate flow.
func (s *RAGService) Query(ctx context.Context, userQuery string) (*types.RAGResponse, error) {
	return s.query(ctx, userQuery, nil)
}

// QueryStream is Query with the answer streamed through handler as it is
// generated. The returned response carries the complete answer.
func (s *RAGService) QueryStream(ctx context.Context, userQuery string, handler types.StreamHandler) (*types.RAGResponse, error) {
	return s.query(ctx, userQuery, handler)
}

func (s *RAGService) query(ctx context.Context, userQuery string, handler types.StreamHandler) (*types.RAGResponse, error) {
	matches, err := s.Retrieve(ctx, userQuery)
	if err != nil {
		return nil, err
	}

	if len(matches) == 0 {
		return &types.RAGResponse{
			Answer:     notFoundAnswer,
			Sources:    []types.SourceCitation{},
			Confidence: types.ConfidenceLow,
		}, nil
	}

	systemPrompt := fmt.Sprintf(systemPromptTemplate, formatContext(matches))

	var answer string
	if sg, ok := s.generator.(StreamGenerator); ok && handler != nil {
		answer, err = sg.CompleteStream(ctx, systemPrompt, userQuery, handler)
	} else {
		answer, err = s.generator.Complete(ctx, systemPrompt, userQuery)
		if err == nil && handler != nil {
			handler(answer)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}
	if strings.TrimSpace(answer) == "" {
		return nil, ErrEmptyCompletion
	}

	sources := make([]types.SourceCitation, 0, len(matches))
	for _, m := range matches {
		sources = append(sources, types.SourceCitation{
			Pages:          m.PageNumbers,
			Section:        m.SectionTitle,
			RelevanceScore: m.Score,
		})
	}

	return &types.RAGResponse{
		Answer:     answer,
		Sources:    sources,
		Confidence: s.policy.Confidence(matches[0].Score),
	}, nil
}

// formatContext renders the matches as labeled source blocks in ranked order.
func formatContext(matches []types.RetrievedMatch) string {
	parts := make([]string, 0, len(matches))
	for i, m := range matches {
		section := ""
		if m.SectionTitle != "" {
			section = fmt.Sprintf(" (%s)", m.SectionTitle)
		}
		parts = append(parts, fmt.Sprintf("[Source %d - Page %s%s]\n%s\n",
			i+1, joinPages(m.PageNumbers), section, m.Content))
	}
	return strings.Join(parts, contextBlockSeparator)
}

func joinPages(pages []int) string {
	strs := make([]string, len(pages))
	for i, p := range pages {
		strs[i] = strconv.Itoa(p)
	}
	return strings.Join(strs, ", ")
}
