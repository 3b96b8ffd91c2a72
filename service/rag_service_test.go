package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dbarkol/telco-ai-solution-labs/types"
)

type fakeEmbedder struct {
	vector []float32
	err    error
	calls  int
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	return f.vector, f.err
}

type fakeSearcher struct {
	matches []types.RetrievedMatch
	err     error
}

func (f *fakeSearcher) HybridSearch(ctx context.Context, query string, vector []float32, limit int) ([]types.RetrievedMatch, error) {
	return f.matches, f.err
}

type fakeGenerator struct {
	answer     string
	err        error
	calls      int
	lastSystem string
	lastUser   string
}

func (f *fakeGenerator) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.calls++
	f.lastSystem = systemPrompt
	f.lastUser = userPrompt
	return f.answer, f.err
}

func newTestRAG(searcher *fakeSearcher, generator *fakeGenerator) *RAGService {
	return NewRAGService(
		&fakeEmbedder{vector: []float32{0.1, 0.2}},
		searcher,
		generator,
		NewRankedFusionPolicy(),
		5,
	)
}

func TestQueryZeroMatchesShortCircuits(t *testing.T) {
	generator := &fakeGenerator{answer: "should never be used"}
	rag := newTestRAG(&fakeSearcher{}, generator)

	resp, err := rag.Query(context.Background(), "how do I reboot?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Answer != notFoundAnswer {
		t.Errorf("unexpected answer %q", resp.Answer)
	}
	if resp.Confidence != types.ConfidenceLow {
		t.Errorf("confidence = %s, want low", resp.Confidence)
	}
	if len(resp.Sources) != 0 {
		t.Errorf("expected empty sources, got %v", resp.Sources)
	}
	if generator.calls != 0 {
		t.Errorf("generation service was called %d times for zero matches", generator.calls)
	}
}

func TestQueryConfidenceThresholds(t *testing.T) {
	tests := []struct {
		topScore float64
		want     types.Confidence
	}{
		{0.05, types.ConfidenceHigh},
		{0.025, types.ConfidenceMedium},
		{0.01, types.ConfidenceLow},
	}
	for _, tt := range tests {
		searcher := &fakeSearcher{matches: []types.RetrievedMatch{
			{ChunkID: "chunk_0000", Content: "Hold the reset button.", PageNumbers: []int{12}, Score: tt.topScore},
		}}
		rag := newTestRAG(searcher, &fakeGenerator{answer: "Hold the reset button for ten seconds."})

		resp, err := rag.Query(context.Background(), "reset?")
		if err != nil {
			t.Fatalf("score %v: unexpected error: %v", tt.topScore, err)
		}
		if resp.Confidence != tt.want {
			t.Errorf("score %v: confidence = %s, want %s", tt.topScore, resp.Confidence, tt.want)
		}
	}
}

func TestQueryBuildsContextAndSources(t *testing.T) {
	searcher := &fakeSearcher{matches: []types.RetrievedMatch{
		{ChunkID: "chunk_0003", Content: "Check the LED color.", PageNumbers: []int{7, 8}, SectionTitle: "Troubleshooting", Score: 0.04},
		{ChunkID: "chunk_0009", Content: "Power cycle the device.", PageNumbers: []int{12}, Score: 0.02},
	}}
	generator := &fakeGenerator{answer: "Check the LED, then power cycle (page 7)."}
	rag := newTestRAG(searcher, generator)

	resp, err := rag.Query(context.Background(), "my internet is down")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantContext := "[Source 1 - Page 7, 8 (Troubleshooting)]\nCheck the LED color.\n" +
		"\n---\n" +
		"[Source 2 - Page 12]\nPower cycle the device.\n"
	if !strings.Contains(generator.lastSystem, wantContext) {
		t.Errorf("system prompt missing context block.\ngot:\n%s", generator.lastSystem)
	}
	if generator.lastUser != "my internet is down" {
		t.Errorf("user prompt = %q", generator.lastUser)
	}

	if len(resp.Sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(resp.Sources))
	}
	if resp.Sources[0].RelevanceScore != 0.04 || resp.Sources[0].Section != "Troubleshooting" {
		t.Errorf("unexpected first source %+v", resp.Sources[0])
	}
	if resp.Confidence != types.ConfidenceHigh {
		t.Errorf("confidence = %s, want high", resp.Confidence)
	}
}

func TestQueryGenerationFailure(t *testing.T) {
	searcher := &fakeSearcher{matches: []types.RetrievedMatch{
		{ChunkID: "chunk_0000", Content: "text", PageNumbers: []int{1}, Score: 0.04},
	}}
	wantErr := errors.New("completion timed out")
	rag := newTestRAG(searcher, &fakeGenerator{err: wantErr})

	if _, err := rag.Query(context.Background(), "q"); !errors.Is(err, wantErr) {
		t.Errorf("expected wrapped generation error, got %v", err)
	}
}

func TestQueryEmptyCompletion(t *testing.T) {
	searcher := &fakeSearcher{matches: []types.RetrievedMatch{
		{ChunkID: "chunk_0000", Content: "text", PageNumbers: []int{1}, Score: 0.04},
	}}
	rag := newTestRAG(searcher, &fakeGenerator{answer: "   \n"})

	if _, err := rag.Query(context.Background(), "q"); !errors.Is(err, ErrEmptyCompletion) {
		t.Errorf("expected ErrEmptyCompletion, got %v", err)
	}
}

func TestQueryEmbedFailure(t *testing.T) {
	wantErr := errors.New("rate limited")
	rag := NewRAGService(
		&fakeEmbedder{err: wantErr},
		&fakeSearcher{},
		&fakeGenerator{},
		nil,
		0,
	)
	if _, err := rag.Query(context.Background(), "q"); !errors.Is(err, wantErr) {
		t.Errorf("expected wrapped embed error, got %v", err)
	}
}

func TestRankedFusionPolicyBoundaries(t *testing.T) {
	policy := NewRankedFusionPolicy()
	// Thresholds are exclusive: a score exactly at the boundary stays in the
	// lower class.
	if got := policy.Confidence(0.03); got != types.ConfidenceMedium {
		t.Errorf("Confidence(0.03) = %s, want medium", got)
	}
	if got := policy.Confidence(0.02); got != types.ConfidenceLow {
		t.Errorf("Confidence(0.02) = %s, want low", got)
	}
	if got := policy.Confidence(0.0301); got != types.ConfidenceHigh {
		t.Errorf("Confidence(0.0301) = %s, want high", got)
	}
}
