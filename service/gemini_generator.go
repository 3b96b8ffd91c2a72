package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiGenerator is the alternative generation backend. Multiple API keys can
// be supplied; on a failed request the service rotates to the next key and
// retries once.
type GeminiGenerator struct {
	apiKeys    []string
	currentKey int
	client     *genai.Client
	modelName  string
	mu         sync.Mutex
}

func NewGeminiGenerator(apiKeys []string, modelName string) (*GeminiGenerator, error) {
	if len(apiKeys) == 0 {
		return nil, errors.New("no API keys provided")
	}
	g := &GeminiGenerator{
		apiKeys:   apiKeys,
		modelName: modelName,
	}
	if err := g.initClient(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *GeminiGenerator) initClient() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(g.apiKeys[g.currentKey]))
	if err != nil {
		return err
	}
	g.client = client
	return nil
}

func (g *GeminiGenerator) rotateAPIKey() error {
	g.mu.Lock()
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
	if err := g.client.Close(); err != nil {
		g.mu.Unlock()
		return err
	}
	g.mu.Unlock()
	return g.initClient()
}

func (g *GeminiGenerator) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := g.generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		// Try the next key once before giving up.
		if rotateErr := g.rotateAPIKey(); rotateErr != nil {
			return "", rotateErr
		}
		resp, err = g.generate(ctx, systemPrompt, userPrompt)
		if err != nil {
			return "", err
		}
	}

	if len(resp.Candidates) == 0 {
		return "", errors.New("no response generated")
	}
	content := ""
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				content += string(text)
			}
		}
	}
	return content, nil
}

func (g *GeminiGenerator) generate(ctx context.Context, systemPrompt, userPrompt string) (*genai.GenerateContentResponse, error) {
	model := g.client.GenerativeModel(g.modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}
	model.SetTemperature(answerTemperature)
	model.SetMaxOutputTokens(maxAnswerTokens)
	return model.GenerateContent(ctx, genai.Text(userPrompt))
}
