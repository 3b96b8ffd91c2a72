package service

import (
	"context"
	"errors"
	"io"

	"github.com/dbarkol/telco-ai-solution-labs/types"
	openai "github.com/sashabaranov/go-openai"
)

const (
	// Low temperature biases toward deterministic, factual phrasing.
	answerTemperature = 0.3
	maxAnswerTokens   = 1000
)

// OpenAIGenerator produces answers through a chat completion endpoint.
// Generation failures are not retried here: the caller surfaces them and the
// user decides whether to ask again.
type OpenAIGenerator struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

func NewOpenAIGenerator(clientConfig openai.ClientConfig, model string) *OpenAIGenerator {
	return &OpenAIGenerator{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       model,
		temperature: answerTemperature,
		maxTokens:   maxAnswerTokens,
	}
}

func (g *OpenAIGenerator) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Messages:    g.messages(systemPrompt, userPrompt),
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response generated")
	}
	return resp.Choices[0].Message.Content, nil
}

// CompleteStream streams the answer through handler and returns the full text.
func (g *OpenAIGenerator) CompleteStream(ctx context.Context, systemPrompt, userPrompt string, handler types.StreamHandler) (string, error) {
	stream, err := g.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Messages:    g.messages(systemPrompt, userPrompt),
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
	})
	if err != nil {
		return "", err
	}
	defer stream.Close()

	var full []byte
	for {
		resp, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return string(full), nil
			}
			return "", err
		}
		if len(resp.Choices) == 0 {
			continue
		}
		delta := resp.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		full = append(full, delta...)
		handler(delta)
	}
}

func (g *OpenAIGenerator) messages(systemPrompt, userPrompt string) []openai.ChatCompletionMessage {
	return []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: userPrompt},
	}
}
