package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIGenerator produces answers through the OpenAI chat completions
// API.
type OpenAIGenerator struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIGenerator creates a generator using the OPENAI_API_KEY
// environment variable. timeout bounds each call; zero means two
// minutes.
func NewOpenAIGenerator(model string, timeout time.Duration) (*OpenAIGenerator, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, errors.New("OPENAI_API_KEY environment variable not set")
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	if timeout == 0 {
		timeout = 2 * time.Minute
	}
	return &OpenAIGenerator{
		client:  openai.NewClient(key),
		model:   model,
		timeout: timeout,
	}, nil
}

// Generate runs a single-turn chat completion for prompt.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: float32(opts.Temperature),
		TopP:        float32(opts.TopP),
		MaxTokens:   opts.NumPredict,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai chat completion: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// ModelName returns the generation model identifier.
func (g *OpenAIGenerator) ModelName() string {
	return "openai-" + g.model
}
