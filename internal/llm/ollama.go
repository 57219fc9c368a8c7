package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
	"github.com/ollama/ollama/envconfig"
)

// OllamaGenerator produces answers through the Ollama generate API.
type OllamaGenerator struct {
	client  *api.Client
	model   string
	timeout time.Duration
}

// NewOllamaGenerator creates a generator against the given Ollama host.
// An empty host falls back to the OLLAMA_HOST environment variable.
// timeout bounds each generation call; zero means two minutes.
func NewOllamaGenerator(host, model string, timeout time.Duration) (*OllamaGenerator, error) {
	hostURL := envconfig.Host()
	if host != "" {
		parsed, err := url.Parse(host)
		if err != nil {
			return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
		}
		hostURL = parsed
	}
	if timeout == 0 {
		timeout = 2 * time.Minute
	}
	client := api.NewClient(hostURL, http.DefaultClient)

	return &OllamaGenerator{
		client:  client,
		model:   model,
		timeout: timeout,
	}, nil
}

// Generate runs a non-streaming completion for prompt and returns the
// accumulated response text.
func (g *OllamaGenerator) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req := api.GenerateRequest{
		Model:  g.model,
		Prompt: prompt,
		Options: map[string]any{
			"temperature": opts.Temperature,
			"top_p":       opts.TopP,
		},
	}
	if opts.NumPredict > 0 {
		req.Options["num_predict"] = opts.NumPredict
	}

	var responseBuilder strings.Builder
	err := g.client.Generate(ctx, &req, func(resp api.GenerateResponse) error {
		_, err := responseBuilder.WriteString(resp.Response)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}

	return responseBuilder.String(), nil
}

// ModelName returns the generation model identifier.
func (g *OllamaGenerator) ModelName() string {
	return g.model
}
