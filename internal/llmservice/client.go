package llmservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"study-rag/internal/config"
	"study-rag/internal/models"
)

// Completer is the single boundary to the generation service. A retry
// policy can wrap it without touching callers.
type Completer interface {
	Complete(ctx context.Context, prompt string, jsonMode bool) (string, error)
}

// Client calls the configured chat model through langchaingo.
type Client struct {
	llm     llms.Model
	timeout time.Duration
}

// NewClient builds the LLM client for the configured provider.
func NewClient(cfg *config.LLMConfig) (*Client, error) {
	var llm llms.Model
	var err error
	switch cfg.Provider {
	case "", "openai":
		if cfg.Key == "" {
			return nil, fmt.Errorf("%w: no API key for generation service", models.ErrConfiguration)
		}
		llm, err = openai.New(
			openai.WithBaseURL(cfg.BaseURL),
			openai.WithToken(strings.TrimPrefix(cfg.Key, "Bearer ")),
			openai.WithModel(cfg.Model),
		)
	case "ollama":
		llm, err = ollama.New(
			ollama.WithServerURL(cfg.BaseURL),
			ollama.WithModel(cfg.Model),
		)
	default:
		return nil, fmt.Errorf("%w: unknown inference provider %q", models.ErrConfiguration, cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: initializing LLM: %v", models.ErrConfiguration, err)
	}
	return &Client{llm: llm, timeout: cfg.Timeout()}, nil
}

// Complete sends a single-prompt request and returns the raw text
// response. jsonMode asks the service for strict JSON output where the
// provider supports it. The call is bounded by the configured timeout.
func (c *Client) Complete(ctx context.Context, prompt string, jsonMode bool) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextContent{Text: prompt}},
		},
	}

	var opts []llms.CallOption
	if jsonMode {
		opts = append(opts, llms.WithJSONMode())
	}

	res, err := c.llm.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrModelService, err)
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", models.ErrModelService)
	}
	return res.Choices[0].Content, nil
}
