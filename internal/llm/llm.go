// Package llm wraps langchaingo behind the small surface the agent
// needs: one Generate call that may return text, tool calls, or both.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"
)

// Config selects the provider and generation settings.
type Config struct {
	Provider    string
	Model       string
	Temperature float64
	MaxTokens   int
}

// ToolCall is one function invocation requested by the model.
type ToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// Response is the model's reply to one Generate call.
type Response struct {
	Text      string
	ToolCalls []ToolCall
}

// Client is a provider-agnostic chat client.
type Client struct {
	model llms.Model
	cfg   Config
}

// New creates a client for the configured provider. API keys come
// from the providers' usual environment variables.
func New(cfg Config) (*Client, error) {
	var model llms.Model
	var err error

	switch cfg.Provider {
	case "openai", "":
		model, err = openai.New(openai.WithModel(cfg.Model))
	case "anthropic":
		model, err = anthropic.New(anthropic.WithModel(cfg.Model))
	case "googleai":
		model, err = googleai.New(
			context.Background(),
			googleai.WithDefaultModel(cfg.Model),
			googleai.WithAPIKey(os.Getenv("GEMINI_API_KEY")),
		)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
	}

	return &Client{model: model, cfg: cfg}, nil
}

// NewWithModel wraps an existing langchaingo model. Used by tests and
// by embedders that construct their own provider.
func NewWithModel(model llms.Model, cfg Config) *Client {
	return &Client{model: model, cfg: cfg}
}

// Generate runs one chat completion over the given messages, offering
// the tools to the model.
func (c *Client) Generate(ctx context.Context, messages []llms.MessageContent, tools []llms.Tool) (Response, error) {
	opts := []llms.CallOption{
		llms.WithTemperature(c.cfg.Temperature),
	}
	if c.cfg.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(c.cfg.MaxTokens))
	}
	if len(tools) > 0 {
		opts = append(opts, llms.WithTools(tools))
	}

	resp, err := c.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return Response{}, fmt.Errorf("generation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Response{}, fmt.Errorf("no response choices returned")
	}

	var toolCalls []ToolCall
	for _, choice := range resp.Choices {
		for _, tc := range choice.ToolCalls {
			if tc.FunctionCall == nil {
				continue
			}
			toolCalls = append(toolCalls, ToolCall{
				ID:        tc.ID,
				Name:      tc.FunctionCall.Name,
				Arguments: json.RawMessage(tc.FunctionCall.Arguments),
			})
		}
	}

	return Response{
		Text:      resp.Choices[0].Content,
		ToolCalls: toolCalls,
	}, nil
}
