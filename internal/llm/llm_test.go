package llm

import (
	"context"
	"testing"

	"github.com/tmc/langchaingo/llms"
)

type scriptedModel struct {
	resp *llms.ContentResponse
	err  error
}

func (s *scriptedModel) GenerateContent(_ context.Context, _ []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	return s.resp, s.err
}

func (s *scriptedModel) Call(_ context.Context, _ string, _ ...llms.CallOption) (string, error) {
	return "", nil
}

func TestGenerateText(t *testing.T) {
	model := &scriptedModel{resp: &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: "hello"}},
	}}
	client := NewWithModel(model, Config{})

	resp, err := client.Generate(context.Background(), []llms.MessageContent{Human("hi")}, nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if resp.Text != "hello" {
		t.Errorf("Expected hello, got %s", resp.Text)
	}
	if len(resp.ToolCalls) != 0 {
		t.Errorf("Expected no tool calls, got %d", len(resp.ToolCalls))
	}
}

func TestGenerateToolCalls(t *testing.T) {
	model := &scriptedModel{resp: &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{
			ToolCalls: []llms.ToolCall{{
				ID:   "tc-1",
				Type: "function",
				FunctionCall: &llms.FunctionCall{
					Name:      "route_request",
					Arguments: `{"method": "GET", "path": "/pets"}`,
				},
			}},
		}},
	}}
	client := NewWithModel(model, Config{})

	resp, err := client.Generate(context.Background(), []llms.MessageContent{Human("list pets")}, nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(resp.ToolCalls) != 1 {
		t.Fatalf("Expected 1 tool call, got %d", len(resp.ToolCalls))
	}
	if resp.ToolCalls[0].Name != "route_request" {
		t.Errorf("Expected route_request, got %s", resp.ToolCalls[0].Name)
	}
}

func TestGenerateNoChoices(t *testing.T) {
	model := &scriptedModel{resp: &llms.ContentResponse{}}
	client := NewWithModel(model, Config{})

	if _, err := client.Generate(context.Background(), nil, nil); err == nil {
		t.Error("Expected error for empty response")
	}
}

func TestNewUnsupportedProvider(t *testing.T) {
	if _, err := New(Config{Provider: "unknown"}); err == nil {
		t.Error("Expected error for unsupported provider")
	}
}
