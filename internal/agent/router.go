package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"github.com/moamenhredeen/oagent/internal/llm"
	"github.com/moamenhredeen/oagent/internal/spec"
)

// Route is the router's decision: either an operation to call, or a
// direct conversational answer when nothing matches.
type Route struct {
	Matched bool
	Method  string
	Path    string
	Answer  string
}

type router struct {
	catalog *spec.Catalog
	client  *llm.Client
}

func (r *router) instructions() string {
	var b strings.Builder
	b.WriteString("You are a router for an OpenAPI-based service. ")
	b.WriteString("Your task is to map the user's request to the most appropriate API operation.\n\n")
	b.WriteString("Available operations:\n\n")
	for _, line := range r.catalog.RoutingLines() {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\nInstructions:\n")
	b.WriteString("1. Analyze the user's request to understand their intent.\n")
	b.WriteString("2. Match it to the most suitable operation; if several fit, choose the most specific one.\n")
	b.WriteString("3. Commit to your choice by calling route_request with the method and path exactly as listed.\n")
	b.WriteString("4. If no operation matches, do not call route_request; explain that no matching API was found and suggest alternatives.\n")
	b.WriteString("\nAlways prefer using the API over answering from your own knowledge.")
	return b.String()
}

// route runs one LLM turn to pick an operation.
func (r *router) route(ctx context.Context, history []llms.MessageContent, userText string) (Route, error) {
	messages := []llms.MessageContent{llm.System(r.instructions())}
	messages = append(messages, history...)
	messages = append(messages, llm.Human(userText))

	resp, err := r.client.Generate(ctx, messages, []llms.Tool{routeTool()})
	if err != nil {
		return Route{}, fmt.Errorf("routing failed: %w", err)
	}

	for _, tc := range resp.ToolCalls {
		if tc.Name != routeToolName {
			continue
		}
		var args struct {
			Method string `json:"method"`
			Path   string `json:"path"`
		}
		if err := json.Unmarshal(tc.Arguments, &args); err != nil {
			return Route{}, fmt.Errorf("failed to parse routing decision: %w", err)
		}

		method := strings.ToUpper(args.Method)
		slog.Info("routing request", "method", method, "path", args.Path)

		// The model occasionally picks a path that is not in the
		// catalog; reject it here so the caller stage never sees it.
		if _, err := r.catalog.Details(args.Path, method); err != nil {
			return Route{}, fmt.Errorf("router chose unknown operation %s %s: %w", method, args.Path, err)
		}

		return Route{Matched: true, Method: method, Path: args.Path}, nil
	}

	return Route{Answer: resp.Text}, nil
}
