package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"github.com/moamenhredeen/oagent/internal/call"
	"github.com/moamenhredeen/oagent/internal/example"
	"github.com/moamenhredeen/oagent/internal/llm"
	"github.com/moamenhredeen/oagent/internal/spec"
)

// ErrToolLoop is returned when the model keeps issuing tool calls
// without converging on an answer.
var ErrToolLoop = fmt.Errorf("model did not produce a final answer within the tool-call budget")

// callOutcome is what one caller run produced, fed back into the
// trace by the agent.
type callOutcome struct {
	answer   string
	results  []*call.Result
	requests []call.Request
	findings [][]call.Finding
}

type caller struct {
	client   *llm.Client
	executor *call.Executor
	baseURL  string
	gen      *example.Generator
	maxTurns int
	emit     func(Event)
}

func (c *caller) instructions(details *spec.Details) string {
	doc, err := json.MarshalIndent(details.PromptDocument(c.gen), "", "  ")
	if err != nil {
		doc = []byte(fmt.Sprintf("%s %s", details.Method, details.Path))
	}

	var b strings.Builder
	b.WriteString("You are responsible for making the following API call on the user's behalf:\n\n")
	fmt.Fprintf(&b, "%s %s\n\n", details.Method, details.Path)
	b.Write(doc)
	b.WriteString("\n\nAnalyze the user's request and generate the parameters for this call, ")
	b.WriteString("then execute it with the call_api function. ")
	b.WriteString("Adhere to the parameter types and constraints above; the request body must match the schema. ")
	b.WriteString("When the call has completed, summarize the outcome for the user in plain language. ")
	b.WriteString("If the call failed, explain what went wrong and suggest next steps.")
	return b.String()
}

// run drives the call-synthesis loop: offer call_api, execute every
// tool call, feed results back, stop when the model answers in text.
func (c *caller) run(ctx context.Context, history []llms.MessageContent, userText string, details *spec.Details) (callOutcome, error) {
	var outcome callOutcome

	messages := []llms.MessageContent{llm.System(c.instructions(details))}
	messages = append(messages, history...)
	messages = append(messages, llm.Human(userText))

	for turn := 0; turn < c.maxTurns; turn++ {
		resp, err := c.client.Generate(ctx, messages, []llms.Tool{callTool()})
		if err != nil {
			return outcome, fmt.Errorf("call synthesis failed: %w", err)
		}

		if len(resp.ToolCalls) == 0 {
			outcome.answer = resp.Text
			return outcome, nil
		}

		for _, tc := range resp.ToolCalls {
			if tc.Name != callToolName {
				messages = append(messages, llm.AIToolCall(tc),
					llm.ToolResponse(tc, fmt.Sprintf("unknown function: %s", tc.Name)))
				continue
			}

			var request call.Request
			if err := json.Unmarshal(tc.Arguments, &request); err != nil {
				messages = append(messages, llm.AIToolCall(tc),
					llm.ToolResponse(tc, fmt.Sprintf("invalid arguments: %v", err)))
				continue
			}

			// Pin the call to the routed operation when the model
			// leaves fields empty or drifts to another path.
			if request.Method == "" {
				request.Method = details.Method
			}
			if request.Path == "" {
				request.Path = details.Path
			}

			c.emit(Event{Type: EventCallStarting, Method: request.Method, Path: request.Path})

			result, err := c.executor.Do(ctx, c.baseURL, request)
			if err != nil {
				slog.Error("failed to execute api call", "error", err)
				messages = append(messages, llm.AIToolCall(tc),
					llm.ToolResponse(tc, fmt.Sprintf("request could not be built: %v", err)))
				continue
			}

			findings := call.Validate(result, details)
			outcome.results = append(outcome.results, result)
			outcome.requests = append(outcome.requests, request)
			outcome.findings = append(outcome.findings, findings)

			c.emit(Event{Type: EventCallCompleted, Method: request.Method, Path: request.Path, Result: result})

			payload, err := json.Marshal(result.Payload())
			if err != nil {
				payload = []byte(`{"error": "response could not be serialized"}`)
			}
			messages = append(messages, llm.AIToolCall(tc), llm.ToolResponse(tc, string(payload)))
		}
	}

	return outcome, ErrToolLoop
}
