// Package agent implements the two-stage dispatch at the heart of
// oagent: a router that maps free text to one operation from an
// OpenAPI catalog, and a caller that synthesizes the concrete HTTP
// request for it, executes it, and turns the response into an answer.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/moamenhredeen/oagent/internal/auth"
	"github.com/moamenhredeen/oagent/internal/call"
	"github.com/moamenhredeen/oagent/internal/example"
	"github.com/moamenhredeen/oagent/internal/llm"
	"github.com/moamenhredeen/oagent/internal/spec"
	"github.com/moamenhredeen/oagent/internal/trace"
)

const defaultMaxToolTurns = 4

// Options configures a new Agent.
type Options struct {
	// Catalog is the parsed OpenAPI document. Required.
	Catalog *spec.Catalog
	// Client is the LLM client. Required.
	Client *llm.Client
	// ServerURL overrides the base URL from the document's servers
	// list.
	ServerURL string
	// Auth supplies bearer tokens; nil means unauthenticated calls.
	Auth auth.TokenSource
	// Timeout bounds each HTTP call.
	Timeout time.Duration
	// RateLimit caps outgoing API calls per second; zero means
	// unlimited.
	RateLimit float64
	// MaxToolTurns bounds the call-synthesis loop.
	MaxToolTurns int
	// OnEvent receives live progress events.
	OnEvent OnEvent
}

// Outcome is the result of one agent interaction.
type Outcome struct {
	Answer string
	Routed bool
	Method string
	Path   string
	Trace  *trace.Trace
}

// Agent routes natural-language requests to API operations and
// executes them.
type Agent struct {
	catalog *spec.Catalog
	router  *router
	caller  *caller
	onEvent OnEvent
}

// New creates an agent over a parsed OpenAPI catalog.
func New(opts Options) (*Agent, error) {
	if opts.Catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if opts.Client == nil {
		return nil, fmt.Errorf("llm client is required")
	}

	baseURL := opts.ServerURL
	if baseURL == "" {
		baseURL = opts.Catalog.ServerURLs()[0]
	}

	maxTurns := opts.MaxToolTurns
	if maxTurns <= 0 {
		maxTurns = defaultMaxToolTurns
	}

	executorOpts := []call.Option{}
	if opts.Auth != nil {
		executorOpts = append(executorOpts, call.WithAuth(opts.Auth))
	}
	if opts.RateLimit > 0 {
		executorOpts = append(executorOpts, call.WithRateLimit(opts.RateLimit))
	}

	a := &Agent{
		catalog: opts.Catalog,
		onEvent: opts.OnEvent,
	}
	a.router = &router{catalog: opts.Catalog, client: opts.Client}
	a.caller = &caller{
		client:   opts.Client,
		executor: call.NewExecutor(opts.Timeout, executorOpts...),
		baseURL:  baseURL,
		gen:      example.New(),
		maxTurns: maxTurns,
		emit:     a.emit,
	}

	slog.Info("initialized agent", "api", opts.Catalog.Title(), "base_url", baseURL,
		"operations", len(opts.Catalog.Operations()))
	return a, nil
}

// Ask handles one user request with no prior conversation.
func (a *Agent) Ask(ctx context.Context, text string) (*Outcome, error) {
	return a.ask(ctx, nil, text)
}

func (a *Agent) ask(ctx context.Context, history []llms.MessageContent, text string) (*Outcome, error) {
	t := trace.New(a.catalog.Title(), text)

	a.emit(Event{Type: EventRouting})
	route, err := a.router.route(ctx, history, text)
	if err != nil {
		return nil, err
	}

	if !route.Matched {
		t.Finish(route.Answer)
		return &Outcome{Answer: route.Answer, Trace: t}, nil
	}

	a.emit(Event{Type: EventRouted, Method: route.Method, Path: route.Path})
	t.Routed = true
	t.Method = route.Method
	t.Path = route.Path

	details, err := a.catalog.Details(route.Path, route.Method)
	if err != nil {
		return nil, err
	}
	if details.Operation != nil {
		t.OperationID = details.Operation.OperationId
	}

	outcome, err := a.caller.run(ctx, history, text, details)
	for i, result := range outcome.results {
		t.AddCall(result, outcome.requests[i], outcome.findings[i])
	}
	if err != nil {
		// Calls may have executed before the loop failed; the trace
		// still goes back to the caller.
		t.Finish(outcome.answer)
		return &Outcome{
			Routed: true,
			Method: route.Method,
			Path:   route.Path,
			Trace:  t,
		}, err
	}

	t.Finish(outcome.answer)
	return &Outcome{
		Answer: outcome.answer,
		Routed: true,
		Method: route.Method,
		Path:   route.Path,
		Trace:  t,
	}, nil
}

// Session is a multi-turn conversation with the agent. Follow-up
// requests see the earlier exchanges.
type Session struct {
	agent   *Agent
	history []llms.MessageContent
}

// NewSession starts an empty conversation.
func (a *Agent) NewSession() *Session {
	return &Session{agent: a}
}

// Send handles one user message within the session.
func (s *Session) Send(ctx context.Context, text string) (*Outcome, error) {
	outcome, err := s.agent.ask(ctx, s.history, text)
	if err != nil {
		return outcome, err
	}
	s.history = append(s.history, llm.Human(text), llm.AI(outcome.Answer))
	return outcome, nil
}
