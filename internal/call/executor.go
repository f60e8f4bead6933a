package call

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/moamenhredeen/oagent/internal/auth"
)

// maxResponseBytes caps how much of a response body is read. The body
// ends up inside an LLM prompt, unbounded bodies are a cost problem
// before they are a memory problem.
const maxResponseBytes = 1 << 20

// Result is the outcome of one executed call. A failed call is still
// a Result, the model decides what to tell the user about it.
type Result struct {
	ID          string        `json:"id"`
	Method      string        `json:"method"`
	Path        string        `json:"path"`
	URL         string        `json:"url"`
	StatusCode  int           `json:"status_code"`
	ContentType string        `json:"content_type,omitempty"`
	Duration    time.Duration `json:"duration"`
	Body        any           `json:"body,omitempty"`
	Raw         []byte        `json:"-"`
	Error       string        `json:"error,omitempty"`
	Details     string        `json:"details,omitempty"`
}

// OK reports whether the call reached the server and returned a 2xx.
func (r *Result) OK() bool {
	return r.Error == "" && r.StatusCode >= 200 && r.StatusCode < 300
}

// Payload is what gets handed back to the model as the tool result:
// the decoded body on success, an error/details pair otherwise.
func (r *Result) Payload() any {
	if r.Error != "" {
		return map[string]any{"error": r.Error, "details": r.Details}
	}
	return r.Body
}

// Option configures an Executor.
type Option func(*Executor)

// WithAuth attaches a bearer token source.
func WithAuth(source auth.TokenSource) Option {
	return func(e *Executor) { e.auth = source }
}

// WithRateLimit caps outgoing requests per second. Zero means
// unlimited.
func WithRateLimit(perSecond float64) Option {
	return func(e *Executor) {
		if perSecond > 0 {
			e.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(e *Executor) { e.client = client }
}

// Executor performs the HTTP calls the agent synthesizes.
type Executor struct {
	client  *http.Client
	auth    auth.TokenSource
	limiter *rate.Limiter
}

// NewExecutor creates an executor with a configurable timeout.
func NewExecutor(timeout time.Duration, opts ...Option) *Executor {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	e := &Executor{
		client: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Do executes a synthesized request against the base URL. Transport
// and HTTP-level failures are reported inside the Result; a non-nil
// error means the request could not even be constructed.
func (e *Executor) Do(ctx context.Context, baseURL string, request Request) (*Result, error) {
	result := &Result{
		ID:     uuid.NewString(),
		Method: strings.ToUpper(request.Method),
		Path:   request.Path,
	}

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := request.BuildHTTP(ctx, baseURL)
	if err != nil {
		return nil, err
	}
	result.URL = req.URL.String()

	token, err := e.token(ctx)
	if err != nil {
		slog.Warn("token source failed, calling without auth", "error", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	slog.Debug("executing api call", "method", result.Method, "url", result.URL)
	start := time.Now()
	resp, err := e.client.Do(req)
	result.Duration = time.Since(start)
	if err != nil {
		result.Error = fmt.Sprintf("API call failed: %s %s", result.Method, request.Path)
		result.Details = err.Error()
		return result, nil
	}

	// One refresh-and-retry on 401 when a token source is attached.
	if resp.StatusCode == http.StatusUnauthorized && e.auth != nil {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		resp.Body.Close()

		slog.Warn("received 401, refreshing token and retrying")
		e.auth.Invalidate()
		token, err := e.auth.Token(ctx)
		if err != nil {
			result.StatusCode = http.StatusUnauthorized
			result.Error = fmt.Sprintf("API call failed: %s %s (status: 401)", result.Method, request.Path)
			result.Details = fmt.Sprintf("token refresh failed: %v", err)
			return result, nil
		}

		retry, err := request.BuildHTTP(ctx, baseURL)
		if err != nil {
			return nil, err
		}
		retry.Header.Set("Authorization", "Bearer "+token)

		start = time.Now()
		resp, err = e.client.Do(retry)
		result.Duration += time.Since(start)
		if err != nil {
			result.Error = fmt.Sprintf("API call failed: %s %s", result.Method, request.Path)
			result.Details = err.Error()
			return result, nil
		}
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	result.ContentType = resp.Header.Get("Content-Type")
	result.Raw, err = io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		result.Error = fmt.Sprintf("API call failed: %s %s", result.Method, request.Path)
		result.Details = fmt.Sprintf("failed to read response body: %v", err)
		return result, nil
	}

	if !result.OK() && resp.StatusCode >= 300 {
		result.Error = fmt.Sprintf("API call failed: %s %s (status: %d)", result.Method, request.Path, resp.StatusCode)
		result.Details = strings.TrimSpace(string(result.Raw))
		return result, nil
	}

	// Empty 2xx bodies are fine, Body stays nil.
	if len(result.Raw) > 0 {
		var body any
		if err := json.Unmarshal(result.Raw, &body); err == nil {
			result.Body = body
		} else {
			result.Body = string(result.Raw)
		}
	}

	slog.Debug("api call completed", "method", result.Method, "url", result.URL,
		"status", result.StatusCode, "duration", result.Duration)
	return result, nil
}

func (e *Executor) token(ctx context.Context) (string, error) {
	if e.auth == nil {
		return "", nil
	}
	return e.auth.Token(ctx)
}
