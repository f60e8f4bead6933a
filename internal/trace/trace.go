// Package trace records what the agent actually did for one request:
// the routing decision, every synthesized HTTP call, and the findings
// from checking responses against the spec.
package trace

import (
	"time"

	"github.com/google/uuid"

	"github.com/moamenhredeen/oagent/internal/call"
)

// CallRecord is one executed HTTP call inside a trace.
type CallRecord struct {
	Request    call.Request   `json:"request"`
	URL        string         `json:"url"`
	StatusCode int            `json:"status_code"`
	Duration   time.Duration  `json:"duration"`
	Error      string         `json:"error,omitempty"`
	Findings   []call.Finding `json:"findings,omitempty"`
}

// Trace is the full record of one agent interaction.
type Trace struct {
	ID          string        `json:"id"`
	CreatedAt   time.Time     `json:"created_at"`
	API         string        `json:"api,omitempty"`
	UserText    string        `json:"user_text"`
	Routed      bool          `json:"routed"`
	Method      string        `json:"method,omitempty"`
	Path        string        `json:"path,omitempty"`
	OperationID string        `json:"operation_id,omitempty"`
	Calls       []CallRecord  `json:"calls,omitempty"`
	Answer      string        `json:"answer"`
	Duration    time.Duration `json:"duration"`
}

// New starts a trace for one user request.
func New(api, userText string) *Trace {
	return &Trace{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		API:       api,
		UserText:  userText,
	}
}

// AddCall appends an executed call with its validation findings.
func (t *Trace) AddCall(result *call.Result, request call.Request, findings []call.Finding) {
	if result == nil {
		return
	}
	t.Calls = append(t.Calls, CallRecord{
		Request:    request,
		URL:        result.URL,
		StatusCode: result.StatusCode,
		Duration:   result.Duration,
		Error:      result.Error,
		Findings:   findings,
	})
}

// Finish records the final answer and total duration.
func (t *Trace) Finish(answer string) {
	t.Answer = answer
	t.Duration = time.Since(t.CreatedAt)
}
