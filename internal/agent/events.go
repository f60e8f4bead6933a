package agent

import "github.com/moamenhredeen/oagent/internal/call"

// EventType represents the type of agent event.
type EventType int

const (
	// EventRouting indicates the router is choosing an operation.
	EventRouting EventType = iota
	// EventRouted indicates an operation was chosen.
	EventRouted
	// EventCallStarting indicates an HTTP call is about to execute.
	EventCallStarting
	// EventCallCompleted indicates an HTTP call completed.
	EventCallCompleted
)

// Event represents a step during one agent interaction.
type Event struct {
	Type   EventType
	Method string
	Path   string
	Result *call.Result // nil except for EventCallCompleted
}

// OnEvent is a callback for live progress reporting.
type OnEvent func(event Event)

func (a *Agent) emit(event Event) {
	if a.onEvent != nil {
		a.onEvent(event)
	}
}
