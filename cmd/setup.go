package cmd

import (
	"fmt"
	"time"

	"github.com/moamenhredeen/oagent/internal/agent"
	"github.com/moamenhredeen/oagent/internal/auth"
	"github.com/moamenhredeen/oagent/internal/llm"
	"github.com/moamenhredeen/oagent/internal/spec"
)

// callFlags are the flags shared by ask and chat. Flag values
// override config file values.
type callFlags struct {
	server    string
	provider  string
	model     string
	authEnv   string
	timeout   time.Duration
	rateLimit float64
}

func (f *callFlags) merge() {
	if f.server == "" {
		f.server = settings.Server
	}
	if f.provider == "" {
		f.provider = settings.Provider
	}
	if f.model == "" {
		f.model = settings.Model
	}
	if f.authEnv == "" {
		f.authEnv = settings.AuthEnv
	}
	if f.timeout == 0 {
		f.timeout = settings.Timeout
	}
	if f.rateLimit == 0 {
		f.rateLimit = settings.RateLimit
	}
}

// newAgent wires an agent from a spec source and the merged flags.
func newAgent(specSource string, flags callFlags, onEvent agent.OnEvent) (*agent.Agent, error) {
	flags.merge()

	catalog, err := spec.Load(specSource)
	if err != nil {
		return nil, err
	}

	client, err := llm.New(llm.Config{
		Provider:    flags.provider,
		Model:       flags.model,
		Temperature: settings.Temperature,
		MaxTokens:   settings.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	var tokenSource auth.TokenSource
	if flags.authEnv != "" {
		tokenSource = auth.Cached(auth.FromEnv(flags.authEnv))
	}

	a, err := agent.New(agent.Options{
		Catalog:   catalog,
		Client:    client,
		ServerURL: flags.server,
		Auth:      tokenSource,
		Timeout:   flags.timeout,
		RateLimit: flags.rateLimit,
		OnEvent:   onEvent,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}
	return a, nil
}
