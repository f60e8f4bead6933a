// Package auth defines the token plug-in surface for authenticated
// APIs. Real OAuth flows (browser dances, refresh tokens) belong to
// the embedding application; the agent only needs something that
// yields a bearer token and can be told the token went stale.
package auth

import (
	"context"
	"fmt"
	"os"
	"sync"
)

// TokenSource supplies bearer tokens for API calls. Invalidate is
// called after a 401 so the next Token call can refresh.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Invalidate()
}

type staticSource struct {
	token string
}

// Static returns a token source that always yields the same token.
func Static(token string) TokenSource {
	return &staticSource{token: token}
}

func (s *staticSource) Token(_ context.Context) (string, error) {
	return s.token, nil
}

func (s *staticSource) Invalidate() {}

type envSource struct {
	name string
}

// FromEnv returns a token source that reads the token from an
// environment variable on every call.
func FromEnv(name string) TokenSource {
	return &envSource{name: name}
}

func (e *envSource) Token(_ context.Context) (string, error) {
	token := os.Getenv(e.name)
	if token == "" {
		return "", fmt.Errorf("environment variable %s is not set", e.name)
	}
	return token, nil
}

func (e *envSource) Invalidate() {}

// Cached wraps a token source and memoizes the token until it is
// invalidated. Useful when the underlying source performs a network
// round trip.
func Cached(source TokenSource) TokenSource {
	return &cachedSource{source: source}
}

type cachedSource struct {
	source TokenSource

	mu    sync.Mutex
	token string
	valid bool
}

func (c *cachedSource) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid {
		return c.token, nil
	}

	token, err := c.source.Token(ctx)
	if err != nil {
		return "", err
	}
	c.token = token
	c.valid = true
	return token, nil
}

func (c *cachedSource) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.mu.Unlock()
	c.source.Invalidate()
}
