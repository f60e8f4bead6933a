package auth

import (
	"context"
	"testing"
)

func TestStatic(t *testing.T) {
	source := Static("secret")

	token, err := source.Token(context.Background())
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}
	if token != "secret" {
		t.Errorf("Expected secret, got %s", token)
	}

	// Invalidate is a no-op for static tokens.
	source.Invalidate()
	token, _ = source.Token(context.Background())
	if token != "secret" {
		t.Errorf("Expected secret after invalidate, got %s", token)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("OAGENT_TEST_TOKEN", "from-env")

	source := FromEnv("OAGENT_TEST_TOKEN")
	token, err := source.Token(context.Background())
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}
	if token != "from-env" {
		t.Errorf("Expected from-env, got %s", token)
	}
}

func TestFromEnvMissing(t *testing.T) {
	source := FromEnv("OAGENT_TEST_TOKEN_MISSING")
	if _, err := source.Token(context.Background()); err == nil {
		t.Error("Expected error for missing environment variable")
	}
}

type countingSource struct {
	calls int
}

func (c *countingSource) Token(_ context.Context) (string, error) {
	c.calls++
	return "token", nil
}

func (c *countingSource) Invalidate() {}

func TestCached(t *testing.T) {
	underlying := &countingSource{}
	source := Cached(underlying)

	for i := 0; i < 3; i++ {
		if _, err := source.Token(context.Background()); err != nil {
			t.Fatalf("Token failed: %v", err)
		}
	}
	if underlying.calls != 1 {
		t.Errorf("Expected 1 underlying call, got %d", underlying.calls)
	}

	source.Invalidate()
	if _, err := source.Token(context.Background()); err != nil {
		t.Fatalf("Token failed: %v", err)
	}
	if underlying.calls != 2 {
		t.Errorf("Expected refresh after invalidate, got %d calls", underlying.calls)
	}
}
