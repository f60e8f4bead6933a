package call

import (
	"testing"

	"github.com/moamenhredeen/oagent/internal/spec"
)

func petDetails(t *testing.T, path, method string) *spec.Details {
	t.Helper()

	c, err := spec.Load("../../tests/pet-store.json")
	if err != nil {
		t.Fatalf("Failed to load spec: %v", err)
	}
	details, err := c.Details(path, method)
	if err != nil {
		t.Fatalf("Failed to get details: %v", err)
	}
	return details
}

func TestValidateDeclaredResponse(t *testing.T) {
	details := petDetails(t, "/pets/{petId}", "GET")

	result := &Result{
		StatusCode:  200,
		ContentType: "application/json",
		Raw:         []byte(`{"id": 1, "name": "Fluffy"}`),
	}

	findings := Validate(result, details)
	if len(findings) != 0 {
		t.Errorf("Expected no findings, got %v", findings)
	}
}

func TestValidateMissingRequiredField(t *testing.T) {
	details := petDetails(t, "/pets/{petId}", "GET")

	result := &Result{
		StatusCode:  200,
		ContentType: "application/json",
		Raw:         []byte(`{"id": 1}`),
	}

	findings := Validate(result, details)
	if len(findings) != 1 {
		t.Fatalf("Expected 1 finding, got %v", findings)
	}
	if findings[0].Field != "body.name" {
		t.Errorf("Expected finding on body.name, got %s", findings[0].Field)
	}
}

func TestValidateWrongBodyType(t *testing.T) {
	details := petDetails(t, "/pets", "GET")

	result := &Result{
		StatusCode:  200,
		ContentType: "application/json",
		Raw:         []byte(`{"not": "an array"}`),
	}

	findings := Validate(result, details)
	if len(findings) != 1 {
		t.Fatalf("Expected 1 finding, got %v", findings)
	}
	if findings[0].Field != "body" {
		t.Errorf("Expected finding on body, got %s", findings[0].Field)
	}
}

func TestValidateDefaultResponse(t *testing.T) {
	details := petDetails(t, "/pets", "GET")

	// 500 is not declared, the default error response applies.
	result := &Result{
		StatusCode:  500,
		ContentType: "application/json",
		Raw:         []byte(`{"code": 500, "message": "boom"}`),
	}

	findings := Validate(result, details)
	if len(findings) != 0 {
		t.Errorf("Expected default response to match, got %v", findings)
	}
}

func TestValidateUndeclaredStatus(t *testing.T) {
	// Minimal spec without a default response, so an unknown status
	// has nothing to fall back on.
	c, err := spec.LoadBytes([]byte(`{
		"openapi": "3.0.0",
		"info": {"title": "t", "version": "1"},
		"paths": {
			"/ping": {
				"get": {
					"summary": "ping",
					"responses": {"200": {"description": "ok"}}
				}
			}
		}
	}`))
	if err != nil {
		t.Fatalf("Failed to load spec: %v", err)
	}
	details, err := c.Details("/ping", "GET")
	if err != nil {
		t.Fatalf("Failed to get details: %v", err)
	}

	result := &Result{StatusCode: 418}
	findings := Validate(result, details)
	if len(findings) != 1 {
		t.Fatalf("Expected 1 finding, got %v", findings)
	}
	if findings[0].Field != "status_code" {
		t.Errorf("Expected finding on status_code, got %s", findings[0].Field)
	}
}

func TestValidateSkipsFailedCalls(t *testing.T) {
	details := petDetails(t, "/pets", "GET")

	result := &Result{Error: "API call failed: GET /pets"}
	if findings := Validate(result, details); len(findings) != 0 {
		t.Errorf("Expected no findings for failed call, got %v", findings)
	}
}
