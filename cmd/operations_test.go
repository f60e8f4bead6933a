package cmd

import (
	"testing"

	"github.com/moamenhredeen/oagent/internal/spec"
)

func TestFilterOperations(t *testing.T) {
	operations := []spec.Operation{
		{Method: "GET", Path: "/pets", OperationID: "listPets", Tags: []string{"pets"}},
		{Method: "POST", Path: "/pets", OperationID: "createPets", Tags: []string{"pets"}},
		{Method: "GET", Path: "/users/{id}", OperationID: "getUser", Tags: []string{"users"}},
	}

	filtered := filterOperations(operations, "pets", nil)
	if len(filtered) != 2 {
		t.Errorf("Expected 2 operations for path filter, got %d", len(filtered))
	}

	filtered = filterOperations(operations, "getUser", nil)
	if len(filtered) != 1 {
		t.Errorf("Expected 1 operation for ID filter, got %d", len(filtered))
	}

	filtered = filterOperations(operations, "", []string{"users"})
	if len(filtered) != 1 {
		t.Errorf("Expected 1 operation for tag filter, got %d", len(filtered))
	}

	filtered = filterOperations(operations, "", nil)
	if len(filtered) != 3 {
		t.Errorf("Expected all operations without filters, got %d", len(filtered))
	}
}
