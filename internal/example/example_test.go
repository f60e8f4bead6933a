package example_test

import (
	"testing"

	"github.com/moamenhredeen/oagent/internal/example"
	"github.com/moamenhredeen/oagent/internal/spec"
)

func TestValueFromFixture(t *testing.T) {
	c, err := spec.Load("../../tests/pet-store.json")
	if err != nil {
		t.Fatalf("Failed to load spec: %v", err)
	}

	details, err := c.Details("/pets", "GET")
	if err != nil {
		t.Fatalf("Failed to get details: %v", err)
	}

	gen := example.NewSeeded(1)
	schema := details.Parameters[0].Schema.Schema()
	value := gen.Value(schema)

	n, ok := value.(int)
	if !ok {
		t.Fatalf("Expected int for integer schema, got %T", value)
	}
	if n < 0 || n > 100 {
		t.Errorf("Expected value within [0,100], got %d", n)
	}
}

func TestValueObjectRequiredOnly(t *testing.T) {
	c, err := spec.Load("../../tests/pet-store.json")
	if err != nil {
		t.Fatalf("Failed to load spec: %v", err)
	}

	details, err := c.Details("/pets", "POST")
	if err != nil {
		t.Fatalf("Failed to get details: %v", err)
	}

	var schemaValue any
	for pair := details.RequestBody.Content.First(); pair != nil; pair = pair.Next() {
		schemaValue = example.NewSeeded(1).Value(pair.Value().Schema.Schema())
		break
	}

	obj, ok := schemaValue.(map[string]any)
	if !ok {
		t.Fatalf("Expected object example, got %T", schemaValue)
	}
	if _, ok := obj["id"]; !ok {
		t.Error("Expected required field id in example")
	}
	if _, ok := obj["name"]; !ok {
		t.Error("Expected required field name in example")
	}
	if _, ok := obj["tag"]; ok {
		t.Error("Optional field tag should be left out of the example")
	}
}

func TestValueKeepsExampleType(t *testing.T) {
	c, err := spec.LoadBytes([]byte(`{
		"openapi": "3.0.0",
		"info": {"title": "Widgets", "version": "1.0.0"},
		"paths": {
			"/widgets": {
				"post": {
					"operationId": "createWidget",
					"parameters": [
						{"name": "count", "in": "query", "schema": {"type": "integer", "example": 42}}
					],
					"requestBody": {
						"content": {
							"application/json": {
								"schema": {
									"type": "object",
									"example": {"name": "anvil", "weight": 9}
								}
							}
						}
					},
					"responses": {"200": {"description": "ok"}}
				}
			}
		}
	}`))
	if err != nil {
		t.Fatalf("Failed to load spec: %v", err)
	}

	details, err := c.Details("/widgets", "POST")
	if err != nil {
		t.Fatalf("Failed to get details: %v", err)
	}

	gen := example.NewSeeded(1)

	value := gen.Value(details.Parameters[0].Schema.Schema())
	if n, ok := value.(int); !ok || n != 42 {
		t.Errorf("Expected integer example 42, got %T %v", value, value)
	}

	var bodyValue any
	for pair := details.RequestBody.Content.First(); pair != nil; pair = pair.Next() {
		bodyValue = gen.Value(pair.Value().Schema.Schema())
		break
	}
	obj, ok := bodyValue.(map[string]any)
	if !ok {
		t.Fatalf("Expected mapping example, got %T", bodyValue)
	}
	if obj["name"] != "anvil" {
		t.Errorf("Expected name anvil, got %v", obj["name"])
	}
	if w, ok := obj["weight"].(int); !ok || w != 9 {
		t.Errorf("Expected integer weight 9, got %T %v", obj["weight"], obj["weight"])
	}
}

func TestValueNilSchema(t *testing.T) {
	if value := example.New().Value(nil); value != nil {
		t.Errorf("Expected nil for nil schema, got %v", value)
	}
}
