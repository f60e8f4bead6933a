package spec

import (
	"fmt"

	"github.com/moamenhredeen/oagent/internal/example"
	"github.com/pb33f/libopenapi/datamodel/high/base"
)

// maxSchemaDepth caps schema rendering. Specs with recursive models
// would otherwise loop forever.
const maxSchemaDepth = 6

// RoutingLines renders the operation catalog as one line per
// operation, the form the router prompt embeds.
func (c *Catalog) RoutingLines() []string {
	operations := c.Operations()
	lines := make([]string, 0, len(operations))
	for _, op := range operations {
		line := fmt.Sprintf("- %s %s: %s", op.Method, op.Path, op.Summary)
		if op.Deprecated {
			line += " (deprecated)"
		}
		lines = append(lines, line)
	}
	return lines
}

// PromptDocument renders the operation as a JSON-friendly document for
// the call-synthesis prompt. Response definitions are deliberately
// omitted, the model only needs to know how to make the call.
func (d *Details) PromptDocument(gen *example.Generator) map[string]any {
	if gen == nil {
		gen = example.New()
	}

	doc := map[string]any{
		"method": d.Method,
		"path":   d.Path,
	}

	if d.Operation != nil {
		if d.Operation.OperationId != "" {
			doc["operationId"] = d.Operation.OperationId
		}
		if d.Operation.Summary != "" {
			doc["summary"] = d.Operation.Summary
		}
		if d.Operation.Description != "" {
			doc["description"] = d.Operation.Description
		}
	}

	if len(d.Parameters) > 0 {
		params := make([]map[string]any, 0, len(d.Parameters))
		for _, param := range d.Parameters {
			if param == nil {
				continue
			}
			entry := map[string]any{
				"name":     param.Name,
				"in":       param.In,
				"required": param.Required != nil && *param.Required,
			}
			if param.Description != "" {
				entry["description"] = param.Description
			}
			if param.Schema != nil {
				if schema := param.Schema.Schema(); schema != nil {
					entry["schema"] = schemaDocument(schema, 0)
					if value := gen.Value(schema); value != nil {
						entry["example"] = value
					}
				}
			}
			params = append(params, entry)
		}
		doc["parameters"] = params
	}

	if d.RequestBody != nil {
		body := map[string]any{
			"required": d.RequestBody.Required != nil && *d.RequestBody.Required,
		}
		if d.RequestBody.Description != "" {
			body["description"] = d.RequestBody.Description
		}
		if d.RequestBody.Content != nil {
			content := make(map[string]any)
			for pair := d.RequestBody.Content.First(); pair != nil; pair = pair.Next() {
				mediaType := pair.Value()
				if mediaType == nil || mediaType.Schema == nil {
					continue
				}
				schema := mediaType.Schema.Schema()
				if schema == nil {
					continue
				}
				content[pair.Key()] = map[string]any{
					"schema":  schemaDocument(schema, 0),
					"example": gen.Value(schema),
				}
			}
			body["content"] = content
		}
		doc["requestBody"] = body
	}

	return doc
}

// schemaDocument flattens a libopenapi schema into plain maps. Refs
// are already resolved by the time Schema() returns.
func schemaDocument(schema *base.Schema, depth int) map[string]any {
	doc := make(map[string]any)
	if schema == nil || depth > maxSchemaDepth {
		return doc
	}

	if len(schema.Type) > 0 {
		doc["type"] = schema.Type[0]
	}
	if schema.Format != "" {
		doc["format"] = schema.Format
	}
	if schema.Description != "" {
		doc["description"] = schema.Description
	}
	if len(schema.Enum) > 0 {
		values := make([]string, 0, len(schema.Enum))
		for _, node := range schema.Enum {
			if node != nil {
				values = append(values, node.Value)
			}
		}
		doc["enum"] = values
	}
	if len(schema.Required) > 0 {
		doc["required"] = schema.Required
	}

	if schema.Properties != nil {
		properties := make(map[string]any)
		for pair := schema.Properties.First(); pair != nil; pair = pair.Next() {
			proxy := pair.Value()
			if proxy == nil {
				continue
			}
			if propSchema := proxy.Schema(); propSchema != nil {
				properties[pair.Key()] = schemaDocument(propSchema, depth+1)
			}
		}
		if len(properties) > 0 {
			doc["properties"] = properties
		}
	}

	if schema.Items != nil && schema.Items.IsA() && schema.Items.A != nil {
		if itemSchema := schema.Items.A.Schema(); itemSchema != nil {
			doc["items"] = schemaDocument(itemSchema, depth+1)
		}
	}

	return doc
}
