package example

import (
	"math/rand"
	"strings"
	"time"

	"github.com/pb33f/libopenapi/datamodel/high/base"
	"go.yaml.in/yaml/v4"
)

// Generator produces example values from OpenAPI schemas. The agent
// embeds these in the call-synthesis prompt so the model sees a
// concrete shape for every parameter, not just a type name.
type Generator struct {
	rng *rand.Rand
}

// New creates a generator seeded from the clock.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded creates a generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Value generates an example value for a schema. Explicit example and
// default values win over synthesized ones.
func (g *Generator) Value(schema *base.Schema) any {
	if schema == nil {
		return nil
	}

	if value, ok := decodeNode(schema.Example); ok {
		return value
	}
	if value, ok := decodeNode(schema.Default); ok {
		return value
	}

	if len(schema.Type) > 0 {
		switch schema.Type[0] {
		case "string":
			return g.generateString(schema)
		case "integer", "number":
			return g.generateNumber(schema)
		case "boolean":
			return true
		case "array":
			return g.generateArray(schema)
		case "object":
			return g.generateObject(schema)
		}
	}

	if schema.Format != "" {
		return g.fromFormat(schema.Format)
	}

	return ""
}

func (g *Generator) generateString(schema *base.Schema) string {
	if schema.Format != "" {
		if str, ok := g.fromFormat(schema.Format).(string); ok {
			return str
		}
	}

	if len(schema.Enum) > 0 && schema.Enum[0] != nil {
		return schema.Enum[0].Value
	}

	if schema.Pattern != "" {
		return "example"
	}

	length := 7
	if schema.MinLength != nil && int(*schema.MinLength) > length {
		length = int(*schema.MinLength)
	}
	if schema.MaxLength != nil && int(*schema.MaxLength) < length {
		length = int(*schema.MaxLength)
	}
	return strings.Repeat("a", length)
}

func (g *Generator) generateNumber(schema *base.Schema) any {
	min, max := 0.0, 100.0
	if schema.Minimum != nil {
		min = *schema.Minimum
	}
	if schema.Maximum != nil {
		max = *schema.Maximum
	}
	if max < min {
		max = min
	}

	value := min + g.rng.Float64()*(max-min)
	if len(schema.Type) > 0 && schema.Type[0] == "integer" {
		return int(value)
	}
	return value
}

func (g *Generator) generateArray(schema *base.Schema) []any {
	count := 1
	if schema.MinItems != nil && int(*schema.MinItems) > count {
		count = int(*schema.MinItems)
	}

	result := make([]any, count)
	var itemSchema *base.Schema
	if schema.Items != nil && schema.Items.IsA() && schema.Items.A != nil {
		itemSchema = schema.Items.A.Schema()
	}
	for i := range result {
		if itemSchema != nil {
			result[i] = g.Value(itemSchema)
		} else {
			result[i] = "item"
		}
	}
	return result
}

func (g *Generator) generateObject(schema *base.Schema) map[string]any {
	result := make(map[string]any)
	if schema.Properties == nil {
		return result
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	for pair := schema.Properties.First(); pair != nil; pair = pair.Next() {
		name := pair.Key()
		proxy := pair.Value()
		if proxy == nil {
			continue
		}
		// Optional properties stay out of the example to keep the
		// prompt small.
		if !required[name] && len(required) > 0 {
			continue
		}
		if propSchema := proxy.Schema(); propSchema != nil {
			result[name] = g.Value(propSchema)
		}
	}
	return result
}

// decodeNode resolves a yaml node into a plain Go value. An integer
// example stays an int and a mapping example stays a map, instead of
// collapsing to the node's string form.
func decodeNode(node *yaml.Node) (any, bool) {
	if node == nil {
		return nil, false
	}
	var value any
	if err := node.Decode(&value); err != nil || value == nil {
		return nil, false
	}
	return value, true
}

func (g *Generator) fromFormat(format string) any {
	switch format {
	case "date":
		return time.Now().Format("2006-01-02")
	case "date-time":
		return time.Now().Format(time.RFC3339)
	case "email":
		return "user@example.com"
	case "uri":
		return "https://example.com"
	case "uuid":
		return "123e4567-e89b-12d3-a456-426614174000"
	case "int32":
		return g.rng.Int31n(1000)
	case "int64":
		return g.rng.Int63n(1000)
	case "float":
		return g.rng.Float32()
	case "double":
		return g.rng.Float64()
	default:
		return "example"
	}
}
