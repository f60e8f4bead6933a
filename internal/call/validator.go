package call

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pb33f/libopenapi/datamodel/high/base"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"

	"github.com/moamenhredeen/oagent/internal/spec"
)

// Finding is one mismatch between a completed call and what the spec
// declares about the operation's responses.
type Finding struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate checks a call result against the operation's declared
// responses. Findings are advisory: they end up in the trace, they
// never block the answer.
func Validate(result *Result, details *spec.Details) []Finding {
	var findings []Finding

	if result == nil || result.Error != "" {
		return findings
	}
	if details == nil || details.Responses == nil {
		return findings
	}

	responseDef, found := matchResponse(details.Responses, result.StatusCode)
	if !found {
		return append(findings, Finding{
			Field:   "status_code",
			Message: fmt.Sprintf("status %d is not declared for %s %s", result.StatusCode, details.Method, details.Path),
		})
	}

	if responseDef.Content == nil || responseDef.Content.Len() == 0 {
		return findings
	}

	contentType := result.ContentType
	matched := false
	for pair := responseDef.Content.First(); pair != nil; pair = pair.Next() {
		declared := strings.Split(pair.Key(), ";")[0]
		if strings.Contains(contentType, declared) {
			matched = true
			break
		}
	}
	if !matched && contentType != "" {
		findings = append(findings, Finding{
			Field:   "content_type",
			Message: fmt.Sprintf("undeclared content type: %s", contentType),
		})
	}

	if strings.Contains(contentType, "json") {
		if schema := jsonSchema(responseDef); schema != nil {
			findings = append(findings, validateBody(result.Raw, schema)...)
		}
	}

	return findings
}

// matchResponse finds the response definition for a status code:
// exact match, then the default response, then Nxx ranges.
func matchResponse(responses *v3.Responses, status int) (*v3.Response, bool) {
	code := fmt.Sprintf("%d", status)

	if responses.Codes != nil {
		for pair := responses.Codes.First(); pair != nil; pair = pair.Next() {
			if pair.Key() == code {
				return pair.Value(), true
			}
		}
	}

	if responses.Default != nil {
		return responses.Default, true
	}

	if responses.Codes != nil {
		statusRange := fmt.Sprintf("%dxx", status/100)
		for pair := responses.Codes.First(); pair != nil; pair = pair.Next() {
			if strings.EqualFold(pair.Key(), statusRange) {
				return pair.Value(), true
			}
		}
	}

	return nil, false
}

func jsonSchema(responseDef *v3.Response) *base.Schema {
	for pair := responseDef.Content.First(); pair != nil; pair = pair.Next() {
		if strings.Contains(pair.Key(), "json") {
			mediaType := pair.Value()
			if mediaType != nil && mediaType.Schema != nil {
				return mediaType.Schema.Schema()
			}
			return nil
		}
	}
	return nil
}

// validateBody does a coarse shape check of a JSON body against the
// declared schema: top-level type and required object fields.
func validateBody(raw []byte, schema *base.Schema) []Finding {
	var findings []Finding

	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return append(findings, Finding{
			Field:   "body",
			Message: fmt.Sprintf("failed to parse JSON response: %v", err),
		})
	}

	if len(schema.Type) == 0 {
		return findings
	}

	schemaType := schema.Type[0]
	typeOK := true
	switch schemaType {
	case "object":
		_, typeOK = body.(map[string]any)
	case "array":
		_, typeOK = body.([]any)
	case "string":
		_, typeOK = body.(string)
	case "integer", "number":
		_, typeOK = body.(float64)
	case "boolean":
		_, typeOK = body.(bool)
	}
	if !typeOK {
		findings = append(findings, Finding{
			Field:   "body",
			Message: fmt.Sprintf("expected %s body, got a different type", schemaType),
		})
		return findings
	}

	if schemaType == "object" {
		obj := body.(map[string]any)
		for _, required := range schema.Required {
			if _, exists := obj[required]; !exists {
				findings = append(findings, Finding{
					Field:   "body." + required,
					Message: fmt.Sprintf("missing required field: %s", required),
				})
			}
		}
	}

	return findings
}
