package agent

import "github.com/tmc/langchaingo/llms"

const (
	routeToolName = "route_request"
	callToolName  = "call_api"
)

// routeTool is the single function offered to the router: commit to
// one operation from the catalog.
func routeTool() llms.Tool {
	return llms.Tool{
		Type: "function",
		Function: &llms.FunctionDefinition{
			Name:        routeToolName,
			Description: "Select the API operation that best matches the user's request.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"method": map[string]any{
						"type":        "string",
						"description": "HTTP method of the chosen operation",
						"enum":        []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
					},
					"path": map[string]any{
						"type":        "string",
						"description": "Path of the chosen operation, exactly as listed, including {placeholders}",
					},
				},
				"required": []string{"method", "path"},
			},
		},
	}
}

// callTool is offered to the call-synthesis stage: concrete values
// for one HTTP call against the routed operation.
func callTool() llms.Tool {
	return llms.Tool{
		Type: "function",
		Function: &llms.FunctionDefinition{
			Name:        callToolName,
			Description: "Execute the API call with concrete parameter values.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"method": map[string]any{
						"type":        "string",
						"description": "HTTP method",
					},
					"path": map[string]any{
						"type":        "string",
						"description": "Operation path with {placeholders} left intact",
					},
					"path_params": map[string]any{
						"type":        "object",
						"description": "Values for {placeholders} in the path",
					},
					"query_params": map[string]any{
						"type":        "object",
						"description": "Query string parameters",
					},
					"headers": map[string]any{
						"type":        "object",
						"description": "Additional request headers",
					},
					"body": map[string]any{
						"type":        "object",
						"description": "JSON request body, matching the request body schema",
					},
				},
				"required": []string{"method", "path"},
			},
		},
	}
}
