package call

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const userAgent = "oagent/1.0"

// Request is an HTTP call as synthesized by the model: a routed
// operation plus concrete parameter values. Field names mirror the
// call_api tool schema.
type Request struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	PathParams  map[string]any    `json:"path_params,omitempty"`
	QueryParams map[string]any    `json:"query_params,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
	Body        any               `json:"body,omitempty"`
}

// URL resolves the request path against a base URL, substituting
// {name} path parameters and encoding query parameters.
func (r *Request) URL(baseURL string) (string, error) {
	path := "/" + strings.TrimPrefix(r.Path, "/")

	for name, value := range r.PathParams {
		path = strings.ReplaceAll(path, "{"+name+"}", url.PathEscape(fmt.Sprint(value)))
	}
	if strings.Contains(path, "{") {
		return "", fmt.Errorf("unresolved path parameters in %s", path)
	}

	full := strings.TrimSuffix(baseURL, "/") + path

	if len(r.QueryParams) > 0 {
		query := url.Values{}
		for name, value := range r.QueryParams {
			// Array-valued query params become repeated keys.
			if list, ok := value.([]any); ok {
				for _, item := range list {
					query.Add(name, fmt.Sprint(item))
				}
				continue
			}
			query.Add(name, fmt.Sprint(value))
		}
		full += "?" + query.Encode()
	}

	return full, nil
}

// BuildHTTP creates the http.Request for execution.
func (r *Request) BuildHTTP(ctx context.Context, baseURL string) (*http.Request, error) {
	fullURL, err := r.URL(baseURL)
	if err != nil {
		return nil, err
	}

	method := strings.ToUpper(r.Method)
	if method == "" {
		method = http.MethodGet
	}

	var req *http.Request
	if r.Body != nil {
		bodyBytes, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		req, err = http.NewRequestWithContext(ctx, method, fullURL, bytes.NewBuffer(bodyBytes))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, err = http.NewRequestWithContext(ctx, method, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	for name, value := range r.Headers {
		req.Header.Set(name, value)
	}

	return req, nil
}
