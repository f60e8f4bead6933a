package spec

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pb33f/libopenapi"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"
)

// ErrOperationNotFound is returned when a path/method pair does not
// exist in the loaded document.
var ErrOperationNotFound = fmt.Errorf("operation not found")

// Catalog wraps a parsed OpenAPI document and exposes the views the
// agent needs: the operation listing for routing and per-operation
// details for call synthesis.
type Catalog struct {
	document libopenapi.Document
	model    *v3.Document
}

// Operation is one routable API operation.
type Operation struct {
	Method      string
	Path        string
	OperationID string
	Summary     string
	Tags        []string
	Deprecated  bool
}

// Details holds everything known about a single operation.
type Details struct {
	Path        string
	Method      string
	Operation   *v3.Operation
	Parameters  []*v3.Parameter
	RequestBody *v3.RequestBody
	Responses   *v3.Responses
}

// Load reads an OpenAPI specification from a local file or an
// http(s) URL and builds the v3 model.
func Load(source string) (*Catalog, error) {
	var specBytes []byte
	var err error

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		client := &http.Client{Timeout: 30 * time.Second}
		resp, err := client.Get(source)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch OpenAPI document: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("failed to fetch OpenAPI document: status %d", resp.StatusCode)
		}
		specBytes, err = io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read OpenAPI document: %w", err)
		}
	} else {
		specBytes, err = os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("failed to read OpenAPI file: %w", err)
		}
	}

	return LoadBytes(specBytes)
}

// LoadBytes parses an OpenAPI specification from raw bytes.
func LoadBytes(specBytes []byte) (*Catalog, error) {
	document, err := libopenapi.NewDocument(specBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI document: %w", err)
	}

	model, errs := document.BuildV3Model()
	if errs != nil {
		return nil, fmt.Errorf("failed to build v3 model: %v", errs)
	}

	return &Catalog{document: document, model: &model.Model}, nil
}

// Title returns the API title from the info block.
func (c *Catalog) Title() string {
	if c.model.Info == nil {
		return ""
	}
	return c.model.Info.Title
}

// ServerURLs returns the server URLs declared in the document, with a
// localhost fallback when none are declared.
func (c *Catalog) ServerURLs() []string {
	servers := c.model.Servers
	if len(servers) == 0 {
		return []string{"http://localhost"}
	}

	urls := make([]string, 0, len(servers))
	for _, server := range servers {
		if server != nil && server.URL != "" {
			urls = append(urls, server.URL)
		}
	}
	if len(urls) == 0 {
		return []string{"http://localhost"}
	}
	return urls
}

// methodOrder keeps the operation listing stable across runs. The
// underlying path items are an ordered map, methods within one path
// are not.
var methodOrder = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}

func pathItemOperations(item *v3.PathItem) map[string]*v3.Operation {
	return map[string]*v3.Operation{
		"GET":     item.Get,
		"POST":    item.Post,
		"PUT":     item.Put,
		"PATCH":   item.Patch,
		"DELETE":  item.Delete,
		"HEAD":    item.Head,
		"OPTIONS": item.Options,
	}
}

// Operations lists every operation in the document, in document order.
func (c *Catalog) Operations() []Operation {
	var operations []Operation

	paths := c.model.Paths
	if paths == nil || paths.PathItems == nil {
		return operations
	}

	for pair := paths.PathItems.First(); pair != nil; pair = pair.Next() {
		path := pair.Key()
		item := pair.Value()
		if item == nil {
			continue
		}

		ops := pathItemOperations(item)
		for _, method := range methodOrder {
			op := ops[method]
			if op == nil {
				continue
			}

			// The router prompt wants one line per operation;
			// description wins over summary when both exist.
			summary := op.Description
			if summary == "" {
				summary = op.Summary
			}

			var tags []string
			tags = append(tags, op.Tags...)

			operations = append(operations, Operation{
				Method:      method,
				Path:        path,
				OperationID: op.OperationId,
				Summary:     summary,
				Tags:        tags,
				Deprecated:  op.Deprecated != nil && *op.Deprecated,
			})
		}
	}

	return operations
}

// Details returns the full definition of a single operation.
func (c *Catalog) Details(path, method string) (*Details, error) {
	paths := c.model.Paths
	if paths == nil || paths.PathItems == nil {
		return nil, fmt.Errorf("%w: %s %s", ErrOperationNotFound, method, path)
	}

	var item *v3.PathItem
	for pair := paths.PathItems.First(); pair != nil; pair = pair.Next() {
		if pair.Key() == path {
			item = pair.Value()
			break
		}
	}
	if item == nil {
		return nil, fmt.Errorf("%w: %s %s", ErrOperationNotFound, method, path)
	}

	operation := pathItemOperations(item)[strings.ToUpper(method)]
	if operation == nil {
		return nil, fmt.Errorf("%w: %s %s", ErrOperationNotFound, method, path)
	}

	details := &Details{
		Path:      path,
		Method:    strings.ToUpper(method),
		Operation: operation,
		Responses: operation.Responses,
	}

	// Path-level parameters apply to every operation under the path.
	details.Parameters = append(details.Parameters, item.Parameters...)
	details.Parameters = append(details.Parameters, operation.Parameters...)

	if operation.RequestBody != nil {
		details.RequestBody = operation.RequestBody
	}

	return details, nil
}
