package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"schema-mapper/internal/logger"
	"schema-mapper/internal/types"
)

// methodOrder fixes the order endpoints of one path are emitted in
var methodOrder = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodHead,
	http.MethodOptions,
	http.MethodTrace,
}

// candidatePaths are probed when a source URL does not serve a document itself
var candidatePaths = []string{
	"/swagger/v1/swagger.json",
	"/swagger.json",
	"/openapi.json",
	"/v1/swagger.json",
	"/api/swagger.json",
	"/api/v1/swagger.json",
	"/openapi.yaml",
}

// SwaggerParser handles parsing of Swagger/OpenAPI specifications
type SwaggerParser struct {
	source string
	client *http.Client
	logger *logger.Logger
}

// NewSwaggerParser creates a parser for source, an http(s) URL or a file path
func NewSwaggerParser(source string) *SwaggerParser {
	return &SwaggerParser{
		source: source,
		client: &http.Client{},
	}
}

// WithLogger makes the parser report fetch attempts
func (p *SwaggerParser) WithLogger(l *logger.Logger) *SwaggerParser {
	p.logger = l
	return p
}

// WithHTTPClient replaces the client used for remote sources
func (p *SwaggerParser) WithHTTPClient(c *http.Client) *SwaggerParser {
	p.client = c
	return p
}

// Source returns the location the parser reads from
func (p *SwaggerParser) Source() string {
	return p.source
}

// ParseSchema reads the source document and returns its endpoints
func (p *SwaggerParser) ParseSchema(ctx context.Context) (*types.Schema, error) {
	var (
		data []byte
		err  error
	)
	if isRemote(p.source) {
		data, err = p.fetchRemote(ctx)
	} else {
		data, err = os.ReadFile(p.source)
		if err != nil {
			err = fmt.Errorf("failed to read schema file: %w", err)
		}
	}
	if err != nil {
		return nil, err
	}
	return ParseData(data)
}

func (p *SwaggerParser) fetchRemote(ctx context.Context) ([]byte, error) {
	urls := []string{p.source}
	base := strings.TrimRight(p.source, "/")
	if !hasDocumentExtension(base) {
		for _, c := range candidatePaths {
			urls = append(urls, base+c)
		}
	}

	var lastErr error
	for _, url := range urls {
		p.logf("Trying to fetch OpenAPI documentation from: %s", url)
		data, err := p.fetch(ctx, url)
		if err == nil {
			if _, err = loadDocument(data); err == nil {
				p.logf("Successfully fetched OpenAPI documentation from: %s", url)
				return data, nil
			}
		}
		lastErr = err
		p.logf("Failed to fetch from %s: %v", url, err)
		if ctx.Err() != nil {
			break
		}
	}
	return nil, fmt.Errorf("failed to fetch OpenAPI documentation from any known URL: %w", lastErr)
}

// fetch downloads url and returns the body
func (p *SwaggerParser) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

func (p *SwaggerParser) logf(format string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Printf(format, args...)
	}
}

// ParseData parses an OpenAPI 3 or Swagger 2 document in JSON or YAML
func ParseData(data []byte) (*types.Schema, error) {
	doc, err := loadDocument(data)
	if err != nil {
		return nil, err
	}
	return extractSchema(doc), nil
}

type versionProbe struct {
	Swagger string `json:"swagger" yaml:"swagger"`
	OpenAPI string `json:"openapi" yaml:"openapi"`
}

func loadDocument(data []byte) (*openapi3.T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("schema document is empty")
	}
	isJSON := trimmed[0] == '{'

	var probe versionProbe
	unmarshal := yaml.Unmarshal
	if isJSON {
		unmarshal = json.Unmarshal
	}
	if err := unmarshal(trimmed, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI doc: %w", err)
	}

	switch {
	case strings.HasPrefix(probe.Swagger, "2"):
		return convertSwagger2(trimmed, isJSON)
	case probe.OpenAPI != "":
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(trimmed)
		if err != nil {
			return nil, fmt.Errorf("failed to parse OpenAPI doc: %w", err)
		}
		return doc, nil
	default:
		return nil, fmt.Errorf("document declares neither an openapi nor a swagger version")
	}
}

func convertSwagger2(data []byte, isJSON bool) (*openapi3.T, error) {
	if !isJSON {
		var raw interface{}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse Swagger doc: %w", err)
		}
		converted, err := json.Marshal(jsonCompatible(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to convert Swagger doc to JSON: %w", err)
		}
		data = converted
	}

	var doc2 openapi2.T
	if err := json.Unmarshal(data, &doc2); err != nil {
		return nil, fmt.Errorf("failed to parse Swagger doc: %w", err)
	}
	doc, err := openapi2conv.ToV3(&doc2)
	if err != nil {
		return nil, fmt.Errorf("failed to convert Swagger doc to OpenAPI 3: %w", err)
	}
	return doc, nil
}

// jsonCompatible rewrites YAML maps with non-string keys (e.g. status codes)
// into string-keyed maps that encoding/json accepts.
func jsonCompatible(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, val := range t {
			t[k] = jsonCompatible(val)
		}
		return t
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = jsonCompatible(val)
		}
		return m
	case []interface{}:
		for i, val := range t {
			t[i] = jsonCompatible(val)
		}
		return t
	default:
		return v
	}
}

// extractSchema walks the document in a stable order: paths sorted, methods in methodOrder
func extractSchema(doc *openapi3.T) *types.Schema {
	schema := &types.Schema{Endpoints: []types.Endpoint{}}
	if doc.Info != nil {
		schema.Title = doc.Info.Title
		schema.Version = doc.Info.Version
	}
	if doc.Paths == nil {
		return schema
	}

	paths := doc.Paths.Map()
	keys := make([]string, 0, len(paths))
	for path := range paths {
		keys = append(keys, path)
	}
	sort.Strings(keys)

	for _, path := range keys {
		pathItem := paths[path]
		if pathItem == nil {
			continue
		}
		for _, method := range methodOrder {
			operation := pathItem.GetOperation(method)
			if operation == nil {
				continue
			}
			schema.Endpoints = append(schema.Endpoints, buildEndpoint(method, path, pathItem.Parameters, operation))
		}
	}
	return schema
}

func buildEndpoint(method, path string, shared openapi3.Parameters, operation *openapi3.Operation) types.Endpoint {
	endpoint := types.Endpoint{
		Method:      method,
		Path:        path,
		OperationID: operation.OperationID,
		Parameters:  make([]types.Parameter, 0),
		Tags:        operation.Tags,
	}

	// operation parameters override path-level ones with the same name and location
	overridden := make(map[string]bool)
	for _, ref := range operation.Parameters {
		if ref != nil && ref.Value != nil {
			overridden[ref.Value.In+":"+ref.Value.Name] = true
		}
	}
	for _, ref := range shared {
		if ref == nil || ref.Value == nil || overridden[ref.Value.In+":"+ref.Value.Name] {
			continue
		}
		endpoint.Parameters = append(endpoint.Parameters, convertParameter(ref.Value))
	}
	for _, ref := range operation.Parameters {
		if ref == nil || ref.Value == nil {
			continue
		}
		endpoint.Parameters = append(endpoint.Parameters, convertParameter(ref.Value))
	}

	if operation.Responses != nil {
		for code := range operation.Responses.Map() {
			endpoint.Responses = append(endpoint.Responses, code)
		}
		sort.Strings(endpoint.Responses)
	}
	return endpoint
}

func convertParameter(param *openapi3.Parameter) types.Parameter {
	p := types.Parameter{
		Name:     param.Name,
		In:       param.In,
		Required: param.Required,
	}
	if param.Schema != nil && param.Schema.Value != nil && param.Schema.Value.Type != nil {
		if t := *param.Schema.Value.Type; len(t) > 0 {
			p.Type = t[0]
		}
	}
	return p
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func hasDocumentExtension(url string) bool {
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		if strings.HasSuffix(strings.ToLower(url), ext) {
			return true
		}
	}
	return false
}
