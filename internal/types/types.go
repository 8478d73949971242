package types

import "strings"

// Endpoint represents an API endpoint with its parameters as read from a schema.
// Inference never mutates it.
type Endpoint struct {
	Method      string      `json:"method"`
	Path        string      `json:"path"`
	OperationID string      `json:"operationId,omitempty"`
	Parameters  []Parameter `json:"parameters,omitempty"`
	Responses   []string    `json:"responses,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
}

// Parameter represents an API parameter
type Parameter struct {
	Name     string `json:"name"`
	In       string `json:"in"`
	Required bool   `json:"required"`
	Type     string `json:"type,omitempty"`
}

// PathParams returns the path parameters in declaration order
func (e Endpoint) PathParams() []Parameter {
	return e.paramsIn("path")
}

// QueryParams returns the query parameters in declaration order
func (e Endpoint) QueryParams() []Parameter {
	return e.paramsIn("query")
}

func (e Endpoint) paramsIn(location string) []Parameter {
	var params []Parameter
	for _, p := range e.Parameters {
		if strings.EqualFold(p.In, location) {
			params = append(params, p)
		}
	}
	return params
}

// Schema is a parsed API schema
type Schema struct {
	Title     string     `json:"title,omitempty"`
	Version   string     `json:"version,omitempty"`
	Endpoints []Endpoint `json:"endpoints"`
}
