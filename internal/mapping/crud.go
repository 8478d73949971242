package mapping

import (
	"fmt"
	"strings"

	"schema-mapper/internal/types"
)

// CRUDOptions configures SynthesizeCRUD
type CRUDOptions struct {
	// BasePath prefixes every generated path. Empty means DefaultBasePath; "/" means none.
	BasePath string
}

type crudRoute struct {
	operation    string
	method       string
	withID       bool
	responseType types.ResponseType
}

// Standard operations, in emission order:
//   - list:   GET    /resources
//   - get:    GET    /resources/:id
//   - create: POST   /resources
//   - update: PUT    /resources/:id
//   - delete: DELETE /resources/:id
var crudRoutes = []crudRoute{
	{operation: "list", method: "GET", responseType: types.ResponseCollection},
	{operation: "get", method: "GET", withID: true, responseType: types.ResponseSingle},
	{operation: "create", method: "POST", responseType: types.ResponseSingle},
	{operation: "update", method: "PUT", withID: true, responseType: types.ResponseSingle},
	{operation: "delete", method: "DELETE", withID: true, responseType: types.ResponseSingle},
}

// SynthesizeCRUD generates five conventional endpoints per model, for use when no
// schema exists. Blank model names are ignored.
func SynthesizeCRUD(models []string, opts CRUDOptions) []types.EndpointMapping {
	base := opts.BasePath
	if base == "" {
		base = DefaultBasePath
	}
	base = "/" + strings.Trim(base, "/")
	if base == "/" {
		base = ""
	}

	mappings := make([]types.EndpointMapping, 0, len(models)*len(crudRoutes))
	for _, model := range models {
		name := strings.TrimSpace(model)
		if name == "" {
			continue
		}
		collection := base + "/" + Pluralize(name)

		for _, route := range crudRoutes {
			m := types.EndpointMapping{
				Method:          route.method,
				Pattern:         collection,
				SourceModel:     model,
				ResponseType:    route.responseType,
				Confidence:      ConfidenceGenerated,
				IsAutoGenerated: true,
				Reason:          fmt.Sprintf("Auto-generated %s endpoint for model %q", route.operation, model),
			}
			if route.withID {
				m.Pattern = collection + "/:" + DefaultLookupField
				m.LookupField = DefaultLookupField
				m.LookupParam = DefaultLookupField
			} else if route.responseType == types.ResponseSingle {
				m.LookupField = DefaultLookupField
				m.LookupParam = DefaultLookupField
			}
			mappings = append(mappings, m)
		}
	}
	return mappings
}
