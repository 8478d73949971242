package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-mapper/internal/types"
)

func schemaOf(endpoints ...types.Endpoint) *types.Schema {
	return &types.Schema{Endpoints: endpoints}
}

func ep(method, path string) types.Endpoint {
	return types.Endpoint{Method: method, Path: path}
}

func TestInferNestedSingle(t *testing.T) {
	inferer := NewInferer(Options{})
	result := inferer.Infer(schemaOf(ep("GET", "/users/{userId}/orders/{orderId}")), []string{"orders"})

	require.Len(t, result.Mappings, 1)
	m := result.Mappings[0]
	assert.Equal(t, "GET", m.Method)
	assert.Equal(t, "/users/:userId/orders/:orderId", m.Pattern)
	assert.Equal(t, "orders", m.SourceModel)
	assert.Equal(t, types.ResponseSingle, m.ResponseType)
	assert.Equal(t, "orderId", m.LookupField)
	assert.Equal(t, "orderId", m.LookupParam)
	assert.Equal(t, ConfidenceExact, m.Confidence)
	assert.True(t, m.IsAutoGenerated)
	assert.Contains(t, m.Reason, "exact match")
	assert.Empty(t, result.Unmapped)
	assert.Empty(t, result.Skipped)
}

func TestInferCollectionHasNoLookup(t *testing.T) {
	result := NewInferer(Options{}).Infer(schemaOf(ep("get", "/api/v1/products")), []string{"Product"})

	require.Len(t, result.Mappings, 1)
	m := result.Mappings[0]
	assert.Equal(t, "GET", m.Method)
	assert.Equal(t, "Product", m.SourceModel)
	assert.Equal(t, types.ResponseCollection, m.ResponseType)
	assert.Equal(t, ConfidencePlural, m.Confidence)
	assert.Empty(t, m.LookupField)
	assert.Empty(t, m.LookupParam)
}

func TestInferCreateDefaultsLookupField(t *testing.T) {
	result := NewInferer(Options{}).Infer(schemaOf(ep("POST", "/users")), []string{"users"})

	require.Len(t, result.Mappings, 1)
	assert.Equal(t, types.ResponseSingle, result.Mappings[0].ResponseType)
	assert.Equal(t, "id", result.Mappings[0].LookupField)
	assert.Empty(t, result.Mappings[0].LookupParam)
}

func TestInferUnmapped(t *testing.T) {
	result := NewInferer(Options{}).Infer(schemaOf(
		ep("GET", "/categories"),
		ep("GET", "/{id}"),
	), []string{"Users", "products"})

	assert.Empty(t, result.Mappings)
	require.Len(t, result.Unmapped, 2)
	assert.Equal(t, "categories", result.Unmapped[0].SuggestedModel)
	assert.Equal(t, `No matching model found for "categories"`, result.Unmapped[0].Reason)
	assert.Empty(t, result.Unmapped[1].SuggestedModel)
	assert.Equal(t, "/{id}", result.Unmapped[1].Path)
}

func TestInferSkipTaxonomy(t *testing.T) {
	endpoints := []types.Endpoint{
		ep("GET", "/health"),
		ep("GET", "/healthz"),
		ep("POST", "/auth/login"),
		ep("GET", "/api/auth"),
		ep("GET", "/oauth2/token"),
		ep("POST", "/webhooks/stripe"),
		ep("POST", "/hooks/github"),
		ep("POST", "/graphql"),
		ep("HEAD", "/users"),
		ep("OPTIONS", "/users"),
	}
	result := NewInferer(Options{}).Infer(schemaOf(endpoints...), []string{"users", "health", "graphql", "webhooks"})

	assert.Empty(t, result.Mappings)
	assert.Empty(t, result.Unmapped)
	require.Len(t, result.Skipped, len(endpoints))
	assert.Contains(t, result.Skipped[0].Reason, `"health"`)
	assert.Contains(t, result.Skipped[0].Reason, "health check")
	assert.Contains(t, result.Skipped[2].Reason, `"auth/"`)
	assert.Contains(t, result.Skipped[7].Reason, "GraphQL")
	assert.Equal(t, "Method HEAD is not mappable", result.Skipped[8].Reason)
}

func TestInferDoesNotSkipLookalikes(t *testing.T) {
	result := NewInferer(Options{}).Infer(schemaOf(ep("GET", "/authors")), []string{"authors"})
	require.Len(t, result.Mappings, 1)
	assert.Empty(t, result.Skipped)
}

func TestInferExtraSkipRules(t *testing.T) {
	inferer := NewInferer(Options{SkipRules: []SkipRule{{Pattern: "Metrics", Category: "metrics"}}})
	result := inferer.Infer(schemaOf(ep("GET", "/metrics"), ep("GET", "/users")), []string{"users", "metrics"})

	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "/metrics", result.Skipped[0].Path)
	require.Len(t, result.Mappings, 1)
}

func TestInferExtraSkipMethodsKeepDefaults(t *testing.T) {
	inferer := NewInferer(Options{SkipMethods: []string{"trace"}})
	result := inferer.Infer(schemaOf(
		ep("TRACE", "/users"),
		ep("HEAD", "/users"),
		ep("OPTIONS", "/users"),
		ep("GET", "/users"),
	), []string{"users"})

	require.Len(t, result.Skipped, 3)
	assert.Equal(t, "Method TRACE is not mappable", result.Skipped[0].Reason)
	assert.Equal(t, "Method HEAD is not mappable", result.Skipped[1].Reason)
	assert.Equal(t, "Method OPTIONS is not mappable", result.Skipped[2].Reason)
	require.Len(t, result.Mappings, 1)
}

func TestInferKeepsDeclaredParamNames(t *testing.T) {
	pathParam := func(name string) types.Parameter {
		return types.Parameter{Name: name, In: "path", Required: true}
	}
	tests := []struct {
		name        string
		endpoint    types.Endpoint
		model       string
		lookupField string
		lookupParam string
	}{
		{
			name: "hyphenated param",
			endpoint: types.Endpoint{Method: "GET", Path: "/pets/{pet-id}",
				Parameters: []types.Parameter{pathParam("pet-id")}},
			model:       "pets",
			lookupField: "pet-id",
			lookupParam: "pet-id",
		},
		{
			name: "nested, declared out of order",
			endpoint: types.Endpoint{Method: "DELETE", Path: "/owners/{owner-id}/pets/{pet-id}",
				Parameters: []types.Parameter{pathParam("pet-id"), pathParam("owner-id"), {Name: "force", In: "query"}}},
			model:       "pets",
			lookupField: "pet-id",
			lookupParam: "pet-id",
		},
		{
			name:        "undeclared hyphenated param falls back to the token",
			endpoint:    ep("GET", "/pets/{pet-id}"),
			model:       "pets",
			lookupField: "pet",
			lookupParam: "pet",
		},
		{
			name: "declared names that are not in the path are ignored",
			endpoint: types.Endpoint{Method: "GET", Path: "/pets/{id}",
				Parameters: []types.Parameter{pathParam("petId")}},
			model:       "pets",
			lookupField: "id",
			lookupParam: "id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewInferer(Options{}).Infer(schemaOf(tt.endpoint), []string{tt.model})
			require.Len(t, result.Mappings, 1)
			m := result.Mappings[0]
			assert.Equal(t, types.ResponseSingle, m.ResponseType)
			assert.Equal(t, tt.lookupField, m.LookupField)
			assert.Equal(t, tt.lookupParam, m.LookupParam)
		})
	}
}

func TestInferPreservesOrderAndIsDeterministic(t *testing.T) {
	schema := schemaOf(
		ep("GET", "/users"),
		ep("GET", "/health"),
		ep("GET", "/users/{id}"),
		ep("GET", "/widgets"),
		ep("DELETE", "/users/{id}"),
	)
	models := []string{"users"}
	inferer := NewInferer(Options{})

	first := inferer.Infer(schema, models)
	second := inferer.Infer(schema, models)
	assert.Equal(t, first, second)

	require.Len(t, first.Mappings, 3)
	assert.Equal(t, "/users", first.Mappings[0].Pattern)
	assert.Equal(t, "/users/:id", first.Mappings[1].Pattern)
	assert.Equal(t, "DELETE", first.Mappings[2].Method)
	assert.Equal(t, models, first.AvailableModels)
}

func TestInferConfidenceBounds(t *testing.T) {
	schema := schemaOf(
		ep("GET", "/users"),
		ep("GET", "/user"),
		ep("GET", "/user-profiles"),
	)
	result := NewInferer(Options{}).Infer(schema, []string{"users", "UserProfiles"})
	require.Len(t, result.Mappings, 3)
	for _, m := range result.Mappings {
		assert.GreaterOrEqual(t, m.Confidence, 0)
		assert.LessOrEqual(t, m.Confidence, 100)
	}
	assert.Equal(t, 100, result.Mappings[0].Confidence)
}

func TestInferNilSchema(t *testing.T) {
	result := NewInferer(Options{}).Infer(nil, nil)
	assert.Empty(t, result.Mappings)
	assert.NotNil(t, result.AvailableModels)
}
