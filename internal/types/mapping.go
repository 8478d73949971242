package types

// ResponseType tells whether an endpoint returns one record or many
type ResponseType string

const (
	ResponseSingle     ResponseType = "single"
	ResponseCollection ResponseType = "collection"
)

// EndpointMapping associates an endpoint pattern with a data model
type EndpointMapping struct {
	Method          string       `json:"method" yaml:"method"`
	Pattern         string       `json:"pattern" yaml:"pattern"`
	SourceModel     string       `json:"sourceModel" yaml:"sourceModel"`
	ResponseType    ResponseType `json:"responseType" yaml:"responseType"`
	LookupField     string       `json:"lookupField,omitempty" yaml:"lookupField,omitempty"`
	LookupParam     string       `json:"lookupParam,omitempty" yaml:"lookupParam,omitempty"`
	Confidence      int          `json:"confidence" yaml:"confidence"`
	IsAutoGenerated bool         `json:"isAutoGenerated" yaml:"isAutoGenerated"`
	Reason          string       `json:"reason" yaml:"reason"`
}

// UnmappedEndpoint is an endpoint no available model could be resolved for
type UnmappedEndpoint struct {
	Method         string `json:"method" yaml:"method"`
	Path           string `json:"path" yaml:"path"`
	Reason         string `json:"reason" yaml:"reason"`
	SuggestedModel string `json:"suggestedModel,omitempty" yaml:"suggestedModel,omitempty"`
}

// SkippedEndpoint is an endpoint excluded on purpose; Reason names the rule
type SkippedEndpoint struct {
	Method string `json:"method" yaml:"method"`
	Path   string `json:"path" yaml:"path"`
	Reason string `json:"reason" yaml:"reason"`
}

// ModelMatch is the result of resolving a path-derived name against known models
type ModelMatch struct {
	Model      string
	Confidence int
	Rule       string
}

// InferenceResult holds the outcome of one inference run
type InferenceResult struct {
	Mappings        []EndpointMapping  `json:"mappings" yaml:"mappings"`
	Unmapped        []UnmappedEndpoint `json:"unmapped" yaml:"unmapped"`
	Skipped         []SkippedEndpoint  `json:"skipped" yaml:"skipped"`
	AvailableModels []string           `json:"availableModels" yaml:"availableModels"`
}
