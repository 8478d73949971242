package mapping

// Confidence tiers
const (
	ConfidenceExact      = 100
	ConfidencePlural     = 90
	ConfidenceNormalized = 80
	ConfidenceGenerated  = 70
)

// Matcher rule names, reported in ModelMatch.Rule and mapping reasons
const (
	RuleExact      = "exact match"
	RulePlural     = "singular/plural match"
	RuleNormalized = "normalized match"
)

// DefaultBasePath prefixes synthesized CRUD endpoints
const DefaultBasePath = "/api"

// DefaultLookupField is used when a single-record endpoint has no path parameter
const DefaultLookupField = "id"

// SkipRule excludes endpoints whose lower-cased path contains Pattern
type SkipRule struct {
	Pattern  string `yaml:"pattern"`
	Category string `yaml:"category"`
}

// DefaultSkipRules is the deny-list applied before inference, checked in order
var DefaultSkipRules = []SkipRule{
	{Pattern: "health", Category: "health check"},
	{Pattern: "healthz", Category: "health check"},
	{Pattern: "auth/", Category: "authentication"},
	{Pattern: "oauth", Category: "authentication"},
	{Pattern: "webhook", Category: "webhook"},
	{Pattern: "hooks/", Category: "webhook"},
	{Pattern: "graphql", Category: "GraphQL"},
}

// DefaultSkipMethods are never mapped
var DefaultSkipMethods = []string{"HEAD", "OPTIONS"}

// versionSegments are dropped before deriving a model name
var versionSegments = map[string]bool{
	"api": true,
}
