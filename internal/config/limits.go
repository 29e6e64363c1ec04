package config

const (
	// MaxProjectNameLength is the maximum length for project names.
	// Names are display labels; 255 keeps them short and descriptive.
	MaxProjectNameLength = 255

	// MaxConnectorTypeNameLength is the maximum length for connector type names.
	// Same as project names for consistency.
	MaxConnectorTypeNameLength = 255

	// MaxIDSchemeNameLength is the maximum length for ID scheme names.
	MaxIDSchemeNameLength = 255

	// MaxTargetModuleLength bounds relation lookups. Module paths such as
	// "github.com/org/repo/internal/pkg" rarely exceed a few hundred bytes.
	MaxTargetModuleLength = 1024

	// MaxSchemesPerCIP caps the number of source or target schemes on one CIP.
	MaxSchemesPerCIP = 64

	// MaxRelationFetchConcurrency bounds the number of concurrent relation
	// batch reads when listing connector types with their relations.
	MaxRelationFetchConcurrency = 8

	// MaxRequestBodySize is the cap applied by httputil.ParseJSON.
	MaxRequestBodySize = 10 << 20
)
