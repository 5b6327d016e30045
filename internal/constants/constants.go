package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// Data API endpoint.
const (
	// DefaultHost is the global Data API host.
	DefaultHost = "data.mongodb-api.com"

	// BaseURLTemplate is formatted with the host and the application ID.
	BaseURLTemplate = "https://%s/app/%s/endpoint/data/v1"
)

// HTTP headers.
const (
	// HeaderContentType is the content type header name.
	HeaderContentType = "Content-Type"

	// HeaderAPIKey carries the static API key.
	HeaderAPIKey = "api-key"

	// ContentTypeJSON is the only payload encoding sent.
	ContentTypeJSON = "application/json"
)

// Pagination defaults for find.
const (
	// DefaultPageSize is the limit sent when a find request has no page size.
	DefaultPageSize = 10

	// DefaultPageNumber is the page used when a find request has no page number.
	DefaultPageNumber = 1
)

// CLI settings.
const (
	// ConfigDirName is the directory under $HOME holding the CLI config.
	ConfigDirName = ".dataapi"

	// ConfigFileName is the config file name without extension.
	ConfigFileName = "config"

	// ConfigFileType is the config file format.
	ConfigFileType = "yml"

	// EnvPrefix is the prefix of environment variables read by the CLI.
	EnvPrefix = "DATAAPI"

	// DefaultCommandTimeout bounds a single CLI invocation.
	DefaultCommandTimeout = 60 * time.Second
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"

	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2
)

// Metrics.
const (
	// MetricsNamespace prefixes every exported metric.
	MetricsNamespace = "dataapi_client"
)
