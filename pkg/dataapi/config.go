package dataapi

import (
	"net/http"
)

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a dataapi.Client.
//
// The client does not validate the configuration. A missing AppID or APIKey
// produces a client whose calls are rejected by the remote API, and those
// rejections surface in Result.Error like any other failure.
type Config struct {
	// AppID: the Data API application identifier. It is interpolated into
	// https://data.mongodb-api.com/app/<AppID>/endpoint/data/v1.
	AppID string
	// APIKey: sent verbatim in the api-key header of every request.
	APIKey string
	// Endpoint: optional full base URL. When set it replaces the URL built
	// from AppID (regional deployments, proxies, tests).
	Endpoint string

	// DefaultDataSource: used when a request leaves DataSource empty.
	DefaultDataSource string
	// DefaultDatabase: used when a request leaves Database empty.
	DefaultDatabase string

	// Optional configurations
	// Logger: receives the diagnostics emitted for failed calls. When nil a
	// zap production logger writing to stderr is used.
	Logger Logger
	// Debug: enables request/response logging at debug level.
	Debug bool
	// HTTPClient: optional underlying client, e.g. with a custom transport.
	// No timeout is configured by this package; set one here or use the
	// context passed to each operation.
	HTTPClient *http.Client
}
