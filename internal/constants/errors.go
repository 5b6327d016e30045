package constants

import "errors"

// Configuration errors.
var (
	ErrNoAppConfigured    = errors.New("no application configured, use 'dataapi config set app-id <id>' or --app-id")
	ErrNoAPIKeyConfigured = errors.New("no API key configured, use 'dataapi login' or --api-key")
	ErrUnknownConfigKey   = errors.New("unknown configuration key")
	ErrEmptyAPIKey        = errors.New("API key must not be empty")
)

// Validation errors.
var (
	ErrCollectionRequired = errors.New("--collection flag is required")
	ErrFilterRequired     = errors.New("--filter flag is required")
	ErrDocumentRequired   = errors.New("--document flag is required")
	ErrDocumentsRequired  = errors.New("--documents flag is required")
	ErrUpdateRequired     = errors.New("--update flag is required")
	ErrPipelineRequired   = errors.New("--pipeline flag is required")
	ErrInvalidJSONInput   = errors.New("invalid JSON input")
)

// Operation errors.
var (
	ErrOperationFailed     = errors.New("operation failed")
	ErrUnsupportedFormat   = errors.New("unsupported output format")
	ErrNotATerminal        = errors.New("stdin is not a terminal, pass the key with --key")
	ErrInvalidSortArgument = errors.New("invalid --sort value, expected field:1 or field:-1")
)
