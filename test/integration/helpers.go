//go:build integration

package integration

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/fivetwenty-io/dataapi/internal/logging"
	"github.com/fivetwenty-io/dataapi/pkg/dataapi"
	"github.com/fivetwenty-io/dataapi/pkg/dataapiclient"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	AppID      string
	APIKey     string
	Endpoint   string
	DataSource string
	Database   string
	Verbose    bool
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		AppID:      os.Getenv("DATAAPI_APP_ID"),
		APIKey:     os.Getenv("DATAAPI_API_KEY"),
		Endpoint:   os.Getenv("DATAAPI_ENDPOINT"),
		DataSource: os.Getenv("DATAAPI_DATA_SOURCE"),
		Database:   os.Getenv("DATAAPI_DATABASE"),
		Verbose:    os.Getenv("DATAAPI_VERBOSE") == "true",
	}
}

// SkipIfMissingConfig skips the test if required config is missing.
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.AppID == "" && config.Endpoint == "" {
		t.Skip("DATAAPI_APP_ID not set, skipping integration test")
	}

	if config.APIKey == "" {
		t.Skip("DATAAPI_API_KEY not set, skipping integration test")
	}

	if config.DataSource == "" || config.Database == "" {
		t.Skip("DATAAPI_DATA_SOURCE and DATAAPI_DATABASE must be set, skipping integration test")
	}
}

// NewClient creates a client for the configured application.
func (config *TestConfig) NewClient() dataapi.Client {
	return dataapiclient.New(&dataapi.Config{
		AppID:             config.AppID,
		APIKey:            config.APIKey,
		Endpoint:          config.Endpoint,
		DefaultDataSource: config.DataSource,
		DefaultDatabase:   config.Database,
		Logger:            logging.NewConsole(config.Verbose),
		Debug:             config.Verbose,
	})
}

// GenerateTestName generates a unique collection name for testing.
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}
