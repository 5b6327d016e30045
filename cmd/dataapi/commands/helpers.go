package commands

import (
	"context"
	"strings"

	"github.com/spf13/viper"

	"github.com/fivetwenty-io/dataapi/internal/constants"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"
	Masked       = "***"

	// visibleSecretChars is how many trailing characters of a secret are shown.
	visibleSecretChars = 4
)

// commandContext returns the context for a single CLI invocation.
func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), constants.DefaultCommandTimeout)
}

func maskSecret(secret string) string {
	if secret == "" {
		return ""
	}

	if len(secret) <= visibleSecretChars*2 {
		return Masked
	}

	return Masked + secret[len(secret)-visibleSecretChars:]
}

func valueOrNA(value string) string {
	if value == "" {
		return NotAvailable
	}

	return value
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(format) {
	case constants.FormatJSON, constants.FormatYAML, constants.FormatTable:
		return true
	default:
		return false
	}
}

func outputFormat() string {
	return strings.ToLower(viper.GetString(KeyOutput))
}
