package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fivetwenty-io/dataapi/internal/constants"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var apiKey string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store the Data API key",
		Long:  "Save the application ID and API key to the config file. The key is read without echo when not passed with --api-key.",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			if config.AppID == "" && config.Endpoint == "" {
				return constants.ErrNoAppConfigured
			}

			if apiKey == "" {
				key, err := readAPIKey(cmd)
				if err != nil {
					return err
				}

				apiKey = key
			}

			apiKey = strings.TrimSpace(apiKey)
			if apiKey == "" {
				return constants.ErrEmptyAPIKey
			}

			config.APIKey = apiKey

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "API key saved for %s\n", valueOrNA(config.AppID))

			return nil
		},
	}

	cmd.Flags().StringVar(&apiKey, "key", "", "API key (prompted when omitted)")

	return cmd
}

func readAPIKey(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd()) //nolint:gosec
	if !term.IsTerminal(fd) {
		return "", constants.ErrNotATerminal
	}

	_, _ = fmt.Fprint(cmd.OutOrStdout(), "API key: ")

	key, err := term.ReadPassword(fd)
	if err != nil {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	return string(key), nil
}
