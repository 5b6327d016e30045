package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/dataapi/internal/constants"
	"github.com/fivetwenty-io/dataapi/internal/logging"
	"github.com/fivetwenty-io/dataapi/pkg/dataapi"
	"github.com/fivetwenty-io/dataapi/pkg/dataapiclient"
)

// Configuration keys, shared by flags, the config file, and DATAAPI_* variables.
const (
	KeyAppID      = "app-id"
	KeyAPIKey     = "api-key"
	KeyEndpoint   = "endpoint"
	KeyDataSource = "data-source"
	KeyDatabase   = "database"
	KeyOutput     = "output"
	KeyVerbose    = "verbose"
)

// Config represents the CLI configuration.
type Config struct {
	AppID      string `json:"app-id,omitempty"      yaml:"app-id,omitempty"`
	APIKey     string `json:"api-key,omitempty"     yaml:"api-key,omitempty"`
	Endpoint   string `json:"endpoint,omitempty"    yaml:"endpoint,omitempty"`
	DataSource string `json:"data-source,omitempty" yaml:"data-source,omitempty"`
	Database   string `json:"database,omitempty"    yaml:"database,omitempty"`
	Output     string `json:"output,omitempty"      yaml:"output,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage the application, API key, and default data source and database used by the CLI",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective CLI configuration. The API key is masked.",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.APIKey = maskSecret(config.APIKey)

			switch viper.GetString(KeyOutput) {
			case constants.FormatJSON:
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

				return encoder.Encode(config)
			case constants.FormatYAML:
				encoder := yaml.NewEncoder(cmd.OutOrStdout())

				return encoder.Encode(config)
			default:
				table := tablewriter.NewWriter(cmd.OutOrStdout())
				table.Header("Property", "Value")
				_ = table.Append([]string{"App ID", valueOrNA(config.AppID)})
				_ = table.Append([]string{"API Key", valueOrNA(config.APIKey)})
				_ = table.Append([]string{"Endpoint", valueOrNA(config.Endpoint)})
				_ = table.Append([]string{"Data Source", valueOrNA(config.DataSource)})
				_ = table.Append([]string{"Database", valueOrNA(config.Database)})
				_ = table.Append([]string{"Output", valueOrNA(config.Output)})

				err := table.Render()
				if err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			}
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Keys: app-id, api-key, endpoint, data-source, database, output",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			err := setConfigValue(config, args[0], args[1])
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", args[0])

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value from the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			err := setConfigValue(config, args[0], "")
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", args[0])

			return nil
		},
	}
}

func setConfigValue(config *Config, key, value string) error {
	switch key {
	case KeyAppID:
		config.AppID = value
	case KeyAPIKey:
		config.APIKey = value
	case KeyEndpoint:
		config.Endpoint = value
	case KeyDataSource:
		config.DataSource = value
	case KeyDatabase:
		config.Database = value
	case KeyOutput:
		if value != "" && !isSupportedFormat(value) {
			return fmt.Errorf("%w: %s", constants.ErrUnsupportedFormat, value)
		}

		config.Output = value
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

// loadConfig reads the effective configuration from viper: flags, then
// DATAAPI_* environment variables, then the config file.
func loadConfig() *Config {
	return &Config{
		AppID:      viper.GetString(KeyAppID),
		APIKey:     viper.GetString(KeyAPIKey),
		Endpoint:   viper.GetString(KeyEndpoint),
		DataSource: viper.GetString(KeyDataSource),
		Database:   viper.GetString(KeyDatabase),
		Output:     viper.GetString(KeyOutput),
	}
}

// configFilePath returns the file the configuration is persisted to.
func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, constants.ConfigDirName, constants.ConfigFileName+"."+constants.ConfigFileType), nil
}

func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// CreateClient builds a Data API client from the effective configuration.
func CreateClient() (dataapi.Client, error) {
	config := loadConfig()

	if config.AppID == "" && config.Endpoint == "" {
		return nil, constants.ErrNoAppConfigured
	}

	if config.APIKey == "" {
		return nil, constants.ErrNoAPIKeyConfigured
	}

	verbose := viper.GetBool(KeyVerbose)

	return dataapiclient.New(&dataapi.Config{
		AppID:             config.AppID,
		APIKey:            config.APIKey,
		Endpoint:          config.Endpoint,
		DefaultDataSource: config.DataSource,
		DefaultDatabase:   config.Database,
		Logger:            logging.NewConsole(verbose),
		Debug:             verbose,
	}), nil
}
