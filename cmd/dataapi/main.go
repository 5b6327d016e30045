package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/dataapi/cmd/dataapi/commands"
	"github.com/fivetwenty-io/dataapi/internal/constants"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "dataapi",
	Short: "MongoDB Atlas Data API CLI",
	Long: `A command-line interface for the MongoDB Atlas Data API.

Find, insert, update, replace, delete, and aggregate documents over HTTPS
using an App Services application ID and API key.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.dataapi/config.yml)")
	rootCmd.PersistentFlags().String(commands.KeyAppID, "", "App Services application ID")
	rootCmd.PersistentFlags().String(commands.KeyAPIKey, "", "Data API key")
	rootCmd.PersistentFlags().String(commands.KeyEndpoint, "", "full Data API base URL (overrides --app-id)")
	rootCmd.PersistentFlags().String(commands.KeyDataSource, "", "default data source (cluster name)")
	rootCmd.PersistentFlags().String(commands.KeyDatabase, "", "default database")
	rootCmd.PersistentFlags().StringP(commands.KeyOutput, "o", constants.FormatTable, "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolP(commands.KeyVerbose, "v", false, "verbose output")

	// Bind flags to viper
	for _, key := range []string{
		"config",
		commands.KeyAppID,
		commands.KeyAPIKey,
		commands.KeyEndpoint,
		commands.KeyDataSource,
		commands.KeyDatabase,
		commands.KeyOutput,
		commands.KeyVerbose,
	} {
		_ = viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key))
	}

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewLoginCommand())
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewDocumentsCommand())
}

func initConfig() {
	// A missing .env file is not an error
	_ = godotenv.Load()

	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, constants.ConfigDirName)

		err = os.MkdirAll(configDir, constants.ConfigDirPerm)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating config directory: %v\n", err)
		}

		// Search config in ~/.dataapi/config.yml
		viper.AddConfigPath(configDir)
		viper.SetConfigType(constants.ConfigFileType)
		viper.SetConfigName(constants.ConfigFileName)
	}

	// DATAAPI_APP_ID, DATAAPI_API_KEY, ...
	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err == nil && viper.GetBool(commands.KeyVerbose) {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
