// Package cmd provides the command-line interface for modforge with
// configuration management supporting multiple configuration sources.
//
// Configuration System:
//
//	The CLI supports flexible configuration through multiple sources with clear precedence:
//	1. Command-line flags (--config, --base-path, etc.) - highest priority
//	2. MODFORGE_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (MODFORGE_GENERATOR_ROOT_NAMESPACE, etc.)
//	4. Configuration files (.modforge.yml) - lowest priority
//
// Environment Variables:
//
//	MODFORGE_CONFIG_FILE: Path to custom configuration file
//	MODFORGE_GENERATOR_ROOT_NAMESPACE: Override the root namespace
//	MODFORGE_GENERATOR_BASE_PATH: Override the base path
//	MODFORGE_HOOKS_MIGRATION: Override the migration command
//	And more following the MODFORGE_<SECTION>_<OPTION> pattern
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/conneroisu/modforge/internal/config"
	"github.com/conneroisu/modforge/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

// newRootCmd builds the command tree. Every call returns fresh flag state.
func newRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "modforge",
		Short: "Scaffold Laravel-style modules from stubs",
		Long: `Modforge generates the interface, model, repository, form request,
controller, routes, route service provider and service provider of a new
module from a set of stubs, wiring every cross-reference between them.

Quick Start:
  modforge generate-module Blog             Generate App\Blog
  modforge generate-module Shop/Order -m    Generate App\Shop\Order with a migration
  modforge stubs publish                    Copy the stubs for customization
  modforge stubs list                       Show stubs and their placeholders

Command Aliases:
  generate-module (make:module, module)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd.ErrOrStderr(), cfgFile)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is .modforge.yml, can also use MODFORGE_CONFIG_FILE env var)")
	flags.StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")
	flags.String("base-path", ".", "directory the module namespace is rooted at")

	viper.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	viper.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))
	viper.BindPFlag(config.KeyBasePath, flags.Lookup("base-path"))

	rootCmd.AddCommand(newGenerateModuleCmd())
	rootCmd.AddCommand(newStubsCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command and prints a failure line on error.
func Execute() error {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), errorStyle.Render("Error: "+err.Error()))
		return err
	}
	return nil
}

// initConfig initializes the configuration system with support for multiple config sources.
//
// Configuration Loading Priority (highest to lowest):
//  1. --config flag: Explicitly specified config file path
//  2. MODFORGE_CONFIG_FILE environment variable: Custom config file path
//  3. Default: .modforge.yml in current directory
//
// An explicitly named file must be readable. A missing default file is
// ignored and the defaults apply.
func initConfig(stderr io.Writer, cfgFile string) error {
	explicit := cfgFile
	if explicit == "" {
		explicit = os.Getenv("MODFORGE_CONFIG_FILE")
	}

	if explicit != "" {
		viper.SetConfigFile(explicit)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".modforge")
	}

	// Examples: MODFORGE_GENERATOR_BASE_PATH, MODFORGE_HOOKS_MIGRATION
	viper.SetEnvPrefix("MODFORGE")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && explicit == "" {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	fmt.Fprintln(stderr, "Using config file:", viper.ConfigFileUsed())
	return nil
}

// newLogger builds the CLI logger from the loaded configuration.
func newLogger(cfg *config.Config, output io.Writer) *logging.StructuredLogger {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logging.LevelInfo
	}

	return logging.NewLogger(&logging.LoggerConfig{
		Level:     level,
		Format:    cfg.Log.Format,
		Output:    output,
		Component: "cli",
	})
}
