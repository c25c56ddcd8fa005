// Package config provides configuration management for modforge using Viper
// for loading from files, environment variables, and command-line flags.
//
// The configuration covers the generator (root namespace, base path, artifact
// extension, stub overrides, overwrite policy), the shell commands run by the
// migration, autoload and config cache hooks, and logging.
package config

import (
	"github.com/spf13/viper"
)

// Keys of every configuration value, shared by defaults, flag binding and Load.
const (
	KeyRootNamespace = "generator.root_namespace"
	KeyBasePath      = "generator.base_path"
	KeyExtension     = "generator.extension"
	KeyStubsDir      = "generator.stubs_dir"
	KeyOverwrite     = "generator.overwrite"

	KeyHookMigration   = "hooks.migration"
	KeyHookAutoload    = "hooks.autoload"
	KeyHookConfigCache = "hooks.config_cache"
	KeyHookDir         = "hooks.dir"

	KeyLogLevel  = "log.level"
	KeyLogFormat = "log.format"
)

type Config struct {
	Generator GeneratorConfig `mapstructure:"generator" yaml:"generator"`
	Hooks     HooksConfig     `mapstructure:"hooks" yaml:"hooks"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
}

type GeneratorConfig struct {
	RootNamespace string `mapstructure:"root_namespace" yaml:"root_namespace"`
	BasePath      string `mapstructure:"base_path" yaml:"base_path"`
	Extension     string `mapstructure:"extension" yaml:"extension"`
	StubsDir      string `mapstructure:"stubs_dir" yaml:"stubs_dir"`
	Overwrite     bool   `mapstructure:"overwrite" yaml:"overwrite"`
}

// HooksConfig holds the shell command lines of the external collaborators.
// An empty command disables its hook.
type HooksConfig struct {
	Migration   string `mapstructure:"migration" yaml:"migration"`
	Autoload    string `mapstructure:"autoload" yaml:"autoload"`
	ConfigCache string `mapstructure:"config_cache" yaml:"config_cache"`
	// Dir is the working directory of the commands; empty means the base path.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Generator: GeneratorConfig{
			RootNamespace: "App",
			BasePath:      ".",
			Extension:     "php",
		},
		Hooks: HooksConfig{
			Migration:   "php artisan make:migration {{name}} --create={{table}}",
			Autoload:    "composer dump-autoload",
			ConfigCache: "php artisan config:cache",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// SetDefaults registers the default values with v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyRootNamespace, d.Generator.RootNamespace)
	v.SetDefault(KeyBasePath, d.Generator.BasePath)
	v.SetDefault(KeyExtension, d.Generator.Extension)
	v.SetDefault(KeyStubsDir, d.Generator.StubsDir)
	v.SetDefault(KeyOverwrite, d.Generator.Overwrite)
	v.SetDefault(KeyHookMigration, d.Hooks.Migration)
	v.SetDefault(KeyHookAutoload, d.Hooks.Autoload)
	v.SetDefault(KeyHookConfigCache, d.Hooks.ConfigCache)
	v.SetDefault(KeyHookDir, d.Hooks.Dir)
	v.SetDefault(KeyLogLevel, d.Log.Level)
	v.SetDefault(KeyLogFormat, d.Log.Format)
}

// Load reads the configuration from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads and validates the configuration held by v.
func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Hooks are allowed to be blanked explicitly, so only the generator and
	// log sections get defaults re-applied for empty values.
	d := Default()
	if config.Generator.RootNamespace == "" {
		config.Generator.RootNamespace = d.Generator.RootNamespace
	}
	if config.Generator.BasePath == "" {
		config.Generator.BasePath = d.Generator.BasePath
	}
	if config.Hooks.Dir == "" {
		config.Hooks.Dir = config.Generator.BasePath
	}
	if config.Log.Level == "" {
		config.Log.Level = d.Log.Level
	}
	if config.Log.Format == "" {
		config.Log.Format = d.Log.Format
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
