package config

import (
	"fmt"
	"strings"

	"github.com/conneroisu/modforge/internal/errors"
	"github.com/conneroisu/modforge/internal/logging"
	"github.com/conneroisu/modforge/internal/naming"
	"mvdan.cc/sh/v3/syntax"
)

// ValidationError represents a configuration validation error with suggestions
type ValidationError struct {
	Field       string
	Value       interface{}
	Message     string
	Suggestions []string
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", ve.Field, ve.Message)
}

// ValidationResult holds the result of configuration validation
type ValidationResult struct {
	Valid    bool
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings
func (vr *ValidationResult) HasWarnings() bool {
	return len(vr.Warnings) > 0
}

// String returns a formatted string of all validation issues
func (vr *ValidationResult) String() string {
	var builder strings.Builder

	if len(vr.Errors) > 0 {
		builder.WriteString("Validation Errors:\n")
		for _, err := range vr.Errors {
			builder.WriteString(fmt.Sprintf("  • %s: %s\n", err.Field, err.Message))
			for _, suggestion := range err.Suggestions {
				builder.WriteString(fmt.Sprintf("    - %s\n", suggestion))
			}
		}
	}

	if len(vr.Warnings) > 0 {
		if len(vr.Errors) > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString("Validation Warnings:\n")
		for _, warning := range vr.Warnings {
			builder.WriteString(fmt.Sprintf("  • %s: %s\n", warning.Field, warning.Message))
		}
	}

	return builder.String()
}

// ValidateConfigWithDetails performs validation with per-field feedback
func ValidateConfigWithDetails(config *Config) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	validateGeneratorConfigDetails(&config.Generator, result)
	validateHooksConfigDetails(&config.Hooks, result)
	validateLogConfigDetails(&config.Log, result)

	result.Valid = !result.HasErrors()

	return result
}

func validateGeneratorConfigDetails(config *GeneratorConfig, result *ValidationResult) {
	if _, err := naming.Resolve("Module", config.RootNamespace); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "generator.root_namespace",
			Value:   config.RootNamespace,
			Message: "root namespace must be one or more identifiers separated by \\ or /",
			Suggestions: []string{
				"Use the PSR-4 namespace of the host project, usually 'App'",
			},
		})
	}

	if strings.TrimSpace(config.BasePath) == "" {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "generator.base_path",
			Value:   config.BasePath,
			Message: "base path cannot be empty",
			Suggestions: []string{"Use '.' for the current directory"},
		})
	}

	ext := strings.TrimPrefix(config.Extension, ".")
	if ext == "" {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "generator.extension",
			Value:   config.Extension,
			Message: "artifact extension cannot be empty",
			Suggestions: []string{"Use 'php' for Laravel projects"},
		})
	} else if strings.ContainsAny(ext, `/\. `) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "generator.extension",
			Value:   config.Extension,
			Message: "artifact extension must be a single file suffix",
		})
	}

	if config.Overwrite {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "generator.overwrite",
			Value:   config.Overwrite,
			Message: "existing artifact files will be replaced without prompting",
		})
	}
}

func validateHooksConfigDetails(config *HooksConfig, result *ValidationResult) {
	commands := map[string]string{
		"hooks.migration":    config.Migration,
		"hooks.autoload":     config.Autoload,
		"hooks.config_cache": config.ConfigCache,
	}

	for _, field := range []string{"hooks.migration", "hooks.autoload", "hooks.config_cache"} {
		command := commands[field]
		if strings.TrimSpace(command) == "" {
			continue
		}
		if _, err := syntax.NewParser().Parse(strings.NewReader(command), field); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field,
				Value:   command,
				Message: fmt.Sprintf("command is not valid shell: %v", err),
			})
		}
	}

	if config.Migration != "" && !strings.Contains(config.Migration, "{{table}}") {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "hooks.migration",
			Value:   config.Migration,
			Message: "migration command does not reference {{table}}",
		})
	}
}

func validateLogConfigDetails(config *LogConfig, result *ValidationResult) {
	if _, err := logging.ParseLevel(config.Level); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "log.level",
			Value:   config.Level,
			Message: err.Error(),
		})
	}

	if config.Format != "text" && config.Format != "json" {
		result.Errors = append(result.Errors, ValidationError{
			Field:       "log.format",
			Value:       config.Format,
			Message:     fmt.Sprintf("unsupported log format %q", config.Format),
			Suggestions: []string{"Use 'text' or 'json'"},
		})
	}
}

// validateConfig returns a ConfigInvalid error describing every field error.
func validateConfig(config *Config) error {
	result := ValidateConfigWithDetails(config)
	if !result.HasErrors() {
		return nil
	}

	messages := make([]string, 0, len(result.Errors))
	for _, ve := range result.Errors {
		messages = append(messages, ve.Error())
	}

	return errors.NewConfigError(strings.Join(messages, "; ")).WithContext("fields", len(result.Errors))
}
