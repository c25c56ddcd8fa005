// Package cmd provides the command-line interface for modforge.
//
// This package implements all CLI commands using the Cobra framework.
//
// # Available Commands
//
//   - generate-module: Generate the artifacts of a new module (aliases
//     make:module, module)
//   - stubs list: List the stubs, their sources and their placeholders
//   - stubs publish: Copy the embedded stubs into a project directory
//   - version: Show build information
//
// # Command Examples
//
//	// Generate App\Blog with its eight artifacts
//	modforge generate-module Blog
//
//	// Generate a nested module and create the "orders" table migration
//	modforge generate-module Shop/Order --migrate
//
//	// Use a custom table name
//	modforge generate-module Blog --migrate=posts
//
//	// Publish stubs for customization
//	modforge stubs publish --dir ./stubs
//
// # Configuration
//
// Commands read .modforge.yml from the working directory, MODFORGE_* environment
// variables and the persistent flags, in increasing order of precedence.
package cmd
