// Package internal contains the core implementation packages for modforge.
//
// This package follows Go's internal package convention, making these
// packages unavailable for import by external modules.
//
// # Package Organization
//
// The internal packages are organized by functional domain, leaves first:
//
//   - naming: Module name resolution, artifact identifiers and pluralization
//   - stubs: Embedded stubs and the override directory loader
//   - render: Token tables and placeholder substitution
//   - writer: Identifier to path mapping and artifact persistence
//   - hooks: Migration, autoload and config cache collaborators
//   - generator: The ordered build pipeline and its state machine
//   - config: Viper-backed configuration with validation
//   - logging: Structured logging over log/slog
//   - errors: The generator error taxonomy
//   - version: Build information
//
// # Data Flow
//
// A raw module name is resolved into a ModuleName, the Namer derives every
// artifact identifier from it, the renderer fills each stub from a token
// table built from those identifiers, and the writer persists the result.
// The generator owns the sequencing, the existence guard and the hook points.
package internal
