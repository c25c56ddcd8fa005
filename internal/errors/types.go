// Package errors defines the structured error model shared by the generator
// pipeline. Every failure the pipeline can report carries a type and a code so
// callers can match on it with errors.Is regardless of the wrapped cause.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeRender     ErrorType = "render"
	ErrorTypeExternal   ErrorType = "external"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeInternal   ErrorType = "internal"
)

// Common error codes.
const (
	ErrCodeModuleExists          = "ERR_MODULE_EXISTS"
	ErrCodeInvalidName           = "ERR_INVALID_NAME"
	ErrCodeStubRead              = "ERR_STUB_READ"
	ErrCodeWriteFailed           = "ERR_WRITE_FAILED"
	ErrCodeArtifactExists        = "ERR_ARTIFACT_EXISTS"
	ErrCodeUnresolvedPlaceholder = "ERR_UNRESOLVED_PLACEHOLDER"
	ErrCodeCollaboratorFailed    = "ERR_COLLABORATOR_FAILED"
	ErrCodeConfigInvalid         = "ERR_CONFIG_INVALID"
	ErrCodeInternal              = "ERR_INTERNAL"
)

// Sentinels for errors.Is. Only Type and Code take part in the comparison.
var (
	ErrModuleAlreadyExists         = &GeneratorError{Type: ErrorTypeValidation, Code: ErrCodeModuleExists}
	ErrInvalidName                 = &GeneratorError{Type: ErrorTypeValidation, Code: ErrCodeInvalidName}
	ErrStubReadFailure             = &GeneratorError{Type: ErrorTypeIO, Code: ErrCodeStubRead}
	ErrWriteFailure                = &GeneratorError{Type: ErrorTypeIO, Code: ErrCodeWriteFailed}
	ErrArtifactExists              = &GeneratorError{Type: ErrorTypeValidation, Code: ErrCodeArtifactExists}
	ErrUnresolvedPlaceholder       = &GeneratorError{Type: ErrorTypeRender, Code: ErrCodeUnresolvedPlaceholder}
	ErrExternalCollaboratorFailure = &GeneratorError{Type: ErrorTypeExternal, Code: ErrCodeCollaboratorFailed}
	ErrConfigInvalid               = &GeneratorError{Type: ErrorTypeConfig, Code: ErrCodeConfigInvalid}
)

// GeneratorError is a structured error type with context.
type GeneratorError struct {
	Type        ErrorType
	Code        string
	Message     string
	Cause       error
	Context     map[string]interface{}
	Artifact    string
	FilePath    string
	Recoverable bool
}

// Error implements the error interface.
func (e *GeneratorError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.Artifact != "" {
		parts = append(parts, "artifact:"+e.Artifact)
	}

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}

	if e.Message != "" {
		parts = append(parts, e.Message)
	}

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *GeneratorError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison.
func (e *GeneratorError) Is(target error) bool {
	var t *GeneratorError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *GeneratorError) WithContext(key string, value interface{}) *GeneratorError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithArtifact records the artifact kind the error relates to.
func (e *GeneratorError) WithArtifact(artifact string) *GeneratorError {
	e.Artifact = artifact

	return e
}

// WithPath records the file-system path the error relates to.
func (e *GeneratorError) WithPath(path string) *GeneratorError {
	e.FilePath = path

	return e
}

// Error creation functions

// NewModuleExistsError reports that the module root directory is already present.
func NewModuleExistsError(module, root string) *GeneratorError {
	return &GeneratorError{
		Type:        ErrorTypeValidation,
		Code:        ErrCodeModuleExists,
		Message:     fmt.Sprintf("%s folder already exists", module),
		FilePath:    root,
		Recoverable: true,
	}
}

// NewInvalidNameError creates a name validation error.
func NewInvalidNameError(name, reason string) *GeneratorError {
	return &GeneratorError{
		Type:        ErrorTypeValidation,
		Code:        ErrCodeInvalidName,
		Message:     fmt.Sprintf("invalid module name %q: %s", name, reason),
		Recoverable: true,
	}
}

// NewStubReadError creates an error for a missing or unreadable stub.
func NewStubReadError(stub string, cause error) *GeneratorError {
	return &GeneratorError{
		Type:     ErrorTypeIO,
		Code:     ErrCodeStubRead,
		Message:  "failed to read stub",
		Cause:    cause,
		FilePath: stub,
	}
}

// NewWriteError creates an error for a failed directory creation or file write.
func NewWriteError(path string, cause error) *GeneratorError {
	return &GeneratorError{
		Type:     ErrorTypeIO,
		Code:     ErrCodeWriteFailed,
		Message:  "failed to write artifact",
		Cause:    cause,
		FilePath: path,
	}
}

// NewArtifactExistsError reports an artifact file that would be overwritten.
func NewArtifactExistsError(path string) *GeneratorError {
	return &GeneratorError{
		Type:        ErrorTypeValidation,
		Code:        ErrCodeArtifactExists,
		Message:     "artifact already exists and overwrite is disabled",
		FilePath:    path,
		Recoverable: true,
	}
}

// NewUnresolvedPlaceholderError reports placeholders left in rendered content.
func NewUnresolvedPlaceholderError(artifact string, tokens []string) *GeneratorError {
	return &GeneratorError{
		Type:     ErrorTypeRender,
		Code:     ErrCodeUnresolvedPlaceholder,
		Message:  "unresolved placeholders: " + strings.Join(tokens, ", "),
		Artifact: artifact,
		Context:  map[string]interface{}{"tokens": tokens},
	}
}

// NewCollaboratorError wraps a failure of an external hook collaborator.
func NewCollaboratorError(hook string, cause error) *GeneratorError {
	return &GeneratorError{
		Type:    ErrorTypeExternal,
		Code:    ErrCodeCollaboratorFailed,
		Message: hook + " failed",
		Cause:   cause,
		Context: map[string]interface{}{"hook": hook},
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(message string) *GeneratorError {
	return &GeneratorError{
		Type:    ErrorTypeConfig,
		Code:    ErrCodeConfigInvalid,
		Message: message,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(message string, cause error) *GeneratorError {
	return &GeneratorError{
		Type:    ErrorTypeInternal,
		Code:    ErrCodeInternal,
		Message: message,
		Cause:   cause,
	}
}

// IsRecoverable checks if an error is recoverable by the user, for example by
// choosing another module name.
func IsRecoverable(err error) bool {
	var ge *GeneratorError
	if errors.As(err, &ge) {
		return ge.Recoverable
	}

	return false
}

// CodeOf returns the error code carried by err, or "" when err is not a
// GeneratorError.
func CodeOf(err error) string {
	var ge *GeneratorError
	if errors.As(err, &ge) {
		return ge.Code
	}

	return ""
}
