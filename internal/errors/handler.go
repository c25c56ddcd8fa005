package errors

import (
	"context"
	"errors"
)

// Logger interface for error logging.
type Logger interface {
	Error(ctx context.Context, err error, msg string, fields ...interface{})
	Warn(ctx context.Context, err error, msg string, fields ...interface{})
}

// ErrorHandler provides centralized error reporting for the CLI.
type ErrorHandler struct {
	logger Logger
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle logs err with fields matching its type. Recoverable validation
// failures are logged at warn level, everything else at error level.
func (h *ErrorHandler) Handle(ctx context.Context, err error) {
	if err == nil || h.logger == nil {
		return
	}

	var ge *GeneratorError
	if !errors.As(err, &ge) {
		h.logger.Error(ctx, err, "Unhandled error occurred")
		return
	}

	fields := []interface{}{"type", ge.Type, "code", ge.Code}
	if ge.Artifact != "" {
		fields = append(fields, "artifact", ge.Artifact)
	}
	if ge.FilePath != "" {
		fields = append(fields, "path", ge.FilePath)
	}

	switch ge.Type {
	case ErrorTypeValidation:
		h.logger.Warn(ctx, err, "Validation error occurred", fields...)
	case ErrorTypeExternal:
		h.logger.Error(ctx, err, "External collaborator failed", fields...)
	default:
		h.logger.Error(ctx, err, "Error occurred", fields...)
	}
}
