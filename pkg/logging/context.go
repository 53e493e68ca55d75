package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey int

const (
	// loggerKey is the context key for the logger.
	loggerKey contextKey = iota
	// runIDKey is the context key for the run ID.
	runIDKey
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from context, or returns the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return Default()
	}

	if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && logger != nil {
		return logger
	}

	return Default()
}

// Ctx returns a logger from the context or the default logger
// This is a shorter alias for FromContext.
func Ctx(ctx context.Context) *zerolog.Logger {
	return FromContext(ctx)
}

// WithRunID adds a run ID to the context for tracing a reconcile run.
func WithRunID(ctx context.Context, runID string) context.Context {
	ctx = context.WithValue(ctx, runIDKey, runID)

	// Also update the logger with the run ID
	logger := FromContext(ctx)
	newLogger := logger.With().Str("run_id", runID).Logger()
	return WithLogger(ctx, &newLogger)
}

// RunID extracts the run ID from context.
func RunID(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// WithFields adds structured fields to the logger in the context.
func WithFields(ctx context.Context, fields map[string]any) context.Context {
	logger := FromContext(ctx)
	logCtx := logger.With()

	for key, value := range fields {
		logCtx = addFieldToContext(logCtx, key, value)
	}

	newLogger := logCtx.Logger()
	return WithLogger(ctx, &newLogger)
}

// WithField adds a single field to the logger in the context.
func WithField(ctx context.Context, key string, value any) context.Context {
	logger := FromContext(ctx)
	logCtx := logger.With()
	logCtx = addFieldToContext(logCtx, key, value)
	newLogger := logCtx.Logger()
	return WithLogger(ctx, &newLogger)
}

// addFieldToContext adds a field to the logger context based on its type.
func addFieldToContext(ctx zerolog.Context, key string, value any) zerolog.Context {
	switch v := value.(type) {
	case string:
		return ctx.Str(key, v)
	case int:
		return ctx.Int(key, v)
	case int64:
		return ctx.Int64(key, v)
	case uint:
		return ctx.Uint(key, v)
	case uint64:
		return ctx.Uint64(key, v)
	case float32:
		return ctx.Float32(key, v)
	case float64:
		return ctx.Float64(key, v)
	case bool:
		return ctx.Bool(key, v)
	case error:
		if key == "error" || key == "err" {
			return ctx.Err(v)
		}
		return ctx.Str(key, v.Error())
	default:
		return ctx.Interface(key, v)
	}
}

// WithOrder adds order context to the logger.
func WithOrder(ctx context.Context, orderID string) context.Context {
	return WithField(ctx, "order_id", orderID)
}

// WithPatient adds patient context to the logger.
func WithPatient(ctx context.Context, patientID string) context.Context {
	return WithField(ctx, "patient_id", patientID)
}

// WithOperation adds operation context to the logger.
func WithOperation(ctx context.Context, operation string) context.Context {
	return WithField(ctx, "operation", operation)
}

// WithError adds an error to the context logger.
func WithError(ctx context.Context, err error) context.Context {
	if err == nil {
		return ctx
	}
	return WithField(ctx, "error", err)
}
