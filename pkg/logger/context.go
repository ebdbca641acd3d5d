package logger

import (
	"context"
	"log/slog"
)

type fieldsKey struct{}

// With attaches key/value pairs to ctx, after any already attached.
func With(ctx context.Context, fields ...any) context.Context {
	if len(fields) == 0 {
		return ctx
	}
	carried := Fields(ctx)
	merged := make([]any, 0, len(carried)+len(fields))
	merged = append(merged, carried...)
	merged = append(merged, fields...)
	return context.WithValue(ctx, fieldsKey{}, merged)
}

// Fields returns the pairs attached to ctx with With.
func Fields(ctx context.Context) []any {
	fields, _ := ctx.Value(fieldsKey{}).([]any)
	return fields
}

// From returns the default logger decorated with the context fields.
func From(ctx context.Context) *slog.Logger {
	return FromBase(ctx, LoggerWrapper())
}

// FromBase decorates base with the context fields.
func FromBase(ctx context.Context, base *slog.Logger) *slog.Logger {
	fields := Fields(ctx)
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}
