package log

import (
	"context"
	"errors"
	"log/slog"
)

// NewDualHandler wraps a primary slog.Handler and, optionally, a secondary
// handler that only receives error level records.
func NewDualHandler(primary slog.Handler, secondary slog.Handler) slog.Handler {
	return &dualHandler{
		primary:   primary,
		secondary: secondary,
	}
}

type dualHandler struct {
	primary   slog.Handler
	secondary slog.Handler
}

func (h *dualHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.primary != nil && h.primary.Enabled(ctx, level) {
		return true
	}
	return h.secondary != nil && level >= slog.LevelError && h.secondary.Enabled(ctx, level)
}

func (h *dualHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	if h.primary != nil && h.primary.Enabled(ctx, record.Level) {
		errs = append(errs, h.primary.Handle(ctx, record.Clone()))
	}
	if h.secondary != nil && record.Level >= slog.LevelError && h.secondary.Enabled(ctx, record.Level) {
		errs = append(errs, h.secondary.Handle(ctx, record.Clone()))
	}
	return errors.Join(errs...)
}

func (h *dualHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := &dualHandler{}
	if h.primary != nil {
		clone.primary = h.primary.WithAttrs(attrs)
	}
	if h.secondary != nil {
		clone.secondary = h.secondary.WithAttrs(attrs)
	}
	return clone
}

func (h *dualHandler) WithGroup(name string) slog.Handler {
	clone := &dualHandler{}
	if h.primary != nil {
		clone.primary = h.primary.WithGroup(name)
	}
	if h.secondary != nil {
		clone.secondary = h.secondary.WithGroup(name)
	}
	return clone
}
