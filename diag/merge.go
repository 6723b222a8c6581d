package diag

import (
	"context"
	"errors"
	"log/slog"
)

type multiHandler []slog.Handler

var _ slog.Handler = (multiHandler)(nil)

// MergeHandlers will merge many [slog.Handler] into one.
// Each record is passed to every handler enabled for its level.
func MergeHandlers(a, b slog.Handler, others ...slog.Handler) slog.Handler {
	return append(multiHandler{a, b}, others...)
}

func (m multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m multiHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, h := range m {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		errs = append(errs, h.Handle(ctx, record.Clone()))
	}
	return errors.Join(errs...)
}

func (m multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(multiHandler, len(m))
	for i, h := range m {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (m multiHandler) WithGroup(name string) slog.Handler {
	out := make(multiHandler, len(m))
	for i, h := range m {
		out[i] = h.WithGroup(name)
	}
	return out
}
