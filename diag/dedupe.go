package diag

import (
	"context"
	"log/slog"
	"maps"
	"slices"
)

var _ slog.Handler = (*DedupeHandler)(nil)

// DedupeHandler keeps only the latest value for each attribute key.
// Groups are flattened into dotted key prefixes.
type DedupeHandler struct {
	next   slog.Handler
	prefix string
	index  map[string]int
	attrs  []slog.Attr
}

func NewDedupeHandler(next slog.Handler) *DedupeHandler {
	if next == nil {
		panic("nil next handler")
	}
	return &DedupeHandler{
		next:  next,
		index: map[string]int{},
	}
}

func (h *DedupeHandler) clone() *DedupeHandler {
	return &DedupeHandler{
		next:   h.next,
		prefix: h.prefix,
		index:  maps.Clone(h.index),
		attrs:  slices.Clone(h.attrs),
	}
}

func (h *DedupeHandler) add(attr slog.Attr) {
	attr.Key = h.prefix + attr.Key
	if i, ok := h.index[attr.Key]; ok {
		h.attrs[i] = attr
		return
	}
	h.index[attr.Key] = len(h.attrs)
	h.attrs = append(h.attrs, attr)
}

func (h *DedupeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *DedupeHandler) Handle(ctx context.Context, record slog.Record) error {
	merged := h
	if record.NumAttrs() > 0 {
		merged = h.clone()
		record.Attrs(func(attr slog.Attr) bool {
			merged.add(attr)
			return true
		})
		record = slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	}
	return h.next.WithAttrs(merged.attrs).Handle(ctx, record)
}

func (h *DedupeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	cp := h.clone()
	for _, attr := range attrs {
		cp.add(attr)
	}
	return cp
}

func (h *DedupeHandler) WithGroup(name string) slog.Handler {
	if len(name) == 0 {
		return h
	}
	cp := h.clone()
	cp.prefix += name + "."
	return cp
}
