package diag

import (
	"bytes"
	"github.com/stretchr/testify/assert"
	"log/slog"
	"strings"
	"testing"
)

func TestDedupeHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewDedupeHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))
	log = log.With("testkey", 1)
	log = log.With("testkey", 2)
	log = log.With("testkey", 3)
	log = log.With("testkey", 4)
	log.Info("Test")
	handler := log.Handler().(*DedupeHandler)
	assert.Equal(t, 1, strings.Count(buf.String(), "testkey"))
	assert.Contains(t, buf.String(), "testkey=4")
	assert.Len(t, handler.attrs, 1)
	assert.Len(t, handler.index, 1)
}

func TestDedupeHandler_RecordAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewDedupeHandler(slog.NewTextHandler(&buf, nil)))
	log = log.With("command", "echo")
	log.Info("Test", "command", "add")
	assert.Equal(t, 1, strings.Count(buf.String(), "command"))
	assert.Contains(t, buf.String(), "command=add")

	buf.Reset()
	log.Info("Again")
	assert.Contains(t, buf.String(), "command=echo", "Record attributes should not leak into the handler")
}

func TestDedupeHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewDedupeHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))
	log = log.With("testkey", 1)
	log = log.With("testkey", 2)
	log = log.WithGroup("group")
	log = log.With("groupkey", 1)
	log = log.With("groupkey", 2)
	log.Info("Test")
	handler := log.Handler().(*DedupeHandler)
	assert.Equal(t, 1, strings.Count(buf.String(), "testkey"))
	assert.Equal(t, 1, strings.Count(buf.String(), "group.groupkey"))
	assert.Len(t, handler.attrs, 2)
	assert.Len(t, handler.index, 2)
}

func TestDedupeHandler_SiblingsAreIndependent(t *testing.T) {
	var buf bytes.Buffer
	parent := slog.New(NewDedupeHandler(slog.NewTextHandler(&buf, nil))).With("key", "parent")
	_ = parent.With("key", "child")
	parent.Info("Test")
	assert.Contains(t, buf.String(), "key=parent")
}

func TestDedupeHandler_NilNext(t *testing.T) {
	assert.Panics(t, func() {
		NewDedupeHandler(nil)
	})
}
