package cli

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHistory_Add(t *testing.T) {
	h := NewHistory("")
	h.SetMaxSize(2)
	h.Add("a")
	h.Add("b")
	h.Add("c")
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, "c", h.Get(0))
	assert.Equal(t, "b", h.Get(1))
	assert.Empty(t, h.Get(2))
	assert.Empty(t, h.Get(-1))

	h.SetMaxSize(0)
	h.Add("d")
	assert.Equal(t, 2, h.Len(), "Invalid sizes should be ignored")

	h.SetMaxSize(1)
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, "d", h.Get(0))
}

func TestHistory_LoadSave(t *testing.T) {
	file := filepath.Join(t.TempDir(), "history")
	h := NewHistory(file)
	require.NoError(t, h.Load(), "Missing history should not be an error")
	assert.Equal(t, 0, h.Len())

	h.Add("first")
	h.Add("second")
	require.NoError(t, h.Save())

	info, err := os.Stat(file)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded := NewHistory(file)
	loaded.SetMaxSize(1)
	require.NoError(t, loaded.Load())
	assert.Equal(t, 1, loaded.Len())
	assert.Equal(t, "second", loaded.Get(0))
}

func TestHistory_LoadLongLine(t *testing.T) {
	file := filepath.Join(t.TempDir(), "history")
	long := "echo " + strings.Repeat("x", 100*1024)
	h := NewHistory(file)
	h.Add(long)
	h.Add("echo b")
	require.NoError(t, h.Save())

	loaded := NewHistory(file)
	require.NoError(t, loaded.Load())
	assert.Equal(t, 2, loaded.Len())
	assert.Equal(t, long, loaded.Get(1))
}

func TestHistory_InMemory(t *testing.T) {
	h := NewHistory("")
	h.Add("line")
	assert.NoError(t, h.Save())
	assert.NoError(t, h.Load())
	assert.Equal(t, 1, h.Len(), "In-memory history should not be reloaded")
}
