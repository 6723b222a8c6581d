package cli

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
)

// DefaultHistorySize is the number of lines a [History] keeps unless changed with [History.SetMaxSize].
const DefaultHistorySize = 1000

// History is a bounded list of lines entered into a [Shell].
// It's only persisted if it was created with a file path.
type History struct {
	entries []string
	maxSize int
	file    string
}

// NewHistory creates a [History] persisted to file.
// An empty file path keeps history in memory only.
func NewHistory(file string) *History {
	return &History{
		maxSize: DefaultHistorySize,
		file:    file,
	}
}

// SetMaxSize changes the number of lines kept, evicting the oldest lines if needed.
// Sizes less than 1 are ignored.
func (h *History) SetMaxSize(size int) {
	if size < 1 {
		return
	}
	h.maxSize = size
	h.trim()
}

// File returns the path history is persisted to, if any.
func (h *History) File() string {
	return h.file
}

// Len returns the number of lines in the history.
func (h *History) Len() int {
	return len(h.entries)
}

// Add appends a line, evicting the oldest line if the history is full.
func (h *History) Add(line string) {
	h.entries = append(h.entries, line)
	h.trim()
}

func (h *History) trim() {
	if over := len(h.entries) - h.maxSize; over > 0 {
		h.entries = h.entries[over:]
	}
}

// Get returns the line at index, where 0 is the most recent line.
// An empty string is returned if the index is out of range.
func (h *History) Get(index int) string {
	if index < 0 || index >= len(h.entries) {
		return ""
	}
	return h.entries[len(h.entries)-1-index]
}

// Load replaces the history with the lines in the history file.
// A missing file is not an error.
func (h *History) Load() error {
	if len(h.file) == 0 {
		return nil
	}
	f, err := os.Open(h.file)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	h.entries = h.entries[:0]
	scanner := bufio.NewScanner(f)
	scanner.Buffer(nil, InteractiveMaxLineSize+1)
	for scanner.Scan() {
		h.entries = append(h.entries, scanner.Text())
	}
	h.trim()
	return scanner.Err()
}

// Save writes the history to the history file, creating its directory if needed.
func (h *History) Save() error {
	if len(h.file) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(h.file), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(h.file, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	for _, entry := range h.entries {
		if _, err := w.WriteString(entry + "\n"); err != nil {
			_ = f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
