package config

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, Config{
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}, cfg)
}

func TestLoad_Sources(t *testing.T) {
	path := writeConfig(t, `
prompt: "file $ "
intro: Welcome
history_file: /tmp/history
default_if_no_args: true
log:
  level: warn
  format: json
`)

	tests := map[string]struct {
		env       map[string]string
		overrides map[string]any
		expected  Config
	}{
		"File only": {
			expected: Config{
				Prompt:          "file $ ",
				Intro:           "Welcome",
				HistoryFile:     "/tmp/history",
				DefaultIfNoArgs: true,
				Log:             Log{Level: "warn", Format: "json"},
			},
		},
		"Env overrides file": {
			env: map[string]string{
				"DEFAULTCMD_PROMPT":             "env $ ",
				"DEFAULTCMD_LOG_LEVEL":          "debug",
				"DEFAULTCMD_LOG_FILE":           "/tmp/log",
				"DEFAULTCMD_DEFAULT_IF_NO_ARGS": "false",
			},
			expected: Config{
				Prompt:      "env $ ",
				Intro:       "Welcome",
				HistoryFile: "/tmp/history",
				Log:         Log{Level: "debug", Format: "json", File: "/tmp/log"},
			},
		},
		"Overrides win": {
			env: map[string]string{
				"DEFAULTCMD_LOG_LEVEL": "debug",
			},
			overrides: map[string]any{
				"log.level":    "error",
				"history_file": "",
			},
			expected: Config{
				Prompt:          "file $ ",
				Intro:           "Welcome",
				DefaultIfNoArgs: true,
				Log:             Log{Level: "error", Format: "json"},
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			for key, val := range tc.env {
				t.Setenv(key, val)
			}
			cfg, err := Load(path, tc.overrides)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, cfg)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.ErrorIs(t, err, ErrLoad)

	_, err = Load(writeConfig(t, "prompt: [unclosed"), nil)
	assert.ErrorIs(t, err, ErrLoad)
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"DEFAULTCMD_PROMPT":             "prompt",
		"DEFAULTCMD_HISTORY_FILE":       "history_file",
		"DEFAULTCMD_DEFAULT_IF_NO_ARGS": "default_if_no_args",
		"DEFAULTCMD_LOG_LEVEL":          "log.level",
		"DEFAULTCMD_LOG_FORMAT":         "log.format",
	}
	for in, expected := range tests {
		assert.Equal(t, expected, envKey(in), in)
	}
}

func TestPathFromEnv(t *testing.T) {
	t.Setenv(PathEnv, "")
	assert.Empty(t, PathFromEnv())
	t.Setenv(PathEnv, "  /etc/defaultcmd.yaml ")
	assert.Equal(t, "/etc/defaultcmd.yaml", PathFromEnv())
}

func TestMapProvider(t *testing.T) {
	p := mapProvider{"log.level": "debug", "prompt": "$ "}
	_, err := p.ReadBytes()
	assert.Error(t, err)
	m, err := p.Read()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"log":    map[string]any{"level": "debug"},
		"prompt": "$ ",
	}, m)
}
