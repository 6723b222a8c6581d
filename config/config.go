package config

import (
	"errors"
	"fmt"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"os"
	"strings"
)

const (
	EnvPrefix = "DEFAULTCMD_"        // EnvPrefix is the prefix of environment variables read by [Load].
	PathEnv   = EnvPrefix + "CONFIG" // PathEnv names the environment variable holding the config file path.
)

var (
	ErrLoad = errors.New("failed to load configuration")
)

// Config is the configuration of the sample shell.
type Config struct {
	Prompt          string `koanf:"prompt"`
	Intro           string `koanf:"intro"`
	HistoryFile     string `koanf:"history_file"`
	DefaultIfNoArgs bool   `koanf:"default_if_no_args"`
	Log             Log    `koanf:"log"`
}

// Log configures diagnostic logging.
type Log struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	File   string `koanf:"file"`
}

// Defaults returns the values used for keys that aren't set anywhere else.
func Defaults() map[string]any {
	return map[string]any{
		"prompt":             "",
		"intro":              "",
		"history_file":       "",
		"default_if_no_args": false,
		"log.level":          "info",
		"log.format":         "text",
		"log.file":           "",
	}
}

// Load reads configuration, with later sources overriding earlier ones:
//  1. [Defaults]
//  2. The YAML file at path, if path isn't empty
//  3. Environment variables starting with [EnvPrefix]
//  4. The overrides map, usually populated from flags
//
// Keys in overrides use dots to reach nested values, like "log.level".
func Load(path string, overrides map[string]any) (Config, error) {
	var cfg Config
	k := koanf.New(".")
	if err := k.Load(mapProvider(Defaults()), nil); err != nil {
		return cfg, fmt.Errorf("%w: defaults: %w", ErrLoad, err)
	}
	if len(path) > 0 {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return cfg, fmt.Errorf("%w: file %s: %w", ErrLoad, path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return cfg, fmt.Errorf("%w: environment: %w", ErrLoad, err)
	}
	if len(overrides) > 0 {
		if err := k.Load(mapProvider(overrides), nil); err != nil {
			return cfg, fmt.Errorf("%w: overrides: %w", ErrLoad, err)
		}
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return cfg, nil
}

// envKey maps DEFAULTCMD_LOG_LEVEL to log.level, and DEFAULTCMD_HISTORY_FILE to history_file.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(s, "log_"); ok {
		return "log." + rest
	}
	return s
}

// PathFromEnv returns the config file path set in [PathEnv], or an empty string if it's not set.
// Surrounding whitespace is ignored.
func PathFromEnv() string {
	return strings.TrimSpace(os.Getenv(PathEnv))
}
