// Package config loads the configuration of the sample shell with koanf.
//
// Values come from defaults, an optional YAML file, DEFAULTCMD_* environment variables, and finally flag overrides.
// A [Watcher] can reload the file while the shell is running.
package config
