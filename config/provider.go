package config

import (
	"errors"
	"github.com/knadh/koanf/maps"
)

var errReadBytes = errors.New("map provider can only be read as a map")

// mapProvider is a koanf provider backed by a map, with nested keys delimited by ".".
type mapProvider map[string]any

func (m mapProvider) ReadBytes() ([]byte, error) {
	return nil, errReadBytes
}

func (m mapProvider) Read() (map[string]any, error) {
	return maps.Unflatten(m, "."), nil
}
