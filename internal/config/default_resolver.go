package config

import (
	"github.com/tauraamui/longshot/pkg/configdef"
)

// DefaultResolver loads config from path, or from the usual locations
// when path is empty.
func DefaultResolver(path string) configdef.Resolver {
	return defaultResolver{path: path}
}

type defaultResolver struct {
	path string
}

func (d defaultResolver) Resolve() (configdef.Values, error) {
	return load(d.path)
}
