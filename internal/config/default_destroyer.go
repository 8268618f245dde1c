package config

import "github.com/tauraamui/longshot/pkg/configdef"

func DefaultDestroyer(path string) configdef.Destroyer {
	return defaultDestroyer{path: path}
}

type defaultDestroyer struct {
	path string
}

func (d defaultDestroyer) Destroy() error {
	return destroy(d.path)
}
