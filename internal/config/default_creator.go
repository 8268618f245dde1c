package config

import "github.com/tauraamui/longshot/pkg/configdef"

func DefaultCreator(path string) configdef.Creator {
	return defaultCreator{path: path}
}

type defaultCreator struct {
	path string
}

func (d defaultCreator) Create() error {
	return create(d.path)
}
