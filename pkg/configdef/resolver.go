package configdef

import "errors"

var ErrConfigAlreadyExists = errors.New("config file already exists")
var ErrConfigNotFound = errors.New("config file not found")

type Resolver interface {
	Resolve() (Values, error)
}

type Creator interface {
	Create() error
}

type Destroyer interface {
	Destroy() error
}
