package version

import "errors"

var (
	ErrNoVersionGroup = errors.New("pattern has no version group")
)
