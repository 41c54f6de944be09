package template

import "errors"

var (
	ErrNoFiles = errors.New("no files provided")
	ErrRender  = errors.New("could not render template")
)
