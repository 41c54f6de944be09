package view

import "errors"

var (
	ErrNoEncoder  = errors.New("no encoder for format")
	ErrNoFormat   = errors.New("no format")
	ErrNoTemplate = errors.New("no template")
)
