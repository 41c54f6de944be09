package controller

import "errors"

var ErrRenderPanic = errors.New("panic while rendering")
