package exception

import "errors"

var ErrUnknownClass = errors.New("unknown class")
