package app

import "errors"

var ErrNotRunning = errors.New("not running")
