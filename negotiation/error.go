package negotiation

import "errors"

var (
	// ErrNotAcceptable reports no acceptable format could be determined.
	// Callers respond with 406 Not Acceptable.
	ErrNotAcceptable = errors.New("not acceptable")

	// ErrStopNegotiation reports negotiation declined to pick a format.
	// Callers use the format the request already declares.
	ErrStopNegotiation = errors.New("negotiation stopped")

	ErrUnknownFormat = errors.New("unknown format")
)
