package exception

import (
	"errors"
	"net/http"

	"github.com/oklog/ulid/v2"
)

// maxPrevious bounds how many causes Flatten follows.
const maxPrevious = 16

// A FlattenException is a serializable snapshot of an error
// handed to templates rendering it.
type FlattenException struct {
	// ID uniquely identifies the occurrence, so clients can quote it.
	ID ulid.ULID `json:"id"`

	Class      string            `json:"class"`
	Message    string            `json:"message"`
	StatusCode int               `json:"statusCode"`
	Headers    http.Header       `json:"headers,omitempty"`
	Previous   *FlattenException `json:"previous,omitempty"`
}

// Flatten snapshots err, reported with status code.
// Causes of err, obtained with errors.Unwrap, are flattened into Previous.
func Flatten(err error, code int) *FlattenException {
	if err == nil {
		return nil
	}

	id := ulid.Make()
	root := flatten(err, code, id)

	cur := root
	next := errors.Unwrap(err)
	for i := 0; next != nil && i < maxPrevious; i++ {
		c, _ := StatusOf(next)
		cur.Previous = flatten(next, c, id)
		cur = cur.Previous
		next = errors.Unwrap(next)
	}

	return root
}

func flatten(err error, code int, id ulid.ULID) *FlattenException {
	return &FlattenException{
		ID:         id,
		Class:      ClassOf(err),
		Message:    MessageOf(err),
		StatusCode: code,
		Headers:    HeadersOf(err),
	}
}

// StatusText returns the text of the FlattenException's status code.
func (f *FlattenException) StatusText() string { return http.StatusText(f.StatusCode) }

func (f *FlattenException) Error() string { return f.Message }
