package buffer

import "net/http"

// A Writer is an http.ResponseWriter capturing writes in a buffer of a *Stack.
//
// While its buffer is open, the status code and body are held back.
// Once the buffer is closed, by Close or by draining the *Stack,
// writes go straight to the underlying http.ResponseWriter.
// Headers are always those of the underlying http.ResponseWriter.
type Writer struct {
	http.ResponseWriter
	stack *Stack
	frame *frame
}

// NewWriter opens a new buffer in s capturing writes to w.
func NewWriter(w http.ResponseWriter, s *Stack) *Writer {
	return &Writer{ResponseWriter: w, stack: s, frame: s.push()}
}

// Write appends p to the buffer, or writes it to the client once the buffer is closed.
func (w *Writer) Write(p []byte) (int, error) {
	if w.stack.write(w.frame, p) {
		return len(p), nil
	}

	return w.ResponseWriter.Write(p)
}

// WriteHeader records code in the buffer, or sends it to the client once the buffer is closed.
// Only the first code recorded in the buffer is kept.
func (w *Writer) WriteHeader(code int) {
	if w.stack.setStatus(w.frame, code) {
		return
	}

	w.ResponseWriter.WriteHeader(code)
}

// Close closes the buffer, and any opened after it, sending what they held to the client.
// Closing a closed buffer does nothing.
func (w *Writer) Close() error {
	status, content, ok := w.stack.close(w.frame)
	if !ok {
		return nil
	}

	if status != 0 {
		w.ResponseWriter.WriteHeader(status)
	}

	if len(content) == 0 {
		return nil
	}

	_, err := w.ResponseWriter.Write(content)
	return err
}

// Unwrap returns the underlying http.ResponseWriter for use with http.ResponseController.
func (w *Writer) Unwrap() http.ResponseWriter { return w.ResponseWriter }
