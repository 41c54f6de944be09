package buffer

import (
	"bytes"
	"context"
	"sync"
)

type ctxKey struct{}

// A Level reports and closes nested output buffers.
type Level interface {
	// Depth is the number of open buffers.
	Depth() int

	// Clean closes the innermost open buffer and returns its contents.
	Clean() []byte
}

// A frame is a single output buffer.
type frame struct {
	buf    bytes.Buffer
	status int
	open   bool
}

// A Stack is the nested output buffers of a single request.
//
// A Stack is safe for concurrent use.
type Stack struct {
	mu     sync.Mutex
	frames []*frame
}

// NewContext attaches a new *Stack to ctx.
// If ctx already carries a *Stack, it is returned and ctx is not changed.
func NewContext(ctx context.Context) (context.Context, *Stack) {
	if s, ok := ctx.Value(ctxKey{}).(*Stack); ok {
		return ctx, s
	}

	s := new(Stack)
	return context.WithValue(ctx, ctxKey{}, s), s
}

// FromContext returns the *Stack attached to ctx, if any.
func FromContext(ctx context.Context) (*Stack, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Stack)
	return s, ok
}

// Depth returns the number of open buffers.
func (s *Stack) Depth() int {
	if s == nil {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.frames)
}

// Clean closes the innermost buffer and returns its contents.
// Any status code recorded in it is discarded.
func (s *Stack) Clean() []byte {
	if s == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.pop()
	if f == nil {
		return nil
	}

	return f.buf.Bytes()
}

// push opens a new innermost buffer.
func (s *Stack) push() *frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := &frame{open: true}
	s.frames = append(s.frames, f)
	return f
}

// pop closes the innermost buffer; s.mu must be held.
func (s *Stack) pop() *frame {
	if len(s.frames) == 0 {
		return nil
	}

	f := s.frames[len(s.frames)-1]
	s.frames[len(s.frames)-1] = nil
	s.frames = s.frames[:len(s.frames)-1]
	f.open = false
	return f
}

// close closes f and every buffer opened after it,
// returning the status code recorded in f and the contents of all closed buffers.
func (s *Stack) close(f *frame) (int, []byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !f.open {
		return 0, nil, false
	}

	var chunks [][]byte
	for {
		top := s.pop()
		chunks = append(chunks, top.buf.Bytes())
		if top == f {
			break
		}
	}

	return f.status, joinReversed(chunks), true
}

// write appends p to f, reporting false if f is closed.
func (s *Stack) write(f *frame, p []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !f.open {
		return false
	}

	f.buf.Write(p)
	return true
}

// setStatus records code in f, reporting false if f is closed.
func (s *Stack) setStatus(f *frame, code int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !f.open {
		return false
	}

	if f.status == 0 {
		f.status = code
	}
	return true
}

// Drain closes every buffer of l opened above depth start
// and returns their contents, outermost first.
//
// Draining stops once the depth reaches start
// or when closing a buffer fails to decrease the depth.
func Drain(l Level, start int) []byte {
	if l == nil {
		return nil
	}

	var chunks [][]byte
	for depth := l.Depth(); depth > start; {
		chunks = append(chunks, l.Clean())

		next := l.Depth()
		if next >= depth {
			break
		}
		depth = next
	}

	return joinReversed(chunks)
}

// joinReversed concatenates chunks last to first.
func joinReversed(chunks [][]byte) []byte {
	var out []byte
	for i := len(chunks) - 1; i >= 0; i-- {
		out = append(out, chunks[i]...)
	}
	return out
}
