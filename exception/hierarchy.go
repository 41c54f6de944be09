package exception

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/xy-planning-network/rest"
)

// RootClass is the ancestor of every class in a Hierarchy.
const RootClass = "Exception"

// Classes of the well-known exceptions.
const (
	HTTPExceptionClass       = "HTTPException"
	BadRequestClass          = "BadRequestException"
	UnauthorizedClass        = "UnauthorizedException"
	AccessDeniedClass        = "AccessDeniedException"
	NotFoundClass            = "NotFoundException"
	MethodNotAllowedClass    = "MethodNotAllowedException"
	NotAcceptableClass       = "NotAcceptableException"
	ConflictClass            = "ConflictException"
	UnprocessableEntityClass = "UnprocessableEntityException"
	TooManyRequestsClass     = "TooManyRequestsException"
	ServiceUnavailableClass  = "ServiceUnavailableException"
	InvalidArgumentClass     = "InvalidArgumentException"
	RuntimeClass             = "RuntimeException"
	UnexpectedValueClass     = "UnexpectedValueException"
)

var httpClasses = map[int]string{
	http.StatusBadRequest:          BadRequestClass,
	http.StatusUnauthorized:        UnauthorizedClass,
	http.StatusForbidden:           AccessDeniedClass,
	http.StatusNotFound:            NotFoundClass,
	http.StatusMethodNotAllowed:    MethodNotAllowedClass,
	http.StatusNotAcceptable:       NotAcceptableClass,
	http.StatusConflict:            ConflictClass,
	http.StatusUnprocessableEntity: UnprocessableEntityClass,
	http.StatusTooManyRequests:     TooManyRequestsClass,
	http.StatusServiceUnavailable:  ServiceUnavailableClass,
}

// HTTPClass returns the class of exceptions reporting code.
func HTTPClass(code int) string {
	if c, ok := httpClasses[code]; ok {
		return c
	}
	return HTTPExceptionClass
}

// A Hierarchy is a tree of classes rooted at RootClass.
//
// A Hierarchy is safe for concurrent use.
type Hierarchy struct {
	mu      sync.RWMutex
	parents map[string]string
}

// NewHierarchy constructs a *Hierarchy knowing only RootClass.
func NewHierarchy() *Hierarchy {
	return &Hierarchy{parents: map[string]string{RootClass: ""}}
}

// DefaultHierarchy constructs a *Hierarchy knowing the well-known classes.
// Every HTTP class extends HTTPExceptionClass, which extends RuntimeClass.
func DefaultHierarchy() *Hierarchy {
	h := NewHierarchy()
	h.parents[RuntimeClass] = RootClass
	h.parents[InvalidArgumentClass] = RootClass
	h.parents[UnexpectedValueClass] = RuntimeClass
	h.parents[HTTPExceptionClass] = RuntimeClass
	for _, c := range httpClasses {
		h.parents[c] = HTTPExceptionClass
	}

	return h
}

// Extend declares class as a child of parent.
//
// The parent must already be known, so declarations cannot form cycles.
// The parent may be named bare, as Canonical resolves it.
// Redeclaring a class with the same parent is a no-op;
// with a different parent it is an error.
func (h *Hierarchy) Extend(class, parent string) error {
	class = strings.TrimSpace(class)
	parent = strings.TrimSpace(parent)
	if class == "" || parent == "" {
		return fmt.Errorf("%w: empty class name", rest.ErrBadConfig)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	parent = h.canonical(parent)
	if _, ok := h.parents[parent]; !ok {
		return fmt.Errorf("%w: %w: parent %q of %q", rest.ErrBadConfig, ErrUnknownClass, parent, class)
	}

	if existing, ok := h.parents[class]; ok {
		if existing == parent {
			return nil
		}
		return fmt.Errorf("%w: %q already extends %q", rest.ErrBadConfig, class, existing)
	}

	h.parents[class] = parent
	return nil
}

// Knows asserts whether class, or the class Canonical resolves it to, is declared.
func (h *Hierarchy) Knows(class string) bool {
	if h == nil {
		return false
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	_, ok := h.parents[h.canonical(strings.TrimSpace(class))]
	return ok
}

// Canonical returns the declared name class stands for.
// A bare name stands for the declared class suffixed with RootClass,
// e.g., "NotFound" is NotFoundClass, unless the bare name is itself declared.
// Undeclared names are returned as is.
func (h *Hierarchy) Canonical(class string) string {
	class = strings.TrimSpace(class)
	if h == nil {
		return class
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.canonical(class)
}

func (h *Hierarchy) canonical(class string) string {
	if _, ok := h.parents[class]; ok || strings.HasSuffix(class, RootClass) {
		return class
	}

	if _, ok := h.parents[class+RootClass]; ok {
		return class + RootClass
	}

	return class
}

// Ancestors returns the ancestors of class, nearest first, ending with RootClass.
func (h *Hierarchy) Ancestors(class string) []string {
	if h == nil {
		return nil
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	var out []string
	for p := h.parents[h.canonical(class)]; p != ""; p = h.parents[p] {
		out = append(out, p)
	}

	return out
}

// IsA asserts whether class is ancestor or one of its descendants.
func (h *Hierarchy) IsA(class, ancestor string) bool {
	class, ancestor = h.Canonical(class), h.Canonical(ancestor)
	if class == ancestor {
		return true
	}

	for _, a := range h.Ancestors(class) {
		if a == ancestor {
			return true
		}
	}

	return false
}
