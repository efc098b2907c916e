package stitch

import (
	"errors"
	"fmt"
)

// The three kinds of failure. Every error returned by this module wraps exactly
// one of them, so callers can distinguish them with [errors.Is].
var (
	// ErrUnsupportedCapability means a codec or reader needed for the request
	// isn't available in this deployment.
	ErrUnsupportedCapability = errors.New("unsupported capability")
	// ErrMalformedInput means input bytes or geometry are structurally invalid.
	ErrMalformedInput = errors.New("malformed input")
	// ErrInvalidParameter means a pattern parameter violates its constraints.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// Error is an error with a kind and the operation that failed.
type Error struct {
	// Kind is one of ErrUnsupportedCapability, ErrMalformedInput and
	// ErrInvalidParameter.
	Kind error
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("stitch: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("stitch: %s: %s: %s", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindOf returns the kind sentinel wrapped by err, or nil if err carries none.
func KindOf(err error) error {
	for _, kind := range []error{ErrUnsupportedCapability, ErrMalformedInput, ErrInvalidParameter} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// Unsupported returns an error of kind [ErrUnsupportedCapability].
func Unsupported(op string, err error) error {
	return &Error{Kind: ErrUnsupportedCapability, Op: op, Err: err}
}

// Malformed returns an error of kind [ErrMalformedInput].
func Malformed(op string, err error) error {
	return &Error{Kind: ErrMalformedInput, Op: op, Err: err}
}

// InvalidParameter returns an error of kind [ErrInvalidParameter].
func InvalidParameter(op string, err error) error {
	return &Error{Kind: ErrInvalidParameter, Op: op, Err: err}
}

func invalid(op string, format string, args ...any) error {
	return InvalidParameter(op, fmt.Errorf(format, args...))
}
