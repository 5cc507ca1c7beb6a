package schema

import (
	"errors"
	"fmt"
)

// ErrInvalid is matched by every error returned from the compile functions.
var ErrInvalid = errors.New("invalid schema")

var (
	errNotArray  = errors.New("layout must be an array of field definitions")
	errNotObject = errors.New("field definition must be an object")
	errMissing   = errors.New("missing required key")
	errUnknown   = errors.New("unknown key")
	errNegative  = errors.New("start must be non-negative")
	errLength    = errors.New("length must be positive")
	errOverflow  = errors.New("start + length overflows")
)

// Error describes why a layout could not be compiled.
//
// Index is the zero-based position of the offending field definition, or
// -1 when the layout as a whole is malformed. Key names the property
// involved, if any.
type Error struct {
	Index int
	Key   string
	Err   error
}

func (e *Error) Error() string {
	switch {
	case e.Index < 0:
		return fmt.Sprintf("schema: %v", e.Err)
	case e.Key == "":
		return fmt.Sprintf("schema: field %d: %v", e.Index, e.Err)
	default:
		return fmt.Sprintf("schema: field %d: %q: %v", e.Index, e.Key, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrInvalid.
func (e *Error) Is(target error) bool {
	return target == ErrInvalid
}

func layoutError(err error) *Error {
	return &Error{Index: -1, Err: err}
}

func fieldError(index int, key string, err error) *Error {
	return &Error{Index: index, Key: key, Err: err}
}
