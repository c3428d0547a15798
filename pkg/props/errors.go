package props

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingProperty reports a required key that is absent from the bag.
	ErrMissingProperty = errors.New("missing required property")
	// ErrCoercion reports a value that is present but has the wrong shape.
	ErrCoercion = errors.New("property coercion failed")
)

// Error describes a failed property access.
type Error struct {
	Key   string
	Want  string // target shape, e.g. "int32" or "vector3"
	Value any
	Err   error
}

func (e *Error) Error() string {
	if errors.Is(e.Err, ErrMissingProperty) {
		return fmt.Sprintf("property %q: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("property %q: cannot convert %v (%T) to %s: %v", e.Key, e.Value, e.Value, e.Want, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func missing(key, want string) error {
	return &Error{Key: key, Want: want, Err: ErrMissingProperty}
}

func coercion(key, want string, value any, cause error) error {
	err := ErrCoercion
	if cause != nil {
		err = fmt.Errorf("%w: %v", ErrCoercion, cause)
	}
	return &Error{Key: key, Want: want, Value: value, Err: err}
}
