package codec

import (
	"errors"
	"fmt"
)

// Kind classifies an argument error.
type Kind string

const (
	// KindMalformed means the arguments are not a single valid JSON value.
	KindMalformed Kind = "malformed"
	// KindMissingField means a required request field is absent or empty.
	KindMissingField Kind = "missing_field"
)

var (
	// ErrMalformed matches any malformed-arguments error via errors.Is.
	ErrMalformed = errors.New("malformed arguments")
	// ErrMissingField matches any missing-field error via errors.Is.
	ErrMissingField = errors.New("missing field")
)

// ArgumentError reports a request whose arguments could not be turned into a canonical value.
type ArgumentError struct {
	Kind  Kind
	Field string
	Err   error
}

// Malformed wraps a parse diagnostic.
func Malformed(err error) *ArgumentError {
	return &ArgumentError{Kind: KindMalformed, Err: err}
}

// MissingField reports an absent or empty required field.
func MissingField(name string) *ArgumentError {
	return &ArgumentError{Kind: KindMissingField, Field: name}
}

func (e *ArgumentError) Error() string {
	switch e.Kind {
	case KindMissingField:
		return fmt.Sprintf("missing field: %s", e.Field)
	default:
		if e.Err == nil {
			return ErrMalformed.Error()
		}
		return fmt.Sprintf("%s: %v", ErrMalformed, e.Err)
	}
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels.
func (e *ArgumentError) Is(target error) bool {
	switch target {
	case ErrMalformed:
		return e.Kind == KindMalformed
	case ErrMissingField:
		return e.Kind == KindMissingField
	}
	return false
}
