package datatype

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateType is returned when a type name is registered twice.
	ErrDuplicateType = errors.New("value type already registered")
	// ErrUnknownType is returned when a type name was never registered.
	ErrUnknownType = errors.New("unknown value type")
	// ErrTypeMismatch is returned when a read or write does not match the
	// container's fixed type.
	ErrTypeMismatch = errors.New("value type mismatch")
	// ErrFrozen is returned when registering into a frozen registry.
	ErrFrozen = errors.New("type registry is frozen")
)

// MismatchError describes a rejected read or write on a Data container.
type MismatchError struct {
	Want   *TypeDescriptor
	Got    string
	Reason error
}

func (e *MismatchError) Error() string {
	msg := fmt.Sprintf("value type mismatch: container holds %s, got %s", e.Want.Name(), e.Got)
	if e.Reason != nil {
		msg += ": " + e.Reason.Error()
	}
	return msg
}

func (e *MismatchError) Unwrap() []error {
	if e.Reason == nil {
		return []error{ErrTypeMismatch}
	}
	return []error{ErrTypeMismatch, e.Reason}
}
