package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrIncompatibleType is returned when connecting ports of different value types.
	ErrIncompatibleType = errors.New("incompatible port types")
	// ErrAlreadyConnected is returned when connecting an input that already has a source.
	ErrAlreadyConnected = errors.New("input already connected")
	// ErrMissingInput is returned by updaters when a required input is unconnected.
	ErrMissingInput = errors.New("required input not connected")
	// ErrUpdateFailed is returned when an update strategy reports failure without a cause.
	ErrUpdateFailed = errors.New("node update failed")
	// ErrNodeDestroyed is returned when using a node after Destroy.
	ErrNodeDestroyed = errors.New("node destroyed")
)

// ConnectError describes a rejected connection attempt.
type ConnectError struct {
	Output *Output
	Input  *Input
	Err    error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connecting %s (%s) -> %s (%s): %v",
		e.Output, e.Output.Type().Name(), e.Input, e.Input.Type().Name(), e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// MissingInputError reports an unconnected input an updater requires.
type MissingInputError struct {
	Node *Node
	Port string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("node %s: input %q is not connected", e.Node, e.Port)
}

func (e *MissingInputError) Unwrap() error { return ErrMissingInput }
