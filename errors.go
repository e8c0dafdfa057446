package byteman

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the single failure kind of the conversion functions.
// Match it with errors.Is.
var ErrInvalidArgument = errors.New("byteman: invalid argument")

// ArgumentError describes why an argument was rejected. It unwraps to
// ErrInvalidArgument.
type ArgumentError struct {
	Op     string
	Kind   Kind
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("byteman: %s: invalid %s argument: %s", e.Op, e.Kind, e.Reason)
}

func (e *ArgumentError) Unwrap() error { return ErrInvalidArgument }

func invalid(op string, k Kind, format string, args ...any) error {
	return &ArgumentError{Op: op, Kind: k, Reason: fmt.Sprintf(format, args...)}
}

// unsupported is the default branch of every kind switch.
func unsupported(op string, v Value) error {
	if v.kind == KindInvalid {
		return invalid(op, v.kind, "%s", v.reason)
	}
	return invalid(op, v.kind, "kind not accepted")
}
