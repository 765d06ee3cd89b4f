package interop

import (
	"fmt"

	"github.com/chazu/kona/meta"
)

// UnsupportedTypeError reports that a value cannot be coerced to the
// requested target type. It is the only recoverable coercion failure.
type UnsupportedTypeError struct {
	Value  any    // the offending input
	Target string // display name of the requested type
	Reason string // optional detail, e.g. the first missing field
}

func (e *UnsupportedTypeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("interop: could not cast foreign object to %s: %s", e.Target, e.Reason)
	}
	return fmt.Sprintf("interop: cannot cast %v to %s", e.Value, e.Target)
}

func unsupported(value any, target *meta.Class) *UnsupportedTypeError {
	return &UnsupportedTypeError{Value: value, Target: target.Name}
}

func couldNotCast(value any, target *meta.Class, format string, args ...any) *UnsupportedTypeError {
	return &UnsupportedTypeError{
		Value:  value,
		Target: target.Name,
		Reason: fmt.Sprintf(format, args...),
	}
}

// ContractViolationError reports a foreign value that affirmed a
// capability predicate and then failed the paired accessor. That is a
// broken protocol implementation, not a coercion failure, so the
// coercers panic with it instead of returning it.
type ContractViolationError struct {
	Predicate string
	Accessor  string
	Err       error
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("interop: foreign value answered %s but %s failed: %v", e.Predicate, e.Accessor, e.Err)
}

func (e *ContractViolationError) Unwrap() error { return e.Err }

// InvariantError reports misuse of the engine itself, such as asking
// SharedCoercer for a shape that needs a per-target coercer.
type InvariantError struct {
	Shape  Shape
	Target *meta.Class
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("interop: %s targets must be handled separately (asked for %s)", e.Shape, e.Target.Name)
}
