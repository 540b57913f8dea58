package pveb

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when the requested key is absent from
// the tree. It is recoverable: callers can use errors.Is to distinguish
// it from a PreconditionError.
var ErrNotFound = errors.New("pveb: key not found")

// PreconditionError reports a caller bug: a key outside [lb, ub].
// Invalid constructor parameters are reported as a ConfigurationError
// instead. It is always fatal to the calling operation and never the
// result of tree contents.
type PreconditionError struct {
	Op  string
	Msg string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("pveb: %s: %s", e.Op, e.Msg)
}

func newPreconditionError(op, msg string) error {
	return &PreconditionError{Op: op, Msg: msg}
}

func keyOutOfRangeError(op string, x, lb, ub uint64) error {
	return newPreconditionError(op, fmt.Sprintf("key %d outside [%d, %d]", x, lb, ub))
}

// ConfigurationError reports invalid construction parameters: lb > ub,
// or c < 1. Always fatal.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("pveb: configuration: %s", e.Msg)
}

func newConfigurationError(format string, args ...interface{}) error {
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...)}
}
