package swaig

import (
	"errors"
	"fmt"
)

// ErrDuplicateTool is returned by a strict Registry when a name is registered twice.
var ErrDuplicateTool = errors.New("tool already registered")

// ArgumentError reports a mismatch between the arguments a caller supplied and the
// ones a tool accepts. The dispatcher renders it as
// "Invalid arguments for function '<name>': <detail>".
type ArgumentError struct {
	Detail string
}

func (e *ArgumentError) Error() string { return e.Detail }

// InvalidArguments builds an *ArgumentError. Tools return it to signal that they were
// called with arguments they cannot accept.
func InvalidArguments(format string, args ...any) error {
	return &ArgumentError{Detail: fmt.Sprintf(format, args...)}
}

// IsArgumentError reports whether err carries an *ArgumentError.
func IsArgumentError(err error) bool {
	var ae *ArgumentError
	return errors.As(err, &ae)
}
