package service

import "fmt"

// ValidationError marks malformed, missing or out-of-range input. It is
// always client-correctable and handlers report it with a 400 status.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}
