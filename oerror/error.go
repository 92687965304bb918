package oerror

import "fmt"

// LocomotionError is returned by configuration and setup code when a value
// can never produce a working controller.
type LocomotionError struct {
	Err string
}

// New formats a new LocomotionError.
func New(format string, args ...any) *LocomotionError {
	if len(args) == 0 {
		return &LocomotionError{Err: format}
	}
	return &LocomotionError{Err: fmt.Sprintf(format, args...)}
}

func (e *LocomotionError) Error() string {
	return e.Err
}
