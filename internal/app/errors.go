package app

import "errors"

// ErrInitialization indicates an initialization failure.
var ErrInitialization = errors.New("initialization failed")

// InitError represents an initialization error.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// Is reports ErrInitialization for every InitError.
func (e *InitError) Is(target error) bool {
	return target == ErrInitialization
}
