package process

import "errors"

var (
	// ErrProcessNotFound indicates no stored process has the requested ID.
	ErrProcessNotFound = errors.New("process not found")
	// ErrInvalidInput indicates invalid input for process operations.
	ErrInvalidInput = errors.New("invalid process input")
)
