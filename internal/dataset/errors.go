package dataset

import (
	"errors"
	"fmt"
)

// Error kinds returned by Load. Match them with errors.Is.
var (
	ErrNotFound = errors.New("sample file not found")
	ErrIO       = errors.New("sample file unreadable")
	ErrDecode   = errors.New("sample file malformed")
)

// LoadError describes a failure to load a sample file.
type LoadError struct {
	Path string
	Kind error // one of ErrNotFound, ErrIO, ErrDecode
	Err  error
}

// Error implements the error interface
func (e *LoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Path, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Path, e.Kind, e.Err)
}

// Is reports whether target is the error kind.
func (e *LoadError) Is(target error) bool {
	return target == e.Kind
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
