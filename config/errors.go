package config

import "fmt"

// LimitError reports a capacity cap that is not a positive number.
type LimitError struct {
	Name string
}

// ErrNonPositiveLimit builds a LimitError for the named cap.
func ErrNonPositiveLimit(name string) *LimitError {
	return &LimitError{Name: name}
}

// Error implements the error interface.
func (e *LimitError) Error() string {
	return fmt.Sprintf("config: %s must be positive", e.Name)
}
