package domain

import "fmt"

// ValidationError reports a field that failed validation while constructing a
// Transaction. It is always raised at construction time, never downstream.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}
