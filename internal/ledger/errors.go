package ledger

import "fmt"

// ValidationError reports a mutation that references a nonexistent entity or
// violates a numeric domain constraint. The requested mutation is aborted
// with no partial state change.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func validationErr(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
