// internals/features/uploads/service/errors.go
package service

import "fmt"

// UnknownStudentError aborts the whole batch: uploads only attach data to
// an existing roster, they never create students.
type UnknownStudentError struct {
	RollNumber string
}

func (e *UnknownStudentError) Error() string {
	return fmt.Sprintf("student not found: %s", e.RollNumber)
}

// ValidationError marks a field outside its domain (year not in 1-4,
// attendance percent not in 0-100, missing required subject). Batch-fatal.
type ValidationError struct {
	RollNumber string
	Field      string
	Message    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s for %s: %s", e.Field, e.RollNumber, e.Message)
}
