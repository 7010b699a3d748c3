package store

import "fmt"

// ConnectionError reports that the database could not be reached or a
// connection could not be acquired from the pool.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("database connection: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// QueryError reports that a statement failed at execution time. It carries
// the statement text alongside the driver error.
type QueryError struct {
	Stmt string
	Err  error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query failed: %s: %v", e.Stmt, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// ValidationError reports a malformed payload. It is raised before any
// storage access, so a validation failure never leaves partial state.
// Field is empty for payload-level problems (e.g. an empty update).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Reason
	}
	return fmt.Sprintf("validation: field %q: %s", e.Field, e.Reason)
}

// NotPermittedError reports a mutation attempted against a read-only
// reference table.
type NotPermittedError struct {
	Table string
	Op    string
}

func (e *NotPermittedError) Error() string {
	return fmt.Sprintf("%s not permitted on reference table %s", e.Op, e.Table)
}

func validationf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Violation is one field-level validation finding. Model validation is a
// pure function from a candidate value to a list of violations.
type Violation struct {
	Field  string
	Reason string
}

// FirstViolation converts a violation list into a ValidationError, nil
// when the list is empty.
func FirstViolation(vs []Violation) error {
	if len(vs) == 0 {
		return nil
	}
	return &ValidationError{Field: vs[0].Field, Reason: vs[0].Reason}
}
