package errors

import "fmt"

// FieldError pins an input violation to a request field.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// InvalidField wraps err as a FieldError behind the given sentinel.
func InvalidField(sentinel error, field string, err error) error {
	return fmt.Errorf("%w: %w", sentinel, &FieldError{Field: field, Err: err})
}
