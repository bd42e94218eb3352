package validate

import "fmt"

// MalformedInputError reports that the raw text is not parseable as JSON at
// all. Use [errors.As] to detect it.
type MalformedInputError struct {
	Err error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input: %v", e.Err)
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

// ValidationError reports that the raw text was well-formed JSON but a field
// has the wrong type or violates its declared constraint. Field names the
// offending field.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
