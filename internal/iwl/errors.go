package iwl

import "errors"

// Validation failures that block a calculation.
var (
	ErrInvalidWeight = errors.New("invalid weight")
	ErrInvalidHeight = errors.New("invalid height")
)

// ValidationError reports a required input that failed validation.
// Its message is meant to be shown to the user verbatim.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
