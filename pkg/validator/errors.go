package validator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidationFailed is the sentinel *Errors.Unwrap resolves to, so
// callers can test `errors.Is(err, validator.ErrValidationFailed)`.
var ErrValidationFailed = errors.New("validator: configuration failed validation")

// Errors collects every problem Validate found, in discovery order.
type Errors struct {
	Problems []string
}

func (e *Errors) add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

// HasErrors reports whether any problem was recorded.
func (e *Errors) HasErrors() bool { return len(e.Problems) > 0 }

func (e *Errors) Error() string {
	return "validator: " + strings.Join(e.Problems, "; ")
}

func (e *Errors) Unwrap() error { return ErrValidationFailed }
