package event

import "errors"

var (
	// ErrEmptyType is returned when an event's type is empty after parsing.
	ErrEmptyType = errors.New("event: type must be non-empty")
)
