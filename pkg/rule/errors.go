package rule

import "errors"

// Build-time (ConfigError class) sentinel errors.
var (
	ErrInvalidName     = errors.New("rule: name must match [A-Za-z0-9_]+")
	ErrDuplicateWith   = errors.New("rule: duplicate WITH variable name")
	ErrInvalidConfig   = errors.New("rule: invalid configuration")
	ErrMissingActionID = errors.New("rule: action missing id")
)
