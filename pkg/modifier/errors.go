package modifier

import "errors"

// Build-time (ConfigError class) sentinel errors.
var (
	ErrUnknownType   = errors.New("modifier: unknown type")
	ErrInvalidRegex  = errors.New("modifier: invalid regex pattern")
	ErrInvalidConfig = errors.New("modifier: invalid configuration")
)

// Eval-time (modifier-failed class) sentinel errors.
var (
	ErrNotAString      = errors.New("modifier: value is not a string")
	ErrNotANumber      = errors.New("modifier: value cannot be parsed as a number")
	ErrMapKeyNotFound  = errors.New("modifier: key not found in mapping and no default_value configured")
	ErrUnknownTimezone = errors.New("modifier: unknown IANA timezone")
	ErrInvalidDateTime = errors.New("modifier: value is not a recognizable epoch or ISO-8601 timestamp")
)
