package operator

import "errors"

// Build-time (ConfigError class) sentinel errors.
var (
	ErrUnknownType      = errors.New("operator: unknown type")
	ErrMissingOperators = errors.New("operator: AND/OR require a non-empty operators list")
	ErrMissingOperand   = errors.New("operator: missing operator field")
	ErrInvalidRegex     = errors.New("operator: invalid regex pattern")
)
