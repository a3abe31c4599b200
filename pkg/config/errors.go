package config

import "errors"

// Sentinel errors for configuration validation.
var (
	ErrInvalidMaxTreeDepth      = errors.New("invalid max processing tree depth: must be positive")
	ErrInvalidMaxRegexInput     = errors.New("invalid max regex input length: must be non-negative")
	ErrInvalidMaxExtractedVars  = errors.New("invalid max extracted vars per ruleset: must be non-negative")
	ErrInvalidMaxIterationSize  = errors.New("invalid max iterator target size: must be non-negative")
	ErrInvalidIngressQueueSize  = errors.New("invalid ingress queue size: must be positive")
	ErrInvalidIngressDropPolicy = errors.New("invalid ingress drop policy")
)
