package tree

import "errors"

// Build-time (ConfigError class) sentinel errors for decoding a processing
// tree node from its JSON configuration.
var (
	ErrUnknownNodeType = errors.New("tree: unknown node type")
	ErrInvalidConfig   = errors.New("tree: invalid node configuration")
)
