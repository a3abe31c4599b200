package matcher

import (
	"errors"
	"fmt"
)

// ErrNilRoot is returned by Build when given a nil tree.
var ErrNilRoot = errors.New("matcher: root node is nil")

// ErrValidation is the sentinel a ValidationError.Unwrap resolves to.
var ErrValidation = errors.New("matcher: tree failed validation")

// ErrTreeTooDeep is the sentinel a DepthError.Unwrap resolves to.
var ErrTreeTooDeep = errors.New("matcher: tree exceeds configured max depth")

// ValidationError wraps the semantic problems pkg/validator found while
// building a Matcher. It is a ConfigError-class failure: it can
// only happen at Build time, never while Process-ing an event.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("matcher: tree failed validation: %v", e.Problems)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// DepthError reports that a tree's Filter/Iterator nesting exceeds
// config.Config.MaxTreeDepth.
type DepthError struct {
	Depth, Max int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("matcher: tree depth %d exceeds max %d", e.Depth, e.Max)
}

func (e *DepthError) Unwrap() error { return ErrTreeTooDeep }

// InternalError wraps a recovered panic from deep inside tree
// evaluation. Process recovers exactly one of these per call so a single
// malformed node can't take down a host process.
type InternalError struct {
	Recovered any
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("matcher: internal error: %v", e.Recovered)
}
