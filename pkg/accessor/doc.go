// Package accessor implements the `${…}` path expression language: a
// compiled PathAccessor resolves, given an evaluation Context, a
// value borrowed from the current Event or from previously extracted
// variables.
//
// # Grammar
//
// An accessor expression is a sequence of path segments separated by '.'.
// A segment is an identifier ([A-Za-z_][A-Za-z0-9_]*), a quoted key
// ("…", '"' disallowed inside, no escape semantics), or a bracketed
// integer index ([digits]) chained directly onto the preceding segment.
// The only two reserved roots are `event` and `_variables`; anything else
// fails compilation with ErrInvalidAccessor/ErrUnknownRoot.
//
// # Resolution
//
// Resolve never panics and never returns a Go error for "not configured
// this way" — a missing path segment surfaces as AccessorError (NotFound /
// TypeMismatch), which callers translate into operator-false, WITH
// PartiallyMatched, or Iterator AccessorError.
package accessor
