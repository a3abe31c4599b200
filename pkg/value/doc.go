// Package value implements the canonical dynamic value used throughout the
// matcher: events, extracted variables, and action payloads are all built
// from Value.
//
// # Overview
//
// Value is a tagged union over six kinds: Null, Bool, Number, String, Array
// and Map. Arrays preserve element order; Map preserves key insertion order
// (it is backed by a slice-indexed structure, not Go's unordered map type),
// so iteration is deterministic across runs.
//
// # Equality
//
// Equal compares structurally: Number compares numeric content regardless
// of how the value was originally parsed, Array compares element-by-element
// in order, Map compares key/value pairs irrespective of insertion order.
//
// # String coercion
//
// ToDisplayString implements the coercion rules used by the template
// interpolator's Concat mode: Null -> "", Bool -> "true"/"false", Number ->
// canonical decimal (no exponent, no trailing zeros), String -> itself,
// Array/Map -> JSON with insertion order preserved.
package value
