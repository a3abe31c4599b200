// Package modifier implements the post-extraction modifier pipeline: an
// ordered chain of Trim, Lowercase, ToNumber, ReplaceAll, Map and
// DateAndTime operations applied to each value an Extractor produces.
//
// A modifier consumes one value.Value and produces one value.Value, or
// fails. A chain failure anywhere surfaces as a modifier error,
// which the extractor pipeline turns into the rule's PartiallyMatched
// status — modifiers never panic.
package modifier
