// Package extractor implements the named variable generator:
// resolve a `from` template to a string, run one of three regex strategies
// against it to produce a value (or array/map of values), then run the
// modifier pipeline (pkg/modifier) over each produced value.
//
// An Extractor never returns a partial result: any failure along the way
// (accessor miss, no match, a modifier error) is reported as a single
// *Error identifying the failing variable, which the rule evaluator turns
// into the owning rule's PartiallyMatched status.
package extractor
