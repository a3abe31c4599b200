package tree

import (
	"github.com/tornado-matcher/matcher/pkg/event"
	"github.com/tornado-matcher/matcher/pkg/rule"
	"github.com/tornado-matcher/matcher/pkg/value"
)

// FilterStatus is the outcome of evaluating a Filter node's predicate.
type FilterStatus string

const (
	FilterMatched    FilterStatus = "Matched"
	FilterNotMatched FilterStatus = "NotMatched"
	FilterInactive   FilterStatus = "Inactive"
)

// IteratorStatus is the outcome of resolving an Iterator node's target.
type IteratorStatus string

const (
	IteratorMatched       IteratorStatus = "Matched"
	IteratorTypeError     IteratorStatus = "TypeError"
	IteratorAccessorError IteratorStatus = "AccessorError"
)

// ProcessedNode is the structured per-node outcome making up the wire
// shape of a process() response. Exactly one of Filter, Iterator,
// Ruleset is non-nil, selected by Type.
type ProcessedNode struct {
	Type     string
	Name     string
	Filter   *ProcessedFilter
	Iterator *ProcessedIterator
	Ruleset  *ProcessedRuleset
}

// ProcessedFilter is a Filter node's result.
type ProcessedFilter struct {
	Status FilterStatus
	Nodes  []ProcessedNode
}

// ProcessedIterator is an Iterator node's result: one ProcessedIteration
// per source element, in source order.
type ProcessedIterator struct {
	Status IteratorStatus
	Events []ProcessedIteration
}

// ProcessedIteration is one element's worth of an Iterator's children
// results, paired with the event snapshot (iterator item + iteration key)
// that produced it.
type ProcessedIteration struct {
	Event *event.Event
	Nodes []ProcessedNode
}

// ProcessedRuleset is a Ruleset node's result: per-rule outcomes plus the
// flat extracted_vars map accumulated across this ruleset's evaluation.
type ProcessedRuleset struct {
	Rules         []ProcessedRule
	ExtractedVars *value.Map
}

// ProcessedRule mirrors rule.Result plus the rule's name, matching the
// `{name,status,actions,message}` wire shape.
type ProcessedRule struct {
	Name    string
	Status  rule.Status
	Actions []rule.ResolvedAction
	Message string
}
