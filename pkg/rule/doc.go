// Package rule implements the Rule type: a name, an
// optional WHERE predicate, an ordered set of named WITH extractors, and
// an ordered list of actions whose payloads are template-interpolated on
// match.
//
// Rule.Evaluate implements the per-rule evaluation algorithm: inactive
// rules short-circuit to NotProcessed, a false WHERE to
// NotMatched, any failing WITH extractor to PartiallyMatched (abandoning
// the rule's effects entirely — no partial variable commit, no actions),
// and only full WITH success proceeds to commit variables and resolve
// action payloads into a Matched result. An action payload that fails to
// resolve makes the rule PartiallyMatched with no actions, though its
// variables stay committed.
package rule
