package rule

import (
	"github.com/tornado-matcher/matcher/pkg/accessor"
	"github.com/tornado-matcher/matcher/pkg/extractor"
	"github.com/tornado-matcher/matcher/pkg/operator"
	"github.com/tornado-matcher/matcher/pkg/value"
)

// Context is the evaluation-time collaborator a Rule needs beyond plain
// accessor resolution: somewhere to commit newly extracted variables once
// every WITH entry has succeeded, keyed under
// "<rule>.<var>" in the enclosing ruleset's extracted_vars.
type Context interface {
	accessor.Context
	// Commit merges vars (variable name -> value, in WITH declaration
	// order) into extracted_vars under ruleName, and marks ruleName as a
	// KnownRule for subsequent rules' `_variables.<rule>.<name>`
	// accessors.
	Commit(ruleName string, vars *value.Map)
}

// Action is a compiled action descriptor: an id and a template-compiled
// payload.
type Action struct {
	ID      string
	Payload *PayloadTemplate
}

// ResolvedAction is an Action with its payload fully interpolated,
// emitted by a Matched rule.
type ResolvedAction struct {
	ID      string
	Payload value.Value
}

// Rule is the compiled matching unit: name, WHERE operator, WITH extractors,
// ordered actions.
type Rule struct {
	Name        string
	Description string
	Continue    bool
	Active      bool
	Where       operator.Operator
	With        []*extractor.Extractor
	Actions     []*Action
}

// Result is the outcome of evaluating one Rule against one event.
type Result struct {
	Status  Status
	Actions []ResolvedAction
	// Message carries a human-readable diagnostic for
	// PartiallyMatched results, naming the variable or action that
	// failed.
	Message string
}

// Accessors returns every Accessor reachable from this rule's WHERE
// operator, WITH extractors, and action payloads — used by
// pkg/validator's `_variables` referential-integrity walk.
func (r *Rule) Accessors() []*accessor.Accessor {
	var out []*accessor.Accessor
	if r.Where != nil {
		out = append(out, r.Where.Accessors()...)
	}
	for _, ex := range r.With {
		out = append(out, ex.Accessors()...)
	}
	for _, a := range r.Actions {
		out = append(out, a.Payload.Accessors()...)
	}
	return out
}

// Evaluate runs the rule-evaluation algorithm against ctx.
func (r *Rule) Evaluate(ctx Context) Result {
	if !r.Active {
		return Result{Status: NotProcessed}
	}
	if !operator.Eval(r.Where, ctx) {
		return Result{Status: NotMatched}
	}

	extracted := value.NewMap()
	for _, ex := range r.With {
		v, err := ex.Extract(ctx)
		if err != nil {
			return Result{Status: PartiallyMatched, Message: err.Error()}
		}
		extracted.Set(ex.Name(), v)
	}

	ctx.Commit(r.Name, extracted)

	actions := make([]ResolvedAction, 0, len(r.Actions))
	for _, a := range r.Actions {
		v, err := a.Payload.Resolve(ctx)
		if err != nil {
			return Result{Status: PartiallyMatched, Message: "action `" + a.ID + "`: " + err.Error()}
		}
		actions = append(actions, ResolvedAction{ID: a.ID, Payload: v})
	}

	return Result{Status: Matched, Actions: actions}
}
