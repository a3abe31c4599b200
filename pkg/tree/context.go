package tree

import (
	"github.com/tornado-matcher/matcher/pkg/event"
	"github.com/tornado-matcher/matcher/pkg/value"
)

// baseContext backs accessor resolution for Filter predicates and
// Iterator targets: both live outside any rule's scope, so _variables
// accessors always fail with ErrNoRuleScope — `_variables` is never
// reachable from a Filter predicate or an Iterator target.
type baseContext struct {
	ev *event.Event
}

func (c *baseContext) Event() *event.Event                     { return c.ev }
func (c *baseContext) ExtractedVar(string) (value.Value, bool) { return value.Value{}, false }
func (c *baseContext) CurrentRule() (string, bool)             { return "", false }
func (c *baseContext) KnownRule(string) bool                   { return false }

// rulesetContext backs rule.Context for one Ruleset node's evaluation of
// one event: extracted_vars is private to this call — variables persist
// across rules within the same ruleset evaluation only, never across sibling rulesets, never across iterations, never across
// events), and current tracks which rule's WHERE/WITH/actions are
// presently resolving so the `_variables.<name>` sugar form can
// disambiguate its own rule.
type rulesetContext struct {
	ev      *event.Event
	vars    *value.Map
	known   map[string]bool
	current string
	maxVars int
}

func newRulesetContext(ev *event.Event, maxVars int) *rulesetContext {
	return &rulesetContext{ev: ev, vars: value.NewMap(), known: map[string]bool{}, maxVars: maxVars}
}

func (c *rulesetContext) Event() *event.Event { return c.ev }

func (c *rulesetContext) ExtractedVar(key string) (value.Value, bool) {
	return c.vars.Get(key)
}

func (c *rulesetContext) CurrentRule() (string, bool) {
	return c.current, c.current != ""
}

func (c *rulesetContext) KnownRule(name string) bool {
	return c.known[name]
}

// Commit merges vars into extracted_vars under ruleName. Once maxVars is
// reached (0 means unlimited), further entries are silently dropped: the
// committing rule still reports Matched, but its variables become
// unreachable to later `_variables.<rule>.<var>` references in this
// ruleset.
func (c *rulesetContext) Commit(ruleName string, vars *value.Map) {
	vars.Range(func(key string, v value.Value) bool {
		if c.maxVars > 0 && c.vars.Len() >= c.maxVars {
			return false
		}
		c.vars.Set(ruleName+"."+key, v)
		return true
	})
	c.known[ruleName] = true
}
