package validator

import (
	"github.com/tornado-matcher/matcher/pkg/accessor"
	"github.com/tornado-matcher/matcher/pkg/rule"
	"github.com/tornado-matcher/matcher/pkg/tree"
)

// namePattern aliases rule.NamePattern: rules and tree nodes share the
// same identifier rule.
var namePattern = rule.NamePattern

// Validate walks root and returns every problem found. A
// nil return (not an empty *Errors) means the tree is valid; callers
// should check the returned *Errors for nil, not HasErrors(), to match
// Go's usual "nil error means success" idiom while still aggregating.
func Validate(root tree.Node) *Errors {
	v := &validation{errs: &Errors{}}
	v.walk(root, false)
	if !v.errs.HasErrors() {
		return nil
	}
	return v.errs
}

type validation struct {
	errs *Errors
}

func (v *validation) walk(n tree.Node, insideIterator bool) {
	switch t := n.(type) {
	case *tree.Filter:
		v.checkName(t.Name, "Filter")
		v.checkDuplicateChildren(t.Name, t.Children)
		for _, child := range t.Children {
			v.walk(child, insideIterator)
		}
	case *tree.Iterator:
		v.checkName(t.Name, "Iterator")
		if insideIterator {
			v.errs.add("iterator %q is nested inside another iterator, which is disallowed", t.Name)
		}
		v.checkDuplicateChildren(t.Name, t.Children)
		for _, child := range t.Children {
			v.walk(child, true)
		}
	case *tree.Ruleset:
		v.checkName(t.Name, "Ruleset")
		v.checkRuleset(t)
	}
}

func (v *validation) checkName(name, kind string) {
	if !namePattern.MatchString(name) {
		v.errs.add("%s name %q does not match [A-Za-z0-9_]+", kind, name)
	}
}

func (v *validation) checkDuplicateChildren(parentName string, children []tree.Node) {
	seen := make(map[string]bool, len(children))
	for _, child := range children {
		name := child.NodeName()
		if seen[name] {
			v.errs.add("duplicate child name %q under %q", name, parentName)
			continue
		}
		seen[name] = true
	}
}

func (v *validation) checkRuleset(rs *tree.Ruleset) {
	seen := make(map[string]bool, len(rs.Rules))
	ruleIndex := make(map[string]int, len(rs.Rules))
	withNames := make(map[string]map[string]bool, len(rs.Rules))

	for i, r := range rs.Rules {
		v.checkName(r.Name, "Rule")
		if seen[r.Name] {
			v.errs.add("duplicate rule name %q in ruleset %q", r.Name, rs.Name)
		}
		seen[r.Name] = true
		ruleIndex[r.Name] = i

		names := make(map[string]bool, len(r.With))
		for _, ex := range r.With {
			names[ex.Name()] = true
		}
		withNames[r.Name] = names
	}

	for i, r := range rs.Rules {
		for _, acc := range r.Accessors() {
			v.checkVariableReference(rs.Name, r.Name, i, acc, ruleIndex, withNames)
		}
	}
}

// checkVariableReference rejects a _variables.<R>.<v> reference to a
// rule/variable pair not defined in the same ruleset at or before R.
// The single-segment `_variables.<name>` sugar form always refers to the
// accessor's own rule and needs no cross-reference check; the same goes
// for a multi-segment path whose first segment names one of the owner
// rule's own variables (navigation into an own map-valued variable).
func (v *validation) checkVariableReference(
	rulesetName, ownerRule string,
	ownerIdx int,
	acc *accessor.Accessor,
	ruleIndex map[string]int,
	withNames map[string]map[string]bool,
) {
	if acc.Root != accessor.RootVariables || len(acc.Segments) < 2 {
		return
	}
	refRule, ok := acc.Segments[0].FieldName()
	if !ok {
		return
	}
	refVar, ok := acc.Segments[1].FieldName()
	if !ok {
		return
	}

	idx, known := ruleIndex[refRule]
	if !known {
		if withNames[ownerRule][refRule] {
			return
		}
		v.errs.add("rule %q references unknown rule %q via %q", ownerRule, refRule, acc.Raw)
		return
	}
	if idx > ownerIdx {
		v.errs.add("rule %q references rule %q which is declared after it in ruleset %q (ordering violation)", ownerRule, refRule, rulesetName)
		return
	}
	if !withNames[refRule][refVar] {
		v.errs.add("rule %q references undefined variable %q.%q via %q", ownerRule, refRule, refVar, acc.Raw)
	}
}
