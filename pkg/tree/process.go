package tree

import (
	"github.com/tornado-matcher/matcher/pkg/event"
	"github.com/tornado-matcher/matcher/pkg/operator"
	"github.com/tornado-matcher/matcher/pkg/rule"
	"github.com/tornado-matcher/matcher/pkg/value"
)

// Process evaluates n against ev, recursing into children, with no
// resource limits applied. It never returns an error: every
// possible failure (a false predicate, an inactive node, an accessor
// miss, a non-collection Iterator target) is recorded as a status inside
// the returned ProcessedNode.
func Process(n Node, ev *event.Event) ProcessedNode {
	return ProcessWithLimits(n, ev, Limits{})
}

// ProcessWithLimits is Process with the resource guards of Limits
// applied; pkg/matcher.Matcher.Process calls this with the limits from
// its Config.
func ProcessWithLimits(n Node, ev *event.Event, limits Limits) ProcessedNode {
	switch t := n.(type) {
	case *Filter:
		return processFilter(t, ev, limits)
	case *Iterator:
		return processIterator(t, ev, limits)
	case *Ruleset:
		return processRuleset(t, ev, limits)
	default:
		// InternalError class: a Node implementation this package didn't
		// create. Never reachable through Compile/Build.
		panic("tree: unknown node type")
	}
}

func processFilter(f *Filter, ev *event.Event, limits Limits) ProcessedNode {
	if !f.Active {
		return ProcessedNode{Type: "Filter", Name: f.Name, Filter: &ProcessedFilter{Status: FilterInactive}}
	}
	if !operator.Eval(f.Predicate, &baseContext{ev: ev}) {
		return ProcessedNode{Type: "Filter", Name: f.Name, Filter: &ProcessedFilter{Status: FilterNotMatched}}
	}
	nodes := make([]ProcessedNode, 0, len(f.Children))
	for _, child := range f.Children {
		nodes = append(nodes, ProcessWithLimits(child, ev, limits))
	}
	return ProcessedNode{Type: "Filter", Name: f.Name, Filter: &ProcessedFilter{Status: FilterMatched, Nodes: nodes}}
}

func processIterator(it *Iterator, ev *event.Event, limits Limits) ProcessedNode {
	if !it.Active {
		// inactive: preserve structure, do no work, report Matched.
		return ProcessedNode{Type: "Iterator", Name: it.Name, Iterator: &ProcessedIterator{Status: IteratorMatched}}
	}

	target, err := it.Target.Resolve(&baseContext{ev: ev})
	if err != nil {
		return ProcessedNode{Type: "Iterator", Name: it.Name, Iterator: &ProcessedIterator{Status: IteratorAccessorError}}
	}

	switch target.Kind() {
	case value.KindArray:
		arr, _ := target.AsArray()
		if limits.MaxIteratorTargetSize > 0 && len(arr) > limits.MaxIteratorTargetSize {
			return ProcessedNode{Type: "Iterator", Name: it.Name, Iterator: &ProcessedIterator{Status: IteratorTypeError}}
		}
		events := make([]ProcessedIteration, 0, len(arr))
		for idx, item := range arr {
			events = append(events, processIteration(it, ev, item, value.Number(float64(idx)), limits))
		}
		return ProcessedNode{Type: "Iterator", Name: it.Name, Iterator: &ProcessedIterator{Status: IteratorMatched, Events: events}}
	case value.KindMap:
		m, _ := target.AsMap()
		if limits.MaxIteratorTargetSize > 0 && m.Len() > limits.MaxIteratorTargetSize {
			return ProcessedNode{Type: "Iterator", Name: it.Name, Iterator: &ProcessedIterator{Status: IteratorTypeError}}
		}
		events := make([]ProcessedIteration, 0, m.Len())
		m.Range(func(key string, item value.Value) bool {
			events = append(events, processIteration(it, ev, item, value.String(key), limits))
			return true
		})
		return ProcessedNode{Type: "Iterator", Name: it.Name, Iterator: &ProcessedIterator{Status: IteratorMatched, Events: events}}
	default:
		return ProcessedNode{Type: "Iterator", Name: it.Name, Iterator: &ProcessedIterator{Status: IteratorTypeError}}
	}
}

func processIteration(it *Iterator, ev *event.Event, item, iteration value.Value, limits Limits) ProcessedIteration {
	iterEvent := ev.WithIterator(item, iteration)
	nodes := make([]ProcessedNode, 0, len(it.Children))
	for _, child := range it.Children {
		// Each child's own Ruleset evaluation allocates a fresh
		// rulesetContext (see processRuleset), so extracted_vars never
		// leaks between iterations or siblings.
		nodes = append(nodes, ProcessWithLimits(child, iterEvent, limits))
	}
	return ProcessedIteration{Event: iterEvent, Nodes: nodes}
}

func processRuleset(rs *Ruleset, ev *event.Event, limits Limits) ProcessedNode {
	ctx := newRulesetContext(ev, limits.MaxExtractedVarsPerRuleset)
	rules := make([]ProcessedRule, 0, len(rs.Rules))
	stopped := false

	for _, r := range rs.Rules {
		if stopped {
			rules = append(rules, ProcessedRule{Name: r.Name, Status: rule.NotProcessed})
			continue
		}
		ctx.current = r.Name
		res := r.Evaluate(ctx)
		rules = append(rules, ProcessedRule{Name: r.Name, Status: res.Status, Actions: res.Actions, Message: res.Message})
		if res.Status == rule.Matched && !r.Continue {
			stopped = true
		}
	}
	ctx.current = ""

	return ProcessedNode{
		Type: "Ruleset",
		Name: rs.Name,
		Ruleset: &ProcessedRuleset{
			Rules:         rules,
			ExtractedVars: ctx.vars,
		},
	}
}
