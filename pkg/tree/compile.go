package tree

import (
	"fmt"

	"github.com/tornado-matcher/matcher/pkg/accessor"
	"github.com/tornado-matcher/matcher/pkg/operator"
	"github.com/tornado-matcher/matcher/pkg/rule"
	"github.com/tornado-matcher/matcher/pkg/value"
)

// Compile decodes one node document into a Node, recursing into "nodes"
// for Filter/Iterator children. Name regex checks, duplicate-sibling
// checks, and cross-rule referential integrity are NOT performed here —
// those are pkg/validator's job, run once over the whole tree Compile
// returns; this step only produces a structurally well-formed tree from
// well-formed JSON.
//
// raw's "type" field selects the node kind: "filter", "iterator", or
// "ruleset". A document with no "type" field is assumed to be a ruleset,
// matching the on-disk convention that a leaf document only ever lists
// "rules" and never "filter"/"target".
func Compile(name string, raw *value.Map) (Node, error) {
	typ := "ruleset"
	if typField, ok := raw.Get("type"); ok {
		t, ok := typField.AsString()
		if !ok {
			return nil, fmt.Errorf("%w: %s: type must be a string", ErrInvalidConfig, name)
		}
		typ = t
	}

	switch typ {
	case "filter", "Filter":
		return compileFilter(name, raw)
	case "iterator", "Iterator":
		return compileIterator(name, raw)
	case "ruleset", "Ruleset":
		return compileRuleset(name, raw)
	default:
		return nil, fmt.Errorf("%w: %s: %q", ErrUnknownNodeType, name, typ)
	}
}

func compileFilter(name string, raw *value.Map) (*Filter, error) {
	description := optionalString(raw, "description")
	active := optionalBool(raw, "active", true)

	var predicate operator.Operator
	if filterField, ok := raw.Get("filter"); ok && !filterField.IsNull() {
		filterMap, ok := filterField.AsMap()
		if !ok {
			return nil, fmt.Errorf("%w: %s: filter must be an object", ErrInvalidConfig, name)
		}
		pred, err := operator.Compile(filterMap)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		predicate = pred
	}

	children, err := compileChildren(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return &Filter{
		Name:        name,
		Description: description,
		Active:      active,
		Predicate:   predicate,
		Children:    children,
	}, nil
}

func compileIterator(name string, raw *value.Map) (*Iterator, error) {
	description := optionalString(raw, "description")
	active := optionalBool(raw, "active", true)

	targetField, ok := raw.Get("target")
	if !ok {
		return nil, fmt.Errorf("%w: %s: missing target", ErrInvalidConfig, name)
	}
	targetStr, ok := targetField.AsString()
	if !ok {
		return nil, fmt.Errorf("%w: %s: target must be a string", ErrInvalidConfig, name)
	}
	target, err := accessor.CompileTemplate(targetStr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	children, err := compileChildren(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return &Iterator{
		Name:        name,
		Description: description,
		Active:      active,
		Target:      target,
		Children:    children,
	}, nil
}

func compileRuleset(name string, raw *value.Map) (*Ruleset, error) {
	rulesField, ok := raw.Get("rules")
	var rules []*rule.Rule
	if ok && !rulesField.IsNull() {
		items, ok := rulesField.AsArray()
		if !ok {
			return nil, fmt.Errorf("%w: %s: rules must be an array", ErrInvalidConfig, name)
		}
		rules = make([]*rule.Rule, 0, len(items))
		for i, item := range items {
			ruleMap, ok := item.AsMap()
			if !ok {
				return nil, fmt.Errorf("%w: %s.rules[%d] must be an object", ErrInvalidConfig, name, i)
			}
			r, err := rule.Compile(ruleMap)
			if err != nil {
				return nil, fmt.Errorf("%s.rules[%d]: %w", name, i, err)
			}
			rules = append(rules, r)
		}
	}
	return &Ruleset{Name: name, Rules: rules}, nil
}

// compileChildren decodes the "nodes" field shared by Filter and
// Iterator documents: a name-keyed object, recursed into in its
// insertion order.
func compileChildren(raw *value.Map) ([]Node, error) {
	nodesField, ok := raw.Get("nodes")
	if !ok || nodesField.IsNull() {
		return nil, nil
	}
	nodesMap, ok := nodesField.AsMap()
	if !ok {
		return nil, fmt.Errorf("%w: nodes must be an object", ErrInvalidConfig)
	}
	children := make([]Node, 0, nodesMap.Len())
	for _, childName := range nodesMap.Keys() {
		childField, _ := nodesMap.Get(childName)
		childMap, ok := childField.AsMap()
		if !ok {
			return nil, fmt.Errorf("%w: node %q must be an object", ErrInvalidConfig, childName)
		}
		child, err := Compile(childName, childMap)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

func optionalString(m *value.Map, name string) string {
	v, ok := m.Get(name)
	if !ok {
		return ""
	}
	s, _ := v.AsString()
	return s
}

func optionalBool(m *value.Map, name string, def bool) bool {
	v, ok := m.Get(name)
	if !ok {
		return def
	}
	b, ok := v.AsBool()
	if !ok {
		return def
	}
	return b
}
