package operator

import (
	"fmt"
	"regexp"

	"github.com/tornado-matcher/matcher/pkg/accessor"
	"github.com/tornado-matcher/matcher/pkg/value"
)

// compiledPattern wraps a build-time compiled regexp.Regexp (stdlib RE2:
// deterministic, no catastrophic backtracking).
type compiledPattern struct {
	re *regexp.Regexp
}

func (p *compiledPattern) MatchString(s string) bool { return p.re.MatchString(s) }

// Compile builds an Operator from its decoded config JSON, recursing into
// AND/OR/NOT children and resolving comparands via CompileComparand.
// Failures here are ConfigError-class: build-time only.
func Compile(raw *value.Map) (Operator, error) {
	if raw == nil {
		return nil, nil
	}
	typField, ok := raw.Get("type")
	if !ok {
		return nil, fmt.Errorf("%w: missing type field", ErrUnknownType)
	}
	typ, ok := typField.AsString()
	if !ok {
		return nil, fmt.Errorf("%w: type field must be a string", ErrUnknownType)
	}

	switch typ {
	case "AND", "OR":
		return compileBoolList(typ, raw)
	case "NOT":
		return compileNot(raw)
	case "equals":
		return compileCompare(kindEquals, raw)
	case "equalsIgnoreCase":
		return compileCompare(kindEqualsIgnoreCase, raw)
	case "ne":
		return compileCompare(kindNe, raw)
	case "contains":
		return compileCompare(kindContains, raw)
	case "containsIgnoreCase":
		return compileCompare(kindContainsIgnoreCase, raw)
	case "ge":
		return compileCompare(kindGe, raw)
	case "gt":
		return compileCompare(kindGt, raw)
	case "le":
		return compileCompare(kindLe, raw)
	case "lt":
		return compileCompare(kindLt, raw)
	case "regex":
		return compileRegex(raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typ)
	}
}

func compileBoolList(typ string, raw *value.Map) (Operator, error) {
	list, ok := raw.Get("operators")
	if !ok {
		return nil, fmt.Errorf("%w (%s)", ErrMissingOperators, typ)
	}
	items, ok := list.AsArray()
	if !ok || len(items) == 0 {
		return nil, fmt.Errorf("%w (%s)", ErrMissingOperators, typ)
	}
	operands := make([]Operator, 0, len(items))
	for i, item := range items {
		m, ok := item.AsMap()
		if !ok {
			return nil, fmt.Errorf("operator: %s.operators[%d] must be an object", typ, i)
		}
		op, err := Compile(m)
		if err != nil {
			return nil, err
		}
		operands = append(operands, op)
	}
	if typ == "AND" {
		return &andOp{operands: operands}, nil
	}
	return &orOp{operands: operands}, nil
}

func compileNot(raw *value.Map) (Operator, error) {
	inner, ok := raw.Get("operator")
	if !ok {
		return nil, fmt.Errorf("%w (NOT)", ErrMissingOperand)
	}
	m, ok := inner.AsMap()
	if !ok {
		return nil, fmt.Errorf("operator: NOT.operator must be an object")
	}
	op, err := Compile(m)
	if err != nil {
		return nil, err
	}
	return &notOp{operand: op}, nil
}

func compileCompare(kind compareKind, raw *value.Map) (Operator, error) {
	firstRaw, ok := raw.Get("first")
	if !ok {
		return nil, fmt.Errorf("%w: missing first", ErrMissingOperand)
	}
	secondRaw, ok := raw.Get("second")
	if !ok {
		return nil, fmt.Errorf("%w: missing second", ErrMissingOperand)
	}
	first, err := CompileComparand(firstRaw)
	if err != nil {
		return nil, err
	}
	second, err := CompileComparand(secondRaw)
	if err != nil {
		return nil, err
	}
	return &compareOp{kind: kind, first: first, second: second}, nil
}

func compileRegex(raw *value.Map) (Operator, error) {
	patternField, ok := raw.Get("regex")
	if !ok {
		return nil, fmt.Errorf("%w: missing regex field", ErrMissingOperand)
	}
	pattern, ok := patternField.AsString()
	if !ok {
		return nil, fmt.Errorf("operator: regex field must be a string")
	}
	targetField, ok := raw.Get("target")
	if !ok {
		return nil, fmt.Errorf("%w: missing target field", ErrMissingOperand)
	}
	targetStr, ok := targetField.AsString()
	if !ok {
		return nil, fmt.Errorf("operator: regex target must be a string template")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidRegex, pattern, err)
	}
	target, err := accessor.CompileTemplate(targetStr)
	if err != nil {
		return nil, err
	}
	return &regexOp{target: target, pattern: &compiledPattern{re: re}}, nil
}
