package operator

import (
	"strings"

	"github.com/tornado-matcher/matcher/pkg/accessor"
	"github.com/tornado-matcher/matcher/pkg/value"
)

// Operator is a compiled boolean predicate node. Evaluate never errors: an
// accessor failure inside a comparand resolves the whole operator to
// false.
type Operator interface {
	Evaluate(ctx accessor.Context) bool
	// Accessors returns every compiled Accessor embedded anywhere in this
	// operator's comparands/targets, recursing into boolean children.
	// Used by pkg/validator for referential-integrity checks.
	Accessors() []*accessor.Accessor
}

// Eval evaluates op, treating a nil Operator as a missing WHERE clause,
// which matches everything.
func Eval(op Operator, ctx accessor.Context) bool {
	if op == nil {
		return true
	}
	return op.Evaluate(ctx)
}

type andOp struct{ operands []Operator }

func (o *andOp) Evaluate(ctx accessor.Context) bool {
	for _, operand := range o.operands {
		if !operand.Evaluate(ctx) {
			return false
		}
	}
	return true
}

func (o *andOp) Accessors() []*accessor.Accessor { return collectAccessors(o.operands) }

type orOp struct{ operands []Operator }

func (o *orOp) Evaluate(ctx accessor.Context) bool {
	for _, operand := range o.operands {
		if operand.Evaluate(ctx) {
			return true
		}
	}
	return false
}

func (o *orOp) Accessors() []*accessor.Accessor { return collectAccessors(o.operands) }

type notOp struct{ operand Operator }

func (o *notOp) Evaluate(ctx accessor.Context) bool {
	return !o.operand.Evaluate(ctx)
}

func (o *notOp) Accessors() []*accessor.Accessor { return o.operand.Accessors() }

func collectAccessors(operands []Operator) []*accessor.Accessor {
	var out []*accessor.Accessor
	for _, op := range operands {
		out = append(out, op.Accessors()...)
	}
	return out
}

// compareKind identifies one of the nine comparison operator types.
type compareKind int

const (
	kindEquals compareKind = iota
	kindEqualsIgnoreCase
	kindNe
	kindContains
	kindContainsIgnoreCase
	kindGe
	kindGt
	kindLe
	kindLt
)

type compareOp struct {
	kind   compareKind
	first  *Comparand
	second *Comparand
}

func (o *compareOp) Accessors() []*accessor.Accessor {
	return append(o.first.Accessors(), o.second.Accessors()...)
}

func (o *compareOp) Evaluate(ctx accessor.Context) bool {
	first, err := o.first.Resolve(ctx)
	if err != nil {
		return false
	}
	second, err := o.second.Resolve(ctx)
	if err != nil {
		return false
	}
	return evalCompare(o.kind, first, second)
}

func evalCompare(kind compareKind, first, second value.Value) bool {
	switch kind {
	case kindEquals:
		return value.Equal(first, second)
	case kindNe:
		return !value.Equal(first, second)
	case kindContains:
		return value.Contains(first, second)
	case kindEqualsIgnoreCase:
		return compareFoldedStrings(first, second, func(a, b string) bool { return a == b })
	case kindContainsIgnoreCase:
		return containsIgnoreCase(first, second)
	case kindGe, kindGt, kindLe, kindLt:
		cmp, ok := value.CompareOrdered(first, second)
		if !ok {
			return false
		}
		switch kind {
		case kindGe:
			return cmp >= 0
		case kindGt:
			return cmp > 0
		case kindLe:
			return cmp <= 0
		case kindLt:
			return cmp < 0
		}
	}
	return false
}

// compareFoldedStrings backs the case-insensitive comparisons, which are
// defined only for strings; any other operand type yields false.
func compareFoldedStrings(first, second value.Value, cmp func(a, b string) bool) bool {
	a, ok := first.AsString()
	if !ok {
		return false
	}
	b, ok := second.AsString()
	if !ok {
		return false
	}
	return cmp(value.FoldLower(a), value.FoldLower(b))
}

func containsIgnoreCase(haystack, needle value.Value) bool {
	return compareFoldedStrings(haystack, needle, strings.Contains)
}

type regexOp struct {
	target  *accessor.Template
	pattern *compiledPattern
}

func (o *regexOp) Accessors() []*accessor.Accessor { return o.target.Accessors() }

func (o *regexOp) Evaluate(ctx accessor.Context) bool {
	v, err := o.target.Resolve(ctx)
	if err != nil {
		return false
	}
	s, ok := v.AsString()
	if !ok {
		return false
	}
	return o.pattern.MatchString(s)
}
