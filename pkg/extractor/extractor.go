package extractor

import (
	"regexp"

	"github.com/tornado-matcher/matcher/pkg/accessor"
	"github.com/tornado-matcher/matcher/pkg/modifier"
	"github.com/tornado-matcher/matcher/pkg/value"
)

// strategyKind identifies which of the three regex strategies an
// Extractor uses.
type strategyKind int

const (
	strategyRegex strategyKind = iota
	strategyRegexNamedGroups
	strategyKeyRegex
)

// Extractor is a compiled WITH entry: resolve `from`, run a regex
// strategy, then run the modifier pipeline over each produced value.
type Extractor struct {
	name       string
	from       *accessor.Template
	strategy   strategyKind
	re         *regexp.Regexp
	groupIdx   int // for strategyRegex; 0 means "whole match"
	allMatches bool
	modifiers  []modifier.Modifier
}

// Name returns the variable name this extractor produces.
func (e *Extractor) Name() string { return e.name }

// Accessors returns the Accessor(s) embedded in this extractor's `from`
// template, for pkg/validator's referential-integrity walk.
func (e *Extractor) Accessors() []*accessor.Accessor { return e.from.Accessors() }

// Extract resolves e against ctx and runs the modifier chain over each
// produced value, returning a single Value (scalar, Array, or Map per
// strategy) or a *Error identifying what went wrong.
func (e *Extractor) Extract(ctx accessor.Context) (value.Value, error) {
	switch e.strategy {
	case strategyKeyRegex:
		return e.extractKeyRegex(ctx)
	default:
		return e.extractRegexLike(ctx)
	}
}

func (e *Extractor) extractRegexLike(ctx accessor.Context) (value.Value, error) {
	v, err := e.from.Resolve(ctx)
	if err != nil {
		return value.Null(), &Error{Variable: e.name, Err: err}
	}
	s, ok := v.AsString()
	if !ok {
		return value.Null(), &Error{Variable: e.name, Err: accessor.ErrTypeMismatch}
	}

	matches := e.re.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return value.Null(), &Error{Variable: e.name, Err: ErrNoMatch}
	}
	if !e.allMatches {
		matches = matches[:1]
	}

	produced := make([]value.Value, 0, len(matches))
	for _, m := range matches {
		var produced1 value.Value
		if e.strategy == strategyRegexNamedGroups {
			produced1 = namedGroupsToMap(e.re, s, m)
		} else {
			produced1 = groupToString(s, m, e.groupIdx)
		}
		chained, err := modifier.Chain(e.modifiers, produced1)
		if err != nil {
			return value.Null(), &Error{Variable: e.name, Err: err}
		}
		produced = append(produced, chained)
	}

	if !e.allMatches {
		return produced[0], nil
	}
	return value.Array(produced), nil
}

func (e *Extractor) extractKeyRegex(ctx accessor.Context) (value.Value, error) {
	v, err := e.from.Resolve(ctx)
	if err != nil {
		return value.Null(), &Error{Variable: e.name, Err: err}
	}
	src, ok := v.AsMap()
	if !ok {
		return value.Null(), &Error{Variable: e.name, Err: ErrSourceNotAMap}
	}

	out := value.NewMap()
	src.Range(func(key string, val value.Value) bool {
		if e.re.MatchString(key) {
			out.Set(key, val)
		}
		return true
	})
	if out.Len() == 0 {
		return value.Null(), &Error{Variable: e.name, Err: ErrNoKeysMatched}
	}

	result := value.FromMap(out)
	chained, err := modifier.Chain(e.modifiers, result)
	if err != nil {
		return value.Null(), &Error{Variable: e.name, Err: err}
	}
	return chained, nil
}

// groupToString extracts submatch group idx (0 = whole match) from s using
// the FindAllStringSubmatchIndex-style [start,end] pair slice m.
func groupToString(s string, m []int, idx int) value.Value {
	lo, hi := m[2*idx], m[2*idx+1]
	if lo < 0 || hi < 0 {
		return value.String("")
	}
	return value.String(s[lo:hi])
}

func namedGroupsToMap(re *regexp.Regexp, s string, m []int) value.Value {
	out := value.NewMap()
	for i, name := range re.SubexpNames() {
		if i == 0 || name == "" {
			continue
		}
		lo, hi := m[2*i], m[2*i+1]
		if lo < 0 || hi < 0 {
			out.Set(name, value.String(""))
			continue
		}
		out.Set(name, value.String(s[lo:hi]))
	}
	return value.FromMap(out)
}
