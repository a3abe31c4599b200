package modifier

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tornado-matcher/matcher/pkg/value"
)

// Modifier is one step of the post-extraction pipeline.
type Modifier interface {
	Apply(v value.Value) (value.Value, error)
}

// Chain runs modifiers in order, threading each result into the next.
// The first failure aborts the chain.
func Chain(modifiers []Modifier, v value.Value) (value.Value, error) {
	cur := v
	for _, m := range modifiers {
		next, err := m.Apply(cur)
		if err != nil {
			return value.Null(), err
		}
		cur = next
	}
	return cur, nil
}

type trimModifier struct{}

func (trimModifier) Apply(v value.Value) (value.Value, error) {
	s, ok := v.AsString()
	if !ok {
		return value.Null(), ErrNotAString
	}
	return value.String(strings.TrimSpace(s)), nil
}

type lowercaseModifier struct{}

func (lowercaseModifier) Apply(v value.Value) (value.Value, error) {
	s, ok := v.AsString()
	if !ok {
		return value.Null(), ErrNotAString
	}
	return value.String(value.FoldLower(s)), nil
}

type toNumberModifier struct{}

func (toNumberModifier) Apply(v value.Value) (value.Value, error) {
	if n, ok := v.AsNumber(); ok {
		return value.Number(n), nil
	}
	s, ok := v.AsString()
	if !ok {
		return value.Null(), ErrNotANumber
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return value.Null(), ErrNotANumber
	}
	return value.Number(n), nil
}

type replaceAllModifier struct {
	find    string
	replace string
	isRegex bool
	re      *regexp.Regexp
}

func (m *replaceAllModifier) Apply(v value.Value) (value.Value, error) {
	s, ok := v.AsString()
	if !ok {
		return value.Null(), ErrNotAString
	}
	if m.isRegex {
		return value.String(m.re.ReplaceAllString(s, m.replace)), nil
	}
	return value.String(strings.ReplaceAll(s, m.find, m.replace)), nil
}

type mapModifier struct {
	mapping      map[string]string
	defaultValue *string
}

func (m *mapModifier) Apply(v value.Value) (value.Value, error) {
	s, ok := v.AsString()
	if !ok {
		return value.Null(), ErrNotAString
	}
	if mapped, ok := m.mapping[s]; ok {
		return value.String(mapped), nil
	}
	if m.defaultValue != nil {
		return value.String(*m.defaultValue), nil
	}
	return value.Null(), ErrMapKeyNotFound
}

// dateAndTimeFormat is the fixed ISO-8601 rendering DateAndTime produces.
const dateAndTimeFormat = "2006-01-02T15:04:05.000Z07:00"

type dateAndTimeModifier struct {
	loc *time.Location
}

// Apply interprets a Number as Unix milliseconds, never seconds; an
// out-of-range value (negative, or implausibly far future) is rejected
// rather than silently misinterpreted.
func (m *dateAndTimeModifier) Apply(v value.Value) (value.Value, error) {
	var t time.Time
	switch {
	case v.Kind() == value.KindNumber:
		n, _ := v.AsNumber()
		// 253402300799999 is 9999-12-31T23:59:59.999Z; anything past it
		// is almost certainly epoch seconds scaled wrong, not a real
		// millisecond timestamp.
		if n < 0 || n > 253402300799999 {
			return value.Null(), ErrInvalidDateTime
		}
		t = time.UnixMilli(int64(n)).UTC()
	case v.Kind() == value.KindString:
		s, _ := v.AsString()
		parsed, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return value.Null(), ErrInvalidDateTime
		}
		t = parsed
	default:
		return value.Null(), ErrInvalidDateTime
	}
	return value.String(t.In(m.loc).Format(dateAndTimeFormat)), nil
}
