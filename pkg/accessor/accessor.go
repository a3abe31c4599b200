package accessor

import (
	"github.com/tornado-matcher/matcher/pkg/event"
	"github.com/tornado-matcher/matcher/pkg/value"
)

// Context supplies the evaluation-time state a compiled Accessor resolves
// against: the current Event, any variables already extracted by earlier
// rules in the enclosing ruleset, and enough knowledge of rule scoping to
// disambiguate the `_variables` sugar form from the explicit
// `_variables.<rule>.<name>` form.
type Context interface {
	// Event returns the event currently being processed, including any
	// Iterator scope set by an enclosing Iterator node.
	Event() *event.Event
	// ExtractedVar looks up a previously extracted variable by its fully
	// qualified "<rule>.<name>" key.
	ExtractedVar(key string) (value.Value, bool)
	// CurrentRule returns the name of the rule currently being evaluated,
	// or ("", false) when evaluation is happening outside rule scope
	// (e.g. a Filter predicate or an Iterator target).
	CurrentRule() (string, bool)
	// KnownRule reports whether name is a rule that has already executed
	// (in document order) within the enclosing ruleset, making it a valid
	// target for the explicit `_variables.<rule>.<name>` form.
	KnownRule(name string) bool
}

// Accessor is a compiled `${…}` path expression, reusable across events.
type Accessor struct {
	Root     RootKind
	Segments []Segment
	Raw      string
}

// Compile parses raw (the text between "${" and "}", exclusive) into an
// Accessor. Compilation never touches an Event or Context; failures here
// are ConfigError-class.
func Compile(raw string) (*Accessor, error) {
	root, segs, err := parsePath(raw)
	if err != nil {
		return nil, err
	}
	return &Accessor{Root: root, Segments: segs, Raw: raw}, nil
}

// Resolve evaluates a against ctx. Failures are AccessorError-class,
// wrapped in *Error so callers can report the offending expression.
func (a *Accessor) Resolve(ctx Context) (value.Value, error) {
	var v value.Value
	var err error
	switch a.Root {
	case RootEvent:
		v, err = resolveEventPath(ctx.Event(), a.Segments)
	case RootVariables:
		v, err = resolveVariablesPath(ctx, a.Segments)
	default:
		return value.Null(), &Error{Expr: a.Raw, Err: ErrUnknownRoot}
	}
	if err != nil {
		return value.Null(), &Error{Expr: a.Raw, Err: err}
	}
	return v, nil
}

// resolveEventPath handles every `event.*` form, including the two
// synthesized composites (bare `event` and `event.iterator`) that have no
// single backing *value.Map.
func resolveEventPath(ev *event.Event, segs []Segment) (value.Value, error) {
	if len(segs) == 0 {
		return eventToValue(ev), nil
	}

	head := segs[0]
	name, isField := head.FieldName()
	if !isField {
		return value.Null(), ErrNotFound
	}

	switch name {
	case "type":
		if len(segs) > 1 {
			return value.Null(), ErrTypeMismatch
		}
		return value.String(ev.Type), nil
	case "created_ms":
		if len(segs) > 1 {
			return value.Null(), ErrTypeMismatch
		}
		return value.Number(float64(ev.CreatedMs)), nil
	case "trace_id":
		if len(segs) > 1 {
			return value.Null(), ErrTypeMismatch
		}
		return value.String(ev.TraceID), nil
	case "metadata":
		return navigateValue(value.FromMap(ev.Metadata), segs[1:])
	case "payload":
		return navigateValue(value.FromMap(ev.Payload), segs[1:])
	case "iteration":
		if len(segs) > 1 {
			return value.Null(), ErrTypeMismatch
		}
		if ev.Iterator == nil {
			return value.Null(), ErrNotFound
		}
		return ev.Iterator.Iteration, nil
	case "iterator":
		if ev.Iterator == nil {
			return value.Null(), ErrNotFound
		}
		m := value.NewMap()
		m.Set("item", ev.Iterator.Item)
		m.Set("iteration", ev.Iterator.Iteration)
		return navigateValue(value.FromMap(m), segs[1:])
	default:
		return value.Null(), ErrNotFound
	}
}

// resolveVariablesPath implements the `_variables.<name>` sugar form and
// the `_variables.<rule>.<name>` explicit cross-rule form, disambiguated
// by whether segs[0] names a rule the ctx already knows about.
func resolveVariablesPath(ctx Context, segs []Segment) (value.Value, error) {
	first, isField := segs[0].FieldName()
	if !isField {
		return value.Null(), ErrNotFound
	}

	if len(segs) == 1 {
		rule, ok := ctx.CurrentRule()
		if !ok {
			return value.Null(), ErrNoRuleScope
		}
		v, ok := ctx.ExtractedVar(rule + "." + first)
		if !ok {
			return value.Null(), ErrNotFound
		}
		return v, nil
	}

	if ctx.KnownRule(first) {
		second, isField := segs[1].FieldName()
		if !isField {
			return value.Null(), ErrNotFound
		}
		v, ok := ctx.ExtractedVar(first + "." + second)
		if !ok {
			return value.Null(), ErrNotFound
		}
		return navigateValue(v, segs[2:])
	}

	rule, ok := ctx.CurrentRule()
	if !ok {
		return value.Null(), ErrNoRuleScope
	}
	v, ok := ctx.ExtractedVar(rule + "." + first)
	if !ok {
		return value.Null(), ErrNotFound
	}
	return navigateValue(v, segs[1:])
}

// navigateValue walks segs into v, one step at a time. Field/QuotedField
// steps require v to be a Map; Index steps require v to be an Array.
func navigateValue(v value.Value, segs []Segment) (value.Value, error) {
	cur := v
	for _, seg := range segs {
		switch seg.Kind {
		case SegField, SegQuotedField:
			m, ok := cur.AsMap()
			if !ok {
				return value.Null(), ErrTypeMismatch
			}
			next, ok := m.Get(seg.Name)
			if !ok {
				return value.Null(), ErrNotFound
			}
			cur = next
		case SegIndex:
			arr, ok := cur.AsArray()
			if !ok {
				return value.Null(), ErrTypeMismatch
			}
			if seg.Index < 0 || seg.Index >= len(arr) {
				return value.Null(), ErrNotFound
			}
			cur = arr[seg.Index]
		}
	}
	return cur, nil
}

// eventToValue synthesizes the full `event` object as a Map, for the bare
// `${event}` accessor form.
func eventToValue(ev *event.Event) value.Value {
	m := value.NewMap()
	m.Set("type", value.String(ev.Type))
	m.Set("created_ms", value.Number(float64(ev.CreatedMs)))
	m.Set("trace_id", value.String(ev.TraceID))
	m.Set("metadata", value.FromMap(ev.Metadata))
	m.Set("payload", value.FromMap(ev.Payload))
	if ev.Iterator != nil {
		it := value.NewMap()
		it.Set("item", ev.Iterator.Item)
		it.Set("iteration", ev.Iterator.Iteration)
		m.Set("iterator", value.FromMap(it))
	}
	return value.FromMap(m)
}
