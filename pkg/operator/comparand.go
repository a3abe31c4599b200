package operator

import (
	"github.com/tornado-matcher/matcher/pkg/accessor"
	"github.com/tornado-matcher/matcher/pkg/value"
)

// Comparand is one side of a comparison operator: "first"/"second" may hold either a string template (resolved through the
// `${…}` interpolator) or a literal JSON value (used as-is).
type Comparand struct {
	template  *accessor.Template
	literal   value.Value
	isLiteral bool
}

// CompileComparand inspects raw as it was decoded from the operator's
// config JSON: a JSON string compiles as a template (so it may itself
// contain `${…}` fragments); any other JSON value (number, bool, array,
// object, null) is taken as a literal constant.
func CompileComparand(raw value.Value) (*Comparand, error) {
	if s, ok := raw.AsString(); ok {
		t, err := accessor.CompileTemplate(s)
		if err != nil {
			return nil, err
		}
		return &Comparand{template: t}, nil
	}
	return &Comparand{literal: raw, isLiteral: true}, nil
}

// Accessors returns the Accessor(s) embedded in this comparand, empty for
// a literal constant.
func (c *Comparand) Accessors() []*accessor.Accessor {
	if c.isLiteral {
		return nil
	}
	return c.template.Accessors()
}

// Resolve evaluates the comparand against ctx. An accessor failure is
// returned as an error to the caller, which always turns it into an
// overall `false` rather than propagating it further.
func (c *Comparand) Resolve(ctx accessor.Context) (value.Value, error) {
	if c.isLiteral {
		return c.literal, nil
	}
	return c.template.Resolve(ctx)
}
