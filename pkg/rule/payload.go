package rule

import (
	"github.com/tornado-matcher/matcher/pkg/accessor"
	"github.com/tornado-matcher/matcher/pkg/value"
)

// PayloadTemplate is a compiled action payload: string
// leaves are template-interpolated via pkg/accessor, array/map structure
// is walked and rebuilt, and every other literal (number, bool, null)
// passes through unchanged.
type PayloadTemplate struct {
	literal  value.Value
	str      *accessor.Template
	array    []*PayloadTemplate
	mapKeys  []string
	mapVals  []*PayloadTemplate
	isArray  bool
	isMap    bool
	isString bool
}

// CompilePayload walks raw (as decoded from the action's config JSON) and
// compiles every string leaf as a template, recursing into arrays/maps.
func CompilePayload(raw value.Value) (*PayloadTemplate, error) {
	switch raw.Kind() {
	case value.KindString:
		s, _ := raw.AsString()
		t, err := accessor.CompileTemplate(s)
		if err != nil {
			return nil, err
		}
		return &PayloadTemplate{str: t, isString: true}, nil
	case value.KindArray:
		items, _ := raw.AsArray()
		compiled := make([]*PayloadTemplate, 0, len(items))
		for _, item := range items {
			c, err := CompilePayload(item)
			if err != nil {
				return nil, err
			}
			compiled = append(compiled, c)
		}
		return &PayloadTemplate{array: compiled, isArray: true}, nil
	case value.KindMap:
		m, _ := raw.AsMap()
		keys := make([]string, 0, m.Len())
		vals := make([]*PayloadTemplate, 0, m.Len())
		m.Range(func(key string, v value.Value) bool {
			keys = append(keys, key)
			return true
		})
		for _, k := range keys {
			v, _ := m.Get(k)
			c, err := CompilePayload(v)
			if err != nil {
				return nil, err
			}
			vals = append(vals, c)
		}
		return &PayloadTemplate{mapKeys: keys, mapVals: vals, isMap: true}, nil
	default:
		return &PayloadTemplate{literal: raw}, nil
	}
}

// Accessors returns every Accessor embedded anywhere in this payload
// template, recursing into arrays/maps. Used by pkg/validator.
func (p *PayloadTemplate) Accessors() []*accessor.Accessor {
	switch {
	case p.isString:
		return p.str.Accessors()
	case p.isArray:
		var out []*accessor.Accessor
		for _, c := range p.array {
			out = append(out, c.Accessors()...)
		}
		return out
	case p.isMap:
		var out []*accessor.Accessor
		for _, c := range p.mapVals {
			out = append(out, c.Accessors()...)
		}
		return out
	default:
		return nil
	}
}

// Resolve produces the fully-interpolated Value: every `${…}` fragment
// anywhere in the structure is resolved — a Matched rule's payload never
// contains an unresolved `${…}` fragment.
func (p *PayloadTemplate) Resolve(ctx accessor.Context) (value.Value, error) {
	switch {
	case p.isString:
		return p.str.Resolve(ctx)
	case p.isArray:
		out := make([]value.Value, len(p.array))
		for i, c := range p.array {
			v, err := c.Resolve(ctx)
			if err != nil {
				return value.Null(), err
			}
			out[i] = v
		}
		return value.Array(out), nil
	case p.isMap:
		out := value.NewMap()
		for i, k := range p.mapKeys {
			v, err := p.mapVals[i].Resolve(ctx)
			if err != nil {
				return value.Null(), err
			}
			out.Set(k, v)
		}
		return value.FromMap(out), nil
	default:
		return p.literal, nil
	}
}
