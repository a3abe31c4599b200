package accessor

import (
	"strings"

	"github.com/tornado-matcher/matcher/pkg/value"
)

// TemplateMode identifies which of the three interpolation strategies a
// compiled Template uses.
type TemplateMode int

const (
	// TemplateConstant means the source string contained no `${…}`
	// fragment at all; Resolve always returns the literal string.
	TemplateConstant TemplateMode = iota
	// TemplatePureAccessor means the source string is exactly one
	// `${…}` fragment with no surrounding text; Resolve returns the
	// resolved Value unchanged (so arrays/maps survive as such).
	TemplatePureAccessor
	// TemplateConcat means the source string mixes literal text with one
	// or more `${…}` fragments; Resolve always returns a String built by
	// display-coercing each fragment.
	TemplateConcat
)

// chunk is one piece of a Concat/PureAccessor template: either literal
// text (Accessor nil) or a compiled accessor.
type chunk struct {
	Literal  string
	Accessor *Accessor
}

// Template is a compiled template-interpolation string.
type Template struct {
	Mode   TemplateMode
	Chunks []chunk
	Raw    string
}

// CompileTemplate scans raw for `${…}` fragments and compiles each one,
// classifying the result as Constant, PureAccessor or Concat.
func CompileTemplate(raw string) (*Template, error) {
	chunks, err := scanTemplate(raw)
	if err != nil {
		return nil, err
	}

	accessorCount := 0
	for _, c := range chunks {
		if c.Accessor != nil {
			accessorCount++
		}
	}

	mode := TemplateConcat
	switch {
	case accessorCount == 0:
		mode = TemplateConstant
	case accessorCount == 1 && len(chunks) == 1:
		mode = TemplatePureAccessor
	}

	return &Template{Mode: mode, Chunks: chunks, Raw: raw}, nil
}

// Accessors returns every compiled Accessor embedded in t, in source
// order. Used by pkg/validator to walk referential integrity checks
// without re-parsing template source.
func (t *Template) Accessors() []*Accessor {
	var out []*Accessor
	for _, c := range t.Chunks {
		if c.Accessor != nil {
			out = append(out, c.Accessor)
		}
	}
	return out
}

// Resolve evaluates t against ctx, per Mode.
func (t *Template) Resolve(ctx Context) (value.Value, error) {
	switch t.Mode {
	case TemplateConstant:
		return value.String(t.Raw), nil
	case TemplatePureAccessor:
		return t.Chunks[0].Accessor.Resolve(ctx)
	default:
		var b strings.Builder
		for _, c := range t.Chunks {
			if c.Accessor == nil {
				b.WriteString(c.Literal)
				continue
			}
			v, err := c.Accessor.Resolve(ctx)
			if err != nil {
				return value.Null(), err
			}
			b.WriteString(value.ToDisplayString(v))
		}
		return value.String(b.String()), nil
	}
}

// scanTemplate splits raw into literal and `${…}` chunks. The closing
// brace is matched quote-aware so a quoted key containing '}' inside an
// accessor expression doesn't prematurely terminate the fragment.
func scanTemplate(raw string) ([]chunk, error) {
	var chunks []chunk
	var lit strings.Builder

	i := 0
	for i < len(raw) {
		if raw[i] == '$' && i+1 < len(raw) && raw[i+1] == '{' {
			if lit.Len() > 0 {
				chunks = append(chunks, chunk{Literal: lit.String()})
				lit.Reset()
			}
			end, err := findFragmentEnd(raw, i+2)
			if err != nil {
				return nil, err
			}
			expr := raw[i+2 : end]
			acc, err := Compile(expr)
			if err != nil {
				return nil, err
			}
			chunks = append(chunks, chunk{Accessor: acc})
			i = end + 1
			continue
		}
		lit.WriteByte(raw[i])
		i++
	}
	if lit.Len() > 0 {
		chunks = append(chunks, chunk{Literal: lit.String()})
	}
	if len(chunks) == 0 {
		chunks = append(chunks, chunk{Literal: ""})
	}
	return chunks, nil
}

// findFragmentEnd returns the index of the '}' closing a `${` fragment
// that began at start, skipping over any '}' inside a quoted key.
func findFragmentEnd(s string, start int) (int, error) {
	inQuote := false
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '"':
			inQuote = !inQuote
		case '}':
			if !inQuote {
				return i, nil
			}
		}
	}
	return 0, ErrInvalidAccessor
}
