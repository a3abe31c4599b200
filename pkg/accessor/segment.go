package accessor

// SegKind identifies the shape of one path step.
type SegKind int

const (
	SegField SegKind = iota
	SegQuotedField
	SegIndex
)

// Segment is one step of a compiled path: a field/quoted-field name, or a
// 0-based array index.
type Segment struct {
	Kind  SegKind
	Name  string
	Index int
}

func fieldSeg(name string) Segment       { return Segment{Kind: SegField, Name: name} }
func quotedFieldSeg(name string) Segment { return Segment{Kind: SegQuotedField, Name: name} }
func indexSeg(i int) Segment             { return Segment{Kind: SegIndex, Index: i} }

// FieldName returns the field/quoted-field name and true, or ("", false)
// for an index segment.
func (s Segment) FieldName() (string, bool) {
	if s.Kind == SegIndex {
		return "", false
	}
	return s.Name, true
}
