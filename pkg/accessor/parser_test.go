package accessor

import (
	"errors"
	"testing"
)

func TestParsePathEventRootNoSegments(t *testing.T) {
	root, segs, err := parsePath("event")
	if err != nil {
		t.Fatalf("parsePath: %v", err)
	}
	if root != RootEvent {
		t.Errorf("got root %v want RootEvent", root)
	}
	if len(segs) != 0 {
		t.Errorf("got %d segments want 0", len(segs))
	}
}

func TestParsePathChainedIndices(t *testing.T) {
	_, segs, err := parsePath("event.payload.items[0][1]")
	if err != nil {
		t.Fatalf("parsePath: %v", err)
	}
	want := []Segment{
		fieldSeg("payload"),
		fieldSeg("items"),
		indexSeg(0),
		indexSeg(1),
	}
	if len(segs) != len(want) {
		t.Fatalf("got %d segments want %d: %+v", len(segs), len(want), segs)
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Errorf("segment %d: got %+v want %+v", i, segs[i], want[i])
		}
	}
}

func TestParsePathQuotedKey(t *testing.T) {
	_, segs, err := parsePath(`event.payload."odd key"`)
	if err != nil {
		t.Fatalf("parsePath: %v", err)
	}
	if len(segs) != 2 || segs[1].Kind != SegQuotedField || segs[1].Name != "odd key" {
		t.Fatalf("got %+v", segs)
	}
}

func TestParsePathUnknownRoot(t *testing.T) {
	_, _, err := parsePath("foo.bar")
	if !errors.Is(err, ErrUnknownRoot) {
		t.Fatalf("got %v, want ErrUnknownRoot", err)
	}
}

func TestParsePathUnterminatedQuote(t *testing.T) {
	_, _, err := parsePath(`event.payload."unterminated`)
	if !errors.Is(err, ErrInvalidAccessor) {
		t.Fatalf("got %v, want ErrInvalidAccessor", err)
	}
}

func TestParsePathUnterminatedIndex(t *testing.T) {
	_, _, err := parsePath("event.payload.items[0")
	if !errors.Is(err, ErrInvalidAccessor) {
		t.Fatalf("got %v, want ErrInvalidAccessor", err)
	}
}

func TestParsePathEmptySegmentAfterDot(t *testing.T) {
	_, _, err := parsePath("event.")
	if !errors.Is(err, ErrInvalidAccessor) {
		t.Fatalf("got %v, want ErrInvalidAccessor", err)
	}
}

func TestParsePathVariablesRequiresSegment(t *testing.T) {
	_, _, err := parsePath("_variables")
	if !errors.Is(err, ErrInvalidAccessor) {
		t.Fatalf("got %v, want ErrInvalidAccessor", err)
	}
}

func TestParsePathVariablesCrossRuleForm(t *testing.T) {
	root, segs, err := parsePath("_variables.check_ip.ip")
	if err != nil {
		t.Fatalf("parsePath: %v", err)
	}
	if root != RootVariables {
		t.Errorf("got root %v want RootVariables", root)
	}
	if len(segs) != 2 {
		t.Fatalf("got %d segments want 2", len(segs))
	}
}
