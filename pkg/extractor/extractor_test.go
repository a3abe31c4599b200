package extractor_test

import (
	"testing"

	"github.com/tornado-matcher/matcher/pkg/event"
	"github.com/tornado-matcher/matcher/pkg/extractor"
	"github.com/tornado-matcher/matcher/pkg/value"
)

type fakeCtx struct{ ev *event.Event }

func (c *fakeCtx) Event() *event.Event                     { return c.ev }
func (c *fakeCtx) ExtractedVar(string) (value.Value, bool) { return value.Value{}, false }
func (c *fakeCtx) CurrentRule() (string, bool)             { return "", false }
func (c *fakeCtx) KnownRule(string) bool                   { return false }

func mapOf(pairs ...any) *value.Map {
	m := value.NewMap()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i].(string), pairs[i+1].(value.Value))
	}
	return m
}

func newEvent(t *testing.T, payload *value.Map) *event.Event {
	t.Helper()
	ev, err := event.New("email", nil, payload)
	if err != nil {
		t.Fatalf("event.New: %v", err)
	}
	return ev
}

func TestRegexWholeMatchTrim(t *testing.T) {
	cfg := mapOf(
		"from", value.String("${event.payload.body}"),
		"regex", value.FromMap(mapOf(
			"type", value.String("Regex"),
			"match", value.String(`[0-9]+\sDegrees`),
		)),
		"modifiers_post", value.Array([]value.Value{value.FromMap(mapOf("type", value.String("Trim")))}),
	)
	ex, err := extractor.Compile("temperature", cfg)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	payload := mapOf("body", value.String("It's 42 Degrees"))
	out, err := ex.Extract(&fakeCtx{ev: newEvent(t, payload)})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if s, _ := out.AsString(); s != "42 Degrees" {
		t.Fatalf("got %q", s)
	}
}

func TestRegexNoMatchFails(t *testing.T) {
	cfg := mapOf(
		"from", value.String("${event.payload.body}"),
		"regex", value.FromMap(mapOf("type", value.String("Regex"), "match", value.String("[0-9]+"))),
	)
	ex, err := extractor.Compile("temperature", cfg)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	payload := mapOf("body", value.String("no digits here"))
	if _, err := ex.Extract(&fakeCtx{ev: newEvent(t, payload)}); err == nil {
		t.Fatal("expected no-match error")
	}
}

func TestRegexAllMatchesArray(t *testing.T) {
	cfg := mapOf(
		"from", value.String("${event.payload.body}"),
		"regex", value.FromMap(mapOf(
			"type", value.String("Regex"),
			"match", value.String("[0-9]+"),
			"all_matches", value.Bool(true),
		)),
	)
	ex, err := extractor.Compile("numbers", cfg)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	payload := mapOf("body", value.String("a1 b22 c333"))
	out, err := ex.Extract(&fakeCtx{ev: newEvent(t, payload)})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	arr, ok := out.AsArray()
	if !ok || len(arr) != 3 {
		t.Fatalf("expected array of 3, got %v", out)
	}
}

func TestRegexAllMatchesEmptyFails(t *testing.T) {
	cfg := mapOf(
		"from", value.String("${event.payload.body}"),
		"regex", value.FromMap(mapOf(
			"type", value.String("Regex"),
			"match", value.String("[0-9]+"),
			"all_matches", value.Bool(true),
		)),
	)
	ex, err := extractor.Compile("numbers", cfg)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	payload := mapOf("body", value.String("no digits"))
	if _, err := ex.Extract(&fakeCtx{ev: newEvent(t, payload)}); err == nil {
		t.Fatal("expected error for zero matches with all_matches=true")
	}
}

func TestRegexNamedGroups(t *testing.T) {
	cfg := mapOf(
		"from", value.String("${event.payload.body}"),
		"regex", value.FromMap(mapOf(
			"type", value.String("RegexNamedGroups"),
			"named_match", value.String(`(?P<num>[0-9]+) (?P<unit>\w+)`),
		)),
	)
	ex, err := extractor.Compile("reading", cfg)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	payload := mapOf("body", value.String("42 Degrees"))
	out, err := ex.Extract(&fakeCtx{ev: newEvent(t, payload)})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	m, ok := out.AsMap()
	if !ok {
		t.Fatalf("expected map, got %v", out)
	}
	if v, _ := m.Get("num"); mustStr(t, v) != "42" {
		t.Fatalf("num = %v", v)
	}
	if v, _ := m.Get("unit"); mustStr(t, v) != "Degrees" {
		t.Fatalf("unit = %v", v)
	}
}

func TestKeyRegex(t *testing.T) {
	cfg := mapOf(
		"from", value.String("${event.payload}"),
		"regex", value.FromMap(mapOf(
			"type", value.String("KeyRegex"),
			"single_key_match", value.String(`^x_.*`),
		)),
	)
	ex, err := extractor.Compile("xfields", cfg)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	payload := mapOf("x_a", value.String("1"), "y", value.String("2"), "x_b", value.String("3"))
	out, err := ex.Extract(&fakeCtx{ev: newEvent(t, payload)})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	m, ok := out.AsMap()
	if !ok || m.Len() != 2 {
		t.Fatalf("expected map of 2 keys, got %v", out)
	}
	if keys := m.Keys(); keys[0] != "x_a" || keys[1] != "x_b" {
		t.Fatalf("expected insertion order preserved, got %v", keys)
	}
}

func TestKeyRegexRequiresMapSource(t *testing.T) {
	cfg := mapOf(
		"from", value.String("${event.payload.body}"),
		"regex", value.FromMap(mapOf("type", value.String("KeyRegex"), "single_key_match", value.String("^x"))),
	)
	ex, err := extractor.Compile("xfields", cfg)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	payload := mapOf("body", value.String("not a map"))
	if _, err := ex.Extract(&fakeCtx{ev: newEvent(t, payload)}); err == nil {
		t.Fatal("expected error when from resolves to a non-map")
	}
}

func mustStr(t *testing.T, v value.Value) string {
	t.Helper()
	s, ok := v.AsString()
	if !ok {
		t.Fatalf("expected string, got %v", v.Kind())
	}
	return s
}
