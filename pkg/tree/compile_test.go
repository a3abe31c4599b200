package tree_test

import (
	"testing"

	"github.com/tornado-matcher/matcher/pkg/event"
	"github.com/tornado-matcher/matcher/pkg/tree"
	"github.com/tornado-matcher/matcher/pkg/value"
)

// TestCompileRulesetFromJSON compiles a ruleset from its on-disk JSON
// shape rather than hand-built structs, then processes an event through it.
func TestCompileRulesetFromJSON(t *testing.T) {
	doc := []byte(`{
		"type": "ruleset",
		"rules": [{
			"name": "email_with_temp",
			"constraint": {
				"WHERE": {"type": "equals", "first": "${event.type}", "second": "email"},
				"WITH": {
					"temperature": {
						"from": "${event.payload.body}",
						"regex": {"type": "Regex", "match": "[0-9]+\\sDegrees"},
						"modifiers_post": [{"type": "Trim"}]
					}
				}
			},
			"actions": [{"id": "logger", "payload": {"t": "${_variables.temperature}"}}]
		}]
	}`)

	v, err := value.ParseJSON(doc)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	m, _ := v.AsMap()

	node, err := tree.Compile("root", m)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	rs, ok := node.(*tree.Ruleset)
	if !ok {
		t.Fatalf("expected *tree.Ruleset, got %T", node)
	}
	if len(rs.Rules) != 1 || rs.Rules[0].Name != "email_with_temp" {
		t.Fatalf("unexpected rules: %+v", rs.Rules)
	}

	payload := value.NewMap()
	payload.Set("body", value.String("It's 42 Degrees"))
	ev := &event.Event{Type: "email", Payload: payload, Metadata: value.NewMap()}

	result := tree.Process(node, ev)
	if result.Ruleset.Rules[0].Status.String() != "Matched" {
		t.Fatalf("expected Matched, got %v", result.Ruleset.Rules[0].Status)
	}
	if len(result.Ruleset.Rules[0].Actions) != 1 {
		t.Fatalf("expected 1 action, got %d", len(result.Ruleset.Rules[0].Actions))
	}
}

// TestCompileFilterAndIteratorFromJSON exercises a Filter wrapping an
// Iterator wrapping a Ruleset, decoded from the "nodes" nesting convention.
func TestCompileFilterAndIteratorFromJSON(t *testing.T) {
	doc := []byte(`{
		"type": "filter",
		"filter": {"type": "equals", "first": "${event.type}", "second": "x"},
		"nodes": {
			"per_item": {
				"type": "iterator",
				"target": "${event.payload.items}",
				"nodes": {
					"inner": {
						"type": "ruleset",
						"rules": [{
							"name": "r",
							"constraint": {"WHERE": {"type": "equals", "first": "${event.iterator.item.kind}", "second": "alert"}},
							"actions": [{"id": "a", "payload": {"k": "${event.iteration}"}}]
						}]
					}
				}
			}
		}
	}`)

	v, err := value.ParseJSON(doc)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	m, _ := v.AsMap()

	node, err := tree.Compile("only_x", m)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	filter, ok := node.(*tree.Filter)
	if !ok {
		t.Fatalf("expected *tree.Filter, got %T", node)
	}
	if len(filter.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(filter.Children))
	}
	it, ok := filter.Children[0].(*tree.Iterator)
	if !ok {
		t.Fatalf("expected *tree.Iterator child, got %T", filter.Children[0])
	}
	if it.NodeName() != "per_item" {
		t.Fatalf("expected child name per_item, got %q", it.NodeName())
	}

	items := []value.Value{
		func() value.Value { mp := value.NewMap(); mp.Set("kind", value.String("alert")); return value.FromMap(mp) }(),
		func() value.Value { mp := value.NewMap(); mp.Set("kind", value.String("ok")); return value.FromMap(mp) }(),
	}
	payload := value.NewMap()
	payload.Set("items", value.Array(items))
	ev := &event.Event{Type: "x", Payload: payload, Metadata: value.NewMap()}

	result := tree.Process(node, ev)
	if result.Filter.Status != tree.FilterMatched {
		t.Fatalf("expected FilterMatched, got %v", result.Filter.Status)
	}
	iterResult := result.Filter.Nodes[0]
	if len(iterResult.Iterator.Events) != 2 {
		t.Fatalf("expected 2 iterations, got %d", len(iterResult.Iterator.Events))
	}
}

func TestCompileUnknownNodeType(t *testing.T) {
	v, _ := value.ParseJSON([]byte(`{"type": "bogus"}`))
	m, _ := v.AsMap()
	if _, err := tree.Compile("n", m); err == nil {
		t.Fatal("expected error for unknown node type")
	}
}
