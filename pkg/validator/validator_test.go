package validator_test

import (
	"strings"
	"testing"

	"github.com/tornado-matcher/matcher/pkg/accessor"
	"github.com/tornado-matcher/matcher/pkg/extractor"
	"github.com/tornado-matcher/matcher/pkg/rule"
	"github.com/tornado-matcher/matcher/pkg/tree"
	"github.com/tornado-matcher/matcher/pkg/validator"
	"github.com/tornado-matcher/matcher/pkg/value"
)

func mapOf(pairs ...any) *value.Map {
	m := value.NewMap()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i].(string), pairs[i+1].(value.Value))
	}
	return m
}

func mustExtractor(t *testing.T, name string) *extractor.Extractor {
	t.Helper()
	cfg := mapOf(
		"from", value.String("${event.payload.temp}"),
		"regex", value.FromMap(mapOf("type", value.String("Regex"), "match", value.String("(.*)"))),
	)
	ex, err := extractor.Compile(name, cfg)
	if err != nil {
		t.Fatalf("extractor.Compile: %v", err)
	}
	return ex
}

func mustPayload(t *testing.T, s string) *rule.PayloadTemplate {
	t.Helper()
	p, err := rule.CompilePayload(value.String(s))
	if err != nil {
		t.Fatalf("CompilePayload: %v", err)
	}
	return p
}

func containsProblem(errs *validator.Errors, substr string) bool {
	for _, p := range errs.Problems {
		if strings.Contains(p, substr) {
			return true
		}
	}
	return false
}

func TestValidateCleanTreeIsNil(t *testing.T) {
	a := &rule.Rule{Name: "rule_a", Active: true, With: []*extractor.Extractor{mustExtractor(t, "temp")}}
	b := &rule.Rule{Name: "rule_b", Active: true, Actions: []*rule.Action{{
		ID:      "act",
		Payload: mustPayload(t, "${_variables.rule_a.temp}"),
	}}}
	rs := &tree.Ruleset{Name: "rs", Rules: []*rule.Rule{a, b}}

	if errs := validator.Validate(rs); errs != nil {
		t.Fatalf("expected nil, got %v", errs.Problems)
	}
}

func TestValidateBadName(t *testing.T) {
	rs := &tree.Ruleset{Name: "bad name!", Rules: nil}
	errs := validator.Validate(rs)
	if errs == nil {
		t.Fatal("expected errors")
	}
	if !containsProblem(errs, "does not match") {
		t.Fatalf("expected name-pattern problem, got %v", errs.Problems)
	}
}

func TestValidateDuplicateRuleNames(t *testing.T) {
	a := &rule.Rule{Name: "dup", Active: true}
	b := &rule.Rule{Name: "dup", Active: true}
	rs := &tree.Ruleset{Name: "rs", Rules: []*rule.Rule{a, b}}

	errs := validator.Validate(rs)
	if errs == nil || !containsProblem(errs, "duplicate rule name") {
		t.Fatalf("expected duplicate-rule-name problem, got %v", errs)
	}
}

func TestValidateDuplicateSiblingNames(t *testing.T) {
	rs1 := &tree.Ruleset{Name: "same"}
	rs2 := &tree.Ruleset{Name: "same"}
	f := &tree.Filter{Name: "f", Active: true, Children: []tree.Node{rs1, rs2}}

	errs := validator.Validate(f)
	if errs == nil || !containsProblem(errs, "duplicate child name") {
		t.Fatalf("expected duplicate-child-name problem, got %v", errs)
	}
}

func TestValidateNestedIteratorRejected(t *testing.T) {
	inner := &tree.Iterator{Name: "inner", Active: true, Target: compileTemplate(t, "${event.payload.xs}")}
	outer := &tree.Iterator{Name: "outer", Active: true, Target: compileTemplate(t, "${event.payload.xs}"), Children: []tree.Node{inner}}

	errs := validator.Validate(outer)
	if errs == nil || !containsProblem(errs, "nested inside another iterator") {
		t.Fatalf("expected nested-iterator problem, got %v", errs)
	}
}

func TestValidateUnknownVariableReference(t *testing.T) {
	a := &rule.Rule{Name: "rule_a", Active: true, Actions: []*rule.Action{{
		ID:      "act",
		Payload: mustPayload(t, "${_variables.nonexistent_rule.x}"),
	}}}
	rs := &tree.Ruleset{Name: "rs", Rules: []*rule.Rule{a}}

	errs := validator.Validate(rs)
	if errs == nil || !containsProblem(errs, "unknown rule") {
		t.Fatalf("expected unknown-rule problem, got %v", errs)
	}
}

func TestValidateForwardReferenceRejected(t *testing.T) {
	a := &rule.Rule{Name: "rule_a", Active: true, Actions: []*rule.Action{{
		ID:      "act",
		Payload: mustPayload(t, "${_variables.rule_b.temp}"),
	}}}
	b := &rule.Rule{Name: "rule_b", Active: true, With: []*extractor.Extractor{mustExtractor(t, "temp")}}
	rs := &tree.Ruleset{Name: "rs", Rules: []*rule.Rule{a, b}}

	errs := validator.Validate(rs)
	if errs == nil || !containsProblem(errs, "ordering violation") {
		t.Fatalf("expected ordering-violation problem, got %v", errs)
	}
}

func TestValidateUndefinedVariableName(t *testing.T) {
	a := &rule.Rule{Name: "rule_a", Active: true, With: []*extractor.Extractor{mustExtractor(t, "temp")}}
	b := &rule.Rule{Name: "rule_b", Active: true, Actions: []*rule.Action{{
		ID:      "act",
		Payload: mustPayload(t, "${_variables.rule_a.wrong_name}"),
	}}}
	rs := &tree.Ruleset{Name: "rs", Rules: []*rule.Rule{a, b}}

	errs := validator.Validate(rs)
	if errs == nil || !containsProblem(errs, "undefined variable") {
		t.Fatalf("expected undefined-variable problem, got %v", errs)
	}
}

func compileTemplate(t *testing.T, s string) *accessor.Template {
	t.Helper()
	tmpl, err := accessor.CompileTemplate(s)
	if err != nil {
		t.Fatalf("CompileTemplate: %v", err)
	}
	return tmpl
}
