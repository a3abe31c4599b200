package configdoc

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Kind identifies which of the four on-disk document shapes a
// document is being validated as.
type Kind string

const (
	KindRule     Kind = "rule"
	KindFilter   Kind = "filter"
	KindIterator Kind = "iterator"
	KindRuleset  Kind = "ruleset"
)

// schemas holds one JSON Schema per Kind, checked before pkg/tree.Compile
// ever sees the document and well before pkg/validator's semantic pass:
// structural shape first, semantic rules second.
var schemas = map[Kind]string{
	KindRule: `{
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"description": {"type": "string"},
			"continue": {"type": "boolean"},
			"active": {"type": "boolean"},
			"constraint": {"type": "object"},
			"actions": {"type": "array"}
		}
	}`,
	KindFilter: `{
		"type": "object",
		"properties": {
			"type": {"const": "filter"},
			"description": {"type": "string"},
			"active": {"type": "boolean"},
			"filter": {"type": ["object", "null"]},
			"nodes": {"type": "object"}
		}
	}`,
	KindIterator: `{
		"type": "object",
		"required": ["type", "target"],
		"properties": {
			"type": {"const": "iterator"},
			"description": {"type": "string"},
			"active": {"type": "boolean"},
			"target": {"type": "string"},
			"nodes": {"type": "object"}
		}
	}`,
	KindRuleset: `{
		"type": "object",
		"properties": {
			"type": {"const": "ruleset"},
			"rules": {"type": "array"}
		}
	}`,
}

// Validate runs the JSON Schema for kind against docBytes (the document's
// raw JSON bytes, exactly as read from disk). A document kind with no
// registered schema is rejected with ErrUnknownKind; structural failures
// are collected into a *SchemaError naming every problem gojsonschema
// found, not just the first.
func Validate(kind Kind, path string, docBytes []byte) error {
	schemaSrc, ok := schemas[kind]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	schemaLoader := gojsonschema.NewStringLoader(schemaSrc)
	docLoader := gojsonschema.NewBytesLoader(docBytes)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("configdoc: schema validation of %s errored: %w", path, err)
	}
	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		details = append(details, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}
	return &SchemaError{Path: path, Details: details}
}
