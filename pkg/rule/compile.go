package rule

import (
	"fmt"
	"regexp"

	"github.com/tornado-matcher/matcher/pkg/extractor"
	"github.com/tornado-matcher/matcher/pkg/operator"
	"github.com/tornado-matcher/matcher/pkg/value"
)

// NamePattern is the identifier regex shared by rules and tree nodes:
// `[A-Za-z0-9_]+`.
var NamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Compile builds a Rule from its decoded config JSON. Name validity and
// cross-rule referential integrity are NOT checked here (the Validator
// pass, run once over the whole tree, owns those); this step only builds
// a working, individually-consistent Rule.
func Compile(raw *value.Map) (*Rule, error) {
	name, err := stringField(raw, "name")
	if err != nil {
		return nil, err
	}
	description := optionalString(raw, "description")

	continueFlag := true
	if v, ok := raw.Get("continue"); ok {
		continueFlag, _ = v.AsBool()
	}
	active := true
	if v, ok := raw.Get("active"); ok {
		active, _ = v.AsBool()
	}

	// A rule with no constraint object matches every event and extracts
	// nothing.
	constraint := value.NewMap()
	if constraintField, ok := raw.Get("constraint"); ok && !constraintField.IsNull() {
		constraint, ok = constraintField.AsMap()
		if !ok {
			return nil, fmt.Errorf("%w: %s: constraint must be an object", ErrInvalidConfig, name)
		}
	}

	var where operator.Operator
	if whereField, ok := constraint.Get("WHERE"); ok && !whereField.IsNull() {
		whereMap, ok := whereField.AsMap()
		if !ok {
			return nil, fmt.Errorf("%w: %s: WHERE must be an object", ErrInvalidConfig, name)
		}
		where, err = operator.Compile(whereMap)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}

	var with []*extractor.Extractor
	if withField, ok := constraint.Get("WITH"); ok && !withField.IsNull() {
		withMap, ok := withField.AsMap()
		if !ok {
			return nil, fmt.Errorf("%w: %s: WITH must be an object", ErrInvalidConfig, name)
		}
		seen := make(map[string]bool, withMap.Len())
		for _, varName := range withMap.Keys() {
			if seen[varName] {
				return nil, fmt.Errorf("%w: %s.%s", ErrDuplicateWith, name, varName)
			}
			seen[varName] = true
			entry, _ := withMap.Get(varName)
			entryMap, ok := entry.AsMap()
			if !ok {
				return nil, fmt.Errorf("%w: %s.WITH.%s must be an object", ErrInvalidConfig, name, varName)
			}
			ex, err := extractor.Compile(varName, entryMap)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			with = append(with, ex)
		}
	}

	actionsField, ok := raw.Get("actions")
	var actions []*Action
	if ok && !actionsField.IsNull() {
		items, ok := actionsField.AsArray()
		if !ok {
			return nil, fmt.Errorf("%w: %s: actions must be an array", ErrInvalidConfig, name)
		}
		for i, item := range items {
			am, ok := item.AsMap()
			if !ok {
				return nil, fmt.Errorf("%w: %s.actions[%d] must be an object", ErrInvalidConfig, name, i)
			}
			id, err := stringField(am, "id")
			if err != nil {
				return nil, fmt.Errorf("%s.actions[%d]: %w", name, i, ErrMissingActionID)
			}
			payloadField, ok := am.Get("payload")
			if !ok {
				payloadField = value.FromMap(value.NewMap())
			}
			payload, err := CompilePayload(payloadField)
			if err != nil {
				return nil, fmt.Errorf("%s.actions[%d]: %w", name, i, err)
			}
			actions = append(actions, &Action{ID: id, Payload: payload})
		}
	}

	return &Rule{
		Name:        name,
		Description: description,
		Continue:    continueFlag,
		Active:      active,
		Where:       where,
		With:        with,
		Actions:     actions,
	}, nil
}

func stringField(m *value.Map, name string) (string, error) {
	v, ok := m.Get(name)
	if !ok {
		return "", fmt.Errorf("%w: missing %s", ErrInvalidConfig, name)
	}
	s, ok := v.AsString()
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string", ErrInvalidConfig, name)
	}
	return s, nil
}

func optionalString(m *value.Map, name string) string {
	v, ok := m.Get(name)
	if !ok {
		return ""
	}
	s, _ := v.AsString()
	return s
}
