package modifier

import (
	"fmt"
	"regexp"
	"time"

	"github.com/tornado-matcher/matcher/pkg/value"
)

// CompileChain builds the ordered Modifier list from the raw `modifiers_post`
// config array. Each entry is an object with a `type` field.
func CompileChain(raw []value.Value) ([]Modifier, error) {
	chain := make([]Modifier, 0, len(raw))
	for i, entry := range raw {
		m, ok := entry.AsMap()
		if !ok {
			return nil, fmt.Errorf("%w: modifiers_post[%d] must be an object", ErrInvalidConfig, i)
		}
		mod, err := compileOne(m)
		if err != nil {
			return nil, fmt.Errorf("modifiers_post[%d]: %w", i, err)
		}
		chain = append(chain, mod)
	}
	return chain, nil
}

func compileOne(raw *value.Map) (Modifier, error) {
	typField, ok := raw.Get("type")
	if !ok {
		return nil, fmt.Errorf("%w: missing type", ErrInvalidConfig)
	}
	typ, ok := typField.AsString()
	if !ok {
		return nil, fmt.Errorf("%w: type must be a string", ErrInvalidConfig)
	}

	switch typ {
	case "Trim":
		return trimModifier{}, nil
	case "Lowercase":
		return lowercaseModifier{}, nil
	case "ToNumber":
		return toNumberModifier{}, nil
	case "ReplaceAll":
		return compileReplaceAll(raw)
	case "Map":
		return compileMap(raw)
	case "DateAndTime":
		return compileDateAndTime(raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typ)
	}
}

func compileReplaceAll(raw *value.Map) (Modifier, error) {
	find, err := stringField(raw, "find")
	if err != nil {
		return nil, err
	}
	replace, err := stringField(raw, "replace")
	if err != nil {
		return nil, err
	}
	isRegex := false
	if v, ok := raw.Get("is_regex"); ok {
		isRegex, _ = v.AsBool()
	}

	m := &replaceAllModifier{find: find, replace: replace, isRegex: isRegex}
	if isRegex {
		re, err := regexp.Compile(find)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidRegex, find, err)
		}
		m.re = re
	}
	return m, nil
}

func compileMap(raw *value.Map) (Modifier, error) {
	mappingField, ok := raw.Get("mapping")
	if !ok {
		return nil, fmt.Errorf("%w: Map requires a mapping object", ErrInvalidConfig)
	}
	mappingMap, ok := mappingField.AsMap()
	if !ok {
		return nil, fmt.Errorf("%w: mapping must be an object", ErrInvalidConfig)
	}
	mapping := make(map[string]string, mappingMap.Len())
	var convErr error
	mappingMap.Range(func(k string, v value.Value) bool {
		s, ok := v.AsString()
		if !ok {
			convErr = fmt.Errorf("%w: mapping[%q] must be a string", ErrInvalidConfig, k)
			return false
		}
		mapping[k] = s
		return true
	})
	if convErr != nil {
		return nil, convErr
	}

	m := &mapModifier{mapping: mapping}
	if dv, ok := raw.Get("default_value"); ok {
		s, ok := dv.AsString()
		if !ok {
			return nil, fmt.Errorf("%w: default_value must be a string", ErrInvalidConfig)
		}
		m.defaultValue = &s
	}
	return m, nil
}

func compileDateAndTime(raw *value.Map) (Modifier, error) {
	tz, err := stringField(raw, "timezone")
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrUnknownTimezone, tz, err)
	}
	return &dateAndTimeModifier{loc: loc}, nil
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
