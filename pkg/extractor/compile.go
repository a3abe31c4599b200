package extractor

import (
	"fmt"
	"regexp"

	"github.com/tornado-matcher/matcher/pkg/accessor"
	"github.com/tornado-matcher/matcher/pkg/modifier"
	"github.com/tornado-matcher/matcher/pkg/value"
)

// Compile builds an Extractor named `name` from its decoded WITH-entry
// config JSON: a `from` template, one of three `regex`
// strategy objects, and an ordered `modifiers_post` list.
func Compile(name string, raw *value.Map) (*Extractor, error) {
	fromField, ok := raw.Get("from")
	if !ok {
		return nil, fmt.Errorf("%w: %s: missing from", ErrInvalidConfig, name)
	}
	fromStr, ok := fromField.AsString()
	if !ok {
		return nil, fmt.Errorf("%w: %s: from must be a string", ErrInvalidConfig, name)
	}
	from, err := accessor.CompileTemplate(fromStr)
	if err != nil {
		return nil, err
	}

	regexField, ok := raw.Get("regex")
	if !ok {
		return nil, fmt.Errorf("%w: %s: missing regex strategy", ErrInvalidConfig, name)
	}
	regexCfg, ok := regexField.AsMap()
	if !ok {
		return nil, fmt.Errorf("%w: %s: regex must be an object", ErrInvalidConfig, name)
	}

	ex := &Extractor{name: name, from: from}
	if err := compileStrategy(ex, regexCfg); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	if modsField, ok := raw.Get("modifiers_post"); ok {
		items, ok := modsField.AsArray()
		if !ok {
			return nil, fmt.Errorf("%w: %s: modifiers_post must be an array", ErrInvalidConfig, name)
		}
		mods, err := modifier.CompileChain(items)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		ex.modifiers = mods
	}

	return ex, nil
}

func compileStrategy(ex *Extractor, cfg *value.Map) error {
	typField, ok := cfg.Get("type")
	if !ok {
		return fmt.Errorf("%w: missing type", ErrUnknownStrategy)
	}
	typ, ok := typField.AsString()
	if !ok {
		return fmt.Errorf("%w: type must be a string", ErrUnknownStrategy)
	}

	switch typ {
	case "Regex":
		return compileRegexStrategy(ex, cfg)
	case "RegexNamedGroups":
		return compileNamedGroupsStrategy(ex, cfg)
	case "KeyRegex":
		return compileKeyRegexStrategy(ex, cfg)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStrategy, typ)
	}
}

func compileRegexStrategy(ex *Extractor, cfg *value.Map) error {
	pattern, err := patternField(cfg, "match")
	if err != nil {
		return err
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidRegex, pattern, err)
	}

	groupIdx := 0
	if g, ok := cfg.Get("group_match_idx"); ok && !g.IsNull() {
		n, ok := g.AsNumber()
		if !ok {
			return fmt.Errorf("%w: group_match_idx must be a number", ErrInvalidConfig)
		}
		groupIdx = int(n)
		if groupIdx < 0 || groupIdx > re.NumSubexp() {
			return fmt.Errorf("%w: group_match_idx %d out of range for pattern with %d groups", ErrInvalidConfig, groupIdx, re.NumSubexp())
		}
	}

	ex.strategy = strategyRegex
	ex.re = re
	ex.groupIdx = groupIdx
	ex.allMatches = boolField(cfg, "all_matches")
	return nil
}

func compileNamedGroupsStrategy(ex *Extractor, cfg *value.Map) error {
	pattern, err := patternField(cfg, "named_match")
	if err != nil {
		return err
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidRegex, pattern, err)
	}
	ex.strategy = strategyRegexNamedGroups
	ex.re = re
	ex.allMatches = boolField(cfg, "all_matches")
	return nil
}

func compileKeyRegexStrategy(ex *Extractor, cfg *value.Map) error {
	pattern, err := patternField(cfg, "single_key_match")
	if err != nil {
		return err
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidRegex, pattern, err)
	}
	ex.strategy = strategyKeyRegex
	ex.re = re
	return nil
}

func patternField(m *value.Map, name string) (string, error) {
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

func boolField(m *value.Map, name string) bool {
	v, ok := m.Get(name)
	if !ok {
		return false
	}
	b, _ := v.AsBool()
	return b
}
