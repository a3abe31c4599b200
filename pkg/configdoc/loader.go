package configdoc

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tornado-matcher/matcher/pkg/value"
)

// LoadTree walks dir per the on-disk tree convention and returns the
// node's name plus a raw *value.Map ready for pkg/tree.Compile:
//
//   - dir/<base>.json is the directory's own node document; its "type"
//     field (default "ruleset", mirroring pkg/tree.Compile) selects how
//     the rest of dir is interpreted.
//   - For a ruleset node, every other *.json file directly in dir is a
//     rule file: parsed, schema-validated against KindRule, sorted by
//     RuleOrderKey (numeric prefix first, then filename), and assembled
//     into the node document's "rules" array in that order.
//   - For a filter/iterator node, every immediate subdirectory of dir is
//     recursively loaded the same way and attached under "nodes" keyed
//     by the child's resolved name, in subdirectory-name order.
//
// LoadTree only parses and schema-checks; it does not run pkg/validator
// or pkg/matcher.Build.
func LoadTree(dir string) (name string, raw *value.Map, err error) {
	info, err := os.Stat(dir)
	if err != nil {
		return "", nil, err
	}
	if !info.IsDir() {
		return "", nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	base := filepath.Base(dir)
	name = NodeNameFromFilename(base, false)
	nodeFile := filepath.Join(dir, base+".json")

	docBytes, err := os.ReadFile(nodeFile)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %s", ErrMissingNodeFile, nodeFile)
	}

	v, err := value.ParseJSON(docBytes)
	if err != nil {
		return "", nil, fmt.Errorf("configdoc: %s: %w", nodeFile, err)
	}
	doc, ok := v.AsMap()
	if !ok {
		return "", nil, fmt.Errorf("configdoc: %s: document must be a JSON object", nodeFile)
	}

	kind := documentKind(doc)
	if err := Validate(kind, nodeFile, docBytes); err != nil {
		return "", nil, err
	}

	switch kind {
	case KindRuleset:
		if err := attachRuleFiles(dir, base, doc); err != nil {
			return "", nil, err
		}
	case KindFilter, KindIterator:
		if err := attachChildNodes(dir, doc); err != nil {
			return "", nil, err
		}
	}

	return name, doc, nil
}

func documentKind(doc *value.Map) Kind {
	typField, ok := doc.Get("type")
	if !ok {
		return KindRuleset
	}
	typ, ok := typField.AsString()
	if !ok {
		return KindRuleset
	}
	switch typ {
	case "filter", "Filter":
		return KindFilter
	case "iterator", "Iterator":
		return KindIterator
	default:
		return KindRuleset
	}
}

func attachRuleFiles(dir, nodeFilename string, doc *value.Map) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	type ruleFile struct {
		filename string
		order    int
		hasOrder bool
	}
	var files []ruleFile
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" || e.Name() == nodeFilename+".json" {
			continue
		}
		order, hasOrder := RuleOrderKey(e.Name())
		files = append(files, ruleFile{filename: e.Name(), order: order, hasOrder: hasOrder})
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].hasOrder != files[j].hasOrder {
			return files[i].hasOrder // prefixed files sort before unprefixed ones
		}
		if files[i].hasOrder {
			return files[i].order < files[j].order
		}
		return files[i].filename < files[j].filename
	})

	rules := make([]value.Value, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.filename)
		ruleBytes, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := Validate(KindRule, path, ruleBytes); err != nil {
			return err
		}
		v, err := value.ParseJSON(ruleBytes)
		if err != nil {
			return fmt.Errorf("configdoc: %s: %w", path, err)
		}
		ruleMap, ok := v.AsMap()
		if !ok {
			return fmt.Errorf("configdoc: %s: rule document must be a JSON object", path)
		}
		if _, hasName := ruleMap.Get("name"); !hasName {
			ruleMap.Set("name", value.String(NodeNameFromFilename(f.filename, true)))
		}
		rules = append(rules, value.FromMap(ruleMap))
	}
	doc.Set("rules", value.Array(rules))
	return nil
}

func attachChildNodes(dir string, doc *value.Map) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var subdirs []string
	for _, e := range entries {
		if e.IsDir() {
			subdirs = append(subdirs, e.Name())
		}
	}
	sort.Strings(subdirs)

	nodes := value.NewMap()
	for _, sub := range subdirs {
		childName, childDoc, err := LoadTree(filepath.Join(dir, sub))
		if err != nil {
			return err
		}
		nodes.Set(childName, value.FromMap(childDoc))
	}
	doc.Set("nodes", value.FromMap(nodes))
	return nil
}
