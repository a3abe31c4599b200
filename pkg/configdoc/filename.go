package configdoc

import (
	"regexp"
	"strings"
)

var orderPrefix = regexp.MustCompile(`^[0-9]+_`)

// NodeNameFromFilename implements the filename-to-node-name mapping. For rule files the name is the stem with both the ".json"
// extension and any leading "<digits>_" ordering prefix stripped (e.g.
// "0010_rule_two.json" -> "rule_two"); for filter/iterator/ruleset files
// the full stem (extension stripped only) is the node name.
func NodeNameFromFilename(filename string, isRuleFile bool) string {
	stem := strings.TrimSuffix(filename, ".json")
	if isRuleFile {
		stem = orderPrefix.ReplaceAllString(stem, "")
	}
	return stem
}

// RuleOrderKey extracts the integer ordering prefix from a rule
// filename, for sorting sibling rule files into execution order. Files
// with no digit prefix sort after all prefixed ones, in filename order.
func RuleOrderKey(filename string) (order int, hasPrefix bool) {
	loc := orderPrefix.FindString(filename)
	if loc == "" {
		return 0, false
	}
	digits := strings.TrimSuffix(loc, "_")
	n := 0
	for _, r := range digits {
		n = n*10 + int(r-'0')
	}
	return n, true
}
