package tree

// Limits mirrors the resource guards pkg/config.Config documents for the
// processing tree (MaxIteratorTargetSize, MaxExtractedVarsPerRuleset): a
// zero Limits means unlimited, matching config's "0 = unlimited"
// convention. Process keeps its original two-argument signature for
// direct tree-level tests and callers that don't need guards;
// ProcessWithLimits is what pkg/matcher.Matcher.Process calls, passing
// through the limits from the Matcher's Config.
type Limits struct {
	// MaxIteratorTargetSize caps how many elements an Iterator may fork
	// over. A target with more elements is reported as IteratorTypeError
	// rather than silently truncated; an oversized target is
	// treated the same as an unsupported target type, since both mean
	// "this Iterator cannot be evaluated as configured".
	MaxIteratorTargetSize int

	// MaxExtractedVarsPerRuleset caps how many <rule>.<var> entries one
	// ruleset evaluation may accumulate. Once reached, further Commits
	// are dropped: the committing rule still reports Matched (its own
	// WHERE/WITH/actions succeeded), but its variables become invisible
	// to later `_variables.<rule>.<var>` references in the same ruleset.
	MaxExtractedVarsPerRuleset int
}
