package value

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FoldLower applies Unicode lowercasing (cases.Lower, not cases.Fold),
// used by the Lowercase modifier and by the case-insensitive comparison
// operators so both agree on what "lower" means for non-ASCII text that
// strings.ToLower handles inconsistently. A cases.Caser is stateful and
// not safe for concurrent use, so one is built per call.
func FoldLower(s string) string {
	return cases.Lower(language.Und).String(s)
}
