package rule

// Status is the per-event, per-rule terminal state: NotProcessed ->
// {Matched | NotMatched | PartiallyMatched | NotProcessed}, assigned
// exactly once.
type Status int

const (
	// NotProcessed means the rule was inactive, or a prior rule in the
	// same ruleset stopped evaluation (continue=false).
	NotProcessed Status = iota
	// NotMatched means WHERE evaluated false.
	NotMatched
	// PartiallyMatched means WHERE was true but either a WITH extractor
	// failed (no variables from this rule were committed) or an action
	// payload failed to resolve after the variables were committed. No
	// actions are emitted in either case.
	PartiallyMatched
	// Matched means WHERE was true and every WITH extractor succeeded;
	// variables were committed and actions were resolved.
	Matched
)

func (s Status) String() string {
	switch s {
	case NotProcessed:
		return "NotProcessed"
	case NotMatched:
		return "NotMatched"
	case PartiallyMatched:
		return "PartiallyMatched"
	case Matched:
		return "Matched"
	default:
		return "Unknown"
	}
}
