package matcher

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tornado-matcher/matcher/pkg/config"
	"github.com/tornado-matcher/matcher/pkg/event"
	"github.com/tornado-matcher/matcher/pkg/logging"
	"github.com/tornado-matcher/matcher/pkg/rule"
	"github.com/tornado-matcher/matcher/pkg/telemetry"
	"github.com/tornado-matcher/matcher/pkg/tree"
	"github.com/tornado-matcher/matcher/pkg/validator"
)

// ProcessMode selects whether a Matcher emits real actions or only
// resolves them for inspection. SkipActions still records
// Matched/NotMatched/PartiallyMatched statuses and still fully resolves
// action payload templates — it only signals downstream executors to
// suppress the actual side effect; the core itself never performs I/O
// either way.
type ProcessMode int

const (
	// Full is the default mode: the returned ProcessedNode's actions are
	// dispatched by the host's executor layer.
	Full ProcessMode = iota
	// SkipActions is for dry-run/test APIs: actions are still resolved
	// and returned, but the host is expected not to act on them.
	SkipActions
)

// Matcher is the compiled, immutable engine: a validated processing
// tree plus the resource limits and observability hooks Process applies
// to every event. Once Build returns a *Matcher successfully, it never
// mutates again — concurrent callers may share one Matcher across any
// number of goroutines without locking.
type Matcher struct {
	id     string
	root   tree.Node
	limits tree.Limits
	log    *logging.Logger
	rec    telemetry.Recorder
}

// Option configures optional collaborators a Build call wires into the
// returned Matcher. The zero value of each collaborator (nil logger,
// NoopRecorder) is always safe: the core stays observability-unaware
// unless a host opts in.
type Option func(*Matcher)

// WithLogger attaches a structured logger used by Process to report a
// recovered panic. Build returns its failures to the caller and does not
// log them; per-rule statuses go to the Recorder, not the logger.
func WithLogger(l *logging.Logger) Option {
	return func(m *Matcher) { m.log = l }
}

// WithRecorder attaches a telemetry.Recorder. The default is
// telemetry.NoopRecorder{}.
func WithRecorder(r telemetry.Recorder) Option {
	return func(m *Matcher) { m.rec = r }
}

// Build compiles root (already decoded via tree.Compile, or hand-built)
// into an immutable Matcher: it runs depth checks against cfg, then the
// semantic Validator over the whole tree, and fails fast on either.
// This is the "validate, then build" half of the pipeline; "parse" is
// pkg/tree.Compile / pkg/configdoc.
func Build(root tree.Node, cfg config.Config, opts ...Option) (*Matcher, error) {
	if root == nil {
		return nil, ErrNilRoot
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("matcher: invalid config: %w", err)
	}

	if depth := treeDepth(root); depth > cfg.MaxTreeDepth {
		return nil, &DepthError{Depth: depth, Max: cfg.MaxTreeDepth}
	}

	if errs := validator.Validate(root); errs != nil {
		return nil, &ValidationError{Problems: errs.Problems}
	}

	m := &Matcher{
		id:   uuid.NewString(),
		root: root,
		limits: tree.Limits{
			MaxIteratorTargetSize:      cfg.MaxIteratorTargetSize,
			MaxExtractedVarsPerRuleset: cfg.MaxExtractedVarsPerRuleset,
		},
		log: logging.New(logging.DefaultConfig()),
		rec: telemetry.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = logging.New(logging.DefaultConfig())
	}
	if m.rec == nil {
		m.rec = telemetry.NoopRecorder{}
	}
	return m, nil
}

// ID returns a UUID identifying this compiled Matcher instance, useful
// for log correlation across a fleet of hosts running the same
// configuration built independently (e.g. after a rolling deploy).
func (m *Matcher) ID() string { return m.id }

// Process evaluates ev through the compiled tree and returns the
// resulting ProcessedNode. It never panics outward: a recovered panic
// anywhere under tree.ProcessWithLimits is turned into a Ruleset-shaped
// ProcessedNode carrying an internal-error message instead, so one bad
// node never crashes the caller.
//
// mode is accepted for interface symmetry with the Full/SkipActions
// distinction; the core always fully resolves action payloads either way
// and leaves the actual suppression of side effects to the executor
// layer.
func (m *Matcher) Process(ev *event.Event, mode ProcessMode) (result tree.ProcessedNode, err error) {
	start := time.Now()
	log := m.log.WithTraceID(ev.TraceID).WithEventType(ev.Type)

	defer func() {
		if r := recover(); r != nil {
			ie := &InternalError{Recovered: r}
			log.WithError(ie).Error("matcher: recovered panic during process")
			result = tree.ProcessedNode{
				Type: "Ruleset",
				Name: "<internal-error>",
				Ruleset: &tree.ProcessedRuleset{
					Rules: []tree.ProcessedRule{{
						Name:    "<internal-error>",
						Status:  rule.PartiallyMatched,
						Message: ie.Error(),
					}},
				},
			}
			err = ie
		}
		m.rec.RecordProcessDuration(time.Since(start))
	}()

	_, endSpan := m.rec.StartSpan(context.Background(), "matcher.process")
	defer endSpan()

	result = tree.ProcessWithLimits(m.root, ev, m.limits)
	recordRuleStatuses(m.rec, result)
	return result, nil
}

// recordRuleStatuses walks result and emits one telemetry.Recorder call
// per rule reached, regardless of how deeply it is nested under
// Filter/Iterator ancestors.
func recordRuleStatuses(rec telemetry.Recorder, n tree.ProcessedNode) {
	switch n.Type {
	case "Filter":
		if n.Filter == nil {
			return
		}
		for _, child := range n.Filter.Nodes {
			recordRuleStatuses(rec, child)
		}
	case "Iterator":
		if n.Iterator == nil {
			return
		}
		for _, it := range n.Iterator.Events {
			for _, child := range it.Nodes {
				recordRuleStatuses(rec, child)
			}
		}
	case "Ruleset":
		if n.Ruleset == nil {
			return
		}
		for _, r := range n.Ruleset.Rules {
			rec.RecordRuleStatus(r.Name, r.Status.String())
		}
	}
}

// treeDepth measures the longest chain of nodes from root to leaf,
// counting every node on the path, the root and a Ruleset leaf included:
// a Filter -> Filter -> Ruleset chain has depth 3.
func treeDepth(n tree.Node) int {
	switch t := n.(type) {
	case *tree.Filter:
		return 1 + maxChildDepth(t.Children)
	case *tree.Iterator:
		return 1 + maxChildDepth(t.Children)
	default:
		return 1
	}
}

func maxChildDepth(children []tree.Node) int {
	max := 0
	for _, c := range children {
		if d := treeDepth(c); d > max {
			max = d
		}
	}
	return max
}
