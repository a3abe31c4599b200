// Command matchbench loads a processing tree from a directory and one
// event from a file or stdin, runs it through a compiled Matcher, and
// prints the event's type, created_ms and trace_id together with the
// resulting ProcessedNode as one JSON object. It
// exercises the whole build/process pipeline end to end without any
// network transport, collectors, or executors.
//
// Usage:
//
//	matchbench -tree <dir> [-event <file>] [-skip-actions]
//
// Flags:
//
//	-tree string
//	    Root directory of the on-disk processing tree (required)
//	-event string
//	    Path to a JSON event document (default: read from stdin)
//	-skip-actions
//	    Run in SkipActions mode (dry-run): actions are resolved but not
//	    meant to be dispatched
//
// Example:
//
//	matchbench -tree ./testdata/email_rules -event ./testdata/event.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tornado-matcher/matcher/pkg/config"
	"github.com/tornado-matcher/matcher/pkg/configdoc"
	"github.com/tornado-matcher/matcher/pkg/event"
	"github.com/tornado-matcher/matcher/pkg/logging"
	"github.com/tornado-matcher/matcher/pkg/matcher"
	"github.com/tornado-matcher/matcher/pkg/tree"
	"github.com/tornado-matcher/matcher/pkg/value"
)

func main() {
	treeDir := flag.String("tree", "", "Root directory of the on-disk processing tree (required)")
	eventPath := flag.String("event", "", "Path to a JSON event document (default: read from stdin)")
	skipActions := flag.Bool("skip-actions", false, "Run in SkipActions (dry-run) mode")
	flag.Parse()

	if *treeDir == "" {
		fmt.Fprintln(os.Stderr, "matchbench: -tree is required")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*treeDir, *eventPath, *skipActions); err != nil {
		fmt.Fprintf(os.Stderr, "matchbench: %v\n", err)
		os.Exit(1)
	}
}

func run(treeDir, eventPath string, skipActions bool) error {
	log := logging.New(logging.DefaultConfig())

	name, raw, err := configdoc.LoadTree(treeDir)
	if err != nil {
		return fmt.Errorf("loading tree: %w", err)
	}

	root, err := tree.Compile(name, raw)
	if err != nil {
		return fmt.Errorf("compiling tree: %w", err)
	}

	m, err := matcher.Build(root, config.Default(), matcher.WithLogger(log))
	if err != nil {
		return fmt.Errorf("building matcher: %w", err)
	}
	log.WithMatcherID(m.ID()).Info("matcher built")

	eventBytes, err := readEvent(eventPath)
	if err != nil {
		return fmt.Errorf("reading event: %w", err)
	}
	ev, err := event.FromJSON(eventBytes)
	if err != nil {
		return fmt.Errorf("parsing event: %w", err)
	}

	mode := matcher.Full
	if skipActions {
		mode = matcher.SkipActions
	}

	result, err := m.Process(ev, mode)
	if err != nil {
		return fmt.Errorf("processing event: %w", err)
	}

	return printResult(ev, result)
}

func readEvent(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// wireEvent and wireProcessedNode mirror the ProcessedEvent wire
// shape for output purposes only; the core's in-memory types stay as
// pkg/event.Event and pkg/tree.ProcessedNode.
type wireResponse struct {
	Event  wireEvent        `json:"event"`
	Result wireProcessedNode `json:"result"`
}

type wireEvent struct {
	Type      string `json:"type"`
	CreatedMs int64  `json:"created_ms"`
	TraceID   string `json:"trace_id"`
}

type wireProcessedNode struct {
	Type          string          `json:"type"`
	Name          string          `json:"name"`
	Filter        *wireFilter     `json:"filter,omitempty"`
	Iterator      *wireIterator   `json:"iterator,omitempty"`
	Rules         []wireRule      `json:"rules,omitempty"`
	ExtractedVars json.RawMessage `json:"extracted_vars,omitempty"`
}

type wireFilter struct {
	Status string              `json:"status"`
	Nodes  []wireProcessedNode `json:"nodes,omitempty"`
}

type wireIterator struct {
	Status string          `json:"status"`
	Events []wireIteration `json:"events,omitempty"`
}

type wireIteration struct {
	Iteration string              `json:"iteration"`
	Nodes     []wireProcessedNode `json:"nodes,omitempty"`
}

type wireRule struct {
	Name    string       `json:"name"`
	Status  string       `json:"status"`
	Actions []wireAction `json:"actions,omitempty"`
	Message string       `json:"message,omitempty"`
}

type wireAction struct {
	ID      string          `json:"id"`
	Payload json.RawMessage `json:"payload"`
}

func printResult(ev *event.Event, result tree.ProcessedNode) error {
	resp := wireResponse{
		Event:  wireEvent{Type: ev.Type, CreatedMs: ev.CreatedMs, TraceID: ev.TraceID},
		Result: toWireNode(result),
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func toWireNode(n tree.ProcessedNode) wireProcessedNode {
	out := wireProcessedNode{Type: n.Type, Name: n.Name}
	switch n.Type {
	case "Filter":
		if n.Filter == nil {
			return out
		}
		wf := &wireFilter{Status: string(n.Filter.Status)}
		for _, child := range n.Filter.Nodes {
			wf.Nodes = append(wf.Nodes, toWireNode(child))
		}
		out.Filter = wf
	case "Iterator":
		if n.Iterator == nil {
			return out
		}
		wi := &wireIterator{Status: string(n.Iterator.Status)}
		for idx, it := range n.Iterator.Events {
			wIter := wireIteration{Iteration: fmt.Sprintf("%d", idx)}
			if it.Event != nil && it.Event.Iterator != nil {
				wIter.Iteration = value.ToDisplayString(it.Event.Iterator.Iteration)
			}
			for _, child := range it.Nodes {
				wIter.Nodes = append(wIter.Nodes, toWireNode(child))
			}
			wi.Events = append(wi.Events, wIter)
		}
		out.Iterator = wi
	case "Ruleset":
		if n.Ruleset == nil {
			return out
		}
		for _, r := range n.Ruleset.Rules {
			wr := wireRule{Name: r.Name, Status: r.Status.String(), Message: r.Message}
			for _, a := range r.Actions {
				payload, err := value.MarshalJSON(a.Payload)
				if err != nil {
					payload = []byte("null")
				}
				wr.Actions = append(wr.Actions, wireAction{ID: a.ID, Payload: payload})
			}
			out.Rules = append(out.Rules, wr)
		}
		if n.Ruleset.ExtractedVars.Len() > 0 {
			if vars, err := value.MarshalJSON(value.FromMap(n.Ruleset.ExtractedVars)); err == nil {
				out.ExtractedVars = vars
			}
		}
	}
	return out
}
