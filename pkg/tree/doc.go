// Package tree implements the processing tree: Filter
// nodes gate a subtree on a predicate, Iterator nodes fork evaluation over
// a collection-valued target, and Ruleset leaves run an ordered list of
// rules. Process walks the tree once per event, producing a ProcessedNode
// that faithfully records every node's outcome as data — the core never
// raises an error out of Process itself.
package tree
