// Package matcher is the top-level build/process pipeline: it runs the
// semantic Validator over a compiled processing tree once at build time,
// then exposes an immutable, concurrency-safe Matcher whose Process method
// evaluates one event through the tree as pkg/tree.ProcessWithLimits does
// (with the limits taken from its Config), adding telemetry recording and
// a single recover() at the evaluation boundary, with the recovered panic
// logged, so one bad node can never crash a host process.
package matcher
