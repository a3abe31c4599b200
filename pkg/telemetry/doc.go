// Package telemetry provides OpenTelemetry integration for distributed
// tracing and metrics on the match pipeline. It supports:
//   - Tracing with one span per Process call, started from a background
//     context (the event's TraceID is not attached to the span)
//   - Prometheus metrics for per-rule and per-process-run outcomes
//   - A Recorder interface so the matcher never depends on a concrete
//     exporter; a NoopRecorder is the zero-value default (metrics
//     recording must never block or fail a Process call).
package telemetry
