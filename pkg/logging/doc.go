// Package logging provides structured logging for rule matching, built on
// log/slog.
//
// # Basic usage
//
//	logger := logging.New(logging.Config{Level: "info", Output: os.Stdout})
//	logger.WithTraceID(ev.TraceID).WithRuleName(rule.Name).Info("rule matched")
//
// JSON output is the default; set Pretty for a human-readable text format
// during local development.
package logging
