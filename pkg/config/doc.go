// Package config provides configuration management for the Tornado matcher engine.
//
// # Overview
//
// The config package centralizes the resource limits and host-policy knobs
// the matcher core needs at build time and at evaluation time. The matcher
// itself performs no I/O and enforces no queueing, but callers wiring a
// collector/executor pair around the core are expected to honor the ingress
// queue policy documented here.
//
// # Basic usage
//
//	cfg := config.Default()
//	m, err := matcher.Build(tree, cfg)
package config
