// Package event defines the canonical Event ingested by the matcher
// and its JSON wire format.
package event
