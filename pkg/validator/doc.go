// Package validator implements the semantic validation pass run once over a built processing tree: name regex conformance,
// duplicate-name detection among siblings, `_variables` cross-rule
// referential integrity, and the nested-iterator restriction. Unlike the
// per-package Compile functions (which fail fast on the first problem),
// Validate collects every problem it finds into a single *Errors value,
// so authors see every problem in one editing pass.
package validator
