// Package configdoc implements the "parse" half of the parse ->
// validate -> build pipeline: turning the on-disk JSON directory tree
// into the raw, pkg/tree.Compile-ready documents.
// It does not run the semantic Validator (pkg/validator) or build a
// pkg/matcher.Matcher — those remain later pipeline stages. Hot-reload,
// draft/edit workflows, and file-watching are out of scope here: this
// package only answers "what does this directory mean",
// once, for a caller that already decided to (re)load it.
package configdoc
