package tree

import (
	"github.com/tornado-matcher/matcher/pkg/accessor"
	"github.com/tornado-matcher/matcher/pkg/operator"
	"github.com/tornado-matcher/matcher/pkg/rule"
)

// Node is one member of the processing tree: a Filter, an Iterator, or a
// Ruleset. The concrete type is recovered via a type switch in Process;
// NodeName gives callers such as the Validator (pkg/validator) a node's
// name without a type switch.
type Node interface {
	NodeName() string
}

// Filter gates its Children on a predicate.
type Filter struct {
	Name        string
	Description string
	Active      bool
	Predicate   operator.Operator
	Children    []Node
}

func (f *Filter) NodeName() string { return f.Name }

// Iterator forks evaluation of its Children over each element of a
// collection-valued Target. Nested Iterators are rejected at
// build/validate time, never here.
type Iterator struct {
	Name        string
	Description string
	Active      bool
	Target      *accessor.Template
	Children    []Node
}

func (it *Iterator) NodeName() string { return it.Name }

// Ruleset is a leaf holding an ordered list of rules.
type Ruleset struct {
	Name  string
	Rules []*rule.Rule
}

func (rs *Ruleset) NodeName() string { return rs.Name }
