// Package operator implements the compiled boolean predicate tree used by Filter predicates and Rule WHERE clauses: AND/OR/NOT
// boolean combinators, value comparisons (equals, ne, contains, ge/gt/le/lt
// and their case-insensitive variants), and a regex match predicate.
//
// Evaluation never fails: an accessor miss inside a comparand makes the
// enclosing operator evaluate false rather than propagate an error. Only
// compilation (bad regex, bad
// accessor syntax) can fail, and that failure is ConfigError-class.
package operator
