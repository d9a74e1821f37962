// Package core defines the typed intermediate representation produced by
// the oracle-text parser.
//
// This package contains:
//   - Line ASTs (one per line of rules text)
//   - Effect ASTs (the closed set of recognized game actions)
//   - Targets, object filters and player filters
//   - Trigger specs, predicates, dynamic values and choice counts
//   - Static abilities, keyword abilities, costs and mana costs
//
// The Golden Rule: pkg/core imports ONLY pkg/token and stdlib.
// The parser depends on core, and the downstream ability compiler consumes
// it; nothing in core knows how it was produced.
package core
