package core

import "github.com/maigus-labs/maigus/pkg/token"

// TargetAst is what an effect acts on. The TargetSpan of object, player and
// spell variants is set only when the phrase used the word "target", which
// makes the reference a genuine target for legality checks.
type TargetAst interface {
	targetNode()
}

// SourceTarget is the source object itself ("this", "this creature").
type SourceTarget struct {
	Span *token.TextSpan
}

// ObjectTarget is an object selected by a filter.
type ObjectTarget struct {
	Filter     ObjectFilter
	TargetSpan *token.TextSpan
	// RefSpan covers a pronoun the filter was derived from ("on it").
	RefSpan *token.TextSpan
}

// TaggedTarget is an object tagged earlier in the ability ("it", "that creature").
type TaggedTarget struct {
	Tag  TagKey
	Span *token.TextSpan
}

// PlayerTarget is a player selected by a filter.
type PlayerTarget struct {
	Filter     PlayerFilter
	TargetSpan *token.TextSpan
}

// PlayerOrPlaneswalkerTarget is "target player or planeswalker".
type PlayerOrPlaneswalkerTarget struct {
	Filter     PlayerFilter
	TargetSpan *token.TextSpan
}

// AnyTarget is "any target" (creature, player, planeswalker or battle).
type AnyTarget struct {
	TargetSpan *token.TextSpan
}

// SpellTarget is "target spell".
type SpellTarget struct {
	TargetSpan *token.TextSpan
}

// CountedTarget wraps a target with a choice count ("up to two target creatures").
type CountedTarget struct {
	Target TargetAst
	Count  ChoiceCount
}

func (*SourceTarget) targetNode()               {}
func (*ObjectTarget) targetNode()               {}
func (*TaggedTarget) targetNode()               {}
func (*PlayerTarget) targetNode()               {}
func (*PlayerOrPlaneswalkerTarget) targetNode() {}
func (*AnyTarget) targetNode()                  {}
func (*SpellTarget) targetNode()                {}
func (*CountedTarget) targetNode()              {}

// IsTargeted reports whether the reference is a genuine target.
func IsTargeted(t TargetAst) bool {
	switch t := t.(type) {
	case *ObjectTarget:
		return t.TargetSpan != nil
	case *PlayerTarget:
		return t.TargetSpan != nil
	case *PlayerOrPlaneswalkerTarget:
		return t.TargetSpan != nil
	case *AnyTarget:
		return true
	case *SpellTarget:
		return t.TargetSpan != nil
	case *CountedTarget:
		return IsTargeted(t.Target)
	}
	return false
}
