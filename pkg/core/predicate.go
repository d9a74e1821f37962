package core

// PredicateAst is a boolean game condition.
type PredicateAst interface {
	predicateNode()
}

// PlayerControls holds when a player controls a matching permanent.
type PlayerControls struct {
	Player PlayerFilter
	Filter ObjectFilter
}

// PlayerControlsAtLeast holds when a player controls Count or more matching permanents.
type PlayerControlsAtLeast struct {
	Player PlayerFilter
	Filter ObjectFilter
	Count  int
}

// ThereAreAtLeast holds when Count or more matching objects exist.
type ThereAreAtLeast struct {
	Filter ObjectFilter
	Count  int
}

// LifeTotalIs compares a player's life total.
type LifeTotalIs struct {
	Player     PlayerFilter
	Comparison Comparison
}

// LifeComparedToYou holds when a player has more (or less) life than you.
type LifeComparedToYou struct {
	Player PlayerFilter
	More   bool
}

// CardsInHandIs compares the number of cards in a player's hand.
type CardsInHandIs struct {
	Player     PlayerFilter
	Comparison Comparison
}

// YourTurn holds during your turn.
type YourTurn struct{}

// Not negates a predicate.
type Not struct {
	Inner PredicateAst
}

// TaggedMatches holds when a tagged object matches a filter ("if it's a land card").
type TaggedMatches struct {
	Tag    TagKey
	Filter ObjectFilter
}

// SourceMatches holds when the source matches a filter ("if this creature is tapped").
type SourceMatches struct {
	Filter ObjectFilter
}

// SourceHasCounters holds when the source has (or has no) counters of a kind.
type SourceHasCounters struct {
	Counter CounterType
	None    bool
}

// YouAttackedThisTurn holds after you attacked with a creature this turn.
type YouAttackedThisTurn struct{}

// CreatureDiedThisTurn holds after a creature died this turn.
type CreatureDiedThisTurn struct{}

// NoSpellsCastLastTurn is the day/night and werewolf condition.
type NoSpellsCastLastTurn struct{}

// ThisSpellWasKicked holds when the spell's kicker was paid.
type ThisSpellWasKicked struct{}

// ManaSpentToCastAtLeast holds when enough mana of a color was spent on the spell.
type ManaSpentToCastAtLeast struct {
	Color  Color
	Amount int
}

// EffectResultIs inspects the previous effect's result ("if you do").
type EffectResultIs struct {
	Result IfResultPredicate
}

func (*PlayerControls) predicateNode()         {}
func (*PlayerControlsAtLeast) predicateNode()  {}
func (*ThereAreAtLeast) predicateNode()        {}
func (*LifeTotalIs) predicateNode()            {}
func (*LifeComparedToYou) predicateNode()      {}
func (*CardsInHandIs) predicateNode()          {}
func (*YourTurn) predicateNode()               {}
func (*Not) predicateNode()                    {}
func (*TaggedMatches) predicateNode()          {}
func (*SourceMatches) predicateNode()          {}
func (*SourceHasCounters) predicateNode()      {}
func (*YouAttackedThisTurn) predicateNode()    {}
func (*CreatureDiedThisTurn) predicateNode()   {}
func (*NoSpellsCastLastTurn) predicateNode()   {}
func (*ThisSpellWasKicked) predicateNode()     {}
func (*ManaSpentToCastAtLeast) predicateNode() {}
func (*EffectResultIs) predicateNode()         {}
