package core

// Value is a numeric quantity, fixed or computed at resolution.
type Value interface {
	valueNode()
}

// Fixed is a literal number.
type Fixed struct{ N int }

// XValue is the X paid for the spell or ability.
type XValue struct{}

// XTimes is X multiplied by a factor ("twice X").
type XTimes struct{ Factor int }

// Count is the number of objects matching a filter ("for each creature you control").
type Count struct {
	Filter ObjectFilter
	// Multiplier scales the count ("two for each").
	Multiplier int
}

// CountPlayers is the number of players matching a filter.
type CountPlayers struct{ Filter PlayerFilter }

// SourcePower is the source object's power.
type SourcePower struct{}

// SourceToughness is the source object's toughness.
type SourceToughness struct{}

// PowerOf is the power of a referenced object.
type PowerOf struct{ Target TargetAst }

// ToughnessOf is the toughness of a referenced object.
type ToughnessOf struct{ Target TargetAst }

// ManaValueOf is the mana value of a referenced object.
type ManaValueOf struct{ Target TargetAst }

// LifeTotal is a player's life total.
type LifeTotal struct{ Player PlayerFilter }

// CardsInHand is the number of cards in a player's hand.
type CardsInHand struct{ Player PlayerFilter }

// Devotion is a player's devotion to a color.
type Devotion struct {
	Player PlayerFilter
	Color  Color
}

// EffectResult is the amount produced by the previous effect ("that many").
type EffectResult struct{}

// EventAmount is the amount carried by the triggering event ("that much damage").
type EventAmount struct{}

// CountersOn is the number of counters of a type on an object.
type CountersOn struct {
	Target  TargetAst
	Counter CounterType
}

// SpellsCastThisTurn is the number of spells a player cast this turn.
type SpellsCastThisTurn struct{ Player PlayerFilter }

func (*Fixed) valueNode()              {}
func (*XValue) valueNode()             {}
func (*XTimes) valueNode()             {}
func (*Count) valueNode()              {}
func (*CountPlayers) valueNode()       {}
func (*SourcePower) valueNode()        {}
func (*SourceToughness) valueNode()    {}
func (*PowerOf) valueNode()            {}
func (*ToughnessOf) valueNode()        {}
func (*ManaValueOf) valueNode()        {}
func (*LifeTotal) valueNode()          {}
func (*CardsInHand) valueNode()        {}
func (*Devotion) valueNode()           {}
func (*EffectResult) valueNode()       {}
func (*EventAmount) valueNode()        {}
func (*CountersOn) valueNode()         {}
func (*SpellsCastThisTurn) valueNode() {}

// FixedValue returns a Fixed value.
func FixedValue(n int) Value {
	return &Fixed{N: n}
}

// ChoiceCount is how many objects or players may be chosen.
type ChoiceCount struct {
	Min int
	Max int
	// Unbounded means "any number"; Max is ignored.
	Unbounded bool
	// DynamicX means the count is the X paid ("X target creatures").
	DynamicX bool
}

// Exactly returns a count of exactly n.
func Exactly(n int) ChoiceCount {
	return ChoiceCount{Min: n, Max: n}
}

// UpTo returns a count of zero to n.
func UpTo(n int) ChoiceCount {
	return ChoiceCount{Min: 0, Max: n}
}

// AnyNumber returns a count of zero or more.
func AnyNumber() ChoiceCount {
	return ChoiceCount{Unbounded: true}
}

// IsSingle reports whether exactly one object is chosen.
func (c ChoiceCount) IsSingle() bool {
	return !c.Unbounded && !c.DynamicX && c.Min == 1 && c.Max == 1
}
