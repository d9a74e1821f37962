package core

// LineAst is the parse of one line of card text. Exactly one is produced per
// parsed line and it is never mutated afterwards.
type LineAst interface {
	lineNode()
}

// AbilityKind classifies an activated ability.
type AbilityKind string

// AbilityKind constants.
const (
	ActivatedAbility AbilityKind = "activated"
	ManaAbility      AbilityKind = "mana"
	LoyaltyAbility   AbilityKind = "loyalty"
)

// RestrictionTiming names an activation restriction.
type RestrictionTiming string

// RestrictionTiming constants.
const (
	SorcerySpeed   RestrictionTiming = "sorcery_speed"
	OncePerTurn    RestrictionTiming = "once_each_turn"
	DuringYourTurn RestrictionTiming = "your_turn"
	DuringCombat   RestrictionTiming = "during_combat"
	DuringUpkeep   RestrictionTiming = "your_upkeep"
	OnlyIf         RestrictionTiming = "only_if"
	TimesEachTurn  RestrictionTiming = "times_each_turn"
	OnlyFromGrave  RestrictionTiming = "graveyard"
)

// ActivationRestriction is an "Activate only ..." clause.
type ActivationRestriction struct {
	Timing RestrictionTiming
	// Times is set for TimesEachTurn.
	Times int
	// Condition is set for OnlyIf.
	Condition PredicateAst
}

// Cost is an activation cost.
type Cost struct {
	Mana    *ManaCost
	Tap     bool
	Untap   bool
	Loyalty *int
	// LoyaltyX is a "-X" loyalty cost.
	LoyaltyX bool
	// Effects are non-mana costs (sacrifice, discard, pay life, remove counters).
	Effects []Effect
}

// IsZero reports whether the cost is free.
func (c Cost) IsZero() bool {
	return c.Mana == nil && !c.Tap && !c.Untap && c.Loyalty == nil && !c.LoyaltyX && len(c.Effects) == 0
}

// Ability is an activated ability.
type Ability struct {
	Kind         AbilityKind
	Cost         Cost
	Effects      []Effect
	Restrictions []ActivationRestriction
	// Keyword is set when a keyword introduced the ability (equip, cycling).
	Keyword *KeywordAbility
	// Label is an em-dash label preceding the cost, if any.
	Label string
}

// AbilityLine is a single activated ability.
type AbilityLine struct {
	Ability Ability
}

// AbilitiesLine holds several activated abilities printed on one line
// ("{T}: Add {R} or {G}.").
type AbilitiesLine struct {
	Abilities []Ability
}

// TriggeredLine is a triggered ability.
type TriggeredLine struct {
	Trigger TriggerSpec
	Effects []Effect
	// OnceEachTurn is "This ability triggers only once each turn."
	OnceEachTurn bool
	// InterveningIf is checked both on trigger and on resolution.
	InterveningIf PredicateAst
}

// StatementLine is a spell effect sentence.
type StatementLine struct {
	Effects []Effect
}

// StaticLine holds one or more static abilities, including keyword lists.
type StaticLine struct {
	Abilities []StaticAbility
}

// AdditionalCostLine is "As an additional cost to cast this spell, ...".
type AdditionalCostLine struct {
	Effects []Effect
}

// AdditionalCostChoiceLine is an additional cost with alternatives
// ("sacrifice a creature or discard a card").
type AdditionalCostChoiceLine struct {
	Options [][]Effect
}

// AlternativeCostLine is "You may pay ... rather than pay this spell's mana cost."
type AlternativeCostLine struct {
	ManaCost    *ManaCost
	CostEffects []Effect
}

// CastingMethodKind names an alternative way to cast a card.
type CastingMethodKind string

// CastingMethodKind constants.
const (
	Flashback CastingMethodKind = "flashback"
	Escape    CastingMethodKind = "escape"
	Madness   CastingMethodKind = "madness"
	Miracle   CastingMethodKind = "miracle"
	JumpStart CastingMethodKind = "jump-start"
	Retrace   CastingMethodKind = "retrace"
	Overload  CastingMethodKind = "overload"
	Spectacle CastingMethodKind = "spectacle"
	Surge     CastingMethodKind = "surge"
	Dash      CastingMethodKind = "dash"
	Evoke     CastingMethodKind = "evoke"
	Prowl     CastingMethodKind = "prowl"
)

// AlternativeCastingMethod is a named alternative casting method.
type AlternativeCastingMethod struct {
	Kind CastingMethodKind
	Cost *ManaCost
	// CostEffects are extra costs ("Escape—{2}{B}, Exile three other cards from your graveyard").
	CostEffects []Effect
}

// AlternativeCastingLine is an alternative casting method line.
type AlternativeCastingLine struct {
	Method AlternativeCastingMethod
}

// Mode is one bullet of a modal spell.
type Mode struct {
	Text    string
	Effects []Effect
}

// ModalLine is a "Choose one —" header with its modes.
type ModalLine struct {
	Min int
	Max int
	// Modes is filled when the bullets are parsed with the header.
	Modes []Mode
}

func (*AbilityLine) lineNode()              {}
func (*AbilitiesLine) lineNode()            {}
func (*TriggeredLine) lineNode()            {}
func (*StatementLine) lineNode()            {}
func (*StaticLine) lineNode()               {}
func (*AdditionalCostLine) lineNode()       {}
func (*AdditionalCostChoiceLine) lineNode() {}
func (*AlternativeCostLine) lineNode()      {}
func (*AlternativeCastingLine) lineNode()   {}
func (*ModalLine) lineNode()                {}
