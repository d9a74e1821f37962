package core

// TriggerSpec is the event a triggered ability waits for.
type TriggerSpec interface {
	triggerNode()
}

// SpellCast triggers when a matching spell is cast.
type SpellCast struct {
	// Filter is nil for "a spell".
	Filter *ObjectFilter
	Caster PlayerFilter
	// DuringTurn restricts the trigger to a player's turn ("during your turn").
	DuringTurn *PlayerFilter
	// Nth is set for "your second spell each turn".
	Nth int
	// FromNotHand is "from anywhere other than your hand".
	FromNotHand bool
	// Copied also triggers on copies ("cast or copy").
	Copied bool
}

// ZoneChange triggers when a matching object moves between zones.
// Self means the source itself ("When this creature dies").
type ZoneChange struct {
	From   Zone
	To     Zone
	Filter ObjectFilter
	Self   bool
}

// ObjectEventKind is something an object does or has done to it.
type ObjectEventKind string

// ObjectEventKind constants.
const (
	EventAttacks          ObjectEventKind = "attacks"
	EventBlocks           ObjectEventKind = "blocks"
	EventBecomesBlocked   ObjectEventKind = "becomes_blocked"
	EventAttacksOrBlocks  ObjectEventKind = "attacks_or_blocks"
	EventBecomesTapped    ObjectEventKind = "becomes_tapped"
	EventBecomesUntapped  ObjectEventKind = "becomes_untapped"
	EventBecomesTarget    ObjectEventKind = "becomes_target"
	EventDealsDamage      ObjectEventKind = "deals_damage"
	EventDealsCombatDmg   ObjectEventKind = "deals_combat_damage"
	EventIsDealtDamage    ObjectEventKind = "is_dealt_damage"
	EventTransforms       ObjectEventKind = "transforms"
	EventTurnedFaceUp     ObjectEventKind = "turned_face_up"
	EventAttachedTo       ObjectEventKind = "becomes_attached"
	EventSacrificed       ObjectEventKind = "sacrificed"
	EventCountersPlaced   ObjectEventKind = "counters_placed"
	EventAbilityActivated ObjectEventKind = "ability_activated"
)

// ObjectEvent triggers when a matching object does something.
type ObjectEvent struct {
	Event  ObjectEventKind
	Filter ObjectFilter
	Self   bool
	// ToPlayer restricts damage events to damage dealt to a player.
	ToPlayer bool
	// Alone is "attacks alone".
	Alone bool
	// Counter is set for EventCountersPlaced.
	Counter CounterType
}

// PlayerEventKind is something a player does.
type PlayerEventKind string

// PlayerEventKind constants.
const (
	EventDraws       PlayerEventKind = "draws"
	EventGainsLife   PlayerEventKind = "gains_life"
	EventLosesLife   PlayerEventKind = "loses_life"
	EventDiscards    PlayerEventKind = "discards"
	EventPlaysLand   PlayerEventKind = "plays_land"
	EventCycles      PlayerEventKind = "cycles"
	EventSacrifices  PlayerEventKind = "sacrifices"
	EventAttacksWith PlayerEventKind = "attacks_with"
	EventSearches    PlayerEventKind = "searches_library"
	EventShuffles    PlayerEventKind = "shuffles"
	EventScries      PlayerEventKind = "scries"
)

// PlayerEvent triggers when a matching player does something.
type PlayerEvent struct {
	Event  PlayerEventKind
	Player PlayerFilter
	// Filter narrows the objects involved ("discards a creature card").
	Filter *ObjectFilter
	// Nth is set for "draws their second card each turn".
	Nth int
}

// Step is a turn step or phase.
type Step string

// Step constants.
const (
	StepUntap           Step = "untap"
	StepUpkeep          Step = "upkeep"
	StepDraw            Step = "draw"
	StepPrecombatMain   Step = "precombat_main"
	StepCombat          Step = "combat"
	StepDeclareAttacker Step = "declare_attackers"
	StepEndOfCombat     Step = "end_of_combat"
	StepPostcombatMain  Step = "postcombat_main"
	StepEnd             Step = "end"
	StepCleanup         Step = "cleanup"
)

// BeginningOfStep triggers at the beginning of a step ("At the beginning of
// your upkeep") or the end of combat.
type BeginningOfStep struct {
	Step   Step
	Player PlayerFilter
}

// SagaChapter triggers when lore counters reach one of the chapters.
type SagaChapter struct {
	Chapters []int
}

// EitherTrigger triggers on either of two events ("enters or attacks").
type EitherTrigger struct {
	First  TriggerSpec
	Second TriggerSpec
}

func (*SpellCast) triggerNode()       {}
func (*ZoneChange) triggerNode()      {}
func (*ObjectEvent) triggerNode()     {}
func (*PlayerEvent) triggerNode()     {}
func (*BeginningOfStep) triggerNode() {}
func (*SagaChapter) triggerNode()     {}
func (*EitherTrigger) triggerNode()   {}
