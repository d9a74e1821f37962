package core

// Effect is one recognized game action. Wrapper variants (ForEach*,
// Conditional, May*, Delayed*, Unless*) own their nested effect lists
// exclusively; effect trees never share nodes.
type Effect interface {
	effectNode()
}

// ---------- Damage and combat ----------

// DealDamage deals damage to a target.
type DealDamage struct {
	Source TargetAst // nil means the effect's source
	Amount Value
	Target TargetAst
}

// DealDamageEach deals damage to each matching object and each matching
// player ("to each creature and each opponent").
type DealDamageEach struct {
	Source  TargetAst
	Amount  Value
	Filter  *ObjectFilter
	Players *PlayerFilter
}

// DealDamageEqualToPower has one object deal damage equal to its power.
type DealDamageEqualToPower struct {
	Source TargetAst
	Target TargetAst
}

// Fight has two creatures fight.
type Fight struct {
	Creature1 TargetAst
	Creature2 TargetAst
}

// PreventAllCombatDamage prevents all combat damage for a duration.
type PreventAllCombatDamage struct {
	Duration Duration
}

// PreventDamage prevents the next N damage to a target.
type PreventDamage struct {
	Amount   Value
	Target   TargetAst
	Duration Duration
}

// PreventAllDamageToTarget prevents all damage that would be dealt to a target.
type PreventAllDamageToTarget struct {
	Target   TargetAst
	Duration Duration
}

// ---------- Cards and library ----------

// Draw draws cards.
type Draw struct {
	Count  Value
	Player PlayerAst
}

// Discard discards cards.
type Discard struct {
	Count  Value
	Player PlayerAst
	Random bool
}

// DiscardHand discards a player's hand.
type DiscardHand struct {
	Player PlayerAst
}

// Mill mills cards.
type Mill struct {
	Count  Value
	Player PlayerAst
}

// Scry scries.
type Scry struct {
	Count  Value
	Player PlayerAst
}

// Surveil surveils.
type Surveil struct {
	Count  Value
	Player PlayerAst
}

// LookAtTopCards looks at the top cards of a library and tags them.
type LookAtTopCards struct {
	Player PlayerAst
	Count  Value
	Tag    TagKey
}

// RevealTop reveals the top card of a library.
type RevealTop struct {
	Player PlayerAst
}

// RevealHand reveals a player's hand.
type RevealHand struct {
	Player PlayerAst
}

// LookAtHand looks at a target player's hand.
type LookAtHand struct {
	Target TargetAst
}

// PutIntoHand puts a tagged object into a player's hand.
type PutIntoHand struct {
	Player PlayerAst
	Object TargetAst
}

// SearchLibrary searches a library for cards.
type SearchLibrary struct {
	Filter      ObjectFilter
	Destination Zone
	Player      PlayerAst
	Reveal      bool
	Shuffle     bool
	Count       ChoiceCount
	Tapped      bool
}

// ShuffleLibrary shuffles a library.
type ShuffleLibrary struct {
	Player PlayerAst
}

// ShuffleGraveyardIntoLibrary shuffles a graveyard into its library.
type ShuffleGraveyardIntoLibrary struct {
	Player PlayerAst
}

// ---------- Zone changes ----------

// Destroy destroys a target.
type Destroy struct {
	Target TargetAst
}

// DestroyAll destroys each object matching a filter.
type DestroyAll struct {
	Filter         ObjectFilter
	CantRegenerate bool
}

// Exile exiles a target.
type Exile struct {
	Target TargetAst
	// FaceDown exiles the cards face down.
	FaceDown bool
}

// ExileAll exiles each object matching a filter.
type ExileAll struct {
	Filter ObjectFilter
}

// ExileUntilSourceLeaves exiles a target until the source leaves the battlefield.
type ExileUntilSourceLeaves struct {
	Target TargetAst
}

// ReturnControllerAst decides who controls a returned permanent.
type ReturnControllerAst string

// ReturnControllerAst constants.
const (
	ReturnPreserve ReturnControllerAst = "preserve"
	ReturnOwner    ReturnControllerAst = "owner"
	ReturnYou      ReturnControllerAst = "you"
)

// ReturnToHand returns a target to its owner's hand.
type ReturnToHand struct {
	Target TargetAst
}

// ReturnAllToHand returns each object matching a filter to its owner's hand.
type ReturnAllToHand struct {
	Filter ObjectFilter
}

// ReturnToBattlefield returns a target to the battlefield.
type ReturnToBattlefield struct {
	Target     TargetAst
	Tapped     bool
	Controller ReturnControllerAst
}

// ReturnAllToBattlefield returns each matching card to the battlefield.
type ReturnAllToBattlefield struct {
	Filter ObjectFilter
	Tapped bool
}

// MoveToZone puts a target into a zone.
type MoveToZone struct {
	Target     TargetAst
	Zone       Zone
	ToTop      bool
	Controller ReturnControllerAst
}

// Sacrifice has a player sacrifice objects.
type Sacrifice struct {
	Filter ObjectFilter
	Player PlayerAst
	Count  int
}

// SacrificeAll has a player sacrifice each matching object.
type SacrificeAll struct {
	Filter ObjectFilter
	Player PlayerAst
}

// Counter counters a spell or ability.
type Counter struct {
	Target TargetAst
}

// CounterUnlessPays counters a target unless its controller pays mana.
type CounterUnlessPays struct {
	Target TargetAst
	Mana   ManaCost
}

// CounterAbility counters an activated or triggered ability.
type CounterAbility struct {
	Target TargetAst
}

// ---------- Tokens and copies ----------

// CreateToken creates tokens by name ("a 1/1 white Soldier creature token").
type CreateToken struct {
	Name      string
	Count     Value
	Player    PlayerAst
	Tapped    bool
	Attacking bool
	// GrantedText is the quoted ability text granted to the token, if any.
	GrantedText string
	Granted     LineAst
	// ExileAtEndOfCombat exiles the tokens at end of combat.
	ExileAtEndOfCombat bool
}

// CreateTokenCopy creates token copies of an object.
type CreateTokenCopy struct {
	Source                  TargetAst
	Count                   Value
	Player                  PlayerAst
	HasHaste                bool
	SacrificeAtNextEndStep  bool
	ExileAtNextEndStep      bool
	Tapped                  bool
	Attacking               bool
	AddedCardTypes          []CardType
	AddedSubtypes           []Subtype
	SetBasePowerToughness   *[2]int
	HalfPowerToughnessRound bool
}

// CopySpell copies a spell.
type CopySpell struct {
	Target              TargetAst
	Count               Value
	Player              PlayerAst
	MayChooseNewTargets bool
}

// ---------- Counters ----------

// PutCounters puts counters on a target.
type PutCounters struct {
	Counter     CounterType
	Count       Value
	Target      TargetAst
	Distributed bool
}

// PutCountersAll puts counters on each matching object.
type PutCountersAll struct {
	Counter CounterType
	Count   Value
	Filter  ObjectFilter
}

// RemoveCounters removes counters from a target.
type RemoveCounters struct {
	Counter CounterType
	Count   Value
	Target  TargetAst
	// UpTo allows removing fewer ("up to N").
	UpTo bool
}

// MoveAllCounters moves all counters from one object onto another.
type MoveAllCounters struct {
	From TargetAst
	To   TargetAst
}

// DoubleCounters doubles counters on each matching object.
type DoubleCounters struct {
	Counter CounterType
	Filter  ObjectFilter
}

// Proliferate proliferates.
type Proliferate struct{}

// PlayerCounters gives a player poison, energy or other player counters.
type PlayerCounters struct {
	Counter CounterType
	Count   Value
	Player  PlayerAst
}

// ---------- Permanents ----------

// Tap taps a target.
type Tap struct{ Target TargetAst }

// TapAll taps each matching permanent.
type TapAll struct{ Filter ObjectFilter }

// Untap untaps a target.
type Untap struct{ Target TargetAst }

// UntapAll untaps each matching permanent.
type UntapAll struct{ Filter ObjectFilter }

// Regenerate regenerates a target.
type Regenerate struct{ Target TargetAst }

// RegenerateAll regenerates each matching permanent.
type RegenerateAll struct{ Filter ObjectFilter }

// Transform transforms a target.
type Transform struct{ Target TargetAst }

// Goad goads a target.
type Goad struct{ Target TargetAst }

// Explore has a target explore.
type Explore struct{ Target TargetAst }

// Connive has a target connive.
type Connive struct{ Target TargetAst }

// Attach attaches an object to a target.
type Attach struct {
	Object TargetAst
	Target TargetAst
}

// Monstrosity puts N +1/+1 counters on the source if it isn't monstrous.
type Monstrosity struct{ Amount Value }

// Bolster bolsters N.
type Bolster struct{ Amount int }

// Support supports N.
type Support struct{ Amount int }

// Adapt adapts N.
type Adapt struct{ Amount int }

// Earthbend earthbends N.
type Earthbend struct{ Counters int }

// ManifestDread manifests dread.
type ManifestDread struct{}

// Investigate creates a Clue token.
type Investigate struct{ Count Value }

// ---------- Power, toughness and abilities ----------

// Pump modifies power and toughness.
type Pump struct {
	Power     Value
	Toughness Value
	Target    TargetAst
	Duration  Duration
}

// PumpAll modifies power and toughness of each matching creature.
type PumpAll struct {
	Filter    ObjectFilter
	Power     Value
	Toughness Value
	Duration  Duration
}

// PumpForEach gives +N/+M for each matching object.
type PumpForEach struct {
	PowerPer     int
	ToughnessPer int
	Target       TargetAst
	CountFilter  ObjectFilter
	Duration     Duration
}

// SetBasePowerToughness sets base power and toughness.
type SetBasePowerToughness struct {
	Power     Value
	Toughness Value
	Target    TargetAst
	Duration  Duration
}

// GrantAbilitiesToTarget grants abilities to a target.
type GrantAbilitiesToTarget struct {
	Target    TargetAst
	Abilities []StaticAbility
	Duration  Duration
}

// GrantAbilitiesAll grants abilities to each matching object.
type GrantAbilitiesAll struct {
	Filter    ObjectFilter
	Abilities []StaticAbility
	Duration  Duration
}

// LoseAllAbilities removes all abilities from a target.
type LoseAllAbilities struct {
	Target   TargetAst
	Duration Duration
}

// GrantProtectionChoice gives a target protection from a color of its controller's choice.
type GrantProtectionChoice struct {
	Target         TargetAst
	AllowColorless bool
	Duration       Duration
}

// ---------- Life and players ----------

// GainLife gains life.
type GainLife struct {
	Amount Value
	Player PlayerAst
}

// LoseLife loses life.
type LoseLife struct {
	Amount Value
	Player PlayerAst
}

// PayLife pays life.
type PayLife struct {
	Amount Value
	Player PlayerAst
}

// SetLifeTotal sets a life total.
type SetLifeTotal struct {
	Amount Value
	Player PlayerAst
}

// LoseGame makes a player lose the game.
type LoseGame struct{ Player PlayerAst }

// WinGame makes a player win the game.
type WinGame struct{ Player PlayerAst }

// ExtraTurn gives a player an extra turn after this one.
type ExtraTurn struct{ Player PlayerAst }

// SkipTurn makes a player skip their next turn.
type SkipTurn struct{ Player PlayerAst }

// SkipCombatPhases makes a player skip all combat phases of their next turn.
type SkipCombatPhases struct{ Player PlayerAst }

// SkipDrawStep makes a player skip their next draw step.
type SkipDrawStep struct{ Player PlayerAst }

// SkipUntapStep makes a player skip their next untap step.
type SkipUntapStep struct{ Player PlayerAst }

// ---------- Mana ----------

// AddMana adds fixed mana symbols.
type AddMana struct {
	Mana   []ManaSymbol
	Player PlayerAst
}

// AddManaScaled adds fixed mana symbols a computed number of times.
type AddManaScaled struct {
	Mana   []ManaSymbol
	Amount Value
	Player PlayerAst
}

// AddManaAnyColor adds mana in any combination of colors.
type AddManaAnyColor struct {
	Amount          Value
	Player          PlayerAst
	AvailableColors []Color
}

// AddManaAnyOneColor adds mana of any one color.
type AddManaAnyOneColor struct {
	Amount Value
	Player PlayerAst
}

// AddManaChosenColor adds mana of the chosen color.
type AddManaChosenColor struct {
	Amount Value
	Player PlayerAst
}

// AddManaCommanderIdentity adds mana of a color in your commander's color identity.
type AddManaCommanderIdentity struct {
	Amount Value
	Player PlayerAst
}

// AddManaLandCouldProduce adds mana of a color a land could produce.
type AddManaLandCouldProduce struct {
	Amount         Value
	Player         PlayerAst
	LandFilter     ObjectFilter
	AllowColorless bool
	SameType       bool
}

// PayMana pays a mana cost.
type PayMana struct {
	Cost   ManaCost
	Player PlayerAst
}

// PayEnergy pays energy.
type PayEnergy struct {
	Amount Value
	Player PlayerAst
}

// ---------- Control ----------

// GainControl gains control of a target.
type GainControl struct {
	Target   TargetAst
	Duration Duration
}

// ExchangeControl exchanges control of two objects.
type ExchangeControl struct {
	Filter ObjectFilter
	Count  int
}

// ---------- Restrictions ----------

// RestrictionKind names a temporary restriction.
type RestrictionKind string

// RestrictionKind constants.
const (
	CantBlock         RestrictionKind = "cant_block"
	CantAttack        RestrictionKind = "cant_attack"
	CantAttackOrBlock RestrictionKind = "cant_attack_or_block"
	CantBeBlocked     RestrictionKind = "cant_be_blocked"
	DoesntUntap       RestrictionKind = "doesnt_untap"
	CantGainLife      RestrictionKind = "cant_gain_life"
	CantCastSpells    RestrictionKind = "cant_cast_spells"
	CantBeRegenerated RestrictionKind = "cant_be_regenerated"
	CantActivate      RestrictionKind = "cant_activate"
	CantBeCountered   RestrictionKind = "cant_be_countered"
	CantTransform     RestrictionKind = "cant_transform"
)

// Cant applies a restriction to a target or player for a duration.
type Cant struct {
	Restriction RestrictionKind
	Target      TargetAst
	Player      *PlayerFilter
	Duration    Duration
}

// ---------- Composition ----------

// Conditional runs IfTrue when a predicate holds, IfFalse otherwise.
type Conditional struct {
	Predicate PredicateAst
	IfTrue    []Effect
	IfFalse   []Effect
}

// IfResultPredicate inspects the result of the previous effect.
type IfResultPredicate string

// IfResultPredicate constants.
const (
	IfDid         IfResultPredicate = "did"
	IfDidNot      IfResultPredicate = "did_not"
	IfDiesThisWay IfResultPredicate = "dies_this_way"
)

// IfResult runs effects depending on whether the previous effect happened.
type IfResult struct {
	Predicate IfResultPredicate
	Effects   []Effect
}

// May lets the controller choose whether to run effects.
type May struct{ Effects []Effect }

// MayByPlayer lets another player choose whether to run effects.
type MayByPlayer struct {
	Player  PlayerAst
	Effects []Effect
}

// UnlessPays runs effects unless a player pays mana.
type UnlessPays struct {
	Effects []Effect
	Player  PlayerAst
	Mana    ManaCost
}

// UnlessAction runs effects unless a player performs an alternative action.
type UnlessAction struct {
	Effects     []Effect
	Alternative []Effect
	Player      PlayerAst
}

// ForEachOpponent runs effects once per opponent, binding the implicit player.
type ForEachOpponent struct{ Effects []Effect }

// ForEachPlayer runs effects once per player.
type ForEachPlayer struct{ Effects []Effect }

// ForEachObject runs effects once per matching object.
type ForEachObject struct {
	Filter  ObjectFilter
	Effects []Effect
}

// ForEachTagged runs effects once per tagged object.
type ForEachTagged struct {
	Tag     TagKey
	Effects []Effect
}

// ChooseObjects has a player choose objects and tags them.
type ChooseObjects struct {
	Filter ObjectFilter
	Count  ChoiceCount
	Player PlayerAst
	Tag    TagKey
}

// ChooseMode has the controller choose among modes of a modal ability.
type ChooseMode struct {
	Min   int
	Max   int
	Modes []Mode
}

// TargetOnly targets without acting ("choose target creature").
type TargetOnly struct{ Target TargetAst }

// DelayedUntilNextEndStep schedules effects at the beginning of the next end step.
type DelayedUntilNextEndStep struct {
	Player  PlayerFilter
	Effects []Effect
}

// DelayedUntilEndOfCombat schedules effects at end of combat.
type DelayedUntilEndOfCombat struct{ Effects []Effect }

// DelayedNextUpkeep schedules effects at the beginning of the next upkeep.
type DelayedNextUpkeep struct {
	Player  PlayerFilter
	Effects []Effect
}

// ---------- Voting ----------

// VoteStart starts a vote among the named options.
type VoteStart struct{ Options []string }

// VoteOption runs effects once per vote for an option.
type VoteOption struct {
	Option  string
	Effects []Effect
}

// VoteExtra grants extra votes.
type VoteExtra struct {
	Count    int
	Optional bool
}

func (*DealDamage) effectNode()                      {}
func (*DealDamageEach) effectNode()                  {}
func (*DealDamageEqualToPower) effectNode()          {}
func (*Fight) effectNode()                           {}
func (*PreventAllCombatDamage) effectNode()          {}
func (*PreventDamage) effectNode()                   {}
func (*PreventAllDamageToTarget) effectNode()        {}
func (*Draw) effectNode()                            {}
func (*Discard) effectNode()                         {}
func (*DiscardHand) effectNode()                     {}
func (*Mill) effectNode()                            {}
func (*Scry) effectNode()                            {}
func (*Surveil) effectNode()                         {}
func (*LookAtTopCards) effectNode()                  {}
func (*RevealTop) effectNode()                       {}
func (*RevealHand) effectNode()                      {}
func (*LookAtHand) effectNode()                      {}
func (*PutIntoHand) effectNode()                     {}
func (*SearchLibrary) effectNode()                   {}
func (*ShuffleLibrary) effectNode()                  {}
func (*ShuffleGraveyardIntoLibrary) effectNode()     {}
func (*Destroy) effectNode()                         {}
func (*DestroyAll) effectNode()                      {}
func (*Exile) effectNode()                           {}
func (*ExileAll) effectNode()                        {}
func (*ExileUntilSourceLeaves) effectNode()          {}
func (*ReturnToHand) effectNode()                    {}
func (*ReturnAllToHand) effectNode()                 {}
func (*ReturnToBattlefield) effectNode()             {}
func (*ReturnAllToBattlefield) effectNode()          {}
func (*MoveToZone) effectNode()                      {}
func (*Sacrifice) effectNode()                       {}
func (*SacrificeAll) effectNode()                    {}
func (*Counter) effectNode()                         {}
func (*CounterUnlessPays) effectNode()               {}
func (*CounterAbility) effectNode()                  {}
func (*CreateToken) effectNode()                     {}
func (*CreateTokenCopy) effectNode()                 {}
func (*CopySpell) effectNode()                       {}
func (*PutCounters) effectNode()                     {}
func (*PutCountersAll) effectNode()                  {}
func (*RemoveCounters) effectNode()                  {}
func (*MoveAllCounters) effectNode()                 {}
func (*DoubleCounters) effectNode()                  {}
func (*Proliferate) effectNode()                     {}
func (*PlayerCounters) effectNode()                  {}
func (*Tap) effectNode()                             {}
func (*TapAll) effectNode()                          {}
func (*Untap) effectNode()                           {}
func (*UntapAll) effectNode()                        {}
func (*Regenerate) effectNode()                      {}
func (*RegenerateAll) effectNode()                   {}
func (*Transform) effectNode()                       {}
func (*Goad) effectNode()                            {}
func (*Explore) effectNode()                         {}
func (*Connive) effectNode()                         {}
func (*Attach) effectNode()                          {}
func (*Monstrosity) effectNode()                     {}
func (*Bolster) effectNode()                         {}
func (*Support) effectNode()                         {}
func (*Adapt) effectNode()                           {}
func (*Earthbend) effectNode()                       {}
func (*ManifestDread) effectNode()                   {}
func (*Investigate) effectNode()                     {}
func (*Pump) effectNode()                            {}
func (*PumpAll) effectNode()                         {}
func (*PumpForEach) effectNode()                     {}
func (*SetBasePowerToughness) effectNode()           {}
func (*GrantAbilitiesToTarget) effectNode()          {}
func (*GrantAbilitiesAll) effectNode()               {}
func (*LoseAllAbilities) effectNode()                {}
func (*GrantProtectionChoice) effectNode()           {}
func (*GainLife) effectNode()                        {}
func (*LoseLife) effectNode()                        {}
func (*PayLife) effectNode()                         {}
func (*SetLifeTotal) effectNode()                    {}
func (*LoseGame) effectNode()                        {}
func (*WinGame) effectNode()                         {}
func (*ExtraTurn) effectNode()                       {}
func (*SkipTurn) effectNode()                        {}
func (*SkipCombatPhases) effectNode()                {}
func (*SkipDrawStep) effectNode()                    {}
func (*SkipUntapStep) effectNode()                   {}
func (*AddMana) effectNode()                         {}
func (*AddManaScaled) effectNode()                   {}
func (*AddManaAnyColor) effectNode()                 {}
func (*AddManaAnyOneColor) effectNode()              {}
func (*AddManaChosenColor) effectNode()              {}
func (*AddManaCommanderIdentity) effectNode()        {}
func (*AddManaLandCouldProduce) effectNode()         {}
func (*PayMana) effectNode()                         {}
func (*PayEnergy) effectNode()                       {}
func (*GainControl) effectNode()                     {}
func (*ExchangeControl) effectNode()                 {}
func (*Cant) effectNode()                            {}
func (*Conditional) effectNode()                     {}
func (*IfResult) effectNode()                        {}
func (*May) effectNode()                             {}
func (*MayByPlayer) effectNode()                     {}
func (*UnlessPays) effectNode()                      {}
func (*UnlessAction) effectNode()                    {}
func (*ForEachOpponent) effectNode()                 {}
func (*ForEachPlayer) effectNode()                   {}
func (*ForEachObject) effectNode()                   {}
func (*ForEachTagged) effectNode()                   {}
func (*ChooseObjects) effectNode()                   {}
func (*ChooseMode) effectNode()                      {}
func (*TargetOnly) effectNode()                      {}
func (*DelayedUntilNextEndStep) effectNode()         {}
func (*DelayedUntilEndOfCombat) effectNode()         {}
func (*DelayedNextUpkeep) effectNode()               {}
func (*VoteStart) effectNode()                       {}
func (*VoteOption) effectNode()                      {}
func (*VoteExtra) effectNode()                       {}

// IsManaEffect reports whether an effect adds mana.
func IsManaEffect(e Effect) bool {
	switch e.(type) {
	case *AddMana, *AddManaScaled, *AddManaAnyColor, *AddManaAnyOneColor,
		*AddManaChosenColor, *AddManaCommanderIdentity, *AddManaLandCouldProduce:
		return true
	}
	return false
}
