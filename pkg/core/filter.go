package core

// PlayerKind classifies a player filter.
type PlayerKind string

// PlayerKind constants.
const (
	PlayerAny            PlayerKind = "any"
	PlayerYou            PlayerKind = "you"
	PlayerNotYou         PlayerKind = "not_you"
	PlayerOpponent       PlayerKind = "opponent"
	PlayerActive         PlayerKind = "active"
	PlayerDefending      PlayerKind = "defending"
	PlayerAttacking      PlayerKind = "attacking"
	PlayerTargeted       PlayerKind = "target"
	PlayerTargetOpponent PlayerKind = "target_opponent"
	PlayerControllerOf   PlayerKind = "controller_of"
	PlayerOwnerOf        PlayerKind = "owner_of"
	PlayerTagged         PlayerKind = "tagged"
	PlayerDamaged        PlayerKind = "damaged"
)

// PlayerFilter selects players. Tag is set for the *Of and Tagged kinds.
type PlayerFilter struct {
	Kind PlayerKind
	Tag  TagKey
}

// Common player filters.
var (
	AnyPlayer     = PlayerFilter{Kind: PlayerAny}
	You           = PlayerFilter{Kind: PlayerYou}
	NotYou        = PlayerFilter{Kind: PlayerNotYou}
	Opponent      = PlayerFilter{Kind: PlayerOpponent}
	ActivePlayer  = PlayerFilter{Kind: PlayerActive}
	Defending     = PlayerFilter{Kind: PlayerDefending}
	TargetPlayer  = PlayerFilter{Kind: PlayerTargeted}
	TargetOpp     = PlayerFilter{Kind: PlayerTargetOpponent}
	DamagedPlayer = PlayerFilter{Kind: PlayerDamaged}
)

// ControllerOf returns the filter for the controller of a tagged object.
func ControllerOf(tag TagKey) PlayerFilter {
	return PlayerFilter{Kind: PlayerControllerOf, Tag: tag}
}

// OwnerOf returns the filter for the owner of a tagged object.
func OwnerOf(tag TagKey) PlayerFilter {
	return PlayerFilter{Kind: PlayerOwnerOf, Tag: tag}
}

// TaggedPlayer returns the filter for a player tagged earlier ("that player").
func TaggedPlayer(tag TagKey) PlayerFilter {
	return PlayerFilter{Kind: PlayerTagged, Tag: tag}
}

// PlayerAst is the acting player of an effect.
type PlayerAst string

// PlayerAst constants.
const (
	PlayerAstYou            PlayerAst = "you"
	PlayerAstAny            PlayerAst = "any"
	PlayerAstDefending      PlayerAst = "defending"
	PlayerAstAttacking      PlayerAst = "attacking"
	PlayerAstTarget         PlayerAst = "target"
	PlayerAstTargetOpponent PlayerAst = "target_opponent"
	PlayerAstOpponent       PlayerAst = "opponent"
	PlayerAstThat           PlayerAst = "that"
	PlayerAstItsController  PlayerAst = "its_controller"
	PlayerAstItsOwner       PlayerAst = "its_owner"
	// PlayerAstImplicit is the player bound by an enclosing ForEach* effect.
	PlayerAstImplicit PlayerAst = "implicit"
)

// CounterConstraint requires or excludes counters on an object.
type CounterConstraint struct {
	Counter CounterType // AnyCounter for "a counter"
	AtLeast int
}

// TaggedRelation relates a filtered object to a tagged object.
type TaggedRelation string

// TaggedRelation constants.
const (
	IsTaggedObject        TaggedRelation = "is"
	IsNotTaggedObject     TaggedRelation = "is_not"
	SharesCardType        TaggedRelation = "shares_card_type"
	SharesColor           TaggedRelation = "shares_color"
	SameName              TaggedRelation = "same_name"
	SameManaValue         TaggedRelation = "same_mana_value"
	AttachedToTagged      TaggedRelation = "attached_to"
	ControlledByTaggedCtl TaggedRelation = "same_controller"
)

// TaggedConstraint is one tagged-object relation.
type TaggedConstraint struct {
	Tag      TagKey
	Relation TaggedRelation
}

// ObjectFilter is a conjunctive predicate over game objects. Every set field
// must hold; TypeOrSubtypeUnion switches CardTypes and Subtypes to a
// disjunction ("artifact, creature, or enchantment").
type ObjectFilter struct {
	Zone       Zone
	Controller *PlayerFilter
	Owner      *PlayerFilter

	// CardTypes requires at least one listed type; AllCardTypes requires each.
	CardTypes          []CardType
	AllCardTypes       []CardType
	ExcludedCardTypes  []CardType
	Subtypes           []Subtype
	ExcludedSubtypes   []Subtype
	TypeOrSubtypeUnion bool
	Supertypes         []Supertype
	ExcludedSupertypes []Supertype

	// Colors requires at least one listed color.
	Colors         []Color
	ExcludedColors []Color
	Colorless      bool
	Multicolored   bool
	Monocolored    bool

	Token        bool
	Nontoken     bool
	Other        bool
	Source       bool
	Tapped       bool
	Untapped     bool
	Attacking    bool
	Nonattacking bool
	Blocking     bool
	Nonblocking  bool
	Historic     bool
	Modified     bool
	Commander    bool
	// Spell restricts stack objects to spells (as opposed to abilities).
	Spell bool
	// SingleGraveyard requires chosen cards to come from one graveyard.
	SingleGraveyard bool
	EnteredThisTurn bool

	Power     *Comparison
	Toughness *Comparison
	ManaValue *Comparison

	WithCounter    *CounterConstraint
	WithoutCounter *CounterConstraint

	// Keywords the object must have ("with flying") or lack ("without flying").
	Keywords         []Keyword
	ExcludedKeywords []Keyword

	Name         string
	ExcludedName string

	TaggedConstraints []TaggedConstraint

	// AnyOf requires at least one nested filter to match.
	AnyOf []ObjectFilter
}

// Permanent returns a filter for any permanent on the battlefield.
func Permanent() ObjectFilter {
	return ObjectFilter{Zone: ZoneBattlefield}
}

// CreatureFilter returns a filter for creatures on the battlefield.
func CreatureFilter() ObjectFilter {
	return Permanent().WithType(Creature)
}

// NonlandPermanent returns a filter for nonland permanents.
func NonlandPermanent() ObjectFilter {
	return Permanent().WithoutType(Land)
}

// AnyOfTypes returns a battlefield filter matching any of the given types.
func AnyOfTypes(types ...CardType) ObjectFilter {
	f := Permanent()
	f.CardTypes = append(f.CardTypes, types...)
	return f
}

// InZone returns a copy of the filter restricted to a zone.
func (f ObjectFilter) InZone(z Zone) ObjectFilter {
	f.Zone = z
	return f
}

// WithType returns a copy of the filter requiring a card type.
func (f ObjectFilter) WithType(t CardType) ObjectFilter {
	f.CardTypes = appendType(f.CardTypes, t)
	return f
}

// WithoutType returns a copy of the filter excluding a card type.
func (f ObjectFilter) WithoutType(t CardType) ObjectFilter {
	f.ExcludedCardTypes = appendType(f.ExcludedCardTypes, t)
	return f
}

// WithSubtype returns a copy of the filter requiring a subtype.
func (f ObjectFilter) WithSubtype(s Subtype) ObjectFilter {
	for _, have := range f.Subtypes {
		if have == s {
			return f
		}
	}
	f.Subtypes = append(cloneSlice(f.Subtypes), s)
	return f
}

// WithoutColors returns a copy of the filter excluding colors.
func (f ObjectFilter) WithoutColors(colors ...Color) ObjectFilter {
	f.ExcludedColors = append(cloneSlice(f.ExcludedColors), colors...)
	return f
}

// YouControl returns a copy of the filter restricted to your permanents.
func (f ObjectFilter) YouControl() ObjectFilter {
	p := You
	f.Controller = &p
	return f
}

// OpponentsControl returns a copy restricted to opponents' permanents.
func (f ObjectFilter) OpponentsControl() ObjectFilter {
	p := Opponent
	f.Controller = &p
	return f
}

// OwnedBy returns a copy restricted to an owner.
func (f ObjectFilter) OwnedBy(p PlayerFilter) ObjectFilter {
	f.Owner = &p
	return f
}

// ControlledBy returns a copy restricted to a controller.
func (f ObjectFilter) ControlledBy(p PlayerFilter) ObjectFilter {
	f.Controller = &p
	return f
}

// AsOther returns a copy that excludes the source object.
func (f ObjectFilter) AsOther() ObjectFilter {
	f.Other = true
	return f
}

// MatchingTag returns a copy with a tagged-object constraint added.
func (f ObjectFilter) MatchingTag(tag TagKey, rel TaggedRelation) ObjectFilter {
	f.TaggedConstraints = append(cloneSlice(f.TaggedConstraints), TaggedConstraint{Tag: tag, Relation: rel})
	return f
}

// HasType reports whether the filter requires the given card type.
func (f ObjectFilter) HasType(t CardType) bool {
	for _, have := range f.CardTypes {
		if have == t {
			return true
		}
	}
	return false
}

// IsZero reports whether the filter constrains nothing.
func (f ObjectFilter) IsZero() bool {
	return f.Zone == ZoneAny && f.Controller == nil && f.Owner == nil &&
		len(f.CardTypes) == 0 && len(f.AllCardTypes) == 0 && len(f.ExcludedCardTypes) == 0 &&
		len(f.Subtypes) == 0 && len(f.ExcludedSubtypes) == 0 && len(f.Supertypes) == 0 &&
		len(f.ExcludedSupertypes) == 0 && len(f.Colors) == 0 && len(f.ExcludedColors) == 0 &&
		!f.Colorless && !f.Multicolored && !f.Monocolored && !f.Token && !f.Nontoken &&
		!f.Other && !f.Source && !f.Tapped && !f.Untapped && !f.Attacking && !f.Nonattacking &&
		!f.Blocking && !f.Nonblocking && !f.Historic && !f.Modified && !f.Commander && !f.Spell &&
		!f.SingleGraveyard && !f.EnteredThisTurn && f.Power == nil && f.Toughness == nil &&
		f.ManaValue == nil && f.WithCounter == nil && f.WithoutCounter == nil &&
		len(f.Keywords) == 0 && len(f.ExcludedKeywords) == 0 && f.Name == "" &&
		f.ExcludedName == "" && len(f.TaggedConstraints) == 0 && len(f.AnyOf) == 0
}

func appendType(types []CardType, t CardType) []CardType {
	for _, have := range types {
		if have == t {
			return types
		}
	}
	return append(cloneSlice(types), t)
}

// cloneSlice copies a slice so fluent builders never alias their receiver.
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s), len(s)+1)
	copy(out, s)
	return out
}
