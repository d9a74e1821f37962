package core

import "strings"

// Keyword is a keyword ability name, lower-cased ("flying", "first strike").
type Keyword string

// Keyword constants.
const (
	Flying         Keyword = "flying"
	FirstStrike    Keyword = "first strike"
	DoubleStrike   Keyword = "double strike"
	Deathtouch     Keyword = "deathtouch"
	Defender       Keyword = "defender"
	Haste          Keyword = "haste"
	Hexproof       Keyword = "hexproof"
	Indestructible Keyword = "indestructible"
	Lifelink       Keyword = "lifelink"
	Menace         Keyword = "menace"
	Reach          Keyword = "reach"
	Trample        Keyword = "trample"
	Vigilance      Keyword = "vigilance"
	Flash          Keyword = "flash"
	Shroud         Keyword = "shroud"
	Fear           Keyword = "fear"
	Intimidate     Keyword = "intimidate"
	Prowess        Keyword = "prowess"
	Changeling     Keyword = "changeling"
	Convoke        Keyword = "convoke"
	Delve          Keyword = "delve"
	Skulk          Keyword = "skulk"
	Wither         Keyword = "wither"
	Infect         Keyword = "infect"
	Shadow         Keyword = "shadow"
	Horsemanship   Keyword = "horsemanship"
	Flanking       Keyword = "flanking"
	Exalted        Keyword = "exalted"
	Persist        Keyword = "persist"
	Undying        Keyword = "undying"
	Cascade        Keyword = "cascade"
	Storm          Keyword = "storm"
	Devoid         Keyword = "devoid"
	Phasing        Keyword = "phasing"
	Banding        Keyword = "banding"
	Evolve         Keyword = "evolve"
	Extort         Keyword = "extort"
	Dethrone       Keyword = "dethrone"
	Riot           Keyword = "riot"
	Mentor         Keyword = "mentor"
	Training       Keyword = "training"
	Decayed        Keyword = "decayed"
	Battlecry      Keyword = "battle cry"
	SplitSecond    Keyword = "split second"
	Rebound        Keyword = "rebound"
	Cipher         Keyword = "cipher"
	Ascend         Keyword = "ascend"
	Unleash        Keyword = "unleash"
	Sunburst       Keyword = "sunburst"
	Improvise      Keyword = "improvise"

	// Keywords with a numeric payload.
	Ward        Keyword = "ward"
	Toxic       Keyword = "toxic"
	Bushido     Keyword = "bushido"
	Rampage     Keyword = "rampage"
	Bloodthirst Keyword = "bloodthirst"
	Annihilator Keyword = "annihilator"
	Afflict     Keyword = "afflict"
	Fading      Keyword = "fading"
	Vanishing   Keyword = "vanishing"
	Modular     Keyword = "modular"
	Fabricate   Keyword = "fabricate"
	Crew        Keyword = "crew"
	Dredge      Keyword = "dredge"

	// Keywords with a structured payload.
	Landwalk   Keyword = "landwalk"
	Protection Keyword = "protection"
	Affinity   Keyword = "affinity"

	// Costed keywords.
	Kicker      Keyword = "kicker"
	Multikicker Keyword = "multikicker"
	Buyback     Keyword = "buyback"
	Entwine     Keyword = "entwine"
	Echo        Keyword = "echo"
	Cumulative  Keyword = "cumulative upkeep"

	// Keywords that introduce activated abilities.
	Equip       Keyword = "equip"
	LevelUp     Keyword = "level up"
	Cycling     Keyword = "cycling"
	Typecycling Keyword = "typecycling"
	Morph       Keyword = "morph"
	Megamorph   Keyword = "megamorph"
	Unearth     Keyword = "unearth"
	Ninjutsu    Keyword = "ninjutsu"
	Reinforce   Keyword = "reinforce"
	Outlast     Keyword = "outlast"
	Scavenge    Keyword = "scavenge"
	Embalm      Keyword = "embalm"
	Eternalize  Keyword = "eternalize"
	Transmute   Keyword = "transmute"
	Fortify     Keyword = "fortify"
	Reconfigure Keyword = "reconfigure"
)

// simpleKeywords maps keyword phrases that take no payload. Multi-word
// entries are matched before single words.
var simpleKeywords = []Keyword{
	FirstStrike, DoubleStrike, Battlecry, SplitSecond,
	Flying, Deathtouch, Defender, Haste, Hexproof, Indestructible, Lifelink,
	Menace, Reach, Trample, Vigilance, Flash, Shroud, Fear, Intimidate, Prowess,
	Changeling, Convoke, Delve, Skulk, Wither, Infect, Shadow, Horsemanship,
	Flanking, Exalted, Persist, Undying, Cascade, Storm, Devoid, Phasing, Banding,
	Evolve, Extort, Dethrone, Riot, Mentor, Training, Decayed, Rebound, Cipher,
	Ascend, Unleash, Sunburst, Improvise,
}

// numericKeywords take a single number ("toxic 2", "annihilator 1").
var numericKeywords = map[string]Keyword{
	"ward": Ward, "toxic": Toxic, "bushido": Bushido, "rampage": Rampage,
	"bloodthirst": Bloodthirst, "annihilator": Annihilator, "afflict": Afflict,
	"fading": Fading, "vanishing": Vanishing, "modular": Modular,
	"fabricate": Fabricate, "crew": Crew, "dredge": Dredge,
}

// MatchSimpleKeyword matches a payload-free keyword at the start of words and
// returns it with the number of words consumed.
func MatchSimpleKeyword(words []string) (Keyword, int) {
	for _, kw := range simpleKeywords {
		parts := strings.Fields(string(kw))
		if len(words) < len(parts) {
			continue
		}
		ok := true
		for i, p := range parts {
			if words[i] != p {
				ok = false
				break
			}
		}
		if ok {
			return kw, len(parts)
		}
	}
	return "", 0
}

// LookupNumericKeyword resolves a keyword that takes a numeric payload.
func LookupNumericKeyword(word string) (Keyword, bool) {
	kw, ok := numericKeywords[word]
	return kw, ok
}

// ProtectionFrom is the quality a protection keyword names.
type ProtectionFrom struct {
	Colors       []Color
	CardTypes    []CardType
	Subtypes     []Subtype
	Everything   bool
	Multicolored bool
	Monocolored  bool
	Player       bool // "protection from the chosen player"
}

// KeywordAbility is a keyword with its payload.
type KeywordAbility struct {
	Keyword Keyword
	Amount  int
	// Cost is the printed mana cost of costed keywords ("kicker {R}", "ward {2}").
	Cost *ManaCost
	// CostEffects are non-mana keyword costs ("ward—pay 3 life").
	CostEffects []Effect
	Protection  *ProtectionFrom
	// LandType is set for landwalk ("islandwalk").
	LandType Subtype
	// Nonbasic marks "nonbasic landwalk".
	Nonbasic bool
	// AffinityFor is set for "affinity for artifacts".
	AffinityFor CardType
	// Subtype is the typecycling subtype ("forestcycling").
	Subtype Subtype
}

// StaticAbility is a continuous ability or a keyword.
type StaticAbility interface {
	staticNode()
}

// KeywordStatic is a keyword ability.
type KeywordStatic struct {
	Ability KeywordAbility
}

// Anthem modifies power and toughness of every matching creature.
type Anthem struct {
	Filter    ObjectFilter
	Power     int
	Toughness int
}

// AnthemForEach gives +N/+M for each object matching CountFilter.
type AnthemForEach struct {
	Filter       ObjectFilter
	PowerPer     int
	ToughnessPer int
	CountFilter  ObjectFilter
}

// GrantAbilities gives abilities to each matching object. Lines holds quoted
// granted abilities ("have \"{T}: Add {G}.\"").
type GrantAbilities struct {
	Filter    ObjectFilter
	Abilities []StaticAbility
	Lines     []LineAst
}

// AttachedBoost modifies the permanent an Aura or Equipment is attached to.
type AttachedBoost struct {
	Attachment TagKey // EnchantedTag or EquippedTag
	Power      int
	Toughness  int
	Abilities  []StaticAbility
}

// CostModifier changes what matching spells or abilities cost. A negative
// Amount is a reduction.
type CostModifier struct {
	Filter ObjectFilter
	Caster PlayerFilter
	Amount int
	// Colored is set when the change is colored mana ("cost {W} less").
	Colored []ManaSymbol
	// Abilities marks activated-ability cost changes.
	Abilities bool
}

// EntersTapped makes matching permanents enter tapped. A nil Filter means the source.
type EntersTapped struct {
	Filter *ObjectFilter
}

// EntersWithCounters makes the source enter with counters.
type EntersWithCounters struct {
	Counter CounterType
	Count   Value
}

// RevealOrEnterTapped is "As this land enters, you may reveal a <filter> card
// from your hand. If you don't, this land enters tapped."
type RevealOrEnterTapped struct {
	Filter ObjectFilter
}

// Restricted applies a standing restriction to matching objects or players.
// A nil Filter and nil Player means the source.
type Restricted struct {
	Restriction RestrictionKind
	Filter      *ObjectFilter
	Player      *PlayerFilter
	// Except is the "except by" filter of blocking restrictions.
	Except *ObjectFilter
}

// AttacksEachCombat is "attacks each combat if able".
type AttacksEachCombat struct {
	Filter *ObjectFilter
}

// CanBlockAdditional is "can block an additional N creatures each combat".
type CanBlockAdditional struct {
	Count int
}

// NoMaximumHandSize is "You have no maximum hand size."
type NoMaximumHandSize struct{}

// LookAtTopOfLibrary is "You may look at the top card of your library any time."
type LookAtTopOfLibrary struct{}

// PlayFromTopOfLibrary allows playing matching cards from the top of the library.
type PlayFromTopOfLibrary struct {
	Filter ObjectFilter
}

// CastAsThoughFlash allows casting matching spells as though they had flash.
type CastAsThoughFlash struct {
	Filter ObjectFilter
}

// Enchant is an Aura's enchant keyword.
type Enchant struct {
	Filter ObjectFilter
}

// CharacteristicPT defines the source's power and toughness.
type CharacteristicPT struct {
	Power     Value
	Toughness Value
}

// ControlEnchanted is "You control enchanted creature."
type ControlEnchanted struct{}

// LoseAllAbilitiesStatic removes all abilities from matching objects.
type LoseAllAbilitiesStatic struct {
	Filter ObjectFilter
}

// AdditionalLandPlay is "You may play an additional land on each of your turns."
type AdditionalLandPlay struct {
	Count int
}

// AsLongAs makes abilities conditional ("As long as ..., this creature has flying").
type AsLongAs struct {
	Condition PredicateAst
	Abilities []StaticAbility
}

// UnsupportedLine marks a line that failed to parse and was kept under the
// allow-unsupported policy.
type UnsupportedLine struct {
	Text   string
	Reason string
}

func (*KeywordStatic) staticNode()          {}
func (*Anthem) staticNode()                 {}
func (*AnthemForEach) staticNode()          {}
func (*GrantAbilities) staticNode()         {}
func (*AttachedBoost) staticNode()          {}
func (*CostModifier) staticNode()           {}
func (*EntersTapped) staticNode()           {}
func (*EntersWithCounters) staticNode()     {}
func (*RevealOrEnterTapped) staticNode()    {}
func (*Restricted) staticNode()             {}
func (*AttacksEachCombat) staticNode()      {}
func (*CanBlockAdditional) staticNode()     {}
func (*NoMaximumHandSize) staticNode()      {}
func (*LookAtTopOfLibrary) staticNode()     {}
func (*PlayFromTopOfLibrary) staticNode()   {}
func (*CastAsThoughFlash) staticNode()      {}
func (*Enchant) staticNode()                {}
func (*CharacteristicPT) staticNode()       {}
func (*ControlEnchanted) staticNode()       {}
func (*LoseAllAbilitiesStatic) staticNode() {}
func (*AdditionalLandPlay) staticNode()     {}
func (*AsLongAs) staticNode()               {}
func (*UnsupportedLine) staticNode()        {}

// KeywordOf returns a static ability for a payload-free keyword.
func KeywordOf(k Keyword) StaticAbility {
	return &KeywordStatic{Ability: KeywordAbility{Keyword: k}}
}
