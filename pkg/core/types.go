package core

import "strings"

// TagKey names an object or player tagged earlier in the same ability's
// execution ("it", "that player"). It is a weak back-reference resolved by
// the runtime, never an ownership relation.
type TagKey string

// ItTag is the tag bound by pronoun references such as "it" or "that creature".
const ItTag TagKey = "__it__"

// Well-known tags established by costs and attachments.
const (
	SacrificedTag TagKey = "sacrificed"
	EnchantedTag  TagKey = "enchanted"
	EquippedTag   TagKey = "equipped"
	TriggerTag    TagKey = "triggering"
	TargetTag     TagKey = "target"
)

// Zone is a game zone.
type Zone string

// Zone constants. The empty zone means "unspecified".
const (
	ZoneAny         Zone = ""
	ZoneBattlefield Zone = "battlefield"
	ZoneGraveyard   Zone = "graveyard"
	ZoneHand        Zone = "hand"
	ZoneLibrary     Zone = "library"
	ZoneExile       Zone = "exile"
	ZoneStack       Zone = "stack"
	ZoneCommand     Zone = "command"
)

// CardType is a card type.
type CardType string

// CardType constants.
const (
	Artifact     CardType = "artifact"
	Battle       CardType = "battle"
	Creature     CardType = "creature"
	Enchantment  CardType = "enchantment"
	Instant      CardType = "instant"
	Kindred      CardType = "kindred"
	Land         CardType = "land"
	Planeswalker CardType = "planeswalker"
	Sorcery      CardType = "sorcery"
)

var cardTypeWords = map[string]CardType{
	"artifact": Artifact, "artifacts": Artifact,
	"battle": Battle, "battles": Battle,
	"creature": Creature, "creatures": Creature,
	"enchantment": Enchantment, "enchantments": Enchantment,
	"instant": Instant, "instants": Instant,
	"kindred": Kindred, "tribal": Kindred,
	"land": Land, "lands": Land,
	"planeswalker": Planeswalker, "planeswalkers": Planeswalker,
	"sorcery": Sorcery, "sorceries": Sorcery,
}

// LookupCardType resolves a (possibly plural) card-type word.
func LookupCardType(word string) (CardType, bool) {
	t, ok := cardTypeWords[word]
	return t, ok
}

// Supertype is a card supertype.
type Supertype string

// Supertype constants.
const (
	Basic     Supertype = "basic"
	Legendary Supertype = "legendary"
	Snow      Supertype = "snow"
	World     Supertype = "world"
)

var supertypeWords = map[string]Supertype{
	"basic": Basic, "legendary": Legendary, "snow": Snow, "world": World,
}

// LookupSupertype resolves a supertype word.
func LookupSupertype(word string) (Supertype, bool) {
	t, ok := supertypeWords[word]
	return t, ok
}

// Subtype is a creature, land, artifact, enchantment, spell or planeswalker
// subtype, stored lower-cased and singular.
type Subtype string

// OutlawSubtypes is the closed subtype bundle named by the word "outlaw".
var OutlawSubtypes = []Subtype{"assassin", "mercenary", "pirate", "rogue", "warlock"}

// LookupSubtype resolves a (possibly plural) subtype word.
func LookupSubtype(word string) (Subtype, bool) {
	if _, ok := subtypeSet[word]; ok {
		return Subtype(word), true
	}
	if s, ok := subtypePlurals[word]; ok {
		return s, true
	}
	if strings.HasSuffix(word, "s") {
		if _, ok := subtypeSet[strings.TrimSuffix(word, "s")]; ok {
			return Subtype(strings.TrimSuffix(word, "s")), true
		}
	}
	return "", false
}

// IsBasicLandType reports whether the subtype is one of the five basic land types.
func (s Subtype) IsBasicLandType() bool {
	switch s {
	case "plains", "island", "swamp", "mountain", "forest":
		return true
	}
	return false
}

var subtypePlurals = map[string]Subtype{
	"elves": "elf", "dwarves": "dwarf", "wolves": "wolf", "werewolves": "werewolf",
	"fishes": "fish", "octopi": "octopus", "sphinxes": "sphinx", "foxes": "fox",
	"mice": "mouse", "allies": "ally", "fungi": "fungus", "homunculi": "homunculus",
	"plainses": "plains", "faeries": "faerie", "zombies": "zombie", "eyes": "eye",
	"leeches": "leech", "moles": "mole", "djinn": "djinn", "efreet": "efreet",
	"sorceresses": "sorceress", "thieves": "thief", "witches": "witch",
	"berserkers": "berserker", "armies": "army", "treasures": "treasure",
	"hydras": "hydra", "cephalids": "cephalid", "oozes": "ooze",
}

var subtypeSet = func() map[string]struct{} {
	words := strings.Fields(`
advisor ally angel ant ape archer archon army artificer assassin assembly-worker
avatar azra badger barbarian bard basilisk bat bear beast berserker bird boar
brushwagg bureaucrat camel cat centaur cephalid chimera citizen cleric cockatrice
construct coward crab crocodile cyclops dauthi demon detective devil dinosaur djinn
dog dragon drake dreadnought drone druid dryad dwarf efreet egg elder eldrazi elemental
elephant elf elk employee eye faerie ferret fish flagbearer fox fractal frog fungus
gargoyle germ giant gnome goat goblin god golem gorgon griffin hag halfling hamster
harpy hellion hippo homarid homunculus horror horse human hydra hyena illusion imp
incarnation insect inkling jackal jellyfish juggernaut kavu kirin kithkin knight kobold
kor kraken lamia leech leviathan lhurgoyf licid lizard manticore masticore mercenary
merfolk minion minotaur mite mole monk monkey moonfolk mouse mutant myr mystic naga
nautilus nephilim nightmare ninja noble nomad nymph octopus ogre ooze orb orc orgg otter
ouphe ox oyster pangolin peasant pegasus pest phelddagrif phoenix phyrexian pilot pirate
plant praetor processor rabbit raccoon rat rebel reflection rhino rigger robot rogue
salamander samurai saproling satyr scarecrow scion scorpion scout serf serpent servo
shade shaman shapeshifter shark sheep siren skeleton slith sliver slug snake soldier
soltari spawn specter spellshaper sphinx spider spike spirit splinter sponge squid
squirrel starfish surrakar survivor tentacle thalakos thopter thrull tiefling treefolk
troll turtle unicorn vampire vedalken viashino volver wall warlock warrior weird werewolf
whale wizard wolf wolverine wombat worm wraith wurm yeti zombie zubera
plains island swamp mountain forest desert gate lair locus mine power-plant tower urza's
cave sphere town
equipment vehicle treasure food clue blood gold map powerstone contraption fortification
aura cartouche class curse rune saga shrine shard background role case room
adventure arcane lesson trap
`)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}()

// Color is one of the five colors.
type Color string

// Color constants.
const (
	White Color = "white"
	Blue  Color = "blue"
	Black Color = "black"
	Red   Color = "red"
	Green Color = "green"
)

// AllColors lists the colors in WUBRG order.
var AllColors = []Color{White, Blue, Black, Red, Green}

// LookupColor resolves a color word.
func LookupColor(word string) (Color, bool) {
	switch word {
	case "white":
		return White, true
	case "blue":
		return Blue, true
	case "black":
		return Black, true
	case "red":
		return Red, true
	case "green":
		return Green, true
	}
	return "", false
}

// CounterType names a kind of counter ("+1/+1", "charge", "loyalty").
type CounterType string

// Common counter types.
const (
	PlusOneCounter    CounterType = "+1/+1"
	MinusOneCounter   CounterType = "-1/-1"
	LoyaltyCounter    CounterType = "loyalty"
	ChargeCounter     CounterType = "charge"
	PoisonCounter     CounterType = "poison"
	AnyCounter        CounterType = ""
	StunCounter       CounterType = "stun"
	ShieldCounter     CounterType = "shield"
	TimeCounter       CounterType = "time"
	LoreCounter       CounterType = "lore"
	OilCounter        CounterType = "oil"
	FlyingCounter     CounterType = "flying"
	DeathtouchCounter CounterType = "deathtouch"
)

var counterWords = map[string]CounterType{
	"+1/+1": PlusOneCounter, "-1/-1": MinusOneCounter, "loyalty": LoyaltyCounter,
	"charge": ChargeCounter, "poison": PoisonCounter, "stun": StunCounter,
	"shield": ShieldCounter, "time": TimeCounter, "lore": LoreCounter, "oil": OilCounter,
	"flying": FlyingCounter, "deathtouch": DeathtouchCounter, "ice": "ice", "age": "age",
	"fade": "fade", "quest": "quest", "storage": "storage", "verse": "verse",
	"page": "page", "level": "level", "fuse": "fuse", "divinity": "divinity",
	"blood": "blood", "bounty": "bounty", "brick": "brick", "corpse": "corpse",
	"depletion": "depletion", "doom": "doom", "egg": "egg", "experience": "experience",
	"feather": "feather", "finality": "finality", "flood": "flood", "growth": "growth",
	"hatchling": "hatchling", "healing": "healing", "hit": "hit", "hourglass": "hourglass",
	"infection": "infection", "ki": "ki", "luck": "luck", "mining": "mining",
	"net": "net", "omen": "omen", "pain": "pain", "petal": "petal", "plague": "plague",
	"pressure": "pressure", "rust": "rust", "slime": "slime", "spore": "spore",
	"strife": "strife", "study": "study", "tide": "tide", "training": "training",
	"trample": "trample", "vigilance": "vigilance", "lifelink": "lifelink",
	"menace": "menace", "reach": "reach", "hexproof": "hexproof", "indestructible": "indestructible",
	"wish": "wish", "wind": "wind", "velocity": "velocity", "vitality": "vitality",
	"void": "void", "filibuster": "filibuster", "energy": "energy", "rad": "rad",
	"dream": "dream", "gem": "gem", "invitation": "invitation", "javelin": "javelin",
}

// LookupCounterType resolves a counter-type word.
func LookupCounterType(word string) (CounterType, bool) {
	c, ok := counterWords[word]
	return c, ok
}

// CompareOp is a numeric comparison operator.
type CompareOp string

// CompareOp constants.
const (
	OpEqual          CompareOp = "=="
	OpGreaterOrEqual CompareOp = ">="
	OpLessOrEqual    CompareOp = "<="
	OpGreater        CompareOp = ">"
	OpLess           CompareOp = "<"
)

// Comparison is a numeric constraint on power, toughness, mana value or life.
type Comparison struct {
	Op    CompareOp
	Value int
	// X marks comparisons against the X paid for the spell ("mana value X or less").
	X bool
}

// Duration is how long a temporary effect lasts.
type Duration string

// Duration constants.
const (
	Immediate         Duration = ""
	UntilEndOfTurn    Duration = "until_end_of_turn"
	UntilYourNextTurn Duration = "until_your_next_turn"
	UntilEndOfCombat  Duration = "until_end_of_combat"
	ThisTurn          Duration = "this_turn"
	Forever           Duration = "forever"
	WhileControlled   Duration = "as_long_as_you_control_source"
	DuringNextTurn    Duration = "during_next_turn"
	NextUntapStep     Duration = "next_untap_step"
)
