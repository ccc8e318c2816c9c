package golurk

const MAX_TEAM_SIZE = 6

const MAX_MOVES = 4

const (
	TYPENAME_NORMAL   = "Normal"
	TYPENAME_FIRE     = "Fire"
	TYPENAME_WATER    = "Water"
	TYPENAME_ELECTRIC = "Electric"
	TYPENAME_PLANT    = "Plant"
	TYPENAME_ICE      = "Ice"
	TYPENAME_GROUND   = "Ground"
	TYPENAME_FLYING   = "Flying"
	TYPENAME_ROCK     = "Rock"
	TYPENAME_PSYCHIC  = "Psychic"
)

var TYPENAMES = []string{
	TYPENAME_NORMAL,
	TYPENAME_FIRE,
	TYPENAME_WATER,
	TYPENAME_ELECTRIC,
	TYPENAME_PLANT,
	TYPENAME_ICE,
	TYPENAME_GROUND,
	TYPENAME_FLYING,
	TYPENAME_ROCK,
	TYPENAME_PSYCHIC,
}

// Type effectiveness multipliers. There is no immunity in this ruleset, every
// attack does at least half damage.
const (
	ADVANTAGE    = 2.0
	NEUTRAL      = 1.0
	DISADVANTAGE = 0.5
)

const (
	STATUS_NONE = iota
	// sleeping pokemon keep a countdown in SleepCount
	STATUS_SLEEP
	// para is rolled at the end of the pokemon's own turn for the next one
	STATUS_PARA
	// will have to check at the end of a turn for damage
	STATUS_POISON
	STATUS_BURN
)

var STATUS_NAME_MAP = map[string]int{
	"":          STATUS_NONE,
	"none":      STATUS_NONE,
	"sleep":     STATUS_SLEEP,
	"paralysis": STATUS_PARA,
	"poison":    STATUS_POISON,
	"burn":      STATUS_BURN,
}

var STATUS_DISPLAY_NAMES = map[int]string{
	STATUS_NONE:   "none",
	STATUS_SLEEP:  "asleep",
	STATUS_PARA:   "paralyzed",
	STATUS_POISON: "poisoned",
	STATUS_BURN:   "burned",
}

// Fraction of CURRENT hp lost at the end of every turn
const (
	POISON_FRACTION = 0.05
	BURN_FRACTION   = 0.10
)

const (
	MIN_SLEEP_TURNS = 1
	MAX_SLEEP_TURNS = 4
)

const PARA_SKIP_CHANCE = 0.5

const (
	ITEM_HEAL = iota + 1
	ITEM_REVIVE
	ITEM_CURE
)

var ITEM_KIND_MAP = map[string]int{
	"heal":   ITEM_HEAL,
	"revive": ITEM_REVIVE,
	"cure":   ITEM_CURE,
}

const DEFAULT_ITEM_COOLDOWN = 2

// plus 1 because Go has made very stupid design decisions
const (
	HOST = iota + 1
	PEER
)

const (
	BATTLE_NOT_STARTED = iota
	BATTLE_IN_PROGRESS
	BATTLE_FINISHED
	// stopped without a winner
	BATTLE_ABANDONED
)

var BATTLE_STATE_NAMES = map[int]string{
	BATTLE_NOT_STARTED: "not started",
	BATTLE_IN_PROGRESS: "in progress",
	BATTLE_FINISHED:    "finished",
	BATTLE_ABANDONED:   "abandoned",
}
