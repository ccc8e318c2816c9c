package golurk

import (
	"math/rand/v2"

	"github.com/go-logr/logr"
)

// GameState is all of the mutable data of a single battle. It is only ever touched
// by the Battle that owns it, while that battle's lock is held.
type GameState struct {
	HostPlayer   *Player
	ClientPlayer *Player
	Turn         int
	// HOST, PEER or 0 before the battle starts
	TurnOwner int
	Chart     TypeChart
	// How many turns a player has to wait after using an item
	ItemCooldown int

	MessageHistory []string

	rng    *rand.Rand
	logger logr.Logger
}

func NewState(host *Player, client *Player, source rand.Source, chart TypeChart, itemCooldown int) GameState {
	return GameState{
		HostPlayer:   host,
		ClientPlayer: client,
		Turn:         0,
		Chart:        chart,
		ItemCooldown: itemCooldown,
		rng:          CreateRNG(source),
		logger:       internalLogger(),
	}
}

func (g *GameState) GetPlayer(index int) *Player {
	if index == HOST {
		return g.HostPlayer
	} else {
		return g.ClientPlayer
	}
}

// CreateRng returns the battle's random generator. Every random decision in a battle
// goes through it so a battle built from a fixed source always plays out the same way.
func (g *GameState) CreateRng() *rand.Rand {
	return g.rng
}

// GameOver returns whether the game should be over (all of a player's pokemon are at 0 hp)
// Value will be -1 for no loser yet, or the loser HOST or PEER.
// The client is checked first so a double knockout is a host win.
func (g *GameState) GameOver() int {
	if g.ClientPlayer.Lost() {
		return PEER
	}

	if g.HostPlayer.Lost() {
		return HOST
	}

	return -1
}
