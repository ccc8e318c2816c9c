package golurk

import (
	"fmt"
	"math"
	"testing"
)

type lowSource struct{}

func (lowSource) Uint64() uint64 {
	return 0
}

type highSource struct{}

func (highSource) Uint64() uint64 {
	return math.MaxUint64
}

// oneSource gives IntN(2) == 1 and IntN(4) == 1 on 64 bit platforms, and a Float64 just above 0
type oneSource struct{}

func (oneSource) Uint64() uint64 {
	return 1
}

func mustMove(t *testing.T, name string, power uint, moveType string, ailment int) Move {
	t.Helper()

	move, err := NewMove(name, power, moveType, false, ailment)
	if err != nil {
		t.Fatalf("could not create move %s: %s", name, err)
	}

	return move
}

func mustPokemon(t *testing.T, name string, pokemonType string, hp uint, moves ...Move) Pokemon {
	t.Helper()

	pokemon, err := NewPokemon(name, name, pokemonType, hp, moves)
	if err != nil {
		t.Fatalf("could not create pokemon %s: %s", name, err)
	}

	return pokemon
}

// fullPlayer makes a player with six normal type pokemon named <name>-0 to <name>-5 that know
// Tackle (40 power) and Hypnosis
func fullPlayer(t *testing.T, name string) *Player {
	t.Helper()

	tackle := mustMove(t, "Tackle", 40, TYPENAME_NORMAL, STATUS_NONE)
	hypnosis := mustMove(t, "Hypnosis", 0, TYPENAME_PSYCHIC, STATUS_SLEEP)

	player := NewPlayer(name)
	for i := range MAX_TEAM_SIZE {
		pokemon := mustPokemon(t, fmt.Sprintf("%s-%d", name, i), TYPENAME_NORMAL, 100, tackle, hypnosis)
		if err := player.AddToRoster(pokemon); err != nil {
			t.Fatalf("could not fill roster: %s", err)
		}
	}

	player.AddItems(NewHealItem("Potion", 20), NewReviveItem("Revive", 0.5), NewCureItem("Full Heal"))

	return player
}

// startedBattle creates and starts a battle between two full players. lowSource makes the host go first
// and highSource makes the client go first.
func startedBattle(t *testing.T, source RandSource) (*Battle, *Player, *Player) {
	t.Helper()

	host := fullPlayer(t, "ash")
	client := fullPlayer(t, "gary")

	battle, err := NewBattle(host, client, WithRandSource(source))
	if err != nil {
		t.Fatalf("could not create battle: %s", err)
	}

	if err := battle.Start(); err != nil {
		t.Fatalf("could not start battle: %s", err)
	}

	return battle, host, client
}

func knockOut(pokemon *Pokemon) {
	pokemon.ReceiveDamage(pokemon.Hp)
}
