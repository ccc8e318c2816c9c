// Package tests contains integration tests that drive whole battles through the service
package tests

import (
	"context"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/nathanieltooley/pokeduel/golurk"
)

func getCatalog(t *testing.T) *golurk.Catalog {
	t.Helper()

	catalog, err := golurk.DefaultCatalog()
	if err != nil {
		t.Fatalf("could not load catalog: %s", err)
	}

	return catalog
}

// getDummyPlayer builds a player with six of the given species, all knowing the given moves, and a starter bag
func getDummyPlayer(t *testing.T, catalog *golurk.Catalog, name string, species string, moveNames ...string) *golurk.Player {
	t.Helper()

	base, ok := catalog.GetSpecies(species)
	if !ok {
		t.Fatalf("unknown species %s", species)
	}

	moves := make([]golurk.Move, 0, len(moveNames))
	for _, moveName := range moveNames {
		move, ok := catalog.GetMove(moveName)
		if !ok {
			t.Fatalf("unknown move %s", moveName)
		}
		moves = append(moves, move)
	}

	player := golurk.NewPlayer(name)
	for i := range golurk.MAX_TEAM_SIZE {
		pokemon, err := golurk.NewPokeBuilder(base, nil).
			SetNickname(nickname(species, i)).
			SetMoves(moves...).
			Build()
		if err != nil {
			t.Fatalf("could not build %s: %s", species, err)
		}

		if err := player.AddToRoster(pokemon); err != nil {
			t.Fatalf("could not add %s: %s", species, err)
		}
	}

	player.AddItems(catalog.StarterItems()...)

	return player
}

func nickname(species string, i int) string {
	return species + string(rune('A'+i))
}

func getSimpleService(source rand.Source) *golurk.Service {
	return golurk.NewService(golurk.WithSourceFactory(func() rand.Source { return source }))
}

func startBattle(t *testing.T, service *golurk.Service, host *golurk.Player, client *golurk.Player) *golurk.Battle {
	t.Helper()

	battle, err := service.CreateBattle(context.Background(), host, client)
	if err != nil {
		t.Fatalf("could not create battle: %s", err)
	}

	if err := service.StartBattle(context.Background(), battle); err != nil {
		t.Fatalf("could not start battle: %s", err)
	}

	return battle
}

type lowSource struct{}

func (lowSource) Uint64() uint64 {
	return 0
}

type highSource struct{}

func (highSource) Uint64() uint64 {
	return math.MaxUint64
}
