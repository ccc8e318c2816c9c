package tests

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/nathanieltooley/pokeduel/golurk"
)

const maxTurns = 1000

func randomPlayer(catalog *golurk.Catalog, name string, rng *rand.Rand) (*golurk.Player, error) {
	team, err := catalog.RandomTeam(rng)
	if err != nil {
		return nil, err
	}

	player := golurk.NewPlayer(name)
	for _, pokemon := range team {
		if err := player.AddToRoster(pokemon); err != nil {
			return nil, err
		}
	}

	player.AddItems(catalog.StarterItems()...)

	return player, nil
}

// playOut lets both players pick their actions with BestAiAction until someone wins
func playOut(ctx context.Context, service *golurk.Service, battle *golurk.Battle) (golurk.ActionResult, error) {
	for range maxTurns {
		owner := battle.TurnOwner()

		action, ok := golurk.BestAiAction(battle.Snapshot(), owner, service.Chart())
		if !ok {
			return golurk.ActionResult{}, fmt.Errorf("no action for %s on turn %d", owner, battle.Turn())
		}

		result, err := service.Act(ctx, battle, owner, action)
		if err != nil {
			return result, fmt.Errorf("turn %d: %w", battle.Turn(), err)
		}

		if result.Finished {
			return result, nil
		}
	}

	return golurk.ActionResult{}, fmt.Errorf("battle did not finish in %d turns", maxTurns)
}

func TestAiBattle(t *testing.T) {
	ctx := context.Background()
	catalog := getCatalog(t)
	rng := golurk.CreateRNG(golurk.NewSeededSource(42))

	ash, err := randomPlayer(catalog, "ash", rng)
	if err != nil {
		t.Fatalf("could not build ash: %s", err)
	}

	gary, err := randomPlayer(catalog, "gary", rng)
	if err != nil {
		t.Fatalf("could not build gary: %s", err)
	}

	service := golurk.NewService(golurk.WithSourceFactory(func() rand.Source { return golurk.NewSeededSource(42) }))
	battle := startBattle(t, service, ash, gary)

	result, err := playOut(ctx, service, battle)
	if err != nil {
		t.Fatalf("battle failed: %s", err)
	}

	if result.Winner != "ash" && result.Winner != "gary" {
		t.Fatalf("unexpected winner %q", result.Winner)
	}

	loser := ash
	if result.Winner == "ash" {
		loser = gary
	}

	if !loser.Lost() {
		t.Fatalf("%s should have no pokemon left", loser.Name)
	}

	if service.Registry().Len() != 0 {
		t.Fatalf("finished battle should have left the registry")
	}
}

func TestConcurrentAiBattles(t *testing.T) {
	ctx := context.Background()
	catalog := getCatalog(t)
	service := golurk.NewService(golurk.WithCatalog(catalog))
	rng := golurk.CreateRNG(golurk.NewSeededSource(7))

	battles := make([]*golurk.Battle, 0, 20)
	for i := range 20 {
		host, err := randomPlayer(catalog, fmt.Sprintf("host%d", i), rng)
		if err != nil {
			t.Fatalf("could not build host: %s", err)
		}

		client, err := randomPlayer(catalog, fmt.Sprintf("client%d", i), rng)
		if err != nil {
			t.Fatalf("could not build client: %s", err)
		}

		battles = append(battles, startBattle(t, service, host, client))
	}

	if service.Registry().Len() != 20 {
		t.Fatalf("expected 20 battles, got %d", service.Registry().Len())
	}

	group, groupCtx := errgroup.WithContext(ctx)
	for _, battle := range battles {
		group.Go(func() error {
			_, err := playOut(groupCtx, service, battle)
			return err
		})
	}

	if err := group.Wait(); err != nil {
		t.Fatalf("battle failed: %s", err)
	}

	if service.Registry().Len() != 0 {
		t.Fatalf("expected an empty registry, got %d", service.Registry().Len())
	}
}
