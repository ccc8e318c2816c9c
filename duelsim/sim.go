package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync/atomic"

	"github.com/nathanieltooley/pokeduel/golurk"
	"github.com/nathanieltooley/pokeduel/teamfs"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Bots can stall with revives and sleep, but never this long
const maxTurns = 2000

type battleReport struct {
	Host   string
	Client string
	Winner string
	Turns  int
	Log    []string
	Err    error
}

type simOptions struct {
	Battles int
	// 0 picks a random seed for every battle
	Seed uint64
	// Team for every host player, random teams are used when empty
	HostTeam []teamfs.TeamMember
}

// seededSources hands out a different source for every battle, all derived from one seed
func seededSources(seed uint64) func() rand.Source {
	if seed == 0 {
		return func() rand.Source { return golurk.NewRandomSource() }
	}

	var battleCount atomic.Uint64
	return func() rand.Source {
		return golurk.NewSeededSource(seed + battleCount.Add(1))
	}
}

// runBattles plays every battle to the end at the same time. Errors are kept in each battle's report,
// the returned error is only for battles that could not be set up.
func runBattles(ctx context.Context, service *golurk.Service, opts simOptions) ([]battleReport, error) {
	catalog := service.Catalog()
	teamRng := golurk.CreateRNG(seededSources(opts.Seed)())

	battles := make([]*golurk.Battle, 0, opts.Battles)
	for i := range opts.Battles {
		host, err := newBot(catalog, fmt.Sprintf("host-%d", i), opts.HostTeam, teamRng)
		if err != nil {
			return nil, err
		}

		client, err := newBot(catalog, fmt.Sprintf("client-%d", i), nil, teamRng)
		if err != nil {
			return nil, err
		}

		battle, err := service.CreateBattle(ctx, host, client)
		if err != nil {
			return nil, err
		}

		if err := service.StartBattle(ctx, battle); err != nil {
			return nil, err
		}

		battles = append(battles, battle)
	}

	reports := make([]battleReport, len(battles))
	group, groupCtx := errgroup.WithContext(ctx)

	for i, battle := range battles {
		group.Go(func() error {
			reports[i] = playBattle(groupCtx, service, battle)
			// one broken battle doesn't stop the others
			return nil
		})
	}

	_ = group.Wait()

	return reports, nil
}

func newBot(catalog *golurk.Catalog, name string, members []teamfs.TeamMember, rng *rand.Rand) (*golurk.Player, error) {
	if len(members) > 0 {
		return teamfs.BuildPlayer(catalog, name, members, catalog.StarterItems())
	}

	team, err := catalog.RandomTeam(rng)
	if err != nil {
		return nil, err
	}

	return teamfs.BuildPlayer(catalog, name, teamfs.MembersFromTeam(team), catalog.StarterItems())
}

func playBattle(ctx context.Context, service *golurk.Service, battle *golurk.Battle) battleReport {
	host, client := battle.PlayerNames()
	report := battleReport{Host: host, Client: client}

	for range maxTurns {
		if err := ctx.Err(); err != nil {
			report.Err = err
			break
		}

		owner := battle.TurnOwner()
		action, ok := golurk.BestAiAction(battle.Snapshot(), owner, service.Chart())
		if !ok {
			report.Err = fmt.Errorf("%s has no action on turn %d", owner, battle.Turn())
			break
		}

		result, err := service.Act(ctx, battle, owner, action)
		if err != nil {
			report.Err = fmt.Errorf("%s on turn %d: %w", owner, battle.Turn(), err)
			break
		}

		if result.Finished {
			report.Winner = result.Winner
			break
		}
	}

	if report.Winner == "" && report.Err == nil {
		report.Err = fmt.Errorf("battle did not finish in %d turns", maxTurns)
	}

	if report.Err != nil {
		log.Error().Err(report.Err).Str("battle_id", battle.ID.String()).Msg("battle stopped early")

		// frees the players in the registry too
		service.AbandonBattle(ctx, battle, report.Err.Error())
	}

	view := battle.Snapshot()
	report.Turns = view.Turn
	report.Log = view.Messages

	return report
}

// exitCode is 2 if any battle broke an engine invariant, 1 for any other failure
func exitCode(reports []battleReport) int {
	code := 0
	for _, report := range reports {
		if report.Err == nil {
			continue
		}

		if errors.Is(report.Err, golurk.ErrInvariant) {
			return 2
		}

		code = 1
	}

	return code
}
