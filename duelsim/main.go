// duelsim runs bot battles against each other and prints how they went
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/nathanieltooley/pokeduel/global"
	"github.com/nathanieltooley/pokeduel/golurk"
	"github.com/nathanieltooley/pokeduel/teamfs"
	"github.com/nathanieltooley/pokeduel/telemetry"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", global.DefaultConfigLocation(), "path to the config file")
	battles := flag.Int("battles", 0, "number of battles to run at once (overrides the config)")
	seed := flag.Uint64("seed", 0, "seed for teams and battles, 0 for random (overrides the config)")
	teamName := flag.String("team", "", "saved team used by every host, saved from a random team if it doesn't exist")
	quiet := flag.Bool("quiet", false, "only print who won each battle")
	flag.Parse()

	config, err := global.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %s\n", err)
		os.Exit(1)
	}

	if *battles > 0 {
		config.Battles = *battles
	}
	if *seed != 0 {
		config.Seed = *seed
	}

	// battle logs go to stdout, so only the log file gets engine logs
	if err := global.InitLogging(config, false); err != nil {
		fmt.Fprintf(os.Stderr, "could not set up logging: %s\n", err)
		os.Exit(1)
	}

	os.Exit(run(context.Background(), config, *teamName, *quiet))
}

func run(ctx context.Context, config global.Config, teamName string, quiet bool) int {
	serviceOpts := []golurk.ServiceOption{
		golurk.WithCatalog(global.Must(golurk.DefaultCatalog())),
		golurk.WithCooldown(config.ItemCooldown),
		golurk.WithSourceFactory(seededSources(config.Seed)),
	}

	if config.Telemetry {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("telemetry setup failed, running without it")
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down telemetry")
				}
			}()

			serviceOpts = append(serviceOpts, golurk.WithTracer(telemetry.Tracer("golurk")))
		}
	} else {
		serviceOpts = append(serviceOpts, golurk.WithTracer(telemetry.NoopTracer()))
	}

	service := golurk.NewService(serviceOpts...)

	var hostTeam []teamfs.TeamMember
	if teamName != "" {
		members, err := loadOrSaveTeam(service.Catalog(), config, teamName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not load team %s: %s\n", teamName, err)
			return 1
		}

		hostTeam = members
	}

	log.Info().Int("battles", config.Battles).Uint64("seed", config.Seed).Str("team", teamName).Msg("starting simulation")

	reports, err := runBattles(ctx, service, simOptions{
		Battles:  config.Battles,
		Seed:     config.Seed,
		HostTeam: hostTeam,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not set up battles: %s\n", err)
		return 1
	}

	width := terminalWidth()
	for _, report := range reports {
		fmt.Println(renderReport(report, width, quiet))
	}
	fmt.Println(renderTotals(reports))

	return exitCode(reports)
}

// loadOrSaveTeam loads the named team, or saves a new random one under that name
func loadOrSaveTeam(catalog *golurk.Catalog, config global.Config, teamName string) ([]teamfs.TeamMember, error) {
	members, err := teamfs.LoadTeam(config.TeamFile, teamName)
	if err == nil {
		return members, nil
	}

	if !errors.Is(err, teamfs.ErrNoSuchTeam) {
		return nil, err
	}

	team, err := catalog.RandomTeam(golurk.CreateRNG(seededSources(config.Seed)()))
	if err != nil {
		return nil, err
	}

	members = teamfs.MembersFromTeam(team)
	if err := teamfs.SaveTeam(config.TeamFile, teamName, members); err != nil {
		return nil, err
	}

	log.Info().Str("team", teamName).Str("path", config.TeamFile).Msg("saved new random team")

	return members, nil
}
