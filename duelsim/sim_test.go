package main

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nathanieltooley/pokeduel/global"
	"github.com/nathanieltooley/pokeduel/golurk"
	"github.com/nathanieltooley/pokeduel/telemetry"
)

func newTestService(t *testing.T, seed uint64) *golurk.Service {
	t.Helper()

	catalog, err := golurk.DefaultCatalog()
	if err != nil {
		t.Fatalf("could not load catalog: %s", err)
	}

	return golurk.NewService(
		golurk.WithCatalog(catalog),
		golurk.WithSourceFactory(seededSources(seed)),
		golurk.WithTracer(telemetry.NoopTracer()),
	)
}

func TestRunBattles(t *testing.T) {
	service := newTestService(t, 11)

	reports, err := runBattles(context.Background(), service, simOptions{Battles: 6, Seed: 11})
	if err != nil {
		t.Fatalf("could not run battles: %s", err)
	}

	if len(reports) != 6 {
		t.Fatalf("expected 6 reports, got %d", len(reports))
	}

	for _, report := range reports {
		if report.Err != nil {
			t.Fatalf("%s vs %s failed: %s", report.Host, report.Client, report.Err)
		}

		if report.Winner != report.Host && report.Winner != report.Client {
			t.Fatalf("unexpected winner %q", report.Winner)
		}

		if report.Log[len(report.Log)-1] != report.Winner+" wins!" {
			t.Fatalf("log should end with the win message, got %q", report.Log[len(report.Log)-1])
		}
	}

	if exitCode(reports) != 0 {
		t.Fatalf("finished battles should exit cleanly")
	}

	if service.Registry().Len() != 0 {
		t.Fatalf("registry should be empty after every battle finished")
	}
}

func TestSeededRunsRepeat(t *testing.T) {
	first, err := runBattles(context.Background(), newTestService(t, 5), simOptions{Battles: 2, Seed: 5})
	if err != nil {
		t.Fatalf("could not run battles: %s", err)
	}

	second, err := runBattles(context.Background(), newTestService(t, 5), simOptions{Battles: 2, Seed: 5})
	if err != nil {
		t.Fatalf("could not run battles: %s", err)
	}

	for i := range first {
		if first[i].Winner != second[i].Winner || first[i].Turns != second[i].Turns {
			t.Fatalf("battle %d went differently with the same seed", i)
		}
	}
}

func TestExitCode(t *testing.T) {
	invariant := &golurk.BattleError{Err: golurk.ErrInvariant}

	cases := []struct {
		reports  []battleReport
		expected int
	}{
		{reports: []battleReport{{Winner: "ash"}}, expected: 0},
		{reports: []battleReport{{Err: errors.New("stalled")}, {Winner: "ash"}}, expected: 1},
		{reports: []battleReport{{Err: errors.New("stalled")}, {Err: invariant}}, expected: 2},
	}

	for i, c := range cases {
		if code := exitCode(c.reports); code != c.expected {
			t.Fatalf("case %d: expected %d, got %d", i, c.expected, code)
		}
	}
}

func TestRenderReport(t *testing.T) {
	report := battleReport{Host: "host-0", Client: "client-0", Winner: "host-0", Turns: 30, Log: []string{"host-0 sent in Pikachu!"}}

	full := renderReport(report, 60, false)
	if !strings.Contains(full, "host-0 vs client-0") || !strings.Contains(full, "sent in Pikachu") || !strings.Contains(full, "won on turn 30") {
		t.Fatalf("report is missing parts:\n%s", full)
	}

	if quiet := renderReport(report, 60, true); strings.Contains(quiet, "sent in Pikachu") {
		t.Fatalf("quiet reports should leave out the log:\n%s", quiet)
	}

	totals := renderTotals([]battleReport{report, {Host: "a", Client: "b", Winner: "b"}, {Err: errors.New("stalled")}})
	if !strings.Contains(totals, "hosts won 1, clients won 1, 1 failed") {
		t.Fatalf("unexpected totals: %s", totals)
	}
}

func TestLoadOrSaveTeam(t *testing.T) {
	catalog, err := golurk.DefaultCatalog()
	if err != nil {
		t.Fatalf("could not load catalog: %s", err)
	}

	config := global.Config{TeamFile: filepath.Join(t.TempDir(), "teams.json"), Seed: 9}

	saved, err := loadOrSaveTeam(catalog, config, "mine")
	if err != nil {
		t.Fatalf("could not save team: %s", err)
	}

	loaded, err := loadOrSaveTeam(catalog, config, "mine")
	if err != nil {
		t.Fatalf("could not load team: %s", err)
	}

	if len(saved) != golurk.MAX_TEAM_SIZE || len(loaded) != len(saved) || loaded[0].Species != saved[0].Species {
		t.Fatalf("the saved team should be loaded the second time")
	}

	reports, err := runBattles(context.Background(), newTestService(t, 9), simOptions{Battles: 1, Seed: 9, HostTeam: loaded})
	if err != nil {
		t.Fatalf("could not run battle: %s", err)
	}

	if reports[0].Err != nil {
		t.Fatalf("battle with a saved team failed: %s", reports[0].Err)
	}
}

func TestCanceledRunAbandonsBattles(t *testing.T) {
	service := newTestService(t, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reports, err := runBattles(ctx, service, simOptions{Battles: 2, Seed: 3})
	if err != nil {
		t.Fatalf("could not set up battles: %s", err)
	}

	for _, report := range reports {
		if !errors.Is(report.Err, context.Canceled) || report.Winner != "" {
			t.Fatalf("expected a canceled battle without a winner, got %v won by %q", report.Err, report.Winner)
		}
	}

	if exitCode(reports) != 1 {
		t.Fatalf("canceled battles should exit with 1")
	}

	if service.Registry().Len() != 0 {
		t.Fatalf("canceled battles should leave the registry")
	}

	for _, battle := range service.Registry().Battles() {
		t.Fatalf("battle %s is still registered", battle.ID)
	}
}
