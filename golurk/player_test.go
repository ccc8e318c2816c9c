package golurk

import (
	"errors"
	"fmt"
	"testing"

	"pgregory.net/rapid"
)

func TestRosterFull(t *testing.T) {
	player := fullPlayer(t, "ash")

	extra := mustPokemon(t, "Extra", TYPENAME_FIRE, 100, mustMove(t, "Ember", 40, TYPENAME_FIRE, STATUS_BURN))
	err := player.AddToRoster(extra)

	if !errors.Is(err, ErrRosterFull) {
		t.Fatalf("expected ErrRosterFull, got %v", err)
	}

	if ErrorCode(err) != ERRKIND_VALIDATION {
		t.Fatalf("roster errors should be validation errors, got %s", ErrorCode(err))
	}

	if len(player.Team) != MAX_TEAM_SIZE {
		t.Fatalf("team grew to %d", len(player.Team))
	}
}

func TestRosterNeverExceedsMax(t *testing.T) {
	tackle := mustMove(t, "Tackle", 40, TYPENAME_NORMAL, STATUS_NONE)

	rapid.Check(t, func(rt *rapid.T) {
		names := rapid.SliceOf(rapid.StringMatching(`[a-e]{1,2}`)).Draw(rt, "names")
		player := NewPlayer("ash")

		for _, name := range names {
			pokemon := mustPokemon(t, name, TYPENAME_NORMAL, 50, tackle)
			_ = player.AddToRoster(pokemon)

			if len(player.Team) > MAX_TEAM_SIZE {
				rt.Fatalf("team has %d pokemon", len(player.Team))
			}
		}

		seen := make(map[string]bool)
		for _, pokemon := range player.Team {
			if seen[pokemon.Name()] {
				rt.Fatalf("duplicate %s on team", pokemon.Name())
			}
			seen[pokemon.Name()] = true
		}
	})
}

func TestDuplicateName(t *testing.T) {
	player := NewPlayer("ash")
	tackle := mustMove(t, "Tackle", 40, TYPENAME_NORMAL, STATUS_NONE)

	if err := player.AddToRoster(mustPokemon(t, "Sparky", TYPENAME_ELECTRIC, 90, tackle)); err != nil {
		t.Fatalf("first add failed: %s", err)
	}

	err := player.AddToRoster(mustPokemon(t, "Sparky", TYPENAME_FIRE, 80, tackle))
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestSetActive(t *testing.T) {
	player := fullPlayer(t, "ash")

	if err := player.SetActive("nobody"); !errors.Is(err, ErrNotInRoster) {
		t.Fatalf("expected ErrNotInRoster, got %v", err)
	}

	knockOut(player.GetPokemon(2))
	if err := player.SetActive("ash-2"); !errors.Is(err, ErrFainted) {
		t.Fatalf("expected ErrFainted, got %v", err)
	}

	if err := player.SetActive("ASH-1"); err != nil {
		t.Fatalf("names should ignore case: %s", err)
	}

	if player.GetActivePokemon().Name() != "ash-1" {
		t.Fatalf("wrong active pokemon %s", player.GetActivePokemon().Name())
	}

	if err := player.SetActive("ash-1"); !errors.Is(err, ErrAlreadyActive) {
		t.Fatalf("expected ErrAlreadyActive, got %v", err)
	}
}

func TestUseItem(t *testing.T) {
	player := fullPlayer(t, "ash")
	target := player.GetPokemon(0)
	target.ReceiveDamage(30)

	message, err := player.UseItem("potion", target.Name(), 2)
	if err != nil {
		t.Fatalf("potion failed: %s", err)
	}

	if target.Hp != 90 {
		t.Fatalf("expected 90 hp after potion, got %d (%s)", target.Hp, message)
	}

	if player.FindItem("Potion") != -1 {
		t.Fatalf("potion was not consumed")
	}

	if player.Cooldown != 2 {
		t.Fatalf("expected cooldown 2, got %d", player.Cooldown)
	}
}

func TestUseItemErrors(t *testing.T) {
	cases := []struct {
		name     string
		setup    func(*Player)
		item     string
		target   string
		expected error
	}{
		{"not owned", func(*Player) {}, "Max Potion", "ash-0", ErrItemNotOwned},
		{"not on team", func(*Player) {}, "Potion", "pikachu", ErrNotInRoster},
		{"full health", func(*Player) {}, "Potion", "ash-0", ErrItemNoEffect},
		{"heal fainted", func(p *Player) { knockOut(p.GetPokemon(0)) }, "Potion", "ash-0", ErrFainted},
		{"revive alive", func(*Player) {}, "Revive", "ash-0", ErrItemNoEffect},
		{"cure nothing", func(*Player) {}, "Full Heal", "ash-0", ErrItemNoEffect},
		{"cooldown", func(p *Player) { p.Cooldown = 1; p.GetPokemon(0).ReceiveDamage(10) }, "Potion", "ash-0", ErrItemOnCooldown},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			player := fullPlayer(t, "ash")
			c.setup(player)
			before := player.Clone()

			_, err := player.UseItem(c.item, c.target, 2)
			if !errors.Is(err, c.expected) {
				t.Fatalf("expected %v, got %v", c.expected, err)
			}

			if len(player.Items) != len(before.Items) || player.Cooldown != before.Cooldown {
				t.Fatalf("rejected item changed the player")
			}
		})
	}
}

func TestCureAndRevive(t *testing.T) {
	player := fullPlayer(t, "ash")
	rng := CreateRNG(lowSource{})

	player.GetPokemon(0).ApplyAilment(STATUS_POISON, rng)
	if _, err := player.UseItem("Full Heal", "ash-0", 0); err != nil {
		t.Fatalf("cure failed: %s", err)
	}

	if player.GetPokemon(0).Status != STATUS_NONE {
		t.Fatalf("status was not cured")
	}

	knockOut(player.GetPokemon(1))
	if _, err := player.UseItem("Revive", "ash-1", 0); err != nil {
		t.Fatalf("revive failed: %s", err)
	}

	if revived := player.GetPokemon(1); !revived.Alive() || revived.Hp != 50 {
		t.Fatalf("expected revive to 50 hp, got %d", revived.Hp)
	}
}

func TestLost(t *testing.T) {
	player := fullPlayer(t, "ash")

	for i := range MAX_TEAM_SIZE - 1 {
		knockOut(player.GetPokemon(i))
	}

	if player.Lost() {
		t.Fatalf("player with one pokemon left should not have lost")
	}

	knockOut(player.GetPokemon(MAX_TEAM_SIZE - 1))

	if !player.Lost() || player.TotalHp() != 0 {
		t.Fatalf("player with no hp left should have lost")
	}
}

func TestPlayerCloneIsDeep(t *testing.T) {
	player := fullPlayer(t, "ash")
	clone := player.Clone()

	player.GetPokemon(0).ReceiveDamage(10)
	player.Items = player.Items[:0]

	if clone.Team[0].Hp != 100 || len(clone.Items) != 3 {
		t.Fatalf("clone shared state with the original: %s", fmt.Sprint(clone.Team[0].Hp, len(clone.Items)))
	}
}
