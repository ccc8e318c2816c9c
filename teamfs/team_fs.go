// Package teamfs saves and loads named teams as JSON so the same roster can be used across runs
package teamfs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nathanieltooley/pokeduel/golurk"
	"github.com/samber/lo"
)

var ErrNoSuchTeam = errors.New("no such team exists")

// TeamMember is how a pokemon is stored in a team file. Species and moves are resolved through a catalog when loaded.
type TeamMember struct {
	Species  string   `json:"species"`
	Nickname string   `json:"nickname,omitempty"`
	MaxHp    uint     `json:"max_hp,omitempty"`
	Moves    []string `json:"moves"`
}

type SavedTeams map[string][]TeamMember

// MembersFromTeam turns built pokemon back into team members
func MembersFromTeam(team []golurk.Pokemon) []TeamMember {
	members := lo.Filter(team, func(pokemon golurk.Pokemon, _ int) bool {
		return !pokemon.IsNil()
	})

	return lo.Map(members, func(pokemon golurk.Pokemon, _ int) TeamMember {
		member := TeamMember{
			Species: pokemon.Species,
			MaxHp:   pokemon.MaxHp,
			Moves: lo.Map(pokemon.Moves, func(move golurk.Move, _ int) string {
				return move.Name
			}),
		}

		if pokemon.Nickname != pokemon.Species {
			member.Nickname = pokemon.Nickname
		}

		return member
	})
}

func SaveTeam(filePath string, name string, members []TeamMember) error {
	if len(members) > golurk.MAX_TEAM_SIZE {
		return fmt.Errorf("team %s has %d members: %w", name, len(members), golurk.ErrRosterFull)
	}

	teams, err := LoadTeamMap(filePath)
	if err != nil {
		return err
	}

	teams[name] = members

	teamsJson, err := json.MarshalIndent(teams, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(filePath, teamsJson, 0644); err != nil {
		return fmt.Errorf("saving team %s: %w", name, err)
	}

	return nil
}

func LoadTeam(filePath string, name string) ([]TeamMember, error) {
	teams, err := LoadTeamMap(filePath)
	if err != nil {
		return nil, err
	}

	members, ok := teams[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNoSuchTeam)
	}

	// Only happens if a user edits the file by hand
	if len(members) > golurk.MAX_TEAM_SIZE {
		members = members[:golurk.MAX_TEAM_SIZE]
	}

	return members, nil
}

// LoadTeamMap reads every saved team. The file, and its directory, is created if it doesn't exist.
func LoadTeamMap(filePath string) (SavedTeams, error) {
	teamFile, err := os.Open(filePath)
	// If there is an error, assume the file doesn't exist
	if err != nil {
		if err := os.MkdirAll(filepath.Dir(filePath), 0750); err != nil {
			return nil, err
		}

		teamFile, err = os.Create(filePath)
		// If we still have errors, then bail
		if err != nil {
			return nil, err
		}
	}
	defer teamFile.Close()

	teamFileBytes, err := io.ReadAll(teamFile)
	if err != nil {
		return nil, err
	}

	teams := make(SavedTeams)
	if len(teamFileBytes) == 0 {
		return teams, nil
	}

	if err := json.Unmarshal(teamFileBytes, &teams); err != nil {
		return nil, fmt.Errorf("reading teams from %s: %w", filePath, err)
	}

	return teams, nil
}

// BuildPlayer creates a player named playerName with the members as their roster and items in their bag
func BuildPlayer(catalog *golurk.Catalog, playerName string, members []TeamMember, items []golurk.Item) (*golurk.Player, error) {
	player := golurk.NewPlayer(playerName)

	for _, member := range members {
		pokemon, err := buildMember(catalog, member)
		if err != nil {
			return nil, err
		}

		if err := player.AddToRoster(pokemon); err != nil {
			return nil, err
		}
	}

	player.AddItems(items...)

	return player, nil
}

func buildMember(catalog *golurk.Catalog, member TeamMember) (golurk.Pokemon, error) {
	species, ok := catalog.GetSpecies(member.Species)
	if !ok {
		return golurk.Pokemon{}, fmt.Errorf("unknown species %s: %w", member.Species, golurk.ErrInvalidPokemon)
	}

	moves := make([]golurk.Move, 0, len(member.Moves))
	for _, moveName := range member.Moves {
		move, ok := catalog.GetMove(moveName)
		if !ok {
			return golurk.Pokemon{}, fmt.Errorf("%s knows unknown move %s: %w", member.Species, moveName, golurk.ErrInvalidMove)
		}

		moves = append(moves, move)
	}

	builder := golurk.NewPokeBuilder(species, nil).SetMoves(moves...)
	if member.Nickname != "" {
		builder.SetNickname(member.Nickname)
	}
	if member.MaxHp > 0 {
		builder.SetMaxHp(member.MaxHp)
	}

	return builder.Build()
}
