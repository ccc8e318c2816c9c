package golurk

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Catalog is all of the species, moves and items a battle can be built from.
// It is never changed after loading and can be shared freely.
type Catalog struct {
	species []BasePokemon
	// lowercase move name -> move
	moves map[string]Move
	// lowercase species name -> move names in file order
	learnedMoves map[string][]string
	items        []Item
	starterItems map[string]int
}

// A Caser keeps state between calls, so every loader makes its own
func newTitleCaser() cases.Caser {
	return cases.Title(language.English)
}

// LoadCreatures takes in the bytes of a csv file with the following columns:
// PokedexNumber, Name, Type, HP
// in that order, with a header row.
func LoadCreatures(fileBytes []byte) ([]BasePokemon, error) {
	csvReader := csv.NewReader(bytes.NewBuffer(fileBytes))
	csvReader.FieldsPerRecord = 4

	if _, err := csvReader.Read(); err != nil {
		return nil, fmt.Errorf("reading creature header: %w", err)
	}

	rows, err := csvReader.ReadAll()
	if err != nil {
		internalLogger().Error(err, "invalid csv data")
		return nil, err
	}

	internalLogger().Info("Loading Pokemon Data")

	titleCaser := newTitleCaser()
	pokemonList := make([]BasePokemon, 0, len(rows))
	for _, row := range rows {
		pokedexNumber, err := strconv.ParseUint(row[0], 10, 16)
		if err != nil {
			internalLogger().WithName("pokemon_parsing").Error(err, "invalid pokedex number")
			return nil, err
		}

		hp, err := strconv.ParseUint(row[3], 10, 16)
		if err != nil {
			internalLogger().WithName("pokemon_parsing").Error(err, "invalid hp")
			return nil, err
		}

		name := titleCaser.String(strings.TrimSpace(row[1]))
		pokemonType := titleCaser.String(strings.TrimSpace(row[2]))

		if !ValidType(pokemonType) {
			return nil, fmt.Errorf("%s has unknown type %q", name, row[2])
		}

		if hp == 0 {
			return nil, fmt.Errorf("%s has 0 hp", name)
		}

		internalLogger().WithName("load_pokemon").V(1).Info("loaded pokemon", "pokedex", pokedexNumber, "name", name, "type", pokemonType, "hp", hp)

		pokemonList = append(pokemonList, BasePokemon{
			PokedexNumber: uint(pokedexNumber),
			Name:          name,
			Type:          pokemonType,
			Hp:            uint(hp),
		})
	}

	internalLogger().Info("Loaded pokemon", "count", len(pokemonList))

	return pokemonList, nil
}

// LoadMoves takes in json that lists out move information, including which pokemon learn each move.
// Returns moves by lowercase name and a map of lowercase pokemon names to the moves they can learn.
func LoadMoves(moveBytes []byte) (map[string]Move, map[string][]string, error) {
	internalLogger().Info("Loading Move Data")

	parsedMoves := make([]moveFile, 0)
	if err := json.Unmarshal(moveBytes, &parsedMoves); err != nil {
		internalLogger().Error(err, "Couldn't unmarshal move data")
		return nil, nil, err
	}

	moves := make(map[string]Move, len(parsedMoves))
	learned := make(map[string][]string)
	titleCaser := newTitleCaser()

	for _, parsedMove := range parsedMoves {
		parsedMove.Type = titleCaser.String(parsedMove.Type)

		move, err := parsedMove.toMove()
		if err != nil {
			return nil, nil, err
		}

		moves[strings.ToLower(move.Name)] = move

		for _, pokemonName := range parsedMove.LearnedBy {
			key := strings.ToLower(pokemonName)
			learned[key] = append(learned[key], move.Name)
		}
	}

	internalLogger().Info("Loaded moves", "count", len(moves), "pokemon_count", len(learned))

	return moves, learned, nil
}

// LoadItems parses items.yaml. The second value is how many of each item a starter bag has.
func LoadItems(itemBytes []byte) ([]Item, map[string]int, error) {
	parsedItems := make([]itemFile, 0)
	if err := yaml.Unmarshal(itemBytes, &parsedItems); err != nil {
		internalLogger().Error(err, "Couldn't parse items.yaml")
		return nil, nil, err
	}

	items := make([]Item, 0, len(parsedItems))
	starters := make(map[string]int)

	for _, parsedItem := range parsedItems {
		item, err := parsedItem.toItem()
		if err != nil {
			return nil, nil, err
		}

		items = append(items, item)
		if parsedItem.Starter > 0 {
			starters[item.Name] = parsedItem.Starter
		}
	}

	internalLogger().Info("Loaded items", "count", len(items))

	return items, starters, nil
}

// LoadCatalog reads data/creatures.csv, data/moves.json and data/items.yaml from files concurrently
func LoadCatalog(files fs.FS) (*Catalog, error) {
	catalog := &Catalog{}
	group := errgroup.Group{}

	group.Go(func() error {
		creatureBytes, err := fs.ReadFile(files, "data/creatures.csv")
		if err != nil {
			return err
		}

		catalog.species, err = LoadCreatures(creatureBytes)
		return err
	})
	group.Go(func() error {
		moveBytes, err := fs.ReadFile(files, "data/moves.json")
		if err != nil {
			return err
		}

		catalog.moves, catalog.learnedMoves, err = LoadMoves(moveBytes)
		return err
	})
	group.Go(func() error {
		itemBytes, err := fs.ReadFile(files, "data/items.yaml")
		if err != nil {
			return err
		}

		catalog.items, catalog.starterItems, err = LoadItems(itemBytes)
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	// every species needs at least one move or it can never be built
	for _, species := range catalog.species {
		if len(catalog.MovesForSpecies(species.Name)) == 0 {
			return nil, fmt.Errorf("loading catalog: %s cannot learn any moves", species.Name)
		}
	}

	return catalog, nil
}

func (c *Catalog) Species() []BasePokemon {
	return slices.Clone(c.species)
}

func (c *Catalog) GetSpecies(name string) (BasePokemon, bool) {
	return lo.Find(c.species, func(pkm BasePokemon) bool {
		return strings.EqualFold(pkm.Name, name)
	})
}

func (c *Catalog) GetSpeciesByPokedex(pkdNumber uint) (BasePokemon, bool) {
	return lo.Find(c.species, func(pkm BasePokemon) bool {
		return pkm.PokedexNumber == pkdNumber
	})
}

func (c *Catalog) GetMove(name string) (Move, bool) {
	move, ok := c.moves[strings.ToLower(name)]
	return move, ok
}

// GetItem returns a fresh copy of the named item
func (c *Catalog) GetItem(name string) (Item, bool) {
	return lo.Find(c.items, func(item Item) bool {
		return strings.EqualFold(item.Name, name)
	})
}

func (c *Catalog) Items() []Item {
	return slices.Clone(c.items)
}

// MovesForSpecies returns every move the species can learn
func (c *Catalog) MovesForSpecies(speciesName string) []Move {
	moveNames := c.learnedMoves[strings.ToLower(speciesName)]

	return lo.FilterMap(moveNames, func(moveName string, _ int) (Move, bool) {
		return c.GetMove(moveName)
	})
}

func (c *Catalog) RandomSpecies(rng *rand.Rand) BasePokemon {
	return c.species[rng.IntN(len(c.species))]
}

// StarterItems is the default bag every player gets
func (c *Catalog) StarterItems() []Item {
	bag := make([]Item, 0)

	for _, item := range c.items {
		for range c.starterItems[item.Name] {
			bag = append(bag, item)
		}
	}

	return bag
}

// RandomTeam builds a full team of different species with random moves
func (c *Catalog) RandomTeam(rng *rand.Rand) ([]Pokemon, error) {
	if len(c.species) < MAX_TEAM_SIZE {
		return nil, fmt.Errorf("catalog only has %d species, need %d for a team", len(c.species), MAX_TEAM_SIZE)
	}

	team := make([]Pokemon, 0, MAX_TEAM_SIZE)
	for _, speciesIndex := range rng.Perm(len(c.species))[:MAX_TEAM_SIZE] {
		species := c.species[speciesIndex]

		pokemon, err := NewPokeBuilder(species, rng).
			SetRandomMoves(c.MovesForSpecies(species.Name)).
			Build()
		if err != nil {
			return nil, err
		}

		team = append(team, pokemon)
	}

	return team, nil
}
