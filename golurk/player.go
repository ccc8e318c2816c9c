package golurk

import (
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Player is a trainer: a team of up to six pokemon, the one currently sent out, and a bag of items.
//
// Players are shared between a Battle and whoever created them, but once a battle has started
// the battle is the only thing that should change them.
type Player struct {
	Name string
	Team []Pokemon
	// -1 when no pokemon has been sent out yet
	ActivePokeIndex int
	Items           []Item
	// Turns left before another item can be used
	Cooldown int
}

func NewPlayer(name string) *Player {
	return &Player{
		Name:            name,
		Team:            make([]Pokemon, 0, MAX_TEAM_SIZE),
		ActivePokeIndex: -1,
		Items:           make([]Item, 0),
	}
}

// AddToRoster adds a copy of the pokemon to the team. Teams are capped at six and nicknames must be unique.
func (p *Player) AddToRoster(pokemon Pokemon) error {
	if pokemon.IsNil() {
		return validationError(ErrInvalidPokemon, "cannot add an empty pokemon to %s's team", p.Name)
	}

	if len(p.Team) >= MAX_TEAM_SIZE {
		return validationError(ErrRosterFull, "%s already has %d pokemon", p.Name, MAX_TEAM_SIZE)
	}

	if p.FindPokemon(pokemon.Name()) != -1 {
		return validationError(ErrDuplicateName, "%s already has a pokemon named %s", p.Name, pokemon.Name())
	}

	p.Team = append(p.Team, pokemon.Clone())

	return nil
}

func (p *Player) AddItems(items ...Item) {
	p.Items = append(p.Items, items...)
}

// FindPokemon returns the index of the pokemon on the team with the given name (ignoring case), or -1
func (p Player) FindPokemon(name string) int {
	return slices.IndexFunc(p.Team, func(pokemon Pokemon) bool {
		return strings.EqualFold(pokemon.Name(), name)
	})
}

// FindItem returns the index of the first item in the bag with the given name (ignoring case), or -1
func (p Player) FindItem(name string) int {
	return slices.IndexFunc(p.Items, func(item Item) bool {
		return strings.EqualFold(item.Name, name)
	})
}

// ValidateActive checks that the named pokemon could be sent out, without changing anything
func (p Player) ValidateActive(name string) (int, error) {
	index := p.FindPokemon(name)
	if index == -1 {
		return -1, validationError(ErrNotInRoster, "%s has no pokemon named %s", p.Name, name)
	}

	if !p.Team[index].Alive() {
		return -1, validationError(ErrFainted, "%s cannot be sent out", p.Team[index].Name())
	}

	if index == p.ActivePokeIndex {
		return -1, validationError(ErrAlreadyActive, "%s is already out", p.Team[index].Name())
	}

	return index, nil
}

// SetActive sends out the named pokemon. It has to be on the team, alive, and not already out.
func (p *Player) SetActive(name string) error {
	index, err := p.ValidateActive(name)
	if err != nil {
		return err
	}

	p.ActivePokeIndex = index

	return nil
}

// GetActivePokemon returns the pokemon currently out or nil if there isn't one
func (p Player) GetActivePokemon() *Pokemon {
	if p.ActivePokeIndex < 0 || p.ActivePokeIndex >= len(p.Team) {
		return nil
	}

	return p.GetPokemon(p.ActivePokeIndex)
}

// GetPokemon gets a player's pokemon at some index
func (p Player) GetPokemon(index int) *Pokemon {
	return &p.Team[index]
}

// ValidateItem does every check UseItem does without using anything up.
// It returns the index of the item in the bag and the index of the target on the team.
func (p Player) ValidateItem(itemName string, targetName string) (int, int, error) {
	itemIndex := p.FindItem(itemName)
	if itemIndex == -1 {
		return -1, -1, validationError(ErrItemNotOwned, "%s has no %s", p.Name, itemName)
	}

	if p.Cooldown > 0 {
		return -1, -1, validationError(ErrItemOnCooldown, "%s has to wait %d more turns", p.Name, p.Cooldown)
	}

	targetIndex := p.FindPokemon(targetName)
	if targetIndex == -1 {
		return -1, -1, validationError(ErrNotInRoster, "%s has no pokemon named %s", p.Name, targetName)
	}

	if err := p.Items[itemIndex].CheckTarget(p.Team[targetIndex]); err != nil {
		return -1, -1, err
	}

	return itemIndex, targetIndex, nil
}

// UseItem consumes the item and applies it to the named pokemon, then starts the item cooldown.
func (p *Player) UseItem(itemName string, targetName string, cooldown int) (string, error) {
	itemIndex, targetIndex, err := p.ValidateItem(itemName, targetName)
	if err != nil {
		return "", err
	}

	item := p.Items[itemIndex]
	p.Items = slices.Delete(p.Items, itemIndex, itemIndex+1)
	message := item.Apply(&p.Team[targetIndex])
	p.Cooldown = max(0, cooldown)

	internalLogger().WithName("use_item").Info("item used", "player_name", p.Name, "item_name", item.Name, "target", p.Team[targetIndex].Name(), "cooldown", p.Cooldown)

	return message, nil
}

// TickCooldown lowers the item cooldown by one turn
func (p *Player) TickCooldown() {
	p.Cooldown = max(0, p.Cooldown-1)
}

// TotalHp is the sum of the hp of every pokemon on the team
func (p Player) TotalHp() uint {
	return lo.SumBy(p.Team, func(pokemon Pokemon) uint {
		return pokemon.Hp
	})
}

// Lost is true when the whole team is down to 0 hp
func (p Player) Lost() bool {
	if p.TotalHp() > 0 {
		internalLogger().V(2).Info("Player hasn't lost yet", "player_name", p.Name, "total_hp", p.TotalHp())
		return false
	}

	return true
}

// GetAllAlivePokemon returns pointers into the team for every pokemon that hasn't fainted, in team order
func (p Player) GetAllAlivePokemon() []*Pokemon {
	alivePokemon := make([]*Pokemon, 0)

	for i, pokemon := range p.Team {
		if pokemon.Alive() {
			// grab pointer directly from team slice
			// loop var pokemon should be a copy and thus a pointer would do nothing
			alivePokemon = append(alivePokemon, &p.Team[i])
		}
	}

	return alivePokemon
}

// Clone creates a copy of this player, handling new slice creation and allocation
func (p Player) Clone() Player {
	newPlayer := p
	newPlayer.Team = lo.Map(p.Team, func(pokemon Pokemon, _ int) Pokemon {
		return pokemon.Clone()
	})
	newPlayer.Items = slices.Clone(p.Items)

	return newPlayer
}
