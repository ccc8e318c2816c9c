package golurk

// Action is something a player does on their turn. Every action consumes the turn.
//
// Validate must not change state, and UpdateState is only called after Validate passed.
type Action interface {
	Validate(state *GameState, playerID int) error
	UpdateState(state *GameState, playerID int) []StateEvent
}

// SwitchAction sends out a different pokemon
type SwitchAction struct {
	PokemonName string
}

func NewSwitchAction(pokemonName string) SwitchAction {
	return SwitchAction{PokemonName: pokemonName}
}

func (a SwitchAction) Validate(state *GameState, playerID int) error {
	_, err := state.GetPlayer(playerID).ValidateActive(a.PokemonName)
	return err
}

func (a SwitchAction) UpdateState(state *GameState, playerID int) []StateEvent {
	switchIndex := state.GetPlayer(playerID).FindPokemon(a.PokemonName)
	return []StateEvent{SwitchEvent{PlayerIndex: playerID, SwitchIndex: switchIndex}}
}

// ItemAction uses an item from the bag on one of the player's own pokemon
type ItemAction struct {
	ItemName   string
	TargetName string
}

func NewItemAction(itemName string, targetName string) ItemAction {
	return ItemAction{ItemName: itemName, TargetName: targetName}
}

func (a ItemAction) Validate(state *GameState, playerID int) error {
	_, _, err := state.GetPlayer(playerID).ValidateItem(a.ItemName, a.TargetName)
	return err
}

func (a ItemAction) UpdateState(state *GameState, playerID int) []StateEvent {
	return []StateEvent{ItemEvent{PlayerIndex: playerID, ItemName: a.ItemName, TargetName: a.TargetName}}
}
