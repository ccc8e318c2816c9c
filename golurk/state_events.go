package golurk

import (
	"fmt"
	"reflect"
	"slices"
)

// StateEvent represents a "single" change in GameState.
// Single here meaning a high-level of single but multiple "things" happening in a single event
// should be strongly related.
//
// StateEvents are separate from Actions in that Events are the low level changes of state and Actions
// represent higher level changes a user can make that are made of Events
type StateEvent interface {
	// Update will update GameState in some way. Follow-up events caused by this update are returned
	// and should be handled DIRECTLY after this state event. The second value is a list of messages to be displayed for the event.
	Update(*GameState) ([]StateEvent, []string)
}

type SwitchEvent struct {
	SwitchIndex int
	PlayerIndex int
}

func (event SwitchEvent) Update(gameState *GameState) ([]StateEvent, []string) {
	player := gameState.GetPlayer(event.PlayerIndex)
	newActivePkm := player.GetPokemon(event.SwitchIndex)

	gameState.logger.WithName("switch_event").Info("", "player_name", player.Name, "pokemon_name", newActivePkm.Name())

	player.ActivePokeIndex = event.SwitchIndex

	return nil, []string{fmt.Sprintf("%s switched to %s!", player.Name, newActivePkm.Name())}
}

// DamageEvent deals an already calculated amount of damage to a player's active pokemon
type DamageEvent struct {
	PlayerIndex   int
	Damage        uint
	Effectiveness float64
}

func (event DamageEvent) Update(gameState *GameState) ([]StateEvent, []string) {
	pokemon := gameState.GetPlayer(event.PlayerIndex).GetActivePokemon()
	messages := make([]string, 0, 3)

	switch event.Effectiveness {
	case ADVANTAGE:
		messages = append(messages, "It's super effective!")
	case DISADVANTAGE:
		messages = append(messages, "It's not very effective...")
	}

	oldHp := pokemon.Hp
	faintMessage, fainted := pokemon.ReceiveDamage(event.Damage)

	messages = append(messages, fmt.Sprintf("%s took %d damage", pokemon.Name(), oldHp-pokemon.Hp))
	if fainted {
		messages = append(messages, faintMessage)
	}

	return nil, messages
}

// AilmentEvent tries to give a player's active pokemon a status
type AilmentEvent struct {
	PlayerIndex int
	Ailment     int
}

func (event AilmentEvent) Update(gameState *GameState) ([]StateEvent, []string) {
	pokemon := gameState.GetPlayer(event.PlayerIndex).GetActivePokemon()

	// the hit that carried the ailment may have knocked the pokemon out
	if !pokemon.Alive() {
		return nil, nil
	}

	message, _ := pokemon.ApplyAilment(event.Ailment, gameState.CreateRng())
	if message == "" {
		return nil, nil
	}

	return nil, []string{message}
}

// ItemEvent uses an item from a player's bag on one of their pokemon.
// The item has already been validated by the action that created this event.
type ItemEvent struct {
	PlayerIndex int
	ItemName    string
	TargetName  string
}

func (event ItemEvent) Update(gameState *GameState) ([]StateEvent, []string) {
	player := gameState.GetPlayer(event.PlayerIndex)

	message, err := player.UseItem(event.ItemName, event.TargetName, gameState.ItemCooldown)
	if err != nil {
		gameState.logger.WithName("item_event").Error(err, "validated item could not be used", "player_name", player.Name, "item_name", event.ItemName)
		return nil, nil
	}

	return []StateEvent{NewMessageEvent(message)}, []string{fmt.Sprintf("%s used %s!", player.Name, event.ItemName)}
}

// EndOfTurnEvent runs the status tick for the pokemon that acted this turn.
// PokemonIndex is the index of the pokemon that was active when the turn started,
// so a pokemon that was just switched in doesn't get ticked.
type EndOfTurnEvent struct {
	PlayerIndex  int
	PokemonIndex int
}

func (event EndOfTurnEvent) Update(gameState *GameState) ([]StateEvent, []string) {
	player := gameState.GetPlayer(event.PlayerIndex)
	if event.PokemonIndex < 0 || event.PokemonIndex >= len(player.Team) {
		return nil, nil
	}

	return nil, player.GetPokemon(event.PokemonIndex).EndOfTurnTick(gameState.CreateRng())
}

// FinalUpdatesEvent hands the turn over to the other player
type FinalUpdatesEvent struct {
	PlayerIndex int
}

func (event FinalUpdatesEvent) Update(gameState *GameState) ([]StateEvent, []string) {
	gameState.GetPlayer(event.PlayerIndex).TickCooldown()

	gameState.TurnOwner = InvertPlayerIndex(event.PlayerIndex)
	gameState.Turn++

	gameState.logger.WithName("final_updates").V(1).Info("turn over", "turn", gameState.Turn, "turn_owner", gameState.TurnOwner)

	return nil, nil
}

// MessageEvent only adds a message to the log
type MessageEvent struct {
	Message string
}

func NewMessageEvent(message string) MessageEvent {
	return MessageEvent{Message: message}
}

func (event MessageEvent) Update(_ *GameState) ([]StateEvent, []string) {
	return nil, []string{event.Message}
}

// FmtMessageEvent is a MessageEvent whose message is formatted when the event runs
type FmtMessageEvent struct {
	Format string
	Args   []any
}

func NewFmtMessageEvent(format string, a ...any) FmtMessageEvent {
	return FmtMessageEvent{Format: format, Args: a}
}

func (event FmtMessageEvent) Update(_ *GameState) ([]StateEvent, []string) {
	return nil, []string{fmt.Sprintf(event.Format, event.Args...)}
}

// EventIter runs a queue of events in order. Follow-up events run before anything
// that was already queued so every event is fully resolved before the next one starts.
type EventIter struct {
	queue []StateEvent
}

func NewEventIter() EventIter {
	return EventIter{queue: make([]StateEvent, 0)}
}

// Next runs the event at the head of the queue and returns its messages.
// It returns false once the queue is empty.
func (iter *EventIter) Next(state *GameState) ([]string, bool) {
	if len(iter.queue) == 0 {
		return nil, false
	}

	head := iter.queue[0]
	iter.queue = iter.queue[1:]

	state.logger.WithName("event_iter").V(2).Info("running event", "event_name", reflect.TypeOf(head).Name(), "queued", len(iter.queue))

	followUps, messages := head.Update(state)
	iter.queue = slices.Insert(iter.queue, 0, followUps...)

	return messages, true
}

func (iter *EventIter) AddEvents(events []StateEvent) {
	iter.queue = append(iter.queue, events...)
}
