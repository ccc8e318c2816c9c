package golurk

import (
	"fmt"
	"reflect"
	"strings"
)

// ActionResult is what a player sees after acting
type ActionResult struct {
	Messages []string
	// Messages joined by newlines
	Message  string
	Finished bool
	// Only set when Finished
	Winner string
	// ERRKIND_NONE unless the action was rejected
	Code ErrorKind
	// The turn counter after the action
	Turn int
}

func rejectedResult(err error) ActionResult {
	return ActionResult{Message: err.Error(), Code: ErrorCode(err)}
}

// Act resolves one action for playerName and passes the turn to the other player.
//
// Nothing is changed when an error is returned. Attacks that can't land (asleep, paralyzed, fainted)
// are not errors, they still use up the turn.
func (b *Battle) Act(playerName string, action Action) (ActionResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.status != BATTLE_IN_PROGRESS {
		err := stateError(ErrNotInProgress, "battle %s is %s", b.ID, BATTLE_STATE_NAMES[b.status])
		return rejectedResult(err), err
	}

	playerIndex := b.playerIndex(playerName)
	if playerIndex == 0 {
		err := validationError(ErrUnknownPlayer, "%s is not in battle %s", playerName, b.ID)
		return rejectedResult(err), err
	}

	if playerIndex != b.state.TurnOwner {
		err := turnError(ErrNotYourTurn, "it is %s's turn", b.turnOwnerName())
		return rejectedResult(err), err
	}

	if err := b.checkInvariants(); err != nil {
		return rejectedResult(err), err
	}

	if err := action.Validate(&b.state, playerIndex); err != nil {
		b.state.logger.WithName("state_updater").V(1).Info("action rejected", "player_name", playerName, "action_name", reflect.TypeOf(action).Name(), "error", err.Error())
		return rejectedResult(err), err
	}

	b.state.logger.WithName("state_updater").Info(fmt.Sprintf("======== TURN %d =========", b.state.Turn), "player_name", playerName, "action_name", reflect.TypeOf(action).Name())

	// the pokemon that acted gets the end of turn tick, even if it was switched out
	actingPokemon := b.state.GetPlayer(playerIndex).ActivePokeIndex

	events := action.UpdateState(&b.state, playerIndex)
	events = append(events,
		EndOfTurnEvent{PlayerIndex: playerIndex, PokemonIndex: actingPokemon},
		FinalUpdatesEvent{PlayerIndex: playerIndex},
	)

	messages := b.applyEvents(events)

	if winMessage, finished := b.checkWin(); finished {
		messages = append(messages, winMessage)
		b.state.MessageHistory = append(b.state.MessageHistory, winMessage)
	}

	return ActionResult{
		Messages: messages,
		Message:  strings.Join(messages, "\n"),
		Finished: b.status == BATTLE_FINISHED,
		Winner:   b.winner,
		Turn:     b.state.Turn,
	}, nil
}

func (b *Battle) applyEvents(events []StateEvent) []string {
	eventIter := NewEventIter()
	eventIter.AddEvents(events)

	messages := make([]string, 0)
	for {
		eventMessages, next := eventIter.Next(&b.state)
		if !next {
			break
		}

		messages = append(messages, eventMessages...)
	}

	b.state.MessageHistory = append(b.state.MessageHistory, messages...)

	return messages
}

// CheckWin finishes the battle if either team is completely out of hp and returns the win message.
// If both teams go down together player1 wins.
func (b *Battle) CheckWin() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.status == BATTLE_FINISHED {
		return fmt.Sprintf("%s wins!", b.winner), true
	}

	if b.status != BATTLE_IN_PROGRESS {
		return "", false
	}

	message, finished := b.checkWin()
	if finished {
		b.state.MessageHistory = append(b.state.MessageHistory, message)
	}

	return message, finished
}

func (b *Battle) checkWin() (string, bool) {
	loser := b.state.GameOver()
	if loser == -1 {
		return "", false
	}

	b.status = BATTLE_FINISHED
	b.winner = b.state.GetPlayer(InvertPlayerIndex(loser)).Name

	b.state.logger.WithName("battle").Info("battle finished", "winner", b.winner, "turn", b.state.Turn)

	if b.onFinish != nil {
		b.onFinish(b)
	}

	return fmt.Sprintf("%s wins!", b.winner), true
}

// Abandon stops a battle that will never finish. It has no winner and is removed from its registry.
// Only the call that actually stopped the battle returns true.
func (b *Battle) Abandon(reason string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.status == BATTLE_FINISHED || b.status == BATTLE_ABANDONED {
		return false
	}

	b.status = BATTLE_ABANDONED
	b.state.MessageHistory = append(b.state.MessageHistory, fmt.Sprintf("The battle was abandoned: %s", reason))

	b.state.logger.WithName("battle").Info("battle abandoned", "reason", reason, "turn", b.state.Turn)

	if b.onFinish != nil {
		b.onFinish(b)
	}

	return true
}

// checkInvariants catches engine bugs. They are logged and turned into an error instead of panicking.
func (b *Battle) checkInvariants() error {
	for _, index := range []int{HOST, PEER} {
		player := b.state.GetPlayer(index)

		var err error
		switch {
		case len(player.Team) > MAX_TEAM_SIZE:
			err = stateError(ErrInvariant, "%s has %d pokemon", player.Name, len(player.Team))
		case player.ActivePokeIndex < 0 || player.ActivePokeIndex >= len(player.Team):
			err = stateError(ErrInvariant, "%s's active pokemon %d is not on their team", player.Name, player.ActivePokeIndex)
		}

		if err != nil {
			b.state.logger.WithName("state_updater").Error(err, "battle invariant broken")
			return err
		}

		for _, pokemon := range player.Team {
			if pokemon.Hp > pokemon.MaxHp || pokemon.Alive() != (pokemon.Hp > 0) {
				err := stateError(ErrInvariant, "%s has %d/%d hp", pokemon.Name(), pokemon.Hp, pokemon.MaxHp)
				b.state.logger.WithName("state_updater").Error(err, "battle invariant broken")
				return err
			}
		}
	}

	return nil
}
