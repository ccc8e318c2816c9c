package golurk

import (
	"fmt"

	"github.com/go-logr/logr"
)

func attackEventLogger(gameState *GameState) logr.Logger {
	return gameState.logger.WithName("attack_event")
}

type AttackAction struct {
	MoveName string
}

func NewAttackAction(moveName string) AttackAction {
	return AttackAction{MoveName: moveName}
}

func (a AttackAction) Validate(state *GameState, playerID int) error {
	pokemon := state.GetPlayer(playerID).GetActivePokemon()
	if pokemon == nil {
		return stateError(ErrInvariant, "player %d has no active pokemon", playerID)
	}

	if _, ok := pokemon.GetMove(a.MoveName); !ok {
		return validationError(ErrUnknownMove, "%s does not know %s", pokemon.Name(), a.MoveName)
	}

	return nil
}

func (a AttackAction) UpdateState(state *GameState, playerID int) []StateEvent {
	return []StateEvent{AttackEvent{AttackerID: playerID, MoveName: a.MoveName}}
}

type AttackEvent struct {
	AttackerID int
	MoveName   string
}

func (event AttackEvent) Update(gameState *GameState) ([]StateEvent, []string) {
	attacker, defender := getPlayerPair(gameState, event.AttackerID)
	defenderInt := InvertPlayerIndex(event.AttackerID)

	attackPokemon := attacker.GetActivePokemon()
	defPokemon := defender.GetActivePokemon()

	move, ok := attackPokemon.GetMove(event.MoveName)
	if !ok {
		attackEventLogger(gameState).Error(ErrUnknownMove, "validated move went missing", "pokemon_name", attackPokemon.Name(), "move", event.MoveName)
		return nil, nil
	}

	if !attackPokemon.Alive() {
		attackEventLogger(gameState).Info("attack was cancelled because they died", "pokemon_name", attackPokemon.Name())
		return nil, []string{fmt.Sprintf("%s has fainted and could not attack!", attackPokemon.Name())}
	}

	if attackPokemon.Status == STATUS_SLEEP && attackPokemon.SleepCount > 0 {
		attackEventLogger(gameState).Info("attack was skipped because of sleep", "pokemon_name", attackPokemon.Name(), "sleep_count", attackPokemon.SleepCount)
		return nil, []string{fmt.Sprintf("%s is asleep and could not attack!", attackPokemon.Name())}
	}

	if !attackPokemon.CanAct() {
		attackEventLogger(gameState).Info("attack was skipped because of para", "pokemon_name", attackPokemon.Name())
		return nil, []string{fmt.Sprintf("%s is paralyzed and could not attack!", attackPokemon.Name())}
	}

	if defPokemon == nil || !defPokemon.Alive() {
		attackEventLogger(gameState).Info("attack was skipped because the target has fainted", "pokemon_name", attackPokemon.Name())
		return nil, []string{fmt.Sprintf("%s could not attack, there is no target!", attackPokemon.Name())}
	}

	events := []StateEvent{NewFmtMessageEvent("%s used %s", attackPokemon.Name(), move.Name)}

	if move.Power > 0 {
		events = append(events, DamageEvent{
			PlayerIndex:   defenderInt,
			Damage:        Damage(move, defPokemon.Type, gameState.Chart),
			Effectiveness: gameState.Chart.Effectiveness(move.Type, defPokemon.Type),
		})
	}

	if move.IsStatusMove() {
		events = append(events, AilmentEvent{PlayerIndex: defenderInt, Ailment: move.Ailment})
	}

	return events, nil
}
