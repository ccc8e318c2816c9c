package golurk

import (
	"github.com/go-logr/logr"
	"github.com/samber/lo"
)

var aiLogger = func() logr.Logger {
	return internalLogger().WithName("ai_move_selection")
}

// BestAiAction decides what playerName should do with the battle as it is in view.
// The bool is false when the player has nothing it can do (it isn't in the battle or has no pokemon left).
//
// In order of preference: switch out a fainted pokemon, cure the active pokemon's status, heal it when it's low,
// revive a teammate while the active pokemon is healthy, and otherwise use the move that does the most damage.
func BestAiAction(view BattleView, playerName string, chart TypeChart) (Action, bool) {
	if view.Host.Name != playerName && view.Client.Name != playerName {
		return nil, false
	}

	self := view.Self(playerName)
	opponent := view.Opponent(playerName)
	aiPokemon := self.GetActivePokemon()

	// Switch on death
	if aiPokemon == nil || !aiPokemon.Alive() {
		if alive := self.GetAllAlivePokemon(); len(alive) > 0 {
			return NewSwitchAction(alive[0].Name()), true
		}

		aiLogger().Info("no pokemon left to switch to", "player_name", playerName)
		return nil, false
	}

	if action, ok := bestItemAction(self, *aiPokemon); ok {
		return action, true
	}

	if len(aiPokemon.Moves) == 0 {
		aiLogger().Info("pokemon has no moves and should not be here in the first place", "pokemon_name", aiPokemon.Name())
		return nil, false
	}

	return NewAttackAction(bestAttackingMove(*aiPokemon, opponent.GetActivePokemon(), chart).Name), true
}

func bestItemAction(self Player, aiPokemon Pokemon) (Action, bool) {
	if self.Cooldown > 0 || len(self.Items) == 0 {
		return nil, false
	}

	useOn := func(kind int, target Pokemon) (Action, bool) {
		for _, item := range self.Items {
			if item.Kind != kind {
				continue
			}

			if _, _, err := self.ValidateItem(item.Name, target.Name()); err == nil {
				return NewItemAction(item.Name, target.Name()), true
			}
		}

		return nil, false
	}

	if aiPokemon.Status != STATUS_NONE && aiPokemon.Status != STATUS_SLEEP {
		if action, ok := useOn(ITEM_CURE, aiPokemon); ok {
			return action, true
		}
	}

	if aiPokemon.Hp < aiPokemon.MaxHp/4 {
		if action, ok := useOn(ITEM_HEAL, aiPokemon); ok {
			return action, true
		}
	}

	if aiPokemon.Hp > aiPokemon.MaxHp/2 {
		fainted, found := lo.Find(self.Team, func(pokemon Pokemon) bool {
			return !pokemon.Alive()
		})

		if found {
			if action, ok := useOn(ITEM_REVIVE, fainted); ok {
				return action, true
			}
		}
	}

	return nil, false
}

// bestAttackingMove picks the move that does the most damage to target.
// Ties go to moves that would give an unstatused target a status.
func bestAttackingMove(aiPokemon Pokemon, target *Pokemon, chart TypeChart) Move {
	if target == nil {
		return aiPokemon.Moves[0]
	}

	type scoredMove struct {
		move   Move
		damage uint
		status bool
	}

	scored := lo.Map(aiPokemon.Moves, func(move Move, _ int) scoredMove {
		return scoredMove{
			move:   move,
			damage: Damage(move, target.Type, chart),
			status: move.IsStatusMove() && target.Status == STATUS_NONE,
		}
	})

	best := lo.MaxBy(scored, func(a scoredMove, b scoredMove) bool {
		if a.damage != b.damage {
			return a.damage > b.damage
		}

		return a.status && !b.status
	})

	aiLogger().V(1).Info("picked move", "pokemon_name", aiPokemon.Name(), "move", best.move.Name, "damage", best.damage)

	return best.move
}
