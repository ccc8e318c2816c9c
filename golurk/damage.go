package golurk

import (
	"math"

	"github.com/go-logr/logr"
)

var damageLogger = func() logr.Logger {
	return internalLogger().WithName("damage")
}

// Damage calculates the damage a move should do to a defender of defenderType.
// This is just the move's power scaled by type effectiveness, rounded with pokeRound.
func Damage(move Move, defenderType string, chart TypeChart) uint {
	if move.Power == 0 {
		return 0
	}

	effectiveness := chart.Effectiveness(move.Type, defenderType)
	damage := pokeRound(float64(move.Power) * effectiveness)

	finalDamage := uint(damage)

	damageLogger().V(1).Info("final damage",
		"move", move.Name,
		"power", move.Power,
		"attackType", move.Type,
		"defenderType", defenderType,
		"effectiveness", effectiveness,
		"damage", finalDamage)

	return finalDamage
}

// recurringDamage is the hp lost to poison or burn at the end of a turn.
// It is a fraction of CURRENT hp so it compounds turn over turn,
// but at least 1 so a poisoned pokemon can't sit at low hp forever.
func recurringDamage(currentHp uint, fraction float64) uint {
	if currentHp == 0 {
		return 0
	}

	damage := uint(pokeRound(float64(currentHp) * fraction))
	return max(1, damage)
}

// pokeRound rounds to the nearest integer, rounding exact halves down
func pokeRound(x float64) float64 {
	intPart := math.Trunc(x)
	distance := math.Abs(x - intPart)

	if distance > 0.5 {
		// Would use something like Copysign but this will only deal with positive numbers
		return intPart + 1
	} else {
		return intPart
	}
}
