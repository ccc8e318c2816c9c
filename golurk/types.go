package golurk

import (
	"slices"

	"github.com/samber/lo"
)

// TypeChart is the lookup table for how effective an attack type is against a defending type.
//
// The table only records advantages and only in one direction: Water -> Fire being listed says nothing
// about Fire -> Water. Any pair that is not the same type and not listed is a disadvantage.
// A TypeChart is never modified after it is built so it is safe to share between battles.
type TypeChart struct {
	advantages map[string][]string
}

var defaultAdvantages = map[string][]string{
	TYPENAME_FIRE:     {TYPENAME_PLANT, TYPENAME_ICE},
	TYPENAME_WATER:    {TYPENAME_FIRE, TYPENAME_GROUND, TYPENAME_ROCK},
	TYPENAME_ELECTRIC: {TYPENAME_WATER, TYPENAME_FLYING},
	TYPENAME_PLANT:    {TYPENAME_WATER, TYPENAME_GROUND, TYPENAME_ROCK},
	TYPENAME_ICE:      {TYPENAME_PLANT, TYPENAME_GROUND, TYPENAME_FLYING},
	TYPENAME_GROUND:   {TYPENAME_FIRE, TYPENAME_ELECTRIC, TYPENAME_ROCK},
	TYPENAME_FLYING:   {TYPENAME_PLANT},
	TYPENAME_ROCK:     {TYPENAME_FIRE, TYPENAME_ICE, TYPENAME_FLYING},
	TYPENAME_PSYCHIC:  {TYPENAME_NORMAL},
}

// DefaultTypeChart returns the chart used by every battle unless a service is given another one
func DefaultTypeChart() TypeChart {
	return NewTypeChart(defaultAdvantages)
}

// NewTypeChart builds a chart from a map of attacking type -> defending types it has an advantage over.
// The map is copied.
func NewTypeChart(advantages map[string][]string) TypeChart {
	copied := make(map[string][]string, len(advantages))
	for attackType, defenders := range advantages {
		copied[attackType] = lo.Uniq(slices.Clone(defenders))
	}

	return TypeChart{advantages: copied}
}

// Effectiveness gives the multiplier of an attack of attackType against a defender of defenderType.
// The result is always one of ADVANTAGE, NEUTRAL or DISADVANTAGE.
func (c TypeChart) Effectiveness(attackType string, defenderType string) float64 {
	if attackType == defenderType {
		return NEUTRAL
	}

	if slices.Contains(c.advantages[attackType], defenderType) {
		return ADVANTAGE
	}

	return DISADVANTAGE
}

// HasAdvantage reports whether attackType is explicitly listed as strong against defenderType
func (c TypeChart) HasAdvantage(attackType string, defenderType string) bool {
	return c.Effectiveness(attackType, defenderType) == ADVANTAGE
}

// ValidType returns whether the name is one of the known types
func ValidType(name string) bool {
	return slices.Contains(TYPENAMES, name)
}
