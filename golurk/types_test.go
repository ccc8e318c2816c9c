package golurk

import (
	"testing"

	"pgregory.net/rapid"
)

func TestEffectivenessRange(t *testing.T) {
	chart := DefaultTypeChart()

	rapid.Check(t, func(t *rapid.T) {
		attackType := rapid.OneOf(rapid.SampledFrom(TYPENAMES), rapid.String()).Draw(t, "attackType")
		defenderType := rapid.OneOf(rapid.SampledFrom(TYPENAMES), rapid.String()).Draw(t, "defenderType")

		effectiveness := chart.Effectiveness(attackType, defenderType)
		if effectiveness != ADVANTAGE && effectiveness != NEUTRAL && effectiveness != DISADVANTAGE {
			t.Fatalf("%s -> %s gave %f", attackType, defenderType, effectiveness)
		}

		if chart.Effectiveness(attackType, attackType) != NEUTRAL {
			t.Fatalf("%s against itself should be neutral", attackType)
		}
	})
}

func TestEffectivenessTable(t *testing.T) {
	chart := DefaultTypeChart()

	cases := []struct {
		attack   string
		defender string
		expected float64
	}{
		{TYPENAME_WATER, TYPENAME_FIRE, ADVANTAGE},
		{TYPENAME_FIRE, TYPENAME_WATER, DISADVANTAGE},
		{TYPENAME_FIRE, TYPENAME_PLANT, ADVANTAGE},
		{TYPENAME_PLANT, TYPENAME_FIRE, DISADVANTAGE},
		{TYPENAME_PSYCHIC, TYPENAME_NORMAL, ADVANTAGE},
		{TYPENAME_NORMAL, TYPENAME_PSYCHIC, DISADVANTAGE},
		{TYPENAME_ELECTRIC, TYPENAME_ELECTRIC, NEUTRAL},
		// unlisted pairs are not neutral
		{TYPENAME_NORMAL, TYPENAME_ROCK, DISADVANTAGE},
	}

	for _, c := range cases {
		if got := chart.Effectiveness(c.attack, c.defender); got != c.expected {
			t.Fatalf("%s -> %s: expected %f, got %f", c.attack, c.defender, c.expected, got)
		}
	}
}

func TestCustomChartIsCopied(t *testing.T) {
	advantages := map[string][]string{TYPENAME_NORMAL: {TYPENAME_ROCK}}
	chart := NewTypeChart(advantages)

	advantages[TYPENAME_NORMAL][0] = TYPENAME_ICE

	if !chart.HasAdvantage(TYPENAME_NORMAL, TYPENAME_ROCK) {
		t.Fatalf("changing the source map changed the chart")
	}

	if chart.HasAdvantage(TYPENAME_NORMAL, TYPENAME_ICE) {
		t.Fatalf("chart picked up a change to the source map")
	}
}
