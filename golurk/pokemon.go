package golurk

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
)

// BasePokemon is the species information of a Pokemon, as if it were a PokeDex entry.
type BasePokemon struct {
	PokedexNumber uint
	Name          string
	Type          string
	Hp            uint
}

// Pokemon is a single creature on a player's team, including everything that only matters during a battle.
// A Pokemon is owned by exactly one Player and is only ever changed through that player's battle.
type Pokemon struct {
	Nickname string
	Species  string
	Type     string
	Hp       uint
	MaxHp    uint
	Moves    []Move

	Status     int
	SleepCount int
	// Set by the paralysis roll at the end of the pokemon's own turn.
	// Unparalyzed pokemon always have this set.
	CanAttackThisTurn bool

	// cached Hp > 0
	alive bool
}

// NewPokemon validates and creates a healthy Pokemon at full hp
func NewPokemon(nickname string, species string, pokemonType string, maxHp uint, moves []Move) (Pokemon, error) {
	if strings.TrimSpace(nickname) == "" {
		return Pokemon{}, validationError(ErrInvalidPokemon, "pokemon has no name")
	}

	if !ValidType(pokemonType) {
		return Pokemon{}, validationError(ErrInvalidPokemon, "%s has unknown type %q", nickname, pokemonType)
	}

	if maxHp == 0 {
		return Pokemon{}, validationError(ErrInvalidPokemon, "%s has no hp", nickname)
	}

	if len(moves) == 0 || len(moves) > MAX_MOVES {
		return Pokemon{}, validationError(ErrInvalidPokemon, "%s has %d moves, must have between 1 and %d", nickname, len(moves), MAX_MOVES)
	}

	for _, move := range moves {
		if move.IsNil() {
			return Pokemon{}, validationError(ErrInvalidPokemon, "%s has an empty move slot", nickname)
		}
	}

	return Pokemon{
		Nickname:          nickname,
		Species:           species,
		Type:              pokemonType,
		Hp:                maxHp,
		MaxHp:             maxHp,
		Moves:             slices.Clone(moves),
		Status:            STATUS_NONE,
		CanAttackThisTurn: true,
		alive:             true,
	}, nil
}

func (p Pokemon) Name() string {
	return p.Nickname
}

func (p Pokemon) Alive() bool {
	return p.alive
}

func (p Pokemon) IsNil() bool {
	return p.Nickname == ""
}

// CanAct returns whether the pokemon is able to attack this turn: it's alive, not asleep and not held back by paralysis
func (p Pokemon) CanAct() bool {
	if !p.alive {
		return false
	}

	if p.Status == STATUS_SLEEP && p.SleepCount > 0 {
		return false
	}

	return p.CanAttackThisTurn
}

// GetMove finds one of the pokemon's moves by name, ignoring case
func (p Pokemon) GetMove(name string) (Move, bool) {
	for _, move := range p.Moves {
		if strings.EqualFold(move.Name, name) {
			return move, true
		}
	}

	return Move{}, false
}

// ReceiveDamage lowers hp, stopping at 0. When the pokemon faints the returned message announces it and the bool is true.
func (p *Pokemon) ReceiveDamage(dmg uint) (string, bool) {
	if !p.alive {
		return "", false
	}

	oldHp := p.Hp
	p.Hp = oldHp - min(dmg, oldHp)

	internalLogger().WithName("pokemon").V(1).Info("pkm damage", "pokemon_name", p.Name(), "dmg", dmg, "oldHealth", oldHp, "newHealth", p.Hp)

	if p.Hp == 0 {
		p.alive = false
		// fainting wipes status, a revived pokemon comes back clean
		p.Status = STATUS_NONE
		p.SleepCount = 0
		p.CanAttackThisTurn = true

		return fmt.Sprintf("%s fainted!", p.Name()), true
	}

	return "", false
}

// Heal restores hp up to MaxHp and returns how much was actually healed. Fainted pokemon can't be healed, only revived.
func (p *Pokemon) Heal(heal uint) uint {
	if !p.alive {
		return 0
	}

	healed := min(heal, p.MaxHp-p.Hp)
	p.Hp += healed

	return healed
}

// Revive brings a fainted pokemon back with a fraction of its max hp (at least 1). Returns the hp restored.
func (p *Pokemon) Revive(fraction float64) uint {
	if p.alive {
		return 0
	}

	restored := uint(math.Ceil(float64(p.MaxHp) * fraction))
	restored = min(max(restored, 1), p.MaxHp)

	p.Hp = restored
	p.alive = true
	p.CanAttackThisTurn = true

	return restored
}

var ailmentApplicationMessages = map[int]string{
	STATUS_SLEEP:  "%s has fallen asleep!",
	STATUS_PARA:   "%s has been paralyzed!",
	STATUS_POISON: "%s has been poisoned!",
	STATUS_BURN:   "%s has been burned!",
}

// ApplyAilment tries to give the pokemon a status. Only one status can be active at a time so
// this does nothing if the pokemon already has one. The bool is true when the status was applied.
func (p *Pokemon) ApplyAilment(ailment int, rng *rand.Rand) (string, bool) {
	if !p.alive || ailment == STATUS_NONE {
		return "", false
	}

	if p.Status != STATUS_NONE {
		internalLogger().WithName("ailment").V(1).Info("pokemon already has a status", "pokemon_name", p.Name(), "status", p.Status, "ailment", ailment)
		return fmt.Sprintf("%s is already %s!", p.Name(), STATUS_DISPLAY_NAMES[p.Status]), false
	}

	switch ailment {
	case STATUS_SLEEP:
		p.SleepCount = rng.IntN(MAX_SLEEP_TURNS-MIN_SLEEP_TURNS+1) + MIN_SLEEP_TURNS
		internalLogger().WithName("ailment").Info("Pokemon fell asleep", "pokemon_name", p.Name(), "sleep_turns", p.SleepCount)
	case STATUS_PARA:
		p.rollParalysis(rng)
	case STATUS_POISON, STATUS_BURN:
	default:
		return "", false
	}

	p.Status = ailment

	return fmt.Sprintf(ailmentApplicationMessages[ailment], p.Name()), true
}

// CureStatus removes any status. Returns false if there was nothing to cure.
func (p *Pokemon) CureStatus() bool {
	if p.Status == STATUS_NONE {
		return false
	}

	p.Status = STATUS_NONE
	p.SleepCount = 0
	p.CanAttackThisTurn = true

	return true
}

// EndOfTurnTick runs the status lifecycle after the pokemon's own turn:
// sleep counts down, poison and burn hurt, and paralysis decides whether the next turn is skipped.
func (p *Pokemon) EndOfTurnTick(rng *rand.Rand) []string {
	if !p.alive {
		return nil
	}

	messages := make([]string, 0)

	switch p.Status {
	case STATUS_SLEEP:
		p.SleepCount = max(0, p.SleepCount-1)
		if p.SleepCount == 0 {
			p.Status = STATUS_NONE
			messages = append(messages, fmt.Sprintf("%s woke up!", p.Name()))
		} else {
			messages = append(messages, fmt.Sprintf("%s is fast asleep.", p.Name()))
		}
	case STATUS_POISON:
		messages = append(messages, p.recurringDamage(POISON_FRACTION, "%s is hurt by poison!")...)
	case STATUS_BURN:
		messages = append(messages, p.recurringDamage(BURN_FRACTION, "%s is hurt by its burn!")...)
	case STATUS_PARA:
		p.rollParalysis(rng)
		if !p.CanAttackThisTurn {
			messages = append(messages, fmt.Sprintf("%s is paralyzed! It may not be able to move.", p.Name()))
		}
	}

	internalLogger().WithName("end_of_turn").V(1).Info("status tick", "pokemon_name", p.Name(), "status", p.Status, "hp", p.Hp, "sleep_count", p.SleepCount)

	return messages
}

func (p *Pokemon) recurringDamage(fraction float64, messageFmt string) []string {
	damage := recurringDamage(p.Hp, fraction)
	messages := []string{fmt.Sprintf(messageFmt, p.Name())}

	if faintMessage, fainted := p.ReceiveDamage(damage); fainted {
		messages = append(messages, faintMessage)
	}

	return messages
}

func (p *Pokemon) rollParalysis(rng *rand.Rand) {
	paraCheck := rng.Float64()
	p.CanAttackThisTurn = paraCheck >= PARA_SKIP_CHANCE

	internalLogger().WithName("para").V(1).Info("para roll", "pokemon_name", p.Name(), "para_check", paraCheck, "para_chance", PARA_SKIP_CHANCE, "can_attack", p.CanAttackThisTurn)
}

// Clone copies the pokemon, including its move slice
func (p Pokemon) Clone() Pokemon {
	newPokemon := p
	newPokemon.Moves = slices.Clone(p.Moves)

	return newPokemon
}
