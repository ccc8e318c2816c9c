package golurk

import (
	"math/rand/v2"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

var builderLogger = func() *zerolog.Logger {
	logger := log.With().Str("location", "pokemon-builder").Logger()
	return &logger
}

type PokemonBuilder struct {
	base     BasePokemon
	nickname string
	maxHp    uint
	moves    []Move
	rng      *rand.Rand
}

func NewPokeBuilder(base BasePokemon, rng *rand.Rand) *PokemonBuilder {
	return &PokemonBuilder{
		base:     base,
		nickname: base.Name,
		maxHp:    base.Hp,
		moves:    make([]Move, 0, MAX_MOVES),
		rng:      rng,
	}
}

func (pb *PokemonBuilder) SetNickname(nickname string) *PokemonBuilder {
	if nickname != "" {
		pb.nickname = nickname
	}

	return pb
}

func (pb *PokemonBuilder) SetMaxHp(hp uint) *PokemonBuilder {
	pb.maxHp = hp

	builderLogger().Debug().Uint("HP", hp).Msg("Setting max hp")

	return pb
}

func (pb *PokemonBuilder) SetMoves(moves ...Move) *PokemonBuilder {
	pb.moves = append(pb.moves[:0], moves...)
	return pb
}

// SetRandomMoves picks up to four different moves from possibleMoves
func (pb *PokemonBuilder) SetRandomMoves(possibleMoves []Move) *PokemonBuilder {
	if len(possibleMoves) == 0 {
		builderLogger().Warn().Msg("This Pokemon was given no available moves to randomize with!")
		return pb
	}

	if pb.rng == nil {
		pb.rng = CreateRNG(nil)
	}

	picks := pb.rng.Perm(len(possibleMoves))[:min(MAX_MOVES, len(possibleMoves))]
	moves := lo.Map(picks, func(i int, _ int) Move {
		return possibleMoves[i]
	})

	moveNames := lo.Map(moves, func(move Move, _ int) string {
		return move.Name
	})

	builderLogger().Debug().Strs("Moves", moveNames).Msg("Setting Random Moves")

	pb.moves = moves

	return pb
}

func (pb *PokemonBuilder) Build() (Pokemon, error) {
	builderLogger().Debug().Str("species", pb.base.Name).Str("nickname", pb.nickname).Msg("Building pokemon")
	return NewPokemon(pb.nickname, pb.base.Name, pb.base.Type, pb.maxHp, pb.moves)
}
