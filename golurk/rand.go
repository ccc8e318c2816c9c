package golurk

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

//go:generate go tool mockgen -destination=./mocks/rand_source_mock.go -package=mocks . RandSource

// RandSource is where a battle gets its randomness from. It is the same as rand.Source
// and exists so tests can mock exact draws.
type RandSource interface {
	Uint64() uint64
}

var _ rand.Source = RandSource(nil)

// NewRandomSource creates a PCG source seeded from crypto/rand
func NewRandomSource() *rand.PCG {
	var randBytes [16]byte
	_, err := cryptoRand.Read(randBytes[:])
	if err != nil {
		// Is this smart? Probably not. However in this case I really have no clue how it could error
		panic(err)
	}

	return rand.NewPCG(binary.LittleEndian.Uint64(randBytes[0:8]), binary.LittleEndian.Uint64(randBytes[8:]))
}

// NewSeededSource creates a PCG source from a fixed seed, for reproducible battles
func NewSeededSource(seed uint64) *rand.PCG {
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

func CreateRNG(source rand.Source) *rand.Rand {
	if source == nil {
		source = NewRandomSource()
	}

	return rand.New(source)
}
