package sim

import (
	"math/rand/v2"
	"time"
)

// Rand is the randomness capability the simulation draws from.
// Float64 must return independent uniform values in [0, 1).
type Rand interface {
	Float64() float64
}

// NewRand returns a PCG-backed Rand. A zero seed seeds from the clock.
func NewRand(seed uint64) Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
