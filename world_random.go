package server

import (
	"hash/fnv"
	"math"
	"math/rand"
)

// DeterministicSeedValue derives a stable subsystem seed from the root seed
// and a label, so adding a new consumer never shifts another subsystem's
// random sequence.
func DeterministicSeedValue(rootSeed uint64, label string) uint64 {
	hasher := fnv.New64a()
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(rootSeed >> (8 * i))
	}
	hasher.Write(buf[:])
	hasher.Write([]byte(label))
	return hasher.Sum64()
}

// subsystemRNG returns an independent deterministic source for the label.
func (w *World) subsystemRNG(label string) *rand.Rand {
	seed := DeterministicSeedValue(uint64(w.seed), label)
	return rand.New(rand.NewSource(int64(seed)))
}

func (w *World) randomFloat() float64 {
	if w != nil && w.rng != nil {
		return w.rng.Float64()
	}
	return rand.Float64()
}

func (w *World) randomAngle() float64 {
	return w.randomFloat() * 2 * math.Pi
}

func (w *World) randomRange(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + w.randomFloat()*(max-min)
}
