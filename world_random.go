package main

import (
	"hash/fnv"
	"math"
	"math/rand"
)

// newDeterministicRNG derives an independent generator from the world seed
// and a subsystem label so one subsystem's draws never perturb another's.
func newDeterministicRNG(seed, label string) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(seed))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(label))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

func (w *World) subsystemRNG(label string) *rand.Rand {
	return newDeterministicRNG(w.seed, label)
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

func (w *World) randomUnitVector() vec2 {
	angle := w.randomAngle()
	return vec2{X: math.Cos(angle), Y: math.Sin(angle)}
}

func (w *World) randomIntervalMs(min, max int64) int64 {
	if max <= min {
		return min
	}
	return min + int64(w.randomFloat()*float64(max-min))
}
