package core

import (
	"math"
	"math/rand/v2"
)

// splitmix64 is the finalizer used to derive independent per-trial seeds
// from a parent seed. Trials must never share a random stream, and the
// derivation must not depend on worker scheduling.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(splitmix64(seed), splitmix64(seed^0x9e3779b97f4a7c15)))
}

// trialSeed derives the seed for one trial of one grid cell.
func trialSeed(parent uint64, x int, p float64, trial int) uint64 {
	h := splitmix64(parent ^ uint64(x))
	h = splitmix64(h ^ math.Float64bits(p))
	return splitmix64(h ^ uint64(trial))
}
