// Package randutil derives reproducible random streams from a single seed.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed. The same seed
// always shuffles decks identically.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Resolve returns seed unless it is zero, in which case a seed is derived
// from now. Callers log the resolved seed so a session can be replayed.
func Resolve(seed int64, now time.Time) int64 {
	if seed != 0 {
		return seed
	}
	if s := now.UnixNano(); s != 0 {
		return s
	}
	return 1
}

// Streams returns n independent generators derived from seed, one per worker
func Streams(seed int64, n int) []*rand.Rand {
	streams := make([]*rand.Rand, n)
	for i := range streams {
		streams[i] = New(int64(mix(uint64(seed) + uint64(i+1)*goldenRatio64)))
	}
	return streams
}

// mix is the splitmix64 finaliser
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
