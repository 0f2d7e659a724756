// internal/engine/random.go
package engine

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// Rand is the randomness capability injected into every component that
// needs jitter or stochastic outcomes. Tests substitute fixed-sequence
// sources to make results reproducible.
type Rand interface {
	Float64() float64
}

// lockedRand serializes draws from a shared *math/rand.Rand, which is
// not goroutine-safe on its own. The server hands one source to both
// the generator and the simulator while gin serves requests
// concurrently, so the production capability must tolerate that.
type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rnd.Float64()
}

// NewRand returns a time-seeded source safe for concurrent use.
func NewRand() Rand {
	return &lockedRand{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// uniform draws from [min, max).
func uniform(r Rand, min, max float64) float64 {
	return r.Float64()*(max-min) + min
}

// uniformInt draws an integer from [min, max).
func uniformInt(r Rand, min, max int) int {
	return int(math.Floor(uniform(r, float64(min), float64(max))))
}

// normal draws from an approximately normal distribution via Box-Muller.
func normal(r Rand, mean, stdev float64) float64 {
	u1 := r.Float64()
	u2 := r.Float64()
	z0 := math.Sqrt(-2.0*math.Log(u1)) * math.Cos(2.0*math.Pi*u2)
	return z0*stdev + mean
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// roundHalfUp rounds to the nearest integer, halves away from zero.
func roundHalfUp(v float64) int {
	return int(math.Round(v))
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
