// Package randsrc provides the single seeded randomness source threaded
// through every Parameter.Randomize call in the console.
package randsrc

import (
	"math/rand"

	xrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Source is a seeded pseudo-random generator. A Source must never be
// copied; share a pointer to it instead, the way the console shares one
// Source across every Parameter in its tree.
type Source struct {
	rng       *rand.Rand
	normalSrc xrand.Source
}

// New creates a Source seeded deterministically. The same seed always
// produces the same sequence of draws across process restarts.
func New(seed int64) *Source {
	return &Source{
		rng:       rand.New(rand.NewSource(seed)),
		normalSrc: xrand.NewSource(uint64(seed)),
	}
}

// Reseed replaces the underlying sequence, starting fresh from seed.
func (s *Source) Reseed(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
	s.normalSrc = xrand.NewSource(uint64(seed))
}

// Float64 returns a uniform draw in [0, 1).
func (s *Source) Float64() float64 {
	return s.rng.Float64()
}

// UniformFloat returns a uniform draw in [min, max).
func (s *Source) UniformFloat(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + s.rng.Float64()*(max-min)
}

// UniformInt returns a uniform draw in [min, max] inclusive. If min == max
// it returns min without consuming a draw, matching the console's
// convention of skipping degenerate integer ranges.
func (s *Source) UniformInt(min, max int) int {
	if min == max {
		return min
	}
	lo, hi := min, max
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo + s.rng.Intn(hi-lo+1)
}

// UniformBool returns a uniform coin flip.
func (s *Source) UniformBool() bool {
	return s.rng.Intn(2) == 1
}

// UniformChoice returns a uniform index into [0, n).
func (s *Source) UniformChoice(n int) int {
	if n <= 0 {
		return 0
	}
	return s.rng.Intn(n)
}

// Normal draws from a Normal(mu, sigma) distribution clipped to
// [min, max]. Backed by gonum's distuv so the shape of the draw (not
// just its clipping) matches a real Gaussian rather than a hand-rolled
// Box-Muller approximation.
func (s *Source) Normal(mu, sigma, min, max float64) float64 {
	if sigma <= 0 {
		return clip(mu, min, max)
	}
	d := distuv.Normal{Mu: mu, Sigma: sigma, Src: s.normalSrc}
	return clip(d.Rand(), min, max)
}

// Shuffle permutes n elements in place using the Fisher-Yates swap
// function, the same contract as sort.Interface-based shuffles.
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	s.rng.Shuffle(n, swap)
}

func clip(v, min, max float64) float64 {
	if max < min {
		min, max = max, min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
