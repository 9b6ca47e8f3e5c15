// Package optimiser provides a uniform pull/push interface over grid
// enumeration and several derivative-free search algorithms (spec §4.2), plus
// the companion-execution-context machinery (package-level type threadedBackend
// in threaded.go) needed to drive algorithms that only expose a blocking
// optimize(objective, bounds) entry point.
package optimiser

import (
	"math"
	"sync"
)

// Location is a point in the optimiser's coordinate space: continuous
// dimensions first, then categorical dimensions encoded as the index of the
// chosen alternative (spec §3 Coordinate conventions; see DESIGN.md for why
// categorical dimensions are represented as a float index here rather than the
// heterogeneous value the original implementation carried).
type Location []float64

// Clone returns an independent copy of loc.
func (l Location) Clone() Location {
	c := make(Location, len(l))
	copy(c, l)
	return c
}

// Optimiser is the contract every backend is exposed through (spec §4.2).
// Maximisation is the public contract everywhere: implementations negate
// internally if the underlying algorithm minimises (opt_factor = -1).
type Optimiser interface {
	// NextLocation returns the next point to evaluate, in original
	// (user-visible) coordinates, or ok=false if the optimiser has produced
	// its last point.
	NextLocation() (loc Location, ok bool)

	// Update informs the optimiser of the score observed at a location
	// previously returned by NextLocation.
	Update(loc Location, score float64)

	// IsDone reports terminal state.
	IsDone() bool

	// BestLocation and BestScore report the best point observed so far, in
	// original coordinates. BestScore tracks whether any score has been seen
	// at all so the first reported score is always accepted, even if
	// negative (spec §9, the best-score-initialisation bug fix).
	BestLocation() Location
	BestScore() float64
}

// backend is what each search algorithm implements; base (below) adapts it
// into the public Optimiser, handling scale conversion and best tracking so
// individual backends only deal with their own search logic.
type backend interface {
	next() (Location, bool)
	update(loc Location, score float64)
	isDone() bool
}

// base implements scale conversion (spec §3 Coordinate conventions) and best
// tracking (spec §9) common to every backend.
type base struct {
	logScale    []bool // one entry per continuous dimension
	nContinuous int

	mu           sync.Mutex
	haveBest     bool
	bestScore    float64
	bestLocation Location

	backend backend
}

func newBase(logScale []bool, nContinuous int) base {
	return base{logScale: logScale, nContinuous: nContinuous}
}

// toOriginal converts a location in the optimiser's internal space (log-scaled
// dimensions stored as natural logarithms) to user-visible coordinates.
func (b *base) toOriginal(loc Location) Location {
	out := loc.Clone()
	for i := 0; i < b.nContinuous && i < len(out); i++ {
		if b.logScale[i] {
			out[i] = math.Exp(out[i])
		}
	}
	return out
}

// toInternal is toOriginal's inverse; conversions are never compounded since
// each is applied exactly once per boundary crossing.
func (b *base) toInternal(loc Location) Location {
	out := loc.Clone()
	for i := 0; i < b.nContinuous && i < len(out); i++ {
		if b.logScale[i] {
			out[i] = math.Log(out[i])
		}
	}
	return out
}

func (b *base) NextLocation() (Location, bool) {
	loc, ok := b.backend.next()
	if !ok {
		return nil, false
	}
	return b.toOriginal(loc), true
}

func (b *base) Update(loc Location, score float64) {
	b.recordIfBest(loc, score)
	b.backend.update(b.toInternal(loc), score)
}

func (b *base) IsDone() bool { return b.backend.isDone() }

func (b *base) recordIfBest(loc Location, score float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.haveBest || score > b.bestScore {
		b.haveBest = true
		b.bestScore = score
		b.bestLocation = loc.Clone()
	}
}

func (b *base) BestLocation() Location {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bestLocation.Clone()
}

func (b *base) BestScore() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bestScore
}

// newOptimiser wires a backend into the scale-conversion/best-tracking base
// and returns the public Optimiser.
func newOptimiser(backend backend, logScale []bool, nContinuous int) Optimiser {
	b := newBase(logScale, nContinuous)
	b.backend = backend
	return &b
}
