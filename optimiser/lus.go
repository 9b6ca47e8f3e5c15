package optimiser

import (
	"math/rand"

	"github.com/rs/zerolog"
)

// NewLUS builds a Local-Unimodal-Sampling backend (spec §4.2.3): a single
// point walks the space, sampling a candidate from a shrinking uniform
// window around the current best and only moving when the candidate
// improves on it. Unlike the population backends this runs one proposal at a
// time, which exercises the companion registry's single-in-flight path
// rather than its FIFO-promotion path.
func NewLUS(dims Dims, nIterations int, maxScore *float64, log zerolog.Logger) Optimiser {
	run := func(objective func(Location) float64, low, high []float64) Location {
		n := len(low)
		rnd := rand.New(rand.NewSource(4))

		current := randomPoint(rnd, low, high)
		currentVal := objective(current)

		const shrinkFactor = 0.95
		window := make([]float64, n)
		for d := range window {
			window[d] = high[d] - low[d]
		}

		for iter := 0; iter < nIterations; iter++ {
			candidate := make(Location, n)
			for d := 0; d < n; d++ {
				delta := (rnd.Float64()*2 - 1) * window[d] / 2
				candidate[d] = current[d] + delta
			}
			clampInto(candidate, low, high)

			val := objective(candidate)
			if val < currentVal {
				current = candidate
				currentVal = val
			} else {
				for d := range window {
					window[d] *= shrinkFactor
				}
			}

			if maxScore != nil && -currentVal >= *maxScore {
				break
			}
		}

		return current
	}
	return NewThreaded(run, dims, 1, log)
}
