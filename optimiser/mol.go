package optimiser

import (
	"math"
	"math/rand"

	"github.com/rs/zerolog"
)

// NewMOL builds a Many-Optimising-Liaisons backend (spec §4.2.3): a
// population where, each generation, every individual samples a replacement
// from a Gaussian centred on a randomly chosen fitter "liaison" with a
// shrinking step size, rather than the explicit velocity or differential
// terms PSO/DE use.
func NewMOL(dims Dims, nIterations int, maxScore *float64, log zerolog.Logger) Optimiser {
	popSize := populationSize(dims.NDims())

	run := func(objective func(Location) float64, low, high []float64) Location {
		n := len(low)
		rnd := rand.New(rand.NewSource(3))

		pop := make([]Location, popSize)
		for i := range pop {
			pop[i] = randomPoint(rnd, low, high)
		}
		vals := evaluateConcurrently(objective, pop)

		best := pop[bestIndex(vals)].Clone()
		bestVal := vals[bestIndex(vals)]

		for iter := 0; iter < nIterations; iter++ {
			sigma := annealedSigma(low, high, iter, nIterations)

			candidates := make([]Location, popSize)
			for i := range pop {
				liaison := pickFitterLiaison(rnd, vals, i)
				cand := make(Location, n)
				for d := 0; d < n; d++ {
					cand[d] = pop[liaison][d] + rnd.NormFloat64()*sigma[d]
				}
				clampInto(cand, low, high)
				candidates[i] = cand
			}

			candVals := evaluateConcurrently(objective, candidates)
			for i := range pop {
				if candVals[i] <= vals[i] {
					pop[i] = candidates[i]
					vals[i] = candVals[i]
					if vals[i] < bestVal {
						bestVal = vals[i]
						best = pop[i].Clone()
					}
				}
			}

			if maxScore != nil && -bestVal >= *maxScore {
				break
			}
		}

		return best
	}
	return NewThreaded(run, dims, popSize, log)
}

// annealedSigma shrinks each dimension's sampling radius linearly from a
// tenth of its range down toward zero over the run, trading exploration for
// exploitation the way a liaison-based search narrows in on a consensus.
func annealedSigma(low, high []float64, iter, nIterations int) []float64 {
	frac := 1.0
	if nIterations > 0 {
		frac = 1.0 - float64(iter)/float64(nIterations)
	}
	sigma := make([]float64, len(low))
	for d := range sigma {
		sigma[d] = math.Max(frac, 0.05) * 0.1 * (high[d] - low[d])
	}
	return sigma
}

func pickFitterLiaison(rnd *rand.Rand, vals []float64, self int) int {
	for tries := 0; tries < len(vals); tries++ {
		j := rnd.Intn(len(vals))
		if j != self && vals[j] <= vals[self] {
			return j
		}
	}
	return self
}
