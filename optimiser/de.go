package optimiser

import (
	"math/rand"

	"github.com/rs/zerolog"
)

// NewDE builds a Differential Evolution backend (spec §4.2.3): classic
// DE/rand/1/bin with a fixed population evaluated concurrently each
// generation, mirroring PSO's use of the shared companion registry.
func NewDE(dims Dims, nIterations int, maxScore *float64, log zerolog.Logger) Optimiser {
	popSize := populationSize(dims.NDims())
	const crossoverRate, differentialWeight = 0.9, 0.8

	run := func(objective func(Location) float64, low, high []float64) Location {
		n := len(low)
		rnd := rand.New(rand.NewSource(2))

		pop := make([]Location, popSize)
		for i := range pop {
			pop[i] = randomPoint(rnd, low, high)
		}
		vals := evaluateConcurrently(objective, pop)

		best := pop[bestIndex(vals)].Clone()
		bestVal := vals[bestIndex(vals)]

		for iter := 0; iter < nIterations; iter++ {
			trials := make([]Location, popSize)
			for i := range pop {
				a, b, c := pickThreeDistinct(rnd, popSize, i)
				trial := pop[i].Clone()
				jRand := rnd.Intn(n)
				for d := 0; d < n; d++ {
					if rnd.Float64() < crossoverRate || d == jRand {
						trial[d] = pop[a][d] + differentialWeight*(pop[b][d]-pop[c][d])
					}
				}
				clampInto(trial, low, high)
				trials[i] = trial
			}

			trialVals := evaluateConcurrently(objective, trials)
			for i := range pop {
				if trialVals[i] <= vals[i] {
					pop[i] = trials[i]
					vals[i] = trialVals[i]
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

func bestIndex(vals []float64) int {
	idx := 0
	for i, v := range vals {
		if v < vals[idx] {
			idx = i
		}
	}
	return idx
}

func pickThreeDistinct(rnd *rand.Rand, n, exclude int) (int, int, int) {
	pick := func(taken map[int]bool) int {
		for {
			i := rnd.Intn(n)
			if i != exclude && !taken[i] {
				return i
			}
		}
	}
	taken := map[int]bool{exclude: true}
	a := pick(taken)
	taken[a] = true
	b := pick(taken)
	taken[b] = true
	c := pick(taken)
	return a, b, c
}
