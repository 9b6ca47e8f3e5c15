package optimiser

import (
	"math/rand"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"
)

// NewPSO builds a Particle Swarm Optimisation backend (spec §4.2.3). Like the
// other swarm backends, it takes nIterations from opt_params and treats
// maxScore as an early-stopping threshold on the best score seen so far.
func NewPSO(dims Dims, nIterations int, maxScore *float64, log zerolog.Logger) Optimiser {
	popSize := populationSize(dims.NDims())
	run := func(objective func(Location) float64, low, high []float64) Location {
		n := len(low)
		rnd := rand.New(rand.NewSource(1))

		positions := make([]Location, popSize)
		velocities := make([]Location, popSize)
		personalBest := make([]Location, popSize)
		personalBestVal := make([]float64, popSize)

		for i := range positions {
			positions[i] = randomPoint(rnd, low, high)
			velocities[i] = make(Location, n)
			personalBest[i] = positions[i].Clone()
			personalBestVal[i] = posInf
		}

		globalBest := positions[0].Clone()
		globalBestVal := posInf

		const inertia, cognitive, social = 0.7, 1.5, 1.5

		for iter := 0; iter < nIterations; iter++ {
			vals := evaluateConcurrently(objective, positions)
			for i, v := range vals {
				if v < personalBestVal[i] {
					personalBestVal[i] = v
					personalBest[i] = positions[i].Clone()
				}
				if v < globalBestVal {
					globalBestVal = v
					globalBest = positions[i].Clone()
				}
			}

			if maxScore != nil && -globalBestVal >= *maxScore {
				break
			}

			for i := range positions {
				for d := 0; d < n; d++ {
					r1, r2 := rnd.Float64(), rnd.Float64()
					velocities[i][d] = inertia*velocities[i][d] +
						cognitive*r1*(personalBest[i][d]-positions[i][d]) +
						social*r2*(globalBest[d]-positions[i][d])
				}
				floats.Add(positions[i], velocities[i])
				clampInto(positions[i], low, high)
			}
		}

		return globalBest
	}
	return NewThreaded(run, dims, popSize, log)
}

const posInf = 1e308

func populationSize(nDims int) int {
	size := 4 * nDims
	if size < 10 {
		size = 10
	}
	return size
}

func randomPoint(rnd *rand.Rand, low, high []float64) Location {
	loc := make(Location, len(low))
	for i := range loc {
		loc[i] = low[i] + rnd.Float64()*(high[i]-low[i])
	}
	return loc
}

func clampInto(loc Location, low, high []float64) {
	for i := range loc {
		if loc[i] < low[i] {
			loc[i] = low[i]
		} else if loc[i] > high[i] {
			loc[i] = high[i]
		}
	}
}

// evaluateConcurrently calls objective on every point in parallel — real
// population-based libraries evaluate a generation's candidates concurrently,
// which is exactly the scenario spec §9 calls out as needing a FIFO registry
// slot: several particles can legitimately propose the same point before any
// of their scores has been delivered.
func evaluateConcurrently(objective func(Location) float64, points []Location) []float64 {
	vals := make([]float64, len(points))
	done := make(chan struct{}, len(points))
	for i, p := range points {
		go func(i int, p Location) {
			vals[i] = objective(p)
			done <- struct{}{}
		}(i, p)
	}
	for range points {
		<-done
	}
	return vals
}
