package optimiser

import (
	"math"
	"math/rand"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/optimize"
)

// NewPatternSearch builds a Pattern Search backend around
// gonum.org/v1/gonum/optimize's Nelder-Mead simplex method. optimize.Minimize
// is itself a blocking optimize(objective, x0) -> best call, so it is wired
// in directly as the companion execution context's library rather than
// reimplemented (spec §4.2.2).
func NewPatternSearch(dims Dims, nIterations int, maxScore *float64, log zerolog.Logger) Optimiser {
	run := func(objective func(Location) float64, low, high []float64) Location {
		rnd := rand.New(rand.NewSource(5))
		x0 := []float64(randomPoint(rnd, low, high))

		penalised := func(x []float64) float64 {
			penalty := 0.0
			clamped := make([]float64, len(x))
			for i, v := range x {
				clamped[i] = v
				if v < low[i] {
					penalty += (low[i] - v) * (low[i] - v)
					clamped[i] = low[i]
				} else if v > high[i] {
					penalty += (v - high[i]) * (v - high[i])
					clamped[i] = high[i]
				}
			}
			return objective(clamped) + penalty
		}

		problem := optimize.Problem{Func: penalised}

		settings := &optimize.Settings{}
		if nIterations > 0 {
			settings.MajorIterations = nIterations
		}
		if maxScore != nil {
			target := -*maxScore
			settings.FuncEvaluations = 0
			settings.Converger = &optimize.FunctionConverge{
				Absolute:   math.Abs(target) * 1e-6,
				Iterations: nIterations,
			}
		}

		result, err := optimize.Minimize(problem, x0, settings, &optimize.NelderMead{})
		if err != nil && result == nil {
			return Location(x0)
		}
		clampInto(result.X, low, high)
		return result.X
	}
	return NewThreaded(run, dims, 1, log)
}
