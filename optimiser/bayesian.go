package optimiser

import (
	"math"
	"math/rand"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"
)

// NewBayesian builds a Bayesian-optimisation backend: a Gaussian-process
// surrogate (squared-exponential kernel, Cholesky-solved per spec's
// continuous-only restriction) fit to every observed (location, score) pair,
// maximising Expected Improvement over a random candidate pool to pick the
// next proposal. Unlike the swarm backends, the surrogate is exact only over
// ordered, non-categorical dimensions, so the factory rejects a categorical
// variable list before constructing this backend at all (spec §4.2.3:
// "incompatible with categorical axes").
func NewBayesian(dims Dims, nIterations int, maxScore *float64, log zerolog.Logger) Optimiser {
	run := func(objective func(Location) float64, low, high []float64) Location {
		rnd := rand.New(rand.NewSource(6))

		const initialSamples = 5
		var xs []Location
		var ys []float64

		for i := 0; i < initialSamples; i++ {
			x := randomPoint(rnd, low, high)
			xs = append(xs, x)
			ys = append(ys, objective(x))
		}

		best := xs[bestIndex(ys)].Clone()
		bestVal := ys[bestIndex(ys)]

		const candidatePool = 200
		lengthScale := gpLengthScale(low, high)

		for iter := initialSamples; iter < nIterations; iter++ {
			gp := fitGP(xs, ys, lengthScale)

			var nextX Location
			bestEI := math.Inf(-1)
			for c := 0; c < candidatePool; c++ {
				cand := randomPoint(rnd, low, high)
				mean, variance := gp.predict(cand)
				ei := expectedImprovement(mean, variance, bestVal)
				if ei > bestEI {
					bestEI = ei
					nextX = cand
				}
			}
			if nextX == nil {
				nextX = randomPoint(rnd, low, high)
			}

			val := objective(nextX)
			xs = append(xs, nextX)
			ys = append(ys, val)
			if val < bestVal {
				bestVal = val
				best = nextX.Clone()
			}

			if maxScore != nil && -bestVal >= *maxScore {
				break
			}
		}

		return best
	}
	return NewThreaded(run, dims, 1, log)
}

func gpLengthScale(low, high []float64) []float64 {
	ls := make([]float64, len(low))
	for i := range ls {
		ls[i] = (high[i] - low[i]) / 4
		if ls[i] <= 0 {
			ls[i] = 1
		}
	}
	return ls
}

// expectedImprovement returns the closed-form EI for a Gaussian posterior
// against the best (minimised) value observed so far.
func expectedImprovement(mean, variance, bestVal float64) float64 {
	if variance <= 0 {
		return 0
	}
	sigma := math.Sqrt(variance)
	improvement := bestVal - mean
	z := improvement / sigma
	return improvement*normalCDF(z) + sigma*normalPDF(z)
}

func normalPDF(z float64) float64 {
	return math.Exp(-0.5*z*z) / math.Sqrt(2*math.Pi)
}

func normalCDF(z float64) float64 {
	return 0.5 * (1 + math.Erf(z/math.Sqrt2))
}

// gaussianProcess is a zero-mean GP with a squared-exponential kernel,
// fit by Cholesky-solving the observation covariance (gonum/mat).
type gaussianProcess struct {
	xs          []Location
	alpha       []float64
	chol        *mat.Cholesky
	lengthScale []float64
	const_      float64
}

const gpNoise = 1e-6
const gpSignalVariance = 1.0

func fitGP(xs []Location, ys []float64, lengthScale []float64) *gaussianProcess {
	n := len(xs)
	k := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := kernel(xs[i], xs[j], lengthScale)
			if i == j {
				v += gpNoise
			}
			k.SetSym(i, j, v)
		}
	}

	var chol mat.Cholesky
	ok := chol.Factorize(k)
	alpha := make([]float64, n)
	yVec := mat.NewVecDense(n, ys)
	if ok {
		var alphaVec mat.VecDense
		_ = chol.SolveVecTo(&alphaVec, yVec)
		for i := 0; i < n; i++ {
			alpha[i] = alphaVec.AtVec(i)
		}
	} else {
		copy(alpha, ys)
	}

	return &gaussianProcess{xs: xs, alpha: alpha, lengthScale: lengthScale}
}

func (gp *gaussianProcess) predict(x Location) (mean, variance float64) {
	n := len(gp.xs)
	kStar := make([]float64, n)
	for i, xi := range gp.xs {
		kStar[i] = kernel(x, xi, gp.lengthScale)
	}
	for i := range kStar {
		mean += kStar[i] * gp.alpha[i]
	}
	// A conservative variance proxy: full signal variance minus a
	// similarity-weighted reduction, avoiding a second Cholesky solve per
	// candidate while still shrinking near observed points.
	similarity := 0.0
	for _, v := range kStar {
		similarity += v * v
	}
	variance = gpSignalVariance - similarity/float64(n+1)
	if variance < 1e-9 {
		variance = 1e-9
	}
	return mean, variance
}

func kernel(a, b Location, lengthScale []float64) float64 {
	sum := 0.0
	for i := range a {
		d := (a[i] - b[i]) / lengthScale[i]
		sum += d * d
	}
	return gpSignalVariance * math.Exp(-0.5*sum)
}
