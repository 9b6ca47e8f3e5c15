package optimiser

import "github.com/rs/zerolog"

// BlockingOptimize is the shape every wrapped library or hand-rolled search
// algorithm exposes: a synchronous call that repeatedly invokes objective(x)
// and eventually returns its best-known location. gonum/optimize.Minimize
// (package optimiser's patternsearch.go) and this package's own PSO/DE/MOL/LUS/
// Bayesian implementations all have this shape — it is exactly the "optimize
// (objective_fn, bounds) -> best" library entry point spec §4.2.2 describes.
type BlockingOptimize func(objective func(Location) float64, low, high []float64) Location

// NewThreaded runs a BlockingOptimize on a companion execution context (its
// own goroutine) and exposes it through the pull/push Optimiser interface
// (spec §4.2.2). objective, as seen by run, already carries the sign flip that
// makes maximisation the public contract: run's caller always minimises.
func NewThreaded(run BlockingOptimize, dims Dims, bufSize int, log zerolog.Logger) Optimiser {
	comp := newCompanion(bufSize, log)
	low, high := dims.InternalBounds()

	go func() {
		defer comp.finish()
		objective := func(x Location) float64 {
			// opt_factor = -1: the library minimises, the public contract maximises.
			return -comp.propose(x)
		}
		run(objective, low, high)
	}()

	return newOptimiser(&threadedBackend{comp: comp}, dims.LogScale, len(dims.Low))
}

type threadedBackend struct {
	comp *companion
}

func (t *threadedBackend) next() (Location, bool) { return t.comp.nextLocation() }

func (t *threadedBackend) update(loc Location, score float64) { t.comp.deliver(loc, score) }

func (t *threadedBackend) isDone() bool { return t.comp.isFinished() }
