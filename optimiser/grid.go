package optimiser

// gridBackend enumerates the cross product of per-dimension grids (spec
// §4.2.1). It never blocks: NextLocation/Update only advance an in-memory
// mixed-radix counter, so it needs none of the companion-execution-context
// machinery the other backends share.
type gridBackend struct {
	dims    [][]float64 // per-dimension sample values, internal space
	locID   int
	nPoints int
}

// NewGridSearch builds a grid-search Optimiser. gridRes continuous samples are
// taken between each continuous dimension's (possibly log-scaled) bounds;
// each categorical dimension contributes one grid point per alternative.
// Dimension 0 varies fastest (spec §8 testable property).
func NewGridSearch(dims Dims, gridRes int) Optimiser {
	low, high := dims.InternalBounds()
	gb := &gridBackend{}

	nContinuous := len(dims.Low)
	for i := 0; i < nContinuous; i++ {
		gb.dims = append(gb.dims, linspace(low[i], high[i], gridRes))
	}
	for _, size := range dims.CatSizes {
		vals := make([]float64, size)
		for i := range vals {
			vals[i] = float64(i)
		}
		gb.dims = append(gb.dims, vals)
	}

	nPoints := 1
	for _, d := range gb.dims {
		nPoints *= len(d)
	}
	gb.nPoints = nPoints

	return newOptimiser(gb, dims.LogScale, nContinuous)
}

func linspace(low, high float64, n int) []float64 {
	if n <= 1 {
		return []float64{low}
	}
	out := make([]float64, n)
	step := (high - low) / float64(n-1)
	for i := range out {
		out[i] = low + step*float64(i)
	}
	return out
}

func (g *gridBackend) next() (Location, bool) {
	if g.locID >= g.nPoints {
		return nil, false
	}
	loc := make(Location, len(g.dims))
	rest := g.locID
	for i, d := range g.dims {
		dimID := rest % len(d)
		rest /= len(d)
		loc[i] = d[dimID]
	}
	g.locID++
	return loc, true
}

func (g *gridBackend) update(Location, float64) {
	// Grid search advances its counter in next(); there is nothing to learn
	// from a score.
}

func (g *gridBackend) isDone() bool { return g.locID >= g.nPoints }
