package optimiser

import "math"

// Dims describes the search space handed to every backend: continuous
// dimensions (each with a low/high bound and a log-scale flag) followed by
// categorical dimensions (each contributing a fixed number of alternatives,
// spec §3 Coordinate conventions: "categorical dimensions are appended to the
// location vector after continuous dimensions").
type Dims struct {
	Low, High []float64 // continuous bounds, user (original) scale
	LogScale  []bool
	CatSizes  []int // number of alternatives per categorical dimension
}

// NDims is the total location length: continuous dimensions plus categorical.
func (d Dims) NDims() int { return len(d.Low) + len(d.CatSizes) }

// InternalBounds returns the continuous bounds converted to internal
// (log-where-applicable) space, followed by [0, size-1] for each categorical
// dimension (its index range).
func (d Dims) InternalBounds() (low, high []float64) {
	n := d.NDims()
	low = make([]float64, n)
	high = make([]float64, n)
	for i := range d.Low {
		if d.LogScale[i] {
			low[i] = math.Log(d.Low[i])
			high[i] = math.Log(d.High[i])
		} else {
			low[i] = d.Low[i]
			high[i] = d.High[i]
		}
	}
	for i, size := range d.CatSizes {
		idx := len(d.Low) + i
		low[idx] = 0
		high[idx] = float64(size - 1)
	}
	return low, high
}
