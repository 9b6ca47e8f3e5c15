package optimiser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGridSearch_EnumeratesMixedRadixDimensionZeroFastest(t *testing.T) {
	dims := Dims{
		Low:      []float64{0, 10},
		High:     []float64{1, 11},
		LogScale: []bool{false, false},
		CatSizes: []int{2},
	}
	opt := NewGridSearch(dims, 2)

	var locations []Location
	for {
		loc, ok := opt.NextLocation()
		if !ok {
			break
		}
		locations = append(locations, loc)
		opt.Update(loc, 0)
	}

	require.Len(t, locations, 2*2*2)
	require.True(t, opt.IsDone())

	// Dimension 0 must change every step; dimension 2 (categorical) only
	// every |dim0|*|dim1| steps.
	require.NotEqual(t, locations[0][0], locations[1][0])
	require.Equal(t, locations[0][2], locations[1][2])
}

func TestGridSearch_LogScaleRoundTrips(t *testing.T) {
	dims := Dims{
		Low:      []float64{1},
		High:     []float64{100},
		LogScale: []bool{true},
	}
	opt := NewGridSearch(dims, 3)

	loc, ok := opt.NextLocation()
	require.True(t, ok)
	require.InDelta(t, 1.0, loc[0], 1e-9)
}

func TestOptimiserBase_BestScoreAcceptsFirstNegativeScore(t *testing.T) {
	dims := Dims{Low: []float64{0}, High: []float64{1}, LogScale: []bool{false}}
	opt := NewGridSearch(dims, 4)

	loc, ok := opt.NextLocation()
	require.True(t, ok)
	opt.Update(loc, -5)

	require.Equal(t, -5.0, opt.BestScore())
}
