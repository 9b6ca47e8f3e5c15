package optimiser

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func simpleDims() Dims {
	return Dims{Low: []float64{0}, High: []float64{1}, LogScale: []bool{false}}
}

func TestNew_GridSearchDispatch(t *testing.T) {
	opt, err := New(NameGridSearch, simpleDims(), map[string]any{"resolution": 3}, false, zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, opt)
}

func TestNew_GridSearchMissingResolutionIsConfigError(t *testing.T) {
	_, err := New(NameGridSearch, simpleDims(), map[string]any{}, false, zerolog.Nop())
	require.ErrorIs(t, err, ErrMissingOptParam)
}

func TestNew_IterativeBackendsMissingNIterationsIsConfigError(t *testing.T) {
	for _, name := range []string{NamePSO, NameDE, NameMOL, NamePatternSearch, NameLUS, NameBayesian} {
		_, err := New(name, simpleDims(), map[string]any{}, false, zerolog.Nop())
		require.ErrorIsf(t, err, ErrMissingOptParam, "optimiser %q", name)
	}
}

func TestNew_BayesianRejectsCategoricalDims(t *testing.T) {
	_, err := New(NameBayesian, simpleDims(), map[string]any{"n_iterations": 5}, true, zerolog.Nop())
	require.ErrorIs(t, err, ErrIncompatibleVars)
}

func TestNew_UnknownOptimiserNameIsConfigError(t *testing.T) {
	_, err := New("not_a_real_optimiser", simpleDims(), nil, false, zerolog.Nop())
	require.ErrorIs(t, err, ErrUnknownOptimiser)
}

func TestNew_AllIterativeBackendsConstructSuccessfully(t *testing.T) {
	for _, name := range []string{NamePSO, NameDE, NameMOL, NamePatternSearch, NameLUS} {
		opt, err := New(name, simpleDims(), map[string]any{"n_iterations": 2}, false, zerolog.Nop())
		require.NoErrorf(t, err, "optimiser %q", name)
		require.NotNilf(t, opt, "optimiser %q", name)
	}
}

func TestNew_OptParamsAcceptsFloatFromYAMLDecoding(t *testing.T) {
	opt, err := New(NameGridSearch, simpleDims(), map[string]any{"resolution": float64(4)}, false, zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, opt)
}
