package optimiser

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Names of the supported optimisers (spec §4.2.3 / §6 "optimiser" tag).
const (
	NameGridSearch     = "grid_search"
	NamePSO            = "pso"
	NameDE             = "de"
	NameMOL            = "mol"
	NamePatternSearch  = "pattern_search"
	NameLUS            = "lus"
	NameBayesian       = "bayesian"
)

// New dispatches on an optimiser name and its declared opt_params, validating
// both against the variable kinds of dims (spec §7 ConfigError: unknown
// optimiser name, missing opt_params entry, or optimiser/variable mismatch).
// hasCategorical must be true if dims describes at least one categorical
// variable — only Bayesian rejects that combination.
func New(name string, dims Dims, optParams map[string]any, hasCategorical bool, log zerolog.Logger) (Optimiser, error) {
	switch name {
	case NameGridSearch:
		res, err := intParam(optParams, "resolution")
		if err != nil {
			return nil, err
		}
		return NewGridSearch(dims, res), nil

	case NamePSO, NameDE, NameMOL, NamePatternSearch, NameLUS:
		nIter, err := intParam(optParams, "n_iterations")
		if err != nil {
			return nil, err
		}
		maxScore := optionalFloatParam(optParams, "max_score")
		switch name {
		case NamePSO:
			return NewPSO(dims, nIter, maxScore, log), nil
		case NameDE:
			return NewDE(dims, nIter, maxScore, log), nil
		case NameMOL:
			return NewMOL(dims, nIter, maxScore, log), nil
		case NamePatternSearch:
			return NewPatternSearch(dims, nIter, maxScore, log), nil
		default:
			return NewLUS(dims, nIter, maxScore, log), nil
		}

	case NameBayesian:
		if hasCategorical {
			return nil, fmt.Errorf("%w: bayesian optimisation requires purely continuous variables", ErrIncompatibleVars)
		}
		nIter, err := intParam(optParams, "n_iterations")
		if err != nil {
			return nil, err
		}
		maxScore := optionalFloatParam(optParams, "max_score")
		return NewBayesian(dims, nIter, maxScore, log), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOptimiser, name)
	}
}

func intParam(params map[string]any, key string) (int, error) {
	v, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMissingOptParam, key)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("%w: %q must be a number", ErrMissingOptParam, key)
	}
}

func optionalFloatParam(params map[string]any, key string) *float64 {
	v, ok := params[key]
	if !ok {
		return nil
	}
	switch n := v.(type) {
	case float64:
		return &n
	case int:
		f := float64(n)
		return &f
	default:
		return nil
	}
}
