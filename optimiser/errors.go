package optimiser

import "errors"

// These mirror the ConfigError kinds the root package raises (spec §7); they
// live here too, rather than importing the root package, because the root
// package imports optimiser to build OptimisedNode and a cycle isn't an
// option. Callers in the root package compare against these with errors.Is
// and re-wrap with task/param context where useful.
var (
	ErrUnknownOptimiser = errors.New("optimiser: unknown optimiser name")
	ErrIncompatibleVars = errors.New("optimiser: optimiser does not support the given variable kind")
	ErrMissingOptParam  = errors.New("optimiser: required opt_params entry missing")
)
