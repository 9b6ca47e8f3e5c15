package sweeprun

import "errors"

// Namespace prefixes every sentinel error so errors.Is/As checks and log lines
// stay unambiguous when this package's errors are wrapped alongside others.
const Namespace = "sweeprun"

// Error kinds, per spec §7: ConfigError is fatal and raised before any task runs;
// TaskError is per-task and surfaces through the task's result; SchedulerError is
// local and logged, never propagated.
var (
	ErrMissingTag       = errors.New(Namespace + ": required configuration tag missing")
	ErrUnknownOptimiser = errors.New(Namespace + ": unknown optimiser")
	ErrIncompatibleVars = errors.New(Namespace + ": optimiser does not support the given variable kind")
	ErrMissingOptParam  = errors.New(Namespace + ": required opt_params entry missing")
	ErrNoRootNode       = errors.New(Namespace + ": config must contain exactly one of \"comparison\" or \"optimised\"")
	ErrEmptyCommands    = errors.New(Namespace + ": a task's command sequence must not be empty")
	ErrTaskFailed       = errors.New(Namespace + ": task execution failed")
	ErrUnparseableScore = errors.New(Namespace + ": could not parse a score from command output")
	ErrOrphanRegistry   = errors.New(Namespace + ": orphan entry in optimiser score registry")
	ErrUnknownLocation  = errors.New(Namespace + ": update for a location the optimiser never proposed")
	ErrConfigNotFound   = errors.New(Namespace + ": configuration file not found")
	ErrMalformedConfig  = errors.New(Namespace + ": configuration file is not valid YAML")
)
