package config

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lucasbern/sweeprun"
)

// Result is everything Build derives from a RootConfig: the constructed tree
// root, the root-level fixed parameter assignment, and the run's worker
// count and default working directory (spec §6).
type Result struct {
	Root    sweeprun.Node
	Fixed   map[string]string
	Workers int
	WorkDir string
}

// Build validates cfg and constructs the experiment tree it describes. It
// reports a missing name, a negative worker count (zero defaults to 1), a
// missing optimiser, missing commands on a leaf, a comparison child below any
// node, an ambiguous or absent root node kind, and any root "fixed" entry or
// Comparison axis that ParseParamValue rejects or that is not a literal
// value. An Optimised node's params, optimiser name and opt_params are not
// checked here: they are parsed and the optimiser is built by optimiser.New
// on that node's first GetNextTasks call.
func Build(cfg *RootConfig, log zerolog.Logger) (*Result, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("%w: \"name\"", sweeprun.ErrMissingTag)
	}

	workers := cfg.Workers
	if workers == 0 {
		workers = 1
	}
	if workers < 0 {
		return nil, fmt.Errorf("%w: \"workers\" must be positive", sweeprun.ErrMissingTag)
	}

	fixed, err := fixedParams(cfg.Fixed)
	if err != nil {
		return nil, err
	}

	var root sweeprun.Node
	switch {
	case len(cfg.Comparison) == 1 && len(cfg.Optimised) == 0:
		root, err = buildComparison(cfg.Comparison[0], cfg.WorkDir, log)
	case len(cfg.Optimised) == 1 && len(cfg.Comparison) == 0:
		root, err = buildOptimised(cfg.Optimised[0], cfg.WorkDir, log)
	default:
		err = sweeprun.ErrNoRootNode
	}
	if err != nil {
		return nil, err
	}

	return &Result{Root: root, Fixed: fixed, Workers: workers, WorkDir: cfg.WorkDir}, nil
}

func fixedParams(raw map[string]any) (map[string]string, error) {
	fixed := make(map[string]string, len(raw))
	for name, v := range raw {
		spec, err := sweeprun.ParseParamValue(v)
		if err != nil {
			return nil, err
		}
		if spec.IsContinuous() || spec.Kind == sweeprun.KindCategorical {
			return nil, fmt.Errorf("%w: root \"fixed\" entry %q must be a literal value", sweeprun.ErrMissingTag, name)
		}
		fixed[name] = spec.Fixed
	}
	return fixed, nil
}

func repeatOrDefault(r int) int {
	if r < 1 {
		return 1
	}
	return r
}

func buildComparison(nc NodeConfig, wd string, log zerolog.Logger) (*sweeprun.ComparisonNode, error) {
	if len(nc.Comparison) > 0 {
		return nil, fmt.Errorf("%w: a comparison node's children must be \"optimised\" nodes", sweeprun.ErrIncompatibleVars)
	}

	axisValues := make(map[string][]string, len(nc.Params))
	for name, raw := range nc.Params {
		spec, err := sweeprun.ParseParamValue(raw)
		if err != nil {
			return nil, err
		}
		switch {
		case spec.Kind == sweeprun.KindCategorical:
			axisValues[name] = spec.Categorical
		case spec.IsContinuous():
			return nil, fmt.Errorf("%w: comparison node param %q must be fixed or categorical, not a continuous range", sweeprun.ErrIncompatibleVars, name)
		default:
			axisValues[name] = []string{spec.Fixed}
		}
	}

	children := make([]*sweeprun.OptimisedNode, 0, len(nc.Optimised))
	for _, childCfg := range nc.Optimised {
		child, err := buildOptimised(childCfg, wd, log)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	if len(nc.Commands) == 0 && len(children) == 0 {
		return nil, sweeprun.ErrEmptyCommands
	}

	return sweeprun.NewComparisonNode(axisValues, children, nc.Commands, repeatOrDefault(nc.Repeat), wd), nil
}

func buildOptimised(nc NodeConfig, wd string, log zerolog.Logger) (*sweeprun.OptimisedNode, error) {
	if nc.Optimiser == "" {
		return nil, fmt.Errorf("%w: \"optimiser\"", sweeprun.ErrMissingTag)
	}
	if len(nc.Comparison) > 0 {
		return nil, fmt.Errorf("%w: an optimised node's children must themselves be \"optimised\" nodes", sweeprun.ErrIncompatibleVars)
	}

	childTemplates := make([]*sweeprun.OptimisedNode, 0, len(nc.Optimised))
	for _, childCfg := range nc.Optimised {
		child, err := buildOptimised(childCfg, wd, log)
		if err != nil {
			return nil, err
		}
		childTemplates = append(childTemplates, child)
	}

	if len(nc.Commands) == 0 && len(childTemplates) == 0 {
		return nil, sweeprun.ErrEmptyCommands
	}

	return sweeprun.NewOptimisedNode(nc.Params, nc.Optimiser, nc.OptParams, childTemplates, nc.Commands, repeatOrDefault(nc.Repeat), wd, log), nil
}
