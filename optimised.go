package sweeprun

import (
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/lucasbern/sweeprun/optimiser"
)

// OptimisedNode drives an optimiser over its params' continuous and
// categorical axes, forwarding the best configuration it finds to its parent
// (spec §4.3.2). It is lazily initialised: the optimiser instance is not
// built until the first GetNextTasks call, so that parent-supplied fixed
// parameters (merged in via cloneWithExtraParams, or passed as parentParams
// by the driver) are in scope when params is classified.
type OptimisedNode struct {
	base

	rawParams     map[string]any
	extraParams   map[string]string // baked in by a cloning parent (e.g. a Comparison axis point)
	optimiserName string
	optParams     map[string]any

	childTemplates []*OptimisedNode // declared nested-optimisation children, never run directly

	log zerolog.Logger

	initialised bool
	fixed       map[string]string
	categorical map[string][]string
	continuous  map[string]ParamSpec
	varNames    []string // continuous names (sorted) then categorical names (sorted)
	nContinuous int

	opt optimiser.Optimiser

	awaitingScore bool // a leaf-mode task is outstanding; spec §5 ordering guarantee

	// Nested-search bookkeeping (only used when len(childTemplates) > 0).
	pendingLocation    optimiser.Location
	pendingPointParams map[string]string
	activeChildren     []*OptimisedNode

	summaryPrinted bool
	done           bool
}

// NewOptimisedNode builds an Optimised node from its declared (unparsed)
// params, its optimiser name and run parameters, and its nested-optimisation
// child templates, if any.
func NewOptimisedNode(
	rawParams map[string]any,
	optimiserName string,
	optParams map[string]any,
	childTemplates []*OptimisedNode,
	commands []string,
	repeat int,
	wd string,
	log zerolog.Logger,
) *OptimisedNode {
	return &OptimisedNode{
		base:           newBase(commands, repeat, wd, nil),
		rawParams:      rawParams,
		optimiserName:  optimiserName,
		optParams:      optParams,
		childTemplates: childTemplates,
		log:            log,
	}
}

// cloneWithExtraParams returns a fresh, uninitialised node sharing this
// node's configuration, with extra folded into the fixed params it will
// fuse on its own first GetNextTasks call. ComparisonNode uses this to spawn
// one child instance per Cartesian-product point (spec §4.3.1); OptimisedNode
// clones its nested children with no extras once per round and hands them the
// round's point params through GetNextTasks(pointParams) instead.
func (n *OptimisedNode) cloneWithExtraParams(extra map[string]string) *OptimisedNode {
	clonedTemplates := make([]*OptimisedNode, len(n.childTemplates))
	for i, t := range n.childTemplates {
		clonedTemplates[i] = t.cloneWithExtraParams(nil)
	}
	return &OptimisedNode{
		base:           newBase(n.commands, n.repeat, n.wd, nil),
		rawParams:      n.rawParams,
		extraParams:    joinParams(n.extraParams, extra),
		optimiserName:  n.optimiserName,
		optParams:      n.optParams,
		childTemplates: clonedTemplates,
		log:            n.log,
	}
}

// _init classifies params into fixed/categorical/continuous-linear/
// continuous-log, fuses parentParams and any cloning-time extraParams into
// fixed, and constructs the chosen optimiser (spec §4.3.2).
func (n *OptimisedNode) _init(parentParams map[string]string) {
	n.initialised = true

	ancestorFixed := joinParams(parentParams, n.extraParams)

	fixed := make(map[string]string)
	categorical := make(map[string][]string)
	continuous := make(map[string]ParamSpec)

	for _, name := range sortedKeys(n.rawParams) {
		spec, err := ParseParamValue(n.rawParams[name])
		if err != nil {
			n.recordErr(err)
			n.done = true
			return
		}
		switch {
		case spec.IsContinuous():
			continuous[name] = spec
		case spec.Kind == KindCategorical:
			categorical[name] = spec.Categorical
		default:
			fixed[name] = spec.Fixed
		}
	}

	n.fixed = joinParams(ancestorFixed, fixed) // own declared values win over ancestors
	n.categorical = categorical
	n.continuous = continuous

	var continuousNames, categoricalNames []string
	for name := range continuous {
		continuousNames = append(continuousNames, name)
	}
	sort.Strings(continuousNames)
	for name := range categorical {
		categoricalNames = append(categoricalNames, name)
	}
	sort.Strings(categoricalNames)

	n.varNames = append(append([]string{}, continuousNames...), categoricalNames...)
	n.nContinuous = len(continuousNames)

	var dims optimiser.Dims
	for _, name := range continuousNames {
		spec := continuous[name]
		dims.Low = append(dims.Low, spec.Low)
		dims.High = append(dims.High, spec.High)
		dims.LogScale = append(dims.LogScale, spec.Kind == KindLogScale)
	}
	for _, name := range categoricalNames {
		dims.CatSizes = append(dims.CatSizes, len(categorical[name]))
	}

	opt, err := optimiser.New(n.optimiserName, dims, n.optParams, len(categoricalNames) > 0, n.log)
	if err != nil {
		n.recordErr(err)
		n.done = true
		return
	}
	n.opt = opt
}

// paramsFromLocation composes this node's fixed params with the variable
// values a location vector encodes, decoding categorical dimensions from
// their float index back to the chosen alternative's formatted value.
func (n *OptimisedNode) paramsFromLocation(loc optimiser.Location) map[string]string {
	p := make(map[string]string, len(n.fixed)+len(n.varNames))
	for k, v := range n.fixed {
		p[k] = v
	}
	for k, v := range n.searchedParamsFromLocation(loc) {
		p[k] = v
	}
	return p
}

// searchedParamsFromLocation decodes only the variable (searched) values a
// location vector encodes, without the fixed/inherited params paramsFromLocation
// also merges in.
func (n *OptimisedNode) searchedParamsFromLocation(loc optimiser.Location) map[string]string {
	p := make(map[string]string, len(n.varNames))
	for i, name := range n.varNames {
		if i < n.nContinuous {
			p[name] = formatNumber(loc[i])
			continue
		}
		alts := n.categorical[name]
		idx := int(loc[i] + 0.5)
		if idx < 0 {
			idx = 0
		} else if idx >= len(alts) {
			idx = len(alts) - 1
		}
		p[name] = alts[idx]
	}
	return p
}

// GetNextTasks implements Node.
func (n *OptimisedNode) GetNextTasks(parentParams map[string]string) []*Task {
	if !n.initialised {
		n._init(parentParams)
	}
	if n.initErr != nil || n.done {
		return nil
	}
	if len(n.childTemplates) == 0 {
		return n.getNextTasksLeaf()
	}
	return n.getNextTasksNested()
}

func (n *OptimisedNode) getNextTasksLeaf() []*Task {
	if n.awaitingScore {
		return nil
	}
	loc, ok := n.opt.NextLocation()
	if !ok {
		n.done = true
		n.printSummary()
		return nil
	}
	params := n.paramsFromLocation(loc)
	t, err := n.createTask(params, nil, []float64(loc))
	if err != nil {
		n.recordErr(err)
		n.done = true
		return nil
	}
	n.awaitingScore = true
	return []*Task{t}
}

// getNextTasksNested implements the composite-score protocol of spec §4.3.2:
// pull one location from this node's own optimiser, spawn a fresh Optimised
// child per declared template, drive them to completion across however many
// driver iterations that takes, then report their summed best score back at
// the pulled location before pulling the next one.
func (n *OptimisedNode) getNextTasksNested() []*Task {
	if n.activeChildren == nil {
		loc, ok := n.opt.NextLocation()
		if !ok {
			n.done = true
			n.printSummary()
			return nil
		}
		n.pendingLocation = loc
		n.pendingPointParams = n.paramsFromLocation(loc)

		children := make([]*OptimisedNode, len(n.childTemplates))
		for i, tmpl := range n.childTemplates {
			children[i] = tmpl.cloneWithExtraParams(nil)
		}
		n.activeChildren = children
	}

	var tasks []*Task
	for i := len(n.activeChildren) - 1; i >= 0; i-- {
		child := n.activeChildren[i]
		if child.IsTaskReady() {
			tasks = append(tasks, child.GetNextTasks(n.pendingPointParams)...)
		}
	}

	allDone := true
	for _, child := range n.activeChildren {
		if !child.IsDone() {
			allDone = false
			break
		}
	}
	if !allDone {
		return tasks
	}

	sum := 0.0
	for _, child := range n.activeChildren {
		sum += child.BestScore()
	}
	n.opt.Update(n.pendingLocation, sum)

	n.activeChildren = nil
	n.pendingLocation = nil
	n.pendingPointParams = nil

	return tasks
}

// IsTaskReady implements Node.
func (n *OptimisedNode) IsTaskReady() bool {
	if !n.initialised {
		return true
	}
	if n.initErr != nil || n.done {
		return false
	}
	if len(n.childTemplates) == 0 {
		return !n.awaitingScore
	}
	if n.activeChildren == nil {
		return true
	}
	for _, child := range n.activeChildren {
		if child.IsTaskReady() {
			return true
		}
	}
	for _, child := range n.activeChildren {
		if !child.IsDone() {
			return false
		}
	}
	return true // every child done; the next GetNextTasks call finalises the round
}

// IsDone implements Node.
func (n *OptimisedNode) IsDone() bool { return n.done }

// Err implements Node.
func (n *OptimisedNode) Err() error {
	if n.initErr != nil {
		return n.initErr
	}
	for _, child := range n.activeChildren {
		if err := child.Err(); err != nil {
			return err
		}
	}
	return nil
}

// UpdateFinishedTask implements Node.
func (n *OptimisedNode) UpdateFinishedTask(task *Task) bool {
	if _, ok := n.takeRunningTask(task.ID); ok {
		n.finishedTasks = append(n.finishedTasks, task)
		n.awaitingScore = false

		score, succeeded := task.Score()
		if !succeeded {
			n.log.Warn().Uint64("task_id", task.ID).Err(task.Err()).
				Msg("sweeprun: task failed, feeding the optimiser a worst-case score")
			score = math.Inf(-1)
		}
		n.opt.Update(optimiser.Location(task.Location), score)
		return true
	}
	for _, child := range n.activeChildren {
		if child.UpdateFinishedTask(task) {
			return true
		}
	}
	return false
}

// BestParams returns the full parameter assignment at the optimiser's best
// location. Valid once IsDone reports true.
func (n *OptimisedNode) BestParams() map[string]string {
	return n.paramsFromLocation(n.opt.BestLocation())
}

// ParentParams returns the params this node inherited from its ancestors and
// its own non-searched params, separate from the values the optimiser
// searched over (spec §6 Output: the "parent parameters" table printed above
// the optimal-values table).
func (n *OptimisedNode) ParentParams() map[string]string {
	p := make(map[string]string, len(n.fixed))
	for k, v := range n.fixed {
		p[k] = v
	}
	return p
}

// SearchedParams returns only the variable params the optimiser searched
// over, decoded at its best location. Valid once IsDone reports true.
func (n *OptimisedNode) SearchedParams() map[string]string {
	return n.searchedParamsFromLocation(n.opt.BestLocation())
}

// BestScore returns the optimiser's best observed score, used by a spawning
// parent to sum nested children's contributions (spec §4.3.2).
func (n *OptimisedNode) BestScore() float64 { return n.opt.BestScore() }

// printSummary logs a one-line optimisation summary exactly once per node
// (spec §4.3.2 "idempotent via a summary_printed latch").
func (n *OptimisedNode) printSummary() {
	if n.summaryPrinted {
		return
	}
	n.summaryPrinted = true
	n.log.Info().
		Str("optimiser", n.optimiserName).
		Interface("best_params", n.BestParams()).
		Float64("best_score", n.opt.BestScore()).
		Msg("sweeprun: optimisation finished")
}
