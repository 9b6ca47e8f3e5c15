package sweeprun

import "sort"

// ComparisonNode enumerates the Cartesian product of its parameter axes, each
// point repeated Repeat times (spec §4.3.1).
//
// Children of a Comparison node are always OptimisedNode: the node-done
// handling below retrieves a child's best parameter assignment, which only an
// Optimised node can produce (a nested Comparison node enumerates, it does not
// converge on a single best point). The config schema's generic "optimised"
// child container reflects this; see DESIGN.md for the resolved ambiguity.
type ComparisonNode struct {
	base

	paramNames   []string
	allParamVals [][]string // cartesian product, row-major over paramNames

	done       bool
	paramValsID int
}

// NewComparisonNode builds a Comparison node from classified parameter axes.
// axisValues maps each parameter name to its enumerated alternatives (a
// categorical list, or a single-element slice for a fixed value).
func NewComparisonNode(
	axisValues map[string][]string,
	children []*OptimisedNode,
	commands []string,
	repeat int,
	wd string,
) *ComparisonNode {
	names := make([]string, 0, len(axisValues))
	for k := range axisValues {
		names = append(names, k)
	}
	sort.Strings(names)

	var product [][]string
	if len(names) == 0 {
		product = [][]string{{}}
	} else {
		product = [][]string{{}}
		for _, name := range names {
			vals := axisValues[name]
			next := make([][]string, 0, len(product)*len(vals))
			for _, row := range product {
				for _, v := range vals {
					r := make([]string, len(row)+1)
					copy(r, row)
					r[len(row)] = v
					next = append(next, r)
				}
			}
			product = next
		}
	}

	n := &ComparisonNode{
		base:         newBase(commands, repeat, wd, nil),
		paramNames:   names,
		allParamVals: product,
		paramValsID:  -1,
	}

	// Expand each declared child once per product point (spec §4.3.1),
	// merging that point's assignment into the child's own params.
	if len(children) > 0 {
		expanded := make([]*OptimisedNode, 0, len(children)*len(product))
		for _, row := range product {
			pointParams := n.rowParams(row)
			for _, child := range children {
				expanded = append(expanded, child.cloneWithExtraParams(pointParams))
			}
		}
		n.children = optimisedNodesToNodes(expanded)
	}

	return n
}

func (n *ComparisonNode) rowParams(row []string) map[string]string {
	p := make(map[string]string, len(n.paramNames))
	for i, name := range n.paramNames {
		p[name] = row[i]
	}
	return p
}

func (n *ComparisonNode) nextParamRow() ([]string, bool) {
	if n.paramValsID >= len(n.allParamVals)-1 {
		return nil, false
	}
	n.paramValsID++
	return n.allParamVals[n.paramValsID], true
}

// GetNextTasks implements Node.
func (n *ComparisonNode) GetNextTasks(parentParams map[string]string) []*Task {
	if len(n.childNodes()) == 0 {
		if n.done {
			return nil
		}
		total := n.repeat * len(n.allParamVals)
		tasks := make([]*Task, 0, total)
		for {
			row, ok := n.nextParamRow()
			if !ok {
				break
			}
			joined := joinParams(parentParams, n.rowParams(row))
			for j := 0; j < n.repeat; j++ {
				t, err := n.createTask(joined, nil, nil)
				if err != nil {
					continue
				}
				tasks = append(tasks, t)
			}
		}
		n.done = true
		return tasks
	}

	children := n.childOptimisedNodes()
	var tasks []*Task
	for i := len(children) - 1; i >= 0; i-- {
		child := children[i]
		switch {
		case child.IsTaskReady():
			tasks = append(tasks, child.GetNextTasks(parentParams)...)
		case child.IsDone():
			best := child.BestParams()
			for j := 0; j < n.repeat; j++ {
				t, err := n.createTask(best, child.commands, nil)
				if err != nil {
					continue
				}
				tasks = append(tasks, t)
			}
			children = append(children[:i], children[i+1:]...)
		}
	}
	n.children = optimisedNodesToNodes(children)
	if len(children) == 0 {
		n.done = true
	}
	return tasks
}

// IsTaskReady implements Node.
func (n *ComparisonNode) IsTaskReady() bool {
	children := n.childOptimisedNodes()
	if len(children) == 0 {
		return !n.done
	}
	for _, child := range children {
		if child.IsTaskReady() {
			return true
		}
	}
	for _, child := range children {
		if child.IsDone() {
			return true
		}
	}
	return false
}

// IsDone implements Node.
func (n *ComparisonNode) IsDone() bool {
	for _, child := range n.childOptimisedNodes() {
		if !child.IsDone() {
			return false
		}
	}
	return n.done
}

// UpdateFinishedTask implements Node.
func (n *ComparisonNode) UpdateFinishedTask(task *Task) bool {
	if _, ok := n.takeRunningTask(task.ID); ok {
		n.finishedTasks = append(n.finishedTasks, task)
		return true
	}
	for _, child := range n.childOptimisedNodes() {
		if child.UpdateFinishedTask(task) {
			return true
		}
	}
	return false
}

// Err implements Node, surfacing the first config error from this node or any
// child subtree.
func (n *ComparisonNode) Err() error {
	if n.initErr != nil {
		return n.initErr
	}
	for _, child := range n.childOptimisedNodes() {
		if err := child.Err(); err != nil {
			return err
		}
	}
	return nil
}

// FinishedTasks returns every task this node (not its children) has absorbed,
// used by package report to build the ranked comparison table.
func (n *ComparisonNode) FinishedTasks() []*Task { return n.finishedTasks }

// ParamNames returns the axis names in product order.
func (n *ComparisonNode) ParamNames() []string { return n.paramNames }

func (n *ComparisonNode) childNodes() []Node { return n.children }

func (n *ComparisonNode) childOptimisedNodes() []*OptimisedNode {
	out := make([]*OptimisedNode, len(n.children))
	for i, c := range n.children {
		out[i] = c.(*OptimisedNode)
	}
	return out
}

func optimisedNodesToNodes(children []*OptimisedNode) []Node {
	out := make([]Node, len(children))
	for i, c := range children {
		out[i] = c
	}
	return out
}
