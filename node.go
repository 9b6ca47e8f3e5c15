package sweeprun

import (
	"regexp"
	"sort"
)

// Node is the experiment tree's recursive element (spec §4.3). ComparisonNode and
// OptimisedNode are the two concrete kinds.
type Node interface {
	// IsTaskReady reports whether a task can be produced right now without
	// further completions.
	IsTaskReady() bool

	// GetNextTasks materializes and registers the tasks ready at this node,
	// recursing into children. parentParams is the parameter assignment
	// inherited from ancestors.
	GetNextTasks(parentParams map[string]string) []*Task

	// UpdateFinishedTask locates task by ID in this subtree and delivers its
	// result to the owning node. It reports whether the task was found.
	UpdateFinishedTask(task *Task) bool

	// IsDone reports whether this node and every reachable descendant are done.
	IsDone() bool

	// Err returns the first fatal configuration error encountered while lazily
	// initialising this node or any descendant (spec §7 ConfigError), or nil.
	// The driver checks this after every GetNextTasks call and stops before
	// submitting anything it returned.
	Err() error
}

// base holds the state and helpers common to every node kind.
type base struct {
	commands      []string
	repeat        int
	wd            string
	children      []Node
	runningTasks  map[uint64]*Task
	finishedTasks []*Task

	initErr error
}

func newBase(commands []string, repeat int, wd string, children []Node) base {
	if repeat < 1 {
		repeat = 1
	}
	return base{
		commands:     commands,
		repeat:       repeat,
		wd:           wd,
		children:     children,
		runningTasks: make(map[uint64]*Task),
	}
}

// recordErr latches the first error reported to it; later calls are no-ops so
// the original failure is never masked by downstream consequences of it.
func (b *base) recordErr(err error) {
	if b.initErr == nil {
		b.initErr = err
	}
}

// Err implements Node for nodes with no children to aggregate over.
func (b *base) Err() error { return b.initErr }

var templateVar = regexp.MustCompile(`\$\{([A-Za-z0-9_]+)\}`)

// parseCommands substitutes every ${name} occurrence in commands with the
// corresponding entry of params (spec §6 Command template). A reference to a
// name absent from params is left untouched.
func parseCommands(params map[string]string, commands []string) []string {
	filled := make([]string, len(commands))
	for i, command := range commands {
		filled[i] = templateVar.ReplaceAllStringFunc(command, func(m string) string {
			name := templateVar.FindStringSubmatch(m)[1]
			if v, ok := params[name]; ok {
				return v
			}
			return m
		})
	}
	return filled
}

// joinParams merges two parameter assignments; entries in b take precedence
// over entries in a.
func joinParams(a, b map[string]string) map[string]string {
	joined := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		joined[k] = v
	}
	for k, v := range b {
		joined[k] = v
	}
	return joined
}

// sortedKeys returns m's keys in a stable order, so enumeration order (and
// therefore mixed-radix counters and test expectations) does not depend on Go's
// randomized map iteration.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (b *base) createTask(params map[string]string, commands []string, loc []float64) (*Task, error) {
	if commands == nil {
		commands = b.commands
	}
	t, err := NewTask(parseCommands(params, commands), params, loc, b.wd)
	if err != nil {
		return nil, err
	}
	b.runningTasks[t.ID] = t
	return t, nil
}

func (b *base) takeRunningTask(id uint64) (*Task, bool) {
	t, ok := b.runningTasks[id]
	if ok {
		delete(b.runningTasks, id)
	}
	return t, ok
}
