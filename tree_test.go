package sweeprun

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// fakePool scores every task the moment it is submitted and delivers
// completions in submission order, so Run's driving logic can be exercised
// without spawning real subprocesses or worker goroutines.
type fakePool struct {
	ch      chan *Task
	scoreFn func(*Task) float64
}

func newFakePool(scoreFn func(*Task) float64) *fakePool {
	return &fakePool{ch: make(chan *Task, 4096), scoreFn: scoreFn}
}

func (p *fakePool) Submit(t *Task) {
	t.SetScore(p.scoreFn(t))
	p.ch <- t
}

func (p *fakePool) Next() (*Task, bool) {
	t, ok := <-p.ch
	return t, ok
}

func (p *fakePool) End() {
	close(p.ch)
}

func TestRun_ComparisonLeafRunsToCompletionWithUniqueTaskIDs(t *testing.T) {
	axes := map[string][]string{"x": {"1", "2", "3"}}
	root := NewComparisonNode(axes, nil, []string{"echo ${x}"}, 2, "")

	pool := newFakePool(func(task *Task) float64 { return 1 })
	require.NoError(t, Run(root, pool, nil))

	require.True(t, root.IsDone())
	finished := root.FinishedTasks()
	require.Len(t, finished, 3*2)

	ids := make(map[uint64]bool)
	for _, task := range finished {
		require.False(t, ids[task.ID])
		ids[task.ID] = true
	}
}

func TestRun_NestedComparisonOverOptimisation(t *testing.T) {
	axes := map[string][]string{"algo": {`"a"`, `"b"`}}
	child := NewOptimisedNode(map[string]any{"u": "linear(0, 1)"}, "grid_search",
		map[string]any{"resolution": 3}, nil, []string{"echo ${algo}-${u}"}, 1, "", zerolog.Nop())
	root := NewComparisonNode(axes, []*OptimisedNode{child}, nil, 1, "")

	pool := newFakePool(func(task *Task) float64 {
		return float64(len(task.Params))
	})
	require.NoError(t, Run(root, pool, nil))

	require.True(t, root.IsDone())
	// The root itself only absorbs the one "child converged" task per axis
	// value; the resolution(3) grid-search tasks underneath are absorbed by
	// the per-axis child clone, not the root.
	require.Len(t, root.FinishedTasks(), 2)
}

func TestRun_ConfigErrorStopsBeforeAnyTaskCompletes(t *testing.T) {
	root := NewOptimisedNode(map[string]any{"u": "linear(0, 1)"}, "bogus", nil, nil,
		[]string{"echo ${u}"}, 1, "", zerolog.Nop())

	calls := 0
	pool := newFakePool(func(task *Task) float64 {
		calls++
		return 0
	})

	err := Run(root, pool, nil)
	require.Error(t, err)
	require.Equal(t, 0, calls, "no task should ever be submitted for a node that fails to initialise")
}

func TestRun_IsDoneOnlyOnceEveryNodeIsDone(t *testing.T) {
	// Two distinct optimised children, each cloned once per the single axis
	// value below: Run must not report the root done until both converge.
	axes := map[string][]string{"x": {"1"}}
	childA := NewOptimisedNode(map[string]any{"u": "linear(0, 1)"}, "grid_search",
		map[string]any{"resolution": 2}, nil, []string{"echo a-${u}"}, 1, "", zerolog.Nop())
	childB := NewOptimisedNode(map[string]any{"u": "linear(0, 1)"}, "grid_search",
		map[string]any{"resolution": 5}, nil, []string{"echo b-${u}"}, 1, "", zerolog.Nop())
	root := NewComparisonNode(axes, []*OptimisedNode{childA, childB}, nil, 1, "")

	pool := newFakePool(func(task *Task) float64 { return 1 })
	require.NoError(t, Run(root, pool, nil))

	require.True(t, root.IsDone())
	require.Len(t, root.FinishedTasks(), 2) // one "converged" task per cloned child
}
