package sweeprun

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComparisonNode_LeafCartesianProductAndRepeat(t *testing.T) {
	axes := map[string][]string{
		"x": {"1", "2"},
		"y": {`"a"`, `"b"`},
	}
	node := NewComparisonNode(axes, nil, []string{"echo ${x}-${y}"}, 3, "")

	require.True(t, node.IsTaskReady())
	tasks := node.GetNextTasks(nil)
	require.Len(t, tasks, 3*2*2)
	require.False(t, node.IsTaskReady())
	require.True(t, node.IsDone())

	counts := make(map[string]int)
	ids := make(map[uint64]bool)
	for _, task := range tasks {
		require.False(t, ids[task.ID], "task IDs must be unique")
		ids[task.ID] = true
		key := task.Params["x"] + "/" + task.Params["y"]
		counts[key]++
	}
	require.Len(t, counts, 4)
	for key, n := range counts {
		require.Equalf(t, 3, n, "combination %q should appear exactly repeat times", key)
	}
}

func TestComparisonNode_SubsequentCallReturnsNil(t *testing.T) {
	node := NewComparisonNode(map[string][]string{"x": {"1"}}, nil, []string{"echo ${x}"}, 1, "")
	first := node.GetNextTasks(nil)
	require.Len(t, first, 1)
	second := node.GetNextTasks(nil)
	require.Nil(t, second)
}

func TestComparisonNode_UpdateFinishedTask(t *testing.T) {
	node := NewComparisonNode(map[string][]string{"x": {"1"}}, nil, []string{"echo ${x}"}, 1, "")
	tasks := node.GetNextTasks(nil)
	require.Len(t, tasks, 1)

	tasks[0].SetScore(4.2)
	require.True(t, node.UpdateFinishedTask(tasks[0]))
	require.Len(t, node.FinishedTasks(), 1)

	other, err := NewTask([]string{"echo hi"}, nil, nil, "")
	require.NoError(t, err)
	require.False(t, node.UpdateFinishedTask(other))
}
