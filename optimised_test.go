package sweeprun

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/lucasbern/sweeprun/optimiser"
)

func TestOptimisedNode_LeafGridSearchRunsToCompletion(t *testing.T) {
	params := map[string]any{
		"u": "linear(0, 1)",
		"m": []any{"a", "b"},
	}
	node := NewOptimisedNode(params, "grid_search", map[string]any{"resolution": 2}, nil,
		[]string{"echo ${u}-${m}"}, 1, "", zerolog.Nop())

	var scores []float64
	var bestSeen float64
	first := true

	for node.IsTaskReady() {
		tasks := node.GetNextTasks(nil)
		if len(tasks) == 0 {
			break
		}
		require.Len(t, tasks, 1, "a leaf optimised node produces one task at a time")
		task := tasks[0]
		require.NotNil(t, task.Location)

		score := float64(len(scores))
		task.SetScore(score)
		scores = append(scores, score)
		if first || score > bestSeen {
			bestSeen = score
			first = false
		}
		require.True(t, node.UpdateFinishedTask(task))
	}

	require.True(t, node.IsDone())
	require.Len(t, scores, 2*2) // resolution(2) continuous x 2 categorical alternatives
	require.Equal(t, bestSeen, node.BestScore())
	require.NoError(t, node.Err())

	best := node.BestParams()
	require.Contains(t, []string{`"a"`, `"b"`}, best["m"])
}

func TestOptimisedNode_ParentParamsSplitFromSearchedParams(t *testing.T) {
	params := map[string]any{
		"u":     "linear(0, 1)",
		"model": "xgboost",
	}
	node := NewOptimisedNode(params, "grid_search", map[string]any{"resolution": 2}, nil,
		[]string{"echo ${dataset}-${model}-${u}"}, 1, "", zerolog.Nop())

	for node.IsTaskReady() {
		tasks := node.GetNextTasks(map[string]string{"dataset": "mnist"})
		if len(tasks) == 0 {
			break
		}
		for _, task := range tasks {
			task.SetScore(1)
			require.True(t, node.UpdateFinishedTask(task))
		}
	}
	require.True(t, node.IsDone())

	parent := node.ParentParams()
	require.Equal(t, map[string]string{"dataset": "mnist", "model": `"xgboost"`}, parent)
	require.NotContains(t, parent, "u")

	searched := node.SearchedParams()
	require.Contains(t, searched, "u")
	require.NotContains(t, searched, "dataset")
	require.NotContains(t, searched, "model")

	require.Equal(t, node.BestParams(), joinParams(parent, searched))
}

func TestOptimisedNode_UnknownOptimiserIsConfigError(t *testing.T) {
	node := NewOptimisedNode(map[string]any{"u": "linear(0, 1)"}, "not_a_real_optimiser", nil, nil,
		[]string{"echo ${u}"}, 1, "", zerolog.Nop())

	tasks := node.GetNextTasks(nil)
	require.Nil(t, tasks)
	require.Error(t, node.Err())
	require.True(t, node.IsDone())
}

func TestOptimisedNode_BayesianRejectsCategorical(t *testing.T) {
	params := map[string]any{
		"u": "linear(0, 1)",
		"m": []any{"a", "b"},
	}
	node := NewOptimisedNode(params, "bayesian", map[string]any{"n_iterations": 5}, nil,
		[]string{"echo ${u}-${m}"}, 1, "", zerolog.Nop())

	tasks := node.GetNextTasks(nil)
	require.Nil(t, tasks)
	require.ErrorIs(t, node.Err(), optimiser.ErrIncompatibleVars)
}
