package sweeprun_test

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/lucasbern/sweeprun"
	"github.com/lucasbern/sweeprun/config"
	"github.com/lucasbern/sweeprun/exec"
	"github.com/lucasbern/sweeprun/metrics"
)

// TestEndToEnd_CompareExample drives the testdata/example/compare.yaml
// fixture through the real config/exec/tree stack, scoring each task with
// cmd/scoredemo exactly as a user running `sweeprun testdata/example/compare.yaml`
// would.
func TestEndToEnd_CompareExample(t *testing.T) {
	cfg, err := config.Load("testdata/example/compare.yaml")
	require.NoError(t, err)

	result, err := config.Build(cfg, zerolog.Nop())
	require.NoError(t, err)

	root, ok := result.Root.(*sweeprun.ComparisonNode)
	require.True(t, ok)

	pool := exec.NewPool(result.Workers, result.WorkDir, zerolog.Nop(), metrics.NewNoopProvider())
	require.NoError(t, sweeprun.Run(root, pool, result.Fixed))

	finished := root.FinishedTasks()
	require.Len(t, finished, 3*3) // 3 methods x repeat(3)

	counts := make(map[string]int)
	for _, task := range finished {
		score, succeeded := task.Score()
		require.True(t, succeeded, task.Err())
		require.False(t, math.IsNaN(score))
		counts[task.Params["method"]]++
	}
	require.Equal(t, map[string]int{`"methodA"`: 3, `"methodB"`: 3, `"methodC"`: 3}, counts)
}
