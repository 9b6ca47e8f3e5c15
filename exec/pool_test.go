package exec

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/lucasbern/sweeprun"
	"github.com/lucasbern/sweeprun/metrics"
)

func newTestTask(t *testing.T, command string) *sweeprun.Task {
	t.Helper()
	task, err := sweeprun.NewTask([]string{command}, nil, nil, "")
	require.NoError(t, err)
	return task
}

func TestPool_ExecutesAndScoresTasks(t *testing.T) {
	pool := NewPool(2, "", zerolog.Nop(), metrics.NewNoopProvider())

	want := map[uint64]float64{}
	for i := 0; i < 5; i++ {
		task := newTestTask(t, "echo 3.14")
		want[task.ID] = 3.14
		pool.Submit(task)
	}
	pool.End()

	got := map[uint64]float64{}
	for len(got) < len(want) {
		task, ok := pool.Next()
		require.True(t, ok)
		score, succeeded := task.Score()
		require.True(t, succeeded, task.Err())
		got[task.ID] = score
	}
	require.Equal(t, want, got)

	_, ok := pool.Next()
	require.False(t, ok)
}

func TestPool_FailedCommandSetsTaskError(t *testing.T) {
	pool := NewPool(1, "", zerolog.Nop(), metrics.NewNoopProvider())
	task := newTestTask(t, "exit 1")
	pool.Submit(task)
	pool.End()

	finished, ok := pool.Next()
	require.True(t, ok)
	_, succeeded := finished.Score()
	require.False(t, succeeded)
	require.Error(t, finished.Err())
}

func TestPool_UnparseableOutputSetsTaskError(t *testing.T) {
	pool := NewPool(1, "", zerolog.Nop(), metrics.NewNoopProvider())
	task := newTestTask(t, "echo not-a-number")
	pool.Submit(task)
	pool.End()

	finished, ok := pool.Next()
	require.True(t, ok)
	_, succeeded := finished.Score()
	require.False(t, succeeded)
	require.ErrorIs(t, finished.Err(), sweeprun.ErrUnparseableScore)
}

func TestPool_EndLetsRunningTaskFinish(t *testing.T) {
	pool := NewPool(3, "", zerolog.Nop(), metrics.NewNoopProvider())
	task := newTestTask(t, "sleep 0.05 && echo 1")
	pool.Submit(task)

	// give the worker a moment to pick the task up, so End is called while
	// its command is still running.
	time.Sleep(10 * time.Millisecond)
	pool.End()

	finished, ok := pool.Next()
	require.True(t, ok)
	score, succeeded := finished.Score()
	require.True(t, succeeded)
	require.Equal(t, 1.0, score)
}
