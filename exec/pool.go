// Package exec implements the worker pool that executes a Task's shell
// commands and scores its output (spec §4.1). It never imports the root
// package's Node types directly into its public surface beyond Task itself;
// the scheduler drives it through the sweeprun.Pool interface (tree.go).
package exec

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/lucasbern/sweeprun"
	"github.com/lucasbern/sweeprun/metrics"
)

// queueCapacity bounds each worker's pending-task buffer. The spec describes
// an unbounded queue; a large fixed buffer is the pragmatic Go rendering of
// that since submit must never block the driver under the workloads this
// system targets (bounded parameter sweeps, not open-ended streams).
const queueCapacity = 4096

// Pool executes tasks across a fixed number of workers, each with its own
// input queue. Submit routes to whichever queue is currently shortest, ties
// broken by worker index (spec §4.1); completions arrive on a single done
// channel in arrival order, independent of submission order.
type Pool struct {
	workers []*workerQueue
	done    chan *sweeprun.Task

	defaultWD string
	log       zerolog.Logger
	metrics   metrics.Provider

	tasksStarted  metrics.Counter
	tasksFailed   metrics.Counter
	taskDuration  metrics.Histogram
	inFlight      metrics.UpDownCounter
}

type workerQueue struct {
	in     chan *sweeprun.Task
	length int64 // atomic: tasks queued on this worker and not yet picked up (a running task is not counted)
}

// NewPool spawns n workers rooted at defaultWD (the driver's working
// directory, used when a task does not set its own). provider may be
// metrics.NewNoopProvider() if the caller does not want instrumentation.
func NewPool(n int, defaultWD string, log zerolog.Logger, provider metrics.Provider) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{
		done:      make(chan *sweeprun.Task, n*4),
		defaultWD: defaultWD,
		log:       log,
		metrics:   provider,
	}
	instrumentAttrs := metrics.WithAttributes(map[string]string{"workers": strconv.Itoa(n)})
	p.tasksStarted = provider.Counter("sweeprun_exec_tasks_started_total",
		metrics.WithUnit("1"), metrics.WithDescription("tasks submitted to the worker pool"), instrumentAttrs)
	p.tasksFailed = provider.Counter("sweeprun_exec_tasks_failed_total",
		metrics.WithUnit("1"), metrics.WithDescription("tasks whose command or score parsing failed"), instrumentAttrs)
	p.taskDuration = provider.Histogram("sweeprun_exec_task_duration_seconds",
		metrics.WithUnit("seconds"), metrics.WithDescription("wall-clock time to execute one task's commands"), instrumentAttrs)
	p.inFlight = provider.UpDownCounter("sweeprun_exec_tasks_in_flight",
		metrics.WithUnit("1"), metrics.WithDescription("tasks currently executing across all workers"), instrumentAttrs)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wq := &workerQueue{in: make(chan *sweeprun.Task, queueCapacity)}
		p.workers = append(p.workers, wq)
		wg.Add(1)
		go func(wq *workerQueue) {
			defer wg.Done()
			p.runWorker(wq)
		}(wq)
	}
	go func() {
		wg.Wait()
		close(p.done)
	}()

	return p
}

func (p *Pool) runWorker(wq *workerQueue) {
	for t := range wq.in {
		atomic.AddInt64(&wq.length, -1)
		p.execute(t)
		p.done <- t
	}
}

// Submit implements sweeprun.Pool.
func (p *Pool) Submit(t *sweeprun.Task) {
	best := 0
	bestLen := atomic.LoadInt64(&p.workers[0].length)
	for i := 1; i < len(p.workers) && bestLen > 0; i++ {
		if l := atomic.LoadInt64(&p.workers[i].length); l < bestLen {
			bestLen = l
			best = i
		}
	}
	atomic.AddInt64(&p.workers[best].length, 1)
	p.workers[best].in <- t
}

// Next implements sweeprun.Pool.
func (p *Pool) Next() (*sweeprun.Task, bool) {
	t, ok := <-p.done
	return t, ok
}

// End implements sweeprun.Pool: closes every worker's input queue, letting
// already-queued tasks finish before each worker goroutine exits.
func (p *Pool) End() {
	for _, wq := range p.workers {
		close(wq.in)
	}
}
