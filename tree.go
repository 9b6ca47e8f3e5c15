package sweeprun

// Pool is everything the driver loop needs from a worker pool (spec §4.1):
// submit a task, block for the next completion in arrival order, and signal
// that no more submissions are coming. package exec's Pool implements this;
// it is expressed as an interface here so this package never imports exec
// (exec imports this package for Task).
type Pool interface {
	// Submit enqueues t for execution. It must not block once the pool has
	// capacity to accept it.
	Submit(t *Task)

	// Next blocks for the next task to finish, in arrival order, or reports
	// ok=false once End has been called and every submitted task has been
	// delivered.
	Next() (t *Task, ok bool)

	// End signals every worker to drain its queue and exit once empty. It
	// does not cancel in-flight subprocesses (spec §4.3.3 Cancellation).
	End()
}

// Run drives root to completion against pool, implementing the protocol of
// spec §4.3.3: submit every ready task, check done-ness between batches
// (completing a task can make a previously-empty optimiser produce a new
// location), and otherwise block for the next completion.
//
// fixed is the root-level "fixed" mapping from the configuration (spec §6),
// passed as every node's outermost ancestor parameter assignment.
//
// Run returns the first ConfigError raised while lazily initialising any
// node, surfaced via Node.Err, or nil on a clean run.
func Run(root Node, pool Pool, fixed map[string]string) error {
	for {
		for root.IsTaskReady() {
			tasks := root.GetNextTasks(fixed)
			if err := root.Err(); err != nil {
				return err
			}
			for _, t := range tasks {
				pool.Submit(t)
			}
		}

		if err := root.Err(); err != nil {
			return err
		}

		if root.IsDone() {
			pool.End()
			drain(root, pool)
			return root.Err()
		}

		t, ok := pool.Next()
		if !ok {
			return root.Err()
		}
		root.UpdateFinishedTask(t)
	}
}

// drain absorbs every task still in flight once the tree has no further work
// to produce, so a worker that was mid-subprocess when the last location was
// consumed is not left unaccounted for.
func drain(root Node, pool Pool) {
	for {
		t, ok := pool.Next()
		if !ok {
			return
		}
		root.UpdateFinishedTask(t)
	}
}
