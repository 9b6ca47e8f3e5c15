package sweeprun

import "fmt"

// Task is a unit of work submitted to the worker pool (spec §3).
//
// Invariants: ID is unique for the lifetime of the process; Commands is
// non-empty; Score is set exactly once, and only by the worker that executed
// the task.
type Task struct {
	// ID is assigned by NewTask from a process-wide monotonic counter.
	ID uint64

	// Commands are shell command strings, already substituted with Params.
	// Only the last command's output is scored; earlier commands exist so a
	// caller can run setup plus the scored command as one atomic unit.
	Commands []string

	// Params is the parameter assignment this task evaluates, in user-visible
	// (string) form, suitable for display and for ${name} substitution.
	Params map[string]string

	// Location is the point the optimiser proposed for this task, as returned
	// by its NextLocation, or nil if the task did not come from an optimiser
	// (e.g. a Comparison leaf). Continuous dimensions carry the user-visible
	// (original-scale) value, not the natural log of a log-scaled axis;
	// categorical dimensions carry the index of the chosen alternative.
	Location []float64

	// WD is the working directory commands run in, or "" to use the driver's
	// current directory.
	WD string

	score    float64
	hasScore bool
	err      error
}

// NewTask constructs a Task with a fresh, process-wide unique ID.
func NewTask(commands []string, params map[string]string, location []float64, wd string) (*Task, error) {
	if len(commands) == 0 {
		return nil, ErrEmptyCommands
	}
	return &Task{
		ID:       nextTaskID(),
		Commands: commands,
		Params:   params,
		Location: location,
		WD:       wd,
	}, nil
}

// SetScore records the task's outcome. It may be called only once; a second
// call indicates a bug in the worker pool and panics rather than silently
// corrupting the result.
func (t *Task) SetScore(score float64) {
	if t.hasScore {
		panic(fmt.Sprintf("sweeprun: task %d score set twice", t.ID))
	}
	t.score = score
	t.hasScore = true
}

// SetError records a task failure (spec §7 TaskError). Like SetScore, it may
// only be called once.
func (t *Task) SetError(err error) {
	if t.hasScore {
		panic(fmt.Sprintf("sweeprun: task %d result set twice", t.ID))
	}
	t.err = newTaskTaggedError(err, t.ID, t.Params)
	t.hasScore = true
}

// Score returns the task's score and whether the task succeeded. A failed task
// returns (0, false); call Err to retrieve the failure.
func (t *Task) Score() (float64, bool) {
	return t.score, t.hasScore && t.err == nil
}

// Err returns the task's failure, if any.
func (t *Task) Err() error {
	return t.err
}

// Done reports whether the worker pool has filled in this task's result.
func (t *Task) Done() bool {
	return t.hasScore
}
