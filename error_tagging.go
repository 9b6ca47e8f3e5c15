package sweeprun

import (
	"errors"
	"fmt"
)

// TaskError exposes correlation metadata for a failed task: its unique id and the
// parameter assignment it was evaluating. Worker pool errors (§4.1 Failure) and
// unparseable scores are wrapped this way before they reach the tree, so a logged
// failure can always be traced back to a point in parameter space.
type TaskError interface {
	error
	Unwrap() error
	TaskID() uint64
	Params() map[string]string
}

type taskTaggedError struct {
	err    error
	id     uint64
	params map[string]string
}

func newTaskTaggedError(err error, id uint64, params map[string]string) error {
	if err == nil {
		return nil
	}
	return &taskTaggedError{err: err, id: id, params: params}
}

func (e *taskTaggedError) Error() string { return e.err.Error() }
func (e *taskTaggedError) Unwrap() error { return e.err }

func (e *taskTaggedError) TaskID() uint64 { return e.id }

func (e *taskTaggedError) Params() map[string]string { return e.params }

func (e *taskTaggedError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "task(id=%d,params=%v): %+v", e.id, e.params, e.err)
			return
		}
		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// ExtractTaskID returns the task ID from err if present.
func ExtractTaskID(err error) (uint64, bool) {
	var te TaskError
	if errors.As(err, &te) {
		return te.TaskID(), true
	}
	return 0, false
}

// ExtractTaskParams returns the parameter assignment a failed task was evaluating.
func ExtractTaskParams(err error) (map[string]string, bool) {
	var te TaskError
	if errors.As(err, &te) {
		return te.Params(), true
	}
	return nil, false
}
