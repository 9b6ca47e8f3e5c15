package exec

import (
	"bytes"
	"fmt"
	"os/exec"
	"time"

	"github.com/lucasbern/sweeprun"
	"github.com/lucasbern/sweeprun/pool"
)

// stdoutBuffers reuses *bytes.Buffer across task executions: a parameter
// sweep runs many short-lived subprocesses back to back, and a fresh buffer
// per command is the one allocation this hot path doesn't need.
var stdoutBuffers = pool.NewDynamic(func() interface{} { return new(bytes.Buffer) })

// execute runs every command of t in order through a shell, scoring each
// command's captured stdout (spec §4.1). Only the last command's score
// survives; earlier commands exist purely for setup.
func (p *Pool) execute(t *sweeprun.Task) {
	p.tasksStarted.Add(1)
	p.inFlight.Add(1)
	start := time.Now()
	defer func() {
		p.taskDuration.Record(time.Since(start).Seconds())
		p.inFlight.Add(-1)
	}()

	wd := t.WD
	if wd == "" {
		wd = p.defaultWD
	}

	var score float64
	for i, command := range t.Commands {
		out, err := runShell(command, wd)
		if err != nil {
			p.tasksFailed.Add(1)
			t.SetError(fmt.Errorf("%w: command %d (%q): %v", sweeprun.ErrTaskFailed, i, command, err))
			return
		}
		s, err := parseScore(out)
		if err != nil {
			p.tasksFailed.Add(1)
			t.SetError(fmt.Errorf("%w: command %d (%q): %v", sweeprun.ErrUnparseableScore, i, command, err))
			return
		}
		score = s
	}
	t.SetScore(score)
}

// runShell spawns command through a shell, capturing its standard output.
// wd overrides the process working directory when non-empty.
func runShell(command string, wd string) ([]byte, error) {
	cmd := exec.Command("sh", "-c", command)
	if wd != "" {
		cmd.Dir = wd
	}

	stdout := stdoutBuffers.Get().(*bytes.Buffer)
	stdout.Reset()
	defer stdoutBuffers.Put(stdout)

	cmd.Stdout = stdout
	if err := cmd.Run(); err != nil {
		return nil, err
	}
	// Copy out: stdout is returned to the pool before the caller is done
	// with the bytes.
	out := make([]byte, stdout.Len())
	copy(out, stdout.Bytes())
	return out, nil
}
