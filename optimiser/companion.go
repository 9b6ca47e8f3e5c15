package optimiser

import (
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// companion is the rendezvous point between the scheduler (this process's main
// goroutine, driving the experiment tree) and a companion execution context
// running a blocking search library (spec §4.2.2). It owns:
//
//   - a location channel the library's objective function pushes proposals
//     onto before blocking for a score;
//   - a score registry keyed by a canonical encoding of the location, so a
//     proposal and its eventual update can be matched even if the value's
//     last bits change along the way (see canonicalKey);
//   - a sync.Cond coordinating an arbitrary number of concurrently-blocked
//     objective calls (population-based libraries may propose several points
//     before any of them is scored) against the scheduler's single Update
//     caller. propose re-checks its predicate in a loop around Cond.Wait, so a
//     spurious or unrelated wakeup just waits again; one Cond replaces the
//     "available_update" / "update_found" signal pair.
type companion struct {
	mu   sync.Mutex
	cond *sync.Cond

	// proposed counts in-flight proposals per canonical key, so a deliver for
	// a key nobody proposed is detected as a SchedulerError rather than
	// silently queued forever.
	proposed map[string]int
	// pending holds delivered scores not yet claimed by a waiting objective
	// call, promoted to a FIFO when the library re-proposes the same point
	// before the previous score arrives (spec §9).
	pending map[string][]float64

	locCh  chan Location
	doneCh chan struct{}

	log zerolog.Logger

	closeOnce sync.Once
}

func newCompanion(bufSize int, log zerolog.Logger) *companion {
	if bufSize < 1 {
		bufSize = 1
	}
	c := &companion{
		proposed: make(map[string]int),
		pending:  make(map[string][]float64),
		locCh:    make(chan Location, bufSize),
		doneCh:   make(chan struct{}),
		log:      log,
	}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// canonicalKey renders each float64 at a fixed precision (10 significant
// digits), so a location that comes back through Update with its last bits
// changed (for example by the exp/log conversion of a log-scaled dimension)
// still maps to the key it was proposed under, unless the change happens to
// cross a rounding boundary of the tenth digit. Distinct points that agree to
// 10 significant digits share a key.
func canonicalKey(loc Location) string {
	var sb strings.Builder
	for i, v := range loc {
		if i > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(strconv.FormatFloat(v, 'e', 9, 64))
	}
	return sb.String()
}

// propose is called from the companion execution context: it publishes x on
// the location channel and then blocks until a matching score is delivered.
func (c *companion) propose(x Location) float64 {
	key := canonicalKey(x)

	c.mu.Lock()
	c.proposed[key]++
	c.mu.Unlock()

	c.locCh <- x.Clone()

	c.mu.Lock()
	for len(c.pending[key]) == 0 {
		c.cond.Wait()
	}
	q := c.pending[key]
	score := q[0]
	if len(q) == 1 {
		delete(c.pending, key)
	} else {
		c.pending[key] = q[1:]
	}
	c.proposed[key]--
	if c.proposed[key] <= 0 {
		delete(c.proposed, key)
	}
	c.mu.Unlock()

	return score
}

// deliver is called from the scheduler goroutine (via Update) with a score for
// a location previously produced by nextLocation.
func (c *companion) deliver(x Location, score float64) {
	key := canonicalKey(x)

	c.mu.Lock()
	if c.proposed[key] <= 0 {
		c.mu.Unlock()
		c.log.Warn().Str("location", key).Msg("sweeprun: update for a location the optimiser never proposed, dropping")
		return
	}
	c.pending[key] = append(c.pending[key], score)
	c.mu.Unlock()

	c.cond.Broadcast()
}

// nextLocation consumes the next proposal, or reports done once finish has
// been called and the channel has drained.
func (c *companion) nextLocation() (Location, bool) {
	x, ok := <-c.locCh
	return x, ok
}

// finish is called once the library's blocking Optimize call returns. It
// closes the done channel and the location channel (so nextLocation reports
// done — spec §4.2.2 "pushes ... a null on the location channel") and logs any
// registry entries nobody ever delivered a matching score for (spec §9 Orphan
// registry entries).
func (c *companion) finish() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		for key, n := range c.proposed {
			if n > 0 {
				c.log.Warn().Str("location", key).Msg("sweeprun: orphan optimiser proposal never scored, dropping")
			}
		}
		c.proposed = make(map[string]int)
		c.pending = make(map[string][]float64)
		c.mu.Unlock()

		close(c.doneCh)
		close(c.locCh)
	})
}

func (c *companion) isFinished() bool {
	select {
	case <-c.doneCh:
		return true
	default:
		return false
	}
}
