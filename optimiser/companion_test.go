package optimiser

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestCompanion_ProposeDeliverRoundTrip(t *testing.T) {
	c := newCompanion(2, zerolog.Nop())
	scoreCh := make(chan float64, 1)

	go func() {
		scoreCh <- c.propose(Location{1, 2})
	}()

	loc, ok := c.nextLocation()
	require.True(t, ok)
	require.Equal(t, Location{1, 2}, loc)

	c.deliver(loc, 42)

	select {
	case score := <-scoreCh:
		require.Equal(t, 42.0, score)
	case <-time.After(time.Second):
		t.Fatal("propose never returned")
	}

	c.finish()
	_, ok = c.nextLocation()
	require.False(t, ok)
}

func TestCompanion_FinishIsIdempotent(t *testing.T) {
	c := newCompanion(1, zerolog.Nop())
	c.finish()
	require.NotPanics(t, func() { c.finish() })
	require.True(t, c.isFinished())
}

func TestCompanion_DeliverForUnknownLocationIsDropped(t *testing.T) {
	c := newCompanion(1, zerolog.Nop())
	require.NotPanics(t, func() { c.deliver(Location{99}, 1) })

	c.mu.Lock()
	defer c.mu.Unlock()
	require.Empty(t, c.pending)
}

func TestCompanion_DuplicateProposalsArePromotedFIFO(t *testing.T) {
	c := newCompanion(4, zerolog.Nop())
	loc := Location{7}

	started := make(chan struct{}, 2)
	results := make(chan float64, 2)
	for i := 0; i < 2; i++ {
		go func() {
			started <- struct{}{}
			results <- c.propose(loc.Clone())
		}()
	}
	<-started
	<-started

	first, ok := c.nextLocation()
	require.True(t, ok)
	second, ok := c.nextLocation()
	require.True(t, ok)
	require.Equal(t, loc, first)
	require.Equal(t, loc, second)

	c.deliver(loc, 1)
	c.deliver(loc, 2)

	got := map[float64]bool{}
	got[<-results] = true
	got[<-results] = true
	require.True(t, got[1])
	require.True(t, got[2])
}
