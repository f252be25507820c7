package jobs

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSweeper struct {
	calls atomic.Int32
}

func (s *countingSweeper) Sweep(context.Context) (int, error) {
	s.calls.Add(1)
	return 0, nil
}

func TestStartLockSweepRejectsBadSpec(t *testing.T) {
	_, err := StartLockSweep("not a schedule", &countingSweeper{})
	assert.Error(t, err)
}

func TestStartLockSweepRuns(t *testing.T) {
	s := &countingSweeper{}
	c, err := StartLockSweep("@every 1s", s)
	require.NoError(t, err)
	defer c.Stop()

	assert.Eventually(t, func() bool { return s.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}
