// Package jobs schedules the background work that runs beside the HTTP server.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"checkinly-backend/services"
	"checkinly-backend/utils"
)

// Sweeper is implemented by services.LockMonitor.
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

var _ Sweeper = (*services.LockMonitor)(nil)

// StartLockSweep runs sweeper on spec (cron syntax or "@every 1m") in UTC.
// Overlapping runs are skipped. The returned cron must be stopped on shutdown.
func StartLockSweep(spec string, sweeper Sweeper) (*cron.Cron, error) {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := sweeper.Sweep(ctx); err != nil {
			utils.Logger.WithError(err).Error("lock sweep failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule lock sweep %q: %w", spec, err)
	}

	c.Start()
	utils.Logger.Infof("⏱️ lock sweep scheduled (%s)", spec)
	return c, nil
}
