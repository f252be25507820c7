package services

import (
	"context"

	"checkinly-backend/events"
	"checkinly-backend/utils"
)

// publish is fire-and-forget: a broker outage never fails the request that
// already committed.
func publish(ctx context.Context, p events.Publisher, ev events.Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, ev); err != nil {
		utils.Logger.WithError(err).Warnf("⚠️ publish %s failed", ev.Type)
	}
}
