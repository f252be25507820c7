// Package events carries domain events between the HTTP services and the
// notification pipeline, over RabbitMQ when configured or in-process otherwise.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	BookingCreated    = "booking.created"
	GuestCheckedIn    = "guest.checked_in"
	PaymentCompleted  = "payment.completed"
	LockStatusChanged = "lock.status_changed"
	RoomMaintenance   = "room.maintenance"
	SignedIn          = "auth.signed_in"
	SignedOut         = "auth.signed_out"
)

// Event is the JSON envelope published for every domain change.
type Event struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	HotelID    string            `json:"hotel_id,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
	Data       map[string]string `json:"data,omitempty"`
}

func New(eventType, hotelID string, data map[string]string) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		HotelID:    hotelID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// Handler consumes events; NotificationService is the production handler.
type Handler interface {
	HandleEvent(ctx context.Context, ev Event) error
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}
