package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureHandler struct {
	got []Event
}

func (h *captureHandler) HandleEvent(_ context.Context, ev Event) error {
	h.got = append(h.got, ev)
	return nil
}

func TestDispatchDecodesEnvelope(t *testing.T) {
	h := &captureHandler{}
	ev := New(BookingCreated, "hotel-1", map[string]string{"room_number": "101"})
	body, err := json.Marshal(ev)
	require.NoError(t, err)

	require.NoError(t, Dispatch(context.Background(), h, body))
	require.Len(t, h.got, 1)
	assert.Equal(t, ev.ID, h.got[0].ID)
	assert.Equal(t, "101", h.got[0].Data["room_number"])
}

func TestDispatchRejectsGarbage(t *testing.T) {
	h := &captureHandler{}
	assert.Error(t, Dispatch(context.Background(), h, []byte("not json")))
	assert.Error(t, Dispatch(context.Background(), h, []byte(`{"id":"x"}`)))
	assert.Empty(t, h.got)
}

func TestInProcessPublisher(t *testing.T) {
	p := NewInProcessPublisher(nil)
	require.NoError(t, p.Publish(context.Background(), New(SignedIn, "", nil)))

	h := &captureHandler{}
	p.SetHandler(h)
	require.NoError(t, p.Publish(context.Background(), New(SignedOut, "", nil)))
	require.Len(t, h.got, 1)
	assert.Equal(t, SignedOut, h.got[0].Type)
}
