package events

import (
	"context"
	"sync"
)

// InProcessPublisher hands events straight to a handler in the caller's goroutine.
type InProcessPublisher struct {
	mu      sync.RWMutex
	handler Handler
}

func NewInProcessPublisher(h Handler) *InProcessPublisher {
	return &InProcessPublisher{handler: h}
}

// SetHandler wires the handler after construction, breaking the service init cycle.
func (p *InProcessPublisher) SetHandler(h Handler) {
	p.mu.Lock()
	p.handler = h
	p.mu.Unlock()
}

func (p *InProcessPublisher) Publish(ctx context.Context, ev Event) error {
	p.mu.RLock()
	h := p.handler
	p.mu.RUnlock()
	if h == nil {
		return nil
	}
	return h.HandleEvent(ctx, ev)
}

func (p *InProcessPublisher) Close() error { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	Events []Event
}

func (r *Recorder) Publish(_ context.Context, ev Event) error {
	r.mu.Lock()
	r.Events = append(r.Events, ev)
	r.mu.Unlock()
	return nil
}

func (r *Recorder) Close() error { return nil }

// Types returns the recorded event types in publish order.
func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.Events))
	for _, ev := range r.Events {
		out = append(out, ev.Type)
	}
	return out
}
