package handlers

import (
	"fmt"
	"sync"

	"synth-dashboard/internal/models"
)

// Event names a control change on a dashboard page.
type Event string

const (
	EventRegions    Event = "regions"
	EventCategories Event = "categories"
	EventSalesRange Event = "sales-range"
	EventRefresh    Event = "refresh"
)

// RecomputeHandler turns a new filter state into the derived views.
type RecomputeHandler func(models.FilterState) models.DerivedViews

type subscription struct {
	event   Event
	handler RecomputeHandler
}

// EventBus dispatches control changes to the handler subscribed to them.
// Subscribing an event again replaces its handler.
type EventBus struct {
	mu   sync.RWMutex
	subs []subscription
}

func NewEventBus() *EventBus {
	return &EventBus{}
}

func (b *EventBus) Subscribe(event Event, handler RecomputeHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.subs {
		if b.subs[i].event == event {
			b.subs[i].handler = handler
			return
		}
	}
	b.subs = append(b.subs, subscription{event: event, handler: handler})
}

// Publish runs the handler subscribed to event.
func (b *EventBus) Publish(event Event, f models.FilterState) (models.DerivedViews, error) {
	b.mu.RLock()
	var handler RecomputeHandler
	for _, s := range b.subs {
		if s.event == event {
			handler = s.handler
			break
		}
	}
	b.mu.RUnlock()

	if handler == nil {
		return models.DerivedViews{}, fmt.Errorf("no handler subscribed to event %q", event)
	}
	return handler(f), nil
}

func (b *EventBus) Events() []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	events := make([]Event, len(b.subs))
	for i, s := range b.subs {
		events[i] = s.event
	}
	return events
}

// controlEvents are wired to the recompute step on every dashboard.
var controlEvents = []Event{EventRegions, EventCategories, EventSalesRange, EventRefresh}

func newDashboardBus(recompute RecomputeHandler) *EventBus {
	bus := NewEventBus()
	for _, e := range controlEvents {
		bus.Subscribe(e, recompute)
	}
	return bus
}
