package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventPassStart EventType = "pass_start"
	EventPassEnd   EventType = "pass_end"
	EventRepair    EventType = "repair"
)

// PassScope tells whether a pass visited the edit's changed set or the whole document.
type PassScope string

const (
	ScopeChanged  PassScope = "changed"
	ScopeDocument PassScope = "document"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// PassEvent marks the start or the end of one reconciliation pass.
type PassEvent struct {
	EventBase
	Pass  int       `json:"pass"`
	Scope PassScope `json:"scope"`
	// Visited and Changed are only set on pass end.
	Visited int  `json:"visited,omitempty"`
	Changed bool `json:"changed,omitempty"`
}

// RepairEvent is emitted for every node modified by attribute defaults or postfixers.
type RepairEvent struct {
	EventBase
	Pass    int    `json:"pass"`
	Element string `json:"element"`
	Kind    Kind   `json:"kind"`
	Path    []int  `json:"path"`
}

// LifecycleHooks defines callbacks for reconciliation observability.
type LifecycleHooks struct {
	OnPassStart func(context.Context, *PassEvent)
	OnPassEnd   func(context.Context, *PassEvent)
	OnRepair    func(context.Context, *RepairEvent)
}

// Merge returns hooks that call h first and then other for each event.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnPassStart: chain(h.OnPassStart, other.OnPassStart),
		OnPassEnd:   chain(h.OnPassEnd, other.OnPassEnd),
		OnRepair:    chain(h.OnRepair, other.OnRepair),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
