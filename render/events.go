// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

// Event identifies a render notification.
type Event int

const (
	// EventPreRender fires before a frame is drawn.
	EventPreRender Event = iota

	// EventPostRender fires after a frame is drawn.
	EventPostRender
)

// String returns the event name.
func (e Event) String() string {
	switch e {
	case EventPreRender:
		return "PreRender"
	case EventPostRender:
		return "PostRender"
	default:
		return "Unknown"
	}
}

// Subscription identifies a registered callback. The zero value never
// identifies a live subscription.
type Subscription uint64

// EventSource is implemented by anything that announces frames, such as a
// window, a compositor client or a software render loop.
type EventSource interface {
	// Subscribe registers fn for ev and returns a handle for Unsubscribe.
	Subscribe(ev Event, fn func()) Subscription

	// Unsubscribe removes a callback. Unknown handles are ignored.
	Unsubscribe(sub Subscription)
}

type handler struct {
	sub Subscription
	ev  Event
	fn  func()
}

// Events is a minimal EventSource that render loops drive with Emit.
//
// Events is NOT thread-safe; it is meant to be driven from the render
// goroutine, like the renderers in backend/software.
type Events struct {
	next     Subscription
	handlers []handler
}

// Subscribe registers fn for ev.
func (e *Events) Subscribe(ev Event, fn func()) Subscription {
	e.next++
	e.handlers = append(e.handlers, handler{sub: e.next, ev: ev, fn: fn})
	return e.next
}

// Unsubscribe removes the callback registered under sub.
func (e *Events) Unsubscribe(sub Subscription) {
	for i, h := range e.handlers {
		if h.sub == sub {
			e.handlers = append(e.handlers[:i:i], e.handlers[i+1:]...)
			return
		}
	}
}

// Emit calls every callback registered for ev in subscription order.
// Callbacks may subscribe or unsubscribe while being called; changes take
// effect with the next Emit.
func (e *Events) Emit(ev Event) {
	snapshot := append([]handler(nil), e.handlers...)
	for _, h := range snapshot {
		if h.ev == ev {
			h.fn()
		}
	}
}

// Len returns the number of live subscriptions.
func (e *Events) Len() int {
	return len(e.handlers)
}

// Ensure Events implements EventSource.
var _ EventSource = (*Events)(nil)
