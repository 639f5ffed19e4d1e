package guardkit

import (
	"context"
	"sort"
	"sync"
)

// MemoryDispatcher is an in-process EventDispatcher. Handlers run
// synchronously, in subscription order, on the dispatching goroutine;
// Dispatch returns once every handler has run.
type MemoryDispatcher struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[string]map[int]EventHandler
}

// NewMemoryDispatcher creates a dispatcher with no subscriptions.
func NewMemoryDispatcher() *MemoryDispatcher {
	return &MemoryDispatcher{
		handlers: make(map[string]map[int]EventHandler),
	}
}

// Subscribe registers a handler for an event and returns a subscription
// id for Unsubscribe.
func (d *MemoryDispatcher) Subscribe(event string, handler EventHandler) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	if d.handlers[event] == nil {
		d.handlers[event] = make(map[int]EventHandler)
	}
	d.handlers[event][d.nextID] = handler
	return d.nextID
}

// Unsubscribe removes a subscription. Unknown ids are ignored.
func (d *MemoryDispatcher) Unsubscribe(event string, id int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if subs, ok := d.handlers[event]; ok {
		delete(subs, id)
	}
}

// Dispatch delivers the event to every subscribed handler. Dispatching
// an event with no subscribers is a no-op.
func (d *MemoryDispatcher) Dispatch(ctx context.Context, event string, payload any) error {
	d.mu.RLock()
	subs := d.handlers[event]
	ids := make([]int, 0, len(subs))
	for id := range subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	handlers := make([]EventHandler, 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, subs[id])
	}
	d.mu.RUnlock()

	for _, handler := range handlers {
		handler(ctx, event, payload)
	}
	return nil
}
