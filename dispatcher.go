package telegram

import (
	"fmt"
	"sync"
)

// Handler consumes one classified update. Handlers run synchronously on
// the polling goroutine in registration order, so a slow handler delays
// the next poll cycle. A returned error (or a panic, which is converted
// into one) is reported on the poller's error channel and never affects
// sibling handlers, later items in the batch, or the loop itself.
type Handler func(update Update) error

// Dispatcher fans classified updates out to registered handlers.
//
// Handlers registered with Handle fire for one update category only.
// Handlers registered with HandleAll fire for every update, after the
// category handlers. Registration order is preserved within each group.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[UpdateType][]Handler
	catchAll []Handler
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[UpdateType][]Handler)}
}

// Handle registers a handler for one update category.
func (d *Dispatcher) Handle(t UpdateType, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[t] = append(d.handlers[t], h)
}

// HandleAll registers a handler invoked for every update regardless of
// category, after the category handlers have run.
func (d *Dispatcher) HandleAll(h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.catchAll = append(d.catchAll, h)
}

// Dispatch invokes every handler registered for the category, then
// every catch-all handler, synchronously in registration order. It
// returns the collected failures; a failing handler never blocks
// delivery to the handlers after it.
func (d *Dispatcher) Dispatch(t UpdateType, update Update) []error {
	d.mu.RLock()
	routes := d.handlers[t]
	catchAll := d.catchAll
	d.mu.RUnlock()

	var errs []error
	for _, h := range routes {
		if err := safeInvoke(h, update); err != nil {
			errs = append(errs, err)
		}
	}
	for _, h := range catchAll {
		if err := safeInvoke(h, update); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// safeInvoke runs one handler, converting a panic into an error so a
// misbehaving handler cannot take down the polling loop.
func safeInvoke(h Handler, update Update) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return h(update)
}
