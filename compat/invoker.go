package compat

import (
	"context"
	"fmt"
	"sync"

	"github.com/appdeploykit/compat-framework/param"
)

// Invoker is the facade's outbound interface: the new API. Each facade call
// delegates to exactly one replacement operation with the final rewritten
// parameter mapping. The returned value is forwarded to the caller verbatim
// when pass-through applies.
type Invoker interface {
	Invoke(ctx context.Context, def Definition, params param.Bag) (any, error)
}

// Handler implements one replacement operation.
type Handler func(ctx context.Context, params param.Bag) (any, error)

// Dispatcher is an Invoker backed by handlers registered per Definition.
// Registration happens once at startup; Invoke is safe for concurrent use.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string]Handler)}
}

// Register binds a handler to a replacement operation definition. The binding
// is keyed by ID and version, so two versions of one operation can coexist.
func (d *Dispatcher) Register(def Definition, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.handlers[dispatchKey(def)] = h
}

// Invoke routes the call to the registered handler.
func (d *Dispatcher) Invoke(ctx context.Context, def Definition, params param.Bag) (any, error) {
	d.mu.RLock()
	h, ok := d.handlers[dispatchKey(def)]
	d.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("no handler registered for %s", dispatchKey(def))
	}

	return h(ctx, params)
}

func dispatchKey(def Definition) string {
	version := "0.0.0"
	if def.Version != nil {
		version = def.Version.String()
	}

	return def.ID + "@" + version
}
