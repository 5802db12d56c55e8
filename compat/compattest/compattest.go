// Package compattest provides utilities for facade testing.
package compattest

import (
	"context"
	"sync"
	"testing"

	"github.com/appdeploykit/compat-framework/compat"
	"github.com/appdeploykit/compat-framework/param"
	"github.com/appdeploykit/compat-framework/pkg/logger"
)

// Call records one delegated invocation received by the fake invoker.
type Call struct {
	Def    compat.Definition
	Params param.Bag
}

// Invoker is a scripted fake for the new API. Handlers are registered per
// replacement ID; unscripted IDs return a nil output. Every delegated call is
// recorded.
type Invoker struct {
	mu       sync.Mutex
	calls    []Call
	handlers map[string]compat.Handler
}

// NewInvoker creates an empty fake invoker.
func NewInvoker() *Invoker {
	return &Invoker{handlers: make(map[string]compat.Handler)}
}

// On scripts the response for a replacement operation ID, regardless of
// version.
func (i *Invoker) On(id string, h compat.Handler) *Invoker {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.handlers[id] = h

	return i
}

// OnError scripts a constant failure for a replacement operation ID.
func (i *Invoker) OnError(id string, err error) *Invoker {
	return i.On(id, func(context.Context, param.Bag) (any, error) {
		return nil, err
	})
}

// Invoke records the call and runs the scripted handler, if any.
func (i *Invoker) Invoke(ctx context.Context, def compat.Definition, params param.Bag) (any, error) {
	i.mu.Lock()
	h := i.handlers[def.ID]
	i.calls = append(i.calls, Call{Def: def, Params: params})
	i.mu.Unlock()

	if h == nil {
		return nil, nil
	}

	return h(ctx, params)
}

// Calls returns all recorded calls in arrival order.
func (i *Invoker) Calls() []Call {
	i.mu.Lock()
	defer i.mu.Unlock()

	calls := make([]Call, len(i.calls))
	copy(calls, i.calls)

	return calls
}

// CallCount returns the number of delegated calls received.
func (i *Invoker) CallCount() int {
	i.mu.Lock()
	defer i.mu.Unlock()

	return len(i.calls)
}

// NewFacade creates a facade for testing with a test logger, the given
// registry, and a fresh fake invoker.
func NewFacade(t *testing.T, reg *compat.Registry, opts ...compat.Option) (*compat.Facade, *Invoker) {
	t.Helper()

	invoker := NewInvoker()
	opts = append([]compat.Option{compat.WithRegistry(reg)}, opts...)

	return compat.New(logger.Test(t), invoker, opts...), invoker
}
