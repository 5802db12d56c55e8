package compat

import (
	"context"
	"fmt"

	"github.com/appdeploykit/compat-framework/param"
)

// Stream accumulates pipeline input for a streaming-variant legacy operation.
// Items are collected across the whole invocation and delegated in a single
// batched call when Close is called, never one call per item. Callers that
// relied on per-item round-trips observe a different call count but identical
// aggregate results.
//
// A Stream is single-use and not safe for concurrent use, matching the
// synchronous, one-call-at-a-time model of the underlying session.
type Stream struct {
	facade   *Facade
	ctx      context.Context
	name     string
	supplied param.Bag
	opts     []InvokeOption
	items    []any
	closed   bool
}

// Stream begins a batched invocation of the named streaming operation. The
// supplied Bag carries the non-pipeline parameters; pipeline items are fed
// through Add. The operation's rules run once, at Close.
func (f *Facade) Stream(ctx context.Context, name string, supplied param.Bag, opts ...InvokeOption) *Stream {
	return &Stream{
		facade:   f,
		ctx:      ctx,
		name:     name,
		supplied: supplied,
		opts:     opts,
	}
}

// Add appends pipeline items. Nil, empty-string, and empty-slice items are
// discarded; everything else is kept in arrival order.
func (s *Stream) Add(items ...any) *Stream {
	for _, item := range items {
		if isEmptyItem(item) {
			continue
		}
		s.items = append(s.items, item)
	}

	return s
}

// Len returns the number of accumulated items.
func (s *Stream) Len() int {
	return len(s.items)
}

// Close performs the invocation: notices, translation, validation, and a
// single delegated call carrying all accumulated items bound to the
// operation's pipeline parameter. Closing twice is an error.
func (s *Stream) Close() (Result, error) {
	if s.closed {
		return Result{}, fmt.Errorf("%s: stream already closed", s.name)
	}
	s.closed = true

	op, err := s.facade.registry.Retrieve(s.name)
	if err != nil {
		return Result{}, err
	}
	if !op.Streaming() {
		return Result{}, fmt.Errorf("%s: operation does not accept pipeline input", s.name)
	}

	items, n := normalizeItems(s.items)
	supplied := s.supplied.With(op.PipelineParam(), items)

	return s.facade.invoke(s.ctx, s.name, supplied, n, s.opts...)
}

func isEmptyItem(item any) bool {
	switch v := item.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	default:
		return false
	}
}

// normalizeItems flattens string slices and returns []string when every item
// is a string, which is the common pipeline shape (paths, messages). The
// second return is the final item count.
func normalizeItems(items []any) (any, int) {
	flat := make([]any, 0, len(items))
	for _, item := range items {
		if ss, ok := item.([]string); ok {
			for _, s := range ss {
				if s != "" {
					flat = append(flat, s)
				}
			}
			continue
		}
		flat = append(flat, item)
	}

	strs := make([]string, 0, len(flat))
	for _, item := range flat {
		s, ok := item.(string)
		if !ok {
			return flat, len(flat)
		}
		strs = append(strs, s)
	}

	return strs, len(strs)
}
