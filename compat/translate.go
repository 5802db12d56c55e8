package compat

import (
	"fmt"

	"github.com/appdeploykit/compat-framework/param"
)

// Translation is the working state of a legacy-call rewrite and, once
// complete, its outcome. It starts from a copy of the supplied mapping; the
// caller's Bag is never mutated.
type Translation struct {
	// Op is the legacy operation being translated.
	Op *Operation

	// Bag is the in-progress parameter mapping. Steps replace it with
	// rewritten copies; after Translate returns it is the final mapping to
	// forward to the replacement operation.
	Bag param.Bag

	// DeadNotices collects dead-parameter notices recorded by Drop steps, in
	// step order. The facade decides whether they are emitted.
	DeadNotices []Notice

	// ContinueOnError is the caller's error-mode preference, taken from the
	// operation's continue-on-error parameter or its default.
	ContinueOnError bool

	// PassThru reports whether the caller asked for the replacement's result
	// value.
	PassThru bool
}

// Translate rewrites a supplied legacy parameter mapping into the mapping to
// forward to op's replacement. It applies the dead-parameter and rewrite
// steps in order, runs validating steps, and enforces that the final mapping
// is a subset of the replacement's accepted parameters.
//
// Translate is a pure function of (op, supplied): it performs no I/O beyond
// what validating steps require and emits nothing; repeated calls with the
// same input yield the same Translation.
//
// On error the partial Translation is returned alongside it, so notices
// recorded before the failing step (dead-parameter drops in particular) are
// not lost. Catalog rule sets list Drop steps before rewrites and validators
// for this reason.
func Translate(op *Operation, supplied param.Bag) (*Translation, error) {
	t := &Translation{Op: op, Bag: supplied}

	// The error-mode and pass-through parameters are consumed by the facade
	// and never forwarded.
	t.ContinueOnError = op.coeDefault
	if v, ok := t.Bag.Bool(op.coeParam); ok {
		t.ContinueOnError = v
	}
	t.Bag = t.Bag.Without(op.coeParam)

	if op.passThru != "" {
		if v, ok := t.Bag.Bool(op.passThru); ok {
			t.PassThru = v
		}
		if !op.acceptsParam(op.passThru) {
			t.Bag = t.Bag.Without(op.passThru)
		}
	}

	for _, step := range op.Steps {
		if err := step.Apply(t); err != nil {
			return t, err
		}
	}

	for _, name := range t.Bag.Names() {
		if !op.acceptsParam(name) {
			return t, fmt.Errorf("%s: %q: %w", op.Name, name, ErrUnmappedParameter)
		}
	}

	return t, nil
}
