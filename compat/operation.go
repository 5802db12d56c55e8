package compat

import (
	"slices"

	"github.com/Masterminds/semver/v3"
)

// Definition identifies a replacement (new-API) operation by ID and version.
type Definition struct {
	ID          string          `json:"id" yaml:"id"`
	Version     *semver.Version `json:"version" yaml:"version"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
}

// NewDefinition creates a Definition. Version must be valid semver.
func NewDefinition(id, version, description string) Definition {
	return Definition{
		ID:          id,
		Version:     semver.MustParse(version),
		Description: description,
	}
}

// DefaultContinueOnErrorParam is the conventional legacy parameter name that
// selects the error mode.
const DefaultContinueOnErrorParam = "ContinueOnError"

// Operation describes one legacy operation: its fixed historical surface and
// the ordered translation steps that rewrite a legacy call into a call to the
// replacement operation.
//
// Accepts is the complete parameter set of the replacement operation. After
// all steps run, every forwarded parameter must be contained in it; anything
// else is a rule-set defect and fails the call.
type Operation struct {
	// Name is the legacy operation name, e.g. "Remove-File". It is the
	// facade's compatibility contract and never changes.
	Name string

	// Replacement is the new-API operation this legacy operation delegates to.
	Replacement Definition

	// Accepts lists every parameter name the replacement operation accepts.
	Accepts []string

	// Steps are applied in order during translation.
	Steps []Step

	coeParam   string
	coeDefault bool
	passThru   string
	pipeline   string
}

// OperationOption configures optional Operation behavior.
type OperationOption func(*Operation)

// WithContinueOnError sets the legacy parameter name that carries the
// caller's continue-on-error preference and its default when not supplied.
// The parameter is consumed by the facade and never forwarded.
func WithContinueOnError(name string, def bool) OperationOption {
	return func(o *Operation) {
		o.coeParam = name
		o.coeDefault = def
	}
}

// WithPassThru declares that the legacy operation returns the replacement's
// result when the named switch parameter is supplied as true. The parameter
// itself is forwarded only if the replacement accepts it.
func WithPassThru(name string) OperationOption {
	return func(o *Operation) {
		o.passThru = name
	}
}

// WithPipeline declares the streaming variant: the named parameter
// historically accepted items one at a time and is now batched into a single
// delegated call.
func WithPipeline(name string) OperationOption {
	return func(o *Operation) {
		o.pipeline = name
	}
}

// NewOperation creates a legacy Operation. The continue-on-error parameter
// defaults to "ContinueOnError" with a false default; use WithContinueOnError
// to override either.
func NewOperation(
	name string, replacement Definition, accepts []string, steps []Step, opts ...OperationOption,
) *Operation {
	op := &Operation{
		Name:        name,
		Replacement: replacement,
		Accepts:     accepts,
		Steps:       steps,
		coeParam:    DefaultContinueOnErrorParam,
	}
	for _, opt := range opts {
		opt(op)
	}

	return op
}

// ContinueOnErrorParam returns the name of the continue-on-error parameter.
func (o *Operation) ContinueOnErrorParam() string { return o.coeParam }

// PassThruParam returns the pass-through switch name, or "" when the
// operation never returns a value.
func (o *Operation) PassThruParam() string { return o.passThru }

// PipelineParam returns the batched pipeline parameter name, or "" for
// non-streaming operations.
func (o *Operation) PipelineParam() string { return o.pipeline }

// Streaming reports whether the operation uses the batching pipeline variant.
func (o *Operation) Streaming() bool { return o.pipeline != "" }

func (o *Operation) acceptsParam(name string) bool {
	return slices.Contains(o.Accepts, name)
}
