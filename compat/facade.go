package compat

import (
	"context"

	"github.com/avast/retry-go/v4"
	"github.com/segmentio/ksuid"

	"github.com/appdeploykit/compat-framework/param"
	"github.com/appdeploykit/compat-framework/pkg/logger"
)

// Facade exposes the legacy operation surface. For each invocation it emits
// the deprecation notices, translates the legacy parameter mapping, selects
// the error mode from the caller's continue-on-error preference, and
// delegates exactly once to the replacement operation through the Invoker.
//
// The notice suppression flag is fixed at construction. To change it, build a
// new Facade.
type Facade struct {
	lggr     logger.Logger
	invoker  Invoker
	registry *Registry
	reporter Reporter
	emitter  Emitter
	suppress bool
}

// Option configures a Facade.
type Option func(*Facade)

// WithRegistry sets the legacy operation registry.
func WithRegistry(r *Registry) Option {
	return func(f *Facade) { f.registry = r }
}

// WithReporter sets the invocation report store.
func WithReporter(r Reporter) Option {
	return func(f *Facade) { f.reporter = r }
}

// WithEmitter sets the deprecation notice destination.
func WithEmitter(e Emitter) Option {
	return func(f *Facade) { f.emitter = e }
}

// WithSuppressedNotices disables all deprecation notices, both the
// per-operation notice and dead-parameter notices. The two are deliberately
// coupled to one flag; parameters are still dropped when notices are
// suppressed.
func WithSuppressedNotices(suppress bool) Option {
	return func(f *Facade) { f.suppress = suppress }
}

// New creates a Facade delegating to invoker. By default it uses an empty
// registry, an in-memory reporter, and a log-backed notice emitter.
func New(lggr logger.Logger, invoker Invoker, opts ...Option) *Facade {
	f := &Facade{
		lggr:     lggr,
		invoker:  invoker,
		registry: NewRegistry(),
		reporter: NewMemoryReporter(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.emitter == nil {
		f.emitter = NewLogEmitter(lggr)
	}

	return f
}

// Registry returns the facade's operation registry.
func (f *Facade) Registry() *Registry { return f.registry }

// Result is the outcome of a facade invocation.
type Result struct {
	// Value is the replacement operation's result. For operations with a
	// pass-through switch it is set only when the caller supplied it as true.
	Value any

	// Continued reports that the replacement operation failed but the
	// failure was suppressed by the caller's continue-on-error preference.
	Continued bool

	// Report is the audit record of this invocation.
	Report Report
}

// InvokeConfig holds per-invocation settings.
type InvokeConfig struct {
	retryConfig RetryConfig
}

// InvokeOption configures a single invocation.
type InvokeOption func(*InvokeConfig)

// RetryConfig controls retry of the delegated execution. Translation and
// validation are never retried; they are pure and their failures are final.
type RetryConfig struct {
	Enabled bool
	Policy  RetryPolicy
}

// RetryPolicy defines the arguments to control the retry behavior.
type RetryPolicy struct {
	MaxAttempts uint
}

// options returns the 'avast/retry' functional options for the retry policy.
func (p RetryPolicy) options() []retry.Option {
	return []retry.Option{
		retry.Attempts(p.MaxAttempts),
	}
}

// WithRetry enables the default retry (3 attempts) for the delegated
// execution.
func WithRetry() InvokeOption {
	return func(c *InvokeConfig) {
		c.retryConfig.Enabled = true
	}
}

// WithRetryConfig sets a custom retry configuration for the delegated
// execution.
func WithRetryConfig(config RetryConfig) InvokeOption {
	return func(c *InvokeConfig) {
		c.retryConfig = config
	}
}

// NewUnrecoverableError marks an error returned by a replacement operation as
// final, cancelling any remaining retry attempts.
func NewUnrecoverableError(err error) error {
	return retry.Unrecoverable(err)
}

func newDisabledRetryConfig() RetryConfig {
	return RetryConfig{
		Enabled: false,
		Policy: RetryPolicy{
			MaxAttempts: 3,
		},
	}
}

// Invoke runs the named legacy operation with the supplied parameter mapping.
//
// Translation and validation failures (ContractViolationError,
// TranslationImpossibleError, unknown operations, unmapped parameters) are
// always returned as errors regardless of continue-on-error: they indicate a
// caller-side contract violation, not a transient execution failure.
// Execution failures from the replacement are returned as *ExecutionError, or
// suppressed into Result.Continued when the caller asked to continue on
// error.
func (f *Facade) Invoke(ctx context.Context, name string, supplied param.Bag, opts ...InvokeOption) (Result, error) {
	return f.invoke(ctx, name, supplied, 0, opts...)
}

func (f *Facade) invoke(ctx context.Context, name string, supplied param.Bag, batchSize int, opts ...InvokeOption) (Result, error) {
	op, err := f.registry.Retrieve(name)
	if err != nil {
		return Result{}, err
	}

	invocationID := ksuid.New().String()
	f.lggr.Debugw("Invoking legacy operation",
		"invocation_id", invocationID, "operation", op.Name,
		"replacement", op.Replacement.ID, "params", supplied.Render())

	// The deprecation notice precedes any validation failure so the caller
	// learns about the replacement even on error paths.
	notices := []Notice{deprecatedNotice(op)}

	t, terr := Translate(op, supplied)
	notices = append(notices, t.DeadNotices...)

	if !f.suppress {
		for _, n := range notices {
			f.emitter.Emit(n)
		}
	}

	if terr != nil {
		report := NewReport(invocationID, op, supplied.ToMap(), nil, nil, terr)
		report.Notices = notices
		if err := f.reporter.AddReport(report); err != nil {
			return Result{}, err
		}

		return Result{Report: report}, terr
	}

	cfg := &InvokeConfig{retryConfig: newDisabledRetryConfig()}
	for _, opt := range opts {
		opt(cfg)
	}

	output, execErr := f.delegate(ctx, op, t.Bag, cfg)

	report := NewReport(invocationID, op, supplied.ToMap(), t.Bag.ToMap(), output, execErr)
	report.Notices = notices
	report.BatchSize = batchSize

	result := Result{Report: report}
	if op.passThru == "" || t.PassThru {
		result.Value = output
	}

	if execErr != nil {
		if !t.ContinueOnError {
			if err := f.reporter.AddReport(report); err != nil {
				return Result{}, err
			}

			return result, execErr
		}

		f.lggr.Warnw("Legacy operation failed, continuing on error",
			"invocation_id", invocationID, "operation", op.Name, "error", execErr)
		report.Continued = true
		result.Continued = true
		result.Value = nil
	}

	if err := f.reporter.AddReport(report); err != nil {
		return Result{}, err
	}
	result.Report = report

	return result, nil
}

// delegate performs the single outbound call, with per-invocation retry when
// enabled. Any failure is wrapped as *ExecutionError.
func (f *Facade) delegate(ctx context.Context, op *Operation, forwarded param.Bag, cfg *InvokeConfig) (any, error) {
	var output any
	var err error

	if cfg.retryConfig.Enabled {
		retryOpts := cfg.retryConfig.Policy.options()
		retryOpts = append(retryOpts, retry.Context(ctx))
		retryOpts = append(retryOpts, retry.OnRetry(func(attempt uint, err error) {
			f.lggr.Infow("Replacement operation failed. Retrying...",
				"operation", op.Name, "replacement", op.Replacement.ID,
				"attempt", attempt, "error", err)
		}))

		output, err = retry.DoWithData(
			func() (any, error) {
				return f.invoker.Invoke(ctx, op.Replacement, forwarded)
			},
			retryOpts...,
		)
	} else {
		output, err = f.invoker.Invoke(ctx, op.Replacement, forwarded)
	}

	if err != nil {
		return nil, &ExecutionError{
			Operation:   op.Name,
			Replacement: op.Replacement.ID,
			Err:         err,
		}
	}

	return output, nil
}
