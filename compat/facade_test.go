package compat_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/appdeploykit/compat-framework/compat"
	"github.com/appdeploykit/compat-framework/compat/compattest"
	"github.com/appdeploykit/compat-framework/param"
	"github.com/appdeploykit/compat-framework/pkg/logger"
)

// recordingEmitter captures notices for assertions.
type recordingEmitter struct {
	mu      sync.Mutex
	notices []compat.Notice
}

func (e *recordingEmitter) Emit(n compat.Notice) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.notices = append(e.notices, n)
}

func (e *recordingEmitter) all() []compat.Notice {
	e.mu.Lock()
	defer e.mu.Unlock()

	return append([]compat.Notice(nil), e.notices...)
}

func newTestRegistry() *compat.Registry {
	return compat.NewRegistry(
		compat.NewOperation("Do-Thing",
			compat.NewDefinition("Invoke-NewThing", "4.0.0", "test replacement"),
			[]string{"Name", "Quiet"},
			[]compat.Step{
				compat.Drop("Old", "no longer used"),
				compat.Invert("Loud", "Quiet"),
			},
		),
		compat.NewOperation("Get-Thing",
			compat.NewDefinition("Get-NewThing", "4.0.0", "returns a value"),
			[]string{"Name", "PassThru"},
			nil,
			compat.WithPassThru("PassThru"),
		),
	)
}

func Test_Facade_Invoke_Delegates(t *testing.T) {
	t.Parallel()

	emitter := &recordingEmitter{}
	facade, invoker := compattest.NewFacade(t, newTestRegistry(), compat.WithEmitter(emitter))

	result, err := facade.Invoke(t.Context(), "Do-Thing",
		param.New().With("Name", "x").With("Loud", false))
	require.NoError(t, err)
	assert.False(t, result.Continued)

	calls := invoker.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Invoke-NewThing", calls[0].Def.ID)
	assert.True(t, calls[0].Params.Equal(param.New().With("Name", "x").With("Quiet", true)))

	notices := emitter.all()
	require.Len(t, notices, 1)
	assert.Equal(t, compat.NoticeDeprecated, notices[0].Kind)
	assert.Equal(t, "Do-Thing", notices[0].Operation)
	assert.Equal(t, "Invoke-NewThing", notices[0].Replacement)
}

func Test_Facade_Invoke_DeadParameterNotice(t *testing.T) {
	t.Parallel()

	emitter := &recordingEmitter{}
	facade, invoker := compattest.NewFacade(t, newTestRegistry(), compat.WithEmitter(emitter))

	_, err := facade.Invoke(t.Context(), "Do-Thing",
		param.New().With("Name", "x").With("Old", "whatever"))
	require.NoError(t, err)

	// exactly one additional notice, and the parameter never reaches the
	// replacement call
	notices := emitter.all()
	require.Len(t, notices, 2)
	assert.Equal(t, compat.NoticeDeprecated, notices[0].Kind)
	assert.Equal(t, compat.NoticeDeadParameter, notices[1].Kind)
	assert.Equal(t, "Old", notices[1].Param)

	calls := invoker.Calls()
	require.Len(t, calls, 1)
	assert.False(t, calls[0].Params.Has("Old"))
}

func Test_Facade_Invoke_SuppressedNotices(t *testing.T) {
	t.Parallel()

	emitter := &recordingEmitter{}
	facade, invoker := compattest.NewFacade(t, newTestRegistry(),
		compat.WithEmitter(emitter), compat.WithSuppressedNotices(true))

	_, err := facade.Invoke(t.Context(), "Do-Thing",
		param.New().With("Name", "x").With("Old", 1))
	require.NoError(t, err)

	// one flag suppresses both notice kinds, but the dead parameter is
	// still dropped
	assert.Empty(t, emitter.all())
	calls := invoker.Calls()
	require.Len(t, calls, 1)
	assert.False(t, calls[0].Params.Has("Old"))
}

func Test_Facade_Invoke_NoticePrecedesValidationFailure(t *testing.T) {
	t.Parallel()

	emitter := &recordingEmitter{}
	reg := compat.NewRegistry(
		compat.NewOperation("Do-Thing",
			compat.NewDefinition("Invoke-NewThing", "4.0.0", ""),
			[]string{"A", "B"},
			[]compat.Step{compat.MutuallyExclusive("A", "B")},
		),
	)
	facade, invoker := compattest.NewFacade(t, reg, compat.WithEmitter(emitter))

	_, err := facade.Invoke(t.Context(), "Do-Thing",
		param.New().With("A", 1).With("B", 2))

	var ti *compat.TranslationImpossibleError
	require.ErrorAs(t, err, &ti)
	// the caller learns about the replacement even on the error path
	require.Len(t, emitter.all(), 1)
	// and the replacement is never called with malformed input
	assert.Zero(t, invoker.CallCount())
}

func Test_Facade_Invoke_ErrorModes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		continueOnError bool
		wantErr         bool
	}{
		{name: "continue on error suppresses the failure", continueOnError: true},
		{name: "terminating failure names the legacy operation", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			facade, invoker := compattest.NewFacade(t, newTestRegistry())
			invoker.OnError("Invoke-NewThing", errors.New("session failure"))

			result, err := facade.Invoke(t.Context(), "Do-Thing",
				param.New().With("Name", "x").With("ContinueOnError", tt.continueOnError))

			if tt.wantErr {
				var execErr *compat.ExecutionError
				require.ErrorAs(t, err, &execErr)
				assert.Equal(t, "Do-Thing", execErr.Operation)
				assert.ErrorContains(t, err, "session failure")
				assert.False(t, compat.IsFatalTranslation(err))
				return
			}

			require.NoError(t, err)
			assert.True(t, result.Continued)
			assert.Nil(t, result.Value)
			assert.True(t, result.Report.Continued)
		})
	}
}

func Test_Facade_Invoke_TranslationFailureIgnoresContinueOnError(t *testing.T) {
	t.Parallel()

	reg := compat.NewRegistry(
		compat.NewOperation("Do-Thing",
			compat.NewDefinition("Invoke-NewThing", "4.0.0", ""),
			[]string{"Mode"},
			[]compat.Step{compat.MapValues("Mode", "Mode", map[string]string{"a": "A"})},
		),
	)
	facade, invoker := compattest.NewFacade(t, reg)

	// contract violations are fatal even with continue-on-error requested
	_, err := facade.Invoke(t.Context(), "Do-Thing",
		param.New().With("Mode", "bogus").With("ContinueOnError", true))

	var cv *compat.ContractViolationError
	require.ErrorAs(t, err, &cv)
	assert.Zero(t, invoker.CallCount())
}

func Test_Facade_Invoke_PassThru(t *testing.T) {
	t.Parallel()

	facade, invoker := compattest.NewFacade(t, newTestRegistry())
	invoker.On("Get-NewThing", func(ctx context.Context, params param.Bag) (any, error) {
		return "value", nil
	})

	// without the switch, no value is returned
	result, err := facade.Invoke(t.Context(), "Get-Thing", param.New().With("Name", "x"))
	require.NoError(t, err)
	assert.Nil(t, result.Value)

	// with the switch, the replacement's result is returned verbatim
	result, err = facade.Invoke(t.Context(), "Get-Thing",
		param.New().With("Name", "x").With("PassThru", true))
	require.NoError(t, err)
	assert.Equal(t, "value", result.Value)

	// PassThru is accepted by this replacement, so it forwards too
	calls := invoker.Calls()
	require.Len(t, calls, 2)
	assert.True(t, calls[1].Params.Has("PassThru"))
}

func Test_Facade_Invoke_UnknownOperation(t *testing.T) {
	t.Parallel()

	facade, invoker := compattest.NewFacade(t, newTestRegistry())

	_, err := facade.Invoke(t.Context(), "Do-Nonsense", param.New())
	require.ErrorIs(t, err, compat.ErrOperationNotFound)
	assert.Zero(t, invoker.CallCount())
}

func Test_Facade_Invoke_Retry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		opts          []compat.InvokeOption
		failures      int
		unrecoverable bool
		wantCalls     int
		wantErr       bool
	}{
		{
			name:      "no retry by default",
			failures:  1,
			wantCalls: 1,
			wantErr:   true,
		},
		{
			name:      "retry until success",
			opts:      []compat.InvokeOption{compat.WithRetry()},
			failures:  2,
			wantCalls: 3,
		},
		{
			name: "retry exhausted",
			opts: []compat.InvokeOption{compat.WithRetryConfig(compat.RetryConfig{
				Enabled: true,
				Policy:  compat.RetryPolicy{MaxAttempts: 2},
			})},
			failures:  5,
			wantCalls: 2,
			wantErr:   true,
		},
		{
			name:          "unrecoverable error stops retrying",
			opts:          []compat.InvokeOption{compat.WithRetry()},
			failures:      5,
			unrecoverable: true,
			wantCalls:     1,
			wantErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			facade, invoker := compattest.NewFacade(t, newTestRegistry())

			var calls int
			invoker.On("Invoke-NewThing", func(ctx context.Context, params param.Bag) (any, error) {
				calls++
				if calls <= tt.failures {
					err := errors.New("transient failure")
					if tt.unrecoverable {
						return nil, compat.NewUnrecoverableError(err)
					}
					return nil, err
				}
				return nil, nil
			})

			_, err := facade.Invoke(t.Context(), "Do-Thing",
				param.New().With("Name", "x"), tt.opts...)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, calls)
		})
	}
}

func Test_Facade_Invoke_Reports(t *testing.T) {
	t.Parallel()

	reporter := compat.NewMemoryReporter()
	facade, invoker := compattest.NewFacade(t, newTestRegistry(), compat.WithReporter(reporter))
	invoker.OnError("Invoke-NewThing", errors.New("boom"))

	_, err := facade.Invoke(t.Context(), "Do-Thing",
		param.New().With("Name", "x").With("Old", 1).With("ContinueOnError", true))
	require.NoError(t, err)

	reports, err := reporter.GetReports()
	require.NoError(t, err)
	require.Len(t, reports, 1)

	report := reports[0]
	assert.Equal(t, "Do-Thing", report.Operation)
	assert.Equal(t, "Invoke-NewThing", report.Replacement.ID)
	assert.True(t, report.Continued)
	require.NotNil(t, report.Err)
	assert.Contains(t, report.Err.Message, "boom")
	assert.Contains(t, report.Input, "Old")
	assert.NotContains(t, report.Forwarded, "Old")
	assert.Len(t, report.Notices, 2)
	assert.NotEmpty(t, report.InvocationID)

	byID, err := reporter.GetReport(report.ID)
	require.NoError(t, err)
	assert.Equal(t, report.ID, byID.ID)

	_, err = reporter.GetReport("nope")
	require.ErrorIs(t, err, compat.ErrReportNotFound)
}

func Test_Facade_LogEmitter(t *testing.T) {
	t.Parallel()

	lggr, logs := logger.TestObserved(t, zapcore.WarnLevel)
	facade, _ := compattest.NewFacade(t, newTestRegistry(),
		compat.WithEmitter(compat.NewLogEmitter(lggr)))

	_, err := facade.Invoke(t.Context(), "Do-Thing", param.New().With("Name", "x"))
	require.NoError(t, err)

	entries := logs.FilterMessageSnippet("deprecated").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "Do-Thing", fields["operation"])
	assert.Equal(t, "Invoke-NewThing", fields["replacement"])
}
