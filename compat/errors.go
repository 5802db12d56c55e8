package compat

import (
	"errors"
	"fmt"
)

// ErrOperationNotFound is returned when a legacy operation name has no entry
// in the registry.
var ErrOperationNotFound = errors.New("legacy operation not found in registry")

// ErrUnmappedParameter is returned when translation leaves a parameter in the
// forwarded mapping that the replacement operation does not accept. This
// indicates a broken rule set rather than caller error.
var ErrUnmappedParameter = errors.New("parameter not accepted by replacement operation")

// ContractViolationError reports a caller-supplied value that violates a
// documented precondition of the legacy operation. It is raised before
// delegation and is always fatal, regardless of continue-on-error.
type ContractViolationError struct {
	Operation string // legacy operation name
	Param     string // offending parameter
	Rule      string // the violated precondition, e.g. "file must exist"
	Value     any
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("%s: parameter %q (value %v) violates precondition: %s",
		e.Operation, e.Param, e.Value, e.Rule)
}

// TranslationImpossibleError reports a combination of legacy parameters that
// cannot be mapped onto the replacement operation. It is raised before
// delegation and is always fatal.
type TranslationImpossibleError struct {
	Operation string
	Params    []string
	Reason    string
}

func (e *TranslationImpossibleError) Error() string {
	return fmt.Sprintf("%s: parameters %v cannot be translated: %s",
		e.Operation, e.Params, e.Reason)
}

// ExecutionError wraps a failure returned by the replacement operation. It is
// the sole error category subject to the caller's continue-on-error
// preference.
type ExecutionError struct {
	Operation   string // legacy operation name, for caller-facing messages
	Replacement string // replacement operation ID
	Err         error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s (delegated to %s): %v", e.Operation, e.Replacement, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// IsFatalTranslation reports whether err belongs to the locally raised,
// never-suppressed categories (ContractViolation, TranslationImpossible, or a
// registry/rule-set defect).
func IsFatalTranslation(err error) bool {
	var cv *ContractViolationError
	var ti *TranslationImpossibleError

	return errors.As(err, &cv) || errors.As(err, &ti) ||
		errors.Is(err, ErrUnmappedParameter) || errors.Is(err, ErrOperationNotFound)
}
