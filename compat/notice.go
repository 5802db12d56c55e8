package compat

import (
	"fmt"

	"github.com/appdeploykit/compat-framework/pkg/logger"
)

// NoticeKind distinguishes the two deprecation signals the facade emits.
type NoticeKind string

const (
	// NoticeDeprecated is the per-invocation notice pointing callers at the
	// replacement operation.
	NoticeDeprecated NoticeKind = "deprecated"
	// NoticeDeadParameter is emitted when a supplied parameter no longer has
	// any effect and is dropped before delegation.
	NoticeDeadParameter NoticeKind = "dead-parameter"
)

// Notice is a deprecation side-effect record. Notices are emitted through an
// Emitter and attached to the invocation Report.
type Notice struct {
	Kind        NoticeKind `json:"kind"`
	Operation   string     `json:"operation"`             // legacy operation name
	Replacement string     `json:"replacement,omitempty"` // replacement operation ID
	Param       string     `json:"param,omitempty"`       // set for dead-parameter notices
	Message     string     `json:"message"`
}

func deprecatedNotice(op *Operation) Notice {
	return Notice{
		Kind:        NoticeDeprecated,
		Operation:   op.Name,
		Replacement: op.Replacement.ID,
		Message: fmt.Sprintf("%s is deprecated, use %s instead",
			op.Name, op.Replacement.ID),
	}
}

func deadParamNotice(op *Operation, name, reason string) Notice {
	msg := fmt.Sprintf("%s: parameter %q is discontinued and no longer has any effect", op.Name, name)
	if reason != "" {
		msg += ": " + reason
	}

	return Notice{
		Kind:      NoticeDeadParameter,
		Operation: op.Name,
		Param:     name,
		Message:   msg,
	}
}

// Emitter delivers deprecation notices. Implementations decide the
// destination; the facade decides whether a notice is emitted at all (the
// process-wide suppression flag).
type Emitter interface {
	Emit(n Notice)
}

// NopEmitter discards all notices.
type NopEmitter struct{}

func (NopEmitter) Emit(Notice) {}

// LogEmitter writes notices at warn level through a Logger.
type LogEmitter struct {
	lggr logger.Logger
}

// NewLogEmitter returns an Emitter backed by lggr.
func NewLogEmitter(lggr logger.Logger) *LogEmitter {
	return &LogEmitter{lggr: lggr}
}

func (e *LogEmitter) Emit(n Notice) {
	e.lggr.Warnw(n.Message,
		"kind", string(n.Kind),
		"operation", n.Operation,
		"replacement", n.Replacement,
		"param", n.Param,
	)
}
