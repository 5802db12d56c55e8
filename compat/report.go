package compat

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Report is the audit record of one facade invocation. It captures the legacy
// call as supplied, the mapping actually forwarded, the notices produced, and
// the outcome, including execution failures that were suppressed by
// continue-on-error.
type Report struct {
	ID           string         `json:"id"`
	InvocationID string         `json:"invocationId"` // ksuid, sortable by arrival
	Operation    string         `json:"operation"`    // legacy name
	Replacement  Definition     `json:"replacement"`
	Input        map[string]any `json:"input"`     // supplied legacy mapping
	Forwarded    map[string]any `json:"forwarded"` // final rewritten mapping
	Output       any            `json:"output,omitempty"`
	Err          *ReportError   `json:"error,omitempty"`
	Continued    bool           `json:"continued,omitempty"` // failure suppressed by continue-on-error
	Notices      []Notice       `json:"notices,omitempty"`
	Timestamp    *time.Time     `json:"timestamp"`
	BatchSize    int            `json:"batchSize,omitempty"` // items delegated by a streaming call
}

// NewReport creates a report for a completed invocation.
func NewReport(invocationID string, op *Operation, input, forwarded map[string]any, output any, err error) Report {
	now := time.Now()
	r := Report{
		ID:           uuid.New().String(),
		InvocationID: invocationID,
		Operation:    op.Name,
		Replacement:  op.Replacement,
		Input:        input,
		Forwarded:    forwarded,
		Output:       output,
		Timestamp:    &now,
	}
	if err != nil {
		r.Err = &ReportError{Message: err.Error()}
	}

	return r
}

// ReportError carries the failure message in an exported field so reports
// marshal cleanly to JSON.
type ReportError struct {
	Message string `json:"message"`
}

// Error implements the error interface.
func (e ReportError) Error() string {
	return e.Message
}

var ErrReportNotFound = errors.New("report not found")

// Reporter stores invocation reports. Implementations may keep them in
// memory, write them to disk, etc.
type Reporter interface {
	AddReport(report Report) error
	GetReport(id string) (Report, error)
	GetReports() ([]Report, error)
}

// MemoryReporter stores reports in memory. It is safe for concurrent use.
type MemoryReporter struct {
	mu      sync.RWMutex
	reports []Report
}

// NewMemoryReporter creates a new MemoryReporter.
func NewMemoryReporter() *MemoryReporter {
	return &MemoryReporter{}
}

// AddReport appends a report.
func (m *MemoryReporter) AddReport(report Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reports = append(m.reports, report)

	return nil
}

// GetReports returns a copy of all reports in arrival order.
func (m *MemoryReporter) GetReports() ([]Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	reports := make([]Report, len(m.reports))
	copy(reports, m.reports)

	return reports, nil
}

// GetReport returns a report by ID. Returns ErrReportNotFound if no report
// with that ID exists.
func (m *MemoryReporter) GetReport(id string) (Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, report := range m.reports {
		if report.ID == id {
			return report, nil
		}
	}

	return Report{}, fmt.Errorf("report_id %s: %w", id, ErrReportNotFound)
}
