package telemetry

import (
	"fmt"
	"strings"
	"sync"
)

type ReportKind int

const (
	REPORT_BROKEN ReportKind = iota
	REPORT_WARNING
	REPORT_DEBUG
	REPORT_COUNT
)

type Report struct {
	Kind   ReportKind
	Id     string
	Params []any
}

// Recorder implements API by keeping every report in memory, it is meant to
// be used in tests to assert on what a component reported.
type Recorder struct {
	mu      sync.Mutex
	reports []Report
}

func (r *Recorder) add(kind ReportKind, id string, params []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, Report{Kind: kind, Id: id, Params: params})
}

func (r *Recorder) ReportBroken(id string, params ...any) {
	r.add(REPORT_BROKEN, id, params)
}

func (r *Recorder) ReportWarning(id string, params ...any) {
	r.add(REPORT_WARNING, id, params)
}

func (r *Recorder) ReportDebug(msg string, params ...any) {
	r.add(REPORT_DEBUG, msg, params)
}

func (r *Recorder) ReportCount(id string, count int64) {
	r.add(REPORT_COUNT, id, []any{count})
}

// Reports returns a copy of every report of the given kind.
func (r *Recorder) Reports(kind ReportKind) []Report {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Report
	for _, report := range r.reports {
		if report.Kind == kind {
			out = append(out, report)
		}
	}
	return out
}

// Contains reports whether text appears anywhere in a recorded id or param.
func (r *Recorder) Contains(text string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, report := range r.reports {
		if strings.Contains(report.Id, text) {
			return true
		}
		for _, p := range report.Params {
			if strings.Contains(fmt.Sprint(p), text) {
				return true
			}
		}
	}
	return false
}
