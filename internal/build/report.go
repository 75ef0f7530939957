package build

import (
	"fmt"
	"strings"
)

// Status classifies what happened to one processed unit (one catalog
// record, one construct file, one fusion entry).
type Status string

const (
	StatusCreated Status = "created"
	StatusExists  Status = "exists"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Outcome is the typed result for a single unit, keyed by whatever
// identifies the offending input (slug, filename, mutation token).
type Outcome struct {
	Key    string `json:"key"`
	Status Status `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Report aggregates the outcomes of one stage. Err is only set when the
// stage aborted on a missing hard dependency; per-record failures live
// in Outcomes.
type Report struct {
	Stage    string    `json:"stage"`
	Outcomes []Outcome `json:"outcomes"`
	Err      error     `json:"-"`
}

func newReport(stage string) *Report {
	return &Report{Stage: stage}
}

func (r *Report) add(key string, status Status, reason string) {
	r.Outcomes = append(r.Outcomes, Outcome{Key: key, Status: status, Reason: reason})
}

func (r *Report) created(key string)              { r.add(key, StatusCreated, "") }
func (r *Report) exists(key string)               { r.add(key, StatusExists, "") }
func (r *Report) skipped(key, reason string)      { r.add(key, StatusSkipped, reason) }
func (r *Report) failed(key, reason string)       { r.add(key, StatusFailed, reason) }
func (r *Report) failedErr(key string, err error) { r.add(key, StatusFailed, err.Error()) }

// Count returns how many outcomes carry the given status.
func (r *Report) Count(status Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// Failures returns the failed outcomes.
func (r *Report) Failures() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			out = append(out, o)
		}
	}
	return out
}

// OK reports whether the stage ran without an abort and without any
// failed unit.
func (r *Report) OK() bool {
	return r.Err == nil && r.Count(StatusFailed) == 0
}

// Summary renders a one-line digest for job output.
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d created, %d existing, %d skipped, %d failed",
		r.Stage, r.Count(StatusCreated), r.Count(StatusExists),
		r.Count(StatusSkipped), r.Count(StatusFailed))
	if r.Err != nil {
		fmt.Fprintf(&b, " (aborted: %v)", r.Err)
	}
	return b.String()
}
