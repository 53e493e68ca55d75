package reconciler

import (
	"fmt"
	"time"

	"github.com/agentstation/utc"
	"github.com/google/uuid"
)

// Status classifies the outcome of reconciling a single order.
type Status string

// All per-order outcomes. Every order processed yields exactly one of these.
const (
	// StatusSuccess means the update was applied (or, in a dry run, would
	// have been applied).
	StatusSuccess Status = "success"

	// StatusNoUpdateNeeded means the order needed nothing: both company
	// fields were present, or the patient offered no values for the
	// missing ones.
	StatusNoUpdateNeeded Status = "no_update_needed"

	// StatusNoUpdateAvailable means the patient record carries no usable
	// company identifiers at all.
	StatusNoUpdateAvailable Status = "no_update_available"

	// StatusError means a prerequisite failed: the order fetch, the
	// patient fetch, or a missing patientId on the order.
	StatusError Status = "error"

	// StatusUpdateFailed means the patch was built but the portal rejected
	// the write.
	StatusUpdateFailed Status = "update_failed"
)

// Result records the outcome of one order. Created once, never mutated.
//
// NewCompanyID and NewPgCompanyID carry the PATIENT'S candidate values on
// success, not the applied subset: an order that already had pgCompanyId
// still reports the patient's pgcompanyID here. Downstream reporting has
// always read the columns this way, so the behavior is kept deliberately.
type Result struct {
	OrderID        string `json:"order_id" yaml:"order_id"`
	Status         Status `json:"status" yaml:"status"`
	Message        string `json:"message" yaml:"message"`
	Updated        bool   `json:"updated" yaml:"updated"`
	NewCompanyID   string `json:"new_company_id,omitempty" yaml:"new_company_id,omitempty"`
	NewPgCompanyID string `json:"new_pg_company_id,omitempty" yaml:"new_pg_company_id,omitempty"`
}

// Report aggregates the ordered results of one reconcile run.
type Report struct {
	Results  []Result `json:"results" yaml:"results"`
	Metadata Metadata `json:"metadata" yaml:"metadata"`
}

// Metadata describes the run itself.
type Metadata struct {
	// RunID uniquely identifies this run in logs and report output.
	RunID string `json:"run_id" yaml:"run_id"`

	// StartTime when the run started.
	StartTime utc.Time `json:"start_time" yaml:"start_time"`

	// EndTime when the run completed.
	EndTime utc.Time `json:"end_time" yaml:"end_time"`

	// Duration of the run.
	Duration time.Duration `json:"duration" yaml:"duration"`

	// DryRun indicates no updates were sent to the portal.
	DryRun bool `json:"dry_run" yaml:"dry_run"`

	// Stats counts results per outcome.
	Stats Statistics `json:"stats" yaml:"stats"`
}

// Statistics counts results per outcome.
type Statistics struct {
	Total             int   `json:"total" yaml:"total"`
	Succeeded         int   `json:"succeeded" yaml:"succeeded"`
	Updated           int   `json:"updated" yaml:"updated"`
	NoUpdateNeeded    int   `json:"no_update_needed" yaml:"no_update_needed"`
	NoUpdateAvailable int   `json:"no_update_available" yaml:"no_update_available"`
	Errors            int   `json:"errors" yaml:"errors"`
	UpdateFailures    int   `json:"update_failures" yaml:"update_failures"`
	TotalTimeMs       int64 `json:"total_time_ms" yaml:"total_time_ms"`
}

// NewReport creates an empty report with a fresh run ID.
func NewReport(dryRun bool) *Report {
	return &Report{
		Results: []Result{},
		Metadata: Metadata{
			RunID:     uuid.NewString(),
			StartTime: utc.Now(),
			DryRun:    dryRun,
		},
	}
}

// Append records one result and updates the running counts.
func (r *Report) Append(res Result) {
	r.Results = append(r.Results, res)

	stats := &r.Metadata.Stats
	stats.Total++
	switch res.Status {
	case StatusSuccess:
		stats.Succeeded++
	case StatusNoUpdateNeeded:
		stats.NoUpdateNeeded++
	case StatusNoUpdateAvailable:
		stats.NoUpdateAvailable++
	case StatusError:
		stats.Errors++
	case StatusUpdateFailed:
		stats.UpdateFailures++
	}
	if res.Updated {
		stats.Updated++
	}
}

// Finalize calculates duration and marks completion.
func (r *Report) Finalize() {
	r.Metadata.EndTime = utc.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
	r.Metadata.Stats.TotalTimeMs = r.Metadata.Duration.Milliseconds()
}

// HasFailures returns true if any order ended in error or update_failed.
func (r *Report) HasFailures() bool {
	return r.Metadata.Stats.Errors > 0 || r.Metadata.Stats.UpdateFailures > 0
}

// Summary returns a human-readable summary of the run.
func (r *Report) Summary() string {
	s := r.Metadata.Stats
	if r.Metadata.DryRun {
		return fmt.Sprintf(
			"Dry run completed. %d orders: %d would update, %d no update needed, %d no update available, %d errors",
			s.Total, s.Succeeded, s.NoUpdateNeeded, s.NoUpdateAvailable, s.Errors)
	}
	return fmt.Sprintf(
		"Run completed. %d orders: %d updated, %d no update needed, %d no update available, %d errors, %d update failures",
		s.Total, s.Updated, s.NoUpdateNeeded, s.NoUpdateAvailable, s.Errors, s.UpdateFailures)
}
