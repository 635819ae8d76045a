package model

import "time"

// TraversalWarning records a directory the walker could not read.
// Traversal warnings are recoverable: the walker skips the directory and
// continues, but every warning must surface in the final report.
type TraversalWarning struct {
	// Path is the directory that could not be read.
	Path string `json:"path"`

	// Message is the underlying error text.
	Message string `json:"message"`
}

// RunReport aggregates the outcome of one cargosweep run: every per-project
// result, every traversal warning, and the run metadata.
//
// Design decision: Aggregation is a plain fold in the single thread of
// execution, so RunReport needs no locking. The clean command appends
// results as they are produced and computes totals on demand.
type RunReport struct {
	// Root is the absolute path the traversal started from.
	Root string `json:"root"`

	// Scope is the artifact selection the run was executed with.
	Scope CleanScope `json:"scope"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"startedAt"`

	// Elapsed is the total wall-clock duration of the run.
	Elapsed time.Duration `json:"elapsed"`

	// Results holds one entry per discovered project root, in the order
	// the walker yielded them.
	Results []CleanResult `json:"results"`

	// Warnings holds traversal warnings recorded during discovery.
	Warnings []TraversalWarning `json:"warnings,omitempty"`
}

// NewRunReport creates an empty report for a run starting now.
func NewRunReport(root string, scope CleanScope) *RunReport {
	return &RunReport{
		Root:      root,
		Scope:     scope,
		StartedAt: time.Now(),
	}
}

// Add appends a per-project result to the report.
func (r *RunReport) Add(result CleanResult) {
	r.Results = append(r.Results, result)
}

// AddWarnings appends traversal warnings to the report.
func (r *RunReport) AddWarnings(warnings []TraversalWarning) {
	r.Warnings = append(r.Warnings, warnings...)
}

// TotalBytes returns the sum of freed (or would-be-freed) bytes across
// all results, including partial measurements from failed projects.
func (r *RunReport) TotalBytes() uint64 {
	var total uint64
	for _, res := range r.Results {
		total += res.Bytes
	}
	return total
}

// ProjectCount returns the number of discovered projects.
func (r *RunReport) ProjectCount() int {
	return len(r.Results)
}

// FailedCount returns the number of projects whose clean or measurement
// failed.
func (r *RunReport) FailedCount() int {
	count := 0
	for _, res := range r.Results {
		if res.Failed() {
			count++
		}
	}
	return count
}

// HasFailures reports whether any per-project failure or traversal warning
// occurred. The process exit status reflects this: partial failures never
// abort the run, but they must not go unnoticed either.
func (r *RunReport) HasFailures() bool {
	return r.FailedCount() > 0 || len(r.Warnings) > 0
}
