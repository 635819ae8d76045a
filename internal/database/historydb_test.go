package database

import (
	"context"
	"testing"
	"time"

	"github.com/nao1215/cargosweep/internal/model"
)

// openTestDB opens a HistoryDB in a temporary directory.
func openTestDB(t *testing.T) *HistoryDB {
	t.Helper()

	hdb, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		_ = hdb.Close() //nolint:errcheck // best effort cleanup
	})
	return hdb
}

// sampleRunReport builds a finished run with two projects.
func sampleRunReport() *model.RunReport {
	report := model.NewRunReport("/work", model.CleanScope{ReleaseOnly: true, DryRun: true})
	report.StartedAt = time.Date(2026, 2, 14, 10, 30, 0, 0, time.UTC)
	report.Elapsed = 1500 * time.Millisecond
	report.Add(model.NewCleanResult("/work/a", model.ActionMeasured, 1000, ""))
	report.Add(model.NewCleanResult("/work/b", model.ActionFailed, 0, "permission denied"))
	report.AddWarnings([]model.TraversalWarning{
		{Path: "/work/locked", Message: "permission denied"},
	})
	return report
}

// TestHistoryDBSaveAndList verifies the round trip through the runs table.
func TestHistoryDBSaveAndList(t *testing.T) {
	t.Parallel()

	hdb := openTestDB(t)
	ctx := context.Background()

	runID, err := hdb.SaveRunReport(ctx, sampleRunReport())
	if err != nil {
		t.Fatalf("failed to save run: %v", err)
	}
	if runID <= 0 {
		t.Fatalf("expected positive run id, got %d", runID)
	}

	runs, err := hdb.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("failed to list runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}

	run := runs[0]
	if run.ID != runID {
		t.Errorf("ID = %d, want %d", run.ID, runID)
	}
	if run.Root != "/work" {
		t.Errorf("Root = %q, want /work", run.Root)
	}
	if !run.Scope.ReleaseOnly || run.Scope.DocOnly || !run.Scope.DryRun {
		t.Errorf("scope did not round trip: %+v", run.Scope)
	}
	if run.Projects != 2 || run.Failed != 1 || run.Warnings != 1 {
		t.Errorf("counts did not round trip: %+v", run)
	}
	if run.TotalBytes != 1000 {
		t.Errorf("TotalBytes = %d, want 1000", run.TotalBytes)
	}
	if run.Elapsed != 1500*time.Millisecond {
		t.Errorf("Elapsed = %v, want 1.5s", run.Elapsed)
	}
	if run.StartedAt.IsZero() {
		t.Error("StartedAt must parse back from storage")
	}
}

// TestHistoryDBListOrder verifies newest-first ordering and the limit.
func TestHistoryDBListOrder(t *testing.T) {
	t.Parallel()

	hdb := openTestDB(t)
	ctx := context.Background()

	for range 3 {
		if _, err := hdb.SaveRunReport(ctx, sampleRunReport()); err != nil {
			t.Fatalf("failed to save run: %v", err)
		}
	}

	runs, err := hdb.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("failed to list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected limit of 2 runs, got %d", len(runs))
	}
	if runs[0].ID <= runs[1].ID {
		t.Errorf("expected newest first, got ids %d then %d", runs[0].ID, runs[1].ID)
	}
}

// TestHistoryDBGetRunResults verifies per-project result retrieval.
func TestHistoryDBGetRunResults(t *testing.T) {
	t.Parallel()

	hdb := openTestDB(t)
	ctx := context.Background()

	runID, err := hdb.SaveRunReport(ctx, sampleRunReport())
	if err != nil {
		t.Fatalf("failed to save run: %v", err)
	}

	results, err := hdb.GetRunResults(ctx, runID)
	if err != nil {
		t.Fatalf("failed to get results: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Path != "/work/a" || results[0].Action != model.ActionMeasured || results[0].Bytes != 1000 {
		t.Errorf("unexpected first result: %+v", results[0])
	}
	if results[1].Action != model.ActionFailed || results[1].Error != "permission denied" {
		t.Errorf("unexpected second result: %+v", results[1])
	}
}

// TestHistoryDBMissingRun verifies the not-found path.
func TestHistoryDBMissingRun(t *testing.T) {
	t.Parallel()

	hdb := openTestDB(t)

	_, err := hdb.GetRunResults(context.Background(), 9999)
	if err == nil {
		t.Fatal("expected error for missing run")
	}
	if !IsNotFound(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

// TestHistoryDBReadOnlyOpen verifies that read-only open refuses to
// create an empty database.
func TestHistoryDBReadOnlyOpen(t *testing.T) {
	t.Parallel()

	if _, err := Open(t.TempDir(), ReadOnlyOptions()); err == nil {
		t.Fatal("expected error opening missing database read-only")
	}
}
