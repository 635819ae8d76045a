package cleaner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nao1215/cargosweep/internal/model"
)

// fakeRunner is a Runner double recording invocations.
type fakeRunner struct {
	calls []fakeCall
	bytes uint64
	err   error
}

type fakeCall struct {
	dir   string
	scope model.CleanScope
}

func (f *fakeRunner) Clean(_ context.Context, projectDir string, scope model.CleanScope) (uint64, error) {
	f.calls = append(f.calls, fakeCall{dir: projectDir, scope: scope})
	return f.bytes, f.err
}

// writeArtifacts creates files with known sizes under root/target/...
func writeArtifacts(t *testing.T, root string, files map[string]int) {
	t.Helper()
	for name, size := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, make([]byte, size), 0600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
	}
}

// TestCleanerInvokesRunner verifies that a non-dry-run clean delegates to
// the external runner with the resolved scope and wraps its outcome.
func TestCleanerInvokesRunner(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{bytes: 4096}
	c := New(runner)
	scope := model.CleanScope{ReleaseOnly: true}

	result := c.Clean(context.Background(), model.ProjectRoot{Path: "/work/app"}, scope)

	if len(runner.calls) != 1 {
		t.Fatalf("expected one runner invocation, got %d", len(runner.calls))
	}
	if runner.calls[0].dir != "/work/app" {
		t.Errorf("runner dir = %s, want /work/app", runner.calls[0].dir)
	}
	if !runner.calls[0].scope.ReleaseOnly {
		t.Error("runner must receive the resolved scope")
	}
	if result.Action != model.ActionCleaned {
		t.Errorf("action = %v, want ActionCleaned", result.Action)
	}
	if result.Bytes != 4096 {
		t.Errorf("bytes = %d, want 4096", result.Bytes)
	}
}

// TestCleanerWrapsRunnerFailure verifies that a runner failure is recorded
// in the result, unmodified and without retry.
func TestCleanerWrapsRunnerFailure(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{err: errors.New("permission denied deleting target")}
	c := New(runner)

	result := c.Clean(context.Background(), model.ProjectRoot{Path: "/work/app"}, model.CleanScope{})

	if len(runner.calls) != 1 {
		t.Fatalf("expected exactly one invocation (no retry), got %d", len(runner.calls))
	}
	if result.Action != model.ActionFailed {
		t.Errorf("action = %v, want ActionFailed", result.Action)
	}
	if result.Error != "permission denied deleting target" {
		t.Errorf("error = %q, want the runner's reason verbatim", result.Error)
	}
}

// TestCleanerDryRunMeasures verifies that dry-run sums the sizes of the
// files the resolved scope would remove, never invokes the external
// operation, and deletes nothing.
func TestCleanerDryRunMeasures(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeArtifacts(t, root, map[string]int{
		"target/debug/app":        600,
		"target/debug/deps/lib.d": 300,
		"target/release/app":      250,
		"target/doc/index.html":   100,
		"src/main.rs":             999, // sources never count
	})

	runner := &fakeRunner{}
	c := New(runner)

	tests := []struct {
		name  string
		scope model.CleanScope
		want  uint64
	}{
		{
			name:  "default scope measures the whole artifact directory",
			scope: model.CleanScope{DryRun: true},
			want:  600 + 300 + 250 + 100,
		},
		{
			name:  "release only",
			scope: model.CleanScope{DryRun: true, ReleaseOnly: true},
			want:  250,
		},
		{
			name:  "doc only",
			scope: model.CleanScope{DryRun: true, DocOnly: true},
			want:  100,
		},
		{
			name:  "release and doc exclude debug",
			scope: model.CleanScope{DryRun: true, ReleaseOnly: true, DocOnly: true},
			want:  350,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.Clean(context.Background(), model.ProjectRoot{Path: root}, tt.scope)

			if result.Action != model.ActionMeasured {
				t.Errorf("action = %v, want ActionMeasured", result.Action)
			}
			if result.Bytes != tt.want {
				t.Errorf("bytes = %d, want %d", result.Bytes, tt.want)
			}
		})
	}

	if len(runner.calls) != 0 {
		t.Errorf("dry-run must never invoke the external operation, got %d calls", len(runner.calls))
	}

	// Nothing was deleted.
	if _, err := os.Stat(filepath.Join(root, "target", "debug", "app")); err != nil {
		t.Errorf("dry-run mutated the filesystem: %v", err)
	}
}

// TestCleanerDryRunMissingArtifacts verifies that an already-clean project
// measures as zero rather than failing.
func TestCleanerDryRunMissingArtifacts(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	c := New(&fakeRunner{})

	result := c.Clean(context.Background(), model.ProjectRoot{Path: root}, model.CleanScope{DryRun: true})

	if result.Action != model.ActionMeasured {
		t.Errorf("action = %v, want ActionMeasured", result.Action)
	}
	if result.Bytes != 0 {
		t.Errorf("bytes = %d, want 0 for a clean project", result.Bytes)
	}
}
