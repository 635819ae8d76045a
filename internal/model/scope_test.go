package model

import (
	"path/filepath"
	"reflect"
	"testing"
)

// TestCleanScopeTargets verifies the scope-to-target-set resolution table.
// The release+doc combination is the non-obvious case: both flags together
// must leave debug artifacts untouched.
func TestCleanScopeTargets(t *testing.T) {
	t.Parallel()

	releaseDir := filepath.Join("target", "release")
	docDir := filepath.Join("target", "doc")

	tests := []struct {
		name  string
		scope CleanScope
		want  []string
	}{
		{
			name:  "default scope targets the whole artifact directory",
			scope: CleanScope{},
			want:  []string{"target"},
		},
		{
			name:  "release only targets target/release",
			scope: CleanScope{ReleaseOnly: true},
			want:  []string{releaseDir},
		},
		{
			name:  "doc only targets target/doc",
			scope: CleanScope{DocOnly: true},
			want:  []string{docDir},
		},
		{
			name:  "release and doc together exclude debug artifacts",
			scope: CleanScope{ReleaseOnly: true, DocOnly: true},
			want:  []string{releaseDir, docDir},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.scope.Targets()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Targets() = %v, want %v", got, tt.want)
			}

			debugDir := filepath.Join("target", "debug")
			if tt.scope.ReleaseOnly || tt.scope.DocOnly {
				for _, target := range got {
					if target == debugDir || target == "target" {
						t.Errorf("scoped clean must not target debug artifacts, got %v", got)
					}
				}
			}
		})
	}
}

// TestCleanScopeTargetsIgnoresDryRun verifies that dry-run does not change
// the resolved target set. The reported byte count under dry-run must equal
// what a real run with the same scope would delete.
func TestCleanScopeTargetsIgnoresDryRun(t *testing.T) {
	t.Parallel()

	wet := CleanScope{ReleaseOnly: true}
	dry := CleanScope{ReleaseOnly: true, DryRun: true}

	if !reflect.DeepEqual(wet.Targets(), dry.Targets()) {
		t.Errorf("dry-run changed the target set: %v vs %v", wet.Targets(), dry.Targets())
	}
}

// TestCleanScopeCargoArgs verifies the arguments passed to cargo clean.
func TestCleanScopeCargoArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		scope CleanScope
		want  []string
	}{
		{
			name:  "default scope passes no selector flags",
			scope: CleanScope{},
			want:  []string{"clean"},
		},
		{
			name:  "release flag",
			scope: CleanScope{ReleaseOnly: true},
			want:  []string{"clean", "--release"},
		},
		{
			name:  "doc flag",
			scope: CleanScope{DocOnly: true},
			want:  []string{"clean", "--doc"},
		},
		{
			name:  "both flags",
			scope: CleanScope{ReleaseOnly: true, DocOnly: true},
			want:  []string{"clean", "--release", "--doc"},
		},
		{
			name:  "dry-run never reaches cargo",
			scope: CleanScope{DryRun: true},
			want:  []string{"clean"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.scope.CargoArgs(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CargoArgs() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestCleanScopeLabel verifies the human-readable scope labels used in
// reports and the history listing.
func TestCleanScopeLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		scope CleanScope
		want  string
	}{
		{CleanScope{}, "all"},
		{CleanScope{ReleaseOnly: true}, "release"},
		{CleanScope{DocOnly: true}, "doc"},
		{CleanScope{ReleaseOnly: true, DocOnly: true}, "release+doc"},
		{CleanScope{DryRun: true}, "all (dry-run)"},
		{CleanScope{ReleaseOnly: true, DryRun: true}, "release (dry-run)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			if got := tt.scope.Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}
