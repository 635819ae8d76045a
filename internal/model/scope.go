package model

import "path/filepath"

// CleanScope selects which build artifacts a clean operation targets.
//
// ReleaseOnly and DocOnly are independently toggleable and may be combined.
// When both are set, release and documentation artifacts are targeted and
// debug artifacts are left untouched. When neither is set, the whole
// artifact output directory is targeted, which is what `cargo clean`
// removes by default.
type CleanScope struct {
	// ReleaseOnly restricts cleaning to release artifacts (target/release).
	ReleaseOnly bool `json:"releaseOnly"`

	// DocOnly restricts cleaning to documentation artifacts (target/doc).
	DocOnly bool `json:"docOnly"`

	// DryRun reports reclaimable space without deleting anything.
	// The external clean operation is never invoked under dry-run.
	DryRun bool `json:"dryRun"`
}

// Targets resolves the scope to the list of directories, relative to a
// project root, that a clean operation removes.
//
// Design decision: The default scope maps to the whole artifact directory
// rather than target/debug alone because that is exactly what an unscoped
// `cargo clean` deletes. Dry-run measurement must match what a real run
// would free, so both paths resolve through this single function.
func (s CleanScope) Targets() []string {
	switch {
	case s.ReleaseOnly && s.DocOnly:
		return []string{
			filepath.Join(ArtifactDirName, ReleaseDirName),
			filepath.Join(ArtifactDirName, DocDirName),
		}
	case s.ReleaseOnly:
		return []string{filepath.Join(ArtifactDirName, ReleaseDirName)}
	case s.DocOnly:
		return []string{filepath.Join(ArtifactDirName, DocDirName)}
	default:
		return []string{ArtifactDirName}
	}
}

// CargoArgs returns the arguments passed to `cargo clean` for this scope.
// DryRun is intentionally absent: under dry-run cargosweep measures sizes
// itself instead of invoking cargo.
func (s CleanScope) CargoArgs() []string {
	args := []string{"clean"}
	if s.ReleaseOnly {
		args = append(args, "--release")
	}
	if s.DocOnly {
		args = append(args, "--doc")
	}
	return args
}

// Label returns a short human-readable name for the scope's target set.
func (s CleanScope) Label() string {
	label := ""
	switch {
	case s.ReleaseOnly && s.DocOnly:
		label = "release+doc"
	case s.ReleaseOnly:
		label = "release"
	case s.DocOnly:
		label = "doc"
	default:
		label = "all"
	}
	if s.DryRun {
		label += " (dry-run)"
	}
	return label
}
