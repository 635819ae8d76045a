package model

import "path/filepath"

// Well-known file and directory names that identify a Cargo project and
// its build outputs. These are fixed by Cargo itself, not configurable.
const (
	// ManifestFileName is the manifest file that marks a directory as a
	// Cargo project root.
	ManifestFileName = "Cargo.toml"

	// ArtifactDirName is the build output directory under each project
	// root. It holds debug, release, and documentation artifacts and can
	// be arbitrarily large, so the walker must never descend into it.
	ArtifactDirName = "target"

	// ReleaseDirName is the release artifact subdirectory under the
	// artifact output directory.
	ReleaseDirName = "release"

	// DocDirName is the documentation artifact subdirectory under the
	// artifact output directory.
	DocDirName = "doc"
)

// ProjectRoot is a directory confirmed to contain a Cargo manifest.
// Its identity is the absolute path; the walker yields each root at
// most once per traversal.
type ProjectRoot struct {
	// Path is the absolute path to the directory containing Cargo.toml.
	Path string
}

// ArtifactDir returns the absolute path to the project's build output
// directory. The directory may or may not exist.
func (p ProjectRoot) ArtifactDir() string {
	return filepath.Join(p.Path, ArtifactDirName)
}

// Name returns the base name of the project directory.
// This is used for display purposes only; Path remains the identity.
func (p ProjectRoot) Name() string {
	return filepath.Base(p.Path)
}
