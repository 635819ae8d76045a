// Package cleaner performs the clean-or-measure action for discovered
// project roots.
//
// For each root the cleaner either invokes the external clean operation
// (a `cargo clean` subprocess scoped to the resolved target set) or, under
// dry-run, measures the byte size of the artifacts that operation would
// remove without touching the filesystem.
//
// Design decision: the external operation sits behind the Runner interface
// so that tests can substitute a fake and the command layer can pick the
// cargo binary. A per-project failure is wrapped into that project's
// CleanResult and never aborts the run: per-project isolation is the only
// failure boundary of the whole tool.
package cleaner
