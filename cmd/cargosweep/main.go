// Package main provides the entry point for the cargosweep CLI.
//
// cargosweep recursively scans a directory tree for Cargo projects and
// runs `cargo clean` on each of them, reclaiming the disk space held by
// build artifacts. A dry-run mode reports the reclaimable space without
// deleting anything.
//
// Usage:
//
//	cargosweep clean [path]
//	cargosweep clean --dry-run ~/src
//
// See --help for all available options.
package main

// main is the entry point for cargosweep.
func main() {
	Execute()
}
