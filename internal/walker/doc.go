// Package walker discovers Cargo project roots under a directory tree.
//
// The walker performs a depth-first pre-order traversal using an explicit
// work stack and yields project roots as a lazy, single-use sequence.
// It never descends into a discovered project's build output directory,
// which can be arbitrarily large and contains nothing relevant to
// discovery.
//
// Design decision: We use an explicit stack instead of recursion because
// pathological directory depths would otherwise risk deep call stacks,
// and because a pull-based iterator maps naturally onto a stack: each
// yield pops one directory and pushes its eligible children.
//
// Unreadable directories are recorded as warnings and skipped; a bad
// directory never aborts the traversal. Symbolic links to directories are
// not followed at all, which also rules out symlink cycles and duplicate
// yields of the same directory reached via two paths.
package walker
