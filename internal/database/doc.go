// Package database provides SQLite-based storage for the run history.
//
// Every non-dry-run and dry-run alike can be recorded: the run metadata
// (root, scope, totals) goes into the runs table and the per-project
// results into the results table. The history command reads both back.
//
// Design decision: We use modernc.org/sqlite, a pure-Go driver, so the
// binary stays CGO-free and cross-compiles trivially.
package database
