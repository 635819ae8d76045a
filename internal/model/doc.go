// Package model defines the core data structures shared across cargosweep.
//
// It contains the project root representation, the clean scope resolution
// logic, per-project clean results, and the aggregated run report.
//
// Design decision: We keep data structures separate from the packages that
// produce them (walker, cleaner) so that report writers and the history
// database can depend on a single, dependency-free package without import
// cycles.
package model
