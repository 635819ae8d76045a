package config

import "errors"

// Configuration validation errors.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrInvalidDepth is returned when the traversal depth limit is not
	// positive. A depth of zero would visit nothing at all.
	ErrInvalidDepth = errors.New("invalid depth: must be positive")

	// ErrEmptyCargoBin is returned when the cargo executable path is
	// empty. Without it no project can be cleaned.
	ErrEmptyCargoBin = errors.New("invalid cargo binary: must not be empty")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used at a
	// time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrConfigNotFound is returned when an explicitly specified
	// configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
