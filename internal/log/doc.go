// Package log provides structured logging setup for cargosweep.
//
// All packages log through log/slog; this package owns the handler
// construction so the verbosity policy lives in one place.
package log
