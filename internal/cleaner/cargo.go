package cleaner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/nao1215/cargosweep/internal/model"
)

// ErrUnparsableSummary is returned by parseCleanSummary when cargo's
// summary line does not match the expected "Removed N files, SIZE total"
// format. Callers treat this as an unknown freed size, not as a clean
// failure.
var ErrUnparsableSummary = errors.New("unparsable cargo clean summary")

// DefaultCargoBin is the cargo executable resolved from PATH.
const DefaultCargoBin = "cargo"

// CargoRunner invokes `cargo clean` as a subprocess, one project at a
// time, and parses the freed byte count from cargo's output.
//
// Design decision: cargo writes its clean summary to stderr, so stderr is
// captured while stdout is discarded. The subprocess runs to completion
// before the next project is processed; cancelling the context kills the
// child, which is the whole-process interrupt path.
type CargoRunner struct {
	// bin is the cargo executable to invoke.
	bin string

	// logger receives cargo's raw output at debug level and parse
	// problems at warn level.
	logger *slog.Logger
}

// CargoOption configures a CargoRunner.
type CargoOption func(*CargoRunner)

// WithCargoBin sets the cargo executable path. Empty values are ignored.
func WithCargoBin(bin string) CargoOption {
	return func(r *CargoRunner) {
		if bin != "" {
			r.bin = bin
		}
	}
}

// WithCargoLogger sets a custom logger for the runner.
func WithCargoLogger(logger *slog.Logger) CargoOption {
	return func(r *CargoRunner) {
		r.logger = logger
	}
}

// NewCargoRunner creates a runner that invokes the cargo binary.
func NewCargoRunner(opts ...CargoOption) *CargoRunner {
	r := &CargoRunner{bin: DefaultCargoBin}

	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = slog.Default()
	}

	return r
}

// Clean runs `cargo clean` in projectDir with the scope's selector flags
// and returns the freed byte count parsed from cargo's summary line.
// The outcome is surfaced verbatim: a failing cargo invocation is an
// error, and no retry is attempted because clean operations are not
// assumed safe to blindly re-run.
func (r *CargoRunner) Clean(ctx context.Context, projectDir string, scope model.CleanScope) (uint64, error) {
	cmd := exec.CommandContext(ctx, r.bin, scope.CargoArgs()...) //nolint:gosec // binary and args come from validated config
	cmd.Dir = projectDir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return 0, fmt.Errorf("cargo clean failed: %w: %s", err, detail)
		}
		return 0, fmt.Errorf("cargo clean failed: %w", err)
	}

	output := strings.TrimSpace(stderr.String())
	r.logger.Debug("cargo clean output", "dir", projectDir, "output", output)

	freed, err := parseCleanSummary(output)
	if err != nil {
		// Cargo succeeded; only the freed size is unknown.
		r.logger.Warn("failed to parse cargo clean summary", "dir", projectDir, "output", output)
		return 0, nil
	}
	return freed, nil
}

// parseCleanSummary extracts the freed byte count from cargo clean's
// summary line, e.g.:
//
//	Removed 2020 files, 986.5MiB total
//
// "Removed 0 files" means the project was already clean and parses as
// zero. Only the first line is considered; cargo may append warnings
// below it.
func parseCleanSummary(output string) (uint64, error) {
	line := output
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	line = strings.TrimSpace(line)

	if line == "Removed 0 files" || line == "Summary 0 files" {
		return 0, nil
	}

	// The size is the fourth whitespace-separated token.
	fields := strings.Fields(line)
	if len(fields) < 4 || (fields[0] != "Removed" && fields[0] != "Summary") {
		return 0, fmt.Errorf("%w: %q", ErrUnparsableSummary, line)
	}

	size, err := humanize.ParseBytes(fields[3])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrUnparsableSummary, line, err)
	}
	return size, nil
}
