package cleaner

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/nao1215/cargosweep/internal/model"
)

// Runner abstracts the external clean operation invoked per project root.
// Implementations report how many bytes were freed when that information
// is obtainable, or zero otherwise.
type Runner interface {
	// Clean removes the artifacts selected by scope under the given
	// project directory. It blocks until the operation completes.
	Clean(ctx context.Context, projectDir string, scope model.CleanScope) (uint64, error)
}

// Cleaner produces one CleanResult per project root.
type Cleaner struct {
	// runner executes the external clean operation. Never invoked under
	// dry-run.
	runner Runner

	// logger receives per-project progress and failures.
	logger *slog.Logger
}

// Option configures a Cleaner.
type Option func(*Cleaner)

// WithLogger sets a custom logger for the cleaner.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cleaner) {
		c.logger = logger
	}
}

// New creates a Cleaner that delegates destructive work to the runner.
func New(runner Runner, opts ...Option) *Cleaner {
	c := &Cleaner{runner: runner}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}

// Clean processes one project root under the given scope and returns its
// result. A failure is recorded in the result, not returned: the caller
// continues with the next discovered root regardless.
func (c *Cleaner) Clean(ctx context.Context, root model.ProjectRoot, scope model.CleanScope) model.CleanResult {
	if scope.DryRun {
		return c.measure(root, scope)
	}

	bytes, err := c.runner.Clean(ctx, root.Path, scope)
	if err != nil {
		c.logger.Error("clean failed", "path", root.Path, "error", err)
		return model.NewCleanResult(root.Path, model.ActionFailed, 0, err.Error())
	}

	c.logger.Debug("cleaned project", "path", root.Path, "bytes", bytes)
	return model.NewCleanResult(root.Path, model.ActionCleaned, bytes, "")
}

// measure computes the total size of the files the resolved target set
// would remove, without mutating the filesystem. Missing target
// directories contribute zero: a project that is already clean is not an
// error.
func (c *Cleaner) measure(root model.ProjectRoot, scope model.CleanScope) model.CleanResult {
	var total uint64
	for _, target := range scope.Targets() {
		size, err := dirSize(filepath.Join(root.Path, target))
		total += size
		if err != nil {
			c.logger.Error("size measurement failed", "path", root.Path, "target", target, "error", err)
			return model.NewCleanResult(root.Path, model.ActionFailed, total, err.Error())
		}
	}

	c.logger.Debug("measured project", "path", root.Path, "bytes", total)
	return model.NewCleanResult(root.Path, model.ActionMeasured, total, "")
}
