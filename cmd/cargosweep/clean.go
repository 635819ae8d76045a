package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/cargosweep/internal/cleaner"
	"github.com/nao1215/cargosweep/internal/config"
	"github.com/nao1215/cargosweep/internal/database"
	"github.com/nao1215/cargosweep/internal/log"
	"github.com/nao1215/cargosweep/internal/model"
	"github.com/nao1215/cargosweep/internal/report"
	"github.com/nao1215/cargosweep/internal/walker"
)

// NewCleanCmd creates the clean command.
func NewCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [path]",
		Short: "Discover Cargo projects and clean their build artifacts",
		Long: `Clean walks the directory tree from the given path (default: current
directory), finds every directory containing a Cargo.toml, and runs
'cargo clean' in it. Projects are processed one at a time; a failure in
one project is reported and the run continues with the rest.

By default the whole target directory of each project is cleaned. Use
--release and/or --doc to restrict cleaning to release or documentation
artifacts; combining both leaves debug artifacts untouched.

Examples:
  # Clean every project under the current directory
  cargosweep clean

  # See how much space a clean of ~/src would reclaim, deleting nothing
  cargosweep clean --dry-run ~/src

  # Clean only release and documentation artifacts
  cargosweep clean --release --doc ~/src

  # Write a markdown report of the run
  cargosweep clean --dry-run --markdown -o report.md ~/src`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCleanCmd,
	}

	// Scope flags
	cmd.Flags().BoolP("release", "r", false, "Clean release artifacts (target/release) instead of everything")
	cmd.Flags().BoolP("doc", "d", false, "Clean documentation artifacts (target/doc) instead of everything")
	cmd.Flags().BoolP("dry-run", "n", false, "Report reclaimable space without deleting anything")

	// Traversal flags
	cmd.Flags().Int("depth", config.DefaultMaxDepth, "Recursive search depth limit")
	cmd.Flags().StringSlice("skips", config.DefaultSkipNames(), "Directory names to skip during the scan")

	// External operation flags
	cmd.Flags().String("cargo", "cargo", "Cargo executable to invoke")

	// Configuration file
	cmd.Flags().StringP("config", "c", "", "Configuration file path (default: .cargosweep in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false, "Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false, "Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "", "Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("show-clean", false, "List projects with nothing to reclaim in the report")

	// History flags
	cmd.Flags().Bool("no-history", false, "Do not record this run in the history database")

	return cmd
}

// runCleanCmd executes the clean command.
func runCleanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildCleanConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := log.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Warn("received shutdown signal, stopping after current project...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runClean(ctx, cmd, cfg, logger)
}

// buildCleanConfig creates a Config from defaults, the optional config
// file, and the command's flags, in that order of precedence.
func buildCleanConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Overlay the config file before flags so explicit flags win.
	// An explicitly specified file must exist; a discovered one is
	// optional.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ApplyFile(file)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	cfg.ReleaseOnly, err = cmd.Flags().GetBool("release")
	if err != nil {
		return nil, err
	}

	cfg.DocOnly, err = cmd.Flags().GetBool("doc")
	if err != nil {
		return nil, err
	}

	cfg.DryRun, err = cmd.Flags().GetBool("dry-run")
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("depth") {
		cfg.MaxDepth, err = cmd.Flags().GetInt("depth")
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("skips") {
		cfg.SkipNames, err = cmd.Flags().GetStringSlice("skips")
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("cargo") {
		cfg.CargoBin, err = cmd.Flags().GetString("cargo")
		if err != nil {
			return nil, err
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return nil, err
	}
	cfg.SaveHistory = !noHistory

	cfg.Verbose = getVerboseFlag(cmd)

	// Positional start directory argument, default: current directory
	if len(args) > 0 {
		cfg.StartDir = args[0]
	} else {
		cfg.StartDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
	}

	return cfg, nil
}

// runClean executes the discovery and clean loop.
//
// Processing is strictly sequential: the walker's lazy sequence is
// consumed one project root at a time, and each project is fully
// processed before the next one is requested. This keeps at most one
// cargo subprocess alive and makes the aggregation a plain fold.
func runClean(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	startDir, err := filepath.Abs(cfg.StartDir)
	if err != nil {
		return fmt.Errorf("failed to resolve start directory %s: %w", cfg.StartDir, err)
	}
	if info, err := os.Stat(startDir); err != nil {
		return fmt.Errorf("cannot scan %s: %w", startDir, err)
	} else if !info.IsDir() {
		return fmt.Errorf("cannot scan %s: not a directory", startDir)
	}

	scope := model.CleanScope{
		ReleaseOnly: cfg.ReleaseOnly,
		DocOnly:     cfg.DocOnly,
		DryRun:      cfg.DryRun,
	}

	logger.Info("starting sweep",
		"root", startDir,
		"scope", scope.Label(),
		"depth", cfg.MaxDepth,
		"skips", cfg.SkipNames,
	)

	w := walker.New(startDir,
		walker.WithMaxDepth(cfg.MaxDepth),
		walker.WithSkipNames(cfg.SkipNames),
		walker.WithLogger(logger),
	)

	runner := cleaner.NewCargoRunner(
		cleaner.WithCargoBin(cfg.CargoBin),
		cleaner.WithCargoLogger(logger),
	)
	c := cleaner.New(runner, cleaner.WithLogger(logger))

	runReport := model.NewRunReport(startDir, scope)

	interrupted := false
	for root := range w.Walk() {
		select {
		case <-ctx.Done():
			interrupted = true
		default:
		}
		if interrupted {
			break
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "Checking %s\n", root.Path)
		runReport.Add(c.Clean(ctx, root, scope))
	}

	runReport.AddWarnings(w.Warnings())
	runReport.Elapsed = time.Since(runReport.StartedAt)

	if err := outputReport(cmd, cfg, runReport); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	saveRunReport(ctx, cfg, runReport, logger)

	if interrupted {
		return ctx.Err()
	}
	if runReport.HasFailures() {
		return fmt.Errorf("completed with %d failed project(s) and %d traversal warning(s)",
			runReport.FailedCount(), len(runReport.Warnings))
	}
	return nil
}

// outputReport writes the run report in the requested format, to stdout
// or to the configured output file.
func outputReport(cmd *cobra.Command, cfg *config.Config, runReport *model.RunReport) error {
	output := cmd.OutOrStdout()
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output)
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		showClean, err := cmd.Flags().GetBool("show-clean")
		if err != nil {
			showClean = false
		}
		writer = report.NewSimpleWriter(output, report.WithShowClean(showClean))
	}

	_, err := writer.Write(runReport)
	return err
}

// saveRunReport records the run in the history database. A storage
// failure is logged, not returned: losing a history row must not turn a
// successful sweep into a failed one.
func saveRunReport(ctx context.Context, cfg *config.Config, runReport *model.RunReport, logger *slog.Logger) {
	if !cfg.SaveHistory {
		return
	}

	// The run itself may have been interrupted; saving still uses a
	// short-lived context so history is written even then.
	if ctx.Err() != nil {
		ctx = context.Background()
	}

	hdb, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		logger.Error("failed to open history database", "dir", cfg.DBDir, "error", err)
		return
	}
	defer hdb.Close()

	runID, err := hdb.SaveRunReport(ctx, runReport)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			logger.Error("failed to save run history", "error", err)
		}
		return
	}
	logger.Debug("run recorded", "runID", runID)
}
