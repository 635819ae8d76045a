package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultMaxDepth limits how many directory levels the walker visits,
	// counting the start directory as level one. 64 is deep enough for
	// any sane workspace layout while bounding pathological trees.
	DefaultMaxDepth = 64

	// AppName is the application name used for XDG directory paths and
	// the history database file.
	AppName = "cargosweep"
)

// DefaultSkipNames are directory names the walker never descends into
// unless the user overrides the skip list. These directories either never
// contain user projects (.git) or contain toolchain-managed trees that
// must not be cleaned (.rustup, .cargo).
func DefaultSkipNames() []string {
	return []string{".git", ".rustup", ".cargo"}
}

// Config holds all configuration options for a cargosweep run.
// It is populated from defaults, the optional config file, and CLI flags,
// then passed through the application by dependency injection rather than
// global state.
type Config struct {
	// StartDir is the directory the traversal starts from.
	// Defaults to the current working directory.
	StartDir string

	// ReleaseOnly restricts cleaning to release artifacts.
	ReleaseOnly bool

	// DocOnly restricts cleaning to documentation artifacts.
	DocOnly bool

	// DryRun reports reclaimable space without deleting anything.
	DryRun bool

	// MaxDepth is the traversal depth limit. Must be positive.
	MaxDepth int

	// SkipNames are directory names the walker never descends into.
	SkipNames []string

	// CargoBin is the cargo executable invoked per project.
	// Defaults to "cargo" resolved from PATH.
	CargoBin string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is an explicit config file path. If empty, the tool
	// searches for .cargosweep in the current directory and then in the
	// user's home directory.
	ConfigFilePath string

	// JSONReport enables JSON report output instead of the human-readable
	// format. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of the
	// human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report. When set, the
	// report is written to this file instead of stdout.
	ReportFile string

	// SaveHistory indicates whether to record the run in the history
	// database under the XDG data directory.
	SaveHistory bool

	// DBDir is the directory holding the history database.
	DBDir string
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because several defaults are non-zero (depth limit, skip
// list, cargo binary). This also serves as documentation of the defaults.
func NewConfig() *Config {
	return &Config{
		MaxDepth:    DefaultMaxDepth,
		SkipNames:   DefaultSkipNames(),
		CargoBin:    "cargo",
		SaveHistory: true,
		DBDir:       XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for cargosweep.
// On Linux: ~/.local/share/cargosweep
// On macOS: ~/Library/Application Support/cargosweep
// On Windows: %LOCALAPPDATA%\cargosweep
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first error found: fixing one error often makes the
// others irrelevant.
func (c *Config) Validate() error {
	if c.MaxDepth <= 0 {
		return ErrInvalidDepth
	}

	if c.CargoBin == "" {
		return ErrEmptyCargoBin
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}
