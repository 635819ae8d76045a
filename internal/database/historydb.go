package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/cargosweep/internal/model"
)

// dbFileName is the history database file under the data directory.
const dbFileName = "cargosweep.db"

// HistoryDB provides SQLite-based storage for run history.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging. Recommended for most uses.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// ReadOnlyOptions returns options for commands that only read history.
// Opening fails instead of silently creating an empty database.
func ReadOnlyOptions() Options {
	return Options{
		CreateIfNotExists: false,
		EnableWAL:         false,
	}
}

// RunSummary is one row of the runs table, used by the history listing.
type RunSummary struct {
	// ID is the run's row id, used to look up per-project results.
	ID int64 `json:"id"`

	// Root is the directory the run started from.
	Root string `json:"root"`

	// Scope is the artifact selection the run executed with.
	Scope model.CleanScope `json:"scope"`

	// Projects is the number of discovered project roots.
	Projects int `json:"projects"`

	// Failed is the number of per-project failures.
	Failed int `json:"failed"`

	// Warnings is the number of traversal warnings.
	Warnings int `json:"warnings"`

	// TotalBytes is the freed (or would-be-freed) byte total.
	TotalBytes uint64 `json:"totalBytes"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"startedAt"`

	// Elapsed is the run's wall-clock duration.
	Elapsed time.Duration `json:"elapsed"`
}

// Open opens or creates a HistoryDB under dbDir.
// With CreateIfNotExists unset, a missing database is an error; the
// history command uses that to distinguish "no history yet" from an
// empty run list.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("history database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite: mode=rw prevents creating new files, mode=rwc
	// allows creation.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports only one writer; a larger pool buys nothing here.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close() //nolint:errcheck // Best effort cleanup
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close() //nolint:errcheck // Best effort cleanup
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- One row per cargosweep run
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		root TEXT NOT NULL,
		release_only INTEGER NOT NULL DEFAULT 0,
		doc_only INTEGER NOT NULL DEFAULT 0,
		dry_run INTEGER NOT NULL DEFAULT 0,
		projects INTEGER NOT NULL DEFAULT 0,
		failed INTEGER NOT NULL DEFAULT 0,
		warnings INTEGER NOT NULL DEFAULT 0,
		total_bytes INTEGER NOT NULL DEFAULT 0,
		started_at DATETIME NOT NULL,
		elapsed_ms INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);

	-- One row per discovered project per run
	CREATE TABLE IF NOT EXISTS results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		path TEXT NOT NULL,
		action TEXT NOT NULL,
		bytes INTEGER NOT NULL DEFAULT 0,
		error TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_results_run_id ON results(run_id);
	`

	_, err := hdb.db.Exec(schema)
	return err
}

// SaveRunReport stores a run and its per-project results atomically.
// Returns the new run's id.
func (hdb *HistoryDB) SaveRunReport(ctx context.Context, report *model.RunReport) (int64, error) {
	tx, err := hdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback after commit is a no-op

	res, err := tx.ExecContext(ctx, `
	INSERT INTO runs (root, release_only, doc_only, dry_run, projects, failed, warnings, total_bytes, started_at, elapsed_ms)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		report.Root,
		boolToInt(report.Scope.ReleaseOnly),
		boolToInt(report.Scope.DocOnly),
		boolToInt(report.Scope.DryRun),
		report.ProjectCount(),
		report.FailedCount(),
		len(report.Warnings),
		int64(report.TotalBytes()), //nolint:gosec // artifact totals fit comfortably in int64
		report.StartedAt.UTC().Format(time.RFC3339Nano),
		report.Elapsed.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	for _, result := range report.Results {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO results (run_id, path, action, bytes, error)
		VALUES (?, ?, ?, ?, ?)
		`,
			runID,
			result.Path,
			result.Action.String(),
			int64(result.Bytes), //nolint:gosec // artifact sizes fit comfortably in int64
			result.Error,
		); err != nil {
			return 0, fmt.Errorf("failed to save result for %s: %w", result.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
func (hdb *HistoryDB) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := hdb.db.QueryContext(ctx, `
	SELECT id, root, release_only, doc_only, dry_run, projects, failed, warnings, total_bytes, started_at, elapsed_ms
	FROM runs
	ORDER BY id DESC
	LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var (
			run        RunSummary
			release    int
			doc        int
			dry        int
			totalBytes int64
			startedAt  string
			elapsedMS  int64
		)
		if err := rows.Scan(&run.ID, &run.Root, &release, &doc, &dry,
			&run.Projects, &run.Failed, &run.Warnings, &totalBytes, &startedAt, &elapsedMS); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.Scope = model.CleanScope{
			ReleaseOnly: release != 0,
			DocOnly:     doc != 0,
			DryRun:      dry != 0,
		}
		run.TotalBytes = uint64(max(totalBytes, 0)) //nolint:gosec // negative totals never stored
		run.StartedAt = parseTimestamp(startedAt)
		run.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// GetRunResults returns the per-project results of one run, in insertion
// order. A missing run id yields sql.ErrNoRows.
func (hdb *HistoryDB) GetRunResults(ctx context.Context, runID int64) ([]model.CleanResult, error) {
	var exists int
	err := hdb.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE id = ?`, runID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check run: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("run %d: %w", runID, sql.ErrNoRows)
	}

	rows, err := hdb.db.QueryContext(ctx, `
	SELECT path, action, bytes, error FROM results
	WHERE run_id = ?
	ORDER BY id ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []model.CleanResult
	for rows.Next() {
		var (
			path   string
			action string
			bytes  int64
			errMsg string
		)
		if err := rows.Scan(&path, &action, &bytes, &errMsg); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, model.NewCleanResult(
			path,
			model.ParseAction(action),
			uint64(max(bytes, 0)), //nolint:gosec // negative sizes never stored
			errMsg,
		))
	}

	return results, rows.Err()
}

// IsNotFound reports whether err means the requested run does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// boolToInt converts a bool to the 0/1 form stored in SQLite.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// timestampFormats are the layouts SQLite may hand back depending on how
// the value was stored.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999",
	"2006-01-02 15:04:05",
}

// parseTimestamp attempts to parse a timestamp string using multiple
// formats, returning zero time if none match.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
