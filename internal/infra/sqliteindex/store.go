package sqliteindex

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	indexapp "github.com/osvaldoandrade/spaceschema/internal/app/index"
	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

type OpenOptions struct {
	Fast bool
}

func Open(path string) (*Store, error) {
	return OpenWithOptions(path, OpenOptions{})
}

func OpenWithOptions(path string, opts OpenOptions) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path required")
	}

	if shouldCreateDir(path) {
		dir := filepath.Dir(path)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &Store{db: db}
	if err := store.applyPragmas(context.Background(), opts); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Begin(ctx context.Context) (indexapp.StoreTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin index transaction: %w", err)
	}
	return &storeTx{tx: tx}, nil
}

func (s *Store) ListVersions(ctx context.Context) ([]indexapp.VersionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT version, label, file_name, size, sha256, draft, stable, latest
		FROM schema_versions ORDER BY version
	`)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()

	var records []indexapp.VersionRecord
	for rows.Next() {
		var record indexapp.VersionRecord
		var draft, stable, latest int
		if err := rows.Scan(
			&record.Version,
			&record.Label,
			&record.FileName,
			&record.Size,
			&record.SHA256,
			&draft,
			&stable,
			&latest,
		); err != nil {
			return nil, fmt.Errorf("scan version row: %w", err)
		}
		record.Draft = draft != 0
		record.Stable = stable != 0
		record.Latest = latest != 0
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate version rows: %w", err)
	}
	return records, nil
}

func (s *Store) LatestRun(ctx context.Context) (indexapp.Run, bool, error) {
	var run indexapp.Run
	var scannedAt int64
	err := s.db.QueryRowContext(ctx, `
		SELECT run_id, root, scanned_at, versions, draft_version, stable_version
		FROM catalog_runs ORDER BY scanned_at DESC, run_id DESC LIMIT 1
	`).Scan(&run.RunID, &run.Root, &scannedAt, &run.Versions, &run.DraftVersion, &run.StableVersion)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return indexapp.Run{}, false, nil
		}
		return indexapp.Run{}, false, fmt.Errorf("read latest run: %w", err)
	}
	run.ScannedAt = time.Unix(0, scannedAt).UTC()
	return run, true, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_versions (
			version INTEGER PRIMARY KEY,
			label TEXT NOT NULL,
			file_name TEXT NOT NULL,
			size INTEGER NOT NULL,
			sha256 TEXT NOT NULL DEFAULT '',
			draft INTEGER NOT NULL CHECK (draft IN (0, 1)),
			stable INTEGER NOT NULL CHECK (stable IN (0, 1)),
			latest INTEGER NOT NULL CHECK (latest IN (0, 1))
		)
	`); err != nil {
		return fmt.Errorf("create versions table: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS catalog_runs (
			run_id TEXT PRIMARY KEY,
			root TEXT NOT NULL,
			scanned_at INTEGER NOT NULL,
			versions INTEGER NOT NULL,
			draft_version INTEGER NOT NULL,
			stable_version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("create runs table: %w", err)
	}
	return nil
}

func (s *Store) applyPragmas(ctx context.Context, opts OpenOptions) error {
	if !opts.Fast {
		return nil
	}
	var mode string
	if err := s.db.QueryRowContext(ctx, "PRAGMA journal_mode = WAL").Scan(&mode); err != nil {
		return fmt.Errorf("set journal_mode: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "PRAGMA synchronous = NORMAL"); err != nil {
		return fmt.Errorf("set synchronous: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "PRAGMA temp_store = MEMORY"); err != nil {
		return fmt.Errorf("set temp_store: %w", err)
	}
	return nil
}

type storeTx struct {
	tx *sql.Tx
}

func (s *storeTx) ReplaceVersions(ctx context.Context, records []indexapp.VersionRecord) error {
	if _, err := s.tx.ExecContext(ctx, "DELETE FROM schema_versions"); err != nil {
		return fmt.Errorf("clear versions: %w", err)
	}

	stmt, err := s.tx.PrepareContext(ctx, `
		INSERT INTO schema_versions (version, label, file_name, size, sha256, draft, stable, latest)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare version insert: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		if _, err := stmt.ExecContext(ctx,
			record.Version,
			record.Label,
			record.FileName,
			record.Size,
			record.SHA256,
			boolInt(record.Draft),
			boolInt(record.Stable),
			boolInt(record.Latest),
		); err != nil {
			return fmt.Errorf("insert version %d: %w", record.Version, err)
		}
	}
	return nil
}

func (s *storeTx) InsertRun(ctx context.Context, run indexapp.Run) error {
	if _, err := s.tx.ExecContext(ctx, `
		INSERT INTO catalog_runs (run_id, root, scanned_at, versions, draft_version, stable_version)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.RunID, run.Root, run.ScannedAt.UnixNano(), run.Versions, run.DraftVersion, run.StableVersion); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

func (s *storeTx) Commit() error {
	return s.tx.Commit()
}

func (s *storeTx) Rollback() error {
	return s.tx.Rollback()
}

func boolInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func shouldCreateDir(path string) bool {
	if path == ":memory:" {
		return false
	}
	if strings.HasPrefix(path, "file:") {
		return false
	}
	return true
}
