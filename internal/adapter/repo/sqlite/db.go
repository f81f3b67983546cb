package sqliterepo

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// OpenSQLite opens a single-connection database file and creates the assist tables.
func OpenSQLite(path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS region_collisions (
			base_x INTEGER NOT NULL,
			base_y INTEGER NOT NULL,
			planes INTEGER NOT NULL,
			flags BLOB NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (base_x, base_y)
		);`,
		`CREATE TABLE IF NOT EXISTS activity_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			transition TEXT NOT NULL,
			mode TEXT NOT NULL,
			tick INTEGER NOT NULL,
			occurred_at INTEGER NOT NULL,
			payload TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_activity_events_session ON activity_events(session_id, occurred_at);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

type txKeyType struct{}

var txKey = txKeyType{}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func conn(ctx context.Context, base *sql.DB) execer {
	if tx, ok := ctx.Value(txKey).(*sql.Tx); ok && tx != nil {
		return tx
	}
	return base
}

type TxManager struct {
	db *sql.DB
}

func NewTxManager(db *sql.DB) TxManager {
	return TxManager{db: db}
}

func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(context.WithValue(ctx, txKey, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
