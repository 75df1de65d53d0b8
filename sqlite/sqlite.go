package sqlite

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite" // sqlite driver
)

const defaultQueryTimeout = 5 * time.Second

// DB is a thin accessor over a single-file sqlite database.
// Every statement is parameterized and runs with a bounded timeout.
type DB struct {
	db      *sql.DB
	timeout time.Duration
}

// ExecResult reports the outcome of a write statement.
type ExecResult struct {
	LastInsertID int64
	RowsAffected int64
}

// Open opens (creating if needed) the database at path and ensures the
// users table exists. queryTimeout bounds every statement; zero selects
// the default.
func Open(path string, queryTimeout time.Duration) (*DB, error) {
	db, err := initDatabase(path)
	if err != nil {
		return nil, err
	}

	if queryTimeout <= 0 {
		queryTimeout = defaultQueryTimeout
	}

	return &DB{db: db, timeout: queryTimeout}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

// Execute runs a statement that returns no rows.
func (d *DB) Execute(ctx context.Context, query string, args ...any) (ExecResult, error) {
	ctx, cancel := d.boundedContext(ctx)
	defer cancel()

	res, err := d.db.ExecContext(ctx, query, args...)
	if err != nil {
		return ExecResult{}, err
	}

	lastID, err := res.LastInsertId()
	if err != nil {
		return ExecResult{}, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return ExecResult{}, err
	}

	return ExecResult{LastInsertID: lastID, RowsAffected: affected}, nil
}

// QueryOne runs a query expected to return at most one row and scans it
// through scan. It returns false when no row matched.
func (d *DB) QueryOne(ctx context.Context, query string, scan func(row Scannable) error, args ...any) (bool, error) {
	ctx, cancel := d.boundedContext(ctx)
	defer cancel()

	row := d.db.QueryRowContext(ctx, query, args...)

	err := scan(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

// QueryAll runs a query and invokes scan once per row.
func (d *DB) QueryAll(ctx context.Context, query string, scan func(rows Scannable) error, args ...any) error {
	ctx, cancel := d.boundedContext(ctx)
	defer cancel()

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}

	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}

	return rows.Err()
}

// Scannable abstracts sql.Row and sql.Rows for row mapping.
type Scannable interface {
	Scan(dest ...any) error
}

func (d *DB) boundedContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, d.timeout)
}

func initDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(30 * time.Minute)

	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA cache_size=1000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return nil, err
		}
	}

	err = db.Ping()
	if err != nil {
		return nil, err
	}

	return db, createSchema(db)
}

func createSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			age INTEGER NOT NULL,
			createdAt DATETIME DEFAULT CURRENT_TIMESTAMP,
			updatedAt DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)

	return err
}
