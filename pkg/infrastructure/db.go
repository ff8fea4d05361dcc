package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	_ "github.com/mattn/go-sqlite3"
)

// Dialect tells the few places that care which SQL engine is behind a DB.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// Rows is the common subset of pgx.Rows and *sql.Rows.
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
	Close()
}

// Row is a single-row result.
type Row interface {
	Scan(dest ...interface{}) error
}

// DB is the store's view of a database. Queries use $n placeholders for
// every dialect.
type DB interface {
	Dialect() Dialect
	Exec(ctx context.Context, query string, args ...interface{}) error
	Query(ctx context.Context, query string, args ...interface{}) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...interface{}) Row
	// InTx runs fn in a transaction, committing when fn returns nil.
	InTx(ctx context.Context, fn func(tx DB) error) error
	Ping(ctx context.Context) error
	Close()
}

// IsNoRows reports whether err means a single-row query matched nothing,
// for either driver.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}

// NewPostgres opens a pgx pool for dsn.
func NewPostgres(ctx context.Context, dsn string, maxConns int32, connTimeout time.Duration) (DB, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	cfg.ConnConfig.RuntimeParams["application_name"] = "cv-portfolio"
	if connTimeout > 0 {
		cfg.ConnConfig.ConnectTimeout = connTimeout
	}
	pool, err := pgxpool.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &pgDB{pool: pool}, nil
}

// NewSQLite opens (creating if needed) a SQLite database file. Use
// ":memory:" for a private throwaway database.
func NewSQLite(path string) (DB, error) {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	if path == ":memory:" {
		path = "file::memory:"
	}
	db, err := sql.Open("sqlite3", path+sep+"_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	// sqlite serializes writers anyway; a single connection also keeps an
	// in-memory database alive for the life of the DB.
	db.SetMaxOpenConns(1)
	return &sqlDB{db: db}, nil
}

type pgDB struct {
	pool *pgxpool.Pool
}

func (d *pgDB) Dialect() Dialect { return Postgres }

func (d *pgDB) Exec(ctx context.Context, query string, args ...interface{}) error {
	_, err := d.pool.Exec(ctx, query, args...)
	return err
}

func (d *pgDB) Query(ctx context.Context, query string, args ...interface{}) (Rows, error) {
	return d.pool.Query(ctx, query, args...)
}

func (d *pgDB) QueryRow(ctx context.Context, query string, args ...interface{}) Row {
	return d.pool.QueryRow(ctx, query, args...)
}

func (d *pgDB) InTx(ctx context.Context, fn func(tx DB) error) error {
	return d.pool.BeginFunc(ctx, func(tx pgx.Tx) error {
		return fn(&pgTx{tx: tx})
	})
}

func (d *pgDB) Ping(ctx context.Context) error { return d.pool.Ping(ctx) }

func (d *pgDB) Close() { d.pool.Close() }

type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) Dialect() Dialect { return Postgres }

func (t *pgTx) Exec(ctx context.Context, query string, args ...interface{}) error {
	_, err := t.tx.Exec(ctx, query, args...)
	return err
}

func (t *pgTx) Query(ctx context.Context, query string, args ...interface{}) (Rows, error) {
	return t.tx.Query(ctx, query, args...)
}

func (t *pgTx) QueryRow(ctx context.Context, query string, args ...interface{}) Row {
	return t.tx.QueryRow(ctx, query, args...)
}

func (t *pgTx) InTx(ctx context.Context, fn func(tx DB) error) error { return fn(t) }

func (t *pgTx) Ping(ctx context.Context) error { return nil }

func (t *pgTx) Close() {}

var placeholderRE = regexp.MustCompile(`\$(\d+)`)

// rebind turns $n into sqlite's numbered ?n form.
func rebind(query string) string {
	return placeholderRE.ReplaceAllString(query, "?$1")
}

// sqlQuerier is satisfied by *sql.DB and *sql.Tx.
type sqlQuerier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type sqlRows struct {
	*sql.Rows
}

func (r sqlRows) Close() { _ = r.Rows.Close() }

type sqlDB struct {
	db *sql.DB
	tx *sql.Tx
}

func (d *sqlDB) q() sqlQuerier {
	if d.tx != nil {
		return d.tx
	}
	return d.db
}

func (d *sqlDB) Dialect() Dialect { return SQLite }

func (d *sqlDB) Exec(ctx context.Context, query string, args ...interface{}) error {
	_, err := d.q().ExecContext(ctx, rebind(query), args...)
	return err
}

func (d *sqlDB) Query(ctx context.Context, query string, args ...interface{}) (Rows, error) {
	rows, err := d.q().QueryContext(ctx, rebind(query), args...)
	if err != nil {
		return nil, err
	}
	return sqlRows{rows}, nil
}

func (d *sqlDB) QueryRow(ctx context.Context, query string, args ...interface{}) Row {
	return d.q().QueryRowContext(ctx, rebind(query), args...)
}

func (d *sqlDB) InTx(ctx context.Context, fn func(tx DB) error) error {
	if d.tx != nil {
		return fn(d)
	}
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(&sqlDB{db: d.db, tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (d *sqlDB) Ping(ctx context.Context) error { return d.db.PingContext(ctx) }

func (d *sqlDB) Close() { _ = d.db.Close() }
