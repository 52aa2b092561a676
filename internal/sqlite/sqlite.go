// Package sqlite owns the SQLite connections of the application and keeps their schema in sync with schema.sql.
package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/myrjola/fitnesspro/internal/errors"

	_ "embed"
)

//go:embed schema.sql
var schemaDefinition string

// Database pairs a single-connection writer with a pool of query-only readers.
// See https://github.com/mattn/go-sqlite3/issues/1179#issuecomment-1638083995.
type Database struct {
	ReadWrite *sql.DB
	ReadOnly  *sql.DB
	logger    *slog.Logger

	stopOptimizer context.CancelFunc
	background    sync.WaitGroup
}

// NewDatabase opens the database at url, migrates it to schema.sql and starts the periodic optimizer.
//
// An url containing ":memory:" gets a fresh shared-cache in-memory database, so parallel tests stay isolated.
func NewDatabase(ctx context.Context, url string, logger *slog.Logger) (*Database, error) {
	db, err := connect(ctx, url, logger)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err = db.migrateTo(ctx, schemaDefinition); err != nil {
		return nil, errors.Join(fmt.Errorf("migrate: %w", err), db.Close())
	}

	optimizerCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	db.stopOptimizer = cancel
	db.background.Go(func() { db.runOptimizer(optimizerCtx, time.Hour) })

	return db, nil
}

//nolint:gochecknoglobals // sql.Register panics when called twice with the same name.
var registerDriver sync.Once

const driverName = "sqlite3optimized"

// connectionPragmas run on every new connection.
const connectionPragmas = `
PRAGMA temp_store = memory;
PRAGMA mmap_size = 30000000000;
PRAGMA wal_autocheckpoint = 0;
`

func connect(ctx context.Context, url string, logger *slog.Logger) (*Database, error) {
	registerDriver.Do(func() {
		sql.Register(driverName, &sqlite3.SQLiteDriver{
			Extensions: nil,
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				if _, err := conn.Exec(connectionPragmas, nil); err != nil {
					return fmt.Errorf("exec connection pragmas: %w", err)
				}
				return nil
			},
		})
	})

	// URI parameters are documented at https://www.sqlite.org/uri.html and the underscore prefixed ones at
	// https://pkg.go.dev/github.com/mattn/go-sqlite3#SQLiteDriver.Open.
	params := []string{
		"_loc=auto",
		"_defer_foreign_keys=1",
		"_journal_mode=wal",
		"_busy_timeout=5000",
		"_synchronous=normal",
		"_foreign_keys=on",
	}
	writerMode, readerMode := "rwc", "ro"
	if strings.Contains(url, ":memory:") {
		url = rand.Text()
		writerMode, readerMode = "memory", "memory"
		params = append(params, "cache=shared")
	}
	common := strings.Join(params, "&")
	writerDSN := fmt.Sprintf("file:%s?mode=%s&_txlock=immediate&%s", url, writerMode, common)
	readerDSN := fmt.Sprintf("file:%s?mode=%s&_txlock=deferred&_query_only=true&%s", url, readerMode, common)

	writer, err := sql.Open(driverName, writerDSN)
	if err != nil {
		return nil, fmt.Errorf("open writer: %w", err)
	}
	writer.SetMaxOpenConns(1)
	writer.SetMaxIdleConns(1)
	writer.SetConnMaxLifetime(time.Hour)
	writer.SetConnMaxIdleTime(time.Hour)
	// sql.DB connects lazily. Pinging creates the database file and applies the pragmas up front.
	if err = writer.PingContext(ctx); err != nil {
		return nil, errors.Join(fmt.Errorf("ping writer: %w", err), writer.Close())
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "opened database", slog.String("sqlDsn", writerDSN))

	reader, err := sql.Open(driverName, readerDSN)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("open reader: %w", err), writer.Close())
	}
	const maxReaders = 10
	reader.SetMaxOpenConns(maxReaders)
	reader.SetMaxIdleConns(maxReaders)
	reader.SetConnMaxLifetime(time.Hour)
	reader.SetConnMaxIdleTime(time.Hour)

	return &Database{
		ReadWrite:     writer,
		ReadOnly:      reader,
		logger:        logger,
		stopOptimizer: func() {},
		background:    sync.WaitGroup{},
	}, nil
}

// Transact runs fn inside a write transaction and commits when fn returns nil.
func (db *Database) Transact(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer db.rollback(ctx, tx)
	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (db *Database) rollback(ctx context.Context, tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		db.logger.LogAttrs(ctx, slog.LevelError, "rollback failed", errors.SlogError(err))
	}
}

// Close stops the optimizer and closes both connection pools.
func (db *Database) Close() error {
	db.stopOptimizer()
	db.background.Wait()
	return errors.Join(db.ReadOnly.Close(), db.ReadWrite.Close())
}
