package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/myrjola/fitnesspro/internal/errors"
)

// schemaObject is a row of sqlite_schema.
type schemaObject struct {
	typ  string
	name string
	sql  string
}

// migrateTo brings the live schema in line with target declaratively. The target is created in an attached in-memory
// database and compared to the live one:
//
//   - tables only present in the live schema are dropped and new ones created,
//   - changed tables are rebuilt with the 12-step procedure from https://www.sqlite.org/lang_altertable.html#otheralter
//     keeping the data of the columns both versions share,
//   - indexes and triggers are dropped and recreated wherever they differ.
//
// See https://david.rothlis.net/declarative-schema-migration-for-sqlite/.
func (db *Database) migrateTo(ctx context.Context, target string) (err error) {
	start := time.Now()

	detach, err := db.attachTarget(ctx, target)
	if err != nil {
		return fmt.Errorf("attach target schema: %w", err)
	}
	defer detach()

	// Foreign keys cannot be toggled inside a transaction.
	if _, err = db.ReadWrite.ExecContext(ctx, "PRAGMA foreign_keys = OFF"); err != nil {
		return fmt.Errorf("disable foreign keys: %w", err)
	}
	defer func() {
		if _, fkErr := db.ReadWrite.ExecContext(ctx, "PRAGMA foreign_keys = ON"); fkErr != nil {
			err = errors.Join(err, fmt.Errorf("enable foreign keys: %w", fkErr))
		}
	}()

	err = db.Transact(ctx, func(tx *sql.Tx) error {
		if txErr := db.migrateTables(ctx, tx); txErr != nil {
			return fmt.Errorf("migrate tables: %w", txErr)
		}
		for _, typ := range []string{"index", "trigger"} {
			if txErr := db.migrateDerived(ctx, tx, typ); txErr != nil {
				return fmt.Errorf("migrate %ss: %w", typ, txErr)
			}
		}
		return checkForeignKeys(ctx, tx)
	})
	if err != nil {
		return err
	}

	db.logger.LogAttrs(ctx, slog.LevelInfo, "migrated database", slog.Duration("duration", time.Since(start)))
	return nil
}

func (db *Database) attachTarget(ctx context.Context, target string) (func(), error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", rand.Text())
	targetDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open target database: %w", err)
	}
	// The in-memory database lives as long as a connection to it is open. The ATTACH below holds its own.
	defer func() {
		if closeErr := targetDB.Close(); closeErr != nil {
			db.logger.LogAttrs(ctx, slog.LevelError, "close target database failed", errors.SlogError(closeErr))
		}
	}()
	if _, err = targetDB.ExecContext(ctx, target); err != nil {
		return nil, fmt.Errorf("create target schema: %w", err)
	}
	if _, err = db.ReadWrite.ExecContext(ctx, "ATTACH DATABASE ? AS schemaTarget", dsn); err != nil {
		return nil, fmt.Errorf("attach: %w", err)
	}
	return func() {
		if _, detachErr := db.ReadWrite.ExecContext(ctx, "DETACH DATABASE schemaTarget"); detachErr != nil {
			db.logger.LogAttrs(ctx, slog.LevelError, "detach target database failed", errors.SlogError(detachErr))
		}
	}, nil
}

// objects lists the user objects of type typ in schema ("main" or "schemaTarget") in creation order.
func objects(ctx context.Context, tx *sql.Tx, schema string, typ string) ([]schemaObject, error) {
	//nolint:gosec // schema is one of two constants.
	query := fmt.Sprintf(`SELECT type, name, COALESCE(sql, '')
FROM %s.sqlite_schema
WHERE type = ?
  AND name NOT LIKE 'sqlite_%%'
  AND name NOT LIKE '_litestream_%%'
ORDER BY rowid`, schema)
	rows, err := tx.QueryContext(ctx, query, typ)
	if err != nil {
		return nil, fmt.Errorf("query %s schema: %w", schema, err)
	}
	defer rows.Close()
	var result []schemaObject
	for rows.Next() {
		var o schemaObject
		if err = rows.Scan(&o.typ, &o.name, &o.sql); err != nil {
			return nil, fmt.Errorf("scan schema object: %w", err)
		}
		result = append(result, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schema objects: %w", err)
	}
	return result, nil
}

type schemaDiff struct {
	added   []schemaObject
	removed []schemaObject
	// changed holds the target definitions of objects whose SQL differs.
	changed []schemaObject
}

func diffObjects(ctx context.Context, tx *sql.Tx, typ string) (schemaDiff, error) {
	var diff schemaDiff
	live, err := objects(ctx, tx, "main", typ)
	if err != nil {
		return diff, err
	}
	target, err := objects(ctx, tx, "schemaTarget", typ)
	if err != nil {
		return diff, err
	}

	liveByName := make(map[string]schemaObject, len(live))
	for _, o := range live {
		liveByName[o.name] = o
	}
	targetNames := make(map[string]bool, len(target))
	for _, o := range target {
		targetNames[o.name] = true
		l, ok := liveByName[o.name]
		switch {
		case !ok:
			diff.added = append(diff.added, o)
		case normalizeSQL(l.sql) != normalizeSQL(o.sql):
			diff.changed = append(diff.changed, o)
		}
	}
	for _, o := range live {
		if !targetNames[o.name] {
			diff.removed = append(diff.removed, o)
		}
	}
	return diff, nil
}

// normalizeSQL strips the quotes ALTER TABLE RENAME adds around table names.
func normalizeSQL(s string) string {
	return strings.ReplaceAll(s, `"`, "")
}

func (db *Database) exec(ctx context.Context, tx *sql.Tx, msg string, query string) error {
	db.logger.LogAttrs(ctx, slog.LevelInfo, msg, slog.String("query", query))
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return nil
}

func (db *Database) migrateTables(ctx context.Context, tx *sql.Tx) error {
	diff, err := diffObjects(ctx, tx, "table")
	if err != nil {
		return err
	}
	for _, t := range diff.removed {
		if err = db.exec(ctx, tx, "drop table", "DROP TABLE "+t.name); err != nil {
			return err
		}
	}
	for _, t := range diff.added {
		if err = db.exec(ctx, tx, "create table", t.sql); err != nil {
			return err
		}
	}
	for _, t := range diff.changed {
		if err = db.rebuildTable(ctx, tx, t); err != nil {
			return fmt.Errorf("rebuild %s: %w", t.name, err)
		}
	}
	return nil
}

// rebuildTable creates the new definition under a temporary name, copies the shared columns over and swaps the tables.
func (db *Database) rebuildTable(ctx context.Context, tx *sql.Tx, t schemaObject) error {
	temp := t.name + "_migration_temp"
	if err := db.exec(ctx, tx, "create replacement table", strings.Replace(t.sql, t.name, temp, 1)); err != nil {
		return err
	}

	var columns []string
	rows, err := tx.QueryContext(ctx, `SELECT '"' || target.name || '"'
FROM PRAGMA_TABLE_INFO(:table) AS live
JOIN PRAGMA_TABLE_INFO(:table, 'schemaTarget') AS target ON target.name = live.name`, sql.Named("table", t.name))
	if err != nil {
		return fmt.Errorf("query shared columns: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c string
		if err = rows.Scan(&c); err != nil {
			return fmt.Errorf("scan column: %w", err)
		}
		columns = append(columns, c)
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("iterate columns: %w", err)
	}

	if len(columns) > 0 {
		shared := strings.Join(columns, ", ")
		copySQL := fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s", temp, shared, shared, t.name)
		if err = db.exec(ctx, tx, "copy rows", copySQL); err != nil {
			return err
		}
	}
	if err = db.exec(ctx, tx, "drop old table", "DROP TABLE "+t.name); err != nil {
		return err
	}
	return db.exec(ctx, tx, "rename replacement table", fmt.Sprintf("ALTER TABLE %s RENAME TO %s", temp, t.name))
}

// migrateDerived syncs indexes or triggers. Those of rebuilt tables are gone by now and show up as added.
func (db *Database) migrateDerived(ctx context.Context, tx *sql.Tx, typ string) error {
	diff, err := diffObjects(ctx, tx, typ)
	if err != nil {
		return err
	}
	keyword := strings.ToUpper(typ)
	for _, o := range append(diff.removed, diff.changed...) {
		if err = db.exec(ctx, tx, "drop "+typ, fmt.Sprintf("DROP %s %s", keyword, o.name)); err != nil {
			return err
		}
	}
	for _, o := range append(diff.added, diff.changed...) {
		if err = db.exec(ctx, tx, "create "+typ, o.sql); err != nil {
			return err
		}
	}
	return nil
}

func checkForeignKeys(ctx context.Context, tx *sql.Tx) error {
	var (
		table  string
		rowID  sql.NullInt64
		parent string
		fkID   int
	)
	err := tx.QueryRowContext(ctx, "PRAGMA foreign_key_check").Scan(&table, &rowID, &parent, &fkID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil
	case err != nil:
		return fmt.Errorf("foreign key check: %w", err)
	default:
		return fmt.Errorf("foreign key violation in %s row %d referencing %s", table, rowID.Int64, parent)
	}
}
