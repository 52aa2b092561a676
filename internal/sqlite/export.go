package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/myrjola/fitnesspro/internal/errors"
)

const profilesTableName = "profiles"

var ErrNoProfileTable = errors.NewSentinel("profiles table does not exist")

// profileTable is a table holding data of a profile. column is the column that contains the profile id.
type profileTable struct {
	name   string
	column string
}

// ExportProfile copies every row belonging to profileID into a new SQLite database file in dir and returns its path.
//
// Tables are found by following foreign keys back to the profiles table, so new tables are exported without
// changes here. Tables without such a path, like sessions, are left out.
func (db *Database) ExportProfile(ctx context.Context, profileID int64, dir string) (_ string, err error) {
	exportPath := filepath.Join(dir, fmt.Sprintf("profile-%d.sqlite3", profileID))
	exportDSN := fmt.Sprintf("file:%s?mode=rwc", exportPath)

	// Attaching a new file needs a read-write connection. Writes wait until the export is done.
	conn, err := db.ReadWrite.Conn(ctx)
	if err != nil {
		return "", fmt.Errorf("get db connection: %w", err)
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close db connection: %w", closeErr))
		}
	}()
	if _, err = conn.ExecContext(ctx, "ATTACH DATABASE ? AS export", exportDSN); err != nil {
		return "", fmt.Errorf("attach export database: %w", err)
	}
	defer func() {
		if _, detachErr := conn.ExecContext(context.WithoutCancel(ctx), "DETACH DATABASE export"); detachErr != nil {
			err = errors.Join(err, fmt.Errorf("detach export database: %w", detachErr))
		}
	}()

	if err = db.copyProfile(ctx, conn, profileID); err != nil {
		return "", err
	}
	db.logger.LogAttrs(ctx, slog.LevelInfo, "exported profile",
		slog.Int64("profile_id", profileID), slog.String("path", exportPath))
	return exportPath, nil
}

func (db *Database) copyProfile(ctx context.Context, conn *sql.Conn, profileID int64) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			db.logger.LogAttrs(ctx, slog.LevelError, "rollback failed", errors.SlogError(rollbackErr))
		}
	}()

	tables, err := profileTables(ctx, tx)
	if err != nil {
		return fmt.Errorf("find profile tables: %w", err)
	}
	// Parents are created before the tables that reference them.
	for _, t := range tables {
		if err = copyTableSchema(ctx, tx, t.name); err != nil {
			return fmt.Errorf("copy schema of %s: %w", t.name, err)
		}
		query := fmt.Sprintf(`INSERT INTO export.%[1]s SELECT * FROM main.%[1]s WHERE %[2]s = ?`, t.name, t.column)
		if _, err = tx.ExecContext(ctx, query, profileID); err != nil {
			return fmt.Errorf("copy rows of %s: %w", t.name, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit export: %w", err)
	}
	return nil
}

// profileTables discovers the tables that reference profiles directly or through another profile table. Every
// profile table in the schema carries the profile id in the column of its foreign key.
func profileTables(ctx context.Context, tx *sql.Tx) ([]profileTable, error) {
	names, err := tableNames(ctx, tx)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(names, profilesTableName) {
		return nil, ErrNoProfileTable
	}

	discovered := []profileTable{{name: profilesTableName, column: "id"}}
	known := map[string]string{profilesTableName: "id"}
	for changed := true; changed; {
		changed = false
		for _, name := range names {
			if _, ok := known[name]; ok {
				continue
			}
			column, found, fkErr := profileColumn(ctx, tx, name, known)
			if fkErr != nil {
				return nil, fmt.Errorf("foreign keys of %s: %w", name, fkErr)
			}
			if found {
				known[name] = column
				discovered = append(discovered, profileTable{name: name, column: column})
				changed = true
			}
		}
	}
	return discovered, nil
}

func tableNames(ctx context.Context, tx *sql.Tx) (_ []string, err error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT name FROM main.sqlite_schema WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()
	var names []string
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		names = append(names, name)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tables: %w", err)
	}
	return names, nil
}

// profileColumn returns the column of table that references the profile column of a known table.
func profileColumn(
	ctx context.Context, tx *sql.Tx, table string, known map[string]string,
) (_ string, _ bool, err error) {
	rows, err := tx.QueryContext(ctx, `SELECT "table", "from", "to" FROM pragma_foreign_key_list(?)`, table)
	if err != nil {
		return "", false, fmt.Errorf("query foreign keys: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()
	for rows.Next() {
		var referenced, from, to string
		if err = rows.Scan(&referenced, &from, &to); err != nil {
			return "", false, fmt.Errorf("scan foreign key: %w", err)
		}
		if column, ok := known[referenced]; ok && column == to {
			return from, true, nil
		}
	}
	if err = rows.Err(); err != nil {
		return "", false, fmt.Errorf("iterate foreign keys: %w", err)
	}
	return "", false, nil
}

// copyTableSchema creates table in the export database with the definition it has in main.
func copyTableSchema(ctx context.Context, tx *sql.Tx, table string) error {
	var createSQL string
	err := tx.QueryRowContext(ctx,
		`SELECT sql FROM main.sqlite_schema WHERE type = 'table' AND name = ?`, table).Scan(&createSQL)
	if err != nil {
		return fmt.Errorf("get schema: %w", err)
	}
	// The name may be quoted after a rebuild, so everything before the column list is replaced.
	columns := strings.Index(createSQL, "(")
	if columns < 0 {
		return fmt.Errorf("unexpected table definition %q", createSQL)
	}
	if _, err = tx.ExecContext(ctx, fmt.Sprintf("CREATE TABLE export.%s %s", table, createSQL[columns:])); err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	return nil
}
