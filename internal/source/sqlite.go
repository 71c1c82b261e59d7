package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/jsonsql/internal/ir"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// loadSQLite reads every row of one table or view. Tables come back in rowid
// order, WITHOUT ROWID tables in primary key order; views keep whatever order
// SQLite produces. The database is opened read-only.
func loadSQLite(ctx context.Context, path, table string) ([]ir.Record, error) {
	if table == "" {
		return nil, fmt.Errorf("a table name is required for sqlite datasets (use --table)")
	}
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	dsn := (&url.URL{
		Scheme:   "file",
		Opaque:   path,
		RawQuery: "mode=ro&_busy_timeout=5000",
	}).String()

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	orderBy, err := rowOrder(ctx, db, table)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, fmt.Sprintf(`SELECT * FROM "%s"%s`, table, orderBy))
	if err != nil {
		return nil, fmt.Errorf("query table %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	var records []ir.Record
	for index := 0; rows.Next(); index++ {
		raw := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", index, err)
		}

		var rec ir.Record
		for i, col := range columns {
			val, ok, err := sqliteScalar(raw[i])
			if err != nil {
				return nil, fieldError(index, col, err.Error())
			}
			if ok {
				rec.Set(col, val)
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return records, nil
}

// rowOrder returns the ORDER BY clause that gives a stable row order for
// table, or "" for views and unknown names. An unknown name is reported by
// the SELECT that follows.
func rowOrder(ctx context.Context, db *sql.DB, table string) (string, error) {
	var (
		kind         string
		withoutRowid int
	)
	err := db.QueryRowContext(ctx,
		`SELECT type, wr FROM pragma_table_list WHERE schema = 'main' AND name = ? COLLATE NOCASE`,
		table).Scan(&kind, &withoutRowid)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("inspect table %s: %w", table, err)
	}

	switch {
	case kind != "table":
		return "", nil
	case withoutRowid == 0:
		return " ORDER BY rowid", nil
	}

	rows, err := db.QueryContext(ctx,
		`SELECT name FROM pragma_table_info(?) WHERE pk > 0 ORDER BY pk`, table)
	if err != nil {
		return "", fmt.Errorf("read primary key of %s: %w", table, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return "", fmt.Errorf("read primary key of %s: %w", table, err)
		}
		keys = append(keys, `"`+strings.ReplaceAll(name, `"`, `""`)+`"`)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("read primary key of %s: %w", table, err)
	}
	if len(keys) == 0 {
		return "", nil
	}
	return " ORDER BY " + strings.Join(keys, ", "), nil
}

// sqliteScalar converts a driver value. NULL reports ok=false.
func sqliteScalar(v any) (ir.Value, bool, error) {
	switch val := v.(type) {
	case nil:
		return nil, false, nil
	case int64:
		return ir.Int(val), true, nil
	case float64:
		return ir.Float(val), true, nil
	case bool:
		return ir.Bool(val), true, nil
	case string:
		return ir.String(val), true, nil
	case []byte:
		return ir.String(val), true, nil
	case time.Time:
		return ir.String(val.Format(time.RFC3339Nano)), true, nil
	default:
		return nil, false, fmt.Errorf("unsupported column type %T", v)
	}
}
