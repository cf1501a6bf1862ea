package schema

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/duckdb/duckdb-go/v2" // registers the "duckdb" driver
	_ "github.com/mattn/go-sqlite3"    // registers the "sqlite3" driver
)

// Supported database/sql driver names.
const (
	DriverSQLite = "sqlite3"
	DriverDuckDB = "duckdb"
)

const sqliteTablesQuery = `SELECT name FROM sqlite_master
WHERE type IN ('table', 'view') AND name NOT LIKE 'sqlite_%'
ORDER BY name`

const duckdbColumnsQuery = `SELECT table_name, column_name
FROM information_schema.columns
WHERE table_schema = current_schema()
ORDER BY table_name, ordinal_position`

// Open connects to dsn with the given driver, loads its catalog and closes
// the connection again.
func Open(ctx context.Context, driver, dsn string) (*Catalog, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	defer db.Close() //nolint:errcheck

	return Load(ctx, db, driver)
}

// Load reads table and column names from db. The driver name selects the
// introspection query.
func Load(ctx context.Context, db *sql.DB, driver string) (*Catalog, error) {
	switch driver {
	case DriverSQLite:
		return loadSQLite(ctx, db)
	case DriverDuckDB:
		return loadDuckDB(ctx, db)
	default:
		return nil, fmt.Errorf("unsupported schema driver %q", driver)
	}
}

func loadSQLite(ctx context.Context, db *sql.DB) (*Catalog, error) {
	rows, err := db.QueryContext(ctx, sqliteTablesQuery)
	if err != nil {
		return nil, fmt.Errorf("list sqlite tables: %w", err)
	}
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close() //nolint:errcheck
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		rows.Close() //nolint:errcheck
		return nil, fmt.Errorf("list sqlite tables: %w", err)
	}
	rows.Close() //nolint:errcheck

	tables := make([]*Table, 0, len(names))
	for _, name := range names {
		cols, err := sqliteColumns(ctx, db, name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, NewTable(name, cols...))
	}
	return NewCatalog(tables...), nil
}

// sqliteColumns returns the column names of one table in declaration order.
func sqliteColumns(ctx context.Context, db *sql.DB, table string) ([]string, error) {
	rows, err := db.QueryContext(ctx, "SELECT name FROM pragma_table_info(?) ORDER BY cid", table)
	if err != nil {
		return nil, fmt.Errorf("table info %q: %w", table, err)
	}
	defer rows.Close() //nolint:errcheck

	var cols []string
	for rows.Next() {
		var col string
		if err := rows.Scan(&col); err != nil {
			return nil, fmt.Errorf("scan column of %q: %w", table, err)
		}
		cols = append(cols, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("table info %q: %w", table, err)
	}
	return cols, nil
}

func loadDuckDB(ctx context.Context, db *sql.DB) (*Catalog, error) {
	rows, err := db.QueryContext(ctx, duckdbColumnsQuery)
	if err != nil {
		return nil, fmt.Errorf("query information_schema: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var (
		tables  []*Table
		current *Table
	)
	for rows.Next() {
		var tableName, col string
		if err := rows.Scan(&tableName, &col); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		if current == nil || current.Name != tableName {
			current = NewTable(tableName)
			tables = append(tables, current)
		}
		current.Columns = append(current.Columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query information_schema: %w", err)
	}
	return NewCatalog(tables...), nil
}
