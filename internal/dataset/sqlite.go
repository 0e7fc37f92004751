package dataset

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// LoadSQLite reads one table of a SQLite database as a dataset. The table is
// read once and column typing follows the same rule as CSV loading: columns
// whose every value scans as numeric become dimensions. The database is
// opened read-only; this is an input format, not a persistence layer.
func LoadSQLite(path, table string) (*Table, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if !validTableName(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	rows, err := db.Query("SELECT * FROM " + table)
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", table, err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}

	var records [][]string
	scan := make([]any, len(header))
	for i := range scan {
		scan[i] = new(sql.NullString)
	}
	for rows.Next() {
		if err := rows.Scan(scan...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		record := make([]string, len(header))
		for i := range scan {
			ns := scan[i].(*sql.NullString)
			if ns.Valid {
				record[i] = ns.String
			}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading table %s: %w", table, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("table %s is empty", table)
	}

	return tableFromRecords(path+"#"+table, header, records)
}

// validTableName rejects identifiers that cannot be safely interpolated into
// the SELECT. SQLite identifiers here are restricted to word characters.
func validTableName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return true
}
