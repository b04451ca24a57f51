package sqltable

import "database/sql"

var _ Rows = &sql.Rows{}

// Rows is the subset of *sql.Rows used to scan
// query results into a datatable.
//
// Usage example:
//
//	rows, err := db.QueryContext(ctx, "SELECT id, service FROM activations")
//	if err != nil {
//		return err
//	}
//	records, err := sqltable.ScanRows(ctx, rows, columns)
type Rows interface {
	Columns() ([]string, error)
	Next() bool
	Scan(dest ...any) error
	Close() error
	Err() error
}
