// Package sqltable reads datatable row collections
// from SQL query results.
package sqltable

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/domonda/go-types/date"

	"github.com/verisms/datatable"
)

// ScanRows reads all rows of a query result as datatable.Row maps
// keyed by the result column names and closes rows.
//
// Result column names matching a column Key or Title (case-insensitive)
// are stored under the column's Key.
// []byte values are converted to strings and string values
// of date columns are normalized to date.Date when possible.
// SQL NULL values are left out of the row.
func ScanRows(ctx context.Context, rows Rows, columns []datatable.Column) ([]datatable.Row, error) {
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(names))
	types := make([]datatable.ColumnType, len(names))
	for i, name := range names {
		keys[i] = name
		for c := range columns {
			if strings.EqualFold(columns[c].Key, name) || strings.EqualFold(columns[c].Title, name) {
				keys[i] = columns[c].Key
				types[i] = columns[c].Type
				break
			}
		}
	}

	var result []datatable.Row
	scannedValues := make([]any, len(names))
	valueScanners := make([]any, len(names))
	for i := range valueScanners {
		valueScanners[i] = valueScanner{&scannedValues[i]}
	}
	for rows.Next() {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		clear(scannedValues)
		err = rows.Scan(valueScanners...)
		if err != nil {
			return result, err
		}
		row := make(datatable.Row, len(keys))
		for i, val := range scannedValues {
			if val = cellValue(val, types[i]); val != nil {
				row[keys[i]] = val
			}
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// ReadView runs query on db and returns the result
// as datatable.RowsView with the passed title and columns.
func ReadView(ctx context.Context, db *sql.DB, title string, columns []datatable.Column, query string, args ...any) (*datatable.RowsView, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", query, err)
	}
	records, err := ScanRows(ctx, rows, columns)
	if err != nil {
		return nil, err
	}
	return datatable.NewRowsView(title, columns, records), nil
}

func cellValue(val any, columnType datatable.ColumnType) any {
	if b, ok := val.([]byte); ok {
		val = string(b)
	}
	if columnType != datatable.ColumnTypeDate {
		return val
	}
	switch v := val.(type) {
	case string:
		if d, err := date.Normalize(v); err == nil {
			return d
		}
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}
	}
	return val
}

var _ sql.Scanner = new(valueScanner)

type valueScanner struct {
	dest *any
}

// Scan implements the database/sql.Scanner interface.
func (s valueScanner) Scan(src any) error {
	if b, ok := src.([]byte); ok {
		// Copy bytes because they won't be valid after this method call
		src = slices.Clone(b)
	}
	*s.dest = src
	return nil
}
