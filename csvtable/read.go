package csvtable

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/domonda/go-types/date"
	fs "github.com/ungerik/go-fs"

	"github.com/verisms/datatable"
)

// AsRows converts CSV rows with a header row as first row
// into datatable.Row maps.
//
// Header fields matching a column Key or Title (case-insensitive)
// are stored under the column's Key, other header fields
// are stored under the header text.
// Field values are converted with ParseValue.
func AsRows(rows [][]string, columns []datatable.Column) ([]datatable.Row, error) {
	rows = RemoveEmptyRows(rows)
	if len(rows) == 0 {
		return nil, nil
	}
	header := rows[0]
	keys := make([]string, len(header))
	types := make([]datatable.ColumnType, len(header))
	for i, title := range header {
		title = strings.TrimSpace(title)
		if title == "" {
			return nil, fmt.Errorf("empty CSV header field at column %d", i+1)
		}
		keys[i] = title
		for c := range columns {
			if strings.EqualFold(columns[c].Key, title) || strings.EqualFold(columns[c].Title, title) {
				keys[i] = columns[c].Key
				types[i] = columns[c].Type
				break
			}
		}
	}

	result := make([]datatable.Row, 0, len(rows)-1)
	for _, fields := range rows[1:] {
		row := make(datatable.Row, len(keys))
		for i, key := range keys {
			if i < len(fields) {
				if val := ParseValue(fields[i], types[i]); val != nil {
					row[key] = val
				}
			}
		}
		result = append(result, row)
	}
	return result, nil
}

// ParseValue converts a CSV field to a cell value:
//   - an empty field is nil
//   - a field of a date column that date.Normalize accepts is a date.Date
//   - an integer or decimal number that formats back to the same text
//     is an int64 or float64 so that it sorts numerically
//   - everything else is the string
//
// Phone numbers like "+49151" or numbers with leading zeros
// don't format back to the same text and stay strings.
func ParseValue(field string, columnType datatable.ColumnType) any {
	if field == "" {
		return nil
	}
	if columnType == datatable.ColumnTypeDate {
		if d, err := date.Normalize(field); err == nil {
			return d
		}
		return field
	}
	if columnType == datatable.ColumnTypeTagged {
		return field
	}
	if i, err := strconv.ParseInt(field, 10, 64); err == nil && strconv.FormatInt(i, 10) == field {
		return i
	}
	if f, err := strconv.ParseFloat(field, 64); err == nil && strconv.FormatFloat(f, 'f', -1, 64) == field {
		return f
	}
	return field
}

// ReadRows parses CSV data with format detection
// and converts it with AsRows.
func ReadRows(data []byte, columns []datatable.Column) ([]datatable.Row, error) {
	rows, _, err := ParseDetectFormat(data, nil)
	if err != nil {
		return nil, err
	}
	return AsRows(rows, columns)
}

// ReadView reads a CSV file and returns its rows
// as datatable.RowsView with the passed title and columns.
func ReadView(file fs.FileReader, title string, columns []datatable.Column) (*datatable.RowsView, error) {
	data, err := file.ReadAll()
	if err != nil {
		return nil, err
	}
	rows, err := ReadRows(data, columns)
	if err != nil {
		return nil, fmt.Errorf("can't read CSV file %s: %w", file.Name(), err)
	}
	return datatable.NewRowsView(title, columns, rows), nil
}
