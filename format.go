package datatable

import (
	"context"
	"fmt"
	"maps"
)

// TypeFormatters maps column types to the CellFormatter
// used for columns of that type without a Render formatter.
//
// The With methods return modified copies,
// the original TypeFormatters is never changed.
type TypeFormatters map[ColumnType]CellFormatter

// DefaultTypeFormatters formats date columns with DefaultDateLayout.
// Text and tagged columns use the passthrough text form.
func DefaultTypeFormatters() TypeFormatters {
	return TypeFormatters{
		ColumnTypeDate: DateCellFormatter(DefaultDateLayout),
	}
}

// WithFormatter returns a copy with formatter registered for columnType.
// A nil formatter removes the registration.
func (f TypeFormatters) WithFormatter(columnType ColumnType, formatter CellFormatter) TypeFormatters {
	mod := maps.Clone(f)
	if mod == nil {
		mod = make(TypeFormatters)
	}
	if formatter != nil {
		mod[columnType] = formatter
	} else {
		delete(mod, columnType)
	}
	return mod
}

// FormatCell formats a cell in the order:
//  1. cell.Column.Render if not nil
//  2. the formatter of the column type
//  3. FormatValue of cell.Value
//
// Formatters returning an error fall through to the next step,
// so FormatCell always returns a usable string.
func (f TypeFormatters) FormatCell(ctx context.Context, cell *Cell) (str string, raw bool) {
	if cell.Column != nil {
		if cell.Column.Render != nil {
			str, raw, err := cell.Column.Render.FormatCell(ctx, cell)
			if err == nil {
				return str, raw
			}
		}
		columnType := cell.Column.Type
		if columnType == "" {
			columnType = ColumnTypeText
		}
		if typeFmt, ok := f[columnType]; ok {
			str, raw, err := typeFmt.FormatCell(ctx, cell)
			if err == nil {
				return str, raw
			}
		}
	}
	return FormatValue(cell.Value), false
}

// FormatValue returns the text form of a value
// as used for searching: fmt.Sprint of the dereferenced
// value or an empty string for nil values.
func FormatValue(value any) string {
	if IsNil(value) {
		return ""
	}
	return fmt.Sprint(Deref(value))
}

// NewCell returns the Cell at the page-relative row
// and column col of the result.
func (r *Result) NewCell(row, col int) *Cell {
	return &Cell{
		Index:  row,
		Col:    col,
		Column: r.Column(col),
		Row:    r.Row(row),
		Value:  r.View.Cell(row, col),
	}
}

// FormatResultAsStrings formats all cells of the visible page.
// If addHeaderRow is true, the column titles are returned as first row.
// A nil formatters argument is handled like DefaultTypeFormatters().
// Raw results are returned unchanged.
func FormatResultAsStrings(ctx context.Context, result *Result, formatters TypeFormatters, addHeaderRow bool) (rows [][]string, err error) {
	if err = ctx.Err(); err != nil {
		return nil, err
	}
	if formatters == nil {
		formatters = DefaultTypeFormatters()
	}
	columns := result.View.Columns()
	numCols := len(columns)
	if addHeaderRow {
		rows = append(rows, columns)
	}
	for row, numRows := 0, result.NumRows(); row < numRows; row++ {
		rowStrings := make([]string, numCols)
		for col := range numCols {
			rowStrings[col], _ = formatters.FormatCell(ctx, result.NewCell(row, col))
		}
		rows = append(rows, rowStrings)
	}
	return rows, nil
}
