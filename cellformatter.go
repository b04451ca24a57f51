package datatable

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/domonda/go-types/date"
)

// Cell is a value of a table cell together with
// its position and the context needed to format it.
type Cell struct {
	// Index of the row within the visible page
	Index int
	// Col is the column index
	Col int
	// Column describes the column of the cell
	Column *Column
	// Row is the complete record of the cell
	Row Row
	// Value of the cell
	Value any
}

// CellFormatter is an interface for formatting cell values as strings.
type CellFormatter interface {
	// FormatCell formats a cell as string
	// or returns a wrapped errors.ErrUnsupported error if
	// it doesn't support formatting the value of the cell.
	// The raw result indicates if the returned string
	// is in the raw format of the output (like HTML) and can be
	// used as is or if it has to be escaped.
	FormatCell(ctx context.Context, cell *Cell) (str string, raw bool, err error)
}

// CellFormatterFunc implements CellFormatter for a function.
type CellFormatterFunc func(ctx context.Context, cell *Cell) (str string, raw bool, err error)

func (f CellFormatterFunc) FormatCell(ctx context.Context, cell *Cell) (str string, raw bool, err error) {
	return f(ctx, cell)
}

// RenderFunc implements CellFormatter for a function
// receiving the cell value and its row.
// The result will be escaped by the output format.
type RenderFunc func(value any, row Row) string

func (f RenderFunc) FormatCell(ctx context.Context, cell *Cell) (str string, raw bool, err error) {
	return f(cell.Value, cell.Row), false, nil
}

// RawRenderFunc implements CellFormatter for a function
// receiving the cell value and its row.
// The result is indicated to be a raw value.
type RawRenderFunc func(value any, row Row) string

func (f RawRenderFunc) FormatCell(ctx context.Context, cell *Cell) (str string, raw bool, err error) {
	return f(cell.Value, cell.Row), true, nil
}

// PrintfCellFormatter implements CellFormatter by calling
// fmt.Sprintf with this type's string value as format.
type PrintfCellFormatter string

func (format PrintfCellFormatter) FormatCell(ctx context.Context, cell *Cell) (str string, raw bool, err error) {
	if IsNil(cell.Value) {
		return "", false, errors.ErrUnsupported
	}
	return fmt.Sprintf(string(format), Deref(cell.Value)), false, nil
}

// DefaultDateLayout formats dates like
// the en-US locale date string: month/day/year
const DefaultDateLayout = "1/2/2006"

// DateCellFormatter formats time.Time, date.Date,
// and strings that can be parsed as date
// using this type's string value as time layout.
// Other values are not supported.
type DateCellFormatter string

func (layout DateCellFormatter) FormatCell(ctx context.Context, cell *Cell) (str string, raw bool, err error) {
	t, ok := AsTime(cell.Value)
	if !ok {
		return "", false, errors.ErrUnsupported
	}
	return t.Format(string(layout)), false, nil
}

// AsTime converts time.Time, date.Date and date strings
// in any format understood by date.Normalize to time.Time.
func AsTime(value any) (time.Time, bool) {
	switch v := Deref(value).(type) {
	case time.Time:
		return v, !v.IsZero()
	case date.Date:
		return parseDate(string(v))
	case string:
		return parseDate(v)
	}
	return time.Time{}, false
}

func parseDate(str string) (time.Time, bool) {
	if str == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, str); err == nil {
		return t, true
	}
	d, err := date.Normalize(str)
	if err != nil {
		return time.Time{}, false
	}
	t, err := time.Parse(date.Layout, string(d))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
