// Package exceltable reads Excel files (.xlsx, .xlsm, .xltm, .xltx)
// as datatable row collections.
//
// The package uses the excelize library (github.com/xuri/excelize/v2)
// to extract sheet data as strings which are then converted
// to typed cell values like CSV fields, see csvtable.ParseValue.
//
// Example usage:
//
//	view, err := exceltable.ReadView(fs.File("activations.xlsx"), "", columns)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Sheet: %s, Rows: %d\n", view.Title(), view.NumRows())
package exceltable

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	fs "github.com/ungerik/go-fs"
	"github.com/xuri/excelize/v2"

	"github.com/verisms/datatable"
	"github.com/verisms/datatable/csvtable"
)

// ReadFirstSheet reads the first sheet of an Excel file
// and returns it as datatable.RowsView titled with the sheet name.
//
// The first row of the sheet is the header row mapped to columns
// like csvtable.AsRows does for CSV files.
// Empty rows and columns at the edges of the data range are removed.
//
// Errors:
//   - ErrSheetNotExist if the file contains no sheets
//   - ErrEmptySheet if the first sheet has no data after cleanup
//   - excelize parsing errors for malformed Excel files
func ReadFirstSheet(reader io.Reader, columns []datatable.Column) (view *datatable.RowsView, err error) {
	f, e := excelize.OpenReader(reader)
	if e != nil {
		return nil, e
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrSheetNotExist{SheetName: "<FirstSheet>"}
	}
	return readSheet(f, sheet, columns)
}

// Read reads all sheets of an Excel file, one view per non-empty sheet.
func Read(reader io.Reader, columns []datatable.Column) (views []*datatable.RowsView, err error) {
	f, e := excelize.OpenReader(reader)
	if e != nil {
		return nil, e
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	for _, sheet := range f.GetSheetList() {
		view, err := readSheet(f, sheet, columns)
		if err != nil {
			if errors.Is(err, ErrEmptySheet) {
				continue
			}
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// ReadView reads the first sheet of an Excel file.
// The view has the passed title or the sheet name if title is empty.
func ReadView(file fs.FileReader, title string, columns []datatable.Column) (*datatable.RowsView, error) {
	data, err := file.ReadAll()
	if err != nil {
		return nil, err
	}
	view, err := ReadFirstSheet(bytes.NewReader(data), columns)
	if err != nil {
		return nil, fmt.Errorf("can't read Excel file %s: %w", file.Name(), err)
	}
	if title != "" {
		return view.WithTitle(title), nil
	}
	return view, nil
}

func readSheet(f *excelize.File, sheet string, columns []datatable.Column) (*datatable.RowsView, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	rows = csvtable.RemoveEmptyRows(rows)
	rows = removeEmptyColumns(rows)
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}
	records, err := csvtable.AsRows(rows, columns)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	return datatable.NewRowsView(sheet, columns, records), nil
}

// removeEmptyColumns removes the columns left and right
// of the data range that are empty in all rows.
func removeEmptyColumns(rows [][]string) [][]string {
	first, last := -1, -1
	for _, row := range rows {
		for col, field := range row {
			if field == "" {
				continue
			}
			if first == -1 || col < first {
				first = col
			}
			if col > last {
				last = col
			}
		}
	}
	if first == -1 {
		return nil
	}
	for i, row := range rows {
		switch {
		case len(row) <= first:
			rows[i] = nil
		case len(row) > last:
			rows[i] = row[first : last+1]
		default:
			rows[i] = row[first:]
		}
	}
	return rows
}
