package datatable

import (
	"fmt"
	"strings"
)

// FilterRows returns the indices of all rows of the view
// where at least one cell contains search as
// case-insensitive substring of the cell's text form.
//
// Cells without a value never match.
// An empty search returns all row indices in order.
func FilterRows(view View, search string) []int {
	numRows := view.NumRows()
	rows := make([]int, 0, numRows)
	if search == "" {
		for row := range numRows {
			rows = append(rows, row)
		}
		return rows
	}

	needle := strings.ToLower(search)
	numCols := len(view.Columns())
	for row := range numRows {
		for col := range numCols {
			if CellContains(view.Cell(row, col), needle) {
				rows = append(rows, row)
				break
			}
		}
	}
	return rows
}

// CellContains returns true if the text form of value contains
// the lower case lowerNeedle when converted to lower case.
// Nil values never contain anything.
func CellContains(value any, lowerNeedle string) bool {
	if IsNil(value) {
		return false
	}
	text := strings.ToLower(fmt.Sprint(Deref(value)))
	return strings.Contains(text, lowerNeedle)
}
