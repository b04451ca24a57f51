package datatable

var _ View = new(FilteredView)

type FilteredView struct {
	Source View
	// Offset index of the first row after RowMapping, must be positive.
	RowOffset int
	// Limits the number of rows, only used if > 0.
	RowLimit int
	// If not nil then the view has as many rows
	// as RowMapping has elements (before RowOffset and RowLimit)
	// and every element is a row index into the Source view.
	RowMapping []int
	// If not nil then the view has as many
	// columns as ColumnMapping has elements and
	// every element is a column index into the Source view.
	// If nil then the view has as many columns as the Source view.
	ColumnMapping []int
}

func (view *FilteredView) Title() string {
	return view.Source.Title()
}

func (view *FilteredView) Columns() []string {
	sourceCols := view.Source.Columns()
	if view.ColumnMapping == nil {
		return sourceCols
	}
	mappedCols := make([]string, len(view.ColumnMapping))
	for i, iSource := range view.ColumnMapping {
		mappedCols[i] = sourceCols[iSource]
	}
	return mappedCols
}

func (view *FilteredView) NumCols() int {
	if view.ColumnMapping != nil {
		return len(view.ColumnMapping)
	}
	return len(view.Source.Columns())
}

func (view *FilteredView) numMappedRows() int {
	if view.RowMapping != nil {
		return len(view.RowMapping)
	}
	return view.Source.NumRows()
}

func (view *FilteredView) NumRows() int {
	n := view.numMappedRows() - max(view.RowOffset, 0)
	if n < 0 {
		return 0
	}
	if view.RowLimit > 0 && n > view.RowLimit {
		return view.RowLimit
	}
	return n
}

// SourceRow returns the index of the Source row
// shown as row of the view or -1 if row is out of range.
func (view *FilteredView) SourceRow(row int) int {
	if row < 0 || row >= view.NumRows() {
		return -1
	}
	row += max(view.RowOffset, 0)
	if view.RowMapping != nil {
		return view.RowMapping[row]
	}
	return row
}

// SourceCol returns the index of the Source column
// shown as col of the view or -1 if col is out of range.
func (view *FilteredView) SourceCol(col int) int {
	if col < 0 || col >= view.NumCols() {
		return -1
	}
	if view.ColumnMapping != nil {
		return view.ColumnMapping[col]
	}
	return col
}

func (view *FilteredView) Cell(row, col int) any {
	row = view.SourceRow(row)
	col = view.SourceCol(col)
	if row < 0 || col < 0 {
		return nil
	}
	return view.Source.Cell(row, col)
}
