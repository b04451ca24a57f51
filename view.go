package datatable

// View is a read-only table of rows and columns.
//
// Cell returns nil for indices outside of the view
// and for cells without a value.
type View interface {
	Title() string
	Columns() []string
	NumRows() int
	Cell(row, col int) any
}
