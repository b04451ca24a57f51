package datatable

import (
	"fmt"
	"strconv"
	"sync"
)

// DefaultIDKey is the Row key of the stable row identity
// used when RowsView.IDKey is empty.
const DefaultIDKey = "id"

var _ View = new(RowsView)

// RowsView is a View over a slice of Row maps
// with the columns described by Cols.
//
// A cell is the value of its column's Key in the row,
// rows without a value for a key return nil for that cell.
//
// Example:
//
//	view := datatable.NewRowsView(
//	    "Numbers",
//	    []datatable.Column{{Key: "id"}, {Key: "service", Sortable: true}},
//	    []datatable.Row{
//	        {"id": 1, "service": "Telegram"},
//	        {"id": 2, "service": "WhatsApp"},
//	    },
//	)
//	fmt.Println(view.Cell(1, 1)) // WhatsApp
type RowsView struct {
	Tit  string
	Cols []Column
	Rows []Row
	// IDKey is the key of the stable row identity,
	// DefaultIDKey is used if empty.
	IDKey string

	idsMtx  sync.Mutex
	idsKey  string
	ids     []string
	idIndex map[string]int
}

// NewRowsView returns a RowsView with the passed title, columns and rows.
func NewRowsView(title string, cols []Column, rows []Row) *RowsView {
	return &RowsView{
		Tit:  title,
		Cols: cols,
		Rows: rows,
	}
}

func (view *RowsView) Title() string { return view.Tit }

// WithTitle returns a RowsView with the passed title
// sharing the columns and rows of view.
func (view *RowsView) WithTitle(title string) *RowsView {
	return &RowsView{
		Tit:   title,
		Cols:  view.Cols,
		Rows:  view.Rows,
		IDKey: view.IDKey,
	}
}

// Columns returns the display titles of the columns.
func (view *RowsView) Columns() []string {
	titles := make([]string, len(view.Cols))
	for i := range view.Cols {
		titles[i] = view.Cols[i].DisplayTitle()
	}
	return titles
}

func (view *RowsView) NumRows() int { return len(view.Rows) }

func (view *RowsView) Cell(row, col int) any {
	if row < 0 || col < 0 || row >= len(view.Rows) || col >= len(view.Cols) {
		return nil
	}
	return view.Rows[row][view.Cols[col].Key]
}

// Column returns the descriptor of the column with index col
// or nil if col is out of range.
func (view *RowsView) Column(col int) *Column {
	if col < 0 || col >= len(view.Cols) {
		return nil
	}
	return &view.Cols[col]
}

// ColumnIndex returns the index of the column with the passed key or -1.
func (view *RowsView) ColumnIndex(key string) int {
	for i := range view.Cols {
		if view.Cols[i].Key == key {
			return i
		}
	}
	return -1
}

// Row returns the row with the passed index or nil if out of range.
func (view *RowsView) Row(row int) Row {
	if row < 0 || row >= len(view.Rows) {
		return nil
	}
	return view.Rows[row]
}

// RowID returns the stable identity of a row
// or an empty string if row is out of range.
//
// It is the text of the row's IDKey value, or if the row
// has no such value "#" followed by the row index.
// IDs are unique within the view: a row whose ID is already
// taken by an earlier row gets the first free one of
// "#<index>", "#<index>.1", "#<index>.2", ...
//
// The IDs are computed on first use and stay stable
// as long as Rows and IDKey are not modified.
func (view *RowsView) RowID(row int) string {
	ids := view.rowIDs()
	if row < 0 || row >= len(ids) {
		return ""
	}
	return ids[row]
}

// RowIndex returns the index of the row with the passed ID or -1.
func (view *RowsView) RowIndex(id string) int {
	view.idsMtx.Lock()
	defer view.idsMtx.Unlock()
	view.updateIDs()
	if row, ok := view.idIndex[id]; ok {
		return row
	}
	return -1
}

func (view *RowsView) rowIDs() []string {
	view.idsMtx.Lock()
	defer view.idsMtx.Unlock()
	view.updateIDs()
	return view.ids
}

func (view *RowsView) updateIDs() {
	idKey := view.IDKey
	if idKey == "" {
		idKey = DefaultIDKey
	}
	if view.ids != nil && view.idsKey == idKey && len(view.ids) == len(view.Rows) {
		return
	}
	view.idsKey = idKey
	view.ids = make([]string, len(view.Rows))
	view.idIndex = make(map[string]int, len(view.Rows))
	for row, values := range view.Rows {
		fallback := "#" + strconv.Itoa(row)
		id := fallback
		if value := values[idKey]; !IsNil(value) {
			id = fmt.Sprint(Deref(value))
		}
		if _, taken := view.idIndex[id]; taken {
			id = fallback
			for n := 1; ; n++ {
				if _, taken = view.idIndex[id]; !taken {
					break
				}
				id = fallback + "." + strconv.Itoa(n)
			}
		}
		view.ids[row] = id
		view.idIndex[id] = row
	}
}
