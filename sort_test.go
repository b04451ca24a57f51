package datatable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortState_Toggle(t *testing.T) {
	var s SortState
	require.False(t, s.Active())

	s = s.Toggle("name")
	require.Equal(t, SortState{Column: "name", Direction: Ascending}, s)

	s = s.Toggle("name")
	require.Equal(t, SortState{Column: "name", Direction: Descending}, s)

	s = s.Toggle("name")
	require.Equal(t, SortState{Column: "name", Direction: Ascending}, s)

	s = s.Toggle("name").Toggle("date")
	require.Equal(t, SortState{Column: "date", Direction: Ascending}, s, "new column resets to ascending")
}

func TestParseSortDirection(t *testing.T) {
	assert.Equal(t, Descending, ParseSortDirection("desc"))
	assert.Equal(t, Descending, ParseSortDirection("DESC"))
	assert.Equal(t, Ascending, ParseSortDirection("asc"))
	assert.Equal(t, Ascending, ParseSortDirection(""))
	assert.Equal(t, "desc", Descending.String())
	assert.Equal(t, "asc", Ascending.String())
}

func TestCompare(t *testing.T) {
	var (
		nilPtr *int
		two    = 2
		t1     = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		t2     = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	)
	tests := []struct {
		name string
		a, b any
		want int
	}{
		{name: "ints", a: 1, b: 2, want: -1},
		{name: "int and float", a: 2, b: 1.5, want: 1},
		{name: "uint and negative int", a: uint(0), b: -1, want: 1},
		{name: "int64 and uint8", a: int64(200), b: uint8(200), want: 0},
		{name: "numeric not lexicographic", a: 10, b: 9, want: 1},
		{name: "strings", a: "A", b: "B", want: -1},
		{name: "equal strings", a: "x", b: "x", want: 0},
		{name: "bools", a: false, b: true, want: -1},
		{name: "times", a: t2, b: t1, want: 1},
		{name: "pointer deref", a: &two, b: 3, want: -1},
		{name: "nil equal nil", a: nil, b: nilPtr, want: 0},
		{name: "nil before number", a: nil, b: 0, want: -1},
		{name: "number before string", a: 100, b: "1", want: -1},
		{name: "string before time", a: "z", b: t1, want: -1},
		{name: "other by text", a: []int{2}, b: []int{1}, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Compare(tt.a, tt.b))
			require.Equal(t, -tt.want, Compare(tt.b, tt.a), "antisymmetric")
		})
	}
}

func TestSortRows(t *testing.T) {
	view := NewRowsView("", []Column{{Key: "id"}, {Key: "name", Sortable: true}}, []Row{
		{"id": 1, "name": "B"},
		{"id": 2, "name": "A"},
		{"id": 3, "name": "B"},
		{"id": 4, "name": nil},
	})

	rows := []int{0, 1, 2, 3}
	SortRows(view, rows, 1, Ascending)
	require.Equal(t, []int{3, 1, 0, 2}, rows, "nil first, stable for equal B")

	rows = []int{0, 1, 2, 3}
	SortRows(view, rows, 1, Descending)
	require.Equal(t, []int{0, 2, 1, 3}, rows, "stable for equal B")
}

func TestSortRowsOrderProperty(t *testing.T) {
	view := testView()
	for col := range view.Cols {
		for _, dir := range []SortDirection{Ascending, Descending} {
			rows := FilterRows(view, "")
			SortRows(view, rows, col, dir)
			for i := 1; i < len(rows); i++ {
				c := Compare(view.Cell(rows[i-1], col), view.Cell(rows[i], col))
				if dir == Ascending {
					require.LessOrEqual(t, c, 0, "col %d ascending", col)
				} else {
					require.GreaterOrEqual(t, c, 0, "col %d descending", col)
				}
			}
		}
	}
}
