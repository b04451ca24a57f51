package datatable

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApply_SortByName(t *testing.T) {
	source := NewRowsView("", []Column{{Key: "id"}, {Key: "name", Sortable: true}}, []Row{
		{"id": 1, "name": "B"},
		{"id": 2, "name": "A"},
	})
	result := Apply(source, Query{Sort: SortState{Column: "name"}})
	require.Equal(t, []Row{{"id": 2, "name": "A"}, {"id": 1, "name": "B"}}, result.Rows())
	require.Equal(t, []string{"2", "1"}, result.RowIDs())
}

func TestApply_IgnoresUnsortableAndUnknownColumns(t *testing.T) {
	source := NewRowsView("", []Column{{Key: "id"}, {Key: "name"}}, []Row{
		{"id": 1, "name": "B"},
		{"id": 2, "name": "A"},
	})
	require.Equal(t, []string{"1", "2"}, Apply(source, Query{Sort: SortState{Column: "name"}}).RowIDs())
	require.Equal(t, []string{"1", "2"}, Apply(source, Query{Sort: SortState{Column: "missing"}}).RowIDs())
}

func TestApply_Pages(t *testing.T) {
	source := numberedView(25)
	query := Query{Pagination: Pagination{Page: 3, PageSize: 10}}
	result := Apply(source, query)
	require.Equal(t, 25, result.TotalRows)
	require.Equal(t, 3, result.NumPages)
	require.Equal(t, 5, result.NumRows())
	require.Equal(t, 3, result.Page())
	require.True(t, result.HasPrevPage())
	require.False(t, result.HasNextPage())
	require.Equal(t, []string{"21", "22", "23", "24", "25"}, result.RowIDs())
}

func TestApply_FilterSortPaginateOrder(t *testing.T) {
	source := numberedView(30)
	query := Query{
		Search:     "row 1", // rows 10..19
		Sort:       SortState{Column: "id", Direction: Descending},
		Pagination: Pagination{Page: 2, PageSize: 4},
	}
	result := Apply(source, query)
	require.Equal(t, 10, result.TotalRows)
	require.Equal(t, 3, result.NumPages)
	require.Equal(t, []string{"15", "14", "13", "12"}, result.RowIDs())
}

func TestApply_SearchKeepsPageNumber(t *testing.T) {
	source := numberedView(25)
	query := Query{Pagination: Pagination{Page: 3, PageSize: 10}}.WithSearch("row 2")
	result := Apply(source, query)
	require.Equal(t, 3, result.Page(), "page is not reset by a new search")
	require.Equal(t, 6, result.TotalRows) // rows 20..25
	require.True(t, result.Empty())
	require.Equal(t, 1, result.NumPages)
}

func TestApply_NoMatch(t *testing.T) {
	result := Apply(numberedView(5), Query{Search: "nothing like this"})
	require.True(t, result.Empty())
	require.Equal(t, 0, result.TotalRows)
	require.Equal(t, 0, result.NumPages)
	require.False(t, result.HasNextPage())
	require.Empty(t, result.RowIDs())
}

func TestApply_PagesReproduceSortedFilteredRows(t *testing.T) {
	source := testView()
	for _, search := range []string{"", "e", "germany"} {
		for _, sort := range []SortState{{}, {Column: "price"}, {Column: "service", Direction: Descending}} {
			all := Apply(source, Query{Search: search, Sort: sort}).RowIDs()
			var paged []string
			query := Query{Search: search, Sort: sort, Pagination: Pagination{PageSize: 2}}
			for page := 1; page <= Apply(source, query).NumPages; page++ {
				paged = append(paged, Apply(source, query.WithPage(page)).RowIDs()...)
			}
			require.Equal(t, all, paged, fmt.Sprintf("search %q sort %v", search, sort))
		}
	}
}

func TestQuery_WithSortToggled(t *testing.T) {
	q := Query{Pagination: Pagination{Page: 2, PageSize: 10}}
	q = q.WithSortToggled("name")
	require.Equal(t, SortState{Column: "name"}, q.Sort)
	q = q.WithSortToggled("name")
	require.Equal(t, SortState{Column: "name", Direction: Descending}, q.Sort)
	require.Equal(t, 2, q.Page, "page is kept")
}

func TestRowsView_RowID(t *testing.T) {
	view := NewRowsView("", []Column{{Key: "name"}}, []Row{
		{"id": "a1", "name": "x"},
		{"name": "y"},
		{"id": nil, "name": "z"},
	})
	require.Equal(t, "a1", view.RowID(0))
	require.Equal(t, "#1", view.RowID(1))
	require.Equal(t, "#2", view.RowID(2))

	require.Equal(t, "", view.RowID(3))

	view.IDKey = "name"
	require.Equal(t, "x", view.RowID(0))
}

func TestRowsView_RowIDUnique(t *testing.T) {
	tests := []struct {
		name string
		rows []Row
		want []string
	}{
		{
			name: "explicit ID looks like index fallback",
			rows: []Row{{"id": "#1"}, {"name": "no id"}},
			want: []string{"#1", "#1.1"},
		},
		{
			name: "fallback taken before explicit ID",
			rows: []Row{{"name": "no id"}, {"id": "#0"}},
			want: []string{"#0", "#1"},
		},
		{
			name: "duplicate explicit IDs",
			rows: []Row{{"id": 7}, {"id": "7"}, {"id": 7}},
			want: []string{"7", "#1", "#2"},
		},
		{
			name: "duplicate of a renamed duplicate",
			rows: []Row{{"id": "#1"}, {"id": "#1"}, {"id": "x"}},
			want: []string{"#1", "#1.1", "x"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := NewRowsView("", []Column{{Key: "id"}}, tt.rows)
			ids := make([]string, view.NumRows())
			for row := range ids {
				ids[row] = view.RowID(row)
				require.Equal(t, row, view.RowIndex(ids[row]))
			}
			require.Equal(t, tt.want, ids)
		})
	}
}

func TestSelection_DuplicateIDsSelectOneRow(t *testing.T) {
	source := NewRowsView("", []Column{{Key: "id"}, {Key: "name"}}, []Row{
		{"id": "#1", "name": "explicit"},
		{"name": "fallback"},
		{"id": "#1", "name": "duplicate"},
	})
	result := Apply(source, Query{})
	ids := result.RowIDs()
	require.Len(t, ids, 3)

	s := NewSelection()
	s.Toggle(ids[1], true)
	require.True(t, s.Has(ids[1]))
	require.False(t, s.Has(ids[0]))
	require.False(t, s.Has(ids[2]))
	require.False(t, s.AllSelected(ids))
	require.Equal(t, -1, source.RowIndex("missing"))
}
