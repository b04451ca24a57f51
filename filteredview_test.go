package datatable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilteredView(t *testing.T) {
	source := numberedView(6)

	view := &FilteredView{
		Source:        source,
		RowMapping:    []int{5, 3, 1},
		RowOffset:     1,
		RowLimit:      5,
		ColumnMapping: []int{1},
	}
	require.Equal(t, []string{"name"}, view.Columns())
	require.Equal(t, 1, view.NumCols())
	require.Equal(t, 2, view.NumRows())
	require.Equal(t, "row 04", view.Cell(0, 0))
	require.Equal(t, "row 02", view.Cell(1, 0))
	require.Nil(t, view.Cell(2, 0))
	require.Nil(t, view.Cell(0, 1))
	require.Equal(t, 3, view.SourceRow(0))
	require.Equal(t, -1, view.SourceRow(-1))
	require.Equal(t, 1, view.SourceCol(0))
	require.Equal(t, -1, view.SourceCol(1))
}

func TestFilteredView_OffsetBeyondRows(t *testing.T) {
	view := &FilteredView{Source: numberedView(3), RowOffset: 10}
	require.Equal(t, 0, view.NumRows())
	require.Nil(t, view.Cell(0, 0))
}
