package datatable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelection_Toggle(t *testing.T) {
	var changes [][]string
	s := NewSelection()
	s.OnChange = func(ids []string) { changes = append(changes, ids) }

	s.Toggle("b", true)
	s.Toggle("a", true)
	s.Toggle("a", true) // no change
	s.Toggle("b", false)

	require.Equal(t, []string{"a"}, s.IDs())
	require.Equal(t, [][]string{{"b"}, {"a", "b"}, {"a"}}, changes)
	require.True(t, s.Has("a"))
	require.False(t, s.Has("b"))
}

func TestSelection_ToggleAllOnlyVisible(t *testing.T) {
	s := NewSelection("other-page")
	page := []string{"1", "2", "3"}

	s.ToggleAll(page, true)
	require.True(t, s.AllSelected(page))
	require.Equal(t, []string{"1", "2", "3", "other-page"}, s.IDs())

	s.ToggleAll(page, false)
	require.False(t, s.AllSelected(page))
	require.Equal(t, []string{"other-page"}, s.IDs(), "rows outside the page are untouched")
}

func TestSelection_AllSelected(t *testing.T) {
	s := NewSelection("1", "2")
	require.True(t, s.AllSelected([]string{"1", "2"}))
	require.False(t, s.AllSelected([]string{"1", "2", "3"}))
	require.False(t, s.AllSelected(nil), "empty page is never all selected")
}

func TestSelection_SurvivesPageNavigation(t *testing.T) {
	source := numberedView(25)
	query := Query{Pagination: Pagination{Page: 1, PageSize: 10}}
	s := NewSelection()

	s.ToggleAll(Apply(source, query).RowIDs(), true)
	require.Equal(t, 10, s.Len())

	page2 := Apply(source, query.WithPage(2))
	require.False(t, s.AllSelected(page2.RowIDs()), "other page rows are not selected")

	page1 := Apply(source, query.WithPage(1))
	require.True(t, s.AllSelected(page1.RowIDs()), "selection is kept after navigating back")
}

func TestSelection_Clear(t *testing.T) {
	calls := 0
	s := NewSelection("x")
	s.OnChange = func([]string) { calls++ }
	s.Clear()
	s.Clear()
	require.Equal(t, 0, s.Len())
	require.Equal(t, 1, calls)
}

func TestSelection_ZeroValue(t *testing.T) {
	var s Selection
	s.Toggle("id", true)
	require.Equal(t, []string{"id"}, s.IDs())
}
