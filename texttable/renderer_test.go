package texttable

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/verisms/datatable"
)

func numbers(n int) *datatable.RowsView {
	rows := make([]datatable.Row, n)
	for i := range rows {
		rows[i] = datatable.Row{"id": i + 1, "number": fmt.Sprintf("+1 555 01%02d", i), "status": "received"}
	}
	return datatable.NewRowsView("", []datatable.Column{
		{Key: "number", Title: "Number"},
		{Key: "status", Title: "Status", Type: datatable.ColumnTypeTagged, TagStyle: map[string]string{"received": "green"}},
	}, rows)
}

func TestRenderer_Render(t *testing.T) {
	result := datatable.Apply(numbers(25), datatable.Query{Pagination: datatable.Pagination{Page: 3, PageSize: 10}})
	out, err := NewRenderer().Render(context.Background(), result)
	require.NoError(t, err)
	require.Contains(t, out, "Number")
	require.Contains(t, out, "Status")
	require.Contains(t, out, "+1 555 0120")
	require.Contains(t, out, "+1 555 0124")
	require.NotContains(t, out, "+1 555 0119")
	require.Contains(t, out, "Page 3 of 3, 25 rows")
}

func TestRenderer_Empty(t *testing.T) {
	out, err := NewRenderer().
		WithEmptyMessage("No numbers found").
		Render(context.Background(), datatable.Apply(numbers(3), datatable.Query{Search: "nope"}))
	require.NoError(t, err)
	require.Contains(t, out, "No numbers found")

	out, err = NewRenderer().Render(context.Background(), datatable.Apply(numbers(3), datatable.Query{
		Pagination: datatable.Pagination{Page: 5, PageSize: 2},
	}))
	require.NoError(t, err)
	require.Contains(t, out, "Page 5 is empty, 3 rows on 2 pages")
}

func TestRenderer_Unpaginated(t *testing.T) {
	out, err := NewRenderer().Render(context.Background(), datatable.Apply(numbers(3), datatable.Query{}))
	require.NoError(t, err)
	require.Contains(t, out, "3 rows")
}

func TestRenderer_TagColors(t *testing.T) {
	profile := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.ANSI)
	t.Cleanup(func() { lipgloss.SetColorProfile(profile) })

	view := datatable.NewRowsView("", []datatable.Column{
		{Key: "number", Title: "Number"},
		{Key: "status", Title: "Status", Type: datatable.ColumnTypeTagged, TagStyle: map[string]string{
			"received": "green",
			"failed":   "red",
		}},
	}, []datatable.Row{
		{"number": "+1 555 0100", "status": "received"},
		{"number": "+1 555 0101", "status": "expired"},
		{"number": "+1 555 0102", "status": "failed"},
	})
	out, err := NewRenderer().Render(context.Background(), datatable.Apply(view, datatable.Query{}))
	require.NoError(t, err)

	lines := make(map[string]string)
	for line := range strings.SplitSeq(out, "\n") {
		for _, number := range []string{"0100", "0101", "0102"} {
			if strings.Contains(line, number) {
				lines[number] = line
			}
		}
	}
	require.Contains(t, lines["0100"], "\x1b[32m", "green foreground")
	require.Contains(t, lines["0102"], "\x1b[31m", "red foreground")
	require.NotContains(t, lines["0101"], "\x1b[", "no color for an unstyled tag")
	require.NotContains(t, out[:strings.Index(out, "+1 555 0100")], "\x1b[3", "header and number cells are not colored")
}
