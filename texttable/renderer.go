// Package texttable renders datatable results for terminals.
package texttable

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/verisms/datatable"
)

// TagColors maps the style names of datatable.Column.TagStyle
// to terminal colors used for tagged cells.
var TagColors = map[string]lipgloss.Color{
	"green":  lipgloss.Color("2"),
	"red":    lipgloss.Color("1"),
	"yellow": lipgloss.Color("3"),
	"blue":   lipgloss.Color("4"),
	"gray":   lipgloss.Color("8"),
}

// Renderer renders the visible page of a datatable.Result
// as a bordered terminal table followed by a status line.
//
// Renderer is immutable, With* methods return modified copies.
type Renderer struct {
	formatters   datatable.TypeFormatters
	emptyMessage string
	border       lipgloss.Border
	headerStyle  lipgloss.Style
}

func NewRenderer() *Renderer {
	return &Renderer{
		formatters:   datatable.DefaultTypeFormatters(),
		emptyMessage: "No data available",
		border:       lipgloss.NormalBorder(),
		headerStyle:  lipgloss.NewStyle().Bold(true).Padding(0, 1),
	}
}

// Render returns the page of result as string.
// Raw formatter results are printed as is.
func (r *Renderer) Render(ctx context.Context, result *datatable.Result) (string, error) {
	rows, err := datatable.FormatResultAsStrings(ctx, result, r.formatters, false)
	if err != nil {
		return "", err
	}

	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	tagStyles := make(map[[2]int]lipgloss.Style)
	for row := range rows {
		for col := range rows[row] {
			column := result.Column(col)
			if column == nil || column.Type != datatable.ColumnTypeTagged {
				continue
			}
			value := result.View.Cell(row, col)
			if datatable.IsNil(value) {
				continue
			}
			if color, ok := TagColors[column.TagClass(datatable.Deref(value))]; ok {
				tagStyles[[2]int{row, col}] = cellStyle.Foreground(color)
			}
		}
	}

	t := table.New().
		Border(r.border).
		Headers(result.View.Columns()...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.headerStyle
			}
			if style, ok := tagStyles[[2]int{row, col}]; ok {
				return style
			}
			return cellStyle
		})

	var b strings.Builder
	b.WriteString(t.String())
	b.WriteByte('\n')
	b.WriteString(r.statusLine(result))
	b.WriteByte('\n')
	return b.String(), nil
}

func (r *Renderer) statusLine(result *datatable.Result) string {
	if result.Empty() {
		if result.TotalRows > 0 {
			return fmt.Sprintf("Page %d is empty, %d rows on %d pages", result.Page(), result.TotalRows, result.NumPages)
		}
		return r.emptyMessage
	}
	if !result.Query.Enabled() {
		return fmt.Sprintf("%d rows", result.TotalRows)
	}
	return fmt.Sprintf("Page %d of %d, %d rows", result.Page(), result.NumPages, result.TotalRows)
}

func (r *Renderer) clone() *Renderer {
	c := new(Renderer)
	*c = *r
	return c
}

// WithEmptyMessage returns a renderer printing message
// instead of the status line if no rows match.
func (r *Renderer) WithEmptyMessage(message string) *Renderer {
	mod := r.clone()
	mod.emptyMessage = message
	return mod
}

// WithBorder returns a renderer using border for the table.
func (r *Renderer) WithBorder(border lipgloss.Border) *Renderer {
	mod := r.clone()
	mod.border = border
	return mod
}

// WithTypeFormatters returns a renderer using formatters.
func (r *Renderer) WithTypeFormatters(formatters datatable.TypeFormatters) *Renderer {
	mod := r.clone()
	mod.formatters = formatters
	return mod
}
