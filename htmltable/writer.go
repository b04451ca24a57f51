// Package htmltable provides functionality for writing
// datatable results as HTML tables.
//
// The Writer renders the visible page of a datatable.Result with:
//   - column titles linking to the toggled sort state
//   - selection checkboxes keyed by stable row IDs
//   - type based cell formatting with tagged pills
//   - automatic HTML escaping of non raw cell values
//   - an empty state message and a pager
//
// Example usage:
//
//	result := datatable.Apply(source, htmltable.ParseQuery(r.URL.Query(), 10))
//	err := htmltable.NewWriter().
//	    WithTableClass("data-table").
//	    WithBaseURL("/dashboard").
//	    WithSelectable("/dashboard/select").
//	    WriteResult(ctx, w, result, selection)
package htmltable

import (
	"context"
	"html/template"
	"io"

	"github.com/verisms/datatable"
)

// DefaultEmptyMessage is shown for pages without rows.
const DefaultEmptyMessage = "No data available"

// Writer writes datatable results as HTML table elements.
//
// Writer is immutable after creation - all With* methods return
// a new Writer instance with the modified configuration.
//
// HTML Escaping:
// All cell values are HTML-escaped unless a formatter
// returns them with the raw result set to true.
type Writer struct {
	tableClass     string
	emptyMessage   string
	baseURL        string
	selectAction   string
	formatters     datatable.TypeFormatters
	headerTemplate *template.Template
	rowTemplate    *template.Template
	footerTemplate *template.Template
}

// NewWriter creates a new HTML table writer
// with DefaultTypeFormatters, DefaultEmptyMessage,
// no selection checkboxes, and the default templates.
func NewWriter() *Writer {
	return &Writer{
		emptyMessage:   DefaultEmptyMessage,
		formatters:     DefaultTypeFormatters(),
		headerTemplate: HeaderTemplate,
		rowTemplate:    RowTemplate,
		footerTemplate: FooterTemplate,
	}
}

// WriteResult writes the visible page of result as HTML to dest.
// The selection may be nil if the writer is not selectable.
//
// Each cell is formatted with the column's Render formatter,
// then the writer's type formatter for the column type,
// falling back to the text form of the value.
func (w *Writer) WriteResult(ctx context.Context, dest io.Writer, result *datatable.Result, selection *datatable.Selection) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	var (
		columns   = result.View.Columns()
		numCols   = len(columns)
		pageIDs   = result.RowIDs()
		templData = &RowTemplateContext{
			TemplateContext: w.templateContext(result, selection, pageIDs),
			RawCells:        make([]template.HTML, numCols),
		}
	)

	err := w.headerTemplate.Execute(dest, templData.TemplateContext)
	if err != nil {
		return err
	}

	for row, numRows := 0, result.NumRows(); row < numRows; row++ {
		if err = ctx.Err(); err != nil {
			return err
		}
		for col := range numCols {
			str, isRaw := w.formatters.FormatCell(ctx, result.NewCell(row, col))
			if !isRaw {
				str = template.HTMLEscapeString(str)
			}
			templData.RawCells[col] = template.HTML(str) //#nosec G203
		}
		templData.RowIndex = row
		templData.RowID = pageIDs[row]
		templData.Checked = selection.Has(pageIDs[row])
		templData.Checkbox = Checkbox{
			Action:  w.selectURL(result.Query),
			Name:    "id",
			Value:   pageIDs[row],
			Label:   "Select row",
			Checked: templData.Checked,
		}

		err = w.rowTemplate.Execute(dest, templData)
		if err != nil {
			return err
		}
	}

	return w.footerTemplate.Execute(dest, templData.TemplateContext)
}

func (w *Writer) templateContext(result *datatable.Result, selection *datatable.Selection, pageIDs []string) TemplateContext {
	query := result.Query
	tc := TemplateContext{
		TableClass:   w.tableClass,
		Caption:      result.View.Title(),
		Selectable:   w.selectAction != "",
		Headers:      make([]HeaderCell, result.View.NumCols()),
		NumCols:      result.View.NumCols(),
		Empty:        result.Empty(),
		EmptyMessage: w.emptyMessage,
	}
	if tc.Selectable {
		tc.NumCols++
		tc.SelectAll = Checkbox{
			Action:  w.selectURL(query),
			Name:    "all",
			Value:   "page",
			Label:   "Select all rows of the page",
			Checked: selection.AllSelected(pageIDs),
		}
	}
	for col := range tc.Headers {
		column := result.Column(col)
		h := &tc.Headers[col]
		h.Title = column.DisplayTitle()
		if !column.Sortable {
			continue
		}
		h.SortURL = QueryURL(w.baseURL, query.WithSortToggled(column.Key))
		h.AriaSort = "none"
		if query.Sort.Column == column.Key {
			if query.Sort.Direction == datatable.Descending {
				h.Indicator, h.AriaSort = "▼", "descending"
			} else {
				h.Indicator, h.AriaSort = "▲", "ascending"
			}
		}
	}
	if query.Enabled() && result.NumPages > 0 {
		tc.Pager = &Pager{Page: result.Page(), NumPages: result.NumPages}
		if result.HasPrevPage() {
			tc.Pager.PrevURL = QueryURL(w.baseURL, query.WithPage(min(result.Page()-1, result.NumPages)))
		}
		if result.HasNextPage() {
			tc.Pager.NextURL = QueryURL(w.baseURL, query.WithPage(result.Page()+1))
		}
	}
	return tc
}

func (w *Writer) selectURL(q datatable.Query) string {
	return QueryURL(w.selectAction, q)
}

func (w *Writer) clone() *Writer {
	c := new(Writer)
	*c = *w
	return c
}

// WithTableClass returns a new writer with the specified CSS class for the table element.
// The class will be rendered as: <table class='tableClass'>
func (w *Writer) WithTableClass(tableClass string) *Writer {
	mod := w.clone()
	mod.tableClass = tableClass
	return mod
}

// WithEmptyMessage returns a new writer showing
// message in a single row for pages without rows.
func (w *Writer) WithEmptyMessage(message string) *Writer {
	mod := w.clone()
	mod.emptyMessage = message
	return mod
}

// WithBaseURL returns a new writer using baseURL
// for the sort and pager links.
func (w *Writer) WithBaseURL(baseURL string) *Writer {
	mod := w.clone()
	mod.baseURL = baseURL
	return mod
}

// WithSelectable returns a new writer rendering selection checkboxes
// that post to action. An empty action disables the checkboxes.
//
// A row checkbox posts the form values id and checked,
// the select-all checkbox posts all=page and checked.
// The current query parameters are appended to action.
func (w *Writer) WithSelectable(action string) *Writer {
	mod := w.clone()
	mod.selectAction = action
	return mod
}

// WithTypeFormatters returns a new writer with the specified type formatters.
// A nil value uses the text form of all cells unless a column has a Render formatter.
func (w *Writer) WithTypeFormatters(formatters datatable.TypeFormatters) *Writer {
	mod := w.clone()
	mod.formatters = formatters
	return mod
}

// WithTypeFormatter returns a new writer with a formatter registered for columnType.
func (w *Writer) WithTypeFormatter(columnType datatable.ColumnType, formatter datatable.CellFormatter) *Writer {
	mod := w.clone()
	mod.formatters = w.formatters.WithFormatter(columnType, formatter)
	return mod
}

// WithTemplates returns a new writer using the passed templates
// executed with TemplateContext for header and footer
// and RowTemplateContext for every row.
// Nil arguments keep the current template.
func (w *Writer) WithTemplates(header, row, footer *template.Template) *Writer {
	mod := w.clone()
	if header != nil {
		mod.headerTemplate = header
	}
	if row != nil {
		mod.rowTemplate = row
	}
	if footer != nil {
		mod.footerTemplate = footer
	}
	return mod
}
