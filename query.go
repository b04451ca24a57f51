package datatable

// Query holds the user controlled state of a table:
// the search term, the sort state, and the page window.
type Query struct {
	Search string
	Sort   SortState
	Pagination
}

// WithSearch returns a copy of the query with the passed search term.
// The page number is kept, so a shorter result
// can leave the query on an empty page.
func (q Query) WithSearch(search string) Query {
	q.Search = search
	return q
}

// WithSortToggled returns a copy of the query
// with the sort state toggled for column.
func (q Query) WithSortToggled(column string) Query {
	q.Sort = q.Sort.Toggle(column)
	return q
}

// WithPage returns a copy of the query showing page.
func (q Query) WithPage(page int) Query {
	q.Page = page
	return q
}

// Result is the visible page of a table after
// applying the filter, sort, and paginate stages of a Query.
type Result struct {
	// Source is the unfiltered table
	Source *RowsView
	// View shows the rows of the current page
	// with the same columns as Source
	View *FilteredView
	// Query that produced the result
	Query Query
	// TotalRows is the number of rows after filtering
	TotalRows int
	// NumPages is the number of pages of the filtered rows
	NumPages int
}

// Apply runs the filter, sort, and paginate stages
// in that order over source and returns the visible page.
//
// Sorting is only applied if the sort column
// exists in source and is sortable.
// Apply never fails, cells with missing or unusual
// values never match a search and sort by kind.
func Apply(source *RowsView, query Query) *Result {
	rows := FilterRows(source, query.Search)

	if query.Sort.Active() {
		col := source.ColumnIndex(query.Sort.Column)
		if column := source.Column(col); column != nil && column.Sortable {
			SortRows(source, rows, col, query.Sort.Direction)
		}
	}

	offset, limit := query.Window()
	return &Result{
		Source: source,
		View: &FilteredView{
			Source:     source,
			RowMapping: rows,
			RowOffset:  offset,
			RowLimit:   limit,
		},
		Query:     query,
		TotalRows: len(rows),
		NumPages:  query.NumPages(len(rows)),
	}
}

// NumRows returns the number of rows on the page.
func (r *Result) NumRows() int { return r.View.NumRows() }

// Empty returns true if the page shows no rows.
func (r *Result) Empty() bool { return r.View.NumRows() == 0 }

// Page returns the 1-based page number.
func (r *Result) Page() int { return r.Query.PageNumber() }

// HasPrevPage returns true if there is a page before the current one.
func (r *Result) HasPrevPage() bool {
	return r.Query.Enabled() && r.Page() > 1
}

// HasNextPage returns true if there is a page after the current one.
func (r *Result) HasNextPage() bool {
	return r.Query.Enabled() && r.Page() < r.NumPages
}

// Row returns the source Row shown at the page-relative index row.
func (r *Result) Row(row int) Row {
	return r.Source.Row(r.View.SourceRow(row))
}

// RowID returns the stable identity of the row
// shown at the page-relative index row.
func (r *Result) RowID(row int) string {
	src := r.View.SourceRow(row)
	if src < 0 {
		return ""
	}
	return r.Source.RowID(src)
}

// RowIDs returns the stable identities of all rows on the page.
func (r *Result) RowIDs() []string {
	ids := make([]string, r.View.NumRows())
	for row := range ids {
		ids[row] = r.RowID(row)
	}
	return ids
}

// Rows returns the source rows on the page.
func (r *Result) Rows() []Row {
	rows := make([]Row, r.View.NumRows())
	for row := range rows {
		rows[row] = r.Row(row)
	}
	return rows
}

// Column returns the descriptor of the column with index col.
func (r *Result) Column(col int) *Column {
	return r.Source.Column(col)
}
