// Package datatable implements the data model and the
// filter, sort, paginate, and render stages of a client style
// data table over a collection of Row maps.
//
// The stages are implemented as zero-copy View decorators:
// a RowsView wraps the rows, FilterRows and SortRows compute
// a row index mapping, and a FilteredView applies that mapping
// together with the page window.
//
// Apply runs all stages for a Query:
//
//	source := datatable.NewRowsView("Activations", columns, rows)
//	result := datatable.Apply(source, datatable.Query{
//	    Search:     "telegram",
//	    Sort:       datatable.SortState{Column: "created"},
//	    Pagination: datatable.Pagination{Page: 1, PageSize: 10},
//	})
//
// Checked rows are tracked by a Selection keyed by the
// stable row IDs returned by Result.RowID.
package datatable
