package htmltable

import (
	"net/url"
	"strconv"

	"github.com/verisms/datatable"
)

// URL query parameter names of a datatable.Query
const (
	ParamSearch = "q"
	ParamSort   = "sort"
	ParamDir    = "dir"
	ParamPage   = "page"
)

// QueryValues returns the URL query parameters for q.
// Default values are omitted.
func QueryValues(q datatable.Query) url.Values {
	vals := make(url.Values)
	if q.Search != "" {
		vals.Set(ParamSearch, q.Search)
	}
	if q.Sort.Active() {
		vals.Set(ParamSort, q.Sort.Column)
		vals.Set(ParamDir, q.Sort.Direction.String())
	}
	if q.Page > 1 {
		vals.Set(ParamPage, strconv.Itoa(q.Page))
	}
	return vals
}

// QueryURL returns base with the query parameters of q appended.
func QueryURL(base string, q datatable.Query) string {
	vals := QueryValues(q)
	if len(vals) == 0 {
		return base
	}
	return base + "?" + vals.Encode()
}

// ParseQuery returns the datatable.Query of URL query parameters
// using pageSize for the pagination.
// Invalid page numbers are handled as page 1.
func ParseQuery(vals url.Values, pageSize int) datatable.Query {
	page, err := strconv.Atoi(vals.Get(ParamPage))
	if err != nil || page < 1 {
		page = 1
	}
	q := datatable.Query{
		Search:     vals.Get(ParamSearch),
		Pagination: datatable.Pagination{Page: page, PageSize: pageSize},
	}
	if col := vals.Get(ParamSort); col != "" {
		q.Sort = datatable.SortState{
			Column:    col,
			Direction: datatable.ParseSortDirection(vals.Get(ParamDir)),
		}
	}
	return q
}
