package datatable

import "math"

// Pagination is the page window of a table.
// A PageSize <= 0 disables pagination.
type Pagination struct {
	// Page is the 1-based page number, values < 1 are handled as 1
	Page     int
	PageSize int
}

// Enabled returns true if PageSize is positive.
func (p Pagination) Enabled() bool {
	return p.PageSize > 0
}

// PageNumber returns Page or 1 if Page is less than 1.
func (p Pagination) PageNumber() int {
	return max(p.Page, 1)
}

// NumPages returns the number of pages for numRows rows
// which is ceil(numRows / PageSize), or 1 if pagination is disabled.
// Zero rows have zero pages.
func (p Pagination) NumPages(numRows int) int {
	if numRows <= 0 {
		return 0
	}
	if !p.Enabled() {
		return 1
	}
	return (numRows + p.PageSize - 1) / p.PageSize
}

// Window returns the offset and limit of the rows of the page.
// A limit of zero means no limit.
// Pages after the last one have an offset
// beyond the rows and result in an empty page.
func (p Pagination) Window() (offset, limit int) {
	if !p.Enabled() {
		return 0, 0
	}
	if p.PageNumber()-1 > math.MaxInt/p.PageSize {
		// offset would overflow int
		return math.MaxInt, p.PageSize
	}
	return (p.PageNumber() - 1) * p.PageSize, p.PageSize
}

// Paginate returns a view of the rows of the page.
func Paginate(view View, p Pagination) *FilteredView {
	offset, limit := p.Window()
	return &FilteredView{
		Source:    view,
		RowOffset: offset,
		RowLimit:  limit,
	}
}
