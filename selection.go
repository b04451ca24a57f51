package datatable

import (
	"maps"
	"slices"
)

// Selection is the set of checked rows of a table
// keyed by stable row IDs (see RowsView.RowID),
// so it survives paging, sorting, and filtering.
//
// A Selection is not safe for concurrent use.
type Selection struct {
	ids map[string]struct{}

	// OnChange is called with the sorted selected IDs
	// after every call that modified the selection.
	OnChange func(ids []string)
}

// NewSelection returns a Selection containing ids.
func NewSelection(ids ...string) *Selection {
	s := &Selection{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Len returns the number of selected rows.
func (s *Selection) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// Has returns true if the row with id is selected.
func (s *Selection) Has(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s.ids[id]
	return ok
}

// IDs returns the sorted selected IDs.
func (s *Selection) IDs() []string {
	if s == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(s.ids))
}

// Toggle selects the row with id if checked
// or removes it from the selection otherwise.
func (s *Selection) Toggle(id string, checked bool) {
	if s.set(id, checked) {
		s.changed()
	}
}

// ToggleAll selects all visibleIDs if checked
// or removes them from the selection otherwise.
// Selected rows not in visibleIDs are not changed.
func (s *Selection) ToggleAll(visibleIDs []string, checked bool) {
	modified := false
	for _, id := range visibleIDs {
		if s.set(id, checked) {
			modified = true
		}
	}
	if modified {
		s.changed()
	}
}

// AllSelected returns true if visibleIDs is not empty
// and all of its IDs are selected.
func (s *Selection) AllSelected(visibleIDs []string) bool {
	if len(visibleIDs) == 0 {
		return false
	}
	for _, id := range visibleIDs {
		if !s.Has(id) {
			return false
		}
	}
	return true
}

// Clear removes all rows from the selection.
func (s *Selection) Clear() {
	if len(s.ids) == 0 {
		return
	}
	clear(s.ids)
	s.changed()
}

func (s *Selection) set(id string, checked bool) (modified bool) {
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
	_, has := s.ids[id]
	switch {
	case checked && !has:
		s.ids[id] = struct{}{}
		return true
	case !checked && has:
		delete(s.ids, id)
		return true
	}
	return false
}

func (s *Selection) changed() {
	if s.OnChange != nil {
		s.OnChange(s.IDs())
	}
}
