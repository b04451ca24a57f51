package datatable

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"
)

// SortDirection is the order of a sorted column.
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

func (d SortDirection) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// ParseSortDirection returns Descending for "desc"
// (case-insensitive) and Ascending for everything else.
func ParseSortDirection(str string) SortDirection {
	if strings.EqualFold(str, "desc") {
		return Descending
	}
	return Ascending
}

// SortState is the single active sort column of a table
// identified by its key, or no sorting if Column is empty.
type SortState struct {
	Column    string
	Direction SortDirection
}

// Active returns true if a sort column is selected.
func (s SortState) Active() bool {
	return s.Column != ""
}

// Toggle returns the sort state after selecting column:
// selecting the active column flips the direction,
// any other column starts ascending.
func (s SortState) Toggle(column string) SortState {
	if s.Column == column {
		if s.Direction == Ascending {
			return SortState{Column: column, Direction: Descending}
		}
		return SortState{Column: column, Direction: Ascending}
	}
	return SortState{Column: column, Direction: Ascending}
}

// SortRows sorts the row indices into view by the values of column col.
// The sort is stable, equal values keep their order within rows.
func SortRows(view View, rows []int, col int, dir SortDirection) {
	slices.SortStableFunc(rows, func(a, b int) int {
		c := Compare(view.Cell(a, col), view.Cell(b, col))
		if dir == Descending {
			return -c
		}
		return c
	})
}

// rank orders values of different kinds:
// nil < bool < number < string < time < other
type rank int

const (
	rankNil rank = iota
	rankBool
	rankNumber
	rankString
	rankTime
	rankOther
)

func rankOf(val reflect.Value) rank {
	if ValueIsNil(val) {
		return rankNil
	}
	if _, ok := val.Interface().(time.Time); ok {
		return rankTime
	}
	switch val.Kind() {
	case reflect.Bool:
		return rankBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return rankNumber
	case reflect.String:
		return rankString
	}
	return rankOther
}

// Compare returns the natural order of two cell values
// as -1, 0, or +1.
//
// Numbers of all Go numeric kinds compare numerically,
// strings lexicographically, time.Time chronologically,
// and false is less than true.
// Values of different kinds are ordered by kind:
// nil < bool < number < string < time.Time < other,
// other values compare by their fmt.Sprint text.
// Pointers are dereferenced before comparing.
func Compare(a, b any) int {
	va := reflect.ValueOf(Deref(a))
	vb := reflect.ValueOf(Deref(b))
	ra, rb := rankOf(va), rankOf(vb)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch ra {
	case rankNil:
		return 0
	case rankBool:
		switch {
		case va.Bool() == vb.Bool():
			return 0
		case vb.Bool():
			return -1
		default:
			return 1
		}
	case rankNumber:
		return compareNumbers(va, vb)
	case rankString:
		return cmp.Compare(va.String(), vb.String())
	case rankTime:
		return va.Interface().(time.Time).Compare(vb.Interface().(time.Time))
	}
	return cmp.Compare(fmt.Sprint(va.Interface()), fmt.Sprint(vb.Interface()))
}

func compareNumbers(a, b reflect.Value) int {
	switch {
	case a.CanInt() && b.CanInt():
		return cmp.Compare(a.Int(), b.Int())
	case a.CanUint() && b.CanUint():
		return cmp.Compare(a.Uint(), b.Uint())
	case a.CanInt() && b.CanUint():
		if a.Int() < 0 {
			return -1
		}
		return cmp.Compare(uint64(a.Int()), b.Uint())
	case a.CanUint() && b.CanInt():
		if b.Int() < 0 {
			return 1
		}
		return cmp.Compare(a.Uint(), uint64(b.Int()))
	}
	return cmp.Compare(toFloat(a), toFloat(b))
}

func toFloat(v reflect.Value) float64 {
	switch {
	case v.CanInt():
		return float64(v.Int())
	case v.CanUint():
		return float64(v.Uint())
	case v.CanFloat():
		return v.Float()
	}
	return 0
}
