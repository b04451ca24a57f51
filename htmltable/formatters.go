package htmltable

import (
	"context"
	"errors"
	"fmt"
	"html/template"

	"github.com/verisms/datatable"
)

var (
	HTMLPreCellFormatter datatable.CellFormatterFunc = func(ctx context.Context, cell *datatable.Cell) (str string, raw bool, err error) {
		value := template.HTMLEscapeString(datatable.FormatValue(cell.Value))
		return "<pre>" + value + "</pre>", true, nil
	}

	HTMLCodeCellFormatter datatable.CellFormatterFunc = func(ctx context.Context, cell *datatable.Cell) (str string, raw bool, err error) {
		value := template.HTMLEscapeString(datatable.FormatValue(cell.Value))
		return "<code>" + value + "</code>", true, nil
	}

	// TagPillCellFormatter wraps the cell value in a labeled pill
	// span with the class "tag tag-<style>" where style is
	// looked up from the TagStyle of the cell's column.
	// Nil values are not supported.
	TagPillCellFormatter datatable.CellFormatterFunc = func(ctx context.Context, cell *datatable.Cell) (str string, raw bool, err error) {
		if datatable.IsNil(cell.Value) {
			return "", false, errors.ErrUnsupported
		}
		class := datatable.DefaultTagClass
		if cell.Column != nil {
			class = cell.Column.TagClass(datatable.Deref(cell.Value))
		}
		text := template.HTMLEscapeString(datatable.FormatValue(cell.Value))
		return fmt.Sprintf("<span class='tag tag-%s' title='%s'>%s</span>", template.HTMLEscapeString(class), text, text), true, nil
	}

	_ datatable.CellFormatter = HTMLSpanClassCellFormatter("")
)

// HTMLSpanClassCellFormatter formats the cell value within an HTML span element
// with the class of the underlying string value.
type HTMLSpanClassCellFormatter string

func (class HTMLSpanClassCellFormatter) FormatCell(ctx context.Context, cell *datatable.Cell) (str string, raw bool, err error) {
	text := template.HTMLEscapeString(datatable.FormatValue(cell.Value))
	return fmt.Sprintf("<span class='%s'>%s</span>", template.HTMLEscapeString(string(class)), text), true, nil
}

// DefaultTypeFormatters returns datatable.DefaultTypeFormatters
// with tagged columns rendered by TagPillCellFormatter.
func DefaultTypeFormatters() datatable.TypeFormatters {
	return datatable.DefaultTypeFormatters().WithFormatter(datatable.ColumnTypeTagged, TagPillCellFormatter)
}
