package datatable

import "fmt"

// ColumnType selects the type based formatter of a column.
type ColumnType string

const (
	ColumnTypeText   ColumnType = "text"
	ColumnTypeDate   ColumnType = "date"
	ColumnTypeTagged ColumnType = "tagged"
)

// DefaultTagClass is used for tagged values
// that have no entry in Column.TagStyle.
const DefaultTagClass = "neutral"

// Column describes how one field of all rows
// is titled, sorted, and rendered.
type Column struct {
	// Key of the value in a Row
	Key string `yaml:"key"`
	// Title of the column, defaults to the spaced Key
	Title    string `yaml:"title"`
	Sortable bool   `yaml:"sortable"`
	// Type of the column, an empty Type is handled like ColumnTypeText
	Type ColumnType `yaml:"type"`
	// TagStyle maps tagged values to a style name.
	// The key "default" is used for values without an entry.
	TagStyle map[string]string `yaml:"tag_style"`
	// Render takes precedence over the formatter of the column Type.
	Render CellFormatter `yaml:"-"`
}

// DisplayTitle returns Title or if empty
// the Key with spaces inserted between words.
func (c *Column) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return SpacePascalCase(c.Key)
}

// TagClass returns the style name for a tagged value.
func (c *Column) TagClass(value any) string {
	if class, ok := c.TagStyle[fmt.Sprint(value)]; ok {
		return class
	}
	if class, ok := c.TagStyle["default"]; ok {
		return class
	}
	return DefaultTagClass
}

// Row is one record of a table, mapping column keys to values.
type Row map[string]any
