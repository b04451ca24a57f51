package htmltable

import "html/template"

var (
	HeaderTemplate = template.Must(template.New("header").Parse(
		"<table{{if .TableClass}} class='{{.TableClass}}'{{end}}>\n" +
			"{{if .Caption}}  <caption>{{.Caption}}</caption>\n{{end}}" +
			"  <thead><tr>" +
			"{{if .Selectable}}<th class='select'>{{template \"checkbox\" .SelectAll}}</th>{{end}}" +
			"{{range $h := .Headers}}" +
			"{{if $h.SortURL}}<th aria-sort='{{$h.AriaSort}}'><a href='{{$h.SortURL}}'>{{$h.Title}}</a>{{if $h.Indicator}} {{$h.Indicator}}{{end}}</th>" +
			"{{else}}<th>{{$h.Title}}</th>{{end}}" +
			"{{end}}</tr></thead>\n" +
			"  <tbody>\n" +
			checkboxTemplate,
	))

	RowTemplate = template.Must(template.New("row").Parse(
		"    <tr{{if .Checked}} class='selected'{{end}}>" +
			"{{if .Selectable}}<td class='select'>{{template \"checkbox\" .Checkbox}}</td>{{end}}" +
			"{{range $cell := .RawCells}}<td>{{$cell}}</td>{{end}}</tr>\n" +
			checkboxTemplate,
	))

	FooterTemplate = template.Must(template.New("footer").Parse(
		"{{if .Empty}}    <tr class='empty'><td colspan='{{.NumCols}}'>{{.EmptyMessage}}</td></tr>\n{{end}}" +
			"  </tbody>\n" +
			"</table>\n" +
			"{{with .Pager}}<nav class='pager'>" +
			"{{if .PrevURL}}<a rel='prev' href='{{.PrevURL}}'>Previous</a> {{end}}" +
			"<span>Page {{.Page}} of {{.NumPages}}</span>" +
			"{{if .NextURL}} <a rel='next' href='{{.NextURL}}'>Next</a>{{end}}" +
			"</nav>\n{{end}}",
	))
)

// checkboxTemplate renders a Checkbox as a form posting
// the inverted checked state, so selection works without scripts.
const checkboxTemplate = `{{define "checkbox"}}` +
	`<form method='post' action='{{.Action}}'>` +
	`<input type='hidden' name='{{.Name}}' value='{{.Value}}'>` +
	`<button type='submit' name='checked' value='{{not .Checked}}' role='checkbox' aria-checked='{{.Checked}}' aria-label='{{.Label}}'>` +
	`{{if .Checked}}&#9745;{{else}}&#9744;{{end}}</button></form>` +
	`{{end}}`

type TemplateContext struct {
	TableClass   string
	Caption      string
	Selectable   bool
	SelectAll    Checkbox
	Headers      []HeaderCell
	NumCols      int
	Empty        bool
	EmptyMessage string
	Pager        *Pager
}

// HeaderCell is a column title with an optional
// link that toggles the sort state for the column.
type HeaderCell struct {
	Title     string
	SortURL   string
	Indicator string
	AriaSort  string
}

// Checkbox posts Name=Value and checked=!Checked to Action.
type Checkbox struct {
	Action  string
	Name    string
	Value   string
	Label   string
	Checked bool
}

type Pager struct {
	Page     int
	NumPages int
	PrevURL  string
	NextURL  string
}

type RowTemplateContext struct {
	TemplateContext

	RowIndex int
	RowID    string
	Checked  bool
	Checkbox Checkbox
	RawCells []template.HTML
}
