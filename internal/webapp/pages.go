package webapp

import (
	"html/template"

	"github.com/verisms/datatable/auth"
)

const layoutTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}} - VeriSMS</title>
</head>
<body>
  <header class="navbar">
    <a class="brand" href="/">VeriSMS</a>
    {{if .User}}<form method="post" action="/logout"><span class="user">{{.User.Email}}</span> <button type="submit">Log out</button></form>
    {{else}}<nav><a href="/login">Log in</a> <a class="button" href="/register">Sign up</a></nav>{{end}}
  </header>
  <main>
{{block "content" .}}{{end}}
  </main>
</body>
</html>
`

const heroTemplate = `{{define "content"}}
    <section class="hero">
      <h1>Receive SMS verification codes online</h1>
      <p>Virtual phone numbers from many countries for account verification with all major services.</p>
      {{if .User}}<a class="button" href="/dashboard">Go to dashboard</a>
      {{else}}<a class="button" href="/register">Get started</a> <a href="/login">I already have an account</a>{{end}}
    </section>
{{end}}`

const loginTemplate = `{{define "content"}}
    <section class="auth-form">
      <h1>Log in</h1>
      {{if .Error}}<p class="form-error" role="alert">{{.Error}}</p>{{end}}
      <form method="post" action="/login" novalidate>
        <label>Email <input type="email" name="email" value="{{.Form.email}}" autocomplete="email"></label>
        {{with .Fields.email}}<p class="field-error">{{.}}</p>{{end}}
        <label>Password <input type="password" name="password" autocomplete="current-password"></label>
        {{with .Fields.password}}<p class="field-error">{{.}}</p>{{end}}
        <button type="submit">Log in</button>
      </form>
      {{if .DemoMode}}<p class="demo-hint">Demo login: {{.DemoEmail}} / {{.DemoPassword}}</p>{{end}}
      <p>No account yet? <a href="/register">Sign up</a></p>
    </section>
{{end}}`

const registerTemplate = `{{define "content"}}
    <section class="auth-form">
      <h1>Create an account</h1>
      {{if .Error}}<p class="form-error" role="alert">{{.Error}}</p>{{end}}
      <form method="post" action="/register" novalidate>
        <label>Name <input type="text" name="name" value="{{.Form.name}}" autocomplete="name"></label>
        {{with .Fields.name}}<p class="field-error">{{.}}</p>{{end}}
        <label>Email <input type="email" name="email" value="{{.Form.email}}" autocomplete="email"></label>
        {{with .Fields.email}}<p class="field-error">{{.}}</p>{{end}}
        <label>Password <input type="password" name="password" autocomplete="new-password"></label>
        {{with .Fields.password}}<p class="field-error">{{.}}</p>{{end}}
        <label>Confirm password <input type="password" name="confirm_password" autocomplete="new-password"></label>
        {{with .Fields.confirm_password}}<p class="field-error">{{.}}</p>{{end}}
        <button type="submit">Sign up</button>
      </form>
      <p>Already registered? <a href="/login">Log in</a></p>
    </section>
{{end}}`

const dashboardTemplate = `{{define "content"}}
    <section class="dashboard">
      <h1>Dashboard</h1>
      <form class="search" method="get" action="/dashboard">
        <input type="search" name="q" value="{{.Search}}" placeholder="Search activations">
        {{with .SortColumn}}<input type="hidden" name="sort" value="{{.}}">{{end}}
        {{with .SortDir}}<input type="hidden" name="dir" value="{{.}}">{{end}}
        {{if gt .Page 1}}<input type="hidden" name="page" value="{{.Page}}">{{end}}
        <button type="submit">Search</button>
      </form>
      <p class="summary">{{.TotalRows}} activations, {{.Selected}} selected <a href="{{.ExportURL}}">Export CSV</a>
      {{if .Selected}}<form method="post" action="{{.ClearURL}}"><input type="hidden" name="clear" value="all"><button type="submit">Clear selection</button></form>{{end}}</p>
{{.Table}}
    </section>
{{end}}`

var (
	layoutPage = template.Must(template.New("layout").Parse(layoutTemplate))

	heroPage      = mustPage(heroTemplate)
	loginPage     = mustPage(loginTemplate)
	registerPage  = mustPage(registerTemplate)
	dashboardPage = mustPage(dashboardTemplate)
)

func mustPage(content string) *template.Template {
	return template.Must(template.Must(layoutPage.Clone()).Parse(content))
}

// pageData is the context of all page templates.
type pageData struct {
	Title string
	User  *auth.User

	// Forms
	Error        string
	Fields       auth.FieldErrors
	Form         map[string]string
	DemoMode     bool
	DemoEmail    string
	DemoPassword string

	// Dashboard
	Search     string
	SortColumn string
	SortDir    string
	// Page of the dashboard table, kept by new searches
	Page      int
	TotalRows int
	Selected  int
	ClearURL  string
	ExportURL string
	Table     template.HTML
}
