// Package webapp implements the server rendered web frontend:
// landing page, login and registration forms,
// and the dashboard with the activations table.
package webapp

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/verisms/datatable"
	"github.com/verisms/datatable/auth"
	"github.com/verisms/datatable/csvtable"
	"github.com/verisms/datatable/htmltable"
)

// Server is the HTTP handler of the web frontend.
type Server struct {
	config    *Config
	table     *datatable.RowsView
	logger    *slog.Logger
	users     *UserStore
	sessions  *sessionRegistry
	writer    *htmltable.Writer
	csvWriter *csvtable.Writer
	router    *mux.Router

	// HTTPClient is used for calls to the authentication API,
	// nil uses the default of auth.NewClient.
	HTTPClient *http.Client
}

// NewServer returns a Server showing table on the dashboard.
// The config must be validated.
func NewServer(config *Config, table *datatable.RowsView, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		config:   config,
		table:    table,
		logger:   logger,
		users:    NewUserStore(),
		sessions: newSessionRegistry(newCookieStore(config.sessionKey()), logger),
		writer: htmltable.NewWriter().
			WithTableClass("data-table").
			WithEmptyMessage("No activations found").
			WithBaseURL("/dashboard").
			WithSelectable("/dashboard/select"),
		csvWriter: csvtable.NewWriter(),
	}
	if config.DemoMode {
		logger.Warn("Demo login enabled, never use this in production", slog.String("email", auth.DemoEmail))
	}

	r := mux.NewRouter()
	r.Use(requestLogger(logger))
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/", s.handleHome).Methods(http.MethodGet)
	r.HandleFunc("/login", s.handleLoginPage).Methods(http.MethodGet)
	r.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/register", s.handleRegisterPage).Methods(http.MethodGet)
	r.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost)
	r.Handle("/dashboard", s.requireSession(http.HandlerFunc(s.handleDashboard))).Methods(http.MethodGet)
	r.Handle("/dashboard/export.csv", s.requireSession(http.HandlerFunc(s.handleExport))).Methods(http.MethodGet)
	r.Handle("/dashboard/select", s.requireSession(http.HandlerFunc(s.handleSelect))).Methods(http.MethodPost)
	if config.MockAuthAPI {
		api := &AuthAPI{Users: s.users, Logger: logger}
		api.Register(r.PathPrefix("/api").Subrouter())
	}
	s.router = r

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves HTTP on config.Listen
// until ctx is canceled and then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.config.Listen,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errs := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", slog.String("addr", s.config.Listen))
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("Shutting down")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) authClient() *auth.Client {
	client := auth.NewClient(s.config.AuthBaseURL, new(auth.MemoryTokenStore))
	client.DemoMode = s.config.DemoMode
	client.Logger = s.logger
	if s.HTTPClient != nil {
		client.HTTPClient = s.HTTPClient
	}
	return client
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("OK\n")) //nolint:errcheck
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, heroPage, &pageData{
		Title: "SMS verification",
		User:  s.currentUser(r),
	})
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if s.sessions.fromRequest(r) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	s.render(w, http.StatusOK, loginPage, s.loginData(nil))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	form := auth.LoginForm{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	session, err := s.authClient().Login(r.Context(), form)
	if err != nil {
		data := s.loginData(map[string]string{"email": form.Email})
		s.renderFormError(w, http.StatusUnauthorized, loginPage, data, err)
		return
	}
	s.startSession(w, r, session)
}

func (s *Server) loginData(form map[string]string) *pageData {
	data := &pageData{Title: "Log in", Form: form, DemoMode: s.config.DemoMode}
	if data.DemoMode {
		data.DemoEmail = auth.DemoEmail
		data.DemoPassword = auth.DemoPassword
	}
	return data
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, registerPage, &pageData{Title: "Sign up", User: s.currentUser(r)})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	form := auth.RegisterForm{
		Name:            r.PostFormValue("name"),
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}
	session, err := s.authClient().Register(r.Context(), form)
	if err != nil {
		data := &pageData{
			Title: "Sign up",
			Form:  map[string]string{"name": form.Name, "email": form.Email},
		}
		s.renderFormError(w, http.StatusBadRequest, registerPage, data, err)
		return
	}
	s.startSession(w, r, session)
}

// startSession registers the session and redirects to the dashboard.
func (s *Server) startSession(w http.ResponseWriter, r *http.Request, session *auth.Session) {
	if err := s.sessions.start(w, r, session); err != nil {
		s.internalError(w, "Saving session cookie failed", err)
		return
	}
	if session.User != nil {
		s.logger.Info("Session started", slog.String("user", session.User.Email))
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.end(w, r); err != nil {
		s.logger.Warn("Expiring session cookie failed", slog.Any("err", err))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	var (
		ctx    = r.Context()
		us     = sessionFromContext(ctx)
		query  = htmltable.ParseQuery(r.URL.Query(), s.config.PageSize)
		result = datatable.Apply(s.table, query)
		table  bytes.Buffer
	)

	us.mtx.Lock()
	err := s.writer.WriteResult(ctx, &table, result, us.selection)
	selected := us.selection.Len()
	us.mtx.Unlock()
	if err != nil {
		s.internalError(w, "Rendering table failed", err)
		return
	}

	data := &pageData{
		Title:     "Dashboard",
		User:      us.session.User,
		Search:    query.Search,
		Page:      query.PageNumber(),
		TotalRows: result.TotalRows,
		Selected:  selected,
		ClearURL:  htmltable.QueryURL("/dashboard/select", query),
		ExportURL: htmltable.QueryURL("/dashboard/export.csv", query.WithPage(1)),
		Table:     template.HTML(table.String()), //#nosec G203
	}
	if query.Sort.Active() {
		data.SortColumn = query.Sort.Column
		data.SortDir = query.Sort.Direction.String()
	}
	s.render(w, http.StatusOK, dashboardPage, data)
}

// handleExport writes all rows matching the search
// in the sort order of the query as CSV file.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	query := htmltable.ParseQuery(r.URL.Query(), 0)
	result := datatable.Apply(s.table, query)

	var buf bytes.Buffer
	err := s.csvWriter.WriteResult(r.Context(), &buf, result, true)
	if err != nil {
		s.internalError(w, "Writing CSV failed", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="activations.csv"`)
	buf.WriteTo(w) //nolint:errcheck
}

// handleSelect changes the selection and redirects back
// to the dashboard with the same query.
//
// Form values:
//
//	id=<row ID>&checked=<bool>   toggles one row
//	all=page&checked=<bool>      toggles all rows of the query's page
//	clear=all                    clears the selection
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var (
		us           = sessionFromContext(r.Context())
		query        = htmltable.ParseQuery(r.URL.Query(), s.config.PageSize)
		checked      = r.PostFormValue("checked")
		isChecked, _ = strconv.ParseBool(checked)
	)

	switch {
	case r.PostFormValue("clear") != "":
		us.mtx.Lock()
		us.selection.Clear()
		us.mtx.Unlock()

	case r.PostFormValue("all") != "":
		pageIDs := datatable.Apply(s.table, query).RowIDs()
		us.mtx.Lock()
		us.selection.ToggleAll(pageIDs, isChecked)
		us.mtx.Unlock()

	case r.PostFormValue("id") != "":
		id := r.PostFormValue("id")
		if !s.hasRow(id) {
			http.Error(w, "unknown row "+strconv.Quote(id), http.StatusBadRequest)
			return
		}
		us.mtx.Lock()
		us.selection.Toggle(id, isChecked)
		us.mtx.Unlock()

	default:
		http.Error(w, "missing id, all, or clear", http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, htmltable.QueryURL("/dashboard", query), http.StatusSeeOther)
}

func (s *Server) hasRow(id string) bool {
	return s.table.RowIndex(id) >= 0
}

func (s *Server) currentUser(r *http.Request) *auth.User {
	if us := s.sessions.fromRequest(r); us != nil {
		return us.session.User
	}
	return nil
}

func (s *Server) renderFormError(w http.ResponseWriter, status int, page *template.Template, data *pageData, err error) {
	var formErr *auth.FormError
	if !errors.As(err, &formErr) {
		s.internalError(w, "Form submission failed", err)
		return
	}
	data.Error = formErr.Message
	data.Fields = formErr.Fields
	if formErr.Fields != nil {
		status = http.StatusUnprocessableEntity
	}
	s.render(w, status, page, data)
}

func (s *Server) render(w http.ResponseWriter, status int, page *template.Template, data *pageData) {
	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		s.internalError(w, "Rendering page failed", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w) //nolint:errcheck
}

func (s *Server) internalError(w http.ResponseWriter, msg string, err error) {
	s.logger.Error(msg, slog.Any("err", err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
