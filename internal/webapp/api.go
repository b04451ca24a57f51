package webapp

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/verisms/datatable/auth"
)

// AuthAPI is a mock of the REST authentication API
// with the same request and response bodies.
type AuthAPI struct {
	Users  *UserStore
	Logger *slog.Logger
}

// Register adds the API endpoints to router:
//
//	POST /auth/login
//	POST /auth/register
//	GET  /auth/me
func (api *AuthAPI) Register(router *mux.Router) {
	router.HandleFunc("/auth/login", api.handleLogin).Methods(http.MethodPost)
	router.HandleFunc("/auth/register", api.handleRegister).Methods(http.MethodPost)
	router.HandleFunc("/auth/me", api.handleMe).Methods(http.MethodGet)
}

func (api *AuthAPI) handleLogin(w http.ResponseWriter, r *http.Request) {
	var form auth.LoginForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if fields := form.Validate(); fields != nil {
		writeJSONError(w, http.StatusUnprocessableEntity, firstFieldError(fields))
		return
	}
	session, err := api.Users.Authenticate(form.Email, form.Password)
	if err != nil {
		api.Logger.Info("API login rejected", slog.String("email", form.Email))
		writeJSONError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (api *AuthAPI) handleRegister(w http.ResponseWriter, r *http.Request) {
	var form auth.RegisterForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	// The confirmation is checked by the form, not sent to the API
	form.ConfirmPassword = form.Password
	if fields := form.Validate(); fields != nil {
		writeJSONError(w, http.StatusUnprocessableEntity, firstFieldError(fields))
		return
	}
	session, err := api.Users.Register(form.Name, form.Email, form.Password)
	switch {
	case errors.Is(err, ErrEmailTaken):
		writeJSONError(w, http.StatusConflict, "Email already registered")
		return
	case err != nil:
		api.Logger.Error("API registration failed", slog.Any("err", err))
		writeJSONError(w, http.StatusInternalServerError, "Registration failed")
		return
	}
	api.Logger.Info("API user registered", slog.String("id", session.User.ID))
	writeJSON(w, http.StatusCreated, session)
}

func (api *AuthAPI) handleMe(w http.ResponseWriter, r *http.Request) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "Missing bearer token")
		return
	}
	user, ok := api.Users.UserForToken(token)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// firstFieldError returns a deterministic message of fields.
func firstFieldError(fields auth.FieldErrors) string {
	for _, name := range []string{"name", "email", "password"} {
		if msg, ok := fields[name]; ok {
			return msg
		}
	}
	return auth.InvalidFormMessage
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeJSONError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
