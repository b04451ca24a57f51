package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func TestClient_Login(t *testing.T) {
	server, calls := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		// handlers run on server goroutines where require can't stop the test
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		var form LoginForm
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&form)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if form.Password != "correct" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"Invalid email or password"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"abc","user":{"id":"1","email":"` + form.Email + `"}}`))
	})

	store := new(MemoryTokenStore)
	client := NewClient(server.URL+"/", store)

	session, err := client.Login(context.Background(), LoginForm{Email: "user@example.com", Password: "correct"})
	require.NoError(t, err)
	require.Equal(t, "abc", session.AccessToken)
	require.Equal(t, "user@example.com", session.User.Email)
	stored, err := client.Session()
	require.NoError(t, err)
	require.Equal(t, session, stored)

	_, err = client.Login(context.Background(), LoginForm{Email: "user@example.com", Password: "wrong"})
	var formErr *FormError
	require.ErrorAs(t, err, &formErr)
	require.Equal(t, "Invalid email or password", formErr.Message)
	require.Equal(t, int32(2), calls.Load())

	require.NoError(t, client.Logout())
	_, err = client.Session()
	require.ErrorIs(t, err, ErrNoSession)
}

func TestClient_LoginGenericErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{name: "no detail", status: http.StatusInternalServerError, body: `{"ok":false}`, message: GenericLoginMessage},
		{name: "not JSON", status: http.StatusBadGateway, body: `<html>bad gateway</html>`, message: GenericLoginMessage},
		{name: "message field", status: http.StatusForbidden, body: `{"message":"Account locked"}`, message: "Account locked"},
		{name: "success without token", status: http.StatusOK, body: `{"user":{"id":"1"}}`, message: GenericLoginMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			store := new(MemoryTokenStore)
			_, err := NewClient(server.URL, store).Login(context.Background(), LoginForm{Email: "a@example.com", Password: "x"})
			var formErr *FormError
			require.ErrorAs(t, err, &formErr)
			require.Equal(t, tt.message, formErr.Message)
			_, err = store.Load()
			require.ErrorIs(t, err, ErrNoSession, "nothing stored")
		})
	}
}

func TestClient_LoginNetworkError(t *testing.T) {
	server, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	_, err := NewClient(server.URL, new(MemoryTokenStore)).Login(context.Background(), LoginForm{Email: "a@example.com", Password: "x"})
	var formErr *FormError
	require.ErrorAs(t, err, &formErr)
	require.Equal(t, GenericLoginMessage, formErr.Message)
	require.NotNil(t, errors.Unwrap(err))
}

func TestClient_LoginValidatesBeforeRequest(t *testing.T) {
	server, calls := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {})
	_, err := NewClient(server.URL, new(MemoryTokenStore)).Login(context.Background(), LoginForm{Email: "bad"})
	var formErr *FormError
	require.ErrorAs(t, err, &formErr)
	require.Equal(t, InvalidFormMessage, formErr.Message)
	require.Contains(t, formErr.Fields, "email")
	require.Contains(t, formErr.Fields, "password")
	require.Zero(t, calls.Load())
}

func TestClient_DemoLogin(t *testing.T) {
	server, calls := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	demo := LoginForm{Email: DemoEmail, Password: DemoPassword}

	client := NewClient(server.URL, new(MemoryTokenStore))
	_, err := client.Login(context.Background(), demo)
	require.Error(t, err, "demo credentials are rejected without DemoMode")
	require.Equal(t, int32(1), calls.Load())

	client.DemoMode = true
	session, err := client.Login(context.Background(), demo)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(session.AccessToken, "demo-"))
	require.Equal(t, DemoEmail, session.User.Email)
	require.Equal(t, int32(1), calls.Load(), "demo login does not call the API")
	stored, err := client.Session()
	require.NoError(t, err)
	require.Equal(t, session, stored)
}

func TestClient_Register(t *testing.T) {
	server, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/register", r.URL.Path)
		var body map[string]any
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&body)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		assert.NotContains(t, body, "ConfirmPassword")
		if body["email"] == "taken@example.com" {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"detail":"Email already registered"}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"access_token":"new","user":{"id":"2","email":"new@example.com","name":"New"}}`))
	})
	client := NewClient(server.URL, new(MemoryTokenStore))
	form := RegisterForm{Name: "New", Email: "new@example.com", Password: "12345678", ConfirmPassword: "12345678"}

	session, err := client.Register(context.Background(), form)
	require.NoError(t, err)
	require.Equal(t, "new", session.AccessToken)

	form.Email = "taken@example.com"
	_, err = client.Register(context.Background(), form)
	var formErr *FormError
	require.ErrorAs(t, err, &formErr)
	require.Equal(t, "Email already registered", formErr.Message)
}
