package webapp

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/verisms/datatable/auth"
)

func newTestRegistry(t *testing.T) (registry *sessionRegistry, now *time.Time) {
	t.Helper()
	registry = newSessionRegistry(
		newCookieStore([]byte("0123456789abcdef0123456789abcdef")),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	clock := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	registry.now = func() time.Time { return clock }
	return registry, &clock
}

// startSession starts a session for a browser sending cookies
// and returns the cookie set by the response.
func startSession(t *testing.T, registry *sessionRegistry, token string, cookies ...*http.Cookie) *http.Cookie {
	t.Helper()
	req := requestWithCookies(cookies...)
	rec := httptest.NewRecorder()
	err := registry.start(rec, req, &auth.Session{AccessToken: token, User: &auth.User{Email: token + "@example.com"}})
	require.NoError(t, err)
	set := rec.Result().Cookies()
	require.Len(t, set, 1)
	return set[0]
}

func requestWithCookies(cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func TestSessionRegistry_LoginReplacesPreviousSession(t *testing.T) {
	registry, _ := newTestRegistry(t)

	first := startSession(t, registry, "first")
	require.NotNil(t, registry.fromRequest(requestWithCookies(first)))
	require.Equal(t, 1, registry.len())

	second := startSession(t, registry, "second", first)
	require.Equal(t, 1, registry.len(), "session of the previous login is removed")
	require.Nil(t, registry.fromRequest(requestWithCookies(first)))
	us := registry.fromRequest(requestWithCookies(second))
	require.NotNil(t, us)
	require.Equal(t, "second", us.session.AccessToken)

	startSession(t, registry, "other browser")
	require.Equal(t, 2, registry.len())
}

func TestSessionRegistry_Expiry(t *testing.T) {
	registry, now := newTestRegistry(t)

	old := startSession(t, registry, "old")
	*now = now.Add(SessionMaxAge - time.Second)
	require.NotNil(t, registry.fromRequest(requestWithCookies(old)))

	*now = now.Add(time.Second)
	require.Nil(t, registry.fromRequest(requestWithCookies(old)), "expired session")
	require.Equal(t, 0, registry.len())
}

func TestSessionRegistry_SweepOnLogin(t *testing.T) {
	registry, now := newTestRegistry(t)

	startSession(t, registry, "a")
	startSession(t, registry, "b")
	require.Equal(t, 2, registry.len())

	*now = now.Add(SessionMaxAge)
	fresh := startSession(t, registry, "c")
	require.Equal(t, 1, registry.len(), "expired sessions are removed")
	require.NotNil(t, registry.fromRequest(requestWithCookies(fresh)))
}

func TestSessionRegistry_End(t *testing.T) {
	registry, _ := newTestRegistry(t)

	cookie := startSession(t, registry, "token")
	rec := httptest.NewRecorder()
	require.NoError(t, registry.end(rec, requestWithCookies(cookie)))
	require.Equal(t, 0, registry.len())

	expired := rec.Result().Cookies()
	require.Len(t, expired, 1)
	require.Equal(t, SessionCookie, expired[0].Name)
	require.Less(t, expired[0].MaxAge, 0)
}
