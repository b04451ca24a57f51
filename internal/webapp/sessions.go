package webapp

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/sessions"

	"github.com/verisms/datatable"
	"github.com/verisms/datatable/auth"
)

// SessionCookie holds the access token of a logged in browser.
const SessionCookie = "verisms_session"

// SessionMaxAge is the lifetime of a session
// and of its cookie.
const SessionMaxAge = 7 * 24 * time.Hour

const tokenKey = "token"

// userSession is the server side state of a logged in browser.
type userSession struct {
	mtx       sync.Mutex
	session   *auth.Session
	selection *datatable.Selection
	expires   time.Time
}

// sessionRegistry maps access tokens to logged in sessions.
// The access token of a browser is kept in a signed cookie.
// HTTP handlers run concurrently, so all access is guarded.
type sessionRegistry struct {
	cookies  sessions.Store
	mtx      sync.Mutex
	sessions map[string]*userSession
	logger   *slog.Logger
	now      func() time.Time
}

func newSessionRegistry(cookies sessions.Store, logger *slog.Logger) *sessionRegistry {
	return &sessionRegistry{
		cookies:  cookies,
		sessions: make(map[string]*userSession),
		logger:   logger,
		now:      time.Now,
	}
}

// newCookieStore returns a sessions.CookieStore
// signing cookies with key.
func newCookieStore(key []byte) *sessions.CookieStore {
	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(SessionMaxAge / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// start registers session and sets the cookie of the browser.
// A previous session of the browser and expired sessions
// of all browsers are removed.
func (r *sessionRegistry) start(w http.ResponseWriter, req *http.Request, session *auth.Session) error {
	now := r.now()
	us := &userSession{
		session:   session,
		selection: datatable.NewSelection(),
		expires:   now.Add(SessionMaxAge),
	}
	email := ""
	if session.User != nil {
		email = session.User.Email
	}
	us.selection.OnChange = func(ids []string) {
		r.logger.Debug("Selection changed", slog.String("user", email), slog.Int("selected", len(ids)))
	}

	// A cookie with an invalid signature returns an error
	// together with a new session that replaces it
	cookie, _ := r.cookies.Get(req, SessionCookie)

	r.mtx.Lock()
	if prev, ok := cookie.Values[tokenKey].(string); ok {
		delete(r.sessions, prev)
	}
	r.sweep(now)
	r.sessions[session.AccessToken] = us
	r.mtx.Unlock()

	cookie.Values[tokenKey] = session.AccessToken
	return cookie.Save(req, w)
}

// end removes the session of the request and expires its cookie.
func (r *sessionRegistry) end(w http.ResponseWriter, req *http.Request) error {
	cookie, _ := r.cookies.Get(req, SessionCookie)
	if token, ok := cookie.Values[tokenKey].(string); ok {
		r.mtx.Lock()
		delete(r.sessions, token)
		r.mtx.Unlock()
	}
	delete(cookie.Values, tokenKey)
	cookie.Options.MaxAge = -1
	return cookie.Save(req, w)
}

// fromRequest returns the session of the request's cookie or nil.
func (r *sessionRegistry) fromRequest(req *http.Request) *userSession {
	cookie, err := r.cookies.Get(req, SessionCookie)
	if err != nil {
		return nil
	}
	token, _ := cookie.Values[tokenKey].(string)
	if token == "" {
		return nil
	}
	r.mtx.Lock()
	defer r.mtx.Unlock()
	us := r.sessions[token]
	if us != nil && !r.now().Before(us.expires) {
		delete(r.sessions, token)
		return nil
	}
	return us
}

// len returns the number of registered sessions.
func (r *sessionRegistry) len() int {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return len(r.sessions)
}

// sweep removes expired sessions, r.mtx must be locked.
func (r *sessionRegistry) sweep(now time.Time) {
	for token, us := range r.sessions {
		if !now.Before(us.expires) {
			delete(r.sessions, token)
		}
	}
}

type sessionCtxKey struct{}

func contextWithSession(ctx context.Context, us *userSession) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, us)
}

func sessionFromContext(ctx context.Context) *userSession {
	us, _ := ctx.Value(sessionCtxKey{}).(*userSession)
	return us
}
