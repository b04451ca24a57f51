package webapp

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/verisms/datatable/auth"
)

var (
	// ErrInvalidCredentials is returned for an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned when registering an existing email.
	ErrEmailTaken = errors.New("email already registered")
)

type storedUser struct {
	user         auth.User
	passwordHash []byte
}

// UserStore is the in-memory account database
// of the mock authentication API.
type UserStore struct {
	mtx    sync.RWMutex
	users  map[string]*storedUser // by lower case email
	tokens map[string]string      // access token to email
}

func NewUserStore() *UserStore {
	return &UserStore{
		users:  make(map[string]*storedUser),
		tokens: make(map[string]string),
	}
}

// Register adds an account and returns a session for it.
func (s *UserStore) Register(name, email, password string) (*auth.Session, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	key := strings.ToLower(strings.TrimSpace(email))

	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, exists := s.users[key]; exists {
		return nil, ErrEmailTaken
	}
	u := &storedUser{
		user:         auth.User{ID: uuid.NewString(), Email: strings.TrimSpace(email), Name: strings.TrimSpace(name)},
		passwordHash: hash,
	}
	s.users[key] = u
	return s.newSession(u), nil
}

// Authenticate checks the password of an account
// and returns a new session for it.
func (s *UserStore) Authenticate(email, password string) (*auth.Session, error) {
	key := strings.ToLower(strings.TrimSpace(email))

	s.mtx.RLock()
	u, ok := s.users[key]
	s.mtx.RUnlock()
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.newSession(u), nil
}

// UserForToken returns the account of an issued access token.
func (s *UserStore) UserForToken(token string) (*auth.User, bool) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	email, ok := s.tokens[token]
	if !ok {
		return nil, false
	}
	user := s.users[email].user
	return &user, true
}

func (s *UserStore) newSession(u *storedUser) *auth.Session {
	token := uuid.NewString()
	s.tokens[token] = strings.ToLower(u.user.Email)
	user := u.user
	return &auth.Session{AccessToken: token, User: &user}
}
