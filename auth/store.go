package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	fs "github.com/ungerik/go-fs"
)

// ErrNoSession is returned by TokenStore.Load if no session is stored.
var ErrNoSession = errors.New("no session stored")

// User is the account of a logged in session.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Session is the result of a successful login.
type Session struct {
	AccessToken string `json:"access_token"`
	User        *User  `json:"user,omitempty"`
}

// TokenStore persists the session of a client
// like browser storage does for a web frontend.
type TokenStore interface {
	Save(session *Session) error
	// Load returns ErrNoSession if no session is stored.
	Load() (*Session, error)
	Clear() error
}

var (
	_ TokenStore = new(MemoryTokenStore)
	_ TokenStore = FileTokenStore("")
)

// MemoryTokenStore keeps the session in memory.
type MemoryTokenStore struct {
	mtx     sync.Mutex
	session *Session
}

func (s *MemoryTokenStore) Save(session *Session) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.session = session
	return nil
}

func (s *MemoryTokenStore) Load() (*Session, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.session == nil {
		return nil, ErrNoSession
	}
	return s.session, nil
}

func (s *MemoryTokenStore) Clear() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.session = nil
	return nil
}

// FileTokenStore stores the session as JSON in a file.
type FileTokenStore fs.File

func (s FileTokenStore) Save(session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return fs.File(s).WriteAll(data)
}

func (s FileTokenStore) Load() (*Session, error) {
	file := fs.File(s)
	if !file.Exists() {
		return nil, ErrNoSession
	}
	data, err := file.ReadAll()
	if err != nil {
		return nil, err
	}
	var session Session
	if err = json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("invalid session file %s: %w", file.Name(), err)
	}
	if session.AccessToken == "" {
		return nil, ErrNoSession
	}
	return &session, nil
}

func (s FileTokenStore) Clear() error {
	file := fs.File(s)
	if !file.Exists() {
		return nil
	}
	return file.Remove()
}
