package auth

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func testTokenStore(t *testing.T, store TokenStore) {
	t.Helper()

	_, err := store.Load()
	require.ErrorIs(t, err, ErrNoSession)

	session := &Session{AccessToken: "token-1", User: &User{ID: "u1", Email: "user@example.com"}}
	require.NoError(t, store.Save(session))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, session, loaded)

	require.NoError(t, store.Clear())
	_, err = store.Load()
	require.ErrorIs(t, err, ErrNoSession)
	require.NoError(t, store.Clear(), "clearing twice is fine")
}

func TestMemoryTokenStore(t *testing.T) {
	testTokenStore(t, new(MemoryTokenStore))
}

func TestFileTokenStore(t *testing.T) {
	testTokenStore(t, FileTokenStore(filepath.Join(t.TempDir(), "session.json")))
}
