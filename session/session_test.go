package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSessionStartsUnauthenticated(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "session"), zap.NewNop())
	assert.False(t, s.Authenticated())
	assert.Empty(t, s.Token())
}

func TestSetPersistsToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")
	s := New(path, zap.NewNop())

	s.Set("token-abc")
	assert.True(t, s.Authenticated())
	assert.Equal(t, "token-abc", s.Token())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "token-abc", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestNewRestoresPersistedToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")
	require.NoError(t, os.WriteFile(path, []byte("persisted-token\n"), 0o600))

	s := New(path, zap.NewNop())
	assert.True(t, s.Authenticated())
	assert.Equal(t, "persisted-token", s.Token())
}

func TestClearRemovesTokenAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")
	s := New(path, zap.NewNop())
	s.Set("token-abc")

	s.Clear()
	assert.False(t, s.Authenticated())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clear auf leerer Session ist ein No-op.
	s.Clear()
	assert.False(t, s.Authenticated())
}
