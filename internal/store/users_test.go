package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestUsers(t *testing.T) *Users {
	t.Helper()
	return NewUsers(filepath.Join(t.TempDir(), "users.json"), zap.NewNop())
}

func TestUsers_RegisterAssignsDefaults(t *testing.T) {
	s := newTestUsers(t)

	u, created, err := s.Register(123456789, "alice")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, []string{"BTC", "ETH", "SOL"}, u.Coins)
	assert.Equal(t, "alice", u.Username)
	assert.False(t, u.JoinedAt.IsZero())

	// Second contact is idempotent and keeps the stored record.
	again, created, err := s.Register(123456789, "renamed")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "alice", again.Username)
}

func TestUsers_SetCoinsPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	s := NewUsers(path, zap.NewNop())

	_, _, err := s.Register(7, "")
	require.NoError(t, err)
	require.NoError(t, s.SetCoins(7, []string{"BTC", "HYPE"}))

	reopened := NewUsers(path, zap.NewNop())
	u, ok := reopened.Get(7)
	require.True(t, ok)
	assert.Equal(t, []string{"BTC", "HYPE"}, u.Coins)
	assert.Equal(t, int64(7), u.ChatID)
}

func TestUsers_DocumentIsPrettyPrinted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	s := NewUsers(path, zap.NewNop())
	_, _, err := s.Register(42, "bob")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"42\"")
	assert.Contains(t, string(data), "\"coins\"")
}

func TestUsers_ListJoinOrder(t *testing.T) {
	s := newTestUsers(t)
	base := time.Date(2024, time.November, 1, 12, 0, 0, 0, time.UTC)
	times := []time.Time{base.Add(2 * time.Hour), base, base.Add(time.Hour)}
	i := 0
	s.now = func() time.Time { t := times[i]; i++; return t }

	for _, id := range []int64{100, 200, 300} {
		_, _, err := s.Register(id, "")
		require.NoError(t, err)
	}

	var got []int64
	for _, u := range s.List() {
		got = append(got, u.ChatID)
	}
	// 200 joined first, then 300, then 100.
	assert.Equal(t, []int64{200, 300, 100}, got)
}

func TestUsers_CorruptDocumentDegradesToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := NewUsers(path, zap.NewNop())
	_, ok := s.Get(1)
	assert.False(t, ok)
	assert.Empty(t, s.List())
}

func TestUsers_GetUnregistered(t *testing.T) {
	s := newTestUsers(t)
	u, ok := s.Get(999)
	assert.False(t, ok)
	assert.Nil(t, u)
}
