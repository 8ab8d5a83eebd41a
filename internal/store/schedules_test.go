package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rythem12/hlp-funding-fee/internal/domain"
)

func newTestSchedules(t *testing.T) *Schedules {
	t.Helper()
	return NewSchedules(filepath.Join(t.TempDir(), "schedules.json"), zap.NewNop())
}

func pendingMsg(target int64, text string, fireAt time.Time) domain.ScheduledMessage {
	return domain.ScheduledMessage{
		TargetID:  target,
		Message:   text,
		FireAt:    fireAt,
		CreatedAt: fireAt.Add(-time.Hour),
		Status:    domain.StatusPending,
	}
}

func TestSchedules_AppendAssignsSequentialIDs(t *testing.T) {
	s := newTestSchedules(t)
	fireAt := time.Now().Add(time.Hour)

	first, err := s.Append(pendingMsg(1, "a", fireAt))
	require.NoError(t, err)
	second, err := s.Append(pendingMsg(2, "b", fireAt))
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
}

func TestSchedules_PendingFiltersByStatus(t *testing.T) {
	s := newTestSchedules(t)
	fireAt := time.Now().Add(time.Hour)

	m1, err := s.Append(pendingMsg(1, "a", fireAt))
	require.NoError(t, err)
	_, err = s.Append(pendingMsg(2, "b", fireAt))
	require.NoError(t, err)

	require.NoError(t, s.SetStatus(m1.ID, domain.StatusSent))

	pending := s.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, int64(2), pending[0].TargetID)
}

func TestSchedules_SetStatusUnknownID(t *testing.T) {
	s := newTestSchedules(t)
	assert.Error(t, s.SetStatus(99, domain.StatusSent))
}

func TestSchedules_PersistAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedules.json")
	s := NewSchedules(path, zap.NewNop())

	fireAt := time.Date(2030, time.January, 2, 15, 4, 0, 0, time.UTC)
	stored, err := s.Append(pendingMsg(123, "happy new year", fireAt))
	require.NoError(t, err)

	reopened := NewSchedules(path, zap.NewNop())
	pending := reopened.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, stored.ID, pending[0].ID)
	assert.Equal(t, "happy new year", pending[0].Message)
	assert.True(t, pending[0].FireAt.Equal(fireAt))
}
