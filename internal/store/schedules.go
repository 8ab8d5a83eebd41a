package store

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/rythem12/hlp-funding-fee/internal/domain"
)

// Schedules is a durable list of one-shot admin broadcasts backed by a
// pretty-printed JSON array. Records are never deleted; firing or missing
// a broadcast flips its status instead.
type Schedules struct {
	path string
	log  *zap.Logger
	mu   sync.Mutex
}

func NewSchedules(path string, log *zap.Logger) *Schedules {
	return &Schedules{path: path, log: log}
}

func (s *Schedules) load() []domain.ScheduledMessage {
	var list []domain.ScheduledMessage
	if _, err := readDocument(s.path, &list); err != nil {
		s.log.Error("load schedules failed", zap.String("path", s.path), zap.Error(err))
		return nil
	}
	return list
}

// Append stores msg with the next free ID and returns the stored record.
func (s *Schedules) Append(msg domain.ScheduledMessage) (domain.ScheduledMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.load()
	var maxID int64
	for _, m := range list {
		if m.ID > maxID {
			maxID = m.ID
		}
	}
	msg.ID = maxID + 1
	list = append(list, msg)
	if err := writeDocument(s.path, list); err != nil {
		return domain.ScheduledMessage{}, err
	}
	return msg, nil
}

// Pending returns all records still waiting to fire, in stored order.
func (s *Schedules) Pending() []domain.ScheduledMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.ScheduledMessage
	for _, m := range s.load() {
		if m.Status == domain.StatusPending {
			out = append(out, m)
		}
	}
	return out
}

// SetStatus updates the status of the record with the given id.
func (s *Schedules) SetStatus(id int64, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.load()
	for i := range list {
		if list[i].ID != id {
			continue
		}
		list[i].Status = status
		return writeDocument(s.path, list)
	}
	return fmt.Errorf("schedule %d not found", id)
}
