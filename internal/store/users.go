package store

import (
	"sort"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rythem12/hlp-funding-fee/internal/domain"
)

// Users is a durable chat-id → subscription-preferences map backed by a
// single pretty-printed JSON document. Every read loads the whole document
// and every mutation rewrites it; the mutex keeps concurrent handler and
// broadcast access to the read-modify-write cycle serialized.
type Users struct {
	path string
	log  *zap.Logger
	now  func() time.Time
	mu   sync.Mutex
}

func NewUsers(path string, log *zap.Logger) *Users {
	return &Users{path: path, log: log, now: time.Now}
}

// The document is an object keyed by decimal chat id, as in:
//
//	{"123456789": {"coins": ["BTC"], "username": "alice", "joined_at": "..."}}
type userDoc map[string]*domain.User

// load degrades to an empty document on read failure: the bot keeps
// answering, at the cost of acting as if nobody registered yet.
func (s *Users) load() userDoc {
	doc := userDoc{}
	if _, err := readDocument(s.path, &doc); err != nil {
		s.log.Error("load users failed", zap.String("path", s.path), zap.Error(err))
		return userDoc{}
	}
	for key, u := range doc {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			s.log.Warn("skipping malformed user key", zap.String("key", key))
			delete(doc, key)
			continue
		}
		u.ChatID = id
	}
	return doc
}

// Register returns the user for chatID, creating it with the default coin
// set on first contact. created reports whether a new record was written.
func (s *Users) Register(chatID int64, username string) (*domain.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	key := strconv.FormatInt(chatID, 10)
	if u, ok := doc[key]; ok {
		return u, false, nil
	}

	u := &domain.User{
		ChatID:   chatID,
		Coins:    append([]string(nil), domain.DefaultCoins...),
		Username: username,
		JoinedAt: s.now().Truncate(time.Second),
	}
	doc[key] = u
	if err := writeDocument(s.path, doc); err != nil {
		return nil, false, err
	}
	s.log.Info("user registered", zap.Int64("chatID", chatID), zap.String("username", username))
	return u, true, nil
}

// Get returns the user for chatID, if registered.
func (s *Users) Get(chatID int64) (*domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.load()[strconv.FormatInt(chatID, 10)]
	return u, ok
}

// List returns all users in join order (join time ascending, chat id as
// tie-break). Broadcast fan-out iterates in this order.
func (s *Users) List() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	out := make([]domain.User, 0, len(doc))
	for _, u := range doc {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].JoinedAt.Equal(out[j].JoinedAt) {
			return out[i].JoinedAt.Before(out[j].JoinedAt)
		}
		return out[i].ChatID < out[j].ChatID
	})
	return out
}

// SetCoins replaces the subscription list for a registered chat.
func (s *Users) SetCoins(chatID int64, coins []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	key := strconv.FormatInt(chatID, 10)
	u, ok := doc[key]
	if !ok {
		return nil // unregistered chat, nothing to update
	}
	u.Coins = append([]string(nil), coins...)
	return writeDocument(s.path, doc)
}
