package services

import (
	"context"
	"sync"
	"time"

	"github.com/senyabanana/rfq-desk/internal/workflow"

	"github.com/google/uuid"
)

// deskSession - рабочее место закупщика по одному RFQ.
// Все действия над desk выполняются под mu.
type deskSession struct {
	mu       sync.Mutex
	id       string
	rfqId    string
	desk     *workflow.Desk
	lastSeen time.Time
}

// SessionStore хранит сессии в памяти и удаляет неактивные по TTL.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*deskSession
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore создаёт новый экземпляр SessionStore.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*deskSession),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *SessionStore) add(rfqId string, desk *workflow.Desk) *deskSession {
	sess := &deskSession{
		id:       uuid.New().String(),
		rfqId:    rfqId,
		desk:     desk,
		lastSeen: s.now(),
	}
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	return sess
}

func (s *SessionStore) get(id string) (*deskSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if ok {
		sess.lastSeen = s.now()
	}
	return sess, ok
}

func (s *SessionStore) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

// Len возвращает число активных сессий.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep удаляет сессии, не использовавшиеся дольше TTL.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-s.ttl)
	evicted := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Run периодически вызывает Sweep до отмены ctx.
func (s *SessionStore) Run(ctx context.Context, interval time.Duration, onSweep func(evicted int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}
