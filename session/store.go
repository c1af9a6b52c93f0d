package session

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"pdf_assembler/pdf"
)

// Store keeps the live sessions of a server in memory.
// Sessions idle for longer than the TTL are closed by Reap.
type Store struct {
	engine pdf.Engine
	ttl    time.Duration
	logger *log.Logger
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore creates a store whose sessions share engine
func NewStore(engine pdf.Engine, ttl time.Duration, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{
		engine:   engine,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Create starts a new empty session
func (st *Store) Create() *Session {
	s := New(st.engine)
	s.now = st.now
	s.lastUsed = st.now()

	s.Documents().Subscribe(func(version uint64, docs []Document) {
		st.logger.Printf("session %s: version %d, %d documents", s.ID, version, len(docs))
	})

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	st.logger.Printf("session %s created", s.ID)
	return s
}

// Get returns the session with id
func (st *Store) Get(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// Delete closes the session and forgets it. A busy session is left alone.
func (st *Store) Delete(id string) error {
	s, err := st.Get(id)
	if err != nil {
		return err
	}
	if err := s.Close(); err != nil {
		return err
	}

	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()

	st.logger.Printf("session %s deleted", id)
	return nil
}

// Len returns the number of live sessions
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	return len(st.sessions)
}

// Reap closes sessions that have been idle longer than the TTL and returns how many it closed.
// A session is only forgotten once it is closed; a busy one is left for a later pass.
func (st *Store) Reap() int {
	if st.ttl <= 0 {
		return 0
	}
	cutoff := st.now().Add(-st.ttl)

	st.mu.Lock()
	sessions := make([]*Session, 0, len(st.sessions))
	for _, s := range st.sessions {
		sessions = append(sessions, s)
	}
	st.mu.Unlock()

	closed := 0
	for _, s := range sessions {
		if !s.closeIfIdle(cutoff) {
			continue
		}

		st.mu.Lock()
		if st.sessions[s.ID] == s {
			delete(st.sessions, s.ID)
		}
		st.mu.Unlock()

		st.logger.Printf("session %s expired", s.ID)
		closed++
	}
	return closed
}

// Run calls Reap every interval until ctx is done
func (st *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.Reap()
		}
	}
}

// CloseAll closes and forgets every session
func (st *Store) CloseAll() {
	st.mu.Lock()
	sessions := st.sessions
	st.sessions = make(map[string]*Session)
	st.mu.Unlock()

	for _, s := range sessions {
		if err := s.Close(); err != nil {
			st.logger.Printf("session %s: close failed: %v", s.ID, err)
		}
	}
}
