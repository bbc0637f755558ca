package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"recruitadmin/internal/kvstore"
	"recruitadmin/internal/notify"
)

// Screen is a mounted list screen owned by a session.
type Screen interface {
	Close()
}

// Session bundles what one browser owns: its session store, toast queue and mounted screens.
type Session struct {
	ID     string
	Store  *Store
	Toasts *notify.Queue

	mu       sync.Mutex
	screens  map[string]Screen
	lastSeen time.Time
}

// Screen returns the mounted screen under name, building it when absent.
func (s *Session) Screen(name string, build func() Screen) Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sc, ok := s.screens[name]; ok {
		return sc
	}
	sc := build()
	s.screens[name] = sc
	return sc
}

// Mount replaces any screen under name with a freshly built one.
func (s *Session) Mount(name string, build func() Screen) Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.screens[name]; ok {
		old.Close()
	}
	sc := build()
	s.screens[name] = sc
	return sc
}

// Unmount closes every mounted screen.
func (s *Session) Unmount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, sc := range s.screens {
		sc.Close()
		delete(s.screens, name)
	}
}

func (s *Session) close() {
	s.Unmount()
	s.Toasts.Close()
}

// Manager maps cookie ids to live sessions. Durable data is namespaced by the id,
// so an evicted session is rebuilt from storage on its next request.
type Manager struct {
	kv       kvstore.Store
	idle     time.Duration
	now      func() time.Time
	newQueue func() *notify.Queue

	mu       sync.Mutex
	sessions map[string]*Session
}

type ManagerOption func(*Manager)

// WithIdleTimeout sets how long an unused session stays in memory.
func WithIdleTimeout(d time.Duration) ManagerOption {
	return func(m *Manager) { m.idle = d }
}

// WithQueueFactory overrides how toast queues are built (tests).
func WithQueueFactory(fn func() *notify.Queue) ManagerOption {
	return func(m *Manager) { m.newQueue = fn }
}

func NewManager(kv kvstore.Store, opts ...ManagerOption) *Manager {
	m := &Manager{
		kv:       kv,
		idle:     30 * time.Minute,
		now:      time.Now,
		newQueue: func() *notify.Queue { return notify.NewQueue() },
		sessions: map[string]*Session{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Open returns the session for id, creating and initializing it when needed.
// An empty or malformed id gets a fresh one.
func (m *Manager) Open(ctx context.Context, id string) *Session {
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		toasts := m.newQueue()
		s = &Session{
			ID:      id,
			Toasts:  toasts,
			Store:   NewStore(kvstore.Namespaced{Inner: m.kv, NS: id}, toasts),
			screens: map[string]Screen{},
		}
		m.sessions[id] = s
	}
	s.mu.Lock()
	s.lastSeen = m.now()
	s.mu.Unlock()
	m.mu.Unlock()

	s.Store.Initialize(ctx)
	return s
}

// Sweep drops sessions idle for longer than the idle timeout and returns how many went.
func (m *Manager) Sweep() int {
	cutoff := m.now().Add(-m.idle)
	m.mu.Lock()
	var stale []*Session
	for id, s := range m.sessions {
		s.mu.Lock()
		old := s.lastSeen.Before(cutoff)
		s.mu.Unlock()
		if old {
			stale = append(stale, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range stale {
		s.close()
	}
	return len(stale)
}

// Run sweeps periodically until ctx is done.
func (m *Manager) Run(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.Sweep()
		}
	}
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Close tears down every live session.
func (m *Manager) Close() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = map[string]*Session{}
	m.mu.Unlock()
	for _, s := range all {
		s.close()
	}
}
