package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"isms-assistant/internal/model"
	"isms-assistant/pkg/log"
)

// Config sizes the session store.
type Config struct {
	Capacity     int
	TTL          time.Duration
	HistoryLimit int
}

const (
	defaultCapacity     = 1000
	defaultTTL          = 30 * time.Minute
	defaultHistoryLimit = 20
)

type entry struct {
	mu    sync.Mutex
	state *model.SessionState
}

// Manager owns every live conversation. Sessions idle past the TTL or beyond
// capacity are evicted; a later message under the same ID simply starts a
// fresh session. Access is serialized per session: two requests for the same
// ID run one after the other, requests for different IDs run concurrently.
type Manager struct {
	l            log.Logger
	sessions     *expirable.LRU[string, *entry]
	historyLimit int

	// mu only guards the create-if-absent window.
	mu sync.Mutex
}

// NewManager builds the session store. Zero config fields fall back to
// defaults.
func NewManager(l log.Logger, cfg Config) *Manager {
	if cfg.Capacity <= 0 {
		cfg.Capacity = defaultCapacity
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = defaultHistoryLimit
	}
	return &Manager{
		l:            l,
		sessions:     expirable.NewLRU[string, *entry](cfg.Capacity, nil, cfg.TTL),
		historyLimit: cfg.HistoryLimit,
	}
}

// NewSessionID mints an ID for a caller that does not have one yet.
func (m *Manager) NewSessionID() string {
	return uuid.NewString()
}

// Acquire returns the session state for id under its lock, creating the
// session on first use. The caller must invoke release when done; until then
// no other request can touch this session.
func (m *Manager) Acquire(id string) (*model.SessionState, func()) {
	m.mu.Lock()
	e, ok := m.sessions.Get(id)
	if !ok {
		e = &entry{state: &model.SessionState{ID: id}}
		m.sessions.Add(id, e)
	}
	m.mu.Unlock()

	e.mu.Lock()
	return e.state, e.mu.Unlock
}

// HistoryLimit is the per-session bound handlers pass to AppendHistory.
func (m *Manager) HistoryLimit() int {
	return m.historyLimit
}

// Len reports the number of live sessions, for the health endpoint.
func (m *Manager) Len() int {
	return m.sessions.Len()
}
