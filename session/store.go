package session

import (
	"log/slog"
	"time"

	"github.com/aouyang1/mouseglass/gallery"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultMaxSessions = 4096
	DefaultTTL         = 24 * time.Hour
)

type Options struct {
	MaxSessions int
	TTL         time.Duration
	SubmitDelay time.Duration
	ResetDelay  time.Duration
}

// Store holds live sessions. The least recently used session is dropped once
// MaxSessions is reached, and idle sessions expire after TTL.
type Store struct {
	catalog *gallery.Catalog
	opts    Options
	cache   *expirable.LRU[string, *Session]
}

func NewStore(catalog *gallery.Catalog, opts Options) *Store {
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = DefaultMaxSessions
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}

	onEvict := func(id string, s *Session) {
		slog.Debug("session evicted", "id", id)
		s.close()
	}

	return &Store{
		catalog: catalog,
		opts:    opts,
		cache:   expirable.NewLRU[string, *Session](opts.MaxSessions, onEvict, opts.TTL),
	}
}

// Get returns the live session with the given id and extends its lifetime.
func (st *Store) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	s, ok := st.cache.Get(id)
	if !ok {
		return nil, false
	}
	// re-adding resets the expiry
	st.cache.Add(id, s)
	return s, true
}

func (st *Store) Create() *Session {
	s := newSession(uuid.NewString(), st.catalog, st.opts.SubmitDelay, st.opts.ResetDelay)
	st.cache.Add(s.ID, s)
	return s
}

// GetOrCreate returns the session for id, starting a new one when id is
// unknown or expired. The second result reports whether a session was created.
func (st *Store) GetOrCreate(id string) (*Session, bool) {
	if s, ok := st.Get(id); ok {
		return s, false
	}
	return st.Create(), true
}

func (st *Store) Remove(id string) {
	st.cache.Remove(id)
}

// TTL is how long an idle session lives.
func (st *Store) TTL() time.Duration {
	return st.opts.TTL
}

func (st *Store) Len() int {
	return st.cache.Len()
}

// Close drops every session and stops their pending contact timers.
func (st *Store) Close() {
	st.cache.Purge()
}
