package viewsync

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Sessions keeps one Sync per open page. Idle sessions expire after the TTL.
type Sessions struct {
	cache   *cache.Cache
	factory func() *Sync
}

// NewSessions creates a session registry; factory builds the Sync for each new page.
func NewSessions(ttl time.Duration, factory func() *Sync) *Sessions {
	cleanup := ttl / 2
	if cleanup < time.Minute {
		cleanup = time.Minute
	}
	return &Sessions{
		cache:   cache.New(ttl, cleanup),
		factory: factory,
	}
}

// Create registers a new page session.
func (s *Sessions) Create() (string, *Sync) {
	id := uuid.NewString()
	sync := s.factory()
	s.cache.Set(id, sync, cache.DefaultExpiration)
	return id, sync
}

// Get returns the session and extends its lifetime.
func (s *Sessions) Get(id string) (*Sync, bool) {
	x, found := s.cache.Get(id)
	if !found {
		return nil, false
	}
	sync := x.(*Sync)
	s.cache.Set(id, sync, cache.DefaultExpiration)
	return sync, true
}

// Delete forgets a session.
func (s *Sessions) Delete(id string) {
	s.cache.Delete(id)
}

// Count returns the number of live sessions.
func (s *Sessions) Count() int {
	return s.cache.ItemCount()
}
