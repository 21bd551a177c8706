package writer

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
)

const DefaultSessionTTL = 30 * time.Minute

// Sessions keeps the last answer of each UI session so a later request can
// continue from it. Entries expire after the configured TTL.
type Sessions struct {
	cache *ttlcache.Cache[string, string]
}

func NewSessions(ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	c := ttlcache.New[string, string](
		ttlcache.WithTTL[string, string](ttl),
	)
	go c.Start()
	return &Sessions{cache: c}
}

// Close stops the expiration loop.
func (s *Sessions) Close() {
	s.cache.Stop()
}

func (s *Sessions) Last(id string) (string, bool) {
	if id == "" {
		return "", false
	}
	item := s.cache.Get(id)
	if item == nil {
		return "", false
	}
	return item.Value(), true
}

func (s *Sessions) Remember(id, text string) {
	if id == "" {
		return
	}
	s.cache.Set(id, text, ttlcache.DefaultTTL)
}

func (s *Sessions) Forget(id string) {
	s.cache.Delete(id)
}

func (s *Sessions) Len() int {
	return s.cache.Len()
}
