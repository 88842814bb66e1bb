// Package repo persists interview sessions between turns
package repo

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	perr "shopguide/internal/platform/errors"
	"shopguide/internal/services/interview/domain"
)

// Memory keeps sessions in process with per entry expiry
type Memory struct {
	c *cache.Cache
}

var _ domain.SessionStore = (*Memory)(nil)

// NewMemory returns a store expiring idle sessions after ttl
func NewMemory(ttl, cleanup time.Duration) *Memory {
	return &Memory{c: cache.New(ttl, cleanup)}
}

// Load returns a copy of the stored session
func (m *Memory) Load(_ context.Context, id string) (*domain.Session, error) {
	x, found := m.c.Get(id)
	if !found {
		return nil, perr.NotFoundf("session %s not found", id)
	}
	s, ok := x.(*domain.Session)
	if !ok {
		return nil, perr.Internalf("session %s has unexpected type %T", id, x)
	}
	return s.Clone(), nil
}

// Save stores a copy of s; ttl <= 0 uses the store default
func (m *Memory) Save(_ context.Context, s *domain.Session, ttl time.Duration) error {
	if s == nil || s.ID == "" {
		return perr.InvalidArgf("session id required")
	}
	if ttl <= 0 {
		ttl = cache.DefaultExpiration
	}
	m.c.Set(s.ID, s.Clone(), ttl)
	return nil
}

// Delete removes id; a missing session is not an error
func (m *Memory) Delete(_ context.Context, id string) error {
	m.c.Delete(id)
	return nil
}
