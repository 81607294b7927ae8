package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdugdh24/lovematch/internal/domain"
	"github.com/gdugdh24/lovematch/internal/repository"
)

// Session is a resolved login: the owning profile and its opaque token.
type Session struct {
	Profile *domain.Profile
	Token   string
}

// CurrentSession is the process-wide slot holding the last resolved session.
// When a SessionTokenStore is configured the token also survives restarts.
type CurrentSession struct {
	mu      sync.RWMutex
	session *Session
	tokens  repository.SessionTokenStore
	ttl     time.Duration
}

// NewCurrentSession creates an empty slot. tokens may be nil.
func NewCurrentSession(tokens repository.SessionTokenStore, ttl time.Duration) *CurrentSession {
	return &CurrentSession{tokens: tokens, ttl: ttl}
}

// Get returns a copy of the current session, or nil.
func (c *CurrentSession) Get() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.session == nil {
		return nil
	}
	s := *c.session
	return &s
}

// Set replaces the current session and persists its token. A nil session
// behaves like Clear.
func (c *CurrentSession) Set(ctx context.Context, s *Session) error {
	const op = "auth.CurrentSession.Set"

	if s == nil {
		return c.Clear(ctx)
	}

	c.remember(s)
	if c.tokens == nil {
		return nil
	}
	if err := c.tokens.Save(ctx, s.Token, c.ttl); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Clear empties the slot and forgets the persisted token.
func (c *CurrentSession) Clear(ctx context.Context) error {
	const op = "auth.CurrentSession.Clear"

	c.remember(nil)
	if c.tokens == nil {
		return nil
	}
	if err := c.tokens.Clear(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// persistedToken returns the token kept in the token store, or "" when there
// is none or no store is configured.
func (c *CurrentSession) persistedToken(ctx context.Context) (string, error) {
	if c.tokens == nil {
		return "", nil
	}
	return c.tokens.Load(ctx)
}

func (c *CurrentSession) remember(s *Session) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s == nil {
		c.session = nil
		return
	}
	cp := *s
	c.session = &cp
}
