package domain

import "time"

// DefaultSessionTTL is how long a login stays valid.
const DefaultSessionTTL = 7 * 24 * time.Hour

// AuthSession is a persisted login. TokenHash is the SHA-256 of the opaque
// token handed to the client; the token itself is never stored.
type AuthSession struct {
	ID        int64
	ProfileID int64
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Valid reports whether the session is still usable at now.
func (s *AuthSession) Valid(now time.Time) bool {
	return s.ExpiresAt.After(now)
}
