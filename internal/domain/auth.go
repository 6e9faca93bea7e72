package domain

import "time"

// TokenType classifies issued tokens. Only access tokens exist today.
type TokenType string

const TokenTypeAccess TokenType = "access"

// AuthToken is the durable record of an issued JWT. A token authenticates
// only while its signature verifies AND a live row exists here; deleting
// the row is the revocation mechanism.
type AuthToken struct {
	ID         int64
	UserID     int64
	Token      string
	TokenType  TokenType
	UserAgent  string
	ExpiresAt  time.Time
	CreatedAt  time.Time
	LastUsedAt *time.Time
}

// Live reports whether the record has not yet passed its expiry.
func (t AuthToken) Live(now time.Time) bool {
	return now.Before(t.ExpiresAt)
}
