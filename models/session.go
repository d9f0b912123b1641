package models

import "time"

// Session is an ephemeral credential record. Only the SHA-256 hash of
// the bearer token is stored; the raw token exists client-side only.
type Session struct {
	TokenHash string    `bson:"tokenHash" json:"-"`
	Username  string    `bson:"username" json:"username"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	ExpiresAt time.Time `bson:"expiresAt" json:"expiresAt"`
}

// Expired reports whether the session's expiry instant has passed.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
