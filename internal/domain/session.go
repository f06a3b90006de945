// internal/domain/session.go
package domain

import "time"

// AdminSession is an authenticated admin session. Created on successful
// login against the remote auth backend, read on every admin-screen
// entry, deleted on logout or detected expiration (lazy, not swept).
type AdminSession struct {
	ID        string    `bson:"_id" json:"id"`
	Token     string    `bson:"token" json:"token"`
	ExpiresAt time.Time `bson:"expiresAt" json:"expiresAt"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Expired reports whether the session is past its expiry at the given
// instant.
func (s AdminSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
