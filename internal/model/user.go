package model

import "time"

// User represents a registered player account.
//
// JSON tags match the on-disk field names of the key-value fallback blobs,
// so persisted records round-trip without a separate DTO layer.
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`      // login name, unique and immutable
	PasswordHash string     `json:"passwordHash"`  // one-way digest, never plaintext
	IsLoggedIn   bool       `json:"isLoggedIn"`    // at most one user store-wide
	CreatedAt    time.Time  `json:"createdAt"`
	LastLoginAt  *time.Time `json:"lastLoginAt"` // nil until the first successful login
}
