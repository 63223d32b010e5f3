package model

import "time"

// LoginHistoryEntry records one successful authentication. The username is
// snapshotted so history survives later changes to the user record.
// Entries are append-only and never mutated or deleted.
type LoginHistoryEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Username  string    `json:"username"`
	Timestamp time.Time `json:"timestamp"`
}
