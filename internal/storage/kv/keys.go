package kv

// Key prefix for all persisted collections
const keyPrefix = "numberrush"

// Fixed blob keys, one per collection. Changing these orphans existing data.
const (
	usersKey      = keyPrefix + ":users"
	highscoresKey = keyPrefix + ":highscores"
	historyKey    = keyPrefix + ":history"
)
