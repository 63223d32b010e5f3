package model

import "time"

// Mode identifies the game variant a score was recorded under.
type Mode string

const (
	ModeClassic    Mode = "classic"
	ModeTimeAttack Mode = "timeattack"
)

// DefaultGridSize is the N of the NxN puzzle when a submission omits it.
const DefaultGridSize = 4

// GuestPlayerName is used when a submission carries no display name.
const GuestPlayerName = "Guest"

// HighscoreEntry is a single completed-game result. Entries are immutable
// once recorded; the only delete path is the bulk administrative reset.
type HighscoreEntry struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId,omitempty"` // 0 = guest play; weak reference, may dangle
	PlayerName string    `json:"playerName"`       // display name snapshot at submission
	Time       float64   `json:"time"`             // seconds; lower is better
	Mistakes   int       `json:"mistakes"`         // lower is better on time ties
	Mode       Mode      `json:"mode"`
	GridSize   int       `json:"gridSize"`
	RecordedAt time.Time `json:"recordedAt"`
}

// Better reports whether e ranks ahead of other: fastest time first,
// fewer mistakes on ties. Entries equal on both keys keep insertion order.
func (e *HighscoreEntry) Better(other *HighscoreEntry) bool {
	if e.Time != other.Time {
		return e.Time < other.Time
	}
	return e.Mistakes < other.Mistakes
}
