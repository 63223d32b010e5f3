package response

import (
	"time"

	"github.com/numberrush/numberrush/internal/model"
)

// User represents an account in API responses. The password digest never
// leaves the server.
type User struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	IsLoggedIn  bool       `json:"is_logged_in"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		ID:          u.ID,
		Username:    u.Username,
		IsLoggedIn:  u.IsLoggedIn,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}

// UsersFromModel converts a slice of users
func UsersFromModel(users []*model.User) []User {
	out := make([]User, len(users))
	for i, u := range users {
		out[i] = UserFromModel(u)
	}
	return out
}

// Highscore represents a highscore entry in API responses
type Highscore struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id,omitempty"`
	PlayerName string    `json:"player_name"`
	Time       float64   `json:"time"`
	Mistakes   int       `json:"mistakes"`
	Mode       string    `json:"mode"`
	GridSize   int       `json:"grid_size"`
	RecordedAt time.Time `json:"recorded_at"`
}

// HighscoreFromModel converts a model.HighscoreEntry
func HighscoreFromModel(e *model.HighscoreEntry) Highscore {
	return Highscore{
		ID:         e.ID,
		UserID:     e.UserID,
		PlayerName: e.PlayerName,
		Time:       e.Time,
		Mistakes:   e.Mistakes,
		Mode:       string(e.Mode),
		GridSize:   e.GridSize,
		RecordedAt: e.RecordedAt,
	}
}

// HighscoresFromModel converts a slice of highscore entries
func HighscoresFromModel(entries []*model.HighscoreEntry) []Highscore {
	out := make([]Highscore, len(entries))
	for i, e := range entries {
		out[i] = HighscoreFromModel(e)
	}
	return out
}

// SubmitScoreResponse returns the id assigned to a recorded score
type SubmitScoreResponse struct {
	ID int64 `json:"id"`
}

// LoginHistoryEntry represents an authentication event in API responses
type LoginHistoryEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryFromModel converts a slice of login history entries
func HistoryFromModel(entries []*model.LoginHistoryEntry) []LoginHistoryEntry {
	out := make([]LoginHistoryEntry, len(entries))
	for i, e := range entries {
		out[i] = LoginHistoryEntry{
			ID:        e.ID,
			UserID:    e.UserID,
			Username:  e.Username,
			Timestamp: e.Timestamp,
		}
	}
	return out
}
