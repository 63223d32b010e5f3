package cli

import (
	"fmt"
	"strings"
	"time"
)

// UserResult is an account as returned by the API
type UserResult struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	IsLoggedIn  bool       `json:"is_logged_in"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

func (u UserResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s", u.ID, u.Username)
	if u.IsLoggedIn {
		b.WriteString(" (remembered)")
	}
	if u.LastLoginAt != nil {
		fmt.Fprintf(&b, " last login %s", u.LastLoginAt.Format(time.RFC3339))
	}
	return b.String()
}

// HighscoreResult is a highscore entry as returned by the API
type HighscoreResult struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id,omitempty"`
	PlayerName string    `json:"player_name"`
	Time       float64   `json:"time"`
	Mistakes   int       `json:"mistakes"`
	Mode       string    `json:"mode"`
	GridSize   int       `json:"grid_size"`
	RecordedAt time.Time `json:"recorded_at"`
}

func (h HighscoreResult) String() string {
	return fmt.Sprintf("%-16s %6.2fs  %d mistakes  %s %dx%d",
		h.PlayerName, h.Time, h.Mistakes, h.Mode, h.GridSize, h.GridSize)
}

// SubmitResult is the id assigned to a submitted score
type SubmitResult struct {
	ID int64 `json:"id"`
}

func (s SubmitResult) String() string {
	return fmt.Sprintf("score recorded with id %d", s.ID)
}

// HistoryResult is a login-history entry as returned by the API
type HistoryResult struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Timestamp time.Time `json:"timestamp"`
}

func (h HistoryResult) String() string {
	return fmt.Sprintf("%s  %s (user %d)", h.Timestamp.Format(time.RFC3339), h.Username, h.UserID)
}

// HealthResult is the health endpoint response
type HealthResult struct {
	Status string `json:"status"`
}

func (h HealthResult) String() string {
	return h.Status
}
