package sqlite

import (
	"fmt"
	"time"

	"github.com/numberrush/numberrush/internal/model"
)

// Timestamps are persisted as fixed-width ISO-8601 UTC text so that
// lexicographic ordering in SQL matches chronological ordering.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed stored timestamp %q: %w", s, err)
	}
	return t, nil
}

// userRecord maps the users table. Column names follow the mobile client's
// original schema so an existing database file keeps working.
type userRecord struct {
	ID           int64   `gorm:"column:id;primaryKey;autoIncrement"`
	Username     string  `gorm:"column:username;uniqueIndex;not null"`
	PasswordHash string  `gorm:"column:passwordHash;not null"`
	IsLoggedIn   int     `gorm:"column:isLoggedIn;not null;default:0"`
	CreatedAt    string  `gorm:"column:createdAt;type:text"`
	LastLoginAt  *string `gorm:"column:lastLoginAt;type:text"`
}

func (userRecord) TableName() string { return "users" }

func (r *userRecord) toModel() (*model.User, error) {
	createdAt, err := parseTime(r.CreatedAt)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		IsLoggedIn:   r.IsLoggedIn != 0,
		CreatedAt:    createdAt,
	}
	if r.LastLoginAt != nil {
		t, err := parseTime(*r.LastLoginAt)
		if err != nil {
			return nil, err
		}
		u.LastLoginAt = &t
	}
	return u, nil
}

// highscoreRecord maps the highscores table. UserID is NULL for guest play.
type highscoreRecord struct {
	ID         int64   `gorm:"column:id;primaryKey;autoIncrement"`
	UserID     *int64  `gorm:"column:userId"`
	PlayerName string  `gorm:"column:playerName"`
	Time       float64 `gorm:"column:time;type:real"`
	Mistakes   int     `gorm:"column:mistakes"`
	Mode       string  `gorm:"column:mode"`
	GridSize   int     `gorm:"column:gridSize"`
	RecordedAt string  `gorm:"column:recordedAt;type:text"`
}

func (highscoreRecord) TableName() string { return "highscores" }

func newHighscoreRecord(e *model.HighscoreEntry) *highscoreRecord {
	r := &highscoreRecord{
		PlayerName: e.PlayerName,
		Time:       e.Time,
		Mistakes:   e.Mistakes,
		Mode:       string(e.Mode),
		GridSize:   e.GridSize,
		RecordedAt: formatTime(e.RecordedAt),
	}
	if e.UserID != 0 {
		uid := e.UserID
		r.UserID = &uid
	}
	return r
}

func (r *highscoreRecord) toModel() (*model.HighscoreEntry, error) {
	recordedAt, err := parseTime(r.RecordedAt)
	if err != nil {
		return nil, err
	}
	e := &model.HighscoreEntry{
		ID:         r.ID,
		PlayerName: r.PlayerName,
		Time:       r.Time,
		Mistakes:   r.Mistakes,
		Mode:       model.Mode(r.Mode),
		GridSize:   r.GridSize,
		RecordedAt: recordedAt,
	}
	if r.UserID != nil {
		e.UserID = *r.UserID
	}
	return e, nil
}

// loginHistoryRecord maps the login_history table. The username snapshot is
// denormalized so history survives user-record changes.
type loginHistoryRecord struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    int64  `gorm:"column:userId"`
	Username  string `gorm:"column:username"`
	Timestamp string `gorm:"column:timestamp;type:text"`
}

func (loginHistoryRecord) TableName() string { return "login_history" }

func (r *loginHistoryRecord) toModel() (*model.LoginHistoryEntry, error) {
	ts, err := parseTime(r.Timestamp)
	if err != nil {
		return nil, err
	}
	return &model.LoginHistoryEntry{
		ID:        r.ID,
		UserID:    r.UserID,
		Username:  r.Username,
		Timestamp: ts,
	}, nil
}
