package storage

import (
	"context"
	"time"

	"github.com/numberrush/numberrush/internal/model"
)

// Backend kind constants, reported by Store.Backend
const (
	BackendSQLite = "sqlite"
	BackendKV     = "kv"
)

// HighscoreFilter narrows a highscore listing. Zero values mean "no filter";
// user ids are assigned from 1 so 0 never matches a real user. Filters are
// combined with AND. Limit truncates after sorting.
type HighscoreFilter struct {
	Limit    int
	UserID   int64
	GridSize int
	Mode     model.Mode
}

// HistoryFilter narrows a login-history listing
type HistoryFilter struct {
	Limit  int
	UserID int64
}

// Store defines the interface for data persistence. Both backends must rank
// highscores identically: time ascending, then mistakes ascending, ties
// beyond that in insertion order.
type Store interface {
	// User operations
	CreateUser(ctx context.Context, username, passwordHash string, at time.Time) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetLoggedInUser(ctx context.Context) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)

	// RecordLogin applies the full mutation set of a successful
	// authentication as one unit: appends a login-history entry, updates
	// the user's last login time, and adjusts logged-in flags. With
	// remember set, every other user's flag is cleared and this user's is
	// set, keeping at most one user logged in store-wide; without it this
	// user's flag is explicitly cleared.
	RecordLogin(ctx context.Context, userID int64, username string, at time.Time, remember bool) error
	LogoutAllUsers(ctx context.Context) error

	// Highscore operations
	AddHighscore(ctx context.Context, entry *model.HighscoreEntry) (int64, error)
	ListHighscores(ctx context.Context, filter HighscoreFilter) ([]*model.HighscoreEntry, error)
	ClearHighscores(ctx context.Context) error

	// Login history operations
	ListLoginHistory(ctx context.Context, filter HistoryFilter) ([]*model.LoginHistoryEntry, error)

	// Backend reports which backend kind is active
	Backend() string

	Close() error
}
