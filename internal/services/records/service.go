// Package records exposes the record-store operations consumed by the game
// client: accounts, authentication, highscores, and login history. It is
// the only component that mutates persisted state.
package records

import (
	"context"
	"errors"
	"log/slog"

	"github.com/numberrush/numberrush/internal/dependencies/clock"
	"github.com/numberrush/numberrush/internal/hash"
	"github.com/numberrush/numberrush/internal/model"
	"github.com/numberrush/numberrush/internal/storage"
)

// Default listing limits applied when a caller passes none
const (
	DefaultHighscoreLimit = 20
	DefaultHistoryLimit   = 100
)

// ScoreSubmission carries one completed game result. Zero-value fields fall
// back to guest-play defaults.
type ScoreSubmission struct {
	UserID     int64 // 0 for guest play
	PlayerName string
	Time       float64
	Mistakes   int
	Mode       model.Mode
	GridSize   int
}

// Service implements the record store on top of a storage backend
type Service struct {
	store  storage.Store
	hasher hash.Hasher
	clock  clock.Clock
	logger *slog.Logger
}

// New creates a records Service
func New(store storage.Store, hasher hash.Hasher, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		hasher: hasher,
		clock:  clk,
		logger: logger,
	}
}

// Register creates a new user account. The password is digested before it
// reaches storage; the store never sees plaintext. Fails with
// model.ErrDuplicateUsername without mutating state if the username is
// taken (comparison is case-sensitive).
func (s *Service) Register(ctx context.Context, username, password string) (*model.User, error) {
	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user, err := s.store.CreateUser(ctx, username, digest, s.clock.Now())
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)
	return user, nil
}

// Authenticate verifies credentials. A wrong username or password returns
// (nil, nil): absence of a match is an expected outcome, not a failure. On
// a match the login is recorded (history entry, last-login timestamp) and
// the logged-in flag is adjusted: remember keeps this user as the single
// remembered session; otherwise the flag is explicitly cleared so a
// non-remembered login never leaves a stale session behind.
func (s *Service) Authenticate(ctx context.Context, username, password string, remember bool) (*model.User, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, nil
	}

	if err := s.store.RecordLogin(ctx, user.ID, user.Username, s.clock.Now(), remember); err != nil {
		return nil, err
	}

	s.logger.Info("user authenticated",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
		slog.Bool("remember", remember),
	)

	// Re-read so the returned record reflects the login mutation
	return s.store.GetUserByUsername(ctx, username)
}

// LoggedInUser returns the single remembered user, or (nil, nil) when no
// session is remembered. The session view is derived straight from the
// users collection, so it can never drift from persisted state.
func (s *Service) LoggedInUser(ctx context.Context) (*model.User, error) {
	user, err := s.store.GetLoggedInUser(ctx)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// LogoutAll clears the logged-in flag on every user
func (s *Service) LogoutAll(ctx context.Context) error {
	return s.store.LogoutAllUsers(ctx)
}

// Users lists all accounts ordered by id ascending
func (s *Service) Users(ctx context.Context) ([]*model.User, error) {
	return s.store.ListUsers(ctx)
}

// SubmitScore appends a highscore entry and returns its assigned id.
// Missing fields default to guest play: "Guest", classic mode, a 4x4 grid.
// The timestamp is assigned here, not by the caller.
func (s *Service) SubmitScore(ctx context.Context, sub ScoreSubmission) (int64, error) {
	if sub.PlayerName == "" {
		sub.PlayerName = model.GuestPlayerName
	}
	if sub.Mode == "" {
		sub.Mode = model.ModeClassic
	}
	if sub.GridSize == 0 {
		sub.GridSize = model.DefaultGridSize
	}

	entry := &model.HighscoreEntry{
		UserID:     sub.UserID,
		PlayerName: sub.PlayerName,
		Time:       sub.Time,
		Mistakes:   sub.Mistakes,
		Mode:       sub.Mode,
		GridSize:   sub.GridSize,
		RecordedAt: s.clock.Now(),
	}
	return s.store.AddHighscore(ctx, entry)
}

// Highscores lists entries ranked fastest-first with fewer mistakes
// breaking ties, truncated to the filter limit (default 20)
func (s *Service) Highscores(ctx context.Context, filter storage.HighscoreFilter) ([]*model.HighscoreEntry, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultHighscoreLimit
	}
	return s.store.ListHighscores(ctx, filter)
}

// ClearHighscores deletes every highscore entry (administrative reset)
func (s *Service) ClearHighscores(ctx context.Context) error {
	s.logger.Info("clearing all highscores")
	return s.store.ClearHighscores(ctx)
}

// LoginHistory lists authentication events newest first, truncated to the
// filter limit (default 100)
func (s *Service) LoginHistory(ctx context.Context, filter storage.HistoryFilter) ([]*model.LoginHistoryEntry, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultHistoryLimit
	}
	return s.store.ListLoginHistory(ctx, filter)
}
