// Package kv implements the fallback storage backend over a flat key-value
// blob store. Each collection is one JSON-encoded ordered sequence; every
// mutation rewrites the full snapshot of the collections it touched.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/numberrush/numberrush/internal/model"
	"github.com/numberrush/numberrush/internal/storage"
)

// Storage is the key-value-backed implementation of the storage interface.
// All mutations serialize on a single mutex, so the read-modify-write of
// full snapshots cannot interleave.
type Storage struct {
	blobs  BlobStore
	logger *slog.Logger

	mu      sync.Mutex
	users   []*model.User
	scores  []*model.HighscoreEntry
	history []*model.LoginHistoryEntry

	nextUserID    int64
	nextScoreID   int64
	nextHistoryID int64
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

// New loads the persisted collections and recovers the next-id counters as
// max(existing ids)+1, so id assignment stays monotonic across restarts. A
// missing blob is an empty collection; a corrupt one is reset to empty with
// a diagnostic log, trading retention for a consistent state.
func New(ctx context.Context, blobs BlobStore, logger *slog.Logger) (*Storage, error) {
	s := &Storage{
		blobs:  blobs,
		logger: logger,
	}

	loadCollection(ctx, s, usersKey, &s.users)
	loadCollection(ctx, s, highscoresKey, &s.scores)
	loadCollection(ctx, s, historyKey, &s.history)

	s.nextUserID = nextID(s.users, func(u *model.User) int64 { return u.ID })
	s.nextScoreID = nextID(s.scores, func(e *model.HighscoreEntry) int64 { return e.ID })
	s.nextHistoryID = nextID(s.history, func(e *model.LoginHistoryEntry) int64 { return e.ID })

	return s, nil
}

func loadCollection[T any](ctx context.Context, s *Storage, key string, dst *[]*T) {
	data, err := s.blobs.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrBlobNotFound) {
			s.logger.Warn("failed to read collection, starting empty",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
		*dst = nil
		return
	}

	if err := json.Unmarshal(data, dst); err != nil {
		s.logger.Warn("corrupt collection blob, resetting to empty",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		*dst = nil
	}
}

func nextID[T any](items []*T, id func(*T) int64) int64 {
	next := int64(1)
	for _, item := range items {
		if v := id(item); v >= next {
			next = v + 1
		}
	}
	return next
}

// Backend reports the active backend kind
func (s *Storage) Backend() string {
	return storage.BackendKV
}

// Close flushes nothing; every mutation is already write-through
func (s *Storage) Close() error {
	return s.blobs.Close()
}

func (s *Storage) persist(ctx context.Context, key string, collection any) error {
	data, err := json.Marshal(collection)
	if err != nil {
		return err
	}
	return s.blobs.Set(ctx, key, data)
}

func (s *Storage) persistUsers(ctx context.Context) error {
	return s.persist(ctx, usersKey, s.users)
}

func (s *Storage) persistScores(ctx context.Context) error {
	return s.persist(ctx, highscoresKey, s.scores)
}

func (s *Storage) persistHistory(ctx context.Context) error {
	return s.persist(ctx, historyKey, s.history)
}

// User operations

func (s *Storage) CreateUser(ctx context.Context, username, passwordHash string, at time.Time) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return nil, model.ErrDuplicateUsername
		}
	}

	user := &model.User{
		ID:           s.nextUserID,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    at,
	}
	s.users = append(s.users, user)
	s.nextUserID++

	if err := s.persistUsers(ctx); err != nil {
		// Roll the append back so memory matches disk
		s.users = s.users[:len(s.users)-1]
		s.nextUserID--
		return nil, err
	}

	return cloneUser(user), nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (s *Storage) GetLoggedInUser(ctx context.Context) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.IsLoggedIn {
			return cloneUser(u), nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]*model.User, len(s.users))
	for i, u := range s.users {
		users[i] = cloneUser(u)
	}
	sort.SliceStable(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *Storage) RecordLogin(ctx context.Context, userID int64, username string, at time.Time, remember bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var user *model.User
	for _, u := range s.users {
		if u.ID == userID {
			user = u
			break
		}
	}
	if user == nil {
		return model.ErrUserNotFound
	}

	// Snapshot everything this mutation touches so a rejected persist
	// leaves no observable trace
	prevLastLogin := user.LastLoginAt
	prevFlags := make([]bool, len(s.users))
	for i, u := range s.users {
		prevFlags[i] = u.IsLoggedIn
	}
	rollback := func() {
		s.history = s.history[:len(s.history)-1]
		s.nextHistoryID--
		user.LastLoginAt = prevLastLogin
		for i, u := range s.users {
			u.IsLoggedIn = prevFlags[i]
		}
	}

	ts := at
	entry := &model.LoginHistoryEntry{
		ID:        s.nextHistoryID,
		UserID:    userID,
		Username:  username,
		Timestamp: ts,
	}
	s.history = append(s.history, entry)
	s.nextHistoryID++

	user.LastLoginAt = &ts
	if remember {
		for _, u := range s.users {
			u.IsLoggedIn = false
		}
		user.IsLoggedIn = true
	} else {
		user.IsLoggedIn = false
	}

	if err := s.persistHistory(ctx); err != nil {
		rollback()
		return err
	}
	if err := s.persistUsers(ctx); err != nil {
		rollback()
		// The history blob already carries the new entry; rewrite the
		// restored snapshot so disk matches memory again
		if perr := s.persistHistory(ctx); perr != nil {
			s.logger.Warn("failed to restore history blob after rejected login",
				slog.String("error", perr.Error()),
			)
		}
		return err
	}
	return nil
}

func (s *Storage) LogoutAllUsers(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		u.IsLoggedIn = false
	}
	return s.persistUsers(ctx)
}

// Highscore operations

func (s *Storage) AddHighscore(ctx context.Context, entry *model.HighscoreEntry) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *entry
	stored.ID = s.nextScoreID
	s.scores = append(s.scores, &stored)
	s.nextScoreID++

	if err := s.persistScores(ctx); err != nil {
		s.scores = s.scores[:len(s.scores)-1]
		s.nextScoreID--
		return 0, err
	}
	return stored.ID, nil
}

func (s *Storage) ListHighscores(ctx context.Context, filter storage.HighscoreFilter) ([]*model.HighscoreEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []*model.HighscoreEntry
	for _, e := range s.scores {
		if filter.UserID != 0 && e.UserID != filter.UserID {
			continue
		}
		if filter.GridSize != 0 && e.GridSize != filter.GridSize {
			continue
		}
		if filter.Mode != "" && e.Mode != filter.Mode {
			continue
		}
		copied := *e
		entries = append(entries, &copied)
	}

	// Stable sort keeps equal (time, mistakes) pairs in insertion order,
	// matching the relational backend's id tie-break.
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Better(entries[j]) })

	if filter.Limit > 0 && len(entries) > filter.Limit {
		entries = entries[:filter.Limit]
	}
	return entries, nil
}

func (s *Storage) ClearHighscores(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scores = nil
	return s.persistScores(ctx)
}

// Login history operations

func (s *Storage) ListLoginHistory(ctx context.Context, filter storage.HistoryFilter) ([]*model.LoginHistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Entries are append-only in non-decreasing timestamp order, so
	// newest-first is reverse of insertion order.
	var entries []*model.LoginHistoryEntry
	for i := len(s.history) - 1; i >= 0; i-- {
		e := s.history[i]
		if filter.UserID != 0 && e.UserID != filter.UserID {
			continue
		}
		copied := *e
		entries = append(entries, &copied)
		if filter.Limit > 0 && len(entries) == filter.Limit {
			break
		}
	}
	return entries, nil
}

func cloneUser(u *model.User) *model.User {
	copied := *u
	if u.LastLoginAt != nil {
		t := *u.LastLoginAt
		copied.LastLoginAt = &t
	}
	return &copied
}
