// Package sqlite implements the storage interface on an embedded SQLite
// database through GORM, using a pure-Go driver so the engine carries no
// cgo requirement.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/numberrush/numberrush/internal/model"
	"github.com/numberrush/numberrush/internal/storage"
)

// Config holds SQLite backend settings
type Config struct {
	// Path is the database file path. ":memory:" opens an in-memory
	// database, which does not survive Close.
	Path string
}

// DefaultConfig returns sensible defaults for the SQLite backend
func DefaultConfig() Config {
	return Config{
		Path: "number_rush.db",
	}
}

// Storage is the SQLite-backed implementation of the storage interface
type Storage struct {
	db *gorm.DB
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

// New opens (or creates) the database file and ensures the schema exists.
// Schema creation is idempotent, so reopening an existing file is safe.
func New(cfg Config) (*Storage, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.AutoMigrate(&userRecord{}, &highscoreRecord{}, &loginHistoryRecord{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &Storage{db: db}, nil
}

// Backend reports the active backend kind
func (s *Storage) Backend() string {
	return storage.BackendSQLite
}

// Close releases the underlying database handle
func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// User operations

func (s *Storage) CreateUser(ctx context.Context, username, passwordHash string, at time.Time) (*model.User, error) {
	rec := &userRecord{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    formatTime(at),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing userRecord
		err := tx.Where("username = ?", username).First(&existing).Error
		if err == nil {
			return model.ErrDuplicateUsername
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(rec).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, model.ErrDuplicateUsername
		}
		return nil, err
	}

	return rec.toModel()
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var rec userRecord
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return rec.toModel()
}

func (s *Storage) GetLoggedInUser(ctx context.Context) (*model.User, error) {
	var rec userRecord
	if err := s.db.WithContext(ctx).Where("isLoggedIn = 1").First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return rec.toModel()
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	var recs []userRecord
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	users := make([]*model.User, len(recs))
	for i := range recs {
		u, err := recs[i].toModel()
		if err != nil {
			return nil, err
		}
		users[i] = u
	}
	return users, nil
}

func (s *Storage) RecordLogin(ctx context.Context, userID int64, username string, at time.Time, remember bool) error {
	ts := formatTime(at)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec userRecord
		if err := tx.First(&rec, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return model.ErrUserNotFound
			}
			return err
		}

		entry := &loginHistoryRecord{UserID: userID, Username: username, Timestamp: ts}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		if err := tx.Model(&userRecord{}).Where("id = ?", userID).Update("lastLoginAt", ts).Error; err != nil {
			return err
		}

		if remember {
			if err := tx.Model(&userRecord{}).Where("id <> ?", userID).Update("isLoggedIn", 0).Error; err != nil {
				return err
			}
			return tx.Model(&userRecord{}).Where("id = ?", userID).Update("isLoggedIn", 1).Error
		}
		return tx.Model(&userRecord{}).Where("id = ?", userID).Update("isLoggedIn", 0).Error
	})
}

func (s *Storage) LogoutAllUsers(ctx context.Context) error {
	return s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Model(&userRecord{}).
		Update("isLoggedIn", 0).Error
}

// Highscore operations

func (s *Storage) AddHighscore(ctx context.Context, entry *model.HighscoreEntry) (int64, error) {
	rec := newHighscoreRecord(entry)
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (s *Storage) ListHighscores(ctx context.Context, filter storage.HighscoreFilter) ([]*model.HighscoreEntry, error) {
	q := s.db.WithContext(ctx).Model(&highscoreRecord{})

	if filter.UserID != 0 {
		q = q.Where("userId = ?", filter.UserID)
	}
	if filter.GridSize != 0 {
		q = q.Where("gridSize = ?", filter.GridSize)
	}
	if filter.Mode != "" {
		q = q.Where("mode = ?", string(filter.Mode))
	}

	// The id tie-break pins equal (time, mistakes) pairs to insertion
	// order, matching the fallback backend's stable sort.
	q = q.Order("time ASC, mistakes ASC, id ASC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var recs []highscoreRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	entries := make([]*model.HighscoreEntry, len(recs))
	for i := range recs {
		e, err := recs[i].toModel()
		if err != nil {
			return nil, err
		}
		entries[i] = e
	}
	return entries, nil
}

func (s *Storage) ClearHighscores(ctx context.Context) error {
	return s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&highscoreRecord{}).Error
}

// Login history operations

func (s *Storage) ListLoginHistory(ctx context.Context, filter storage.HistoryFilter) ([]*model.LoginHistoryEntry, error) {
	q := s.db.WithContext(ctx).Model(&loginHistoryRecord{})

	if filter.UserID != 0 {
		q = q.Where("userId = ?", filter.UserID)
	}

	q = q.Order("timestamp DESC, id DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var recs []loginHistoryRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	entries := make([]*model.LoginHistoryEntry, len(recs))
	for i := range recs {
		e, err := recs[i].toModel()
		if err != nil {
			return nil, err
		}
		entries[i] = e
	}
	return entries, nil
}
