package records

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/numberrush/numberrush/internal/dependencies/mocks"
	"github.com/numberrush/numberrush/internal/hash"
	"github.com/numberrush/numberrush/internal/model"
	"github.com/numberrush/numberrush/internal/storage"
	"github.com/numberrush/numberrush/internal/storage/kv"
	"github.com/numberrush/numberrush/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
	clock   *mocks.MockClock
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	store, err := kv.New(s.ctx, kv.NewMemoryBlobStore(), testutil.NopLogger())
	s.Require().NoError(err)

	s.service = New(store, hash.NewSHA256(), s.clock, testutil.NopLogger())
}

func (s *ServiceSuite) TestRegister() {
	user, err := s.service.Register(s.ctx, "alice", "pw1234")
	s.Require().NoError(err)
	s.Equal(int64(1), user.ID)
	s.Equal("alice", user.Username)
	s.NotEqual("pw1234", user.PasswordHash)
	s.True(user.CreatedAt.Equal(s.clock.CurrentTime))
	s.False(user.IsLoggedIn)
}

func (s *ServiceSuite) TestRegisterDuplicateUsername() {
	_, err := s.service.Register(s.ctx, "alice", "pw1234")
	s.Require().NoError(err)

	_, err = s.service.Register(s.ctx, "alice", "other")
	s.ErrorIs(err, model.ErrDuplicateUsername)

	users, err := s.service.Users(s.ctx)
	s.Require().NoError(err)
	s.Len(users, 1)
}

func (s *ServiceSuite) TestAuthenticateRemembered() {
	_, err := s.service.Register(s.ctx, "alice", "pw1234")
	s.Require().NoError(err)

	s.clock.Advance(time.Hour)
	user, err := s.service.Authenticate(s.ctx, "alice", "pw1234", true)
	s.Require().NoError(err)
	s.Require().NotNil(user)
	s.True(user.IsLoggedIn)
	s.Require().NotNil(user.LastLoginAt)
	s.True(user.LastLoginAt.Equal(s.clock.CurrentTime))

	current, err := s.service.LoggedInUser(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(current)
	s.Equal("alice", current.Username)
}

func (s *ServiceSuite) TestAuthenticateNotRemembered() {
	_, err := s.service.Register(s.ctx, "alice", "pw1234")
	s.Require().NoError(err)

	user, err := s.service.Authenticate(s.ctx, "alice", "pw1234", false)
	s.Require().NoError(err)
	s.Require().NotNil(user)
	s.False(user.IsLoggedIn)

	current, err := s.service.LoggedInUser(s.ctx)
	s.Require().NoError(err)
	s.Nil(current)
}

func (s *ServiceSuite) TestAuthenticateWrongPassword() {
	_, err := s.service.Register(s.ctx, "alice", "pw1234")
	s.Require().NoError(err)

	user, err := s.service.Authenticate(s.ctx, "alice", "wrong", true)
	s.Require().NoError(err)
	s.Nil(user)

	// A failed attempt must not touch the login history
	entries, err := s.service.LoginHistory(s.ctx, storage.HistoryFilter{})
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *ServiceSuite) TestAuthenticateUnknownUsername() {
	user, err := s.service.Authenticate(s.ctx, "nobody", "pw1234", true)
	s.Require().NoError(err)
	s.Nil(user)
}

func (s *ServiceSuite) TestRememberSwitchesSession() {
	_, err := s.service.Register(s.ctx, "alice", "pw1234")
	s.Require().NoError(err)
	_, err = s.service.Register(s.ctx, "bob", "pw5678")
	s.Require().NoError(err)

	_, err = s.service.Authenticate(s.ctx, "alice", "pw1234", true)
	s.Require().NoError(err)
	_, err = s.service.Authenticate(s.ctx, "bob", "pw5678", true)
	s.Require().NoError(err)

	current, err := s.service.LoggedInUser(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(current)
	s.Equal("bob", current.Username)
}

func (s *ServiceSuite) TestLogoutAll() {
	_, err := s.service.Register(s.ctx, "alice", "pw1234")
	s.Require().NoError(err)
	_, err = s.service.Authenticate(s.ctx, "alice", "pw1234", true)
	s.Require().NoError(err)

	s.Require().NoError(s.service.LogoutAll(s.ctx))

	current, err := s.service.LoggedInUser(s.ctx)
	s.Require().NoError(err)
	s.Nil(current)
}

func (s *ServiceSuite) TestSubmitScoreAppliesGuestDefaults() {
	id, err := s.service.SubmitScore(s.ctx, ScoreSubmission{Time: 12.5, Mistakes: 1})
	s.Require().NoError(err)
	s.Equal(int64(1), id)

	entries, err := s.service.Highscores(s.ctx, storage.HighscoreFilter{})
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(model.GuestPlayerName, entries[0].PlayerName)
	s.Equal(model.ModeClassic, entries[0].Mode)
	s.Equal(model.DefaultGridSize, entries[0].GridSize)
	s.Equal(int64(0), entries[0].UserID)
	s.True(entries[0].RecordedAt.Equal(s.clock.CurrentTime))
}

func (s *ServiceSuite) TestHighscoresRankedAndLimited() {
	for i := 0; i < DefaultHighscoreLimit+1; i++ {
		_, err := s.service.SubmitScore(s.ctx, ScoreSubmission{
			PlayerName: fmt.Sprintf("p%d", i),
			Time:       float64(100 - i),
		})
		s.Require().NoError(err)
	}

	entries, err := s.service.Highscores(s.ctx, storage.HighscoreFilter{})
	s.Require().NoError(err)
	s.Require().Len(entries, DefaultHighscoreLimit)

	// The slowest entry falls off the default page
	s.Equal(float64(80), entries[0].Time)
	s.Equal(float64(99), entries[len(entries)-1].Time)
}

func (s *ServiceSuite) TestClearHighscores() {
	_, err := s.service.SubmitScore(s.ctx, ScoreSubmission{Time: 10})
	s.Require().NoError(err)

	s.Require().NoError(s.service.ClearHighscores(s.ctx))

	entries, err := s.service.Highscores(s.ctx, storage.HighscoreFilter{})
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *ServiceSuite) TestLoginHistoryDefaultLimit() {
	_, err := s.service.Register(s.ctx, "alice", "pw1234")
	s.Require().NoError(err)

	for i := 0; i < DefaultHistoryLimit+5; i++ {
		s.clock.Advance(time.Minute)
		_, err := s.service.Authenticate(s.ctx, "alice", "pw1234", false)
		s.Require().NoError(err)
	}

	entries, err := s.service.LoginHistory(s.ctx, storage.HistoryFilter{})
	s.Require().NoError(err)
	s.Require().Len(entries, DefaultHistoryLimit)

	// Newest first
	s.True(entries[0].Timestamp.After(entries[1].Timestamp))
}
