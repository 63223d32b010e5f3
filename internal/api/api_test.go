package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/numberrush/numberrush/internal/api/apierr"
	"github.com/numberrush/numberrush/internal/api/response"
	"github.com/numberrush/numberrush/internal/dependencies/mocks"
	"github.com/numberrush/numberrush/internal/hash"
	"github.com/numberrush/numberrush/internal/services/records"
	"github.com/numberrush/numberrush/internal/storage/kv"
	"github.com/numberrush/numberrush/internal/testutil"
)

type APISuite struct {
	suite.Suite
	server *httptest.Server
	clock  *mocks.MockClock
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	store, err := kv.New(context.Background(), kv.NewMemoryBlobStore(), testutil.NopLogger())
	s.Require().NoError(err)

	svc := records.New(store, hash.NewSHA256(), s.clock, testutil.NopLogger())
	s.server = httptest.NewServer(NewRouter(RouterConfig{
		Logger:  testutil.NopLogger(),
		Records: svc,
	}))
}

func (s *APISuite) TearDownTest() {
	s.server.Close()
}

func (s *APISuite) do(method, path string, body any) *http.Response {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, s.server.URL+path, &buf)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *APISuite) decode(resp *http.Response, dst any) {
	defer resp.Body.Close()
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(dst))
}

func (s *APISuite) decodeError(resp *http.Response) apierr.ErrorResponse {
	var errResp apierr.ErrorResponse
	s.decode(resp, &errResp)
	return errResp
}

func (s *APISuite) register(username, password string) response.User {
	resp := s.do(http.MethodPost, "/api/v1/users", map[string]any{
		"username": username,
		"password": password,
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var user response.User
	s.decode(resp, &user)
	return user
}

func (s *APISuite) TestHealth() {
	resp := s.do(http.MethodGet, "/api/v1/health", nil)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *APISuite) TestRegister() {
	user := s.register("alice", "pw1234")
	s.Equal(int64(1), user.ID)
	s.Equal("alice", user.Username)
	s.False(user.IsLoggedIn)
}

func (s *APISuite) TestRegisterDuplicate() {
	s.register("alice", "pw1234")

	resp := s.do(http.MethodPost, "/api/v1/users", map[string]any{
		"username": "alice",
		"password": "other",
	})
	s.Equal(http.StatusConflict, resp.StatusCode)
	s.Equal(apierr.CodeUsernameExists, s.decodeError(resp).Error.Code)
}

func (s *APISuite) TestRegisterValidation() {
	resp := s.do(http.MethodPost, "/api/v1/users", map[string]any{
		"username": "al", // below minimum length
		"password": "pw1234",
	})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal(apierr.CodeInvalidRequest, s.decodeError(resp).Error.Code)
}

func (s *APISuite) TestLoginWrongCredentials() {
	s.register("alice", "pw1234")

	resp := s.do(http.MethodPost, "/api/v1/login", map[string]any{
		"username": "alice",
		"password": "wrong",
		"remember": true,
	})
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Equal(apierr.CodeInvalidCredentials, s.decodeError(resp).Error.Code)
}

func (s *APISuite) TestLoginAndSession() {
	s.register("alice", "pw1234")

	resp := s.do(http.MethodPost, "/api/v1/login", map[string]any{
		"username": "alice",
		"password": "pw1234",
		"remember": true,
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var user response.User
	s.decode(resp, &user)
	s.True(user.IsLoggedIn)
	s.Require().NotNil(user.LastLoginAt)

	resp = s.do(http.MethodGet, "/api/v1/session", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var current response.User
	s.decode(resp, &current)
	s.Equal("alice", current.Username)
}

func (s *APISuite) TestSessionWithoutLogin() {
	resp := s.do(http.MethodGet, "/api/v1/session", nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Equal(apierr.CodeNoSession, s.decodeError(resp).Error.Code)
}

func (s *APISuite) TestLogout() {
	s.register("alice", "pw1234")

	resp := s.do(http.MethodPost, "/api/v1/login", map[string]any{
		"username": "alice",
		"password": "pw1234",
		"remember": true,
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(http.MethodPost, "/api/v1/logout", nil)
	s.Equal(http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(http.MethodGet, "/api/v1/session", nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func (s *APISuite) TestSubmitAndListHighscores() {
	for _, score := range []map[string]any{
		{"time": 12.5, "mistakes": 2},
		{"time": 12.5, "mistakes": 0},
		{"time": 9.0, "mistakes": 5},
	} {
		resp := s.do(http.MethodPost, "/api/v1/highscores", score)
		s.Require().Equal(http.StatusCreated, resp.StatusCode)

		var created response.SubmitScoreResponse
		s.decode(resp, &created)
		s.NotZero(created.ID)
	}

	resp := s.do(http.MethodGet, "/api/v1/highscores", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var entries []response.Highscore
	s.decode(resp, &entries)
	s.Require().Len(entries, 3)
	s.Equal(9.0, entries[0].Time)
	s.Equal(0, entries[1].Mistakes)
	s.Equal(2, entries[2].Mistakes)

	// Omitted fields took guest-play defaults
	s.Equal("Guest", entries[0].PlayerName)
	s.Equal("classic", entries[0].Mode)
	s.Equal(4, entries[0].GridSize)
}

func (s *APISuite) TestHighscoreQueryFilters() {
	for _, score := range []map[string]any{
		{"time": 10.0, "mode": "classic", "grid_size": 4},
		{"time": 11.0, "mode": "classic", "grid_size": 5},
		{"time": 12.0, "mode": "timeattack", "grid_size": 4},
	} {
		resp := s.do(http.MethodPost, "/api/v1/highscores", score)
		s.Require().Equal(http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := s.do(http.MethodGet, "/api/v1/highscores?mode=classic&grid_size=4", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var entries []response.Highscore
	s.decode(resp, &entries)
	s.Require().Len(entries, 1)
	s.Equal(10.0, entries[0].Time)
}

func (s *APISuite) TestHighscoreInvalidModeFilter() {
	resp := s.do(http.MethodGet, "/api/v1/highscores?mode=turbo", nil)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal(apierr.CodeInvalidRequest, s.decodeError(resp).Error.Code)
}

func (s *APISuite) TestSubmitScoreValidation() {
	resp := s.do(http.MethodPost, "/api/v1/highscores", map[string]any{
		"time":      10.0,
		"grid_size": 7,
	})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal(apierr.CodeInvalidRequest, s.decodeError(resp).Error.Code)
}

func (s *APISuite) TestClearHighscores() {
	resp := s.do(http.MethodPost, "/api/v1/highscores", map[string]any{"time": 10.0})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(http.MethodDelete, "/api/v1/highscores", nil)
	s.Equal(http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(http.MethodGet, "/api/v1/highscores", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var entries []response.Highscore
	s.decode(resp, &entries)
	s.Empty(entries)
}

func (s *APISuite) TestLoginHistory() {
	alice := s.register("alice", "pw1234")

	for i := 0; i < 2; i++ {
		s.clock.Advance(time.Minute)
		resp := s.do(http.MethodPost, "/api/v1/login", map[string]any{
			"username": "alice",
			"password": "pw1234",
		})
		s.Require().Equal(http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	resp := s.do(http.MethodGet, "/api/v1/history", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var entries []response.LoginHistoryEntry
	s.decode(resp, &entries)
	s.Require().Len(entries, 2)
	s.Equal(alice.ID, entries[0].UserID)
	s.Equal("alice", entries[0].Username)
	s.True(entries[0].Timestamp.After(entries[1].Timestamp))
}

func (s *APISuite) TestListUsers() {
	s.register("alice", "pw1234")
	s.register("bob", "pw5678")

	resp := s.do(http.MethodGet, "/api/v1/users", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var users []response.User
	s.decode(resp, &users)
	s.Require().Len(users, 2)
	s.Equal("alice", users[0].Username)
	s.Equal("bob", users[1].Username)
}
