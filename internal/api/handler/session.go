package handler

import (
	"net/http"

	"github.com/numberrush/numberrush/internal/api/apierr"
	"github.com/numberrush/numberrush/internal/api/request"
	"github.com/numberrush/numberrush/internal/api/response"
	"github.com/numberrush/numberrush/internal/services/records"
)

// SessionHandler handles login, logout, and the remembered-session view
type SessionHandler struct {
	records *records.Service
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(records *records.Service) *SessionHandler {
	return &SessionHandler{records: records}
}

// Login handles POST /api/v1/login
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	user, err := h.records.Authenticate(r.Context(), req.Username, req.Password, req.Remember)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	if user == nil {
		// No match is an expected outcome of the core, surfaced here as 401
		apierr.WriteError(w, apierr.NewInvalidCredentialsError())
		return
	}

	response.JSON(w, http.StatusOK, response.UserFromModel(user))
}

// Logout handles POST /api/v1/logout
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.records.LogoutAll(r.Context()); err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Current handles GET /api/v1/session
func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	user, err := h.records.LoggedInUser(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	if user == nil {
		apierr.WriteError(w, apierr.NewNoSessionError())
		return
	}

	response.JSON(w, http.StatusOK, response.UserFromModel(user))
}
