package handler

import (
	"net/http"

	"github.com/numberrush/numberrush/internal/api/apierr"
	"github.com/numberrush/numberrush/internal/api/request"
	"github.com/numberrush/numberrush/internal/api/response"
	"github.com/numberrush/numberrush/internal/services/records"
)

// UserHandler handles account endpoints
type UserHandler struct {
	records *records.Service
}

// NewUserHandler creates a new user handler
func NewUserHandler(records *records.Service) *UserHandler {
	return &UserHandler{records: records}
}

// Register handles POST /api/v1/users
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	user, err := h.records.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.UserFromModel(user))
}

// List handles GET /api/v1/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.records.Users(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UsersFromModel(users))
}
