package handler

import (
	"net/http"

	"github.com/numberrush/numberrush/internal/api/apierr"
	"github.com/numberrush/numberrush/internal/api/response"
	"github.com/numberrush/numberrush/internal/services/records"
	"github.com/numberrush/numberrush/internal/storage"
)

// HistoryHandler handles login-history endpoints
type HistoryHandler struct {
	records *records.Service
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(records *records.Service) *HistoryHandler {
	return &HistoryHandler{records: records}
}

// List handles GET /api/v1/history with optional limit and user_id filters
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter storage.HistoryFilter

	limit, err := queryInt(r, "limit")
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	filter.Limit = int(limit)

	userID, err := queryInt(r, "user_id")
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	filter.UserID = userID

	entries, err := h.records.LoginHistory(r.Context(), filter)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HistoryFromModel(entries))
}
