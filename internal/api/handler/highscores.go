package handler

import (
	"net/http"

	"github.com/numberrush/numberrush/internal/api/apierr"
	"github.com/numberrush/numberrush/internal/api/request"
	"github.com/numberrush/numberrush/internal/api/response"
	"github.com/numberrush/numberrush/internal/model"
	"github.com/numberrush/numberrush/internal/services/records"
	"github.com/numberrush/numberrush/internal/storage"
)

// HighscoreHandler handles highscore endpoints
type HighscoreHandler struct {
	records *records.Service
}

// NewHighscoreHandler creates a new highscore handler
func NewHighscoreHandler(records *records.Service) *HighscoreHandler {
	return &HighscoreHandler{records: records}
}

// Submit handles POST /api/v1/highscores
func (h *HighscoreHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitScoreRequest
	if err := decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	id, err := h.records.SubmitScore(r.Context(), records.ScoreSubmission{
		UserID:     req.UserID,
		PlayerName: req.PlayerName,
		Time:       req.Time,
		Mistakes:   req.Mistakes,
		Mode:       model.Mode(req.Mode),
		GridSize:   req.GridSize,
	})
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SubmitScoreResponse{ID: id})
}

// List handles GET /api/v1/highscores with optional limit, user_id,
// grid_size, and mode filters (AND-combined)
func (h *HighscoreHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := highscoreFilterFromQuery(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	entries, err := h.records.Highscores(r.Context(), filter)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HighscoresFromModel(entries))
}

// Clear handles DELETE /api/v1/highscores
func (h *HighscoreHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.records.ClearHighscores(r.Context()); err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.NoContent(w)
}

func highscoreFilterFromQuery(r *http.Request) (storage.HighscoreFilter, error) {
	var filter storage.HighscoreFilter

	limit, err := queryInt(r, "limit")
	if err != nil {
		return filter, err
	}
	filter.Limit = int(limit)

	userID, err := queryInt(r, "user_id")
	if err != nil {
		return filter, err
	}
	filter.UserID = userID

	gridSize, err := queryInt(r, "grid_size")
	if err != nil {
		return filter, err
	}
	filter.GridSize = int(gridSize)

	if mode := r.URL.Query().Get("mode"); mode != "" {
		if mode != string(model.ModeClassic) && mode != string(model.ModeTimeAttack) {
			return filter, apierr.NewInvalidRequestError("invalid query parameter \"mode\"")
		}
		filter.Mode = model.Mode(mode)
	}

	return filter, nil
}
