package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/numberrush/numberrush/internal/api/handler"
	apimiddleware "github.com/numberrush/numberrush/internal/api/middleware"
	"github.com/numberrush/numberrush/internal/middleware"
	"github.com/numberrush/numberrush/internal/services/records"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger  *slog.Logger
	Records *records.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	userHandler := handler.NewUserHandler(cfg.Records)
	sessionHandler := handler.NewSessionHandler(cfg.Records)
	highscoreHandler := handler.NewHighscoreHandler(cfg.Records)
	historyHandler := handler.NewHistoryHandler(cfg.Records)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(apimiddleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Account routes
	api.HandleFunc("/users", userHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/users", userHandler.List).Methods(http.MethodGet)

	// Session routes
	api.HandleFunc("/login", sessionHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/logout", sessionHandler.Logout).Methods(http.MethodPost)
	api.HandleFunc("/session", sessionHandler.Current).Methods(http.MethodGet)

	// Highscore routes
	api.HandleFunc("/highscores", highscoreHandler.Submit).Methods(http.MethodPost)
	api.HandleFunc("/highscores", highscoreHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/highscores", highscoreHandler.Clear).Methods(http.MethodDelete)

	// Login history
	api.HandleFunc("/history", historyHandler.List).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
