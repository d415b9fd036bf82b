package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"partyhub/internal/api/handler"
	"partyhub/internal/hub"
	"partyhub/internal/middleware"
	"partyhub/internal/services/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	SessionController *session.Controller
	Registry          *hub.Registry
	Hub               *hub.Hub
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	chatHandler := handler.NewChatHandler(cfg.Registry, cfg.Hub, cfg.Logger)
	gameHandler := handler.NewGameHandler(cfg.SessionController, cfg.Registry, cfg.Hub, cfg.Logger)

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	// Chat page and streams
	r.HandleFunc("/", handler.Home).Methods(http.MethodGet)
	r.HandleFunc("/chat/events", chatHandler.Events).Methods(http.MethodGet)
	r.HandleFunc("/chat/ws", chatHandler.Watch).Methods(http.MethodGet)
	r.HandleFunc("/chat/{subscriber_id}", chatHandler.Send).Methods(http.MethodPost)

	// Game sessions
	r.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	r.HandleFunc("/games/{code}", gameHandler.Get).Methods(http.MethodGet)
	r.HandleFunc("/games/{code}/join", gameHandler.Join).Methods(http.MethodPost)
	r.HandleFunc("/games/{code}/events", gameHandler.Events).Methods(http.MethodGet)
	r.HandleFunc("/games/{code}/ws", gameHandler.Watch).Methods(http.MethodGet)

	r.HandleFunc("/healthz", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
