package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"partyhub/internal/api/apierr"
	"partyhub/internal/api/request"
	"partyhub/internal/api/response"
	"partyhub/internal/hub"
	"partyhub/internal/model"
	"partyhub/internal/services/session"
	"partyhub/internal/web/sse"
	"partyhub/internal/web/ws"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	sessions *session.Controller
	registry *hub.Registry
	hub      *hub.Hub
	logger   *slog.Logger
}

// NewGameHandler creates a new game handler
func NewGameHandler(sessions *session.Controller, registry *hub.Registry, h *hub.Hub, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		sessions: sessions,
		registry: registry,
		hub:      h,
		logger:   logger.With(slog.String("component", "game-handler")),
	}
}

// Create handles POST /games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, apierr.NewInvalidRequestError("Invalid JSON body"))
		return
	}
	if req.Players < 0 || req.Rounds < 0 {
		WriteError(w, apierr.NewInvalidRequestError("players and rounds must not be negative"))
		return
	}

	game, err := h.sessions.Create(r.Context(), req.Players, req.Rounds)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(game))
}

// Get handles GET /games/{code}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	code, err := gameCode(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	game, err := h.sessions.Get(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(game))
}

// Join handles POST /games/{code}/join
func (h *GameHandler) Join(w http.ResponseWriter, r *http.Request) {
	code, err := gameCode(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.JoinGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, apierr.NewInvalidRequestError("Invalid JSON body"))
		return
	}

	player, err := h.sessions.Join(r.Context(), code, model.PlayerID(req.Name))
	if err != nil {
		WriteError(w, err)
		return
	}

	// Notify only after the join has committed, so watchers observe
	// joins in commit order
	h.hub.NotifyGame(code, model.PlayerJoinedEvent(player.ID))

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Events handles GET /games/{code}/events
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	code, err := gameCode(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	sse.ServeGame(w, r, h.registry, code)
}

// Watch handles GET /games/{code}/ws
func (h *GameHandler) Watch(w http.ResponseWriter, r *http.Request) {
	code, err := gameCode(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	ws.ServeGame(w, r, h.registry, code, h.logger)
}

// gameCode extracts the game code path variable
func gameCode(r *http.Request) (model.GameCode, error) {
	raw := mux.Vars(r)["code"]
	code, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierr.NewInvalidRequestError("Game code must be numeric")
	}
	return model.GameCode(code), nil
}
