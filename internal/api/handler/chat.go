package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/gorilla/mux"

	"partyhub/internal/api/apierr"
	"partyhub/internal/hub"
	"partyhub/internal/model"
	"partyhub/internal/web/sse"
	"partyhub/internal/web/ws"
)

// maxChatMessageBytes bounds the raw chat message body
const maxChatMessageBytes = 500

// ChatHandler handles the chat endpoints
type ChatHandler struct {
	registry *hub.Registry
	hub      *hub.Hub
	logger   *slog.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(registry *hub.Registry, h *hub.Hub, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		registry: registry,
		hub:      h,
		logger:   logger.With(slog.String("component", "chat-handler")),
	}
}

// Send handles POST /chat/{subscriber_id}. The body is raw UTF-8 text; the
// message is broadcast to every subscriber except the sender, who already
// rendered it locally.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	rawID := mux.Vars(r)["subscriber_id"]
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		WriteError(w, apierr.NewInvalidRequestError("Subscriber id must be numeric"))
		return
	}
	senderID := model.SubscriberID(id)

	r.Body = http.MaxBytesReader(w, r.Body, maxChatMessageBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		WriteError(w, apierr.NewInvalidRequestError("Message must be at most 500 bytes"))
		return
	}
	if !utf8.Valid(body) {
		WriteError(w, apierr.NewInvalidRequestError("Message must be valid UTF-8"))
		return
	}

	line := fmt.Sprintf("<User#%d>: %s", senderID, body)
	h.hub.NotifyAll(model.NoticeEvent(line), &senderID)

	w.WriteHeader(http.StatusOK)
}

// Events handles GET /chat/events
func (h *ChatHandler) Events(w http.ResponseWriter, r *http.Request) {
	sse.ServeChat(w, r, h.registry)
}

// Watch handles GET /chat/ws
func (h *ChatHandler) Watch(w http.ResponseWriter, r *http.Request) {
	ws.ServeChat(w, r, h.registry, h.logger)
}
