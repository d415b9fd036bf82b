package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"partyhub/internal/hub"
	"partyhub/internal/model"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Event streams are read-only; origin checks add nothing here
		return true
	},
}

// ServeChat upgrades the connection and streams chat events (welcome
// first) as JSON text messages.
func ServeChat(w http.ResponseWriter, r *http.Request, registry *hub.Registry, logger *slog.Logger) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}
	id, ch := registry.Register(hub.DefaultBuffer)
	stream(conn, registry, id, ch, logger)
}

// ServeGame upgrades the connection and streams one game's join
// notifications as JSON text messages.
func ServeGame(w http.ResponseWriter, r *http.Request, registry *hub.Registry, code model.GameCode, logger *slog.Logger) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}
	id, ch := registry.RegisterForGame(code, hub.DefaultBuffer)
	stream(conn, registry, id, ch, logger)
}

func stream(conn *websocket.Conn, registry *hub.Registry, id model.SubscriberID, ch <-chan model.Event, logger *slog.Logger) {
	defer func() {
		registry.Unregister(id)
		_ = conn.Close()
	}()

	// Discard inbound frames so pings and close messages are processed;
	// a read error means the peer is gone, so tear down the subscription
	// rather than waiting for the next failed write.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				registry.Unregister(id)
				return
			}
		}
	}()

	for ev := range ch {
		data, err := json.Marshal(ev)
		if err != nil {
			logger.Error("websocket event marshal failed", slog.Any("error", err))
			continue
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	// Channel closed: the registry pruned this subscriber
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
}
