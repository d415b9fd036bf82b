package sse

import (
	"net/http"
	"strconv"
	"time"

	"partyhub/internal/hub"
	"partyhub/internal/model"
)

const (
	// Time between keepalive comments
	pingPeriod = 30 * time.Second

	// Reconnect delay hint sent to clients
	retryMillis = 3000
)

// ServeChat streams chat events to one SSE connection. The first event is
// the welcome carrying the subscriber's own id; subsequent events are the
// broadcast notices.
func ServeChat(w http.ResponseWriter, r *http.Request, registry *hub.Registry) {
	id, ch := registry.Register(hub.DefaultBuffer)
	serve(w, r, registry, id, ch)
}

// ServeGame streams join notifications for one game to an SSE connection
func ServeGame(w http.ResponseWriter, r *http.Request, registry *hub.Registry, code model.GameCode) {
	id, ch := registry.RegisterForGame(code, hub.DefaultBuffer)
	serve(w, r, registry, id, ch)
}

func serve(w http.ResponseWriter, r *http.Request, registry *hub.Registry, id model.SubscriberID, ch <-chan model.Event) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		registry.Unregister(id)
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	// Explicit teardown plus the registry's prune-on-failed-send cover the
	// case where either path is skipped.
	defer registry.Unregister(id)

	_, _ = w.Write([]byte("retry: " + strconv.Itoa(retryMillis) + "\n\n"))
	flusher.Flush()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				// Pruned by the registry
				return
			}
			if _, err := w.Write(FormatEvent(ev)); err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			// Client disconnected
			return
		}
	}
}

// FormatEvent renders an outbound event as an SSE message.
// Welcome events use the "client" event name so the page can learn its own
// id; join notifications use the explicit "message" name; notices are bare
// data lines handled by the default onmessage listener.
func FormatEvent(ev model.Event) []byte {
	switch ev.Kind {
	case model.EventWelcome:
		return formatMessage("client", strconv.FormatUint(uint64(ev.SubscriberID), 10))
	case model.EventPlayerJoined:
		return formatMessage("message", ev.Text)
	default:
		return formatMessage("", ev.Text)
	}
}

// formatMessage builds a wire-format SSE message. An empty event name is
// omitted; multi-line data gets a "data: " prefix per line.
func formatMessage(eventName, data string) []byte {
	msg := ""
	if eventName != "" {
		msg = "event: " + eventName + "\n"
	}
	for _, line := range splitLines(data) {
		msg += "data: " + line + "\n"
	}
	msg += "\n"
	return []byte(msg)
}

// splitLines splits a string into lines, handling various line endings
func splitLines(s string) []string {
	var lines []string
	var current string
	for _, r := range s {
		if r == '\n' {
			lines = append(lines, current)
			current = ""
		} else if r != '\r' {
			current += string(r)
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		lines = append(lines, "")
	}
	return lines
}
