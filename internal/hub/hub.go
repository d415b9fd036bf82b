package hub

import (
	"log/slog"

	"partyhub/internal/model"
)

// Hub bridges session mutations to subscriber deliveries. Handlers call
// Notify* strictly after the corresponding store mutation commits; the hub
// never touches session state itself, so the store lock and the registry
// lock are never held together.
type Hub struct {
	registry *Registry
	logger   *slog.Logger
}

// NewHub creates a Hub over the given registry
func NewHub(registry *Registry, logger *slog.Logger) *Hub {
	return &Hub{
		registry: registry,
		logger:   logger.With(slog.String("component", "hub")),
	}
}

// NotifyGame delivers ev to every subscriber watching the given game.
// A vanished game simply matches no subscribers; delivery failures are
// absorbed by pruning and never surface to the caller.
func (h *Hub) NotifyGame(code model.GameCode, ev model.Event) {
	h.registry.Broadcast(func(s Subscriber) bool {
		return s.Interest != nil && *s.Interest == code
	}, ev)
}

// NotifyAll delivers ev to every chat subscriber except the excluded one,
// so a sender does not echo its own message back to itself. Pass nil to
// reach every chat subscriber. Game streams carry only their game's
// notifications and never see chat traffic.
func (h *Hub) NotifyAll(ev model.Event, exclude *model.SubscriberID) {
	h.registry.Broadcast(func(s Subscriber) bool {
		return s.Interest == nil && (exclude == nil || s.ID != *exclude)
	}, ev)
}
