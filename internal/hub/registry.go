package hub

import (
	"log/slog"
	"sync"

	"partyhub/internal/dependencies/ident"
	"partyhub/internal/model"
)

// DefaultBuffer is the outbound channel capacity used by the stream
// adapters. A subscriber that falls this far behind is treated as dead.
const DefaultBuffer = 256

// Subscriber is a read-only view of a registered subscriber, used by
// broadcast predicates.
type Subscriber struct {
	ID model.SubscriberID
	// Interest is the game the subscriber watches, or nil for
	// broadcast-to-all (chat) subscribers.
	Interest *model.GameCode
}

type subscriber struct {
	id       model.SubscriberID
	interest *model.GameCode
	ch       chan model.Event
}

func (s *subscriber) view() Subscriber {
	return Subscriber{ID: s.id, Interest: s.interest}
}

// send attempts a non-blocking delivery. False means the buffer is full
// and the reader has been abandoned or hopelessly lags.
func (s *subscriber) send(ev model.Event) bool {
	select {
	case s.ch <- ev:
		return true
	default:
		return false
	}
}

// Registry owns the mapping from subscriber id to outbound channel.
//
// One mutex covers the whole map. Sends are non-blocking, so lock hold
// time is bounded by the number of subscribers, never by reader speed.
// Channels are closed only here, and only after removal from the map, so
// no send can ever hit a closed channel.
type Registry struct {
	mu     sync.Mutex
	subs   map[model.SubscriberID]*subscriber
	ids    ident.Sequence
	logger *slog.Logger
}

// NewRegistry creates an empty Registry drawing ids from the given sequence
func NewRegistry(ids ident.Sequence, logger *slog.Logger) *Registry {
	return &Registry{
		subs:   make(map[model.SubscriberID]*subscriber),
		ids:    ids,
		logger: logger.With(slog.String("component", "registry")),
	}
}

// Register adds a broadcast-to-all (chat) subscriber and returns its id and
// receive channel. The first event on the channel is always the Welcome
// carrying the subscriber's own id; it is enqueued before the subscriber
// becomes a delivery target, so no broadcast can precede it.
func (r *Registry) Register(buffer int) (model.SubscriberID, <-chan model.Event) {
	return r.register(nil, buffer, true)
}

// RegisterForGame adds a subscriber interested in a single game. Game
// streams carry only game notifications, so no welcome is sent.
func (r *Registry) RegisterForGame(code model.GameCode, buffer int) (model.SubscriberID, <-chan model.Event) {
	return r.register(&code, buffer, false)
}

func (r *Registry) register(interest *model.GameCode, buffer int, welcome bool) (model.SubscriberID, <-chan model.Event) {
	// The welcome goes into the fresh channel before anyone reads from
	// it, so it needs at least one buffered slot.
	if welcome && buffer < 1 {
		buffer = 1
	}

	id := model.SubscriberID(r.ids.Next())
	sub := &subscriber{
		id:       id,
		interest: interest,
		ch:       make(chan model.Event, buffer),
	}
	if welcome {
		sub.ch <- model.WelcomeEvent(id)
	}

	r.mu.Lock()
	r.subs[id] = sub
	count := len(r.subs)
	r.mu.Unlock()

	r.logger.Info("subscriber registered",
		slog.Uint64("subscriber_id", uint64(id)),
		slog.Int("total_subscribers", count))
	return id, sub.ch
}

// Unregister removes a subscriber and closes its channel. It is idempotent
// and safe to call for ids already pruned by a failed delivery.
func (r *Registry) Unregister(id model.SubscriberID) {
	r.mu.Lock()
	sub, ok := r.subs[id]
	if ok {
		delete(r.subs, id)
	}
	count := len(r.subs)
	r.mu.Unlock()

	if !ok {
		return
	}
	close(sub.ch)
	r.logger.Info("subscriber unregistered",
		slog.Uint64("subscriber_id", uint64(id)),
		slog.Int("total_subscribers", count))
}

// DeliverTo attempts a non-blocking send to one subscriber. It returns
// false if the id is unknown or the send fails; on failure the subscriber
// is removed, so callers need no follow-up Unregister.
func (r *Registry) DeliverTo(id model.SubscriberID, ev model.Event) bool {
	r.mu.Lock()
	sub, ok := r.subs[id]
	if ok && !sub.send(ev) {
		delete(r.subs, id)
		ok = false
		defer close(sub.ch)
	}
	r.mu.Unlock()

	return ok
}

// Broadcast delivers ev to every subscriber matching pred, pruning any
// whose delivery fails. The whole retain pass runs under the lock so each
// broadcast sees a consistent snapshot: a subscriber added mid-broadcast
// is never half-notified and one removed is never double-notified.
func (r *Registry) Broadcast(pred func(Subscriber) bool, ev model.Event) {
	var pruned []*subscriber

	r.mu.Lock()
	for id, sub := range r.subs {
		if !pred(sub.view()) {
			continue
		}
		if !sub.send(ev) {
			delete(r.subs, id)
			pruned = append(pruned, sub)
		}
	}
	r.mu.Unlock()

	for _, sub := range pruned {
		close(sub.ch)
		r.logger.Warn("subscriber pruned - delivery failed",
			slog.Uint64("subscriber_id", uint64(sub.id)))
	}
}

// Len returns the number of registered subscribers
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}
