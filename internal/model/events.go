package model

// SubscriberID uniquely identifies a streaming subscriber for the lifetime
// of the process. Ids are assigned monotonically and never reused.
type SubscriberID uint64

// EventKind identifies the type of an outbound event
type EventKind string

const (
	// EventWelcome is sent exactly once, to a newly connected chat
	// subscriber, carrying its own assigned id
	EventWelcome EventKind = "welcome"

	// EventNotice is a human-readable broadcast line (a chat message)
	EventNotice EventKind = "notice"

	// EventPlayerJoined announces the name of a player who joined a game
	EventPlayerJoined EventKind = "player_joined"
)

// Event is an outbound notification delivered to subscribers.
// Welcome events carry SubscriberID; Notice and PlayerJoined carry Text.
type Event struct {
	Kind         EventKind    `json:"kind"`
	SubscriberID SubscriberID `json:"subscriber_id,omitempty"`
	Text         string       `json:"text,omitempty"`
}

// WelcomeEvent creates the once-only event carrying a subscriber's own id
func WelcomeEvent(id SubscriberID) Event {
	return Event{Kind: EventWelcome, SubscriberID: id}
}

// NoticeEvent creates a chat broadcast event
func NoticeEvent(text string) Event {
	return Event{Kind: EventNotice, Text: text}
}

// PlayerJoinedEvent creates a game broadcast event for a joining player
func PlayerJoinedEvent(id PlayerID) Event {
	return Event{Kind: EventPlayerJoined, Text: string(id)}
}
