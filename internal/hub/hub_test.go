package hub

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partyhub/internal/dependencies/ident"
	"partyhub/internal/model"
	"partyhub/internal/testutil"
)

func newHub() (*Hub, *Registry) {
	r := NewRegistry(ident.New(), testutil.NopLogger())
	return NewHub(r, testutil.NopLogger()), r
}

func drainWelcome(t *testing.T, ch <-chan model.Event) {
	t.Helper()
	ev := <-ch
	require.Equal(t, model.EventWelcome, ev.Kind)
}

func TestNotifyGameReachesOnlyInterested(t *testing.T) {
	h, r := newHub()

	_, watching := r.RegisterForGame(1234, 8)
	_, elsewhere := r.RegisterForGame(5678, 8)
	_, chatter := r.Register(8)
	drainWelcome(t, chatter)

	h.NotifyGame(1234, model.PlayerJoinedEvent("bob"))

	assert.Equal(t, "bob", (<-watching).Text)
	select {
	case ev := <-elsewhere:
		t.Fatalf("wrong game notified: %v", ev)
	case ev := <-chatter:
		t.Fatalf("chat subscriber notified of game event: %v", ev)
	default:
	}
}

func TestNotifyGameUnknownCodeIsHarmless(t *testing.T) {
	h, r := newHub()
	_, ch := r.RegisterForGame(1234, 8)

	// The session may have vanished; nobody is watching that code
	h.NotifyGame(9999, model.PlayerJoinedEvent("bob"))

	select {
	case ev := <-ch:
		t.Fatalf("unexpected event %v", ev)
	default:
	}
}

func TestNotifyAllExcludesSender(t *testing.T) {
	h, r := newHub()

	senderID, senderCh := r.Register(8)
	drainWelcome(t, senderCh)

	others := make([]<-chan model.Event, 0, 3)
	for i := 0; i < 3; i++ {
		_, ch := r.Register(8)
		drainWelcome(t, ch)
		others = append(others, ch)
	}

	h.NotifyAll(model.NoticeEvent("<User#1>: hi"), &senderID)

	for i, ch := range others {
		select {
		case ev := <-ch:
			assert.Equal(t, "<User#1>: hi", ev.Text, "subscriber %d", i)
		default:
			t.Fatalf("subscriber %d received nothing", i)
		}
	}
	select {
	case ev := <-senderCh:
		t.Fatalf("sender received its own message: %v", ev)
	default:
	}
}

func TestNotifyAllSkipsGameStreams(t *testing.T) {
	h, r := newHub()

	senderID, senderCh := r.Register(8)
	drainWelcome(t, senderCh)
	_, chatCh := r.Register(8)
	drainWelcome(t, chatCh)
	_, gameCh := r.RegisterForGame(1234, 8)

	h.NotifyAll(model.NoticeEvent("<User#1>: hi"), &senderID)

	assert.Equal(t, "<User#1>: hi", (<-chatCh).Text)
	select {
	case ev := <-gameCh:
		t.Fatalf("game stream received chat traffic: %v", ev)
	default:
	}

	// Even with no exclusion, game streams stay silent
	h.NotifyAll(model.NoticeEvent("announcement"), nil)
	assert.Equal(t, "announcement", (<-senderCh).Text)
	select {
	case ev := <-gameCh:
		t.Fatalf("game stream received chat traffic: %v", ev)
	default:
	}
}

func TestNotifyAllNilExcludeReachesEveryone(t *testing.T) {
	h, r := newHub()

	chans := make([]<-chan model.Event, 0, 3)
	for i := 0; i < 3; i++ {
		_, ch := r.Register(8)
		drainWelcome(t, ch)
		chans = append(chans, ch)
	}

	h.NotifyAll(model.NoticeEvent("announcement"), nil)

	for _, ch := range chans {
		assert.Equal(t, "announcement", (<-ch).Text)
	}
}

func TestSequentialNotifiesObservedInOrder(t *testing.T) {
	h, r := newHub()
	_, ch := r.RegisterForGame(1234, 16)

	for i := 0; i < 5; i++ {
		h.NotifyGame(1234, model.PlayerJoinedEvent(model.PlayerID(fmt.Sprintf("player-%d", i))))
	}

	for i := 0; i < 5; i++ {
		assert.Equal(t, fmt.Sprintf("player-%d", i), (<-ch).Text)
	}
}

func TestNotifyGamePrunesDeadWithoutError(t *testing.T) {
	h, r := newHub()

	_, liveCh := r.RegisterForGame(1234, 8)
	r.RegisterForGame(1234, 0) // dead: zero buffer, no reader

	h.NotifyGame(1234, model.PlayerJoinedEvent("bob"))

	assert.Equal(t, "bob", (<-liveCh).Text)
	assert.Equal(t, 1, r.Len())
}
