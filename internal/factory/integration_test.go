package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"partyhub/internal/hub"
	"partyhub/internal/model"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) drain(ch <-chan model.Event) []model.Event {
	var events []model.Event
	for {
		select {
		case ev := <-ch:
			events = append(events, ev)
		default:
			return events
		}
	}
}

// Test: Complete session flow from game creation to join broadcasts
func (s *IntegrationSuite) TestCompleteSessionFlow() {
	s.app.MockRandom.QueueIntn(234)

	// Step 1: Create a game
	game, err := s.app.SessionController.Create(s.ctx, 4, 3)
	s.Require().NoError(err)
	s.Equal(model.GameCode(1234), game.Code)
	s.Equal(4, game.TotalPlayers)

	// Step 2: A watcher subscribes to the game stream
	_, watcher := s.app.Registry.RegisterForGame(game.Code, hub.DefaultBuffer)

	// Step 3: Players join and each commit is announced
	alice, err := s.app.SessionController.Join(s.ctx, game.Code, "alice")
	s.Require().NoError(err)
	s.app.Hub.NotifyGame(game.Code, model.PlayerJoinedEvent(alice.ID))

	bob, err := s.app.SessionController.Join(s.ctx, game.Code, "bob")
	s.Require().NoError(err)
	s.app.Hub.NotifyGame(game.Code, model.PlayerJoinedEvent(bob.ID))

	events := s.drain(watcher)
	s.Require().Len(events, 2)
	s.Equal("alice", events[0].Text)
	s.Equal("bob", events[1].Text)

	// Step 4: Duplicate join is rejected and nothing is announced
	_, err = s.app.SessionController.Join(s.ctx, game.Code, "alice")
	s.Require().ErrorIs(err, model.ErrPlayerExists)
	s.Empty(s.drain(watcher))

	// Step 5: Stored state reflects both joins
	got, err := s.app.SessionController.Get(s.ctx, game.Code)
	s.Require().NoError(err)
	s.Len(got.Players, 2)
	s.True(got.HasPlayer("alice"))
	s.True(got.HasPlayer("bob"))
}

// Test: Capacity is enforced once the player limit is reached
func (s *IntegrationSuite) TestGameFillsUp() {
	s.app.MockRandom.QueueIntn(0)

	game, err := s.app.SessionController.Create(s.ctx, 2, 1)
	s.Require().NoError(err)

	_, err = s.app.SessionController.Join(s.ctx, game.Code, "alice")
	s.Require().NoError(err)
	_, err = s.app.SessionController.Join(s.ctx, game.Code, "bob")
	s.Require().NoError(err)

	_, err = s.app.SessionController.Join(s.ctx, game.Code, "carol")
	s.Require().ErrorIs(err, model.ErrGameFull)
}

// Test: Chat broadcast reaches everyone except the sender
func (s *IntegrationSuite) TestChatExcludesSender() {
	aliceID, aliceCh := s.app.Registry.Register(hub.DefaultBuffer)
	bobID, bobCh := s.app.Registry.Register(hub.DefaultBuffer)

	// Both receive a welcome with their own id
	aliceWelcome := <-aliceCh
	s.Equal(model.EventWelcome, aliceWelcome.Kind)
	s.Equal(aliceID, aliceWelcome.SubscriberID)
	bobWelcome := <-bobCh
	s.Equal(bobID, bobWelcome.SubscriberID)

	s.app.Hub.NotifyAll(model.NoticeEvent("<User#1>: hello"), &aliceID)

	s.Empty(s.drain(aliceCh))
	events := s.drain(bobCh)
	s.Require().Len(events, 1)
	s.Equal("<User#1>: hello", events[0].Text)
}
