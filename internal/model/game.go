package model

import "time"

// GameCode is the short human-typeable code used to join a game.
// Codes are unique among active games only; a removed game's code may be
// handed out again.
type GameCode int

// GameStatus represents the lifecycle state of a game
type GameStatus string

const (
	GameStatusActive   GameStatus = "Active"
	GameStatusFinished GameStatus = "Finished"
)

// RoundStatus represents the lifecycle state of a single round
type RoundStatus string

const (
	RoundStatusNotStarted RoundStatus = "NotStarted"
	RoundStatusPresenting RoundStatus = "Presenting"
	RoundStatusVoting     RoundStatus = "Voting"
	RoundStatusFinished   RoundStatus = "Finished"
)

// Round is one round of play. Round mechanics are not implemented yet;
// games carry an empty round list, but storage and eviction must not
// assume it stays that way.
type Round struct {
	Order   int         `json:"order"`
	Status  RoundStatus `json:"status"`
	Caption string      `json:"caption"`
}

// Game is a joinable session: a chat room or party-game lobby
type Game struct {
	Code         GameCode            `json:"code"`
	Players      map[PlayerID]Player `json:"players"`
	Status       GameStatus          `json:"status"`
	TotalPlayers int                 `json:"total_players"`
	TotalRounds  int                 `json:"total_rounds"`
	Rounds       []Round             `json:"rounds"`
	CreatedAt    time.Time           `json:"created_at"`
}

// NewGame creates an empty active game with the given code and limits
func NewGame(code GameCode, totalPlayers, totalRounds int, createdAt time.Time) *Game {
	return &Game{
		Code:         code,
		Players:      make(map[PlayerID]Player),
		Status:       GameStatusActive,
		TotalPlayers: totalPlayers,
		TotalRounds:  totalRounds,
		Rounds:       []Round{},
		CreatedAt:    createdAt,
	}
}

// HasPlayer reports whether a player with the given id has joined
func (g *Game) HasPlayer(id PlayerID) bool {
	_, ok := g.Players[id]
	return ok
}

// IsFull reports whether the game has reached its player capacity.
// A TotalPlayers of zero means no capacity limit.
func (g *Game) IsFull() bool {
	return g.TotalPlayers > 0 && len(g.Players) >= g.TotalPlayers
}

// Clone returns a deep copy of the game so callers can hand out snapshots
// without aliasing stored state
func (g *Game) Clone() *Game {
	players := make(map[PlayerID]Player, len(g.Players))
	for id, p := range g.Players {
		players[id] = p
	}
	rounds := make([]Round, len(g.Rounds))
	copy(rounds, g.Rounds)

	clone := *g
	clone.Players = players
	clone.Rounds = rounds
	return &clone
}
