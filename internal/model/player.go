package model

// PlayerID uniquely identifies a player within a game.
// Players are keyed by the name the client supplies at join time.
type PlayerID string

// PlayerStatus represents a player's readiness within a game
type PlayerStatus string

const (
	PlayerStatusJoined PlayerStatus = "Joined"
	PlayerStatusReady  PlayerStatus = "Ready"
)

// Player represents a game participant
type Player struct {
	ID     PlayerID     `json:"id"`
	Status PlayerStatus `json:"status"`
	Points uint         `json:"points"`
}

// NewPlayer creates a player in the Joined state with no points
func NewPlayer(id PlayerID) Player {
	return Player{
		ID:     id,
		Status: PlayerStatusJoined,
		Points: 0,
	}
}
