package response

import (
	"partyhub/internal/model"
)

// Player represents a player in API responses
type Player struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Points uint   `json:"points"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:     string(p.ID),
		Status: string(p.Status),
		Points: p.Points,
	}
}

// Round represents a round in API responses
type Round struct {
	Order   int    `json:"order"`
	Status  string `json:"status"`
	Caption string `json:"caption"`
}

// Game represents a game in API responses
type Game struct {
	Code         int               `json:"code"`
	Players      map[string]Player `json:"players"`
	Status       string            `json:"status"`
	TotalPlayers int               `json:"total_players"`
	TotalRounds  int               `json:"total_rounds"`
	Rounds       []Round           `json:"rounds"`
}

// GameFromModel converts a model.Game to a response Game
func GameFromModel(g *model.Game) Game {
	players := make(map[string]Player, len(g.Players))
	for id := range g.Players {
		p := g.Players[id]
		players[string(id)] = PlayerFromModel(&p)
	}

	rounds := make([]Round, len(g.Rounds))
	for i, r := range g.Rounds {
		rounds[i] = Round{
			Order:   r.Order,
			Status:  string(r.Status),
			Caption: r.Caption,
		}
	}

	return Game{
		Code:         int(g.Code),
		Players:      players,
		Status:       string(g.Status),
		TotalPlayers: g.TotalPlayers,
		TotalRounds:  g.TotalRounds,
		Rounds:       rounds,
	}
}
