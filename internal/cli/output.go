package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case Game:
		o.printGame(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Points uint   `json:"points"`
}

// Round response type
type Round struct {
	Order   int    `json:"order"`
	Status  string `json:"status"`
	Caption string `json:"caption,omitempty"`
}

// Game response type
type Game struct {
	Code         int               `json:"code"`
	Players      map[string]Player `json:"players"`
	Status       string            `json:"status"`
	TotalPlayers int               `json:"total_players"`
	TotalRounds  int               `json:"total_rounds"`
	Rounds       []Round           `json:"rounds,omitempty"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s\n", p.ID)
	fmt.Printf("Status: %s\n", p.Status)
	fmt.Printf("Points: %d\n", p.Points)
}

func (o *Output) printGame(g Game) {
	fmt.Printf("Game: %d\n", g.Code)
	fmt.Printf("Status: %s\n", g.Status)
	fmt.Printf("Rounds: %d\n", g.TotalRounds)
	fmt.Printf("Players (%d/%d):\n", len(g.Players), g.TotalPlayers)

	names := make([]string, 0, len(g.Players))
	for name := range g.Players {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p := g.Players[name]
		fmt.Printf("  - %s - %s, %d points\n", name, p.Status, p.Points)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
