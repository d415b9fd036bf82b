package session

import (
	"context"
	"log/slog"
	"sync"

	"partyhub/internal/dependencies/clock"
	"partyhub/internal/dependencies/random"
	"partyhub/internal/model"
	"partyhub/internal/storage"
)

const (
	// Game codes are 4-digit numbers in [codeMin, codeMin+codeSpan)
	codeMin  = 1000
	codeSpan = 9000
)

// Controller manages game lifecycle: creation, lookup, and player joins.
//
// All mutations are serialized by a single controller-level mutex so the
// check-then-insert cycles in Create and Join are atomic. The lock is
// never held while a broadcast runs; callers notify subscribers only
// after the mutation returns.
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger

	// mu guards the read-modify-write cycles in Create and Join
	mu sync.Mutex
}

// NewController creates a new session Controller
func NewController(storage storage.Storage, clock clock.Clock, random random.Random, logger *slog.Logger) *Controller {
	return &Controller{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger.With(slog.String("component", "session")),
	}
}

// Create allocates a fresh game code, constructs an empty active game, and
// stores it. The allocation and the save happen under the controller
// mutex: of two racing creates that draw the same code, the second
// observes the first's save and redraws. totalPlayers bounds joins (zero
// means unbounded); totalRounds is informational until round mechanics
// exist.
func (c *Controller) Create(ctx context.Context, totalPlayers, totalRounds int) (*model.Game, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	code, err := c.allocateCode(ctx)
	if err != nil {
		return nil, err
	}

	game := model.NewGame(code, totalPlayers, totalRounds, c.clock.Now())
	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("game created",
		slog.Int("code", int(code)),
		slog.Int("total_players", totalPlayers),
		slog.Int("total_rounds", totalRounds))

	return game, nil
}

// Get returns a snapshot of the game with the given code
func (c *Controller) Get(ctx context.Context, code model.GameCode) (*model.Game, error) {
	return c.storage.GetGame(ctx, code)
}

// Join adds a player to a game. The duplicate check and the insert happen
// as one atomic step: of two racing joins with the same id, exactly one
// succeeds and the other gets ErrPlayerExists.
func (c *Controller) Join(ctx context.Context, code model.GameCode, playerID model.PlayerID) (*model.Player, error) {
	if playerID == "" {
		return nil, model.ErrMissingPlayerName
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	game, err := c.storage.GetGame(ctx, code)
	if err != nil {
		return nil, err
	}

	if game.Status == model.GameStatusFinished {
		return nil, model.ErrGameFinished
	}
	if game.HasPlayer(playerID) {
		return nil, model.ErrPlayerExists
	}
	if game.IsFull() {
		return nil, model.ErrGameFull
	}

	player := model.NewPlayer(playerID)
	game.Players[playerID] = player

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("player joined",
		slog.Int("code", int(code)),
		slog.String("player", string(playerID)),
		slog.Int("players", len(game.Players)))

	return &player, nil
}

// allocateCode draws random 4-digit codes until one is free. Codes only
// need to be unique among active games. Callers must hold c.mu so the
// free code stays free until the caller's save.
func (c *Controller) allocateCode(ctx context.Context) (model.GameCode, error) {
	for {
		code := model.GameCode(codeMin + c.random.Intn(codeSpan))
		exists, err := c.storage.GameExists(ctx, code)
		if err != nil {
			return 0, err
		}
		if !exists {
			return code, nil
		}
	}
}
