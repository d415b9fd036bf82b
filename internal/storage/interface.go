package storage

import (
	"context"

	"partyhub/internal/model"
)

// Storage defines the interface for game persistence.
//
// Implementations must return deep copies from Get so callers can treat
// results as snapshots; atomicity of read-modify-write cycles is the
// session controller's responsibility.
type Storage interface {
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, code model.GameCode) (*model.Game, error)
	DeleteGame(ctx context.Context, code model.GameCode) error
	GameExists(ctx context.Context, code model.GameCode) (bool, error)
}
