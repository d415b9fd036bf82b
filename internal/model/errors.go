package model

import "errors"

// Common errors used across the application
var (
	// Game errors
	ErrGameNotFound = errors.New("game not found")
	ErrGameFull     = errors.New("game is full")
	ErrGameFinished = errors.New("game is finished")

	// Player errors
	ErrPlayerExists      = errors.New("player already exists in game")
	ErrMissingPlayerName = errors.New("player name is required")
)
