package redis

import (
	"fmt"

	"partyhub/internal/model"
)

// Key prefix for all hub-related data
const keyPrefix = "partyhub"

// gameKey returns the Redis key for a Game
func gameKey(code model.GameCode) string {
	return fmt.Sprintf("%s:game:%d", keyPrefix, code)
}
