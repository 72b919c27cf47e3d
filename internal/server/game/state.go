package game

import (
	"time"

	"shogichess/internal/hybrid"
)

// GameState is what the store keeps per game.
type GameState struct {
	ID        string       `json:"id"`
	Game      *hybrid.Game `json:"game"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
