package club

import (
	"database/sql"
	"errors"
	"sync"
)

// ErrPlayerNotFound is returned when a player id is not in the roster.
var ErrPlayerNotFound = errors.New("player not found")

// store handles all database operations for the player pool.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Player is a member of the player pool. The id never changes; the name can.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
