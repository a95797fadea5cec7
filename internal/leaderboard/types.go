package leaderboard

import (
	"github.com/mauv0809/jornada/internal/club"
	"github.com/mauv0809/jornada/internal/jornada"
	"github.com/mauv0809/jornada/internal/metrics"
)

// Row is one player's aggregate line in the leaderboard.
type Row struct {
	Rank     int    `json:"rank"`
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Pts      int    `json:"pts"`
	GP       int    `json:"gp"`
	W        int    `json:"w"`
	D        int    `json:"d"`
	L        int    `json:"l"`
	GD       int    `json:"gd"`
}

// Service builds the leaderboard from the stored roster, history and live session.
type Service struct {
	players  club.ClubStore
	sessions jornada.Store
	metrics  metrics.Metrics
}
