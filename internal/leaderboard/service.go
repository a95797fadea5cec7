package leaderboard

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/jornada/internal/club"
	"github.com/mauv0809/jornada/internal/jornada"
	"github.com/mauv0809/jornada/internal/metrics"
)

// NewService creates a new leaderboard Service.
func NewService(players club.ClubStore, sessions jornada.Store, metrics metrics.Metrics) *Service {
	return &Service{
		players:  players,
		sessions: sessions,
		metrics:  metrics,
	}
}

// Leaderboard computes the table over the match history plus the matches of the current
// session, if there is one.
func (s *Service) Leaderboard(ctx context.Context) ([]Row, error) {
	start := time.Now()
	defer func() {
		s.metrics.IncLeaderboardBuilds()
		s.metrics.ObserveLeaderboardDuration(time.Since(start).Seconds())
	}()

	players, err := s.players.LoadPlayers()
	if err != nil {
		return nil, fmt.Errorf("failed to load players: %w", err)
	}
	matches, err := s.sessions.LoadMatchesHistory()
	if err != nil {
		return nil, fmt.Errorf("failed to load match history: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	session, err := s.sessions.LoadCurrentSession()
	if err != nil {
		return nil, fmt.Errorf("failed to load current session: %w", err)
	}
	if session != nil {
		matches = append(matches, session.Matches...)
	}

	rows := Calculate(players, matches)
	log.Debug("Built leaderboard", "players", len(rows), "matches", len(matches))
	return rows, nil
}
