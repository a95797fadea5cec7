package notifier

import (
	"github.com/mauv0809/jornada/internal/jornada"
	"github.com/mauv0809/jornada/internal/leaderboard"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For finished jornadas
	SendJornadaSummary(summary jornada.FinishSummary, table []leaderboard.Row, dryRun bool) error
	// For slash commands
	SendLeaderboard(table []leaderboard.Row, dryRun bool) error

	// For formatting responses for slash commands
	FormatLeaderboardResponse(table []leaderboard.Row) (any, error)
}
