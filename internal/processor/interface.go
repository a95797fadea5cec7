package processor

import (
	"context"

	"github.com/mauv0809/jornada/internal/jornada"
	"github.com/mauv0809/jornada/internal/leaderboard"
	"github.com/mauv0809/jornada/internal/notifier"
)

// Jornadas is the part of the jornada service the processor drives.
type Jornadas interface {
	FinishJornada() (jornada.FinishSummary, error)
}

// Leaderboard builds the current table.
type Leaderboard interface {
	Leaderboard(ctx context.Context) ([]leaderboard.Row, error)
}

// Notifier defines the notification operations required by the processor.
type Notifier interface {
	notifier.Notifier
}
