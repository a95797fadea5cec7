package notifier

import (
	"sync"

	"github.com/mauv0809/jornada/internal/jornada"
	"github.com/mauv0809/jornada/internal/leaderboard"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendJornadaSummaryCalls []struct {
		Summary jornada.FinishSummary
		Table   []leaderboard.Row
		DryRun  bool
	}
	SendLeaderboardCalls [][]leaderboard.Row

	// Spies
	SendJornadaSummaryFunc        func(summary jornada.FinishSummary, table []leaderboard.Row, dryRun bool) error
	FormatLeaderboardResponseFunc func(table []leaderboard.Row) (any, error)

	LastLeaderboardResponse any
}

var _ Notifier = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendJornadaSummaryCalls = nil
	m.SendLeaderboardCalls = nil
	m.LastLeaderboardResponse = nil
}

func (m *Mock) SendJornadaSummary(summary jornada.FinishSummary, table []leaderboard.Row, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendJornadaSummaryCalls = append(m.SendJornadaSummaryCalls, struct {
		Summary jornada.FinishSummary
		Table   []leaderboard.Row
		DryRun  bool
	}{summary, table, dryRun})
	if m.SendJornadaSummaryFunc != nil {
		return m.SendJornadaSummaryFunc(summary, table, dryRun)
	}
	return nil
}

func (m *Mock) SendLeaderboard(table []leaderboard.Row, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, table)
	return nil
}

func (m *Mock) FormatLeaderboardResponse(table []leaderboard.Row) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatLeaderboardResponseFunc != nil {
		resp, err := m.FormatLeaderboardResponseFunc(table)
		m.LastLeaderboardResponse = resp
		return resp, err
	}
	return "formatted_leaderboard", nil
}
