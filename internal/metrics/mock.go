package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                   sync.Mutex
	jornadasStarted      int
	jornadasFinished     int
	matchesArchived      int
	matchesDropped       int
	resultsRecorded      int
	leaderboardBuilds    int
	leaderboardDurations []float64
	slackNotifSent       int
	slackNotifFailed     int
	eventsPublished      int
	eventsFailed         int
	startupTime          float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		leaderboardDurations: make([]float64, 0),
	}
}

func (m *Mock) IncJornadasStarted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jornadasStarted++
}

func (m *Mock) IncJornadasFinished() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jornadasFinished++
}

func (m *Mock) AddMatchesArchived(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesArchived += n
}

func (m *Mock) AddMatchesDropped(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesDropped += n
}

func (m *Mock) IncResultsRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resultsRecorded++
}

func (m *Mock) IncLeaderboardBuilds() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaderboardBuilds++
}

func (m *Mock) ObserveLeaderboardDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaderboardDurations = append(m.leaderboardDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) IncEventsPublished() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsPublished++
}

func (m *Mock) IncEventsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// JornadasStarted returns the number of times IncJornadasStarted was called.
func (m *Mock) JornadasStarted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.jornadasStarted
}

// JornadasFinished returns the number of times IncJornadasFinished was called.
func (m *Mock) JornadasFinished() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.jornadasFinished
}

// MatchesArchived returns the sum passed to AddMatchesArchived.
func (m *Mock) MatchesArchived() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesArchived
}

// MatchesDropped returns the sum passed to AddMatchesDropped.
func (m *Mock) MatchesDropped() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesDropped
}

// ResultsRecorded returns the number of times IncResultsRecorded was called.
func (m *Mock) ResultsRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resultsRecorded
}

// LeaderboardBuilds returns the number of times IncLeaderboardBuilds was called.
func (m *Mock) LeaderboardBuilds() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.leaderboardBuilds
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// EventsPublished returns the number of times IncEventsPublished was called.
func (m *Mock) EventsPublished() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsPublished
}

// EventsFailed returns the number of times IncEventsFailed was called.
func (m *Mock) EventsFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsFailed
}
