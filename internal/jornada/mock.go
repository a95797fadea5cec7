package jornada

import "sync"

// MockStore is an in-memory implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	History []MatchSlot
	Session *Session

	// Spies for method calls
	LoadMatchesHistoryFunc func() ([]MatchSlot, error)
	SaveMatchesHistoryFunc func(matches []MatchSlot) error
	LoadCurrentSessionFunc func() (*Session, error)
	SaveCurrentSessionFunc func(session *Session) error

	// Call records
	SaveMatchesHistoryCalls [][]MatchSlot
	SaveCurrentSessionCalls int
	ClearCurrentSessionCalls int
}

// NewMock creates a new mock instance with the given history and no session.
func NewMock(history ...MatchSlot) *MockStore {
	return &MockStore{History: append([]MatchSlot(nil), history...)}
}

func (m *MockStore) LoadMatchesHistory() ([]MatchSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadMatchesHistoryFunc != nil {
		return m.LoadMatchesHistoryFunc()
	}
	return append([]MatchSlot{}, m.History...), nil
}

func (m *MockStore) SaveMatchesHistory(matches []MatchSlot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveMatchesHistoryCalls = append(m.SaveMatchesHistoryCalls, matches)
	if m.SaveMatchesHistoryFunc != nil {
		return m.SaveMatchesHistoryFunc(matches)
	}
	m.History = append([]MatchSlot(nil), matches...)
	return nil
}

func (m *MockStore) HasMatchesHistory() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.History) > 0, nil
}

func (m *MockStore) HasCurrentSession() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Session != nil, nil
}

func (m *MockStore) LoadCurrentSession() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadCurrentSessionFunc != nil {
		return m.LoadCurrentSessionFunc()
	}
	if m.Session == nil {
		return nil, nil
	}
	return cloneSession(m.Session), nil
}

func (m *MockStore) SaveCurrentSession(session *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCurrentSessionCalls++
	if m.SaveCurrentSessionFunc != nil {
		return m.SaveCurrentSessionFunc(session)
	}
	m.Session = cloneSession(session)
	return nil
}

func (m *MockStore) ClearCurrentSession() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCurrentSessionCalls++
	m.Session = nil
	return nil
}

// cloneSession copies the slices a caller could mutate so the mock behaves like a real store.
func cloneSession(s *Session) *Session {
	c := &Session{IsActive: s.IsActive}
	for _, t := range s.Teams {
		t.Players = append([]string{}, t.Players...)
		t.PlayerNames = append([]string{}, t.PlayerNames...)
		c.Teams = append(c.Teams, t)
	}
	c.Matches = append([]MatchSlot(nil), s.Matches...)
	return c
}
