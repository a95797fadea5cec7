package club

import (
	"fmt"
	"sync"
)

// MockStore is an in-memory implementation of the ClubStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	Players []Player

	// Spies for method calls
	LoadPlayersFunc func() ([]Player, error)
	SavePlayersFunc func(players []Player) error

	// Call records
	SavePlayersCalls [][]Player
}

// NewMock creates a new mock instance seeded with players.
func NewMock(players ...Player) *MockStore {
	return &MockStore{Players: append([]Player(nil), players...)}
}

func (m *MockStore) LoadPlayers() ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadPlayersFunc != nil {
		return m.LoadPlayersFunc()
	}
	return append([]Player{}, m.Players...), nil
}

func (m *MockStore) SavePlayers(players []Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SavePlayersCalls = append(m.SavePlayersCalls, players)
	if m.SavePlayersFunc != nil {
		return m.SavePlayersFunc(players)
	}
	m.Players = append([]Player(nil), players...)
	return nil
}

func (m *MockStore) AddPlayer(name string) (Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := Player{ID: fmt.Sprintf("mock-%d", len(m.Players)+1), Name: name}
	m.Players = append(m.Players, p)
	return p, nil
}

func (m *MockStore) RenamePlayer(playerID, name string) (Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Players {
		if m.Players[i].ID == playerID {
			m.Players[i].Name = name
			return m.Players[i], nil
		}
	}
	return Player{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
}
