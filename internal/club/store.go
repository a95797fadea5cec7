package club

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New creates a new ClubStore.
func New(db *sql.DB) ClubStore {
	return &store{
		db: db,
	}
}

// LoadPlayers returns the roster in the order it was last saved.
func (s *store) LoadPlayers() ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadPlayersLocked()
}

func (s *store) loadPlayersLocked() ([]Player, error) {
	rows, err := s.db.Query("SELECT id, name FROM players ORDER BY rowid")
	if err != nil {
		log.Error("Failed to query all players", "error", err)
		return nil, err
	}
	defer rows.Close()

	players := make([]Player, 0)
	for rows.Next() {
		var p Player
		var name sql.NullString
		if err := rows.Scan(&p.ID, &name); err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		p.Name = name.String
		players = append(players, p)
	}
	return players, rows.Err()
}

// SavePlayers replaces the whole roster with players. Players missing from the list are deleted.
func (s *store) SavePlayers(players []Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.savePlayersLocked(players)
}

func (s *store) savePlayersLocked(players []Player) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM players"); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear players: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO players (id, name) VALUES (?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, p := range players {
		if _, err := stmt.Exec(p.ID, p.Name); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert player %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Info("Saved player roster", "count", len(players))
	return nil
}

// AddPlayer appends a new player with a fresh id to the roster.
func (s *store) AddPlayer(name string) (Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	players, err := s.loadPlayersLocked()
	if err != nil {
		return Player{}, err
	}
	player := Player{ID: uuid.NewString(), Name: strings.TrimSpace(name)}
	players = append(players, player)
	if err := s.savePlayersLocked(players); err != nil {
		return Player{}, err
	}
	log.Info("Added new player to the roster", "playerID", player.ID, "name", player.Name)
	return player, nil
}

// RenamePlayer changes a player's name. Team snapshots taken earlier keep the old name.
func (s *store) RenamePlayer(playerID, name string) (Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	players, err := s.loadPlayersLocked()
	if err != nil {
		return Player{}, err
	}
	for i := range players {
		if players[i].ID != playerID {
			continue
		}
		players[i].Name = strings.TrimSpace(name)
		if err := s.savePlayersLocked(players); err != nil {
			return Player{}, err
		}
		log.Info("Renamed player", "playerID", playerID, "name", players[i].Name)
		return players[i], nil
	}
	return Player{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
}

// Index maps player ids to players.
func Index(players []Player) map[string]Player {
	index := make(map[string]Player, len(players))
	for _, p := range players {
		index[p.ID] = p
	}
	return index
}
