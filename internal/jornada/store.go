package jornada

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const sessionKey = "current_session"

// legacyGroupSize is the number of teams a session had before the second group existed.
const legacyGroupSize = 6

// New creates a new Store.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

// LoadMatchesHistory returns every archived match in insertion order.
// Rows that fail to decode are logged and skipped, so the next SaveMatchesHistory drops them.
func (s *store) LoadMatchesHistory() ([]MatchSlot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, data FROM matches ORDER BY rowid")
	if err != nil {
		log.Error("Failed to query match history", "error", err)
		return nil, err
	}
	defer rows.Close()

	matches := make([]MatchSlot, 0)
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		var m MatchSlot
		if err := json.Unmarshal([]byte(data), &m); err != nil {
			log.Warn("Skipping undecodable match", "id", id, "error", err)
			continue
		}
		if m.ID == "" {
			m.ID = id
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// SaveMatchesHistory replaces the stored history with matches. A match without an id is stored
// under its position in the list.
func (s *store) SaveMatchesHistory(matches []MatchSlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM matches"); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear match history: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO matches (id, data) VALUES (?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	seen := make(map[string]struct{}, len(matches))
	for i, m := range matches {
		m.ID = historyID(m.ID, i, seen)
		data, err := json.Marshal(m)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to encode match %s: %w", m.ID, err)
		}
		if _, err := stmt.Exec(m.ID, string(data)); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert match %s: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Info("Saved match history", "count", len(matches))
	return nil
}

// historyID picks the primary key for the i-th history entry and records it in seen.
// Legacy exports can repeat ids; repeats get a fresh one instead of failing the whole save.
func historyID(id string, i int, seen map[string]struct{}) string {
	if id == "" {
		id = strconv.Itoa(i)
	}
	if _, dup := seen[id]; dup {
		fresh := uuid.NewString()
		log.Warn("Duplicate match id in history, assigning a new one", "id", id, "newID", fresh)
		id = fresh
	}
	seen[id] = struct{}{}
	return id
}

// HasMatchesHistory reports whether the matches table holds any row.
func (s *store) HasMatchesHistory() (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	if err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM matches)").Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check match history: %w", err)
	}
	return exists, nil
}

// HasCurrentSession reports whether a session value is stored, even one that cannot be decoded.
func (s *store) HasCurrentSession() (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	if err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM session WHERE key = ?)", sessionKey).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check current session: %w", err)
	}
	return exists, nil
}

// LoadCurrentSession returns the active session, or nil when there is none or the stored
// value cannot be decoded.
func (s *store) LoadCurrentSession() (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.db.QueryRow("SELECT value FROM session WHERE key = ?", sessionKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("Failed to query current session", "error", err)
		return nil, err
	}

	var session Session
	if err := json.Unmarshal([]byte(value), &session); err != nil {
		log.Warn("Stored session cannot be decoded, treating as absent", "error", err)
		return nil, nil
	}
	fixupGroups(&session)
	return &session, nil
}

// SaveCurrentSession stores session as the single current session.
func (s *store) SaveCurrentSession(session *Session) error {
	if session == nil {
		return errors.New("session is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	fixupGroups(session)
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if _, err := s.db.Exec("INSERT OR REPLACE INTO session (key, value) VALUES (?, ?)", sessionKey, string(data)); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	log.Debug("Saved current session", "teams", len(session.Teams), "matches", len(session.Matches))
	return nil
}

// ClearCurrentSession removes the current session. Clearing an absent session is not an error.
func (s *store) ClearCurrentSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM session WHERE key = ?", sessionKey); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	log.Info("Cleared current session")
	return nil
}

// fixupGroups assigns a group to teams saved before groups existed: the first six go to
// Group 1 and the rest to Group 2. Teams that already have a group keep it.
func fixupGroups(session *Session) {
	for i := range session.Teams {
		if session.Teams[i].Group != "" {
			continue
		}
		if i < legacyGroupSize {
			session.Teams[i].Group = Group1
		} else {
			session.Teams[i].Group = Group2
		}
	}
}
