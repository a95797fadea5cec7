package jornada

import (
	"database/sql"
	"errors"
	"sync"
)

var (
	ErrNoActiveSession = errors.New("no active jornada")
	ErrSessionActive   = errors.New("a jornada is already active")
	ErrMatchNotFound   = errors.New("match slot not found")
	ErrTeamNotFound    = errors.New("team not found")
	ErrInvalidGroup    = errors.New("invalid group")
)

// Group is one of the two team pools of a jornada. Teams only play inside their group.
type Group string

const (
	Group1 Group = "Group 1"
	Group2 Group = "Group 2"
)

// Groups lists the groups in slot generation order.
var Groups = []Group{Group1, Group2}

// Valid reports whether g is one of the known groups.
func (g Group) Valid() bool {
	return g == Group1 || g == Group2
}

// Team is a roster for one jornada. PlayerNames holds the names as they were when the players
// were assigned and is not refreshed when a player is renamed later.
type Team struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Players     []string `json:"players"`
	PlayerNames []string `json:"player_names"`
	Group       Group    `json:"group,omitempty"`
}

// MatchSlot is a fixture placeholder identified by group, round and match number.
// IsComplete and the player snapshots are derived; see Recompute.
type MatchSlot struct {
	ID           string   `json:"id,omitempty"`
	Group        Group    `json:"group,omitempty"`
	Round        int      `json:"round"`
	MatchNum     int      `json:"match_num"`
	TeamAID      *string  `json:"team_a_id"`
	TeamBID      *string  `json:"team_b_id"`
	ScoreA       int      `json:"score_a" validate:"gte=0"`
	ScoreB       int      `json:"score_b" validate:"gte=0"`
	IsComplete   bool     `json:"is_complete"`
	TeamAPlayers []string `json:"team_a_players,omitempty"`
	TeamBPlayers []string `json:"team_b_players,omitempty"`
}

// Session is the single active jornada.
type Session struct {
	Teams    []Team      `json:"teams"`
	Matches  []MatchSlot `json:"matches" validate:"dive"`
	IsActive bool        `json:"is_active"`
}

// MatchUpdate carries the editable fields of a match slot.
type MatchUpdate struct {
	TeamAID *string `json:"team_a_id"`
	TeamBID *string `json:"team_b_id"`
	ScoreA  int     `json:"score_a" validate:"gte=0"`
	ScoreB  int     `json:"score_b" validate:"gte=0"`
}

// FinishSummary describes what a finished jornada contributed to the match history.
type FinishSummary struct {
	Archived []MatchSlot `json:"archived"`
	Dropped  int         `json:"dropped"`
	History  int         `json:"history_size"`
}

// store handles session and match history persistence.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}
