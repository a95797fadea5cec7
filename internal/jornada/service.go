package jornada

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/jornada/internal/club"
	"github.com/mauv0809/jornada/internal/metrics"
)

// Service runs the jornada lifecycle on top of the stores. Every mutation is a
// load-modify-save of the whole session; mu serializes them within the process.
type Service struct {
	store   Store
	players club.ClubStore
	metrics metrics.Metrics
	mu      sync.Mutex
}

// NewService creates a new Service.
func NewService(store Store, players club.ClubStore, metrics metrics.Metrics) *Service {
	return &Service{
		store:   store,
		players: players,
		metrics: metrics,
	}
}

// CurrentSession returns the active session or ErrNoActiveSession.
func (s *Service) CurrentSession() (*Session, error) {
	session, err := s.store.LoadCurrentSession()
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNoActiveSession
	}
	return session, nil
}

// StartSession creates and stores a fresh jornada. It fails with ErrSessionActive when one is
// already running.
func (s *Service) StartSession() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.store.LoadCurrentSession()
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSessionActive
	}

	session := NewSession()
	if err := s.store.SaveCurrentSession(session); err != nil {
		return nil, fmt.Errorf("failed to start jornada: %w", err)
	}
	s.metrics.IncJornadasStarted()
	log.Info("Started new jornada", "teams", len(session.Teams), "slots", len(session.Matches))
	return session, nil
}

// ResetSession discards the current session without archiving anything.
func (s *Service) ResetSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.ClearCurrentSession()
}

// SaveProgress stores a whole session submitted by a client over the current one. IsComplete and
// the player snapshots are rederived against the stored session; only StartSession creates one.
func (s *Service) SaveProgress(session *Session) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.store.LoadCurrentSession()
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, ErrNoActiveSession
	}
	session.IsActive = true
	reconcileMatches(session, stored)
	if err := s.store.SaveCurrentSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// AssignPlayers replaces the players of a team, taking names from the current roster.
func (s *Service) AssignPlayers(teamID string, playerIDs []string) (Team, error) {
	var team Team
	err := s.update(func(session *Session) error {
		roster, err := s.players.LoadPlayers()
		if err != nil {
			return err
		}
		team, err = session.AssignPlayers(teamID, playerIDs, roster)
		return err
	})
	if err != nil {
		return Team{}, err
	}
	log.Info("Assigned players to team", "teamID", teamID, "players", len(team.Players))
	return team, nil
}

// SetTeamGroup moves a team to another group.
func (s *Service) SetTeamGroup(teamID string, group Group) (Team, error) {
	var team Team
	err := s.update(func(session *Session) error {
		var err error
		team, err = session.SetTeamGroup(teamID, group)
		return err
	})
	return team, err
}

// FillTeams tops the session up to n teams and returns the teams it added.
func (s *Service) FillTeams(n int) ([]Team, error) {
	var added []Team
	err := s.update(func(session *Session) error {
		added = FillTeams(session, n)
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info("Filled jornada teams", "target", n, "added", len(added))
	return added, nil
}

// RecordResult edits one slot of the current session.
func (s *Service) RecordResult(slotID string, update MatchUpdate) (MatchSlot, error) {
	var slot MatchSlot
	err := s.update(func(session *Session) error {
		var err error
		slot, err = session.RecordResult(slotID, update)
		return err
	})
	if err != nil {
		return MatchSlot{}, err
	}
	s.metrics.IncResultsRecorded()
	log.Debug("Recorded match result", "slotID", slotID, "complete", slot.IsComplete, "score", fmt.Sprintf("%d-%d", slot.ScoreA, slot.ScoreB))
	return slot, nil
}

// FinishJornada appends the complete slots of the current session to the match history and
// clears the session. Incomplete slots are discarded.
func (s *Service) FinishJornada() (FinishSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.store.LoadCurrentSession()
	if err != nil {
		return FinishSummary{}, err
	}
	if session == nil {
		return FinishSummary{}, ErrNoActiveSession
	}

	complete, incomplete := Partition(session.Matches)

	history, err := s.store.LoadMatchesHistory()
	if err != nil {
		return FinishSummary{}, fmt.Errorf("failed to load match history: %w", err)
	}
	history = append(history, complete...)
	if err := s.store.SaveMatchesHistory(history); err != nil {
		return FinishSummary{}, fmt.Errorf("failed to archive matches: %w", err)
	}
	if err := s.store.ClearCurrentSession(); err != nil {
		return FinishSummary{}, fmt.Errorf("failed to clear session: %w", err)
	}

	s.metrics.IncJornadasFinished()
	s.metrics.AddMatchesArchived(len(complete))
	s.metrics.AddMatchesDropped(len(incomplete))
	log.Info("Finished jornada", "archived", len(complete), "dropped", len(incomplete), "history", len(history))

	if complete == nil {
		complete = []MatchSlot{}
	}
	return FinishSummary{
		Archived: complete,
		Dropped:  len(incomplete),
		History:  len(history),
	}, nil
}

// TeamsInGroup lists the teams of the current session that can be picked for slots of group.
func (s *Service) TeamsInGroup(group Group) ([]Team, error) {
	if !group.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidGroup, group)
	}
	session, err := s.CurrentSession()
	if err != nil {
		return nil, err
	}
	teams := session.TeamsInGroup(group)
	if teams == nil {
		teams = []Team{}
	}
	return teams, nil
}

// History returns the archived matches.
func (s *Service) History() ([]MatchSlot, error) {
	return s.store.LoadMatchesHistory()
}

func (s *Service) update(fn func(session *Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.store.LoadCurrentSession()
	if err != nil {
		return err
	}
	if session == nil {
		return ErrNoActiveSession
	}
	if err := fn(session); err != nil {
		return err
	}
	return s.store.SaveCurrentSession(session)
}
