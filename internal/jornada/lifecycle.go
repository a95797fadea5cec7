package jornada

import (
	"fmt"
	"slices"

	"github.com/mauv0809/jornada/internal/club"
)

// Recompute derives IsComplete and the player snapshots of slot from its team ids.
//
// A slot is complete when both team ids are set and differ. Only then are the current rosters
// of the two teams copied into TeamAPlayers and TeamBPlayers; an id that does not resolve in
// teams leaves its snapshot as it was. An incomplete slot keeps whatever snapshot it had, which
// is harmless because incomplete slots never count.
func Recompute(slot MatchSlot, teams []Team) MatchSlot {
	slot.IsComplete = isComplete(slot)
	if !slot.IsComplete {
		return slot
	}
	if team, ok := findTeam(teams, *slot.TeamAID); ok {
		slot.TeamAPlayers = slices.Clone(team.Players)
	}
	if team, ok := findTeam(teams, *slot.TeamBID); ok {
		slot.TeamBPlayers = slices.Clone(team.Players)
	}
	return slot
}

func isComplete(slot MatchSlot) bool {
	return teamSet(slot.TeamAID) && teamSet(slot.TeamBID) && *slot.TeamAID != *slot.TeamBID
}

func teamSet(id *string) bool {
	return id != nil && *id != ""
}

func findTeam(teams []Team, id string) (Team, bool) {
	for _, t := range teams {
		if t.ID == id {
			return t, true
		}
	}
	return Team{}, false
}

// RecordResult applies update to the slot with the given id and recomputes it.
// Team ids are not checked against the slot's group; choosing teams is the caller's job.
func (s *Session) RecordResult(slotID string, update MatchUpdate) (MatchSlot, error) {
	for i := range s.Matches {
		if s.Matches[i].ID != slotID {
			continue
		}
		slot := s.Matches[i]
		slot.TeamAID = normalizeTeamID(update.TeamAID)
		slot.TeamBID = normalizeTeamID(update.TeamBID)
		slot.ScoreA = update.ScoreA
		slot.ScoreB = update.ScoreB
		s.Matches[i] = Recompute(slot, s.Teams)
		return s.Matches[i], nil
	}
	return MatchSlot{}, fmt.Errorf("%w: %s", ErrMatchNotFound, slotID)
}

func normalizeTeamID(id *string) *string {
	if !teamSet(id) {
		return nil
	}
	v := *id
	return &v
}

// AssignPlayers replaces the players of a team. Duplicate ids are collapsed and ids missing from
// roster are dropped, so Players and PlayerNames always line up. The names are copied from
// roster now and are not kept in sync with later renames.
func (s *Session) AssignPlayers(teamID string, playerIDs []string, roster []club.Player) (Team, error) {
	idx := s.teamIndex(teamID)
	if idx < 0 {
		return Team{}, fmt.Errorf("%w: %s", ErrTeamNotFound, teamID)
	}

	byID := club.Index(roster)
	players := make([]string, 0, len(playerIDs))
	names := make([]string, 0, len(playerIDs))
	for _, id := range playerIDs {
		p, ok := byID[id]
		if !ok || slices.Contains(players, id) {
			continue
		}
		players = append(players, id)
		names = append(names, p.Name)
	}

	s.Teams[idx].Players = players
	s.Teams[idx].PlayerNames = names
	return s.Teams[idx], nil
}

// SetTeamGroup moves a team to another group. Slots that already reference the team keep it.
func (s *Session) SetTeamGroup(teamID string, group Group) (Team, error) {
	if !group.Valid() {
		return Team{}, fmt.Errorf("%w: %q", ErrInvalidGroup, group)
	}
	idx := s.teamIndex(teamID)
	if idx < 0 {
		return Team{}, fmt.Errorf("%w: %s", ErrTeamNotFound, teamID)
	}
	s.Teams[idx].Group = group
	return s.Teams[idx], nil
}

// TeamsInGroup returns the teams that may be picked for a slot of the given group.
func (s *Session) TeamsInGroup(group Group) []Team {
	var teams []Team
	for _, t := range s.Teams {
		g := t.Group
		if g == "" {
			g = Group1
		}
		if g == group {
			teams = append(teams, t)
		}
	}
	return teams
}

func (s *Session) teamIndex(teamID string) int {
	return slices.IndexFunc(s.Teams, func(t Team) bool { return t.ID == teamID })
}

// Partition splits matches into the complete ones and the rest, keeping their order.
func Partition(matches []MatchSlot) (complete, incomplete []MatchSlot) {
	for _, m := range matches {
		if m.IsComplete {
			complete = append(complete, m)
		} else {
			incomplete = append(incomplete, m)
		}
	}
	return complete, incomplete
}

// reconcileMatches rederives every submitted slot against the stored session. Snapshots sent by
// the client are ignored: a slot that was complete before with the same two team ids keeps its
// stored snapshot, every other slot starts from its stored snapshot (or none) and is recomputed
// from the submitted teams.
func reconcileMatches(session, stored *Session) {
	prev := make(map[string]MatchSlot, len(stored.Matches))
	for _, m := range stored.Matches {
		prev[m.ID] = m
	}
	for i := range session.Matches {
		slot := session.Matches[i]
		slot.TeamAID = normalizeTeamID(slot.TeamAID)
		slot.TeamBID = normalizeTeamID(slot.TeamBID)
		slot.TeamAPlayers, slot.TeamBPlayers = nil, nil

		old, ok := prev[slot.ID]
		if ok {
			slot.TeamAPlayers = slices.Clone(old.TeamAPlayers)
			slot.TeamBPlayers = slices.Clone(old.TeamBPlayers)
		}
		if ok && old.IsComplete && sameTeamID(old.TeamAID, slot.TeamAID) && sameTeamID(old.TeamBID, slot.TeamBID) {
			slot.IsComplete = isComplete(slot)
			session.Matches[i] = slot
			continue
		}
		session.Matches[i] = Recompute(slot, session.Teams)
	}
}

func sameTeamID(a, b *string) bool {
	if !teamSet(a) || !teamSet(b) {
		return !teamSet(a) && !teamSet(b)
	}
	return *a == *b
}
