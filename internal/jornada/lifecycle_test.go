package jornada_test

import (
	"testing"

	"github.com/mauv0809/jornada/internal/club"
	"github.com/mauv0809/jornada/internal/jornada"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func twoTeams() []jornada.Team {
	return []jornada.Team{
		{ID: "ta", Name: "Team 1", Players: []string{"p1", "p2"}, PlayerNames: []string{"Ana", "Bruno"}, Group: jornada.Group1},
		{ID: "tb", Name: "Team 2", Players: []string{"p3"}, PlayerNames: []string{"Carla"}, Group: jornada.Group1},
	}
}

func TestRecompute(t *testing.T) {
	teams := twoTeams()

	t.Run("both teams set and different", func(t *testing.T) {
		slot := jornada.Recompute(jornada.MatchSlot{TeamAID: ptr("ta"), TeamBID: ptr("tb"), ScoreA: 2, ScoreB: 1}, teams)
		assert.True(t, slot.IsComplete)
		assert.Equal(t, []string{"p1", "p2"}, slot.TeamAPlayers)
		assert.Equal(t, []string{"p3"}, slot.TeamBPlayers)
	})

	t.Run("same team on both sides never completes", func(t *testing.T) {
		for _, score := range [][2]int{{0, 0}, {3, 1}, {5, 5}} {
			slot := jornada.Recompute(jornada.MatchSlot{TeamAID: ptr("ta"), TeamBID: ptr("ta"), ScoreA: score[0], ScoreB: score[1]}, teams)
			assert.False(t, slot.IsComplete, "score %v", score)
		}
	})

	t.Run("missing team", func(t *testing.T) {
		slot := jornada.Recompute(jornada.MatchSlot{TeamAID: ptr("ta"), ScoreA: 4}, teams)
		assert.False(t, slot.IsComplete)
		assert.Nil(t, slot.TeamAPlayers)
	})

	t.Run("empty id counts as unset", func(t *testing.T) {
		slot := jornada.Recompute(jornada.MatchSlot{TeamAID: ptr("ta"), TeamBID: ptr("")}, teams)
		assert.False(t, slot.IsComplete)
	})

	t.Run("unresolved id leaves its snapshot untouched", func(t *testing.T) {
		slot := jornada.Recompute(jornada.MatchSlot{
			TeamAID:      ptr("ta"),
			TeamBID:      ptr("gone"),
			TeamBPlayers: []string{"old"},
		}, teams)
		assert.True(t, slot.IsComplete)
		assert.Equal(t, []string{"p1", "p2"}, slot.TeamAPlayers)
		assert.Equal(t, []string{"old"}, slot.TeamBPlayers)
	})

	t.Run("snapshot is a copy", func(t *testing.T) {
		local := twoTeams()
		slot := jornada.Recompute(jornada.MatchSlot{TeamAID: ptr("ta"), TeamBID: ptr("tb")}, local)
		local[0].Players[0] = "changed"
		assert.Equal(t, "p1", slot.TeamAPlayers[0])
	})

	t.Run("reverting to incomplete keeps old snapshot", func(t *testing.T) {
		slot := jornada.Recompute(jornada.MatchSlot{TeamAID: ptr("ta"), TeamBID: ptr("tb")}, teams)
		slot.TeamBID = nil
		slot = jornada.Recompute(slot, teams)
		assert.False(t, slot.IsComplete)
		assert.Equal(t, []string{"p3"}, slot.TeamBPlayers)
	})
}

func TestSession_RecordResult(t *testing.T) {
	session := &jornada.Session{Teams: twoTeams(), Matches: []jornada.MatchSlot{{ID: "m1", Group: jornada.Group1, Round: 1, MatchNum: 1}}}

	slot, err := session.RecordResult("m1", jornada.MatchUpdate{TeamAID: ptr("ta"), TeamBID: ptr("tb"), ScoreA: 3, ScoreB: 0})
	require.NoError(t, err)
	assert.True(t, slot.IsComplete)
	assert.Equal(t, slot, session.Matches[0])

	t.Run("clearing a team reverts the slot", func(t *testing.T) {
		slot, err := session.RecordResult("m1", jornada.MatchUpdate{TeamAID: ptr("ta"), TeamBID: ptr(""), ScoreA: 3})
		require.NoError(t, err)
		assert.False(t, slot.IsComplete)
		assert.Nil(t, slot.TeamBID)
	})

	t.Run("unknown slot", func(t *testing.T) {
		_, err := session.RecordResult("nope", jornada.MatchUpdate{})
		assert.ErrorIs(t, err, jornada.ErrMatchNotFound)
	})
}

func TestSession_AssignPlayers(t *testing.T) {
	roster := []club.Player{{ID: "p1", Name: "Ana"}, {ID: "p2", Name: "Bruno"}, {ID: "p3", Name: "Carla"}}
	session := &jornada.Session{Teams: twoTeams()}

	team, err := session.AssignPlayers("tb", []string{"p2", "ghost", "p2", "p1"}, roster)
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p1"}, team.Players)
	assert.Equal(t, []string{"Bruno", "Ana"}, team.PlayerNames)
	assert.Equal(t, team, session.Teams[1])

	t.Run("empty list clears the team", func(t *testing.T) {
		team, err := session.AssignPlayers("tb", nil, roster)
		require.NoError(t, err)
		assert.Empty(t, team.Players)
		assert.Empty(t, team.PlayerNames)
	})

	t.Run("unknown team", func(t *testing.T) {
		_, err := session.AssignPlayers("nope", []string{"p1"}, roster)
		assert.ErrorIs(t, err, jornada.ErrTeamNotFound)
	})
}

func TestSession_SetTeamGroup(t *testing.T) {
	session := &jornada.Session{Teams: twoTeams()}

	team, err := session.SetTeamGroup("tb", jornada.Group2)
	require.NoError(t, err)
	assert.Equal(t, jornada.Group2, team.Group)
	assert.Len(t, session.TeamsInGroup(jornada.Group1), 1)
	assert.Len(t, session.TeamsInGroup(jornada.Group2), 1)

	_, err = session.SetTeamGroup("tb", jornada.Group("Group 3"))
	assert.ErrorIs(t, err, jornada.ErrInvalidGroup)

	_, err = session.SetTeamGroup("nope", jornada.Group1)
	assert.ErrorIs(t, err, jornada.ErrTeamNotFound)
}

func TestPartition(t *testing.T) {
	matches := []jornada.MatchSlot{
		{ID: "1", IsComplete: true},
		{ID: "2"},
		{ID: "3", IsComplete: true},
	}
	complete, incomplete := jornada.Partition(matches)
	require.Len(t, complete, 2)
	require.Len(t, incomplete, 1)
	assert.Equal(t, "1", complete[0].ID)
	assert.Equal(t, "3", complete[1].ID)
	assert.Equal(t, "2", incomplete[0].ID)
}
