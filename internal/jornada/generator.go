package jornada

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	DefaultTeamCount       = 12
	DefaultRounds          = 3
	DefaultMatchesPerRound = 6
)

// CreateTeamsEmpty creates numTeams empty teams named "Team 1".."Team N". The first numTeams/2
// go to Group 1 and the rest to Group 2, so an odd count puts the extra team in Group 2.
func CreateTeamsEmpty(numTeams int) []Team {
	teams := make([]Team, 0, max(numTeams, 0))
	for i := 0; i < numTeams; i++ {
		group := Group2
		if i < numTeams/2 {
			group = Group1
		}
		teams = append(teams, newTeam(i+1, group))
	}
	return teams
}

// InitMatchSlots creates one empty slot per (group, round, match number), group-major.
func InitMatchSlots(rounds, matchesPerRound int) []MatchSlot {
	slots := make([]MatchSlot, 0, max(len(Groups)*rounds*matchesPerRound, 0))
	for _, group := range Groups {
		for r := 1; r <= rounds; r++ {
			for m := 1; m <= matchesPerRound; m++ {
				slots = append(slots, MatchSlot{
					ID:       uuid.NewString(),
					Group:    group,
					Round:    r,
					MatchNum: m,
				})
			}
		}
	}
	return slots
}

// NewSession builds a fresh jornada with the default team count and slot grid.
func NewSession() *Session {
	return &Session{
		Teams:    CreateTeamsEmpty(DefaultTeamCount),
		Matches:  InitMatchSlots(DefaultRounds, DefaultMatchesPerRound),
		IsActive: true,
	}
}

// FillTeams appends empty Group 2 teams until the session has n teams and returns the ones it
// added. Sessions created before the second group existed only had six teams.
func FillTeams(session *Session, n int) []Team {
	var added []Team
	for i := len(session.Teams); i < n; i++ {
		team := newTeam(i+1, Group2)
		session.Teams = append(session.Teams, team)
		added = append(added, team)
	}
	return added
}

func newTeam(number int, group Group) Team {
	return Team{
		ID:          uuid.NewString(),
		Name:        fmt.Sprintf("Team %d", number),
		Players:     []string{},
		PlayerNames: []string{},
		Group:       group,
	}
}
