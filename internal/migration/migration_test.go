package migration_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mauv0809/jornada/internal/club"
	"github.com/mauv0809/jornada/internal/database"
	"github.com/mauv0809/jornada/internal/jornada"
	"github.com/mauv0809/jornada/internal/migration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyPlayers = `[
  {"id": "p1", "name": "Ana"},
  {"id": "p2", "name": "Bruno"}
]`

const legacyHistory = `[
  {"group": "Group 1", "round": 1, "match_num": 1, "team_a_id": "ta", "team_b_id": "tb",
   "score_a": 2, "score_b": 1, "is_complete": true, "team_a_players": ["p1"], "team_b_players": ["p2"]}
]`

const legacySession = `{
  "teams": [
    {"id": "ta", "name": "Team 1", "players": ["p1"], "player_names": ["Ana"]},
    {"id": "tb", "name": "Team 2", "players": ["p2"], "player_names": ["Bruno"]}
  ],
  "matches": [
    {"id": "s1", "round": 1, "match_num": 1, "team_a_id": null, "team_b_id": null,
     "score_a": 0, "score_b": 0, "is_complete": false}
  ],
  "is_active": true
}`

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (club.ClubStore, jornada.Store, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(database.DriverMattn, ":memory:", "", "")
	require.NoError(t, err)

	return club.New(db), jornada.New(db), teardown
}

func writeLegacy(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestRun_ImportsIntoEmptyStore(t *testing.T) {
	players, sessions, teardown := setupTestDB(t)
	defer teardown()

	dir := writeLegacy(t, map[string]string{
		migration.PlayersFile: legacyPlayers,
		migration.HistoryFile: legacyHistory,
		migration.SessionFile: legacySession,
	})

	report, err := migration.Run(context.Background(), dir, players, sessions)
	require.NoError(t, err)
	assert.Equal(t, migration.Result{Outcome: migration.Imported, Count: 2}, report.Players)
	assert.Equal(t, migration.Result{Outcome: migration.Imported, Count: 1}, report.History)
	assert.Equal(t, migration.Result{Outcome: migration.Imported, Count: 1}, report.Session)

	loadedPlayers, err := players.LoadPlayers()
	require.NoError(t, err)
	assert.Equal(t, []club.Player{{ID: "p1", Name: "Ana"}, {ID: "p2", Name: "Bruno"}}, loadedPlayers)

	history, err := sessions.LoadMatchesHistory()
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "0", history[0].ID, "legacy matches without id are keyed by position")
	assert.Equal(t, []string{"p1"}, history[0].TeamAPlayers)

	session, err := sessions.LoadCurrentSession()
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, jornada.Group1, session.Teams[0].Group, "legacy teams get a group")
	assert.Nil(t, session.Matches[0].TeamAID)
}

func TestRun_NeverOverwritesExistingData(t *testing.T) {
	players, sessions, teardown := setupTestDB(t)
	defer teardown()

	current := []club.Player{{ID: "x", Name: "Existing"}}
	require.NoError(t, players.SavePlayers(current))
	require.NoError(t, sessions.SaveMatchesHistory([]jornada.MatchSlot{{ID: "h", IsComplete: true}}))
	live := jornada.NewSession()
	require.NoError(t, sessions.SaveCurrentSession(live))

	dir := writeLegacy(t, map[string]string{
		migration.PlayersFile: legacyPlayers,
		migration.HistoryFile: legacyHistory,
		migration.SessionFile: legacySession,
	})

	for run := 0; run < 2; run++ {
		report, err := migration.Run(context.Background(), dir, players, sessions)
		require.NoError(t, err)
		assert.Equal(t, migration.SkippedNonEmpty, report.Players.Outcome)
		assert.Equal(t, migration.SkippedNonEmpty, report.History.Outcome)
		assert.Equal(t, migration.SkippedNonEmpty, report.Session.Outcome)
	}

	loadedPlayers, err := players.LoadPlayers()
	require.NoError(t, err)
	assert.Equal(t, current, loadedPlayers)

	history, err := sessions.LoadMatchesHistory()
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "h", history[0].ID)

	session, err := sessions.LoadCurrentSession()
	require.NoError(t, err)
	assert.Equal(t, live.Teams[0].ID, session.Teams[0].ID)
}

func TestRun_UndecodableRowsCountAsData(t *testing.T) {
	db, teardown, err := database.InitDB(database.DriverMattn, ":memory:", "", "")
	require.NoError(t, err)
	defer teardown()
	players, sessions := club.New(db), jornada.New(db)

	_, err = db.Exec("INSERT INTO matches (id, data) VALUES ('old', 'not json')")
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO session (key, value) VALUES ('current_session', 'not json')")
	require.NoError(t, err)

	dir := writeLegacy(t, map[string]string{
		migration.HistoryFile: legacyHistory,
		migration.SessionFile: legacySession,
	})

	report, err := migration.Run(context.Background(), dir, players, sessions)
	require.NoError(t, err)
	assert.Equal(t, migration.SkippedNonEmpty, report.History.Outcome)
	assert.Equal(t, migration.SkippedNonEmpty, report.Session.Outcome)

	var data string
	require.NoError(t, db.QueryRow("SELECT data FROM matches WHERE id = 'old'").Scan(&data))
	assert.Equal(t, "not json", data)
	require.NoError(t, db.QueryRow("SELECT value FROM session WHERE key = 'current_session'").Scan(&data))
	assert.Equal(t, "not json", data)
}

func TestRun_MissingFiles(t *testing.T) {
	players, sessions, teardown := setupTestDB(t)
	defer teardown()

	report, err := migration.Run(context.Background(), t.TempDir(), players, sessions)
	require.NoError(t, err)
	assert.Equal(t, migration.SkippedMissing, report.Players.Outcome)
	assert.Equal(t, migration.SkippedMissing, report.History.Outcome)
	assert.Equal(t, migration.SkippedMissing, report.Session.Outcome)
}

func TestRun_UnparseableFileIsSkipped(t *testing.T) {
	players, sessions, teardown := setupTestDB(t)
	defer teardown()

	dir := writeLegacy(t, map[string]string{
		migration.PlayersFile: `{"broken": `,
		migration.HistoryFile: legacyHistory,
		migration.SessionFile: `null`,
	})

	report, err := migration.Run(context.Background(), dir, players, sessions)
	require.NoError(t, err)
	assert.Equal(t, migration.Failed, report.Players.Outcome)
	assert.Equal(t, migration.Imported, report.History.Outcome)
	assert.Equal(t, migration.SkippedMissing, report.Session.Outcome)

	loaded, err := players.LoadPlayers()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestRun_StoreErrorIsReturned(t *testing.T) {
	players := club.NewMock()
	players.SavePlayersFunc = func([]club.Player) error { return errors.New("read-only") }
	sessions := jornada.NewMock()

	dir := writeLegacy(t, map[string]string{migration.PlayersFile: legacyPlayers})

	report, err := migration.Run(context.Background(), dir, players, sessions)
	require.Error(t, err)
	assert.Equal(t, migration.Failed, report.Players.Outcome)
	assert.Equal(t, migration.SkippedMissing, report.History.Outcome)
}
