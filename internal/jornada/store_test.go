package jornada_test

import (
	"database/sql"
	"testing"

	"github.com/mauv0809/jornada/internal/database"
	"github.com/mauv0809/jornada/internal/jornada"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (jornada.Store, *sql.DB, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(database.DriverMattn, ":memory:", "", "")
	require.NoError(t, err)

	return jornada.New(db), db, teardown
}

func TestMatchesHistory(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	t.Run("empty", func(t *testing.T) {
		history, err := store.LoadMatchesHistory()
		require.NoError(t, err)
		assert.Empty(t, history)
	})

	t.Run("round trip keeps order and fields", func(t *testing.T) {
		matches := []jornada.MatchSlot{
			{ID: "m2", Group: jornada.Group2, Round: 1, MatchNum: 2, TeamAID: ptr("ta"), TeamBID: ptr("tb"), ScoreA: 1, ScoreB: 1, IsComplete: true, TeamAPlayers: []string{"p1"}, TeamBPlayers: []string{"p2"}},
			{ID: "m1", Group: jornada.Group1, Round: 2, MatchNum: 1, TeamAID: ptr("tc"), TeamBID: ptr("td"), ScoreA: 3, ScoreB: 0, IsComplete: true},
		}
		require.NoError(t, store.SaveMatchesHistory(matches))

		loaded, err := store.LoadMatchesHistory()
		require.NoError(t, err)
		assert.Equal(t, matches, loaded)
	})

	t.Run("save replaces everything", func(t *testing.T) {
		require.NoError(t, store.SaveMatchesHistory([]jornada.MatchSlot{{ID: "only", IsComplete: true}}))

		loaded, err := store.LoadMatchesHistory()
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.Equal(t, "only", loaded[0].ID)
	})

	t.Run("missing and repeated ids", func(t *testing.T) {
		require.NoError(t, store.SaveMatchesHistory([]jornada.MatchSlot{
			{Round: 1, IsComplete: true},
			{ID: "dup", Round: 2, IsComplete: true},
			{ID: "dup", Round: 3, IsComplete: true},
		}))

		loaded, err := store.LoadMatchesHistory()
		require.NoError(t, err)
		require.Len(t, loaded, 3)
		assert.Equal(t, "0", loaded[0].ID)
		assert.Equal(t, "dup", loaded[1].ID)
		assert.NotEqual(t, "dup", loaded[2].ID)
		assert.Equal(t, 3, loaded[2].Round)
	})

	t.Run("undecodable rows are skipped", func(t *testing.T) {
		require.NoError(t, store.SaveMatchesHistory([]jornada.MatchSlot{{ID: "good", IsComplete: true}}))
		_, err := db.Exec("INSERT INTO matches (id, data) VALUES ('bad', '{not json')")
		require.NoError(t, err)

		loaded, err := store.LoadMatchesHistory()
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.Equal(t, "good", loaded[0].ID)

		has, err := store.HasMatchesHistory()
		require.NoError(t, err)
		assert.True(t, has)
	})

	t.Run("undecodable rows are lost on the next save", func(t *testing.T) {
		loaded, err := store.LoadMatchesHistory()
		require.NoError(t, err)
		require.NoError(t, store.SaveMatchesHistory(loaded))

		var count int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM matches WHERE id = 'bad'").Scan(&count))
		assert.Zero(t, count)
	})

	t.Run("has history only when rows exist", func(t *testing.T) {
		require.NoError(t, store.SaveMatchesHistory(nil))
		has, err := store.HasMatchesHistory()
		require.NoError(t, err)
		assert.False(t, has)
	})
}

func TestCurrentSession(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	t.Run("absent", func(t *testing.T) {
		session, err := store.LoadCurrentSession()
		require.NoError(t, err)
		assert.Nil(t, session)
	})

	t.Run("save and load", func(t *testing.T) {
		session := jornada.NewSession()
		require.NoError(t, store.SaveCurrentSession(session))

		loaded, err := store.LoadCurrentSession()
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, session, loaded)
	})

	t.Run("save overwrites the single session", func(t *testing.T) {
		second := jornada.NewSession()
		require.NoError(t, store.SaveCurrentSession(second))

		var count int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM session").Scan(&count))
		assert.Equal(t, 1, count)

		loaded, err := store.LoadCurrentSession()
		require.NoError(t, err)
		assert.Equal(t, second.Teams[0].ID, loaded.Teams[0].ID)
	})

	t.Run("clear", func(t *testing.T) {
		require.NoError(t, store.ClearCurrentSession())
		loaded, err := store.LoadCurrentSession()
		require.NoError(t, err)
		assert.Nil(t, loaded)
		require.NoError(t, store.ClearCurrentSession(), "clearing twice is fine")
	})

	t.Run("teams without a group are split at six", func(t *testing.T) {
		session := &jornada.Session{IsActive: true}
		for i := 0; i < 8; i++ {
			session.Teams = append(session.Teams, jornada.Team{ID: string(rune('a' + i))})
		}
		session.Teams[7].Group = jornada.Group1
		require.NoError(t, store.SaveCurrentSession(session))

		loaded, err := store.LoadCurrentSession()
		require.NoError(t, err)
		for i := 0; i < 6; i++ {
			assert.Equal(t, jornada.Group1, loaded.Teams[i].Group)
		}
		assert.Equal(t, jornada.Group2, loaded.Teams[6].Group)
		assert.Equal(t, jornada.Group1, loaded.Teams[7].Group, "explicit group is kept")
	})

	t.Run("corrupt blob reads as no session", func(t *testing.T) {
		_, err := db.Exec("INSERT OR REPLACE INTO session (key, value) VALUES ('current_session', 'garbage')")
		require.NoError(t, err)

		loaded, err := store.LoadCurrentSession()
		require.NoError(t, err)
		assert.Nil(t, loaded)

		has, err := store.HasCurrentSession()
		require.NoError(t, err)
		assert.True(t, has, "the stored value still counts")

		require.NoError(t, store.ClearCurrentSession())
		has, err = store.HasCurrentSession()
		require.NoError(t, err)
		assert.False(t, has)
	})
}
