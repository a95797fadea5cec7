package migration

// File names of the flat-file data layout.
const (
	PlayersFile = "players.json"
	HistoryFile = "matches_history.json"
	SessionFile = "current_session.json"
)

// Outcome is what happened to one entity during a migration run.
type Outcome string

const (
	Imported        Outcome = "imported"
	SkippedNonEmpty Outcome = "skipped_nonempty"
	SkippedMissing  Outcome = "skipped_missing"
	Failed          Outcome = "failed"
)

// Result describes the migration of one entity.
type Result struct {
	Outcome Outcome `json:"outcome"`
	Count   int     `json:"count"`
}

// Report collects the results of one migration run.
type Report struct {
	Players Result `json:"players"`
	History Result `json:"history"`
	Session Result `json:"session"`
}
