package migration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/jornada/internal/club"
	"github.com/mauv0809/jornada/internal/jornada"
)

// Run imports the JSON files in dir into the stores. Each entity is imported only when its
// destination holds no rows at all, undecodable ones included, so running it again never
// overwrites data. Missing or unreadable files
// are logged and skipped; only store failures are returned as errors.
func Run(ctx context.Context, dir string, players club.ClubStore, sessions jornada.Store) (Report, error) {
	var report Report
	var errs []error

	var err error
	report.Players, err = migratePlayers(dir, players)
	errs = append(errs, err)

	if ctx.Err() == nil {
		report.History, err = migrateHistory(dir, sessions)
		errs = append(errs, err)
	}
	if ctx.Err() == nil {
		report.Session, err = migrateSession(dir, sessions)
		errs = append(errs, err)
	}
	errs = append(errs, ctx.Err())

	log.Info("Legacy migration finished",
		"players", report.Players.Outcome,
		"history", report.History.Outcome,
		"session", report.Session.Outcome,
	)
	return report, errors.Join(errs...)
}

func migratePlayers(dir string, store club.ClubStore) (Result, error) {
	existing, err := store.LoadPlayers()
	if err != nil {
		return Result{Outcome: Failed}, fmt.Errorf("failed to check players: %w", err)
	}
	if len(existing) > 0 {
		return Result{Outcome: SkippedNonEmpty}, nil
	}

	var players []club.Player
	if res, ok := readFile(filepath.Join(dir, PlayersFile), &players); !ok {
		return res, nil
	}
	if err := store.SavePlayers(players); err != nil {
		return Result{Outcome: Failed}, fmt.Errorf("failed to import players: %w", err)
	}
	log.Info("Imported legacy players", "count", len(players))
	return Result{Outcome: Imported, Count: len(players)}, nil
}

func migrateHistory(dir string, store jornada.Store) (Result, error) {
	nonEmpty, err := store.HasMatchesHistory()
	if err != nil {
		return Result{Outcome: Failed}, err
	}
	if nonEmpty {
		return Result{Outcome: SkippedNonEmpty}, nil
	}

	var matches []jornada.MatchSlot
	if res, ok := readFile(filepath.Join(dir, HistoryFile), &matches); !ok {
		return res, nil
	}
	if err := store.SaveMatchesHistory(matches); err != nil {
		return Result{Outcome: Failed}, fmt.Errorf("failed to import match history: %w", err)
	}
	log.Info("Imported legacy match history", "count", len(matches))
	return Result{Outcome: Imported, Count: len(matches)}, nil
}

func migrateSession(dir string, store jornada.Store) (Result, error) {
	nonEmpty, err := store.HasCurrentSession()
	if err != nil {
		return Result{Outcome: Failed}, err
	}
	if nonEmpty {
		return Result{Outcome: SkippedNonEmpty}, nil
	}

	var session *jornada.Session
	if res, ok := readFile(filepath.Join(dir, SessionFile), &session); !ok {
		return res, nil
	}
	if session == nil {
		return Result{Outcome: SkippedMissing}, nil
	}
	if err := store.SaveCurrentSession(session); err != nil {
		return Result{Outcome: Failed}, fmt.Errorf("failed to import current session: %w", err)
	}
	log.Info("Imported legacy session", "teams", len(session.Teams), "matches", len(session.Matches))
	return Result{Outcome: Imported, Count: 1}, nil
}

// readFile decodes the JSON file at path into v. It reports false with the outcome to record
// when there is nothing to import.
func readFile(path string, v any) (Result, bool) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug("Legacy file not found", "path", path)
		return Result{Outcome: SkippedMissing}, false
	}
	if err != nil {
		log.Error("Failed to read legacy file", "path", path, "error", err)
		return Result{Outcome: Failed}, false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Error("Failed to parse legacy file", "path", path, "error", err)
		return Result{Outcome: Failed}, false
	}
	return Result{}, true
}
