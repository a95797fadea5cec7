package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/jornada/internal/club"
	"github.com/mauv0809/jornada/internal/database"
	"github.com/mauv0809/jornada/internal/jornada"
	"github.com/mauv0809/jornada/internal/metrics"
	"github.com/mauv0809/jornada/internal/migration"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var (
	legacyDir   string
	fillCount   int
	seedPlayers int
	seedSession bool
)

const playersPerTeam = 3

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(fillTeamsCmd)
	rootCmd.AddCommand(seedCmd)

	migrateCmd.Flags().StringVar(&legacyDir, "dir", "", "Directory with the JSON files (defaults to LEGACY_DATA_DIR)")
	fillTeamsCmd.Flags().IntVar(&fillCount, "count", jornada.DefaultTeamCount, "Number of teams the jornada should have")
	seedCmd.Flags().IntVar(&seedPlayers, "players", 36, "Number of demo players to create")
	seedCmd.Flags().BoolVar(&seedSession, "session", false, "Also start a jornada with the demo players assigned to teams")
}

func openDB() (*sql.DB, func(), error) {
	return database.InitDB(cfg.DBDriver, cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
}

// newJornadaService wires a service with a private registry so the admin tool never touches
// the default Prometheus registry.
func newJornadaService(db *sql.DB) *jornada.Service {
	return jornada.NewService(jornada.New(db), club.New(db), metrics.NewService(prometheus.NewRegistry()))
}

var migrateCmd = &cobra.Command{
	Use:   "migrate-legacy",
	Short: "Import players.json, matches_history.json and current_session.json into empty tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, teardown, err := openDB()
		if err != nil {
			return err
		}
		defer teardown()

		dir := legacyDir
		if dir == "" {
			dir = cfg.LegacyDataDir
		}
		report, runErr := migration.Run(cmd.Context(), dir, club.New(db), jornada.New(db))
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return runErr
	},
}

var backupCmd = &cobra.Command{
	Use:   "backup <file>",
	Short: "Copy the database file byte for byte",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Turso.PrimaryURL != "" {
			return database.ErrBackupUnsupported
		}
		out, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("failed to create backup file: %w", err)
		}
		defer out.Close()

		n, err := database.Backup(cfg.DBName, out)
		if err != nil {
			return err
		}
		log.Info("Backup written", "file", args[0], "bytes", n)
		return out.Close()
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Replace the database file with a backup (server must be stopped)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Turso.PrimaryURL != "" {
			return database.ErrBackupUnsupported
		}
		in, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open backup file: %w", err)
		}
		defer in.Close()

		n, err := database.Restore(cfg.DBName, in)
		if err != nil {
			return err
		}
		log.Info("Database restored", "file", args[0], "bytes", n)
		return nil
	},
}

var fillTeamsCmd = &cobra.Command{
	Use:   "fill-teams",
	Short: "Add Group 2 teams to the current jornada until it has --count teams",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, teardown, err := openDB()
		if err != nil {
			return err
		}
		defer teardown()

		added, err := newJornadaService(db).FillTeams(fillCount)
		if err != nil {
			return err
		}
		for _, t := range added {
			fmt.Printf("Added %s (%s) to %s\n", t.Name, t.ID, t.Group)
		}
		if len(added) == 0 {
			fmt.Printf("Jornada already has at least %d teams\n", fillCount)
		}
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create demo players, and optionally a jornada using them, in an empty database",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, teardown, err := openDB()
		if err != nil {
			return err
		}
		defer teardown()

		return seed(cmd.Context(), club.New(db), newJornadaService(db), seedPlayers, seedSession)
	},
}

// seed fills an empty roster with demo players. With withSession it also starts a jornada and
// assigns the players to its teams in order.
func seed(ctx context.Context, players club.ClubStore, jornadas *jornada.Service, n int, withSession bool) error {
	existing, err := players.LoadPlayers()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Warn("Roster is not empty, skipping player seed", "players", len(existing))
	} else {
		for i := 1; i <= n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := players.AddPlayer(fmt.Sprintf("Demo Player %d", i)); err != nil {
				return fmt.Errorf("failed to add demo player: %w", err)
			}
		}
		log.Info("Seeded demo players", "count", n)
	}

	if !withSession {
		return nil
	}
	session, err := jornadas.StartSession()
	if err != nil {
		return err
	}
	roster, err := players.LoadPlayers()
	if err != nil {
		return err
	}
	for i, team := range session.Teams {
		start := i * playersPerTeam
		if start >= len(roster) {
			break
		}
		end := min(start+playersPerTeam, len(roster))
		ids := make([]string, 0, playersPerTeam)
		for _, p := range roster[start:end] {
			ids = append(ids, p.ID)
		}
		if _, err := jornadas.AssignPlayers(team.ID, ids); err != nil {
			return err
		}
	}
	log.Info("Seeded jornada", "teams", len(session.Teams), "slots", len(session.Matches))
	return nil
}
