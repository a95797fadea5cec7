package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(addPlayerCmd)
	rootCmd.AddCommand(renamePlayerCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(assignCmd)
	rootCmd.AddCommand(groupCmd)
	rootCmd.AddCommand(groupTeamsCmd)
	rootCmd.AddCommand(fillTeamsCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(finishCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(announceCmd)

	fillTeamsCmd.Flags().IntVar(&fillCount, "count", 12, "Number of teams the jornada should have")
}

var fillCount int

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil)
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the player pool",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/players", nil)
	},
}

var addPlayerCmd = &cobra.Command{
	Use:   "add-player <name>",
	Short: "Add a player to the pool",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/players", map[string]string{"name": args[0]})
	},
}

var renamePlayerCmd = &cobra.Command{
	Use:   "rename-player <id> <name>",
	Short: "Rename a player",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPatch, "/players/"+args[0], map[string]string{"name": args[1]})
	},
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Show the current jornada",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/session", nil)
	},
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a new jornada with 12 empty teams and 36 match slots",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/session", nil)
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the current jornada without archiving it",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodDelete, "/session", nil)
	},
}

var assignCmd = &cobra.Command{
	Use:   "assign <team-id> [player-id...]",
	Short: "Set the players of a team",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string][]string{"player_ids": append([]string{}, args[1:]...)}
		return performRequest(http.MethodPut, "/session/teams/"+args[0]+"/players", body)
	},
}

var groupCmd = &cobra.Command{
	Use:   "group <team-id> <1|2>",
	Short: "Move a team to Group 1 or Group 2",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPut, "/session/teams/"+args[0]+"/group", map[string]string{"group": "Group " + args[1]})
	},
}

var groupTeamsCmd = &cobra.Command{
	Use:   "group-teams <1|2>",
	Short: "List the teams that can play slots of Group 1 or Group 2",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/session/groups/"+url.PathEscape("Group "+args[0])+"/teams", nil)
	},
}

var fillTeamsCmd = &cobra.Command{
	Use:   "fill-teams",
	Short: "Add Group 2 teams until the jornada has --count teams",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/session/teams/fill?count="+strconv.Itoa(fillCount), nil)
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score <slot-id> <team-a-id> <team-b-id> <score-a> <score-b>",
	Short: "Record the teams and score of a match slot",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		scoreA, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("invalid score-a: %w", err)
		}
		scoreB, err := strconv.Atoi(args[4])
		if err != nil {
			return fmt.Errorf("invalid score-b: %w", err)
		}
		body := map[string]any{
			"team_a_id": args[1],
			"team_b_id": args[2],
			"score_a":   scoreA,
			"score_b":   scoreB,
		}
		return performRequest(http.MethodPut, "/session/matches/"+args[0], body)
	},
}

var finishCmd = &cobra.Command{
	Use:   "finish",
	Short: "Finish the jornada: archive complete matches and clear the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/session/finish"+dryRunQuery(), nil)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/history", nil)
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the leaderboard including the live jornada",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/leaderboard", nil)
	},
}

var announceCmd = &cobra.Command{
	Use:   "announce",
	Short: "Post the leaderboard to Slack",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/leaderboard/announce"+dryRunQuery(), nil)
	},
}

func dryRunQuery() string {
	if dryRun {
		return "?dry_run=true"
	}
	return ""
}

func performRequest(method, endpoint string, payload any) error {
	url := host + endpoint
	fmt.Printf("Making %s request to %s\n", method, url)

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}
