package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/jornada/internal/jornada"
	"github.com/mauv0809/jornada/internal/leaderboard"
	"github.com/mauv0809/jornada/internal/metrics"
	"github.com/mauv0809/jornada/internal/notifier"
	"github.com/slack-go/slack"
)

// Slack rejects messages with more than 50 blocks.
const maxLeaderboardRows = 40

// summaryTopRows is how many leaderboard rows the jornada summary shows.
const summaryTopRows = 3

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier. Without a token every message is only logged.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	var api slackClient
	if token != "" {
		api = slack.New(token)
	}
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun || s.api == nil {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// SendJornadaSummary posts the results of a finished jornada together with the top of the table.
func (s *Notifier) SendJornadaSummary(summary jornada.FinishSummary, table []leaderboard.Row, dryRun bool) error {
	msg := s.formatJornadaSummary(summary, table)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendLeaderboard(table []leaderboard.Row, dryRun bool) error {
	msg := s.formatLeaderboard(table)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// FormatLeaderboardResponse formats a leaderboard message for a slash command response.
func (s *Notifier) FormatLeaderboardResponse(table []leaderboard.Row) (any, error) {
	return s.formatLeaderboard(table), nil
}

func plainSection(text string) *slack.SectionBlock {
	return slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, true, false), nil, nil)
}

func medal(rank int) string {
	switch rank {
	case 1:
		return ":first_place_medal:"
	case 2:
		return ":second_place_medal:"
	case 3:
		return ":third_place_medal:"
	}
	return ""
}

func formatRow(row leaderboard.Row) string {
	return fmt.Sprintf("%d. %s %s\n> Pts: %d | GP: %d | W-D-L: %d-%d-%d | GD: %+d",
		row.Rank,
		medal(row.Rank),
		row.Name,
		row.Pts,
		row.GP,
		row.W,
		row.D,
		row.L,
		row.GD,
	)
}

// formatLeaderboard creates the Slack message for the leaderboard using Block Kit.
func (s *Notifier) formatLeaderboard(table []leaderboard.Row) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", ":trophy: Jornada Leaderboard :trophy:", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(table) == 0 {
		blocks = append(blocks, plainSection("No players yet. Add some players and play a jornada!"))
		return slack.NewBlockMessage(blocks...)
	}

	shown := table
	if len(shown) > maxLeaderboardRows {
		shown = shown[:maxLeaderboardRows]
	}
	for _, row := range shown {
		blocks = append(blocks, plainSection(formatRow(row)))
	}
	if hidden := len(table) - len(shown); hidden > 0 {
		more := slack.NewTextBlockObject("plain_text", fmt.Sprintf("...and %d more players", hidden), true, false)
		blocks = append(blocks, slack.NewContextBlock("", more))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatJornadaSummary creates the Slack message for a finished jornada using Block Kit.
func (s *Notifier) formatJornadaSummary(summary jornada.FinishSummary, table []leaderboard.Row) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", ":soccer: Jornada finished! :soccer:", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("Matches played: %d\nEmpty slots discarded: %d\nMatches in history: %d",
		len(summary.Archived), summary.Dropped, summary.History)
	blocks = append(blocks, plainSection(detailsText))

	if len(summary.Archived) > 0 {
		names := make(map[string]string, len(table))
		for _, row := range table {
			names[row.PlayerID] = row.Name
		}
		var lines []string
		for _, m := range summary.Archived {
			lines = append(lines, fmt.Sprintf("• %s R%d: %s %d - %d %s",
				m.Group,
				m.Round,
				sideNames(m.TeamAPlayers, names),
				m.ScoreA,
				m.ScoreB,
				sideNames(m.TeamBPlayers, names),
			))
		}
		blocks = append(blocks, plainSection("Results:\n"+strings.Join(lines, "\n")))
	}

	if len(table) > 0 {
		top := table[:min(summaryTopRows, len(table))]
		var lines []string
		for _, row := range top {
			lines = append(lines, fmt.Sprintf("%s %s (%d pts)", medal(row.Rank), row.Name, row.Pts))
		}
		blocks = append(blocks, slack.NewDividerBlock())
		blocks = append(blocks, plainSection("Top of the table:\n"+strings.Join(lines, "\n")))
	}

	return slack.NewBlockMessage(blocks...)
}

// sideNames joins the names of a match side. Players no longer in the table are shown as "?".
func sideNames(ids []string, names map[string]string) string {
	if len(ids) == 0 {
		return "?"
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		name, ok := names[id]
		if !ok {
			name = "?"
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, "/")
}
