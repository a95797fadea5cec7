package slack

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mauv0809/jornada/internal/jornada"
	"github.com/mauv0809/jornada/internal/leaderboard"
	"github.com/mauv0809/jornada/internal/metrics"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

var table = []leaderboard.Row{
	{Rank: 1, PlayerID: "p1", Name: "Ana", Pts: 6, GP: 2, W: 2, GD: 3},
	{Rank: 2, PlayerID: "p2", Name: "Bruno", Pts: 3, GP: 2, W: 1, L: 1},
	{Rank: 3, PlayerID: "p3", Name: "Carla", Pts: 1, GP: 1, D: 1},
	{Rank: 4, PlayerID: "p4", Name: "Diego", GP: 1, L: 1, GD: -3},
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(message, true)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.SlackNotifSent())
}

func TestSendMessage_NoTokenOnlyLogs(t *testing.T) {
	metrics := metrics.NewMock()
	notifier := NewNotifier("", "C123", metrics)

	err := notifier.SendLeaderboard(table, false)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := notifier.sendMessage(message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	err := notifier.SendJornadaSummary(jornada.FinishSummary{}, nil, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
}

func TestFormatLeaderboard(t *testing.T) {
	client := &Notifier{channelID: "C123"}

	t.Run("rows", func(t *testing.T) {
		msg := client.formatLeaderboard(table)
		require.Len(t, msg.Blocks.BlockSet, 1+len(table))

		header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
		require.True(t, ok, "first block should be a header")
		assert.Contains(t, header.Text.Text, "Leaderboard")

		first, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Equal(t, "1. :first_place_medal: Ana\n> Pts: 6 | GP: 2 | W-D-L: 2-0-0 | GD: +3", first.Text.Text)

		last, ok := msg.Blocks.BlockSet[4].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, last.Text.Text, "GD: -3")
	})

	t.Run("empty", func(t *testing.T) {
		msg := client.formatLeaderboard(nil)
		require.Len(t, msg.Blocks.BlockSet, 2)
		section := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		assert.Contains(t, section.Text.Text, "No players yet")
	})

	t.Run("long tables are cut", func(t *testing.T) {
		var long []leaderboard.Row
		for i := 1; i <= maxLeaderboardRows+5; i++ {
			long = append(long, leaderboard.Row{Rank: i, PlayerID: fmt.Sprint(i), Name: fmt.Sprint("P", i)})
		}
		msg := client.formatLeaderboard(long)
		require.Len(t, msg.Blocks.BlockSet, 1+maxLeaderboardRows+1)
		ctxBlock, ok := msg.Blocks.BlockSet[len(msg.Blocks.BlockSet)-1].(*slackapi.ContextBlock)
		require.True(t, ok)
		text := ctxBlock.ContextElements.Elements[0].(*slackapi.TextBlockObject)
		assert.Equal(t, "...and 5 more players", text.Text)
	})
}

func TestFormatJornadaSummary(t *testing.T) {
	a, b := "ta", "tb"
	summary := jornada.FinishSummary{
		Archived: []jornada.MatchSlot{{
			Group: jornada.Group1, Round: 2, MatchNum: 1,
			TeamAID: &a, TeamBID: &b, ScoreA: 3, ScoreB: 0, IsComplete: true,
			TeamAPlayers: []string{"p1", "p2"}, TeamBPlayers: []string{"p4", "gone"},
		}},
		Dropped: 35,
		History: 10,
	}
	client := &Notifier{channelID: "C123"}
	msg := client.formatJornadaSummary(summary, table)
	require.Len(t, msg.Blocks.BlockSet, 5)

	details := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	assert.Equal(t, "Matches played: 1\nEmpty slots discarded: 35\nMatches in history: 10", details.Text.Text)

	results := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	assert.Contains(t, results.Text.Text, "Group 1 R2: Ana/Bruno 3 - 0 Diego/?")

	_, ok := msg.Blocks.BlockSet[3].(*slackapi.DividerBlock)
	assert.True(t, ok)

	top := msg.Blocks.BlockSet[4].(*slackapi.SectionBlock)
	assert.Contains(t, top.Text.Text, "Ana (6 pts)")
	assert.NotContains(t, top.Text.Text, "Diego")
}
