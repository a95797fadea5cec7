package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/jornada/internal/jornada"
	"github.com/mauv0809/jornada/internal/leaderboard"
	"github.com/mauv0809/jornada/internal/metrics"
	"github.com/mauv0809/jornada/internal/pubsub"
)

// New creates a new Processor publishing events to topic.
func New(jornadas Jornadas, board Leaderboard, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient, topic string) *Processor {
	return &Processor{
		jornadas:    jornadas,
		leaderboard: board,
		pubsub:      pubsub,
		notifier:    notifier,
		metrics:     metrics,
		topic:       topic,
	}
}

// FinishJornada archives the current jornada, then posts a summary to Slack and publishes a
// jornada.finished event. Once the archive succeeded, failures of the side effects are only
// logged. With dryRun the Slack message is logged instead of sent and no event is published.
func (p *Processor) FinishJornada(ctx context.Context, dryRun bool) (jornada.FinishSummary, error) {
	summary, err := p.jornadas.FinishJornada()
	if err != nil {
		return jornada.FinishSummary{}, err
	}

	table, err := p.leaderboard.Leaderboard(ctx)
	if err != nil {
		log.Error("Failed to build leaderboard for jornada summary", "error", err)
	}

	if err := p.notifier.SendJornadaSummary(summary, table, dryRun); err != nil {
		log.Error("Failed to send jornada summary", "error", err)
	}

	if dryRun {
		log.Info("[Dry Run] Skipping jornada.finished event", "archived", len(summary.Archived))
		return summary, nil
	}
	p.publish(newFinishedEvent(summary, table))
	return summary, nil
}

// AnnounceLeaderboard posts the current table to Slack.
func (p *Processor) AnnounceLeaderboard(ctx context.Context, dryRun bool) error {
	table, err := p.leaderboard.Leaderboard(ctx)
	if err != nil {
		return fmt.Errorf("failed to build leaderboard: %w", err)
	}
	return p.notifier.SendLeaderboard(table, dryRun)
}

func (p *Processor) publish(event pubsub.JornadaFinishedEvent) {
	if err := p.pubsub.SendMessage(p.topic, event); err != nil {
		p.metrics.IncEventsFailed()
		log.Error("Failed to publish event", "type", event.Type, "topic", p.topic, "error", err)
		return
	}
	p.metrics.IncEventsPublished()
	log.Info("Published event", "type", event.Type, "topic", p.topic)
}

func newFinishedEvent(summary jornada.FinishSummary, table []leaderboard.Row) pubsub.JornadaFinishedEvent {
	ids := make([]string, 0, len(summary.Archived))
	for _, m := range summary.Archived {
		ids = append(ids, m.ID)
	}
	event := pubsub.JornadaFinishedEvent{
		Type:       pubsub.EventJornadaFinished,
		FinishedAt: time.Now().UTC(),
		Archived:   len(summary.Archived),
		Dropped:    summary.Dropped,
		History:    summary.History,
		MatchIDs:   ids,
	}
	if len(table) > 0 {
		event.Leader = table[0].Name
	}
	return event
}
