package processor

import (
	"github.com/mauv0809/jornada/internal/metrics"
	"github.com/mauv0809/jornada/internal/pubsub"
)

// Processor runs a domain operation and then fans its outcome out to Slack and Pub/Sub.
type Processor struct {
	jornadas    Jornadas
	leaderboard Leaderboard
	pubsub      pubsub.PubSubClient
	notifier    Notifier
	metrics     metrics.Metrics
	topic       string
}
