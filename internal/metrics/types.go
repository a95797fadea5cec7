package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	JornadasStarted     prometheus.Counter
	JornadasFinished    prometheus.Counter
	MatchesArchived     prometheus.Counter
	MatchesDropped      prometheus.Counter
	ResultsRecorded     prometheus.Counter
	LeaderboardBuilds   prometheus.Counter
	LeaderboardDuration prometheus.Histogram
	SlackNotifSent      prometheus.Counter
	SlackNotifFailed    prometheus.Counter
	EventsPublished     prometheus.Counter
	EventsFailed        prometheus.Counter
	StartupTimeSeconds  prometheus.Gauge
}
