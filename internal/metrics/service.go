package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		JornadasStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jornada_sessions_started_total",
			Help: "The total number of jornadas started.",
		}),
		JornadasFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jornada_sessions_finished_total",
			Help: "The total number of jornadas finished and archived.",
		}),
		MatchesArchived: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jornada_matches_archived_total",
			Help: "The total number of complete matches moved into the match history.",
		}),
		MatchesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jornada_matches_dropped_total",
			Help: "The total number of incomplete match slots discarded when a jornada finished.",
		}),
		ResultsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jornada_results_recorded_total",
			Help: "The total number of match slot edits.",
		}),
		LeaderboardBuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jornada_leaderboard_builds_total",
			Help: "The total number of leaderboard computations.",
		}),
		LeaderboardDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "jornada_leaderboard_duration_seconds",
			Help:    "The duration of a leaderboard computation, store reads included.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jornada_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jornada_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jornada_events_published_total",
			Help: "The total number of events published to Pub/Sub.",
		}),
		EventsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jornada_events_failed_total",
			Help: "The total number of events that failed to publish.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "jornada_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.JornadasStarted,
		s.JornadasFinished,
		s.MatchesArchived,
		s.MatchesDropped,
		s.ResultsRecorded,
		s.LeaderboardBuilds,
		s.LeaderboardDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.EventsPublished,
		s.EventsFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncJornadasStarted() {
	s.JornadasStarted.Inc()
}

func (s *Service) IncJornadasFinished() {
	s.JornadasFinished.Inc()
}

func (s *Service) AddMatchesArchived(n int) {
	s.MatchesArchived.Add(float64(n))
}

func (s *Service) AddMatchesDropped(n int) {
	s.MatchesDropped.Add(float64(n))
}

func (s *Service) IncResultsRecorded() {
	s.ResultsRecorded.Inc()
}

func (s *Service) IncLeaderboardBuilds() {
	s.LeaderboardBuilds.Inc()
}

func (s *Service) ObserveLeaderboardDuration(duration float64) {
	s.LeaderboardDuration.Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) IncEventsPublished() {
	s.EventsPublished.Inc()
}

func (s *Service) IncEventsFailed() {
	s.EventsFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
