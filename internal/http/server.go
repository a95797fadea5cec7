package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/mauv0809/jornada/internal/club"
	"github.com/mauv0809/jornada/internal/config"
	"github.com/mauv0809/jornada/internal/jornada"
	"github.com/mauv0809/jornada/internal/leaderboard"
	"github.com/mauv0809/jornada/internal/metrics"
	"github.com/mauv0809/jornada/internal/notifier"
	"github.com/mauv0809/jornada/internal/processor"
)

func NewServer(players club.ClubStore, jornadas *jornada.Service, board *leaderboard.Service, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, processor *processor.Processor) *Server {
	server := &Server{
		Players:        players,
		Jornadas:       jornadas,
		Leaderboard:    board,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Processor:      processor,
		Router:         http.NewServeMux(),
		validate:       validator.New(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("GET /players", Chain(s.ListPlayersHandler(), paramsMiddleware))
	s.Router.Handle("PUT /players", Chain(s.SavePlayersHandler(), paramsMiddleware))
	s.Router.Handle("POST /players", Chain(s.AddPlayerHandler(), paramsMiddleware))
	s.Router.Handle("PATCH /players/{id}", Chain(s.RenamePlayerHandler(), paramsMiddleware))

	s.Router.Handle("GET /session", Chain(s.GetSessionHandler(), paramsMiddleware))
	s.Router.Handle("POST /session", Chain(s.StartSessionHandler(), paramsMiddleware))
	s.Router.Handle("PUT /session", Chain(s.SaveSessionHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /session", Chain(s.ResetSessionHandler(), paramsMiddleware))
	s.Router.Handle("PUT /session/teams/{id}/players", Chain(s.AssignPlayersHandler(), paramsMiddleware))
	s.Router.Handle("PUT /session/teams/{id}/group", Chain(s.SetTeamGroupHandler(), paramsMiddleware))
	s.Router.Handle("GET /session/groups/{group}/teams", Chain(s.GroupTeamsHandler(), paramsMiddleware))
	s.Router.Handle("POST /session/teams/fill", Chain(s.FillTeamsHandler(), paramsMiddleware))
	s.Router.Handle("PUT /session/matches/{id}", Chain(s.RecordResultHandler(), paramsMiddleware))
	s.Router.Handle("POST /session/finish", Chain(s.FinishJornadaHandler(), paramsMiddleware))

	s.Router.Handle("GET /history", Chain(s.HistoryHandler(), paramsMiddleware))
	s.Router.Handle("GET /leaderboard", Chain(s.LeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("POST /leaderboard/announce", Chain(s.AnnounceLeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("POST /slack/command/leaderboard", Chain(s.LeaderboardCommandHandler(), paramsMiddleware, s.slackVerifyMiddleware))
	s.Router.Handle("GET /backup", Chain(s.BackupHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
