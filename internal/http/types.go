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

type Server struct {
	Players        club.ClubStore
	Jornadas       *jornada.Service
	Leaderboard    *leaderboard.Service
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	Router         *http.ServeMux
	validate       *validator.Validate
}

type playerPayload struct {
	ID   string `json:"id" validate:"required,max=64"`
	Name string `json:"name" validate:"required,max=100"`
}

type savePlayersRequest struct {
	Players []playerPayload `validate:"dive"`
}

type playerNameRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type assignPlayersRequest struct {
	PlayerIDs []string `json:"player_ids" validate:"dive,required"`
}

type teamGroupRequest struct {
	Group string `json:"group" validate:"required,oneof='Group 1' 'Group 2'"`
}

type errorResponse struct {
	Error string `json:"error"`
}
