package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/jornada/internal/club"
	"github.com/mauv0809/jornada/internal/database"
	"github.com/mauv0809/jornada/internal/jornada"
	"github.com/slack-go/slack"
)

// maxTeams bounds the fill count accepted from clients.
const maxTeams = 64

var errInvalidPayload = errors.New("invalid payload")

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// ListPlayersHandler returns the player pool in saved order.
func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Players.LoadPlayers()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, players)
	}
}

// SavePlayersHandler replaces the whole player pool with the submitted list.
func (s *Server) SavePlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req savePlayersRequest
		if err := json.NewDecoder(r.Body).Decode(&req.Players); err != nil {
			writeError(w, fmt.Errorf("%w: %v", errInvalidPayload, err))
			return
		}
		for i := range req.Players {
			req.Players[i].Name = strings.TrimSpace(req.Players[i].Name)
		}
		if err := s.validateRequest(&req); err != nil {
			writeError(w, err)
			return
		}

		players := make([]club.Player, 0, len(req.Players))
		for _, p := range req.Players {
			players = append(players, club.Player{ID: p.ID, Name: p.Name})
		}
		if err := s.Players.SavePlayers(players); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, players)
	}
}

func (s *Server) AddPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req playerNameRequest
		if err := s.decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		player, err := s.Players.AddPlayer(req.Name)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, player)
	}
}

func (s *Server) RenamePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req playerNameRequest
		if err := s.decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		player, err := s.Players.RenamePlayer(r.PathValue("id"), req.Name)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, player)
	}
}

func (s *Server) GetSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := s.Jornadas.CurrentSession()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, session)
	}
}

func (s *Server) StartSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := s.Jornadas.StartSession()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, session)
	}
}

// SaveSessionHandler stores a whole session edited by the client.
func (s *Server) SaveSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var session jornada.Session
		if err := s.decode(r, &session); err != nil {
			writeError(w, err)
			return
		}
		saved, err := s.Jornadas.SaveProgress(&session)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, saved)
	}
}

func (s *Server) ResetSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Jornadas.ResetSession(); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) AssignPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req assignPlayersRequest
		if err := s.decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		team, err := s.Jornadas.AssignPlayers(r.PathValue("id"), req.PlayerIDs)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, team)
	}
}

func (s *Server) SetTeamGroupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req teamGroupRequest
		if err := s.decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		team, err := s.Jornadas.SetTeamGroup(r.PathValue("id"), jornada.Group(req.Group))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, team)
	}
}

// GroupTeamsHandler lists the teams a slot of the given group can be played by.
func (s *Server) GroupTeamsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teams, err := s.Jornadas.TeamsInGroup(jornada.Group(r.PathValue("group")))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, teams)
	}
}

// FillTeamsHandler tops the session up to ?count teams, 12 by default.
func (s *Server) FillTeamsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count := jornada.DefaultTeamCount
		if raw := r.URL.Query().Get("count"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 || n > maxTeams {
				writeError(w, fmt.Errorf("%w: count must be between 1 and %d", errInvalidPayload, maxTeams))
				return
			}
			count = n
		}
		added, err := s.Jornadas.FillTeams(count)
		if err != nil {
			writeError(w, err)
			return
		}
		if added == nil {
			added = []jornada.Team{}
		}
		writeJSON(w, http.StatusOK, added)
	}
}

func (s *Server) RecordResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req jornada.MatchUpdate
		if err := s.decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		slot, err := s.Jornadas.RecordResult(r.PathValue("id"), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, slot)
	}
}

// FinishJornadaHandler archives the current jornada and announces it.
func (s *Server) FinishJornadaHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := s.Processor.FinishJornada(r.Context(), isDryRunFromContext(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}

func (s *Server) HistoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		history, err := s.Jornadas.History()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, history)
	}
}

// LeaderboardHandler returns a handler that serves the leaderboard over history and the live jornada.
func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, err := s.Leaderboard.Leaderboard(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, table)
	}
}

// AnnounceLeaderboardHandler posts the leaderboard to the configured Slack channel.
func (s *Server) AnnounceLeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Processor.AnnounceLeaderboard(r.Context(), isDryRunFromContext(r)); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// LeaderboardCommandHandler returns a handler for the /leaderboard Slack command.
func (s *Server) LeaderboardCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, err := slack.SlashCommandParse(r)
		if err != nil {
			http.Error(w, "Failed to parse slash command", http.StatusBadRequest)
			log.Error("Failed to parse slash command", "error", err)
			return
		}
		log.Info("Received leaderboard command", "user", cmd.UserName, "channel", cmd.ChannelID)

		table, err := s.Leaderboard.Leaderboard(r.Context())
		if err != nil {
			http.Error(w, "Failed to build leaderboard", http.StatusInternalServerError)
			log.Error("Failed to build leaderboard", "error", err)
			return
		}

		msg, err := s.Notifier.FormatLeaderboardResponse(table)
		if err != nil {
			http.Error(w, "Failed to format leaderboard", http.StatusInternalServerError)
			log.Error("Failed to format leaderboard", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}

		respondWithSlackMsg(w, slackMsg)
	}
}

// BackupHandler streams a byte-for-byte copy of the database file.
func (s *Server) BackupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Cfg.Turso.PrimaryURL != "" {
			writeError(w, database.ErrBackupUnsupported)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Disposition", `attachment; filename="jornada-backup.db"`)
		n, err := database.Backup(s.Cfg.DBName, w)
		if err != nil {
			if n == 0 {
				w.Header().Del("Content-Disposition")
				writeError(w, err)
				return
			}
			log.Error("Backup stream interrupted", "bytes", n, "error", err)
			return
		}
		log.Info("Served database backup", "bytes", n)
	}
}

// decode reads a JSON body into v and validates it.
func (s *Server) decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidPayload, err)
	}
	return s.validateRequest(v)
}

func (s *Server) validateRequest(payload any) error {
	if err := s.validate.Struct(payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", errInvalidPayload, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response to JSON", "error", err)
	}
}

// writeError maps domain errors to status codes. Anything unknown is logged and reported as 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errInvalidPayload), errors.Is(err, jornada.ErrInvalidGroup):
		status = http.StatusBadRequest
	case errors.Is(err, jornada.ErrNoActiveSession),
		errors.Is(err, jornada.ErrMatchNotFound),
		errors.Is(err, jornada.ErrTeamNotFound),
		errors.Is(err, club.ErrPlayerNotFound):
		status = http.StatusNotFound
	case errors.Is(err, jornada.ErrSessionActive):
		status = http.StatusConflict
	case errors.Is(err, database.ErrBackupUnsupported):
		status = http.StatusNotImplemented
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Error("Request failed", "error", err)
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Error: msg})
}
