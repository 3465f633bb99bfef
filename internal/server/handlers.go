package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jumpypanter/serverforms/internal/adapters/render/chat"
	"github.com/jumpypanter/serverforms/internal/domain"
)

type startRequest struct {
	Player string `json:"player"`
}

type answerRequest struct {
	Player string `json:"player"`
	Answer string `json:"answer"`
}

type commandResponse struct {
	Messages []string `json:"messages"`
	Error    string   `json:"error,omitempty"`
}

// captureNotifier collects engine output as plain text lines; the HTTP
// surface carries text uncolored and leaves styling to the client.
type captureNotifier struct {
	messages []string
}

func (n *captureNotifier) Success(message string) {
	n.messages = append(n.messages, chat.Strip(message))
}

func (n *captureNotifier) Failure(message string) {
	n.messages = append(n.messages, chat.Strip(message))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Player == "" {
		writeJSON(w, http.StatusBadRequest, commandResponse{Error: "player is required"})
		return
	}

	formKey := chi.URLParam(r, "form")
	form, ok := s.catalog.Form(formKey)
	if !ok {
		form, ok = s.catalog.FormByCommand(formKey)
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, commandResponse{Error: domain.ErrFormNotFound.Error()})
		return
	}

	playerID, err := s.resolver.Resolve(r.Context(), req.Player)
	if err != nil {
		s.logger.Error("failed to resolve player identity", slog.String("player", req.Player), slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, commandResponse{Error: "failed to resolve player identity"})
		return
	}

	notify := &captureNotifier{}
	err = s.engine.Start(r.Context(), playerID, req.Player, form, notify)
	writeCommandResult(w, notify, err)
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Player == "" {
		writeJSON(w, http.StatusBadRequest, commandResponse{Error: "player is required"})
		return
	}

	playerID, err := s.resolver.Lookup(r.Context(), req.Player)
	if err != nil {
		writeJSON(w, http.StatusNotFound, commandResponse{Error: domain.ErrPlayerNotFound.Error()})
		return
	}

	notify := &captureNotifier{}
	err = s.engine.SubmitAnswer(r.Context(), playerID, req.Answer, notify)
	writeCommandResult(w, notify, err)
}

func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	names, err := s.viewer.ListRespondents(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, commandResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"players": names})
}

func (s *Server) handleResponses(w http.ResponseWriter, r *http.Request) {
	player := chi.URLParam(r, "player")
	formName := r.URL.Query().Get("form")

	notify := &captureNotifier{}
	err := s.viewer.ViewAnswers(r.Context(), player, formName, notify)
	writeCommandResult(w, notify, err)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Reload(); err != nil {
		s.logger.Error("failed to reload catalog", slog.Any("error", err))
		writeJSON(w, http.StatusBadRequest, commandResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, commandResponse{Messages: []string{"Forms configuration reloaded successfully!"}})
}

func writeCommandResult(w http.ResponseWriter, notify *captureNotifier, err error) {
	resp := commandResponse{Messages: notify.messages}
	if err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, statusFor(err), resp)
}

func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrDuplicateSubmission), errors.Is(err, domain.ErrSessionBusy):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNoActiveSession),
		errors.Is(err, domain.ErrFormNotFound),
		errors.Is(err, domain.ErrPlayerNotFound),
		errors.Is(err, domain.ErrNoResponses):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrMissingFormName), errors.Is(err, domain.ErrMalformedQuestion):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
