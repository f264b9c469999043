// Package api provides HTTP handlers for CampaignForge session endpoints.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bluereef/campaignforge/internal/models"
)

// sendMessageRequest is the body for POST /sessions/{id}/messages.
type sendMessageRequest struct {
	Message string `json:"message"`
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(map[string]string{"service": "campaignforge"}))
}

// sessionsHandler handles POST /sessions, starting a new campaign session.
func (s *Server) sessionsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.sessionsHandler: processing request", "method", r.Method, "path", r.URL.Path)
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		slog.Warn("Server.sessionsHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	resp, err := s.orchestrator.StartSession(r.Context())
	if err != nil {
		slog.Error("Server.sessionsHandler: failed to start session", "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to start session"))
		return
	}

	slog.Info("Server.sessionsHandler: session started", "sessionID", resp.SessionID)
	writeJSONResponse(w, http.StatusCreated, models.Success(resp))
}

// sendMessageHandler handles POST /sessions/{id}/messages, one conversation turn.
func (s *Server) sendMessageHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	sessionID := r.Context().Value(ContextKeySessionID).(string)
	slog.Debug("Server.sendMessageHandler: processing request", "method", r.Method, "sessionID", sessionID)
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.sendMessageHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	if req.Message == "" {
		writeJSONResponse(w, http.StatusBadRequest, models.Error(models.ErrEmptyMessage.Error()))
		return
	}

	resp := s.orchestrator.ContinueSession(r.Context(), sessionID, req.Message)
	if resp.Status == models.ConversationStatusError {
		if resp.Message == "Session not found" {
			writeJSONResponse(w, http.StatusNotFound, models.Error(resp.Message))
			return
		}
		writeJSONResponse(w, http.StatusInternalServerError, models.Error(resp.Message))
		return
	}

	slog.Debug("Server.sendMessageHandler: turn processed", "sessionID", sessionID, "stage", resp.Stage)
	writeJSONResponse(w, http.StatusOK, models.Success(resp))
}

// sessionSummaryHandler handles GET /sessions/{id}/summary.
func (s *Server) sessionSummaryHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Context().Value(ContextKeySessionID).(string)
	slog.Debug("Server.sessionSummaryHandler: processing request", "sessionID", sessionID)
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	summary, err := s.orchestrator.GetSummary(sessionID)
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			writeJSONResponse(w, http.StatusNotFound, models.Error("Session not found"))
			return
		}
		slog.Error("Server.sessionSummaryHandler: failed to get summary", "error", err, "sessionID", sessionID)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to get session summary"))
		return
	}

	writeJSONResponse(w, http.StatusOK, models.Success(summary))
}

// campaignOutputHandler handles GET /sessions/{id}/campaign.
func (s *Server) campaignOutputHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Context().Value(ContextKeySessionID).(string)
	slog.Debug("Server.campaignOutputHandler: processing request", "sessionID", sessionID)
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	output, err := s.orchestrator.GetOutput(sessionID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrSessionNotFound):
			writeJSONResponse(w, http.StatusNotFound, models.Error("Session not found"))
		case errors.Is(err, models.ErrOutputNotReady):
			writeJSONResponse(w, http.StatusConflict, models.Error("Campaign is not ready yet"))
		default:
			slog.Error("Server.campaignOutputHandler: failed to get output", "error", err, "sessionID", sessionID)
			writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to get campaign output"))
		}
		return
	}

	writeJSONResponse(w, http.StatusOK, models.Success(output))
}

// closeSessionHandler handles DELETE /sessions/{id}.
func (s *Server) closeSessionHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Context().Value(ContextKeySessionID).(string)
	slog.Debug("Server.closeSessionHandler: processing request", "method", r.Method, "sessionID", sessionID)
	if r.Method != http.MethodDelete {
		w.Header().Set("Allow", http.MethodDelete)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	existed, err := s.orchestrator.CloseSession(sessionID)
	if err != nil {
		slog.Error("Server.closeSessionHandler: failed to close session", "error", err, "sessionID", sessionID)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to close session"))
		return
	}
	if !existed {
		writeJSONResponse(w, http.StatusNotFound, models.Error("Session not found"))
		return
	}

	slog.Info("Server.closeSessionHandler: session closed", "sessionID", sessionID)
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Session closed", nil))
}
