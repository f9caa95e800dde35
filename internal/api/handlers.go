package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/zenochat/zenochat/internal/gateway"
)

type APIHandler struct {
	gateway     *gateway.Gateway
	environment string
	logger      *zap.Logger
}

func NewAPIHandler(gw *gateway.Gateway, environment string, logger *zap.Logger) *APIHandler {
	return &APIHandler{
		gateway:     gw,
		environment: environment,
		logger:      logger,
	}
}

type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"sessionId"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (h *APIHandler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.SessionID == "" {
		req.SessionID = gateway.DefaultSessionID
	}

	reply, err := h.gateway.Handle(r.Context(), req.Message, req.SessionID)
	if err != nil {
		h.writeGatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		Response:  reply.Text,
		SessionID: reply.SessionID,
	})
}

type ClearResponse struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

func (h *APIHandler) ClearChatHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	ack := h.gateway.Clear(sessionID)
	writeJSON(w, http.StatusOK, ClearResponse{
		Message:   ack.Message,
		SessionID: ack.SessionID,
	})
}

type HealthResponse struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
}

func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:      "OK",
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Environment: h.environment,
	})
}

func (h *APIHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "Endpoint not found"})
}

func (h *APIHandler) writeGatewayError(w http.ResponseWriter, err error) {
	var gerr *gateway.Error
	if !errors.As(err, &gerr) {
		h.logger.Error("unclassified gateway error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	status := http.StatusInternalServerError
	switch gerr.Code {
	case gateway.CodeInvalidRequest:
		status = http.StatusBadRequest
	case gateway.CodeRateLimited:
		status = http.StatusTooManyRequests
	case gateway.CodeUnauthorized:
		status = http.StatusUnauthorized
	}

	writeJSON(w, status, ErrorResponse{Error: gerr.Message, Details: gerr.Details})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
