package copilot

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/greenchain/backend/internal/analysis/topic"
	copilotService "github.com/greenchain/backend/internal/service/copilot"
	"github.com/greenchain/backend/pkg/utils"
)

// Handler serves the Copilot conversation API.
type Handler struct {
	svc *copilotService.Service
	ws  *WebSocketHandler
}

// New creates the Copilot handler.
func New(svc *copilotService.Service) *Handler {
	return &Handler{
		svc: svc,
		ws:  NewWebSocketHandler(svc),
	}
}

// RegisterRoutes mounts the Copilot routes under /copilot.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/copilot", func(cr chi.Router) {
		cr.Get("/quick-actions", h.handleQuickActions)
		cr.Post("/resolve", h.handleResolve)
		cr.Post("/sessions", h.handleCreateSession)
		cr.Route("/sessions/{sessionID}", func(sr chi.Router) {
			sr.Get("/", h.handleGetSession)
			sr.Get("/messages", h.handleListMessages)
			sr.Post("/messages", h.handleSubmit)
			sr.Get("/stream", h.handleStream)
			sr.Get("/ws", h.ws.handleWebSocket)
		})
	})
}

func (h *Handler) handleQuickActions(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, topic.QuickActions())
}

// handleResolve answers a single question without touching any session.
func (h *Handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Input string `json:"input"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	utils.RespondJSON(w, http.StatusOK, h.svc.Resolver().Resolve(payload.Input))
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.svc.CreateSession(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, snapshot)
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.svc.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) handleListMessages(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	messages, err := h.svc.LoadTranscript(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	typing, _ := h.svc.Typing(sessionID)

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"messages": messages,
		"typing":   typing,
	})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message, accepted, err := h.svc.Submit(r.Context(), chi.URLParam(r, "sessionID"), payload.Content)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if !accepted {
		utils.RespondJSON(w, http.StatusOK, map[string]any{"accepted": false})
		return
	}

	utils.RespondJSON(w, http.StatusAccepted, map[string]any{
		"accepted": true,
		"message":  message,
	})
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, copilotService.ErrSessionNotFound):
		utils.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, copilotService.ErrClosed):
		utils.RespondError(w, http.StatusServiceUnavailable, err.Error())
	default:
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
	}
}
