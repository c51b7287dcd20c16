package copilot

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/greenchain/backend/pkg/utils"
)

const heartbeatInterval = 15 * time.Second

// handleStream pushes transcript changes as Server-Sent Events. The first
// event is a snapshot so clients can render without a separate fetch.
func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	snapshot, events, cancel, err := h.svc.Watch(sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	defer cancel()

	utils.SetupSSEHeaders(w)
	w.WriteHeader(http.StatusOK)

	ctx := r.Context()
	log.Printf("[sse] opening copilot stream for session=%s", sessionID)

	if err := utils.SendSSEEvent(w, flusher, "snapshot", snapshot); err != nil {
		log.Printf("[sse] %v", err)
		return
	}

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[sse] closing copilot stream for session=%s", sessionID)
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := utils.SendSSEEvent(w, flusher, string(event.Type), event); err != nil {
				log.Printf("[sse] %v", err)
				return
			}
		case <-ticker.C:
			if err := utils.SendSSEComment(w, flusher, "heartbeat"); err != nil {
				return
			}
		}
	}
}
