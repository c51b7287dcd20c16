package copilot

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	copilotService "github.com/greenchain/backend/internal/service/copilot"
)

const (
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Second
	pingInterval = 25 * time.Second
)

// WebSocketHandler lets a client chat and watch the transcript over one socket.
type WebSocketHandler struct {
	svc      *copilotService.Service
	upgrader websocket.Upgrader
}

// NewWebSocketHandler creates the WebSocket endpoint handler.
func NewWebSocketHandler(svc *copilotService.Service) *WebSocketHandler {
	return &WebSocketHandler{
		svc: svc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

type inboundMessage struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type outgoingMessage struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId,omitempty"`
	Data      any    `json:"data,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// wsConn serialises writes; gorilla allows one concurrent writer.
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsConn) send(msg outgoingMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg.Timestamp = time.Now().UnixMilli()
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteJSON(msg)
}

func (c *wsConn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout))
}

func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	snapshot, events, cancelSub, err := h.svc.Watch(sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	defer cancelSub()

	raw, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[websocket] upgrade failed: %v", err)
		return
	}
	defer raw.Close()
	conn := &wsConn{conn: raw}

	log.Printf("[websocket] new connection for session: %s", sessionID)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	raw.SetReadDeadline(time.Now().Add(readTimeout))
	raw.SetPongHandler(func(string) error {
		raw.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	if err := conn.send(outgoingMessage{Type: "snapshot", SessionID: sessionID, Data: snapshot}); err != nil {
		return
	}

	go h.readLoop(ctx, cancel, conn, sessionID)

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				conn.send(outgoingMessage{Type: "closed", SessionID: sessionID})
				return
			}
			if err := conn.send(outgoingMessage{Type: string(event.Type), SessionID: sessionID, Data: event}); err != nil {
				log.Printf("[websocket] write error: %v", err)
				return
			}
		case <-ticker.C:
			if err := conn.ping(); err != nil {
				return
			}
		}
	}
}

func (h *WebSocketHandler) readLoop(ctx context.Context, cancel context.CancelFunc, conn *wsConn, sessionID string) {
	defer cancel()

	for {
		var msg inboundMessage
		if err := conn.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[websocket] read error: %v", err)
			}
			return
		}
		conn.conn.SetReadDeadline(time.Now().Add(readTimeout))

		h.handleMessage(ctx, conn, sessionID, msg)
	}
}

func (h *WebSocketHandler) handleMessage(ctx context.Context, conn *wsConn, sessionID string, msg inboundMessage) {
	switch msg.Type {
	case "message":
		_, accepted, err := h.svc.Submit(ctx, sessionID, msg.Content)
		if err != nil {
			h.sendError(conn, sessionID, err.Error())
			return
		}
		if !accepted {
			conn.send(outgoingMessage{Type: "ignored", SessionID: sessionID, Data: map[string]string{"reason": "empty message"}})
		}
	case "ping":
		conn.send(outgoingMessage{Type: "pong", SessionID: sessionID})
	default:
		h.sendError(conn, sessionID, "unsupported message type: "+msg.Type)
	}
}

func (h *WebSocketHandler) sendError(conn *wsConn, sessionID, message string) {
	if err := conn.send(outgoingMessage{Type: "error", SessionID: sessionID, Data: map[string]string{"error": message}}); err != nil {
		log.Printf("[websocket] failed to send error: %v", err)
	}
}
