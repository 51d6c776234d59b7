package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"mentora-backend/internal/controllers"
	"mentora-backend/internal/middleware"
	"mentora-backend/internal/models"
	"mentora-backend/internal/session"
)

// conn serializes writes; gorilla allows one concurrent writer.
type conn struct {
	ws      *websocket.Conn
	writeMu sync.Mutex
}

func (c *conn) send(msg models.WSMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

// Hub streams tutor replies over WebSocket and fans completed replies out to
// every connection of the same session.
type Hub struct {
	mu          sync.RWMutex
	connections map[uuid.UUID][]*conn
	auth        *middleware.SessionAuth
	store       *session.Store
	dispatcher  *controllers.Dispatcher
	upgrader    websocket.Upgrader
}

func NewHub(auth *middleware.SessionAuth, store *session.Store, dispatcher *controllers.Dispatcher, allowedOrigin string) *Hub {
	return &Hub{
		connections: make(map[uuid.UUID][]*conn),
		auth:        auth,
		store:       store,
		dispatcher:  dispatcher,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || middleware.OriginAllowed(origin, allowedOrigin)
			},
		},
	}
}

// HandleTutorStream authenticates via the token query param, then treats
// every text frame as a tutor request and answers it with chunk events
// followed by a completed or error event.
func (h *Hub) HandleTutorStream(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sessionID, err := h.auth.ParseToken(tokenStr)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sess, err := h.store.Get(sessionID)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	c := &conn{ws: ws}
	h.registerConnection(sessionID, c)
	defer h.unregisterConnection(sessionID, c)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			break
		}
		sess.Touch()
		h.stream(ctx, sess, c, data)
	}
}

func (h *Hub) stream(ctx context.Context, sess *session.Session, c *conn, payload []byte) {
	sent := 0
	onChunk := func(chunk string) error {
		sent++
		return c.send(models.WSMessage{
			Type:    models.WSChunk,
			Payload: models.ChunkEvent{Chunk: chunk, TotalChunksSent: sent},
		})
	}

	view, err := h.dispatcher.Stream(ctx, sess, models.FeatureTutor, payload, onChunk)
	if err != nil {
		code, message := errorEvent(err)
		c.send(models.WSMessage{Type: models.WSError, Payload: models.ErrorEvent{ErrorCode: code, ErrorMessage: message}})
		return
	}

	if view.LastError != nil {
		c.send(models.WSMessage{
			Type:    models.WSError,
			Payload: models.ErrorEvent{ErrorCode: string(view.LastError.Kind), ErrorMessage: view.LastError.Message},
		})
		return
	}

	var text string
	if n := len(view.History); n > 0 {
		text = view.History[n-1].Content
	}
	h.SendToSession(sess.ID, models.WSMessage{
		Type:    models.WSCompleted,
		Payload: models.CompletedEvent{Feature: models.FeatureTutor, Text: text},
	})
}

func errorEvent(err error) (string, string) {
	var inputErr *controllers.InputError
	switch {
	case errors.As(err, &inputErr):
		return "VALIDATION_ERROR", inputErr.Error()
	case errors.Is(err, controllers.ErrBusy):
		return "BUSY", err.Error()
	default:
		log.Printf("Tutor stream failed: %v", err)
		return "INTERNAL_ERROR", "An unexpected error occurred"
	}
}

func (h *Hub) registerConnection(sessionID uuid.UUID, c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.connections[sessionID] = append(h.connections[sessionID], c)
	log.Printf("WebSocket connected: session %s (total: %d)", sessionID, len(h.connections[sessionID]))
}

func (h *Hub) unregisterConnection(sessionID uuid.UUID, c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c.ws.Close()

	conns := h.connections[sessionID]
	for i, existing := range conns {
		if existing == c {
			h.connections[sessionID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(h.connections[sessionID]) == 0 {
		delete(h.connections, sessionID)
	}

	log.Printf("WebSocket disconnected: session %s", sessionID)
}

// ConnectionCount reports the open connections of a session.
func (h *Hub) ConnectionCount(sessionID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections[sessionID])
}

// SendToSession writes msg to every open connection of the session.
func (h *Hub) SendToSession(sessionID uuid.UUID, msg models.WSMessage) {
	h.mu.RLock()
	conns := append([]*conn(nil), h.connections[sessionID]...)
	h.mu.RUnlock()

	for _, c := range conns {
		if err := c.send(msg); err != nil {
			log.Printf("WebSocket send failed: session %s: %v", sessionID, err)
		}
	}
}
