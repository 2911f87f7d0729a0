package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/cpusim/schedview/internal/session"
	ws "github.com/cpusim/schedview/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams session lifecycle events to connected clients so a UI can
// reflect loading state and mode changes without polling.
type WSHandler struct {
	manager  *session.Manager
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(manager *session.Manager, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		manager:  manager,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// StreamSession godoc
// WS /ws/v1/sessions/:id/stream
// Pushes session events until the client disconnects or the session goes
// away. The stream is notify-only; clients act through the HTTP API.
func (h *WSHandler) StreamSession(c *gin.Context) {
	sess, ok := lookupSession(c, h.manager)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	events, cancel := sess.Subscribe()
	defer cancel()

	wsLog := h.log.With().Str("session_id", sess.ID.String()).Logger()
	wsLog.Info().Msg("Client connected")

	// Reader only detects disconnects; all writes happen below so the
	// connection never sees concurrent writers.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					wsLog.Warn().Err(err).Msg("Unexpected close")
				} else {
					wsLog.Debug().Msg("Connection closed")
				}
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case ev := <-events:
			payload := ws.StatePayload{
				Event:     string(ev.Kind),
				Algorithm: string(ev.Algorithm),
				Reason:    ev.Reason,
				Timestamp: time.Now().UTC().Format(time.RFC3339),
			}
			if err := ws.WriteTyped(conn, payload); err != nil {
				wsLog.Debug().Err(err).Msg("Write failed, dropping client")
				return
			}
		}
	}
}
