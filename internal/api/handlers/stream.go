package handlers

import (
	"context"
	"net/http"
	"time"

	"portfolio-projection/internal/api/models"
	"portfolio-projection/internal/playback"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait     = 2 * time.Second
	pongWait      = 60 * time.Second
	pingPeriod    = (pongWait * 9) / 10
	maxIntervalMS = 10_000
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are enforced by the CORS middleware.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Playback handles GET /api/v1/simulations/playback. The query string is a
// simulation request; the run is computed first and then streamed one
// frame per month over a websocket.
func (h *SimulationHandler) Playback(c *gin.Context) {
	var q models.PlaybackQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBadRequest(c, err)
		return
	}
	if q.IntervalMS < 0 || q.IntervalMS > maxIntervalMS {
		respondBadRequest(c, errInterval)
		return
	}

	// Errors are reported as plain HTTP responses before the upgrade.
	out, err := h.svc.Simulate(c.Request.Context(), q.Request)
	if err != nil {
		respondError(c, err)
		return
	}
	player, err := playback.New(out.Result.Series, time.Duration(q.IntervalMS)*time.Millisecond)
	if err != nil {
		respondError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Info("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	h.metrics.PlaybackStarted()
	defer h.metrics.PlaybackEnded()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	closed := make(chan struct{})
	go readPump(conn, closed)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	frames := player.Frames(ctx)
	for {
		select {
		case <-closed:
			return
		case <-ctx.Done():
			return
		case frame, ok := <-frames:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "playback finished"))
				return
			}
			if err := conn.WriteJSON(frame); err != nil {
				h.logger.Info("playback write error", "error", err)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains client messages so control frames are processed, and
// closes done when the peer goes away.
func readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
