package controller

import (
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// SocketHandler streams controller snapshots over a websocket
type SocketHandler struct {
	controller  *Controller
	connections atomic.Int64
}

// NewSocketHandler creates a new socket handler
func NewSocketHandler(controller *Controller) *SocketHandler {
	return &SocketHandler{controller: controller}
}

// CurrentConnectionCount returns the number of open websocket peers
func (h *SocketHandler) CurrentConnectionCount() int64 {
	return h.connections.Load()
}

// Connect upgrades the request and pushes every new snapshot until the peer goes away
func (h *SocketHandler) Connect(c echo.Context) error {
	ctx := c.Request().Context()

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.ErrorContext(
			ctx, "failed to upgrade websocket",
			slog.String("error", err.Error()),
		)
		return nil
	}
	defer ws.Close()

	h.connections.Add(1)
	defer h.connections.Add(-1)

	snapshots, unsubscribe := h.controller.Subscribe()
	defer unsubscribe()

	// the reader only drains control frames and notices the peer closing
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		ws.SetReadDeadline(time.Now().Add(pongWait))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			_, _, err := ws.ReadMessage()
			if err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return nil
		case <-ctx.Done():
			return nil
		case snapshot, ok := <-snapshots:
			if !ok {
				ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
				return nil
			}
			ws.SetWriteDeadline(time.Now().Add(writeWait))
			err := ws.WriteJSON(snapshot)
			if err != nil {
				slog.DebugContext(
					ctx, "failed to write snapshot",
					slog.String("error", err.Error()),
				)
				return nil
			}
		case <-ticker.C:
			err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			if err != nil {
				return nil
			}
		}
	}
}
