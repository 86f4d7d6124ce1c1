package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"solar_advisor/internal/models"
	"solar_advisor/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1 << 12 // 4 KB
)

// Envelope types sent to live advisory clients.
const (
	wsTypeReport = "report"
	wsTypeError  = "error"
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Upgrader for HTTP -> WebSocket.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origins once the dashboard host is configurable
}

// wsConnect answers every Reading frame with an advisory report or an error envelope.
func (h *Handler) wsConnect(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go h.keepAlive(conn, done)

	ctx := c.Request.Context()
	client := c.ClientIP()
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		if err := h.answerReading(ctx, conn, client, msg); err != nil {
			if h.log != nil {
				h.log.Infow("ws_write_failed", "err", err)
			}
			return
		}
	}
}

// keepAlive pings until done is closed. WriteControl may run concurrently with the
// report writer, so no extra locking is needed.
func (h *Handler) keepAlive(conn *websocket.Conn, done <-chan struct{}) {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()
	for {
		select {
		case <-done:
			return
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		}
	}
}

// answerReading decodes one frame and writes the resulting envelope. Only write
// errors are returned; bad input and throttled frames are reported to the client.
func (h *Handler) answerReading(ctx context.Context, conn *websocket.Conn, client string, msg []byte) error {
	if !h.limiter.allow(client) {
		if h.log != nil {
			h.log.Infow("rate_limited", "client_ip", client, "path", "/ws")
		}
		return writeEnvelope(conn, wsEnvelope{Type: wsTypeError, Error: errRateLimited})
	}
	r, err := decodeReading(msg)
	if err != nil {
		return writeEnvelope(conn, wsEnvelope{Type: wsTypeError, Error: "invalid reading: " + err.Error()})
	}
	rep, err := h.services.Advise(ctx, r, service.SourceWS)
	if err != nil {
		if isClientAdviseError(err) {
			return writeEnvelope(conn, wsEnvelope{Type: wsTypeError, Error: err.Error()})
		}
		if h.log != nil {
			h.log.Errorw("ws_prediction_failed", "err", err)
		}
		return writeEnvelope(conn, wsEnvelope{Type: wsTypeError, Error: errPredict})
	}
	return writeEnvelope(conn, wsEnvelope{Type: wsTypeReport, Data: rep})
}

func decodeReading(msg []byte) (models.Reading, error) {
	var r models.Reading
	dec := json.NewDecoder(bytes.NewReader(msg))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&r); err != nil {
		return models.Reading{}, err
	}
	return r, nil
}

func writeEnvelope(conn *websocket.Conn, env wsEnvelope) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(env)
}
