package transport

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/towerkeep/mudcore/internal/config"
	"github.com/towerkeep/mudcore/internal/logger"
	"github.com/towerkeep/mudcore/internal/session"
)

// inboundFrame is the only shape a WebSocket client sends.
type inboundFrame struct {
	Input string `json:"input"`
}

// outboundFrame is what the server sends: plain game text, a system
// notice (disconnect reasons, admin broadcasts), or an input prompt.
type outboundFrame struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

// WebSocketConn wraps a gorilla/websocket connection as a session.Connection,
// framing every outbound line as JSON instead of the teacher's plain-text
// wire format, per the browser-client protocol. Grounded on
// internal/server/websocket_client.go's read-buffering approach for
// messages containing multiple newline-separated commands.
type WebSocketConn struct {
	conn    *websocket.Conn
	readBuf []string
	mu      sync.Mutex
	masked  bool
}

// NewWebSocketConn wraps an upgraded connection, applying the configured
// maximum message size.
func NewWebSocketConn(conn *websocket.Conn, maxMessageSize int64) *WebSocketConn {
	if maxMessageSize <= 0 {
		maxMessageSize = 4096
	}
	conn.SetReadLimit(maxMessageSize)
	return &WebSocketConn{conn: conn, readBuf: make([]string, 0)}
}

// ReadLine returns the next buffered input line, decoding a new frame if
// the buffer is empty.
func (w *WebSocketConn) ReadLine() (string, error) {
	w.mu.Lock()
	if len(w.readBuf) > 0 {
		line := w.readBuf[0]
		w.readBuf = w.readBuf[1:]
		w.mu.Unlock()
		return line, nil
	}
	w.mu.Unlock()

	_, raw, err := w.conn.ReadMessage()
	if err != nil {
		return "", err
	}

	var frame inboundFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		// Non-JSON payloads are treated as empty input and skipped rather
		// than tearing down the connection over a malformed frame.
		return w.ReadLine()
	}
	if frame.Input == "" {
		return w.ReadLine()
	}
	return frame.Input, nil
}

// WriteLine sends line as a "text" frame.
func (w *WebSocketConn) WriteLine(line string) error {
	return w.writeFrame("text", line)
}

func (w *WebSocketConn) writeFrame(kind, data string) error {
	blob, err := json.Marshal(outboundFrame{Type: kind, Data: data})
	if err != nil {
		return err
	}
	return w.conn.WriteMessage(websocket.TextMessage, blob)
}

// SetMasked emits a "prompt" frame so the browser client can switch its
// input box to a password field; the server has no way to suppress local
// echo over this transport, unlike telnet.
func (w *WebSocketConn) SetMasked(masked bool) {
	w.masked = masked
	kind := "prompt"
	data := "text"
	if masked {
		data = "password"
	}
	if err := w.writeFrame(kind, data); err != nil {
		logger.Warning("websocket mask notice failed", "remote_addr", w.RemoteAddr(), "error", err)
	}
}

// RemoteAddr returns the peer's address as a string.
func (w *WebSocketConn) RemoteAddr() string {
	return w.conn.RemoteAddr().String()
}

// Close closes the underlying WebSocket connection.
func (w *WebSocketConn) Close() error {
	return w.conn.Close()
}

var _ session.Connection = (*WebSocketConn)(nil)

// ListenWebSocket serves the upgrade endpoint on addr, handing each
// accepted connection to the session manager. It blocks until the HTTP
// server stops or errors.
func ListenWebSocket(addr string, cfg config.WebSocketConfig, manager *session.Manager, limiter *ConnLimiter) error {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return cfg.IsOriginAllowed(r.Header.Get("Origin"), r.Host)
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warning("websocket upgrade failed", "remote_addr", r.RemoteAddr, "error", err)
			return
		}
		ip := extractIP(conn.RemoteAddr().String())
		if limiter != nil && !limiter.TryAcquire(ip) {
			conn.Close()
			return
		}
		go func() {
			if limiter != nil {
				defer limiter.Release(ip)
			}
			manager.Serve(NewWebSocketConn(conn, cfg.MaxMessageSize))
		}()
	})

	logger.Info("websocket listener started", "addr", addr)
	return http.ListenAndServe(addr, mux)
}
