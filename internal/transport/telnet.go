// Package transport implements the game-facing listeners: raw telnet and
// JSON-framed WebSocket, both producing a session.Connection the session
// manager's state machine can drive identically regardless of wire format.
// Grounded on internal/server/telnet_client.go and websocket_client.go,
// generalized to satisfy session.Connection instead of the teacher's
// bespoke per-server Client interface, and with connection/rate limiting
// folded in at accept time instead of deep inside the server loop.
package transport

import (
	"bufio"
	"net"

	"github.com/towerkeep/mudcore/internal/logger"
	"github.com/towerkeep/mudcore/internal/session"
)

// telnet IAC negotiation bytes, used only to toggle local echo around
// password entry; no other option negotiation is attempted.
const (
	iac  = 255
	will = 251
	wont = 252
	echo = 1
)

// TelnetConn wraps a raw TCP connection as a session.Connection.
type TelnetConn struct {
	conn    net.Conn
	scanner *bufio.Scanner
	writer  *bufio.Writer
}

// NewTelnetConn wraps an accepted TCP connection.
func NewTelnetConn(conn net.Conn) *TelnetConn {
	return &TelnetConn{
		conn:    conn,
		scanner: bufio.NewScanner(conn),
		writer:  bufio.NewWriter(conn),
	}
}

// ReadLine blocks for the next CRLF- or LF-terminated line.
func (t *TelnetConn) ReadLine() (string, error) {
	if t.scanner.Scan() {
		return t.scanner.Text(), nil
	}
	if err := t.scanner.Err(); err != nil {
		return "", err
	}
	return "", net.ErrClosed
}

// WriteLine writes a line, passing any embedded ANSI SGR sequences through
// untouched, and flushes immediately so prompts appear without buffering lag.
func (t *TelnetConn) WriteLine(line string) error {
	if _, err := t.writer.WriteString(line); err != nil {
		return err
	}
	return t.writer.Flush()
}

// SetMasked toggles the telnet local-echo option so password entry isn't
// echoed back by the client terminal.
func (t *TelnetConn) SetMasked(masked bool) {
	var opt byte = wont
	if masked {
		opt = will
	}
	if _, err := t.conn.Write([]byte{iac, opt, echo}); err != nil {
		logger.Warning("telnet echo negotiation failed", "remote_addr", t.RemoteAddr(), "error", err)
	}
}

// RemoteAddr returns the peer's address as a string.
func (t *TelnetConn) RemoteAddr() string {
	return t.conn.RemoteAddr().String()
}

// Close closes the underlying TCP connection.
func (t *TelnetConn) Close() error {
	return t.conn.Close()
}

var _ session.Connection = (*TelnetConn)(nil)

// ListenTelnet accepts connections on addr, handing each to the session
// manager after clearing the connection limiter; it runs until the
// listener is closed or accept fails.
func ListenTelnet(addr string, manager *session.Manager, limiter *ConnLimiter) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	defer ln.Close()
	logger.Info("telnet listener started", "addr", addr)

	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		ip := extractIP(conn.RemoteAddr().String())
		if limiter != nil && !limiter.TryAcquire(ip) {
			conn.Close()
			continue
		}
		go func() {
			if limiter != nil {
				defer limiter.Release(ip)
			}
			manager.Serve(NewTelnetConn(conn))
		}()
	}
}
