package transport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// newWebSocketConnPair starts a test HTTP server that upgrades the single
// incoming connection, and returns the server-side WebSocketConn alongside a
// raw client dialer connection for driving it.
func newWebSocketConnPair(t *testing.T) (*WebSocketConn, *websocket.Conn, *httptest.Server) {
	t.Helper()
	upgrader := websocket.Upgrader{}
	connCh := make(chan *WebSocketConn, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		connCh <- NewWebSocketConn(raw, 0)
	}))

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("failed to dial test server: %v", err)
	}

	var serverConn *WebSocketConn
	select {
	case serverConn = <-connCh:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for server-side upgrade")
	}
	return serverConn, client, server
}

func TestWebSocketConnReadLineDecodesInputField(t *testing.T) {
	serverConn, client, server := newWebSocketConnPair(t)
	defer server.Close()
	defer client.Close()

	if err := client.WriteMessage(websocket.TextMessage, []byte(`{"input":"look"}`)); err != nil {
		t.Fatalf("client write failed: %v", err)
	}

	line, err := serverConn.ReadLine()
	if err != nil {
		t.Fatalf("ReadLine failed: %v", err)
	}
	if line != "look" {
		t.Errorf("ReadLine() = %q, want %q", line, "look")
	}
}

func TestWebSocketConnReadLineSkipsEmptyAndMalformedFrames(t *testing.T) {
	serverConn, client, server := newWebSocketConnPair(t)
	defer server.Close()
	defer client.Close()

	client.WriteMessage(websocket.TextMessage, []byte(`not json`))
	client.WriteMessage(websocket.TextMessage, []byte(`{"input":""}`))
	client.WriteMessage(websocket.TextMessage, []byte(`{"input":"north"}`))

	line, err := serverConn.ReadLine()
	if err != nil {
		t.Fatalf("ReadLine failed: %v", err)
	}
	if line != "north" {
		t.Errorf("ReadLine() = %q, want %q, expected malformed/empty frames to be skipped", line, "north")
	}
}

func TestWebSocketConnWriteLineSendsTextFrame(t *testing.T) {
	serverConn, client, server := newWebSocketConnPair(t)
	defer server.Close()
	defer client.Close()

	if err := serverConn.WriteLine("You see a room."); err != nil {
		t.Fatalf("WriteLine failed: %v", err)
	}

	_, raw, err := client.ReadMessage()
	if err != nil {
		t.Fatalf("client read failed: %v", err)
	}
	var frame outboundFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		t.Fatalf("failed to decode frame: %v", err)
	}
	if frame.Type != "text" || frame.Data != "You see a room." {
		t.Errorf("got frame %+v, want {text You see a room.}", frame)
	}
}

func TestWebSocketConnSetMaskedSendsPromptFrame(t *testing.T) {
	serverConn, client, server := newWebSocketConnPair(t)
	defer server.Close()
	defer client.Close()

	serverConn.SetMasked(true)

	_, raw, err := client.ReadMessage()
	if err != nil {
		t.Fatalf("client read failed: %v", err)
	}
	var frame outboundFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		t.Fatalf("failed to decode frame: %v", err)
	}
	if frame.Type != "prompt" || frame.Data != "password" {
		t.Errorf("got frame %+v, want {prompt password}", frame)
	}

	serverConn.SetMasked(false)
	_, raw, err = client.ReadMessage()
	if err != nil {
		t.Fatalf("client read failed: %v", err)
	}
	if err := json.Unmarshal(raw, &frame); err != nil {
		t.Fatalf("failed to decode frame: %v", err)
	}
	if frame.Type != "prompt" || frame.Data != "text" {
		t.Errorf("got frame %+v, want {prompt text}", frame)
	}
}
