// Package session implements the per-connection state machine: a
// ConnectedClient moves through CONNECTING, LOGIN, SIGNUP, CONFIRMATION,
// AUTHENTICATED/GAME, EDITOR, SNAKE_GAME and TRANSFER_REQUEST, each state
// owning its own enter/handle/exit behavior. The Manager owns the registry
// of live clients, the session-transfer protocol, idle eviction, and admin
// monitor/takeover.
package session

import (
	"strings"
	"sync"
	"time"

	"github.com/towerkeep/mudcore/internal/logger"
	"github.com/towerkeep/mudcore/internal/world"
)

// Connection abstracts the transport underneath a session so telnet and
// websocket clients share one state machine. Implementations live in
// internal/transport.
type Connection interface {
	ReadLine() (string, error)
	WriteLine(line string) error
	SetMasked(masked bool)
	RemoteAddr() string
	Close() error
}

// State identifies one node of the session state machine.
type State int

const (
	StateConnecting State = iota
	StateLogin
	StateSignup
	StateConfirmation
	StateAuthenticated
	StateEditor
	StateSnakeGame
	StateTransferRequest
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateLogin:
		return "login"
	case StateSignup:
		return "signup"
	case StateConfirmation:
		return "confirmation"
	case StateAuthenticated:
		return "authenticated"
	case StateEditor:
		return "editor"
	case StateSnakeGame:
		return "snake_game"
	case StateTransferRequest:
		return "transfer_request"
	default:
		return "unknown"
	}
}

const historyCap = 30

// ConnectedClient wraps one connection as it moves through the state
// machine. Everything that outlives the connection (character data,
// inventory, flags) lives on world.User instead; ConnectedClient is the
// connection-facing half of a logged-in player.
type ConnectedClient struct {
	mu sync.Mutex

	Conn  Connection
	State State

	// InputBuffer/Cursor track the raw line being composed by the client,
	// for transports that echo and support in-line editing.
	InputBuffer string
	Cursor      int

	// Scratch holds per-state working data (signup progress, transfer
	// prompt target, etc). Each state handler type-asserts its own shape
	// and resets it on enter.
	Scratch any

	ConnectedAt  time.Time
	LastActivity time.Time

	Username string
	User     *world.User

	// IsInputBlocked is set while a session is suspended during a transfer
	// challenge or while an admin has taken it over.
	IsInputBlocked bool
	// MonitoredBy is the admin username observing this session's output,
	// empty when nobody is watching.
	MonitoredBy string
	monitorSink chan<- string

	// TakeoverLines delivers admin-typed lines to be executed as if the
	// target had typed them, while IsInputBlocked is set.
	TakeoverLines chan string

	transferAnswer chan<- string

	// dispatchMu serializes calls into the state machine: the normal read
	// loop and an admin takeover goroutine (see monitor.go) both drive the
	// same ConnectedClient and must not run handlers concurrently.
	dispatchMu sync.Mutex

	history       []string
	historyIndex  int
	savedCurrent  string
	loginAttempts int

	// moveReadyAt is when this session's movement delay (agility-derived,
	// see internal/command) next clears. Zero value means no delay active.
	moveReadyAt time.Time
}

// MovementBlocked reports whether this session is still serving a
// movement delay from its last successful move.
func (c *ConnectedClient) MovementBlocked() (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	remaining := time.Until(c.moveReadyAt)
	return remaining, remaining > 0
}

// ArmMovementDelay sets when the next movement command is allowed.
func (c *ConnectedClient) ArmMovementDelay(d time.Duration) {
	c.mu.Lock()
	c.moveReadyAt = time.Now().Add(d)
	c.mu.Unlock()
}

// NewConnectedClient creates a session in the CONNECTING state.
func NewConnectedClient(conn Connection) *ConnectedClient {
	now := time.Now()
	return &ConnectedClient{
		Conn:         conn,
		State:        StateConnecting,
		ConnectedAt:  now,
		LastActivity: now,
	}
}

func (c *ConnectedClient) touch() {
	c.mu.Lock()
	c.LastActivity = time.Now()
	c.mu.Unlock()
}

// IdleFor reports how long the session has gone without receiving input.
func (c *ConnectedClient) IdleFor() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return time.Since(c.LastActivity)
}

// Send writes a line to the underlying connection and, when monitored,
// fans it out to the watching admin's sink.
func (c *ConnectedClient) Send(line string) {
	if err := c.Conn.WriteLine(line); err != nil {
		logger.Warning("session write failed", "remote_addr", c.Conn.RemoteAddr(), "error", err)
	}
	c.mu.Lock()
	sink := c.monitorSink
	c.mu.Unlock()
	if sink != nil {
		select {
		case sink <- line:
		default:
		}
	}
}

// RecordCommand appends a raw input line to the bounded recall history,
// mirroring world.User's command log but scoped to this connection so
// recall works even before authentication.
func (c *ConnectedClient) RecordCommand(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = append(c.history, line)
	if len(c.history) > historyCap {
		c.history = c.history[len(c.history)-historyCap:]
	}
	c.historyIndex = len(c.history)
	c.savedCurrent = ""
}

// HistoryPrev moves the recall cursor back one entry, saving the in-progress
// command on the first press so it can be restored by HistoryNext.
func (c *ConnectedClient) HistoryPrev(current string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.historyIndex <= 0 {
		return "", false
	}
	if c.historyIndex == len(c.history) {
		c.savedCurrent = current
	}
	c.historyIndex--
	return c.history[c.historyIndex], true
}

// HistoryNext moves the recall cursor forward, returning the saved
// in-progress command once the cursor reaches the end.
func (c *ConnectedClient) HistoryNext() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.historyIndex >= len(c.history) {
		return "", false
	}
	c.historyIndex++
	if c.historyIndex == len(c.history) {
		return c.savedCurrent, true
	}
	return c.history[c.historyIndex], true
}

// beginMonitor attaches an admin sink; returns false if already monitored.
func (c *ConnectedClient) beginMonitor(admin string, sink chan<- string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.MonitoredBy != "" {
		return false
	}
	c.MonitoredBy = admin
	c.monitorSink = sink
	return true
}

func (c *ConnectedClient) endMonitor() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.MonitoredBy = ""
	c.monitorSink = nil
}

func (c *ConnectedClient) setInputBlocked(blocked bool) {
	c.mu.Lock()
	c.IsInputBlocked = blocked
	c.mu.Unlock()
}

func (c *ConnectedClient) isBlocked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.IsInputBlocked
}

// setTransferAnswer registers the channel that the next line typed by this
// (blocked) client should be delivered to, instead of normal dispatch.
func (c *ConnectedClient) setTransferAnswer(ch chan<- string) {
	c.mu.Lock()
	c.transferAnswer = ch
	c.mu.Unlock()
}

// takeTransferAnswer returns and clears the pending transfer-answer
// channel, if one is set.
func (c *ConnectedClient) takeTransferAnswer() (chan<- string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := c.transferAnswer
	c.transferAnswer = nil
	return ch, ch != nil
}

func trimVerb(line string) (string, string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", ""
	}
	parts := strings.SplitN(line, " ", 2)
	if len(parts) == 1 {
		return strings.ToLower(parts[0]), ""
	}
	return strings.ToLower(parts[0]), strings.TrimSpace(parts[1])
}
