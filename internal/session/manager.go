package session

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/towerkeep/mudcore/internal/logger"
	"github.com/towerkeep/mudcore/internal/namefilter"
	"github.com/towerkeep/mudcore/internal/world"
)

const bcryptCost = 12

// MaxLoginAttempts bounds how many bad usernames/passwords LOGIN and
// CONFIRMATION tolerate before the connection is dropped.
const MaxLoginAttempts = 5

// TransferTimeout bounds how long a live session is given to answer a
// transfer challenge before it is treated as an implicit "y".
const TransferTimeout = 30 * time.Second

// CommandHandler executes one authenticated input line against the world
// and returns the lines to print plus an optional state transition (e.g.
// into EDITOR or SNAKE_GAME). cmd/mudserver assigns the internal/command
// dispatcher at startup; while it is nil, AUTHENTICATED falls back to a
// built-in look/quit/editor/snake set and reports anything else as unknown.
type CommandHandler func(c *ConnectedClient, u *world.User, line string) (output []string, next State)

// stateHandler is implemented once per State in its own file.
type stateHandler interface {
	enter(m *Manager, c *ConnectedClient)
	handle(m *Manager, c *ConnectedClient, line string) State
	exit(m *Manager, c *ConnectedClient)
}

// Manager owns every live session, the world registry they act on, and the
// cross-cutting protocols (transfer, idle eviction, admin monitor/takeover)
// that span multiple sessions.
type Manager struct {
	mu      sync.RWMutex
	clients map[string]*ConnectedClient // username -> live session, authenticated only
	states  map[State]stateHandler

	World       *world.World
	IdleTimeout time.Duration
	OnCommand   CommandHandler
	NameFilter  *namefilter.NameFilter // nil disables name screening at signup

	transfersMu sync.Mutex
	transfers   map[string]chan string // username -> channel carrying the incumbent's y/n answer

	shutdown chan struct{}
}

// NewManager builds a session manager bound to a world registry.
func NewManager(w *world.World, idleTimeout time.Duration) *Manager {
	m := &Manager{
		clients:     make(map[string]*ConnectedClient),
		World:       w,
		IdleTimeout: idleTimeout,
		transfers:   make(map[string]chan string),
		shutdown:    make(chan struct{}),
	}
	m.states = map[State]stateHandler{
		StateConnecting:      connectingState{},
		StateLogin:           loginState{},
		StateSignup:          signupState{},
		StateConfirmation:    confirmationState{},
		StateAuthenticated:   authenticatedState{},
		StateEditor:          editorState{},
		StateSnakeGame:       snakeGameState{},
		StateTransferRequest: transferRequestState{},
	}
	return m
}

// Serve runs one connection through the state machine until it
// disconnects or errors, guaranteeing exit() runs for whatever state it
// was last in (and every ancestor it passed through already had its own
// exit called on the way out).
func (m *Manager) Serve(conn Connection) {
	c := NewConnectedClient(conn)
	m.transition(c, StateConnecting)
	// CONNECTING accepts no input; its only job is the banner, so it falls
	// straight through to LOGIN before the read loop starts.
	m.transition(c, StateLogin)

	for {
		line, err := conn.ReadLine()
		if err != nil {
			break
		}
		c.touch()

		if c.isBlocked() {
			// Input is suspended: either a transfer y/n answer is awaited,
			// in which case this line answers it, or an admin has taken
			// the session over, in which case the real client's typing is
			// dropped on the floor.
			if ch, ok := c.takeTransferAnswer(); ok {
				select {
				case ch <- line:
				default:
				}
			}
			continue
		}

		c.dispatchMu.Lock()
		next := m.states[c.State].handle(m, c, line)
		if next != c.State {
			m.transition(c, next)
		}
		c.dispatchMu.Unlock()
	}

	m.finalize(c)
}

// transition runs exit on the current state, then enter on the next. The
// very first call (CONNECTING -> CONNECTING) only runs enter, since there
// is nothing to exit yet.
func (m *Manager) transition(c *ConnectedClient, next State) {
	first := c.State == StateConnecting && next == StateConnecting
	if !first {
		m.states[c.State].exit(m, c)
	}
	c.State = next
	m.states[next].enter(m, c)
}

// finalize runs the final state's exit hook and removes the session from
// the live registry, in the inverse order of how it entered.
func (m *Manager) finalize(c *ConnectedClient) {
	m.states[c.State].exit(m, c)
	if c.Username != "" {
		// Only retire the registry entry if nothing has replaced it since
		// (a transfer may have already registered a newer session under
		// this username while this one was shutting down).
		if current, ok := m.ClientFor(c.Username); !ok || current == c {
			m.removeClient(c.Username)
			m.World.RemoveOnlineUser(c.Username)
		}
		logger.Info("session ended", "user", c.Username, "remote_addr", c.Conn.RemoteAddr())
	}
	c.Conn.Close()
}

func (m *Manager) addClient(username string, c *ConnectedClient) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[strings.ToLower(username)] = c
}

func (m *Manager) removeClient(username string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.clients, strings.ToLower(username))
}

// ClientFor returns the live session for a username, if one is connected.
func (m *Manager) ClientFor(username string) (*ConnectedClient, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.clients[strings.ToLower(username)]
	return c, ok
}

// Kick forcibly disconnects a live session; Serve's read loop sees the
// closed connection as an error and runs finalize as normal.
func (m *Manager) Kick(username string) bool {
	c, ok := m.ClientFor(username)
	if !ok {
		return false
	}
	c.Send("You have been disconnected by an administrator.\n")
	c.Conn.Close()
	return true
}

// LiveSessions returns a snapshot of every authenticated session, for idle
// eviction and admin listing.
func (m *Manager) LiveSessions() []*ConnectedClient {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*ConnectedClient, 0, len(m.clients))
	for _, c := range m.clients {
		out = append(out, c)
	}
	return out
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(hash), err
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Shutdown stops background tasks started by StartIdleEviction.
func (m *Manager) Shutdown() {
	close(m.shutdown)
}
