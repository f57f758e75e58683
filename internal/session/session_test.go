package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/towerkeep/mudcore/internal/class"
	"github.com/towerkeep/mudcore/internal/race"
	"github.com/towerkeep/mudcore/internal/world"
)

// fakeConn is an in-memory Connection driven entirely by the test: lines
// queued via feed() are returned one at a time from ReadLine, and every
// WriteLine call is captured for assertions.
type fakeConn struct {
	mu     sync.Mutex
	inbox  chan string
	closed bool
	sent   []string
	masked bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{inbox: make(chan string, 64)}
}

func (f *fakeConn) feed(lines ...string) {
	for _, l := range lines {
		f.inbox <- l
	}
}

func (f *fakeConn) ReadLine() (string, error) {
	line, ok := <-f.inbox
	if !ok {
		return "", errors.New("connection closed")
	}
	return line, nil
}

func (f *fakeConn) WriteLine(line string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, line)
	return nil
}

func (f *fakeConn) SetMasked(masked bool) {
	f.mu.Lock()
	f.masked = masked
	f.mu.Unlock()
}

func (f *fakeConn) RemoteAddr() string { return "test://conn" }

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.inbox)
	}
	return nil
}

func (f *fakeConn) transcript() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.sent))
	copy(out, f.sent)
	return out
}

func newTestManager() *Manager {
	w := world.NewWorld()
	w.AddRoom(world.NewRoom("town_square", "Town Square", "A quiet square."))
	return NewManager(w, time.Minute)
}

func waitUntilClosed(t *testing.T, conn *fakeConn) {
	t.Helper()
	deadline := time.After(time.Second)
	for {
		conn.mu.Lock()
		closed := conn.closed
		conn.mu.Unlock()
		if closed {
			return
		}
		select {
		case <-deadline:
			t.Fatal("timed out waiting for connection to close")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestSignupCreatesUserAndAuthenticates(t *testing.T) {
	m := newTestManager()
	conn := newFakeConn()

	done := make(chan struct{})
	go func() {
		m.Serve(conn)
		close(done)
	}()

	conn.feed("alice")   // LOGIN: unknown username -> SIGNUP
	conn.feed("secretpw") // SIGNUP: password
	conn.feed("1")       // class choice
	conn.feed("1")       // race choice
	conn.feed("secretpw") // CONFIRMATION: retype to match
	conn.feed("quit")

	<-done

	u, ok := m.World.FindUser("alice")
	require.True(t, ok, "expected alice registered in the world after signup")
	require.Equal(t, "town_square", u.CurrentRoomID)

	transcript := conn.transcript()
	require.Contains(t, transcript, "\nWelcome, alice!\n")
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	m := newTestManager()
	hash, err := hashPassword("correct-horse")
	require.NoError(t, err)
	u := world.NewUser("bob", hash, "", "town_square", class.Warrior, race.Human)
	m.World.RegisterUser(u)

	conn := newFakeConn()
	done := make(chan struct{})
	go func() {
		m.Serve(conn)
		close(done)
	}()

	conn.feed("bob")
	for i := 0; i < MaxLoginAttempts; i++ {
		conn.feed("wrong-password")
	}

	<-done
	waitUntilClosed(t, conn)

	_, live := m.ClientFor("bob")
	require.False(t, live, "expected no live session after all attempts failed")
}

func TestLoginSucceedsWithCorrectPassword(t *testing.T) {
	m := newTestManager()
	hash, err := hashPassword("hunter2")
	require.NoError(t, err)
	u := world.NewUser("carol", hash, "", "town_square", class.Warrior, race.Human)
	m.World.RegisterUser(u)

	conn := newFakeConn()
	done := make(chan struct{})
	go func() {
		m.Serve(conn)
		close(done)
	}()

	conn.feed("carol")
	conn.feed("hunter2")

	// give the session a moment to reach AUTHENTICATED before asserting
	require.Eventually(t, func() bool {
		c, ok := m.ClientFor("carol")
		return ok && c.State == StateAuthenticated
	}, time.Second, time.Millisecond)

	conn.feed("quit")
	<-done
}

func TestIdleEvictionDisconnectsStaleSessions(t *testing.T) {
	m := newTestManager()
	m.IdleTimeout = time.Millisecond
	hash, err := hashPassword("hunter2")
	require.NoError(t, err)
	u := world.NewUser("dana", hash, "", "town_square", class.Warrior, race.Human)
	m.World.RegisterUser(u)

	conn := newFakeConn()
	done := make(chan struct{})
	go func() {
		m.Serve(conn)
		close(done)
	}()

	conn.feed("dana")
	conn.feed("hunter2")

	require.Eventually(t, func() bool {
		c, ok := m.ClientFor("dana")
		return ok && c.State == StateAuthenticated
	}, time.Second, time.Millisecond)

	m.sweepIdle(nil)
	waitUntilClosed(t, conn)
	<-done
}

func TestCommandHistoryRecall(t *testing.T) {
	c := NewConnectedClient(newFakeConn())
	c.RecordCommand("look")
	c.RecordCommand("north")

	prev, ok := c.HistoryPrev("partial")
	require.True(t, ok)
	require.Equal(t, "north", prev)

	prev, ok = c.HistoryPrev("")
	require.True(t, ok)
	require.Equal(t, "look", prev)

	next, ok := c.HistoryNext()
	require.True(t, ok)
	require.Equal(t, "north", next)

	next, ok = c.HistoryNext()
	require.True(t, ok)
	require.Equal(t, "partial", next, "expected the in-progress command restored at the end of recall")
}
