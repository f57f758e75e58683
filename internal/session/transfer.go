package session

import (
	"fmt"
	"strings"
	"time"
)

// requestTransfer runs the transfer challenge against the incumbent
// session (A) on behalf of a newly-authenticating one (B). It blocks until
// A answers, A times out, or a transfer for this username is already in
// flight. Returns true if B should take over.
func (m *Manager) requestTransfer(existing *ConnectedClient, username string) bool {
	key := strings.ToLower(username)

	m.transfersMu.Lock()
	if _, busy := m.transfers[key]; busy {
		m.transfersMu.Unlock()
		return false
	}
	answer := make(chan string, 1)
	m.transfers[key] = answer
	m.transfersMu.Unlock()

	defer func() {
		m.transfersMu.Lock()
		delete(m.transfers, key)
		m.transfersMu.Unlock()
	}()

	existing.setInputBlocked(true)
	existing.setTransferAnswer(answer)
	defer existing.setInputBlocked(false)

	existing.Send(fmt.Sprintf("\n*** Another session is trying to log in as %s. Allow? (y/n): ", username))

	select {
	case ans := <-answer:
		return strings.EqualFold(strings.TrimSpace(ans), "y") || strings.EqualFold(strings.TrimSpace(ans), "yes")
	case <-time.After(TransferTimeout):
		existing.Send("\n(No response in time — transferring the session.)\n")
		return true
	}
}

// transferRequestState is entered by the incoming connection (B) while it
// waits for the incumbent's answer; by the time anyone reaches handle here
// the decision has already been made synchronously inside authenticate, so
// this state exists mostly to hold B still and give it a clear status line
// while requestTransfer blocks on the caller's goroutine.
type transferRequestState struct{}

func (transferRequestState) enter(m *Manager, c *ConnectedClient) {
	c.Send("Waiting for the other session to respond...\n")
}

func (transferRequestState) handle(m *Manager, c *ConnectedClient, line string) State {
	return StateTransferRequest
}

func (transferRequestState) exit(m *Manager, c *ConnectedClient) {}
