package session

import (
	"strings"

	"github.com/towerkeep/mudcore/internal/class"
	"github.com/towerkeep/mudcore/internal/race"
)

// authMode tells CONFIRMATION whether it is checking an existing account's
// password or confirming a password just chosen during SIGNUP.
type authMode int

const (
	confirmExistingLogin authMode = iota
	confirmNewSignup
)

// authScratch is shared by LOGIN, SIGNUP and CONFIRMATION as a session
// moves through the credential flow; it is reset whenever LOGIN is
// (re)entered.
type authScratch struct {
	Username     string
	Mode         authMode
	PendingHash  string
	AttemptsLeft int

	// signup-only fields, populated stage by stage
	Stage         int
	FirstPassword string
	SelectedClass class.Class
	SelectedRace  race.Race
}

type loginState struct{}

func (loginState) enter(m *Manager, c *ConnectedClient) {
	c.Scratch = &authScratch{AttemptsLeft: MaxLoginAttempts}
	c.Send("Username: ")
}

func (loginState) handle(m *Manager, c *ConnectedClient, line string) State {
	scratch, _ := c.Scratch.(*authScratch)
	if scratch == nil {
		scratch = &authScratch{AttemptsLeft: MaxLoginAttempts}
		c.Scratch = scratch
	}

	username := strings.TrimSpace(line)
	if username == "" {
		scratch.AttemptsLeft--
		if scratch.AttemptsLeft <= 0 {
			c.Send("Too many empty attempts. Goodbye.\n")
			c.Conn.Close()
			return StateLogin
		}
		c.Send("Username cannot be empty. Username: ")
		return StateLogin
	}

	scratch.Username = username

	if _, ok := m.World.FindUser(username); ok {
		scratch.Mode = confirmExistingLogin
		return StateConfirmation
	}

	if m.NameFilter != nil {
		if result := m.NameFilter.Check(username); !result.Allowed {
			scratch.AttemptsLeft--
			if scratch.AttemptsLeft <= 0 {
				c.Send("Too many rejected usernames. Goodbye.\n")
				c.Conn.Close()
				return StateLogin
			}
			c.Send("That name is not allowed. Username: ")
			return StateLogin
		}
	}
	return StateSignup
}

func (loginState) exit(m *Manager, c *ConnectedClient) {}
