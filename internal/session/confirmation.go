package session

import (
	"github.com/towerkeep/mudcore/internal/logger"
	"github.com/towerkeep/mudcore/internal/world"
)

// confirmationState is the single masked-password gate shared by an
// existing-account login and a brand-new signup's confirmation retype; the
// scratch Mode field tells handle which check to run.
type confirmationState struct{}

func (confirmationState) enter(m *Manager, c *ConnectedClient) {
	c.Conn.SetMasked(true)
	c.Send("Password: ")
}

func (confirmationState) handle(m *Manager, c *ConnectedClient, line string) State {
	scratch := c.scratch()

	switch scratch.Mode {
	case confirmExistingLogin:
		u, ok := m.World.FindUser(scratch.Username)
		if !ok || !checkPassword(u.PasswordHash, line) {
			scratch.AttemptsLeft--
			if scratch.AttemptsLeft <= 0 {
				c.Send("Too many failed attempts. Goodbye.\n")
				c.Conn.Close()
				return StateConfirmation
			}
			c.Send("Incorrect password. Password: ")
			return StateConfirmation
		}
		return m.authenticate(c, u)

	case confirmNewSignup:
		if line != scratch.FirstPassword {
			scratch.AttemptsLeft--
			if scratch.AttemptsLeft <= 0 {
				c.Send("Passwords kept not matching. Goodbye.\n")
				c.Conn.Close()
				return StateConfirmation
			}
			c.Send("Passwords do not match. Password: ")
			return StateConfirmation
		}

		hash, err := hashPassword(scratch.FirstPassword)
		if err != nil {
			logger.Error("password hash failed", "user", scratch.Username, "error", err)
			c.Send("Something went wrong creating your account. Goodbye.\n")
			c.Conn.Close()
			return StateConfirmation
		}

		room := m.World.GetStartingRoom()
		roomID := ""
		if room != nil {
			roomID = room.ID
		}
		u := world.NewUser(scratch.Username, hash, "", roomID, scratch.SelectedClass, scratch.SelectedRace)
		m.World.RegisterUser(u)
		logger.Info("account created", "user", u.Username, "class", scratch.SelectedClass.String(), "race", scratch.SelectedRace.String())
		return m.authenticate(c, u)

	default:
		return StateLogin
	}
}

func (confirmationState) exit(m *Manager, c *ConnectedClient) {
	c.Conn.SetMasked(false)
}

// authenticate finishes the credential flow: binds the client to its
// persistent user, registers it as live, and checks for a competing
// session before dropping into AUTHENTICATED.
func (m *Manager) authenticate(c *ConnectedClient, u *world.User) State {
	c.Username = u.Username
	c.User = u

	if existing, ok := m.ClientFor(u.Username); ok && existing != c {
		m.transition(c, StateTransferRequest)
		if m.requestTransfer(existing, u.Username) {
			existing.Conn.Close()
		} else {
			c.Send("Another session for this character is already connected and declined to transfer.\n")
			return StateLogin
		}
	}

	m.addClient(u.Username, c)
	m.World.AddOnlineUser(u.Username, u.CurrentRoomID)

	for _, msg := range u.DrainAdminMessages() {
		c.Send(msg)
	}

	logger.Info("session authenticated", "user", u.Username, "remote_addr", c.Conn.RemoteAddr())
	return StateAuthenticated
}
