package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/towerkeep/mudcore/internal/class"
	"github.com/towerkeep/mudcore/internal/race"
)

const (
	signupStagePassword = iota
	signupStageClass
	signupStageRace
)

// signupState walks a brand-new username through choosing a password,
// class and race before handing off to CONFIRMATION to re-type the
// password and create the account.
type signupState struct{}

func (signupState) enter(m *Manager, c *ConnectedClient) {
	scratch := c.scratch()
	scratch.Stage = signupStagePassword
	c.Conn.SetMasked(true)
	c.Send(fmt.Sprintf("No account found for '%s'. Let's create one.\n", scratch.Username))
	c.Send("Choose a password (min 4 characters, or 'abort'): ")
}

func (signupState) handle(m *Manager, c *ConnectedClient, line string) State {
	scratch := c.scratch()

	if strings.EqualFold(strings.TrimSpace(line), "abort") {
		c.Conn.SetMasked(false)
		c.Send("Signup cancelled.\n")
		return StateLogin
	}

	switch scratch.Stage {
	case signupStagePassword:
		if len(line) < 4 {
			c.Send("Password must be at least 4 characters. Choose a password: ")
			return StateSignup
		}
		scratch.FirstPassword = line
		c.Conn.SetMasked(false)
		scratch.Stage = signupStageClass
		c.Send(classMenu())
		return StateSignup

	case signupStageClass:
		choice, err := strconv.Atoi(strings.TrimSpace(line))
		all := class.AllClasses()
		if err != nil || choice < 1 || choice > len(all) {
			c.Send(fmt.Sprintf("Please enter a number from 1 to %d.\n", len(all)))
			return StateSignup
		}
		scratch.SelectedClass = all[choice-1]
		scratch.Stage = signupStageRace
		c.Send(raceMenu())
		return StateSignup

	case signupStageRace:
		choice, err := strconv.Atoi(strings.TrimSpace(line))
		all := race.AllRaces()
		if err != nil || choice < 1 || choice > len(all) {
			c.Send(fmt.Sprintf("Please enter a number from 1 to %d.\n", len(all)))
			return StateSignup
		}
		scratch.SelectedRace = all[choice-1]
		scratch.Mode = confirmNewSignup
		return StateConfirmation

	default:
		return StateLogin
	}
}

func (signupState) exit(m *Manager, c *ConnectedClient) {
	c.Conn.SetMasked(false)
}

func classMenu() string {
	var b strings.Builder
	b.WriteString("\n--- Choose Your Class ---\n")
	for i, cl := range class.AllClasses() {
		def := class.GetDefinition(cl)
		if def == nil {
			continue
		}
		fmt.Fprintf(&b, "  [%d] %s - %s\n", i+1, cl.String(), def.Description)
	}
	b.WriteString("Enter class number: ")
	return b.String()
}

func raceMenu() string {
	var b strings.Builder
	b.WriteString("\n--- Choose Your Race ---\n")
	for i, r := range race.AllRaces() {
		def := race.GetDefinition(r)
		if def == nil {
			continue
		}
		fmt.Fprintf(&b, "  [%d] %s - %s\n", i+1, r.String(), def.Description)
	}
	b.WriteString("Enter race number: ")
	return b.String()
}

// scratch returns the shared credential-flow scratch data, creating it if a
// state was entered without going through LOGIN first (shouldn't happen in
// practice, but keeps every state handler defensive).
func (c *ConnectedClient) scratch() *authScratch {
	if s, ok := c.Scratch.(*authScratch); ok {
		return s
	}
	s := &authScratch{AttemptsLeft: MaxLoginAttempts}
	c.Scratch = s
	return s
}
