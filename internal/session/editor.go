package session

import "strings"

// editorState is the spec's required addition beyond the teacher's linear
// auth-then-game flow: a line-buffer text mode that detaches the user from
// the world while active. '.save' echoes the buffered lines back and
// '.abort' drops them; neither writes to any room, item or help entry, and
// the mode has no admin check.
type editorState struct{}

func (editorState) enter(m *Manager, c *ConnectedClient) {
	m.World.RemoveOnlineUser(c.Username)
	c.Scratch = &editorScratch{Lines: nil}
	c.Send("\n--- Editor ---\nType lines of text. '.save' to finish, '.abort' to discard.\n")
}

type editorScratch struct {
	Lines []string
}

func (editorState) handle(m *Manager, c *ConnectedClient, line string) State {
	scratch, _ := c.Scratch.(*editorScratch)
	if scratch == nil {
		scratch = &editorScratch{}
		c.Scratch = scratch
	}

	switch strings.TrimSpace(line) {
	case ".save":
		c.Send(strings.Join(scratch.Lines, "\n") + "\n")
		c.Send("Saved.\n")
		return StateAuthenticated
	case ".abort":
		c.Send("Discarded.\n")
		return StateAuthenticated
	default:
		scratch.Lines = append(scratch.Lines, line)
		return StateEditor
	}
}

func (editorState) exit(m *Manager, c *ConnectedClient) {
	m.World.AddOnlineUser(c.Username, c.User.CurrentRoomID)
}
