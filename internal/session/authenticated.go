package session

import (
	"fmt"
	"strings"

	"github.com/towerkeep/mudcore/internal/world"
)

// authenticatedState is the main GAME state: command lines are handed to
// the dispatcher (Manager.OnCommand), which cmd/mudserver assigns at
// startup; when it is nil, a minimal built-in set (look/quit/editor/snake)
// keeps the state machine exercisable end to end.
type authenticatedState struct{}

func (authenticatedState) enter(m *Manager, c *ConnectedClient) {
	c.Send(fmt.Sprintf("\nWelcome, %s!\n", c.User.Username))
	c.Send(LookDescription(m, c.User))
	c.Send("\nType 'help' for a list of commands.\n\n")
}

func (authenticatedState) handle(m *Manager, c *ConnectedClient, line string) State {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return StateAuthenticated
	}
	c.RecordCommand(trimmed)
	c.User.RecordCommand(trimmed)

	if m.OnCommand != nil {
		output, next := m.OnCommand(c, c.User, trimmed)
		for _, l := range output {
			c.Send(l)
		}
		return next
	}

	verb, _ := trimVerb(trimmed)
	switch verb {
	case "look", "l":
		c.Send(LookDescription(m, c.User))
	case "quit":
		c.Send("Goodbye!\n")
		c.Conn.Close()
	case "editor":
		return StateEditor
	case "snake":
		return StateSnakeGame
	default:
		c.Send(fmt.Sprintf("Unknown command: %s\n", verb))
	}
	return StateAuthenticated
}

func (authenticatedState) exit(m *Manager, c *ConnectedClient) {}

// LookDescription renders the room the user currently occupies.
func LookDescription(m *Manager, u *world.User) string {
	return RenderRoom(m.World, u)
}

// RenderRoom builds the full room description a user sees: base text,
// other players, NPCs, and floor items. It only needs a World reference,
// so internal/command calls it directly without going through Manager.
func RenderRoom(w *world.World, u *world.User) string {
	room := w.GetRoom(u.CurrentRoomID)
	if room == nil {
		return "\nYou float in a formless void.\n"
	}
	state := w.GetRoomState(u.CurrentRoomID)
	view := world.RoomView{Room: room}
	if state != nil {
		for _, name := range state.GetPlayers() {
			if name != u.Username {
				view.OtherPlayers = append(view.OtherPlayers, name)
			}
		}
		for _, id := range state.GetItemInstances() {
			inst := w.GetItemInstance(id)
			if inst == nil {
				continue
			}
			tpl := w.GetItemTemplate(inst.TemplateID)
			if tpl != nil {
				view.ItemNames = append(view.ItemNames, inst.DisplayName(tpl))
			}
		}
		for _, id := range state.GetNPCInstances() {
			inst := w.GetNPCInstance(id)
			if inst == nil {
				continue
			}
			tpl := w.GetNPCTemplate(inst.TemplateID)
			if tpl != nil {
				view.NPCDescs = append(view.NPCDescs, tpl.Name)
			}
		}
	}
	return room.Describe(room.Description, view)
}
