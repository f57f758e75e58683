package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/towerkeep/mudcore/internal/session"
)

// Movement delay tuning for the agility formula resolved in the design:
// effective_delay = clamp(baseMoveDelay * (moveDelayK / agility), minMoveDelay, maxMoveDelay).
const (
	baseMoveDelay = 1500 * time.Millisecond
	moveDelayK    = 10.0
	minMoveDelay  = 400 * time.Millisecond
	maxMoveDelay  = 3000 * time.Millisecond
)

func movementDelay(agility int) time.Duration {
	if agility < 1 {
		agility = 1
	}
	d := time.Duration(float64(baseMoveDelay) * (moveDelayK / float64(agility)))
	if d < minMoveDelay {
		return minMoveDelay
	}
	if d > maxMoveDelay {
		return maxMoveDelay
	}
	return d
}

func registerMovement(d *Dispatcher) {
	d.register("look", false, handleLook)
	d.alias("look", "l", "examine", "ex")
	d.register("unlock", false, handleUnlock)

	d.register("north", false, moveHandler("north"))
	d.alias("north", "n")
	d.register("south", false, moveHandler("south"))
	d.alias("south", "s")
	d.register("east", false, moveHandler("east"))
	d.alias("east", "e")
	d.register("west", false, moveHandler("west"))
	d.alias("west", "w")
	d.register("up", false, moveHandler("up"))
	d.alias("up", "u")
	d.register("down", false, moveHandler("down"))
	d.alias("down", "d")

	d.register("go", false, handleGo)
	d.alias("go", "move", "walk")

	d.register("exits", false, handleExits)
}

func handleLook(ctx *Context) ([]string, session.State) {
	if ctx.Args == "" {
		return single(ctx, session.RenderRoom(ctx.World, ctx.User))
	}
	return single(ctx, examineTarget(ctx, ctx.Args))
}

func examineTarget(ctx *Context, target string) string {
	state := ctx.World.GetRoomState(ctx.User.CurrentRoomID)
	if state != nil {
		for _, id := range state.GetItemInstances() {
			inst := ctx.World.GetItemInstance(id)
			if inst == nil {
				continue
			}
			tpl := ctx.World.GetItemTemplate(inst.TemplateID)
			if tpl != nil && matchesName(inst.DisplayName(tpl), target) {
				return fmt.Sprintf("%s\n%s\n", inst.DisplayName(tpl), tpl.Description)
			}
		}
		for _, id := range state.GetNPCInstances() {
			inst := ctx.World.GetNPCInstance(id)
			if inst == nil {
				continue
			}
			tpl := ctx.World.GetNPCTemplate(inst.TemplateID)
			if tpl != nil && matchesName(tpl.Name, target) {
				return fmt.Sprintf("%s\n%s\n", tpl.Name, tpl.Description)
			}
		}
	}
	if instanceID, ok := findInventoryItem(ctx, target); ok {
		inst := ctx.World.GetItemInstance(instanceID)
		tpl := ctx.World.GetItemTemplate(inst.TemplateID)
		return fmt.Sprintf("%s\n%s\n", inst.DisplayName(tpl), tpl.Description)
	}
	return fmt.Sprintf("You don't see \"%s\" here.\n", target)
}

func matchesName(name, partial string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(partial))
}

func handleGo(ctx *Context) ([]string, session.State) {
	if ctx.Args == "" {
		return single(ctx, "Go where? Specify a direction (north, south, east, west, up, down)\n")
	}
	return doMove(ctx, strings.ToLower(ctx.Args))
}

func moveHandler(direction string) Handler {
	return func(ctx *Context) ([]string, session.State) {
		return doMove(ctx, direction)
	}
}

func doMove(ctx *Context, direction string) ([]string, session.State) {
	u := ctx.User
	if u.IsUnconscious {
		return single(ctx, "You can't move while unconscious.\n")
	}
	if u.IsResting || u.IsMeditating {
		return single(ctx, "You can't move while resting. Type 'stand' first.\n")
	}
	if u.MovementRestricted {
		reason := u.MovementRestrictedReason
		if reason == "" {
			reason = "something prevents you"
		}
		return single(ctx, fmt.Sprintf("You can't move: %s.\n", reason))
	}
	if remaining, blocked := ctx.Client.MovementBlocked(); blocked {
		return single(ctx, fmt.Sprintf("You're still catching your breath (%.1fs).\n", remaining.Seconds()))
	}

	room := ctx.World.GetRoom(u.CurrentRoomID)
	if room == nil {
		return single(ctx, "You float in a formless void.\n")
	}
	exit, ok := room.GetExit(direction)
	if !ok {
		return single(ctx, fmt.Sprintf("You can't go %s from here.\n", direction))
	}
	if exit.Locked {
		return single(ctx, fmt.Sprintf("The way %s is locked. You need a key to unlock it.\n", direction))
	}

	ctx.World.MoveUser(u.Username, u.CurrentRoomID, exit.TargetRoomID)
	u.CurrentRoomID = exit.TargetRoomID
	ctx.Client.ArmMovementDelay(movementDelay(u.Abilities.Agility))
	if u.Stats != nil {
		u.Stats.RecordMove()
		if dest := ctx.World.GetRoom(exit.TargetRoomID); dest != nil {
			u.Stats.RecordAreaVisited(dest.AreaID)
		}
	}

	out := fmt.Sprintf("You move %s.\n%s", direction, session.RenderRoom(ctx.World, u))
	return single(ctx, out)
}

func handleExits(ctx *Context) ([]string, session.State) {
	room := ctx.World.GetRoom(ctx.User.CurrentRoomID)
	if room == nil {
		return single(ctx, "You float in a formless void.\n")
	}
	if len(room.Exits) == 0 {
		return single(ctx, "There are no obvious exits.\n")
	}
	var names []string
	for _, e := range room.Exits {
		names = append(names, e.Direction)
	}
	return single(ctx, "Obvious exits: "+strings.Join(names, ", ")+"\n")
}

// directionAlias expands a single-letter shorthand to its full direction
// name; unrecognized input passes through unchanged.
func directionAlias(s string) string {
	switch s {
	case "n":
		return "north"
	case "s":
		return "south"
	case "e":
		return "east"
	case "w":
		return "west"
	case "u":
		return "up"
	case "d":
		return "down"
	default:
		return s
	}
}

func handleUnlock(ctx *Context) ([]string, session.State) {
	if ctx.Args == "" {
		return single(ctx, "Unlock what direction? Usage: unlock <direction>\n")
	}
	direction := directionAlias(strings.ToLower(ctx.ArgWords()[0]))

	room := ctx.World.GetRoom(ctx.User.CurrentRoomID)
	if room == nil {
		return single(ctx, "You float in a formless void.\n")
	}
	exit, ok := room.GetExit(direction)
	if !ok {
		return single(ctx, fmt.Sprintf("There is no exit %s.\n", direction))
	}
	if !exit.Locked {
		return single(ctx, fmt.Sprintf("The way %s is not locked.\n", direction))
	}
	if !carriesKey(ctx, exit.KeyID) {
		return single(ctx, "You don't have the key to unlock this door.\n")
	}

	room.UnlockExit(direction)
	return single(ctx, fmt.Sprintf("You unlock the way %s.\n", direction))
}

// carriesKey reports whether the user holds an item instance of the given
// template ID anywhere in their inventory.
func carriesKey(ctx *Context, keyTemplateID string) bool {
	for _, id := range ctx.User.Inventory {
		inst := ctx.World.GetItemInstance(id)
		if inst != nil && inst.TemplateID == keyTemplateID {
			return true
		}
	}
	return false
}

// findInventoryItem resolves a partial name against the user's inventory.
func findInventoryItem(ctx *Context, partial string) (string, bool) {
	for _, id := range ctx.User.Inventory {
		inst := ctx.World.GetItemInstance(id)
		if inst == nil {
			continue
		}
		tpl := ctx.World.GetItemTemplate(inst.TemplateID)
		if tpl != nil && matchesName(inst.DisplayName(tpl), partial) {
			return id, true
		}
	}
	return "", false
}
