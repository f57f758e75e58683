package command

import (
	"fmt"
	"strings"

	"github.com/towerkeep/mudcore/internal/combat"
	"github.com/towerkeep/mudcore/internal/npc"
	"github.com/towerkeep/mudcore/internal/session"
	"github.com/towerkeep/mudcore/internal/world"
)

func registerCombat(d *Dispatcher) {
	d.register("attack", false, handleAttack)
	d.alias("attack", "kill", "hit")
	d.register("flee", false, handleFlee)
	d.register("consider", false, handleConsider)
	d.alias("consider", "con")
}

// resolveAndAnnounceNPCDeath applies an NPC's death outcome to the world
// (XP/gold split across attackers, loot dropped on the room floor) and
// returns the announcement line plus the acting user's own reward line.
// Other attackers are notified directly since they aren't the caller.
func resolveAndAnnounceNPCDeath(ctx *Context, tpl *npc.Template, inst *npc.Instance) (announce, ownReward string) {
	death := combat.ResolveNPCDeath(tpl, inst)

	state := ctx.World.GetRoomState(death.RoomID)
	if state != nil {
		state.RemoveNPCInstance(death.InstanceID)
		for _, id := range death.LootItemIDs {
			state.AddItemInstance(id)
		}
	}

	for _, username := range death.Attackers {
		attacker, ok := ctx.World.FindUser(username)
		if !ok {
			continue
		}
		attacker.GainExperience(death.XPPerAttacker)
		attacker.AddGold(death.GoldPerAttacker)
		applyKillProgress(ctx.World, attacker, tpl.ID)
		recordKillStats(attacker, tpl.ID, death.GoldPerAttacker)
		rewardLine := fmt.Sprintf("You gain %d experience and %d gold.\n", death.XPPerAttacker, death.GoldPerAttacker)
		if username == ctx.User.Username {
			ownReward = rewardLine
			continue
		}
		if client, ok := ctx.Manager.ClientFor(username); ok {
			client.Send(rewardLine)
		}
	}

	return fmt.Sprintf("%s has been defeated!\n", tpl.Name), ownReward
}

// recordKillStats updates the attacker's lifetime statistics after a
// killing blow; nil Stats is tolerated for users loaded from an older save.
func recordKillStats(u *world.User, npcTemplateID string, goldEarned int) {
	if u.Stats == nil {
		return
	}
	u.Stats.RecordKill(npcTemplateID)
	u.Stats.RecordGoldEarned(goldEarned)
}

// findRoomNPC resolves a partial name against the NPC instances present in
// the user's current room.
func findRoomNPC(ctx *Context, partial string) (*npc.Instance, *npc.Template) {
	state := ctx.World.GetRoomState(ctx.User.CurrentRoomID)
	if state == nil {
		return nil, nil
	}
	for _, id := range state.GetNPCInstances() {
		inst := ctx.World.GetNPCInstance(id)
		if inst == nil {
			continue
		}
		tpl := ctx.World.GetNPCTemplate(inst.TemplateID)
		if tpl != nil && matchesName(tpl.Name, partial) {
			return inst, tpl
		}
	}
	return nil, nil
}

func handleAttack(ctx *Context) ([]string, session.State) {
	if ctx.User.CombatTarget != "" {
		return single(ctx, "You are already fighting!\n")
	}
	if ctx.Args == "" {
		return single(ctx, "Usage: attack <target>\n")
	}
	inst, tpl := findRoomNPC(ctx, ctx.Args)
	if inst == nil {
		return single(ctx, fmt.Sprintf("You don't see '%s' here.\n", ctx.Args))
	}
	if !tpl.Attackable {
		return single(ctx, fmt.Sprintf("You cannot attack %s!\n", tpl.Name))
	}

	joiningFight := inst.IsInCombat()
	combat.Engage(ctx.User, combat.NPCFighter{Template: tpl, Instance: inst})

	var you, room string
	if joiningFight {
		you = fmt.Sprintf("You join the fight against %s!\n\nType 'flee' to escape.\n", tpl.Name)
		room = fmt.Sprintf("%s joins the fight against %s!\n", ctx.User.Username, tpl.Name)
	} else {
		you = fmt.Sprintf("You attack %s!\n\nCombat initiated! Type 'flee' to escape.\n", tpl.Name)
		room = fmt.Sprintf("%s attacks %s!\n", ctx.User.Username, tpl.Name)
	}
	sendToRoom(ctx, ctx.User.CurrentRoomID, ctx.User.Username, room)
	return single(ctx, you)
}

func handleFlee(ctx *Context) ([]string, session.State) {
	if ctx.User.CombatTarget == "" {
		return single(ctx, "You aren't fighting anyone!\n")
	}
	targetID := ctx.User.CombatTarget
	inst := ctx.World.GetNPCInstance(targetID)
	if inst == nil {
		ctx.User.EndCombat("")
		return single(ctx, "Your opponent has vanished!\n")
	}
	tpl := ctx.World.GetNPCTemplate(inst.TemplateID)
	combat.Disengage(ctx.User, combat.NPCFighter{Template: tpl, Instance: inst})

	room := ctx.World.GetRoom(ctx.User.CurrentRoomID)
	if room == nil || len(room.Exits) == 0 {
		return single(ctx, "You can't escape - there are no exits!\n")
	}
	exit := room.Exits[0]

	sendToRoom(ctx, ctx.User.CurrentRoomID, ctx.User.Username, fmt.Sprintf("%s flees from combat %s!\n", ctx.User.Username, exit.Direction))
	ctx.World.MoveUser(ctx.User.Username, ctx.User.CurrentRoomID, exit.TargetRoomID)
	ctx.User.CurrentRoomID = exit.TargetRoomID

	return single(ctx, fmt.Sprintf("You flee %s!\n%s", exit.Direction, session.RenderRoom(ctx.World, ctx.User)))
}

func handleConsider(ctx *Context) ([]string, session.State) {
	if ctx.Args == "" {
		return single(ctx, "Usage: consider <target>\n")
	}
	if lower := strings.ToLower(ctx.Args); lower == "self" || lower == "me" {
		return single(ctx, fmt.Sprintf("You are level %d.\n", ctx.User.Level))
	}
	_, tpl := findRoomNPC(ctx, ctx.Args)
	if tpl == nil {
		return single(ctx, fmt.Sprintf("You don't see '%s' here.\n", ctx.Args))
	}
	diff := tpl.Level - ctx.User.Level
	var difficulty string
	switch {
	case diff <= -5:
		difficulty = "trivial (no challenge)"
	case diff <= -3:
		difficulty = "easy (minor challenge)"
	case diff <= -1:
		difficulty = "manageable (fair fight)"
	case diff == 0:
		difficulty = "even match (50/50)"
	case diff <= 2:
		difficulty = "challenging (tough fight)"
	case diff <= 4:
		difficulty = "difficult (very dangerous)"
	default:
		difficulty = "deadly (flee immediately)"
	}
	return single(ctx, fmt.Sprintf("%s looks %s.\n", tpl.Name, difficulty))
}
