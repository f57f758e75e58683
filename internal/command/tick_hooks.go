package command

import (
	"fmt"

	"github.com/towerkeep/mudcore/internal/combat"
	"github.com/towerkeep/mudcore/internal/effect"
	"github.com/towerkeep/mudcore/internal/npc"
	"github.com/towerkeep/mudcore/internal/session"
	"github.com/towerkeep/mudcore/internal/tick"
	"github.com/towerkeep/mudcore/internal/world"
)

// CollectRegenTargets adapts every online user into a tick.RegenTarget, the
// hook the tick engine calls each step for resource/vitals regeneration.
func CollectRegenTargets(w *world.World) []tick.RegenTarget {
	users := w.AllUsers()
	out := make([]tick.RegenTarget, 0, len(users))
	for _, u := range users {
		if w.GetUserRoom(u.Username) == "" {
			continue // offline; regen resumes once they reconnect
		}
		out = append(out, u)
	}
	return out
}

// CollectCombatRooms builds this round's attacker/defender pairings, grouped
// by room, from every user mid-fight and every NPC instance currently
// engaged. Per spec, a user's attack against its target and that target's
// (or any of its other attackers') counter-attacks are modeled as separate
// pairings in the same room's list.
func CollectCombatRooms(w *world.World) []tick.CombatRoom {
	byRoom := make(map[string][]combat.Pairing)

	for _, u := range w.AllUsers() {
		if u.CombatTarget == "" {
			continue
		}
		inst := w.GetNPCInstance(u.CombatTarget)
		if inst == nil || !inst.IsAlive() {
			continue
		}
		tpl := w.GetNPCTemplate(inst.TemplateID)
		if tpl == nil {
			continue
		}
		roomID := w.GetUserRoom(u.Username)
		if roomID == "" || roomID != inst.RoomID {
			continue
		}
		byRoom[roomID] = append(byRoom[roomID], combat.Pairing{
			Attacker: w.FighterFor(u),
			Defender: combat.NPCFighter{Template: tpl, Instance: inst},
		})
	}

	for _, inst := range w.AllNPCInstances() {
		if !inst.IsInCombat() || !inst.IsAlive() {
			continue
		}
		tpl := w.GetNPCTemplate(inst.TemplateID)
		if tpl == nil {
			continue
		}
		for _, username := range inst.GetTargets() {
			u, ok := w.FindUser(username)
			if !ok || !u.IsAlive() {
				continue
			}
			if w.GetUserRoom(username) != inst.RoomID {
				continue
			}
			byRoom[inst.RoomID] = append(byRoom[inst.RoomID], combat.Pairing{
				Attacker: combat.NPCFighter{Template: tpl, Instance: inst},
				Defender: w.FighterFor(u),
			})
		}
	}

	rooms := make([]tick.CombatRoom, 0, len(byRoom))
	for roomID, pairings := range byRoom {
		rooms = append(rooms, tick.CombatRoom{RoomID: roomID, Pairings: pairings})
	}
	return rooms
}

// fighterName resolves either a username or an NPC instance ID to a display
// name for combat broadcast lines.
func fighterName(w *world.World, id string) string {
	if u, ok := w.FindUser(id); ok {
		return u.Username
	}
	if inst := w.GetNPCInstance(id); inst != nil {
		if tpl := w.GetNPCTemplate(inst.TemplateID); tpl != nil {
			return tpl.Name
		}
	}
	return id
}

// HandleCombatResults narrates one room's resolved attack round and applies
// death outcomes: NPC deaths split XP/gold/loot across attackers and credit
// quest kill progress, player deaths leave them unconscious (TakeDamage
// already applied that) and clear their combat state.
func HandleCombatResults(w *world.World, m *session.Manager, rq *tick.RespawnQueue, roomID string, results []combat.AttackResult) {
	for _, r := range results {
		attackerName := fighterName(w, r.AttackerID)
		defenderName := fighterName(w, r.DefenderID)

		var line string
		switch {
		case !r.Hit:
			line = fmt.Sprintf("%s attacks %s but misses!\n", attackerName, defenderName)
		case r.WasSneakAttack:
			line = fmt.Sprintf("%s sneak attacks %s for %d damage!\n", attackerName, defenderName, r.Damage)
		default:
			line = fmt.Sprintf("%s hits %s for %d damage!\n", attackerName, defenderName, r.Damage)
		}
		broadcastToRoom(w, m, roomID, "", line)

		if r.Hit {
			if attacker, ok := w.FindUser(r.AttackerID); ok && attacker.Stats != nil {
				attacker.Stats.RecordDamageDealt(r.Damage)
			}
			if defender, ok := w.FindUser(r.DefenderID); ok && defender.Stats != nil {
				defender.Stats.RecordDamageTaken(r.Damage)
			}
		}

		if !r.DefenderDied {
			continue
		}

		if inst := w.GetNPCInstance(r.DefenderID); inst != nil {
			tpl := w.GetNPCTemplate(inst.TemplateID)
			if tpl != nil {
				handleTickNPCDeath(w, m, rq, tpl, inst)
			}
			continue
		}

		if u, ok := w.FindUser(r.DefenderID); ok {
			u.EndCombat("")
			if u.Stats != nil {
				u.Stats.RecordDeath()
			}
			broadcastToRoom(w, m, roomID, "", fmt.Sprintf("%s falls unconscious!\n", u.Username))
		}
	}
}

// handleTickNPCDeath mirrors resolveAndAnnounceNPCDeath's reward/loot
// handling for the death path driven by the tick engine's combat round
// rather than a single player's attack command.
func handleTickNPCDeath(w *world.World, m *session.Manager, rq *tick.RespawnQueue, tpl *npc.Template, inst *npc.Instance) {
	death := combat.ResolveNPCDeath(tpl, inst)

	state := w.GetRoomState(death.RoomID)
	if state != nil {
		state.RemoveNPCInstance(death.InstanceID)
		for _, id := range death.LootItemIDs {
			state.AddItemInstance(id)
		}
	}
	if rq != nil {
		rq.Enqueue(tpl, inst)
	}

	for _, username := range death.Attackers {
		attacker, ok := w.FindUser(username)
		if !ok {
			continue
		}
		attacker.GainExperience(death.XPPerAttacker)
		attacker.AddGold(death.GoldPerAttacker)
		applyKillProgress(w, attacker, tpl.ID)
		recordKillStats(attacker, tpl.ID, death.GoldPerAttacker)
		if client, ok := m.ClientFor(username); ok {
			client.Send(fmt.Sprintf("You gain %d experience and %d gold.\n", death.XPPerAttacker, death.GoldPerAttacker))
		}
	}

	broadcastToRoom(w, m, death.RoomID, "", fmt.Sprintf("%s has been defeated!\n", tpl.Name))
}

// HandleRespawn reinstates a ready NPC instance into its original room's
// runtime state and announces its return, the OnRespawn hook for the tick
// engine's step 5.
func HandleRespawn(w *world.World, m *session.Manager, event tick.RespawnEvent) {
	state := w.GetRoomState(event.RoomID)
	if state != nil {
		state.AddNPCInstance(event.Instance.InstanceID)
	}
	broadcastToRoom(w, m, event.RoomID, "", fmt.Sprintf("%s has returned.\n", event.Template.Name))
}

// HandleEffectTrigger applies one effect payload firing on schedule (poison
// DOT, regen HOT, periodic stat pulse) to its target, whichever of user or
// NPC instance the target ID resolves to, and reports it to the room.
func HandleEffectTrigger(w *world.World, m *session.Manager, rq *tick.RespawnQueue, trigger effect.Trigger) {
	payload := trigger.Effect.Payload
	targetID := trigger.TargetID

	if u, ok := w.FindUser(targetID); ok {
		roomID := w.GetUserRoom(u.Username)
		switch {
		case payload.DamagePerTick > 0:
			u.TakeDamage(payload.DamagePerTick)
			broadcastToRoom(w, m, roomID, "", fmt.Sprintf("%s suffers %d damage from %s.\n", u.Username, payload.DamagePerTick, trigger.Effect.Name))
		case payload.HealPerTick > 0:
			u.Heal(payload.HealPerTick)
			broadcastToRoom(w, m, roomID, "", fmt.Sprintf("%s recovers %d health from %s.\n", u.Username, payload.HealPerTick, trigger.Effect.Name))
		}
		return
	}

	inst := w.GetNPCInstance(targetID)
	if inst == nil {
		return
	}
	tpl := w.GetNPCTemplate(inst.TemplateID)
	if tpl == nil {
		return
	}
	switch {
	case payload.DamagePerTick > 0:
		inst.TakeDamage(tpl, payload.DamagePerTick)
		broadcastToRoom(w, m, inst.RoomID, "", fmt.Sprintf("%s suffers %d damage from %s.\n", tpl.Name, payload.DamagePerTick, trigger.Effect.Name))
		if !inst.IsAlive() {
			handleTickNPCDeath(w, m, rq, tpl, inst)
		}
	case payload.HealPerTick > 0:
		inst.Heal(tpl, payload.HealPerTick)
		broadcastToRoom(w, m, inst.RoomID, "", fmt.Sprintf("%s recovers %d health from %s.\n", tpl.Name, payload.HealPerTick, trigger.Effect.Name))
	}
}

// broadcastToRoom delivers a line to every live session in a room, optionally
// excluding one player by name.
func broadcastToRoom(w *world.World, m *session.Manager, roomID, exclude, line string) {
	state := w.GetRoomState(roomID)
	if state == nil {
		return
	}
	for _, name := range state.GetPlayers() {
		if name == exclude {
			continue
		}
		if client, ok := m.ClientFor(name); ok {
			client.Send(line)
		}
	}
}
