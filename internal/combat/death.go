package combat

import (
	"time"

	"github.com/towerkeep/mudcore/internal/npc"
)

// NPCDeath is the outcome of an NPC instance reaching zero health: XP and
// gold split evenly among every attacker it is engaged with, loot
// rolled from its template, and the respawn time to schedule.
type NPCDeath struct {
	TemplateID      string
	InstanceID      string
	RoomID          string
	Attackers       []string
	XPPerAttacker   int
	GoldPerAttacker int
	LootItemIDs     []string
	RespawnAt       time.Time
}

// ResolveNPCDeath computes the death outcome for an NPC instance that has
// just reached zero health. It does not mutate world state beyond the
// instance's own respawn bookkeeping (CalculateRespawnTime) — removing the
// instance from its room, awarding XP/gold/loot to attackers, and queuing
// the respawn are the caller's responsibility, since those touch the world
// registry and online sessions this package does not own.
func ResolveNPCDeath(tpl *npc.Template, inst *npc.Instance) NPCDeath {
	attackers := inst.GetTargets()

	xpPerAttacker := tpl.Experience
	goldPerAttacker := npc.RollGold(tpl)
	if len(attackers) > 1 {
		xpPerAttacker /= len(attackers)
		goldPerAttacker /= len(attackers)
	}

	death := NPCDeath{
		TemplateID:      tpl.ID,
		InstanceID:      inst.InstanceID,
		RoomID:          inst.RoomID,
		Attackers:       attackers,
		XPPerAttacker:   xpPerAttacker,
		GoldPerAttacker: goldPerAttacker,
		LootItemIDs:     inst.RollLoot(tpl),
		RespawnAt:       inst.CalculateRespawnTime(tpl),
	}

	inst.EndCombat("")
	return death
}

// PlayerDeath is the outcome of a player's health reaching zero: combat
// ends for both sides, any aggression the killer held on the player is
// cleared, and the caller (session/tick engine) is responsible for the
// unconscious transition, respawn-room placement, and broadcast.
type PlayerDeath struct {
	PlayerID string
	KillerID string
	RoomID   string
}

// ResolvePlayerDeath clears combat state for a player killed by an NPC. The
// player is never removed from the world — per spec, death makes them
// unconscious, not deleted.
func ResolvePlayerDeath(playerID, roomID string, killer *npc.Instance) PlayerDeath {
	killer.EndCombat(playerID)
	return PlayerDeath{PlayerID: playerID, KillerID: killer.InstanceID, RoomID: roomID}
}
