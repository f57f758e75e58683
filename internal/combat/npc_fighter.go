package combat

import (
	"github.com/towerkeep/mudcore/internal/npc"
)

// npcBaseAgility and npcEliteAgility are the agility scores assumed for
// NPCs, which do not carry a full ability-score block. Elites are treated
// as slightly quicker.
const (
	npcBaseAgility  = 10
	npcEliteAgility = 14
)

// NPCFighter adapts an NPC template and instance pair to the Fighter and
// AggroTracker interfaces so the combat system can resolve rounds against
// it without knowing about the npc package's own method shapes.
type NPCFighter struct {
	Template *npc.Template
	Instance *npc.Instance
}

var _ Fighter = NPCFighter{}
var _ AggroTracker = NPCFighter{}

func (f NPCFighter) ID() string   { return f.Instance.InstanceID }
func (f NPCFighter) Name() string { return f.Template.Name }

func (f NPCFighter) IsAlive() bool   { return f.Instance.IsAlive() }
func (f NPCFighter) ArmorClass() int { return f.Template.ArmorClass() }
func (f NPCFighter) IsPlayer() bool  { return false }

func (f NPCFighter) Agility() int {
	if f.Template.Elite {
		return npcEliteAgility
	}
	return npcBaseAgility
}

// RollAttack rolls a d20 plus the template's armor-derived to-hit bonus.
// NPCs have no ability scores of their own; their attack bonus is simply
// half their armor class above the baseline 10.
func (f NPCFighter) RollAttack() (int, string) {
	bonus := (f.Template.ArmorClass() - 10) / 2
	return D20Attack(bonus, "NPC")
}

// RollDamage returns the template's flat damage. Sneak attacks never
// originate from NPCs, so the flag is accepted but ignored.
func (f NPCFighter) RollDamage(sneakAttack bool) int {
	if f.Template.Damage <= 0 {
		return 1
	}
	return f.Template.Damage
}

func (f NPCFighter) TakeDamage(amount int) int {
	return f.Instance.TakeDamage(f.Template, amount)
}

func (f NPCFighter) AddAggro(attackerID string, amount int) {
	f.Instance.AddThreat(attackerID, amount)
}

func (f NPCFighter) HighestAggroTarget() string {
	return f.Instance.HighestThreatTarget()
}

func (f NPCFighter) StartCombat(targetID string) { f.Instance.StartCombat(targetID) }
func (f NPCFighter) EndCombat(targetID string)   { f.Instance.EndCombat(targetID) }
func (f NPCFighter) InCombat() bool              { return f.Instance.IsInCombat() }
