package combat

import (
	"testing"

	"github.com/towerkeep/mudcore/internal/effect"
	"github.com/towerkeep/mudcore/internal/npc"
)

// mockFighter is a minimal Fighter used to test round resolution without a
// concrete player/session type.
type mockFighter struct {
	id            string
	health        int
	armorClass    int
	agility       int
	attackRoll    int
	damage        int
	isPlayer      bool
	lastAggroFrom string
	lastAggroAmt  int
}

func (m *mockFighter) ID() string   { return m.id }
func (m *mockFighter) Name() string { return m.id }
func (m *mockFighter) IsAlive() bool {
	return m.health > 0
}
func (m *mockFighter) ArmorClass() int { return m.armorClass }
func (m *mockFighter) Agility() int    { return m.agility }
func (m *mockFighter) RollAttack() (int, string) {
	return m.attackRoll, "mock"
}
func (m *mockFighter) RollDamage(sneakAttack bool) int { return m.damage }
func (m *mockFighter) TakeDamage(amount int) int {
	m.health -= amount
	if m.health < 0 {
		m.health = 0
	}
	return amount
}
func (m *mockFighter) IsPlayer() bool { return m.isPlayer }
func (m *mockFighter) AddAggro(attackerID string, amount int) {
	m.lastAggroFrom = attackerID
	m.lastAggroAmt = amount
}
func (m *mockFighter) HighestAggroTarget() string { return m.lastAggroFrom }

func TestAttackHit(t *testing.T) {
	sys := NewSystem(nil)
	attacker := &mockFighter{id: "p1", health: 20, attackRoll: 15, damage: 5}
	defender := &mockFighter{id: "goblin", health: 10, armorClass: 12}

	result := sys.Attack(attacker, defender, false)

	if !result.Hit {
		t.Fatalf("expected hit, roll 15 vs AC 12")
	}
	if result.Damage != 5 {
		t.Errorf("expected 5 damage, got %d", result.Damage)
	}
	if defender.health != 5 {
		t.Errorf("expected defender health 5, got %d", defender.health)
	}
	if defender.lastAggroFrom != "p1" || defender.lastAggroAmt != 5 {
		t.Errorf("expected aggro recorded from p1 for 5, got %s/%d", defender.lastAggroFrom, defender.lastAggroAmt)
	}
}

func TestAttackMiss(t *testing.T) {
	sys := NewSystem(nil)
	attacker := &mockFighter{id: "p1", health: 20, attackRoll: 8, damage: 5}
	defender := &mockFighter{id: "goblin", health: 10, armorClass: 15}

	result := sys.Attack(attacker, defender, false)

	if result.Hit {
		t.Fatalf("expected miss, roll 8 vs AC 15")
	}
	if defender.health != 10 {
		t.Errorf("expected no damage on miss, health = %d", defender.health)
	}
}

func TestAttackLethalMarksDeath(t *testing.T) {
	sys := NewSystem(nil)
	attacker := &mockFighter{id: "p1", health: 20, attackRoll: 20, damage: 50}
	defender := &mockFighter{id: "goblin", health: 10, armorClass: 10}

	result := sys.Attack(attacker, defender, false)

	if !result.DefenderDied {
		t.Fatalf("expected defender to die")
	}
	if defender.health != 0 {
		t.Errorf("expected health clamped to 0, got %d", defender.health)
	}
}

func TestAttackMitigatedByDamageReductionAndAbsorb(t *testing.T) {
	registry := effect.NewRegistry()
	registry.Apply(effect.New("goblin", "caster", effect.TypeDamageReduction, effect.StackReplace, 5, 1,
		effect.Payload{StatModifiers: map[string]int{"amount": 2}}))
	registry.Apply(effect.New("goblin", "caster", effect.TypeAbsorb, effect.StackReplace, 5, 1,
		effect.Payload{StatModifiers: map[string]int{"amount": 2}}))

	sys := NewSystem(registry)
	attacker := &mockFighter{id: "p1", health: 20, attackRoll: 20, damage: 10}
	defender := &mockFighter{id: "goblin", health: 10, armorClass: 10}

	result := sys.Attack(attacker, defender, false)

	// 10 raw - 2 reduction - 2 absorb = 6
	if result.Damage != 6 {
		t.Errorf("expected mitigated damage 6, got %d", result.Damage)
	}

	absorbEffect := registry.ListForTarget("goblin")
	for _, a := range absorbEffect {
		if a.Type == effect.TypeAbsorb && a.Payload.StatModifiers["amount"] != 0 {
			t.Errorf("expected absorb pool depleted to 0, got %d", a.Payload.StatModifiers["amount"])
		}
	}
}

func TestRunRoundSkipsDeadFighters(t *testing.T) {
	sys := NewSystem(nil)
	a := &mockFighter{id: "a", health: 20, attackRoll: 20, damage: 100, armorClass: 5}
	b := &mockFighter{id: "b", health: 20, attackRoll: 20, damage: 5, armorClass: 5}

	results := sys.RunRound([]Pairing{
		{Attacker: a, Defender: b}, // kills b outright
		{Attacker: b, Defender: a}, // b is already dead, must be skipped
	})

	if len(results) != 1 {
		t.Fatalf("expected only the first pairing to resolve, got %d", len(results))
	}
	if !results[0].DefenderDied {
		t.Error("expected b to have died in the first pairing")
	}
}

func TestInitiativeFavorsHigherAgility(t *testing.T) {
	fast := &mockFighter{id: "fast", agility: 30}
	slow := &mockFighter{id: "slow", agility: 1}

	winners := map[string]int{}
	for i := 0; i < 50; i++ {
		first, _ := Initiative(fast, slow)
		winners[first.ID()]++
	}
	if winners["fast"] <= winners["slow"] {
		t.Errorf("expected higher agility to usually win initiative, got %v", winners)
	}
}

func TestResolveNPCDeathSplitsXPAndGold(t *testing.T) {
	tpl := npc.NewTemplate("goblin", "Goblin", "a goblin", 1, 10, 3, 0, 100, true, true, 0, 0)
	tpl.GoldMin, tpl.GoldMax = 10, 10
	inst := npc.NewInstance(tpl, "room-1")
	inst.StartCombat("alice")
	inst.StartCombat("bob")
	inst.AddThreat("alice", 8)
	inst.AddThreat("bob", 2)
	inst.TakeDamage(tpl, 999)

	death := ResolveNPCDeath(tpl, inst)

	if death.XPPerAttacker != 50 {
		t.Errorf("expected XP split 50/50, got %d", death.XPPerAttacker)
	}
	if death.GoldPerAttacker != 5 {
		t.Errorf("expected gold split 5/5, got %d", death.GoldPerAttacker)
	}
	if len(death.Attackers) != 2 {
		t.Errorf("expected 2 attackers recorded, got %d", len(death.Attackers))
	}
	if inst.IsInCombat() {
		t.Error("expected combat cleared after death resolution")
	}
}

func TestResolvePlayerDeathClearsKillerAggro(t *testing.T) {
	tpl := npc.NewTemplate("goblin", "Goblin", "a goblin", 1, 10, 3, 0, 10, true, true, 0, 0)
	inst := npc.NewInstance(tpl, "room-1")
	inst.StartCombat("alice")
	inst.AddThreat("alice", 5)

	death := ResolvePlayerDeath("alice", "room-1", inst)

	if death.PlayerID != "alice" || death.KillerID != inst.InstanceID {
		t.Errorf("unexpected death record: %+v", death)
	}
	if inst.GetThreat("alice") != 0 {
		t.Error("expected killer's threat on the dead player cleared")
	}
}
