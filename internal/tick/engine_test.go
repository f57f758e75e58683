package tick

import (
	"testing"
	"time"

	"github.com/towerkeep/mudcore/internal/combat"
	"github.com/towerkeep/mudcore/internal/effect"
	"github.com/towerkeep/mudcore/internal/npc"
)

type mockRegenTarget struct {
	id    string
	ticks int
}

func (m *mockRegenTarget) ID() string { return m.id }
func (m *mockRegenTarget) RegenTick() { m.ticks++ }

func TestStepRunsEffectExpiry(t *testing.T) {
	registry := effect.NewRegistry()
	registry.Apply(effect.New("goblin", "caster", effect.TypePoison, effect.StackReplace, 2, 1, effect.Payload{DamagePerTick: 4}))

	var triggered int
	engine := New(registry, combat.NewSystem(registry), 1000, 0, true)
	engine.OnEffectTrigger(func(trigger effect.Trigger) { triggered++ })

	engine.Step()
	if triggered != 1 {
		t.Errorf("expected one effect trigger on first step, got %d", triggered)
	}
	if len(registry.ListForTarget("goblin")) != 1 {
		t.Fatal("expected effect to still be active after one tick (remaining 1)")
	}

	engine.Step()
	if len(registry.ListForTarget("goblin")) != 0 {
		t.Error("expected effect expired after second tick")
	}
}

func TestStepRunsRegenTargets(t *testing.T) {
	engine := New(nil, nil, 1000, 0, true)
	target := &mockRegenTarget{id: "alice"}
	engine.OnRegenTargets(func() []RegenTarget { return []RegenTarget{target} })

	engine.Step()
	engine.Step()

	if target.ticks != 2 {
		t.Errorf("expected regen target ticked twice, got %d", target.ticks)
	}
}

func TestStepRunsCombatRooms(t *testing.T) {
	registry := effect.NewRegistry()
	sys := combat.NewSystem(registry)
	engine := New(registry, sys, 1000, 0, true)

	tpl := npc.NewTemplate("goblin", "Goblin", "a goblin", 1, 10, 5, 0, 10, true, true, 0, 0)
	inst := npc.NewInstance(tpl, "room-1")
	fighter := combat.NPCFighter{Template: tpl, Instance: inst}

	var capturedRoom string
	var capturedResults []combat.AttackResult
	engine.OnCombatRooms(func() []CombatRoom {
		return []CombatRoom{{
			RoomID: "room-1",
			Pairings: []combat.Pairing{
				{Attacker: fighter, Defender: fighter},
			},
		}}
	})
	engine.OnCombatResults(func(roomID string, results []combat.AttackResult) {
		capturedRoom = roomID
		capturedResults = results
	})

	engine.Step()

	if capturedRoom != "room-1" {
		t.Errorf("expected results for room-1, got %s", capturedRoom)
	}
	if len(capturedResults) != 1 {
		t.Fatalf("expected one attack result, got %d", len(capturedResults))
	}
}

func TestStepAutosaveFiresOnInterval(t *testing.T) {
	engine := New(nil, nil, 1000, 3, true)
	var saves int
	engine.OnAutosave(func() { saves++ })

	engine.Step()
	engine.Step()
	if saves != 0 {
		t.Fatalf("expected no autosave before interval elapses, got %d", saves)
	}
	engine.Step()
	if saves != 1 {
		t.Errorf("expected one autosave at tick 3, got %d", saves)
	}
}

func TestRespawnQueueReadyAfterTimer(t *testing.T) {
	tpl := npc.NewTemplate("goblin", "Goblin", "a goblin", 1, 10, 5, 0, 10, true, true, 1, 0)
	inst := npc.NewInstance(tpl, "room-1")
	inst.TakeDamage(tpl, 999)
	inst.CalculateRespawnTime(tpl)

	q := NewRespawnQueue()
	q.Enqueue(tpl, inst)
	if q.Len() != 1 {
		t.Fatalf("expected queue to hold one entry, got %d", q.Len())
	}

	if ready := q.Ready(time.Now()); len(ready) != 0 {
		t.Fatalf("expected nothing ready immediately, got %d", len(ready))
	}

	future := time.Now().Add(5 * time.Second)
	ready := q.Ready(future)
	if len(ready) != 1 {
		t.Fatalf("expected one ready respawn, got %d", len(ready))
	}
	if !inst.IsAlive() {
		t.Error("expected instance reset to full health on respawn")
	}
	if q.Len() != 0 {
		t.Error("expected queue drained after respawn")
	}
}

func TestRespawnQueueSkipsDisabledRespawn(t *testing.T) {
	tpl := npc.NewTemplate("statue", "Statue", "a statue", 1, 10, 0, 0, 0, false, false, 0, 0)
	inst := npc.NewInstance(tpl, "room-1")
	inst.CalculateRespawnTime(tpl) // RespawnMedian 0 => zero RespawnTime

	q := NewRespawnQueue()
	q.Enqueue(tpl, inst)
	if q.Len() != 0 {
		t.Errorf("expected instance with disabled respawn not queued, got len %d", q.Len())
	}
}

func TestCooldownTrackerTicksDown(t *testing.T) {
	c := NewCooldownTracker()
	c.Set("alice", "fireball", 2)

	if c.Ready("alice", "fireball") {
		t.Fatal("expected ability on cooldown")
	}
	c.Tick()
	if c.Remaining("alice", "fireball") != 1 {
		t.Errorf("expected 1 tick remaining, got %d", c.Remaining("alice", "fireball"))
	}
	c.Tick()
	if !c.Ready("alice", "fireball") {
		t.Error("expected ability ready after cooldown elapses")
	}
}
