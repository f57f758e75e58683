package npc

import (
	"testing"
	"time"
)

func TestCalculateRespawnTime(t *testing.T) {
	tests := []struct {
		name             string
		respawnMedian    int
		respawnVariation int
		expectRespawn    bool
	}{
		{name: "Respawn enabled with variation", respawnMedian: 60, respawnVariation: 10, expectRespawn: true},
		{name: "Respawn enabled without variation", respawnMedian: 120, respawnVariation: 0, expectRespawn: true},
		{name: "Respawn disabled", respawnMedian: 0, respawnVariation: 0, expectRespawn: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := NewTemplate("test_goblin", "test goblin", "A test goblin", 1, 20, 3, 0, 10, true, true, tt.respawnMedian, tt.respawnVariation)
			inst := NewInstance(tpl, "test_room")

			before := time.Now()
			respawnTime := inst.CalculateRespawnTime(tpl)
			after := time.Now()

			if tt.expectRespawn {
				if !respawnTime.After(before) {
					t.Errorf("Expected respawn time to be after death time, got %v", respawnTime)
				}
				expectedMin := before.Add(time.Duration(tt.respawnMedian-tt.respawnVariation) * time.Second)
				expectedMax := after.Add(time.Duration(tt.respawnMedian+tt.respawnVariation) * time.Second)
				if respawnTime.Before(expectedMin) || respawnTime.After(expectedMax) {
					t.Errorf("Respawn time %v not within expected range [%v, %v]", respawnTime, expectedMin, expectedMax)
				}
				if inst.DeathTime.IsZero() {
					t.Error("Expected death time to be set")
				}
			} else if !respawnTime.IsZero() {
				t.Errorf("Expected zero respawn time for disabled respawn, got %v", respawnTime)
			}
		})
	}
}

func TestInstanceReset(t *testing.T) {
	tpl := NewTemplate("test_orc", "test orc", "A test orc", 3, 40, 8, 2, 30, true, true, 180, 30)
	inst := NewInstance(tpl, "test_room")

	inst.TakeDamage(tpl, 20)
	inst.StartCombat("player1")
	inst.CalculateRespawnTime(tpl)

	if inst.CurrentHealth() == tpl.MaxHealth {
		t.Error("Expected instance to be damaged")
	}
	if !inst.IsInCombat() {
		t.Error("Expected instance to be in combat")
	}
	if len(inst.GetTargets()) == 0 {
		t.Error("Expected instance to have targets")
	}
	if inst.DeathTime.IsZero() {
		t.Error("Expected death time to be set")
	}

	inst.Reset(tpl)

	if inst.CurrentHealth() != tpl.MaxHealth {
		t.Errorf("Expected health to be %d, got %d", tpl.MaxHealth, inst.CurrentHealth())
	}
	if inst.IsInCombat() {
		t.Error("Expected instance to not be in combat")
	}
	if len(inst.GetTargets()) != 0 {
		t.Errorf("Expected no targets, got %d", len(inst.GetTargets()))
	}
	if !inst.DeathTime.IsZero() {
		t.Error("Expected death time to be cleared")
	}
	if !inst.RespawnTime.IsZero() {
		t.Error("Expected respawn time to be cleared")
	}
}

func TestOriginalRoomTracking(t *testing.T) {
	tpl := NewTemplate("test_bat", "test bat", "A test bat", 2, 12, 4, 0, 12, true, true, 120, 30)
	inst := NewInstance(tpl, "cave_room")

	if tpl.RespawnMedian != 120 {
		t.Errorf("Expected respawn median 120, got %d", tpl.RespawnMedian)
	}
	if tpl.RespawnVariation != 30 {
		t.Errorf("Expected respawn variation 30, got %d", tpl.RespawnVariation)
	}
	if inst.OriginalRoomID != "cave_room" {
		t.Errorf("Expected original room 'cave_room', got '%s'", inst.OriginalRoomID)
	}
}

func TestTemplateDialogue(t *testing.T) {
	tpl := NewTemplate("test_merchant", "test merchant", "A test merchant", 5, 50, 0, 0, 0, false, false, 0, 0)

	if dialogue := tpl.RandomDialogue(); dialogue != "" {
		t.Errorf("Expected empty dialogue for template without dialogue, got '%s'", dialogue)
	}

	tpl.Dialogue = []string{
		"Welcome to my shop!",
		"What would you like to buy?",
		"Come again soon!",
	}

	dialogue := tpl.RandomDialogue()
	found := false
	for _, line := range tpl.Dialogue {
		if dialogue == line {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("RandomDialogue returned unexpected value: '%s'", dialogue)
	}
}

func TestDialogueFromDefinition(t *testing.T) {
	def := NPCDefinition{
		Name:        "shopkeeper",
		Description: "A friendly shopkeeper",
		Level:       4,
		Health:      40,
		Dialogue: []string{
			"Hello there!",
			"How can I help you?",
		},
	}

	tpl := TemplateFromDefinition("shopkeeper", def)

	dialogue := tpl.RandomDialogue()
	if dialogue != "Hello there!" && dialogue != "How can I help you?" {
		t.Errorf("Expected dialogue from definition, got '%s'", dialogue)
	}
}

func TestRollLoot(t *testing.T) {
	t.Run("Regular mob with loot table", func(t *testing.T) {
		tpl := NewTemplate("test_goblin", "test goblin", "A test goblin", 1, 20, 3, 0, 10, true, true, 120, 30)
		tpl.LootTable = []LootEntry{
			{ItemName: "copper coin", DropChance: 100.0}, // Always drops
			{ItemName: "rare gem", DropChance: 0.0},      // Never drops
		}
		inst := NewInstance(tpl, "test_room")

		gotCopperCoin := false
		gotRareGem := false
		for i := 0; i < 100; i++ {
			for _, item := range inst.RollLoot(tpl) {
				if item == "copper coin" {
					gotCopperCoin = true
				}
				if item == "rare gem" {
					gotRareGem = true
				}
			}
		}

		if !gotCopperCoin {
			t.Error("Expected copper coin to drop with 100% chance")
		}
		if gotRareGem {
			t.Error("Did not expect rare gem to drop with 0% chance")
		}
	})

	t.Run("Elite drops everything", func(t *testing.T) {
		tpl := NewTemplate("test_boss", "test boss", "A test boss", 10, 200, 25, 5, 500, true, true, 900, 180)
		tpl.Elite = true
		tpl.LootTable = []LootEntry{
			{ItemName: "boss crown", DropChance: 1.0},
			{ItemName: "epic sword", DropChance: 5.0},
			{ItemName: "ancient key", DropChance: 10.0},
		}
		inst := NewInstance(tpl, "boss_room")

		loot := inst.RollLoot(tpl)
		if len(loot) != 3 {
			t.Errorf("Expected elite to drop all 3 items, got %d", len(loot))
		}

		hasItems := map[string]bool{"boss crown": false, "epic sword": false, "ancient key": false}
		for _, item := range loot {
			hasItems[item] = true
		}
		for item, has := range hasItems {
			if !has {
				t.Errorf("Expected elite to drop %s", item)
			}
		}
	})

	t.Run("NPC with no loot table drops nothing", func(t *testing.T) {
		tpl := NewTemplate("no_loot_mob", "no loot mob", "A mob with no loot", 2, 30, 5, 1, 20, true, true, 120, 30)
		inst := NewInstance(tpl, "test_room")

		for i := 0; i < 10; i++ {
			if loot := inst.RollLoot(tpl); len(loot) > 0 {
				t.Error("Expected no loot from mob without loot table")
			}
		}
	})
}

func TestLootTableFromDefinition(t *testing.T) {
	def := NPCDefinition{
		Name:        "test mob",
		Description: "A test mob",
		Level:       3,
		Health:      30,
		LootTable: []LootEntryYAML{
			{Item: "gold coin", Chance: 50.0},
			{Item: "healing potion", Chance: 25.0},
		},
	}

	tpl := TemplateFromDefinition("test_mob", def)

	if len(tpl.LootTable) != 2 {
		t.Errorf("Expected 2 loot entries, got %d", len(tpl.LootTable))
	}
	if tpl.LootTable[0].ItemName != "gold coin" || tpl.LootTable[0].DropChance != 50.0 {
		t.Errorf("First loot entry incorrect: %+v", tpl.LootTable[0])
	}
	if tpl.LootTable[1].ItemName != "healing potion" || tpl.LootTable[1].DropChance != 25.0 {
		t.Errorf("Second loot entry incorrect: %+v", tpl.LootTable[1])
	}
}
