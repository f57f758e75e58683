package effect

import (
	"testing"
	"time"
)

func TestApplyNewEffectNoExisting(t *testing.T) {
	r := NewRegistry()
	a := New("goblin-1", "player-1", TypePoison, StackRefresh, 6, 2, Payload{DamagePerTick: 3})

	applied := r.Apply(a)
	if applied != a {
		t.Fatalf("expected new effect to be applied as-is")
	}
	list := r.ListForTarget("goblin-1")
	if len(list) != 1 || list[0].ID != a.ID {
		t.Fatalf("expected registry to contain the new effect, got %v", list)
	}
}

func TestApplyReplace(t *testing.T) {
	r := NewRegistry()
	first := New("t1", "s1", TypeStun, StackReplace, 4, 1, Payload{})
	r.Apply(first)

	second := New("t1", "s1", TypeStun, StackReplace, 2, 1, Payload{})
	r.Apply(second)

	list := r.ListForTarget("t1")
	if len(list) != 1 || list[0].ID != second.ID {
		t.Fatalf("expected replace to leave only the new instance, got %v", list)
	}
	if r.Get(first.ID) != nil {
		t.Error("expected old instance to be removed from byInstance index")
	}
}

func TestApplyRefresh(t *testing.T) {
	r := NewRegistry()
	first := New("t1", "s1", TypeBuff, StackRefresh, 10, 1, Payload{})
	r.Apply(first)

	second := New("t1", "s1", TypeBuff, StackRefresh, 4, 1, Payload{})
	result := r.Apply(second)

	if result != first {
		t.Fatalf("expected refresh to keep the original instance")
	}
	if first.RemainingTicks != 4 {
		t.Errorf("expected remaining ticks reset to 4, got %d", first.RemainingTicks)
	}
	if len(r.ListForTarget("t1")) != 1 {
		t.Fatalf("expected exactly one effect after refresh")
	}
}

func TestApplyStackDuration(t *testing.T) {
	r := NewRegistry()
	first := New("t1", "s1", TypeSlow, StackDuration, 5, 1, Payload{})
	r.Apply(first)

	second := New("t1", "s1", TypeSlow, StackDuration, 3, 1, Payload{})
	r.Apply(second)

	if first.RemainingTicks != 8 {
		t.Errorf("expected durations to sum to 8, got %d", first.RemainingTicks)
	}
}

func TestApplyStackIntensityKeepsBoth(t *testing.T) {
	r := NewRegistry()
	first := New("t1", "s1", TypeBleed, StackIntensity, 5, 1, Payload{DamagePerTick: 1})
	second := New("t1", "s2", TypeBleed, StackIntensity, 5, 1, Payload{DamagePerTick: 2})

	r.Apply(first)
	r.Apply(second)

	list := r.ListForTarget("t1")
	if len(list) != 2 {
		t.Fatalf("expected both stacked instances to remain, got %d", len(list))
	}
}

func TestApplyStrongestWins(t *testing.T) {
	r := NewRegistry()
	weak := New("t1", "s1", TypeDebuff, StackStrongestWins, 5, 1, Payload{StatModifiers: map[string]int{"ac": -1}})
	r.Apply(weak)

	strong := New("t1", "s2", TypeDebuff, StackStrongestWins, 5, 1, Payload{StatModifiers: map[string]int{"ac": -5}})
	result := r.Apply(strong)

	if result != strong {
		t.Fatalf("expected the stronger payload to win")
	}
	if r.Get(weak.ID) != nil {
		t.Error("expected weaker effect to be removed")
	}

	// A weaker effect arriving after should not displace the strong one.
	weaker := New("t1", "s3", TypeDebuff, StackStrongestWins, 5, 1, Payload{StatModifiers: map[string]int{"ac": -1}})
	result2 := r.Apply(weaker)
	if result2 != strong {
		t.Fatalf("expected existing strong effect to survive a weaker challenger")
	}
}

func TestApplyIgnore(t *testing.T) {
	r := NewRegistry()
	first := New("t1", "s1", TypeFear, StackIgnore, 5, 1, Payload{})
	r.Apply(first)

	second := New("t1", "s2", TypeFear, StackIgnore, 5, 1, Payload{})
	result := r.Apply(second)

	if result != nil {
		t.Errorf("expected ignore to discard the new effect, got %v", result)
	}
	if len(r.ListForTarget("t1")) != 1 {
		t.Fatalf("expected only the original effect to remain")
	}
}

func TestRemoveIsOneShot(t *testing.T) {
	r := NewRegistry()
	a := New("t1", "s1", TypePoison, StackRefresh, 4, 1, Payload{})
	r.Apply(a)

	if !r.Remove(a.ID) {
		t.Fatal("expected first removal to succeed")
	}
	if r.Remove(a.ID) {
		t.Fatal("expected second removal of the same ID to fail")
	}
	if len(r.ListForTarget("t1")) != 0 {
		t.Error("expected target to have no effects left")
	}
}

func TestNoCrossTargetSideEffects(t *testing.T) {
	r := NewRegistry()
	a := New("goblin-1", "p1", TypePoison, StackReplace, 4, 1, Payload{DamagePerTick: 2})
	b := New("goblin-2", "p1", TypePoison, StackReplace, 4, 1, Payload{DamagePerTick: 2})
	r.Apply(a)
	r.Apply(b)

	r.Remove(a.ID)

	if len(r.ListForTarget("goblin-1")) != 0 {
		t.Error("expected goblin-1's effect to be gone")
	}
	if len(r.ListForTarget("goblin-2")) != 1 {
		t.Error("expected goblin-2's effect to survive goblin-1's removal")
	}
}

func TestAdvanceFiresOnIntervalAndExpires(t *testing.T) {
	r := NewRegistry()
	a := New("t1", "s1", TypePoison, StackReplace, 2, 1, Payload{DamagePerTick: 5})
	r.Apply(a)

	triggers := r.Advance(1, time.Now())
	if len(triggers) != 1 || triggers[0].Effect.Payload.DamagePerTick != 5 {
		t.Fatalf("expected one damage trigger on tick 1, got %v", triggers)
	}
	if len(r.ListForTarget("t1")) != 1 {
		t.Fatal("expected effect to survive after first tick (remaining 1)")
	}

	r.Advance(2, time.Now())
	if len(r.ListForTarget("t1")) != 0 {
		t.Error("expected effect to expire after remainingTicks reaches 0")
	}
}

func TestAdvanceSkipsOffIntervalTicks(t *testing.T) {
	r := NewRegistry()
	a := New("t1", "s1", TypeRegen, StackReplace, 10, 3, Payload{HealPerTick: 4})
	r.Apply(a)

	if triggers := r.Advance(1, time.Now()); len(triggers) != 0 {
		t.Errorf("expected no trigger on tick 1 (interval 3), got %v", triggers)
	}
	if triggers := r.Advance(3, time.Now()); len(triggers) != 1 {
		t.Errorf("expected a trigger on tick 3, got %v", triggers)
	}
}

func TestTimeBasedEffectExpiresOnWallClock(t *testing.T) {
	r := NewRegistry()
	a := NewTimeBased("t1", "s1", TypeStun, StackReplace, time.Now().Add(-time.Second), Payload{})
	r.Apply(a)

	r.Advance(1, time.Now())
	if len(r.ListForTarget("t1")) != 0 {
		t.Error("expected already-past time-based effect to be removed on first advance")
	}
}

func TestRemoveAllForTarget(t *testing.T) {
	r := NewRegistry()
	r.Apply(New("t1", "s1", TypePoison, StackIntensity, 4, 1, Payload{}))
	r.Apply(New("t1", "s2", TypeBleed, StackIntensity, 4, 1, Payload{}))

	r.RemoveAllForTarget("t1")

	if len(r.ListForTarget("t1")) != 0 {
		t.Error("expected all effects on target to be gone")
	}
	if len(r.AllTargets()) != 0 {
		t.Error("expected target to be dropped from AllTargets once empty")
	}
}
