package resource

import "testing"

func TestMaxFormulas(t *testing.T) {
	s := Stats{Intelligence: 14, Wisdom: 12, Level: 5}

	if got := Max(TypeMana, s); got != 20+3*14+2*12 {
		t.Errorf("MANA max = %d, want %d", got, 20+3*14+2*12)
	}
	if got := Max(TypeRage, s); got != 100 {
		t.Errorf("RAGE max = %d, want 100", got)
	}
	if got := Max(TypeEnergy, s); got != 100 {
		t.Errorf("ENERGY max = %d, want 100", got)
	}
	if got := Max(TypeKi, s); got != 3*12+2*5 {
		t.Errorf("KI max = %d, want %d", got, 3*12+2*5)
	}
	if got := Max(TypeHoly, s); got != 5 {
		t.Errorf("HOLY max = %d, want 5", got)
	}
	if got := Max(TypeNature, s); got != 30+2*12 {
		t.Errorf("NATURE max = %d, want %d", got, 30+2*12)
	}
	if got := Max(TypeNone, s); got != 0 {
		t.Errorf("NONE max = %d, want 0", got)
	}
}

func TestManaRegenAndMeditate(t *testing.T) {
	s := Stats{Intelligence: 20, Wisdom: 10}
	p := NewPool(TypeMana, s)
	p.Current = 0

	p.Regen(s)
	if p.Current != 4+20/10 {
		t.Errorf("mana regen = %d, want %d", p.Current, 4+20/10)
	}

	p.Current = 0
	p.Meditating = true
	p.Regen(s)
	if want := (4 + 20/10) * ManaMeditateMultiplier; p.Current != want {
		t.Errorf("meditating mana regen = %d, want %d", p.Current, want)
	}
}

func TestRageDecayAndCombatEvents(t *testing.T) {
	s := Stats{}
	p := NewPool(TypeRage, s)
	p.Current = 50

	p.Regen(s)
	if p.Current != 50-RageDecayPerTick {
		t.Errorf("rage after decay = %d, want %d", p.Current, 50-RageDecayPerTick)
	}

	p.OnDamageDealt()
	if p.Current != 50-RageDecayPerTick+RageOnDamageDealt {
		t.Errorf("rage after damage dealt = %d", p.Current)
	}

	p.OnDamageTaken()
	want := 50 - RageDecayPerTick + RageOnDamageDealt + RageOnDamageTaken
	if p.Current != want {
		t.Errorf("rage after damage taken = %d, want %d", p.Current, want)
	}
}

func TestRageNeverNegative(t *testing.T) {
	p := NewPool(TypeRage, Stats{})
	p.Current = 2
	p.Regen(Stats{})
	if p.Current != 0 {
		t.Errorf("rage should clamp at 0, got %d", p.Current)
	}
}

func TestHolyChargeEveryFiveTicks(t *testing.T) {
	s := Stats{}
	p := NewPool(TypeHoly, s)
	p.Current = 0

	for i := 0; i < HolyTickInterval-1; i++ {
		p.Regen(s)
	}
	if p.Current != 0 {
		t.Errorf("expected no holy charge before interval elapses, got %d", p.Current)
	}
	p.Regen(s)
	if p.Current != 1 {
		t.Errorf("expected one holy charge after %d ticks, got %d", HolyTickInterval, p.Current)
	}
}

func TestSpendIsTransactional(t *testing.T) {
	p := NewPool(TypeEnergy, Stats{})
	p.Current = 30

	if !p.Spend(30) {
		t.Fatal("expected spend of exact balance to succeed")
	}
	if p.Current != 0 {
		t.Errorf("expected balance 0 after spend, got %d", p.Current)
	}

	if p.Spend(1) {
		t.Fatal("expected spend beyond balance to fail")
	}
	if p.Current != 0 {
		t.Errorf("expected balance unchanged after failed spend, got %d", p.Current)
	}
}

func TestRecalculateClampsCurrent(t *testing.T) {
	p := NewPool(TypeMana, Stats{Intelligence: 20, Wisdom: 10})
	p.Current = p.Max

	p.Recalculate(Stats{Intelligence: 5, Wisdom: 5})
	if p.Current != p.Max {
		t.Errorf("expected current to clamp down to new max %d, got %d", p.Max, p.Current)
	}
}
