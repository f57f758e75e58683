// Package combat resolves per-room combat rounds: initiative, attack rolls
// against armor class, damage mitigation from active effects, and the
// aggression bookkeeping that drives NPC target selection.
package combat

import (
	"fmt"
	"math/rand"

	"github.com/towerkeep/mudcore/internal/effect"
	"github.com/towerkeep/mudcore/internal/stats"
)

// Fighter is anything that can take part in a combat round: an NPC
// instance today, a player session once the session package exists. It is
// deliberately narrow so this package never needs to import npc or player
// types directly for the generic round logic.
type Fighter interface {
	ID() string
	Name() string
	IsAlive() bool
	ArmorClass() int
	Agility() int
	RollAttack() (roll int, breakdown string)
	RollDamage(sneakAttack bool) int
	TakeDamage(amount int) int
	IsPlayer() bool
}

// AggroTracker is implemented by fighters that maintain a per-attacker
// aggression table. Only NPCs do today; players are never targeted by
// threat, only by direct command.
type AggroTracker interface {
	AddAggro(attackerID string, amount int)
	HighestAggroTarget() string
}

// AttackResult describes the outcome of one fighter's attack against
// another.
type AttackResult struct {
	AttackerID, DefenderID string
	Hit                    bool
	Roll                   int
	Breakdown              string
	TargetArmorClass       int
	Damage                 int
	DefenderDied           bool
	WasSneakAttack         bool
}

// System resolves attacks, reading the effect registry for damage
// mitigation (DAMAGE_REDUCTION, ABSORB) active on the defender.
type System struct {
	Effects *effect.Registry
}

// NewSystem creates a combat system backed by the given effect registry.
// Effects may be nil, in which case no mitigation is applied.
func NewSystem(effects *effect.Registry) *System {
	return &System{Effects: effects}
}

// Initiative orders two fighters for a round by agility plus a small
// random jitter, per the "determine initiative by agility comparison with
// small random jitter" rule.
func Initiative(a, b Fighter) (first, second Fighter) {
	scoreA := a.Agility() + rand.Intn(6)
	scoreB := b.Agility() + rand.Intn(6)
	if scoreA >= scoreB {
		return a, b
	}
	return b, a
}

// Attack resolves attacker's attack against defender: roll to hit against
// armor class, then on a hit roll damage, mitigate it through any active
// DAMAGE_REDUCTION/ABSORB effects on the defender, and apply it. If
// defender tracks aggression, the attacker's aggro is updated with the
// damage actually dealt.
func (s *System) Attack(attacker, defender Fighter, sneakAttack bool) AttackResult {
	roll, breakdown := attacker.RollAttack()
	ac := defender.ArmorClass()

	result := AttackResult{
		AttackerID:       attacker.ID(),
		DefenderID:       defender.ID(),
		Roll:             roll,
		Breakdown:        breakdown,
		TargetArmorClass: ac,
		WasSneakAttack:   sneakAttack,
	}

	if roll < ac {
		return result
	}
	result.Hit = true

	raw := attacker.RollDamage(sneakAttack)
	mitigated := s.mitigate(defender.ID(), raw)
	actual := defender.TakeDamage(mitigated)
	result.Damage = actual

	if tracker, ok := defender.(AggroTracker); ok {
		tracker.AddAggro(attacker.ID(), actual)
	}

	if !defender.IsAlive() {
		result.DefenderDied = true
	}

	return result
}

// mitigate reduces rawDamage by the defender's active DAMAGE_REDUCTION and
// ABSORB effects, reading and (for ABSORB) depleting them from the effect
// registry's StatModifiers["amount"] convention.
func (s *System) mitigate(defenderID string, rawDamage int) int {
	if s.Effects == nil {
		return rawDamage
	}
	dmg := rawDamage
	for _, a := range s.Effects.ListForTarget(defenderID) {
		switch a.Type {
		case effect.TypeDamageReduction:
			dmg -= a.Payload.StatModifiers["amount"]
		case effect.TypeAbsorb:
			pool := a.Payload.StatModifiers["amount"]
			if pool <= 0 {
				continue
			}
			absorbed := dmg
			if absorbed > pool {
				absorbed = pool
			}
			dmg -= absorbed
			a.Payload.StatModifiers["amount"] = pool - absorbed
		}
	}
	if dmg < 0 {
		dmg = 0
	}
	return dmg
}

// D20Attack rolls a d20 plus modifier against a named stat, in the format
// used by player-side Fighter implementations ("d20+3(STR) = 17").
func D20Attack(modifier int, statName string) (int, string) {
	d20 := stats.D20()
	total := d20 + modifier
	if modifier >= 0 {
		return total, fmt.Sprintf("d20+%d(%s) = %d", modifier, statName, total)
	}
	return total, fmt.Sprintf("d20%d(%s) = %d", modifier, statName, total)
}

// EngageStarter is a fighter that can be placed into or out of combat with
// a specific opponent by ID.
type EngageStarter interface {
	ID() string
	StartCombat(targetID string)
	EndCombat(targetID string)
}

// Engage places both sides of a fight into combat with each other, mirroring
// the "start combat for both player and NPC" step an attack command takes.
func Engage(a, b EngageStarter) {
	a.StartCombat(b.ID())
	b.StartCombat(a.ID())
}

// Disengage removes each fighter from the other's combat state, used for a
// successful flee or when a target vanishes mid-fight.
func Disengage(a, b EngageStarter) {
	a.EndCombat(b.ID())
	b.EndCombat(a.ID())
}

// Pairing is one attacker's attack against one defender to resolve this
// round.
type Pairing struct {
	Attacker    Fighter
	Defender    Fighter
	SneakAttack bool
}

// RunRound resolves every pairing for one room's combat, skipping any pair
// where either side has already died earlier in the same round. Per spec
// §4.6, user attacks are expected to be queued ahead of NPC attacks by the
// caller building the pairing list, matching the tick order player-attacks-
// then-NPC-attacks.
func (s *System) RunRound(pairings []Pairing) []AttackResult {
	results := make([]AttackResult, 0, len(pairings))
	for _, p := range pairings {
		if !p.Attacker.IsAlive() || !p.Defender.IsAlive() {
			continue
		}
		results = append(results, s.Attack(p.Attacker, p.Defender, p.SneakAttack))
	}
	return results
}
