package world

import (
	"github.com/towerkeep/mudcore/internal/combat"
	"github.com/towerkeep/mudcore/internal/items"
)

// UserFighter adapts a User into combat.Fighter/combat.EngageStarter,
// closing over the equipped-item resolver the generic combat package must
// not import so User's equipped armor and weapon can be looked up by
// template. Built fresh per attack by World.FighterFor, mirroring
// NPCFighter's role for NPC instances.
type UserFighter struct {
	User    *User
	Resolve EquippedTemplateResolver
}

var _ combat.Fighter = UserFighter{}
var _ combat.EngageStarter = UserFighter{}

func (f UserFighter) ID() string   { return f.User.ID() }
func (f UserFighter) Name() string { return f.User.Name() }

func (f UserFighter) IsAlive() bool  { return f.User.IsAlive() }
func (f UserFighter) IsPlayer() bool { return true }
func (f UserFighter) Agility() int   { return f.User.Agility() }

// ArmorClass resolves the user's equipped item templates through the
// closed-over resolver to total their armor bonus.
func (f UserFighter) ArmorClass() int {
	return f.User.ArmorClass(f.Resolve)
}

func (f UserFighter) equippedWeapon() *items.Template {
	f.User.mu.RLock()
	instanceID, ok := f.User.Equipment[items.SlotWeapon]
	f.User.mu.RUnlock()
	if !ok {
		return nil
	}
	return f.Resolve(instanceID)
}

// RollAttack rolls to-hit using whatever weapon template is currently
// equipped in the weapon slot (nil for unarmed).
func (f UserFighter) RollAttack() (int, string) {
	return f.User.RollAttackWith(f.equippedWeapon())
}

// RollDamage rolls damage for the equipped weapon (dice if it carries
// dice notation, flat Damage+modifier otherwise), falling back to User's
// unarmed formula when nothing is equipped.
func (f UserFighter) RollDamage(sneakAttack bool) int {
	weapon := f.equippedWeapon()
	if weapon == nil {
		return f.User.RollDamage(sneakAttack)
	}
	return f.User.RollWeaponDamage(weapon, sneakAttack)
}

func (f UserFighter) TakeDamage(amount int) int { return f.User.TakeDamage(amount) }

func (f UserFighter) StartCombat(targetID string) { f.User.StartCombat(targetID) }
func (f UserFighter) EndCombat(targetID string)   { f.User.EndCombat(targetID) }
