// Package items defines item templates (static blueprints) and item
// instances (mutable, in-world objects that reference a template).
package items

import "fmt"

// EquipmentSlot represents where an item can be equipped
type EquipmentSlot int

const (
	SlotNone EquipmentSlot = iota
	SlotHead
	SlotNeck
	SlotBody
	SlotBack
	SlotLegs
	SlotFeet
	SlotHands
	SlotRing
	SlotWeapon
	SlotOffHand
	SlotHeld
)

// String returns the string representation of an EquipmentSlot
func (s EquipmentSlot) String() string {
	switch s {
	case SlotHead:
		return "head"
	case SlotNeck:
		return "neck"
	case SlotBody:
		return "body"
	case SlotBack:
		return "back"
	case SlotLegs:
		return "legs"
	case SlotFeet:
		return "feet"
	case SlotHands:
		return "hands"
	case SlotRing:
		return "ring"
	case SlotWeapon:
		return "weapon"
	case SlotOffHand:
		return "off-hand"
	case SlotHeld:
		return "held"
	default:
		return "none"
	}
}

// Template is the static, shared definition for an item. Item instances
// reference a Template by ID; the template never changes once loaded.
type Template struct {
	ID          string // Unique identifier from YAML key (e.g., "rusty_sword")
	Name        string
	Description string
	Weight      float64
	Type        ItemType
	Value       int // Gold value
	// Equipment stats (optional, only for equippable items)
	Slot       EquipmentSlot
	Armor      int    // Damage reduction for armor
	Damage     int    // Damage value for weapons (legacy, used as fallback)
	DamageDice string // Dice notation for damage (e.g., "1d6", "2d4+1")
	TwoHanded  bool   // Whether weapon requires both hands
	// Proficiency requirements
	ArmorType  string // light, medium, heavy, shield, none (for armor)
	WeaponType string // simple, martial, finesse, ranged (for weapons)
	// Class restrictions (optional - if empty, any class can use)
	RequiredClass string // e.g., "mage", "cleric" - only this class can equip
	// Consumable stats (optional, only for consumable items)
	Consumable bool // Can this item be consumed?
	HealAmount int  // HP restored when consumed
	ManaAmount int  // MP restored when consumed
	// Unique item flag - player can only have one instance of this template
	Unique bool
	// MaxCharges, if > 0, is the number of charges a new instance of this
	// template starts with (wands, keys with limited uses).
	MaxCharges int
	// MaxDurability, if > 0, is the durability a new instance starts at.
	MaxDurability int
}

// NewTemplate creates a new item template with the given properties
func NewTemplate(id, name, description string, weight float64, itemType ItemType, value int) *Template {
	return &Template{
		ID:          id,
		Name:        name,
		Description: description,
		Weight:      weight,
		Type:        itemType,
		Value:       value,
		Slot:        SlotNone,
	}
}

// NewWeapon creates a new weapon template
func NewWeapon(id, name, description string, weight float64, value, damage int, twoHanded bool) *Template {
	return &Template{
		ID:          id,
		Name:        name,
		Description: description,
		Weight:      weight,
		Type:        Weapon,
		Value:       value,
		Slot:        SlotWeapon,
		Damage:      damage,
		TwoHanded:   twoHanded,
	}
}

// NewArmor creates a new armor template
func NewArmor(id, name, description string, weight float64, value, armor int, slot EquipmentSlot) *Template {
	return &Template{
		ID:          id,
		Name:        name,
		Description: description,
		Weight:      weight,
		Type:        Armor,
		Value:       value,
		Slot:        slot,
		Armor:       armor,
	}
}

// NewConsumable creates a new consumable template
func NewConsumable(id, name, description string, weight float64, itemType ItemType, value, healAmount, manaAmount int) *Template {
	return &Template{
		ID:          id,
		Name:        name,
		Description: description,
		Weight:      weight,
		Type:        itemType,
		Value:       value,
		Consumable:  true,
		HealAmount:  healAmount,
		ManaAmount:  manaAmount,
	}
}

// String returns a formatted string representation of the template
func (t *Template) String() string {
	return fmt.Sprintf("%s (%s, %.1f, %d gold)", t.Name, t.Type.String(), t.Weight, t.Value)
}

// IsFinesse returns true if this weapon can use DEX instead of STR
func (t *Template) IsFinesse() bool {
	return t.WeaponType == "finesse"
}

// IsRanged returns true if this is a ranged weapon
func (t *Template) IsRanged() bool {
	return t.WeaponType == "ranged"
}

// UsesDexterity returns true if this weapon should use DEX for attack/damage.
// Finesse weapons can use either STR or DEX (player chooses higher); ranged
// weapons always use DEX.
func (t *Template) UsesDexterity() bool {
	return t.IsRanged() || t.IsFinesse()
}
