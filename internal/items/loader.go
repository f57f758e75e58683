package items

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"
)

// ItemDefinition represents an item definition from the YAML file
type ItemDefinition struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Weight      float64  `yaml:"weight"`
	Type        string   `yaml:"type"`
	Value       int      `yaml:"value"`
	Tier        int      `yaml:"tier,omitempty"` // Loot tier (1=common, 2=uncommon, 3=rare, 4=epic, 5=legendary)
	// Equipment fields (optional)
	Slot       string `yaml:"slot,omitempty"`
	Armor      int    `yaml:"armor,omitempty"`
	Damage     int    `yaml:"damage,omitempty"`
	DamageDice string `yaml:"damage_dice,omitempty"` // Dice notation e.g. "1d6", "2d4+1"
	TwoHanded  bool   `yaml:"two_handed,omitempty"`
	// Consumable fields (optional)
	Consumable bool `yaml:"consumable,omitempty"`
	HealAmount int  `yaml:"heal_amount,omitempty"`
	ManaAmount int  `yaml:"mana_amount,omitempty"`
}

// ItemsConfig represents the structure of the items.yaml file
type ItemsConfig struct {
	Items map[string]ItemDefinition `yaml:"items"`
}

// LoadItemsFromYAML loads item definitions from a YAML file
func LoadItemsFromYAML(filename string) (*ItemsConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read items file: %w", err)
	}

	var config ItemsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse items YAML: %w", err)
	}

	return &config, nil
}

// StringToItemType converts a string to an ItemType
func StringToItemType(typeStr string) ItemType {
	switch typeStr {
	case "weapon":
		return Weapon
	case "armor":
		return Armor
	case "food":
		return Food
	case "drink":
		return Drink
	case "potion":
		return Potion
	case "key":
		return Key
	case "container":
		return Container
	case "misc":
		return Misc
	default:
		return Misc
	}
}

// StringToEquipmentSlot converts a string to an EquipmentSlot
func StringToEquipmentSlot(slotStr string) EquipmentSlot {
	switch slotStr {
	case "head":
		return SlotHead
	case "body":
		return SlotBody
	case "legs":
		return SlotLegs
	case "feet":
		return SlotFeet
	case "hands":
		return SlotHands
	case "weapon":
		return SlotWeapon
	case "off-hand":
		return SlotOffHand
	case "held":
		return SlotHeld
	default:
		return SlotNone
	}
}

// TemplateFromDefinition builds a Template from an ItemDefinition.
// The id parameter is the YAML key for this item (e.g., "rusty_sword")
func TemplateFromDefinition(id string, def ItemDefinition) *Template {
	tpl := NewTemplate(
		id,
		def.Name,
		def.Description,
		def.Weight,
		StringToItemType(def.Type),
		def.Value,
	)

	// Set equipment fields if provided
	if def.Slot != "" {
		tpl.Slot = StringToEquipmentSlot(def.Slot)
	}
	tpl.Armor = def.Armor
	tpl.Damage = def.Damage
	tpl.DamageDice = def.DamageDice
	tpl.TwoHanded = def.TwoHanded

	// Set consumable fields if provided
	tpl.Consumable = def.Consumable
	tpl.HealAmount = def.HealAmount
	tpl.ManaAmount = def.ManaAmount

	return tpl
}

// GetTemplateByID returns a template by its ID.
func (config *ItemsConfig) GetTemplateByID(id string) (*Template, bool) {
	def, exists := config.Items[id]
	if !exists {
		return nil, false
	}
	return TemplateFromDefinition(id, def), true
}

// getItemIDsByTier returns all item IDs for a given tier
func (config *ItemsConfig) getItemIDsByTier(tier int) []string {
	var ids []string
	for id, def := range config.Items {
		if def.Tier == tier {
			ids = append(ids, id)
		}
	}
	return ids
}

// GetRandomItemForTier returns a random item for the given tier
// If no items exist for the tier, falls back to lower tiers
func (config *ItemsConfig) GetRandomItemForTier(tier int, rng *rand.Rand) *Template {
	for t := tier; t >= 1; t-- {
		ids := config.getItemIDsByTier(t)
		if len(ids) > 0 {
			id := ids[rng.Intn(len(ids))]
			tpl, _ := config.GetTemplateByID(id)
			return tpl
		}
	}
	return nil
}

// GetRandomItemsForTier returns multiple random templates for the given tier
func (config *ItemsConfig) GetRandomItemsForTier(tier int, count int, rng *rand.Rand) []*Template {
	var result []*Template
	for i := 0; i < count; i++ {
		tpl := config.GetRandomItemForTier(tier, rng)
		if tpl != nil {
			result = append(result, tpl)
		}
	}
	return result
}
