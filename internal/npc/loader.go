package npc

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/towerkeep/mudcore/internal/logger"
	"gopkg.in/yaml.v3"
)

// LootEntryYAML represents a loot entry in YAML format
type LootEntryYAML struct {
	Item   string  `yaml:"item"`   // Item name/ID
	Chance float64 `yaml:"chance"` // Drop chance percentage (0-100)
}

// ShopItemYAML represents an item for sale in YAML format
type ShopItemYAML struct {
	Item  string `yaml:"item"`  // Item name/ID
	Price int    `yaml:"price"` // Price in gold (0 = use item's base value)
}

// NPCDefinition represents an NPC definition from the YAML file
type NPCDefinition struct {
	Name             string          `yaml:"name"`
	Description      string          `yaml:"description"`
	Level            int             `yaml:"level"`
	Health           int             `yaml:"health"`
	Damage           int             `yaml:"damage"`
	Armor            int             `yaml:"armor"`
	Experience       int             `yaml:"experience"`
	Aggressive       bool            `yaml:"aggressive"`
	Attackable       bool            `yaml:"attackable"`
	GoldMin          int             `yaml:"gold_min"`
	GoldMax          int             `yaml:"gold_max"`
	LootTable        []LootEntryYAML `yaml:"loot_table"`
	ShopInventory    []ShopItemYAML  `yaml:"shop_inventory"`
	Dialogue         []string        `yaml:"dialogue"`
	Tier             int             `yaml:"tier"` // Mob tier (1=easy, 2=medium, 3=hard, 4=elite)
	Elite            bool            `yaml:"elite"`
	MobType          string          `yaml:"mob_type"`
	TrainerClass     string          `yaml:"trainer_class"`
	CraftingTrainer  string          `yaml:"crafting_trainer"`
	TeachesRecipes   []string        `yaml:"teaches_recipes"`
	QuestGiver       bool            `yaml:"quest_giver"`
	GivesQuests      []string        `yaml:"gives_quests"`
	TurnInQuests     []string        `yaml:"turn_in_quests"`
	Locations        []string        `yaml:"locations"`         // Room IDs where this NPC spawns
	RespawnMedian    int             `yaml:"respawn_median"`    // Median respawn time in seconds
	RespawnVariation int             `yaml:"respawn_variation"` // Variation in respawn time (+/- seconds)
}

// NPCsConfig represents the structure of the npcs.yaml file
type NPCsConfig struct {
	NPCs map[string]NPCDefinition `yaml:"npcs"`
}

// LoadNPCsFromYAML loads NPC definitions from a YAML file
func LoadNPCsFromYAML(filename string) (*NPCsConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read NPCs file: %w", err)
	}

	var config NPCsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse NPCs YAML: %w", err)
	}

	for npcID, def := range config.NPCs {
		if def.Aggressive && !def.Attackable {
			logger.Warning("NPC auto-correction applied",
				"npc_name", def.Name,
				"npc_id", npcID,
				"issue", "aggressive=true but attackable=false",
				"action", "set attackable=true")
			def.Attackable = true
			config.NPCs[npcID] = def
		}
	}

	return &config, nil
}

// TemplateFromDefinition builds a Template from an NPCDefinition.
func TemplateFromDefinition(id string, def NPCDefinition) *Template {
	tpl := NewTemplate(
		id,
		def.Name,
		def.Description,
		def.Level,
		def.Health,
		def.Damage,
		def.Armor,
		def.Experience,
		def.Aggressive,
		def.Attackable,
		def.RespawnMedian,
		def.RespawnVariation,
	)
	tpl.GoldMin = def.GoldMin
	tpl.GoldMax = def.GoldMax
	tpl.Dialogue = def.Dialogue
	tpl.Elite = def.Elite
	tpl.Locations = def.Locations

	mobType := StringToMobType(def.MobType)
	tpl.MobType = mobType
	tpl.FleeThreshold = GetDefaultFleeThreshold(mobType)

	tpl.TrainerClass = def.TrainerClass
	tpl.CraftingTrainer = def.CraftingTrainer
	tpl.TeachesRecipes = def.TeachesRecipes
	tpl.QuestGiver = def.QuestGiver || len(def.GivesQuests) > 0
	tpl.GivesQuests = def.GivesQuests
	tpl.TurnInQuests = def.TurnInQuests

	if len(def.LootTable) > 0 {
		tpl.LootTable = make([]LootEntry, len(def.LootTable))
		for i, entry := range def.LootTable {
			tpl.LootTable[i] = LootEntry{ItemName: entry.Item, DropChance: entry.Chance}
		}
	}
	if len(def.ShopInventory) > 0 {
		tpl.ShopInventory = make([]ShopItem, len(def.ShopInventory))
		for i, entry := range def.ShopInventory {
			tpl.ShopInventory[i] = ShopItem{ItemName: entry.Item, Price: entry.Price}
		}
	}
	return tpl
}

// StringToMobType converts a string to a MobType
func StringToMobType(s string) MobType {
	switch s {
	case "beast":
		return MobTypeBeast
	case "humanoid":
		return MobTypeHumanoid
	case "undead":
		return MobTypeUndead
	case "demon":
		return MobTypeDemon
	case "construct":
		return MobTypeConstruct
	case "giant":
		return MobTypeGiant
	default:
		return MobTypeUnknown
	}
}

// GetTemplateByID returns a template by its ID.
func (config *NPCsConfig) GetTemplateByID(id string) (*Template, bool) {
	def, exists := config.NPCs[id]
	if !exists {
		return nil, false
	}
	return TemplateFromDefinition(id, def), true
}

// TemplatesByLocation returns a map of room ID to the templates that spawn there.
func (config *NPCsConfig) TemplatesByLocation() map[string][]*Template {
	byLocation := make(map[string][]*Template)
	for npcID, def := range config.NPCs {
		tpl := TemplateFromDefinition(npcID, def)
		for _, location := range def.Locations {
			byLocation[location] = append(byLocation[location], tpl)
		}
	}
	return byLocation
}

// Merge combines another NPCsConfig into this one
func (config *NPCsConfig) Merge(other *NPCsConfig) {
	if other == nil {
		return
	}
	for id, def := range other.NPCs {
		config.NPCs[id] = def
	}
}

// LoadMultipleNPCFiles loads and merges NPC definitions from multiple YAML files
func LoadMultipleNPCFiles(filenames ...string) (*NPCsConfig, error) {
	merged := &NPCsConfig{NPCs: make(map[string]NPCDefinition)}
	for _, filename := range filenames {
		config, err := LoadNPCsFromYAML(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", filename, err)
		}
		merged.Merge(config)
	}
	return merged, nil
}

// LoadNPCsFromDirectory loads and merges all YAML files from a directory
func LoadNPCsFromDirectory(dir string) (*NPCsConfig, error) {
	merged := &NPCsConfig{NPCs: make(map[string]NPCDefinition)}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	fileCount := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		filePath := filepath.Join(dir, name)
		config, err := LoadNPCsFromYAML(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", filePath, err)
		}
		merged.Merge(config)
		fileCount++
		logger.Info("Loaded NPC file", "path", filePath, "npcs", len(config.NPCs))
	}

	logger.Info("Loaded NPCs from directory", "dir", dir, "files", fileCount, "total_npcs", len(merged.NPCs))
	return merged, nil
}

// LoadNPCsFromDirectories loads and merges all YAML files from multiple directories
func LoadNPCsFromDirectories(dirs ...string) (*NPCsConfig, error) {
	merged := &NPCsConfig{NPCs: make(map[string]NPCDefinition)}
	for _, dir := range dirs {
		config, err := LoadNPCsFromDirectory(dir)
		if err != nil {
			return nil, err
		}
		merged.Merge(config)
	}
	return merged, nil
}

// GetMobsByTier returns all non-elite mob definitions for a given tier
func (config *NPCsConfig) GetMobsByTier(tier int) []NPCDefinition {
	var mobs []NPCDefinition
	for _, def := range config.NPCs {
		if def.Tier == tier && !def.Elite && def.Attackable {
			mobs = append(mobs, def)
		}
	}
	return mobs
}

// GetElitesByTier returns all elite mob definitions for a given tier
func (config *NPCsConfig) GetElitesByTier(tier int) []NPCDefinition {
	var elites []NPCDefinition
	for _, def := range config.NPCs {
		if def.Tier == tier && def.Elite {
			elites = append(elites, def)
		}
	}
	return elites
}

// GetRandomMobForTier returns a random non-elite mob definition for the
// given tier, falling back to the closest lower tier if none exist.
func (config *NPCsConfig) GetRandomMobForTier(tier int, rng *rand.Rand) *NPCDefinition {
	for t := tier; t >= 1; t-- {
		mobs := config.GetMobsByTier(t)
		if len(mobs) > 0 {
			mob := mobs[rng.Intn(len(mobs))]
			return &mob
		}
	}
	return nil
}

// GetRandomEliteForTier returns a random elite mob definition for the given
// tier, falling back to the closest lower tier if none exist.
func (config *NPCsConfig) GetRandomEliteForTier(tier int, rng *rand.Rand) *NPCDefinition {
	for t := tier; t >= 1; t-- {
		elites := config.GetElitesByTier(t)
		if len(elites) > 0 {
			elite := elites[rng.Intn(len(elites))]
			return &elite
		}
	}
	return nil
}
