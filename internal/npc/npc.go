// Package npc defines NPC templates (static blueprints) and NPC instances
// (mutable, in-world creatures that reference a template).
package npc

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LootEntry represents an item that can drop with a percentage chance
type LootEntry struct {
	ItemName   string  // Template ID of the item to drop
	DropChance float64 // Percentage chance to drop (0.0 to 100.0)
}

// ShopItem represents an item for sale by an NPC merchant
type ShopItem struct {
	ItemName string // Template ID of the item to sell
	Price    int    // Price in gold (0 = use item's base value)
}

// MobType represents the creature type for class bonuses (favored enemy, smite)
type MobType string

const (
	MobTypeUnknown   MobType = ""
	MobTypeBeast     MobType = "beast"
	MobTypeHumanoid  MobType = "humanoid"
	MobTypeUndead    MobType = "undead"
	MobTypeDemon     MobType = "demon"
	MobTypeConstruct MobType = "construct"
	MobTypeGiant     MobType = "giant"
)

// FleeChance is the probability (0.0-1.0) that a mob will flee each round when below threshold
const FleeChance = 0.35

// Template is the static, shared definition for an NPC species or named
// creature. Instances reference a Template by ID; the template never
// changes once loaded.
type Template struct {
	ID               string
	Name             string
	Description      string
	Level            int
	MaxHealth        int
	Damage           int
	Armor            int
	Experience       int         // XP awarded on death
	GoldMin          int         // Minimum gold dropped on death
	GoldMax          int         // Maximum gold dropped on death
	Aggressive       bool        // Auto-attack players on room entry?
	Attackable       bool        // Can players attack this NPC?
	LootTable        []LootEntry // Item drops with percentage chances
	ShopInventory    []ShopItem  // Items this NPC sells
	Dialogue         []string    // Lines the NPC can say when talked to
	RespawnMedian    int         // Median respawn time in seconds (0 = no respawn)
	RespawnVariation int         // Variation in respawn time (+/- seconds)
	FleeThreshold    float64     // HP percentage at which mob will flee (0.0-1.0, 0 = never)
	Elite            bool        // Elite mobs never flee and drop their full loot table
	MobType          MobType
	TrainerClass     string   // Class this NPC trains (for multiclassing)
	CraftingTrainer  string   // Crafting skill this NPC teaches
	TeachesRecipes   []string // Recipe IDs this NPC can teach
	QuestGiver       bool
	GivesQuests      []string // Quest IDs this NPC can give
	TurnInQuests     []string // Quest IDs that can be turned in to this NPC
	Locations        []string // Room IDs this template spawns in
}

// NewTemplate creates a new NPC template with the given core properties.
func NewTemplate(id, name, description string, level, health, damage, armor, experience int, aggressive, attackable bool, respawnMedian, respawnVariation int) *Template {
	return &Template{
		ID:               id,
		Name:             name,
		Description:      description,
		Level:            level,
		MaxHealth:        health,
		Damage:           damage,
		Armor:            armor,
		Experience:       experience,
		Aggressive:       aggressive,
		Attackable:       attackable,
		RespawnMedian:    respawnMedian,
		RespawnVariation: respawnVariation,
	}
}

// GetDefaultFleeThreshold returns the default flee threshold for a mob type
func GetDefaultFleeThreshold(mobType MobType) float64 {
	switch mobType {
	case MobTypeUndead:
		return 0 // Undead never flee
	case MobTypeConstruct:
		return 0 // Constructs never flee
	case MobTypeDemon:
		return 0.05 // Demons are brave, flee at 5%
	case MobTypeGiant:
		return 0.10 // Giants are stubborn, flee at 10%
	case MobTypeBeast:
		return 0.15 // Beasts have survival instincts, flee at 15%
	case MobTypeHumanoid:
		return 0.12 // Humanoids flee at 12%
	default:
		return 0.12
	}
}

// ArmorClass returns the template's armor class (10 + armor bonus).
func (t *Template) ArmorClass() int {
	return 10 + t.Armor
}

// IsTrainer returns true if this template trains a class.
func (t *Template) IsTrainer() bool {
	return t.TrainerClass != ""
}

// IsCraftingTrainer returns true if this template teaches crafting recipes.
func (t *Template) IsCraftingTrainer() bool {
	return t.CraftingTrainer != "" && len(t.TeachesRecipes) > 0
}

// IsQuestGiver returns true if this template can give quests.
func (t *Template) IsQuestGiver() bool {
	return t.QuestGiver && len(t.GivesQuests) > 0
}

// CanGiveQuest returns true if this template can give a specific quest.
func (t *Template) CanGiveQuest(questID string) bool {
	for _, id := range t.GivesQuests {
		if id == questID {
			return true
		}
	}
	return false
}

// CanTurnInQuest returns true if a specific quest can be turned in to this template.
func (t *Template) CanTurnInQuest(questID string) bool {
	for _, id := range t.TurnInQuests {
		if id == questID {
			return true
		}
	}
	return false
}

// HasQuestInteraction returns true if this template has any quest-related interactions.
func (t *Template) HasQuestInteraction() bool {
	return len(t.GivesQuests) > 0 || len(t.TurnInQuests) > 0
}

// HasShopInventory returns true if this template has items for sale.
func (t *Template) HasShopInventory() bool {
	return len(t.ShopInventory) > 0
}

// IsBeast returns true if this template is of type beast (for ranger's favored enemy).
func (t *Template) IsBeast() bool { return t.MobType == MobTypeBeast }

// IsUndead returns true if this template is of type undead (for paladin's bonus).
func (t *Template) IsUndead() bool { return t.MobType == MobTypeUndead }

// IsDemon returns true if this template is of type demon (for paladin's bonus).
func (t *Template) IsDemon() bool { return t.MobType == MobTypeDemon }

// RandomDialogue returns a random dialogue line from the template, or "" if none.
func (t *Template) RandomDialogue() string {
	if len(t.Dialogue) == 0 {
		return ""
	}
	return t.Dialogue[rand.Intn(len(t.Dialogue))]
}

// Instance is a mutable, in-world NPC that references a Template for its
// static properties. Combat state (health, targets, threat, status
// timers) lives here; it is never duplicated into the template.
type Instance struct {
	InstanceID     string
	TemplateID     string
	RoomID         string // Current location
	OriginalRoomID string // Room where this instance originally spawned

	Health    int
	InCombat  bool
	Targets   map[string]bool // Names of attackers currently engaged
	Aggro     map[string]int  // Threat per attacker, for target selection

	DeathTime   time.Time
	RespawnTime time.Time
	StunEndTime time.Time
	RootEndTime time.Time

	mu sync.RWMutex
}

// NewInstance creates a new NPC instance from a template at the given room.
func NewInstance(tpl *Template, roomID string) *Instance {
	return &Instance{
		InstanceID:     uuid.NewString(),
		TemplateID:     tpl.ID,
		RoomID:         roomID,
		OriginalRoomID: roomID,
		Health:         tpl.MaxHealth,
		Targets:        make(map[string]bool),
		Aggro:          make(map[string]int),
	}
}

// IsAlive returns true if the instance has health remaining.
func (n *Instance) IsAlive() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.Health > 0
}

// CurrentHealth returns the instance's current health.
func (n *Instance) CurrentHealth() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.Health
}

// IsInCombat returns true if the instance is currently fighting.
func (n *Instance) IsInCombat() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.InCombat
}

// GetTargets returns the names of all attackers this instance is fighting.
func (n *Instance) GetTargets() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	targets := make([]string, 0, len(n.Targets))
	for name := range n.Targets {
		targets = append(targets, name)
	}
	return targets
}

// StartCombat adds an attacker to this instance's combat targets.
func (n *Instance) StartCombat(attacker string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.InCombat = true
	n.Targets[attacker] = true
}

// EndCombat removes an attacker from combat, or clears all if attacker is empty.
// Per the no-decay rule, threat only ever clears on death or room departure,
// never simply by ending a combat round.
func (n *Instance) EndCombat(attacker string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if attacker == "" {
		n.Targets = make(map[string]bool)
		n.Aggro = make(map[string]int)
		n.InCombat = false
		return
	}
	delete(n.Targets, attacker)
	delete(n.Aggro, attacker)
	if len(n.Targets) == 0 {
		n.InCombat = false
	}
}

// TakeDamage applies physical damage (reduced by tpl armor) and returns the
// actual damage dealt.
func (n *Instance) TakeDamage(tpl *Template, damage int) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	actual := damage - tpl.Armor
	if actual < 1 {
		actual = 1
	}
	n.Health -= actual
	if n.Health < 0 {
		n.Health = 0
	}
	return actual
}

// Heal restores health up to the template's max, returning the actual
// amount recovered.
func (n *Instance) Heal(tpl *Template, amount int) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	before := n.Health
	n.Health += amount
	if n.Health > tpl.MaxHealth {
		n.Health = tpl.MaxHealth
	}
	return n.Health - before
}

// TakeMagicDamage applies magic damage, bypassing armor.
func (n *Instance) TakeMagicDamage(damage int) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	if damage < 1 {
		damage = 1
	}
	n.Health -= damage
	if n.Health < 0 {
		n.Health = 0
	}
	return damage
}

// RollLoot performs the template's percentage-based loot rolls and returns
// the item template IDs that dropped. Elite mobs always drop their full table.
func (n *Instance) RollLoot(tpl *Template) []string {
	var dropped []string
	if tpl.Elite {
		for _, entry := range tpl.LootTable {
			dropped = append(dropped, entry.ItemName)
		}
		return dropped
	}
	for _, entry := range tpl.LootTable {
		if rand.Float64()*100.0 < entry.DropChance {
			dropped = append(dropped, entry.ItemName)
		}
	}
	return dropped
}

// RollGold returns a random gold amount between the template's GoldMin and
// GoldMax, or 0 if no range is set.
func RollGold(tpl *Template) int {
	if tpl.GoldMax <= 0 {
		return 0
	}
	if tpl.GoldMin >= tpl.GoldMax {
		return tpl.GoldMin
	}
	return tpl.GoldMin + rand.Intn(tpl.GoldMax-tpl.GoldMin+1)
}

// CalculateRespawnTime sets the death time to now and computes a respawn
// time using the template's median +/- variation. Returns the zero time if
// the template disables respawn (RespawnMedian == 0).
func (n *Instance) CalculateRespawnTime(tpl *Template) time.Time {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.DeathTime = time.Now()
	if tpl.RespawnMedian == 0 {
		n.RespawnTime = time.Time{}
		return n.RespawnTime
	}
	variation := 0
	if tpl.RespawnVariation > 0 {
		variation = rand.Intn(2*tpl.RespawnVariation+1) - tpl.RespawnVariation
	}
	seconds := tpl.RespawnMedian + variation
	if seconds < 1 {
		seconds = 1
	}
	n.RespawnTime = n.DeathTime.Add(time.Duration(seconds) * time.Second)
	return n.RespawnTime
}

// GetRespawnTime returns when this instance should respawn.
func (n *Instance) GetRespawnTime() time.Time {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.RespawnTime
}

// Reset restores the instance to full health at its original room and
// clears combat and status state, ready for respawn.
func (n *Instance) Reset(tpl *Template) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Health = tpl.MaxHealth
	n.RoomID = n.OriginalRoomID
	n.InCombat = false
	n.Targets = make(map[string]bool)
	n.Aggro = make(map[string]int)
	n.DeathTime = time.Time{}
	n.RespawnTime = time.Time{}
	n.StunEndTime = time.Time{}
	n.RootEndTime = time.Time{}
}

// Stun applies a stun effect for the given duration.
func (n *Instance) Stun(d time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.StunEndTime = time.Now().Add(d)
}

// IsStunned returns true if the instance is currently stunned.
func (n *Instance) IsStunned() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return time.Now().Before(n.StunEndTime)
}

// Root applies a root effect (prevents fleeing) for the given duration.
func (n *Instance) Root(d time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.RootEndTime = time.Now().Add(d)
}

// IsRooted returns true if the instance is currently rooted.
func (n *Instance) IsRooted() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return time.Now().Before(n.RootEndTime)
}

// ShouldFlee returns true if the instance should attempt to flee this round:
// below its template's flee threshold, not rooted, not elite, and it passes
// a FleeChance roll.
func (n *Instance) ShouldFlee(tpl *Template) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if tpl.Elite || tpl.FleeThreshold <= 0 || tpl.MaxHealth <= 0 {
		return false
	}
	if time.Now().Before(n.RootEndTime) {
		return false
	}
	if float64(n.Health)/float64(tpl.MaxHealth) > tpl.FleeThreshold {
		return false
	}
	return rand.Float64() < FleeChance
}

// AddThreat adds threat from an attacker (damage dealt = threat, typically).
func (n *Instance) AddThreat(attacker string, amount int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Aggro[attacker] += amount
}

// GetThreat returns the current threat value for an attacker.
func (n *Instance) GetThreat(attacker string) int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.Aggro[attacker]
}

// ClearThreat removes all threat for a specific attacker.
func (n *Instance) ClearThreat(attacker string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.Aggro, attacker)
}

// ModifyThreat multiplies an attacker's threat by a factor, for threat
// reduction abilities.
func (n *Instance) ModifyThreat(attacker string, factor float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if threat, ok := n.Aggro[attacker]; ok {
		n.Aggro[attacker] = int(float64(threat) * factor)
	}
}

// HighestThreatTarget returns the engaged attacker with the highest threat,
// falling back to a random engaged attacker if the threat table is empty.
func (n *Instance) HighestThreatTarget() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if len(n.Targets) == 0 {
		return ""
	}
	var best string
	highest := -1
	for name := range n.Targets {
		if threat := n.Aggro[name]; threat > highest {
			highest = threat
			best = name
		}
	}
	if best != "" {
		return best
	}
	targets := make([]string, 0, len(n.Targets))
	for name := range n.Targets {
		targets = append(targets, name)
	}
	return targets[rand.Intn(len(targets))]
}

// String returns a formatted summary of the instance for logging.
func (n *Instance) String(tpl *Template) string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return fmt.Sprintf("%s (Level %d, %d/%d HP)", tpl.Name, tpl.Level, n.Health, tpl.MaxHealth)
}
