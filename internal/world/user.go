package world

import (
	"strings"
	"sync"
	"time"

	"github.com/towerkeep/mudcore/internal/antispam"
	"github.com/towerkeep/mudcore/internal/class"
	"github.com/towerkeep/mudcore/internal/combat"
	"github.com/towerkeep/mudcore/internal/items"
	"github.com/towerkeep/mudcore/internal/leveling"
	"github.com/towerkeep/mudcore/internal/quest"
	"github.com/towerkeep/mudcore/internal/race"
	"github.com/towerkeep/mudcore/internal/resource"
	"github.com/towerkeep/mudcore/internal/stats"
)

// commandHistoryCap bounds the command-history ring per user.
const commandHistoryCap = 30

// Currency is the gold/silver/copper triple a user carries or banks. The
// three components are independent counters; display-only conversion
// (100 copper = 1 silver, 100 silver = 1 gold) never auto-normalizes them.
type Currency struct {
	Gold   int
	Silver int
	Copper int
}

// User is the persistent, authoritative character entity: everything that
// survives a disconnect and gets saved by the store. Connection-facing
// state (the socket, the read loop, the session state machine) lives in
// the session package instead and holds a reference to a User by username.
type User struct {
	mu sync.RWMutex

	Username     string
	PasswordHash string
	Salt         string

	Health    int
	MaxHealth int
	Resources *resource.Pool

	Level      int
	Experience int

	Abilities *stats.AbilityScores

	CurrentRoomID string

	Inventory []string // ordered item instance IDs
	Currency  Currency
	Bank      Currency

	Equipment map[items.EquipmentSlot]string // slot -> item instance ID

	ClassLevels *class.ClassLevels
	ActiveClass class.Class
	Race        race.Race

	InCombat      bool
	CombatTarget  string
	IsUnconscious bool
	IsResting     bool
	IsMeditating  bool

	MovementRestricted       bool
	MovementRestrictedReason string
	IsSneaking               bool
	IsHiding                 bool

	JoinDate       time.Time
	LastLogin      time.Time
	TotalPlayTime  time.Duration
	CommandHistory []string

	PendingAdminMessages []string

	Flags map[string]bool // "admin", "builder", "banned", ...

	IgnoreList     []string
	SpamTracker    *antispam.Tracker
	Titles         []string
	ActiveTitle    string
	LearnedSpells  []string
	SpellCooldowns map[string]time.Time

	QuestLog *quest.PlayerQuestLog

	CraftingSkills map[string]int // crafting skill name -> level (0-100)

	Stats *Statistics
}

// NewUser creates a fresh user at the given starting room with default
// stats and a full resource pool for the starting class.
func NewUser(username, passwordHash, salt, startingRoomID string, startingClass class.Class, r race.Race) *User {
	abilities := stats.NewDefaultScores()
	cl := class.NewClassLevels(startingClass)

	u := &User{
		Username:       username,
		PasswordHash:   passwordHash,
		Salt:           salt,
		Health:         20,
		MaxHealth:      20,
		Level:          1,
		Abilities:      abilities,
		CurrentRoomID:  startingRoomID,
		Equipment:      make(map[items.EquipmentSlot]string),
		ClassLevels:    cl,
		ActiveClass:    startingClass,
		Race:           r,
		JoinDate:       time.Now(),
		LastLogin:      time.Now(),
		Flags:          make(map[string]bool),
		SpamTracker:    antispam.NewTracker(antispam.DefaultConfig()),
		SpellCooldowns: make(map[string]time.Time),
		QuestLog:       quest.NewPlayerQuestLog(),
		CraftingSkills: make(map[string]int),
		Stats:          NewStatistics(),
	}
	u.Resources = resource.NewPool(resource.Type(startingClass.ResourceType()), u.resourceStats())
	return u
}

func (u *User) resourceStats() resource.Stats {
	return resource.Stats{
		Intelligence: u.Abilities.Intelligence,
		Wisdom:       u.Abilities.Wisdom,
		Level:        u.ClassLevels.GetEffectiveLevel(),
	}
}

// --- combat support (realized as combat.Fighter via UserFighter, since
// ArmorClass needs an item resolver this package does not own) ---

// ID identifies this fighter in combat by username.
func (u *User) ID() string { return u.Username }

// Name returns the display name used in combat messages.
func (u *User) Name() string { return u.Username }

// IsAlive reports whether the user has health remaining.
func (u *User) IsAlive() bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.Health > 0
}

// IsPlayer always reports true; it distinguishes user fighters from NPC
// fighters in generic combat code (e.g. sneak-attack eligibility).
func (u *User) IsPlayer() bool { return true }

// Agility returns the ability score combat initiative rolls against.
func (u *User) Agility() int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.Abilities.Agility
}

// EquippedTemplateResolver resolves an equipped item *instance* ID straight
// to its Template, chaining the world registry's instance and template
// tables. It is a different shape from items.Resolver (which is keyed by
// template ID) because equipment slots store instance IDs.
type EquippedTemplateResolver func(instanceID string) *items.Template

// ArmorClass sums equipped armor values; resolve must be supplied by the
// caller (the world registry) since User does not hold template data.
func (u *User) ArmorClass(resolve EquippedTemplateResolver) int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	total := 10
	for _, instanceID := range u.Equipment {
		tpl := resolve(instanceID)
		if tpl != nil {
			total += tpl.Armor
		}
	}
	return total
}

// weaponAttackMod returns the ability modifier a user's equipped weapon
// attacks with: ranged weapons always use DEX, finesse weapons use the
// higher of STR/DEX, everything else uses STR.
func (u *User) weaponAttackMod(weapon *items.Template) (int, string) {
	strMod := u.Abilities.StrengthMod()
	dexMod := u.Abilities.DexterityMod()
	if weapon != nil {
		if weapon.IsRanged() {
			return dexMod, "DEX"
		}
		if weapon.IsFinesse() {
			if dexMod > strMod {
				return dexMod, "DEX"
			}
			return strMod, "STR"
		}
	}
	return strMod, "STR"
}

// RollAttack satisfies combat.Fighter with an unarmed to-hit roll;
// RollAttackWith is used instead once the caller knows the equipped
// weapon's template (UserFighter supplies it).
func (u *User) RollAttack() (int, string) {
	return u.RollAttackWith(nil)
}

// RollAttackWith rolls to-hit using the given equipped weapon template
// (nil for unarmed).
func (u *User) RollAttackWith(weapon *items.Template) (int, string) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	mod, name := u.weaponAttackMod(weapon)
	return combat.D20Attack(mod, name)
}

// RollDamage satisfies combat.Fighter with unarmed damage (1d4+STR), plus
// rogue sneak-attack dice on sneakAttack; UserFighter switches to
// RollWeaponDamage when a weapon is equipped.
func (u *User) RollDamage(sneakAttack bool) int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	dmg := stats.ParseDiceWithBonus("1d4", u.Abilities.StrengthMod())
	if sneakAttack && u.ClassLevels.HasClass(class.Rogue) {
		dice := 1 + u.ClassLevels.GetLevel(class.Rogue)/5
		for i := 0; i < dice; i++ {
			dmg += stats.D6()
		}
	}
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

// RollWeaponDamage rolls damage for an equipped weapon template: dice
// notation plus the weapon's ability modifier if the template carries
// dice, otherwise flat Damage plus modifier. Adds rogue sneak-attack
// dice on sneakAttack, same as the unarmed RollDamage.
func (u *User) RollWeaponDamage(weapon *items.Template, sneakAttack bool) int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	mod, _ := u.weaponAttackMod(weapon)

	var dmg int
	if weapon.DamageDice != "" {
		dmg = stats.ParseDiceWithBonus(weapon.DamageDice, mod)
	} else {
		dmg = weapon.Damage + mod
	}
	if sneakAttack && u.ClassLevels.HasClass(class.Rogue) {
		dice := 1 + u.ClassLevels.GetLevel(class.Rogue)/5
		for i := 0; i < dice; i++ {
			dmg += stats.D6()
		}
	}
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

// TakeDamage applies damage to the user's health floor-clamped at zero,
// marking the user unconscious at zero health per the invariant
// health=0 => isUnconscious=true, and returns the actual damage taken.
func (u *User) TakeDamage(amount int) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	if amount < 1 {
		amount = 1
	}
	if amount > u.Health {
		amount = u.Health
	}
	u.Health -= amount
	if u.Health <= 0 {
		u.Health = 0
		u.IsUnconscious = true
	}
	if u.Resources != nil {
		u.Resources.OnDamageTaken()
	}
	return amount
}

// Heal restores health up to MaxHealth and clears unconsciousness once
// health rises above zero, returning the amount actually restored.
func (u *User) Heal(amount int) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	before := u.Health
	u.Health += amount
	if u.Health > u.MaxHealth {
		u.Health = u.MaxHealth
	}
	if u.Health > 0 {
		u.IsUnconscious = false
	}
	return u.Health - before
}

// User has no AddAggro method and does not implement combat.AggroTracker:
// users are never targeted by NPC threat tables, only by direct command,
// so a type assertion to that interface fails for user fighters.

// StartCombat places the user into combat against targetID.
func (u *User) StartCombat(targetID string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.InCombat = true
	u.CombatTarget = targetID
	u.IsResting = false
	u.IsMeditating = false
}

// EndCombat clears the user's combat state if targetID matches (or
// unconditionally if targetID is empty).
func (u *User) EndCombat(targetID string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if targetID != "" && u.CombatTarget != targetID {
		return
	}
	u.InCombat = false
	u.CombatTarget = ""
}

// --- tick.RegenTarget ---

// RegenTick applies one tick of passive vitals and resource regeneration.
// Health regenerates slowly out of combat; resources follow the pool's
// own per-class formula, boosted while meditating. RAGE decays only out
// of combat.
func (u *User) RegenTick() {
	u.mu.Lock()
	defer u.mu.Unlock()
	if !u.InCombat && u.Health > 0 && u.Health < u.MaxHealth {
		regen := 1
		if u.IsResting {
			regen = 3
		}
		u.Health += regen
		if u.Health > u.MaxHealth {
			u.Health = u.MaxHealth
		}
	}
	if u.Resources != nil {
		u.Resources.Meditating = u.IsMeditating
		if !(u.InCombat && u.Resources.Type == resource.TypeRage) {
			u.Resources.Regen(u.resourceStats())
		}
	}
}

// --- inventory & equipment ---

// AddItem appends an item instance to the inventory.
func (u *User) AddItem(instanceID string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	items.AddInstance(&u.Inventory, instanceID)
}

// RemoveItem removes an item instance from the inventory, reporting
// whether it was present.
func (u *User) RemoveItem(instanceID string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return items.RemoveInstance(&u.Inventory, instanceID)
}

// HasItem reports whether instanceID is in the inventory.
func (u *User) HasItem(instanceID string) bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	for _, id := range u.Inventory {
		if id == instanceID {
			return true
		}
	}
	return false
}

// FindItem resolves a partial name against the inventory, given the
// instance/template lookups the caller (world registry) owns.
func (u *User) FindItem(instances map[string]*items.Instance, templates map[string]*items.Template, partial string) (string, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return items.FindByName(u.Inventory, instances, templates, partial)
}

// CarriedWeight sums the inventory's template weights.
func (u *User) CarriedWeight(instances map[string]*items.Instance, templates map[string]*items.Template) float64 {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return items.TotalWeight(u.Inventory, instances, templates)
}

// CanCarry reports whether adding an item of the given weight keeps the
// user under maxWeight.
func (u *User) CanCarry(instances map[string]*items.Instance, templates map[string]*items.Template, maxWeight, addWeight float64) bool {
	return u.CarriedWeight(instances, templates)+addWeight <= maxWeight
}

// Equip places instanceID into its template's slot, refusing to equip
// over an occupied slot or to equip a non-equippable template.
func (u *User) Equip(instanceID string, tpl *items.Template) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if tpl.Slot == items.SlotNone {
		return errUser("you can't equip that")
	}
	if existing, occupied := u.Equipment[tpl.Slot]; occupied {
		return errUser("you already have something equipped there: " + existing)
	}
	if tpl.TwoHanded && tpl.Slot == items.SlotWeapon {
		if _, has := u.Equipment[items.SlotOffHand]; has {
			return errUser("you need both hands free to wield that")
		}
		if _, has := u.Equipment[items.SlotHeld]; has {
			return errUser("you need both hands free to wield that")
		}
	}
	u.Equipment[tpl.Slot] = instanceID
	return nil
}

// Unequip removes whatever is equipped in slot, returning its instance ID.
func (u *User) Unequip(slot items.EquipmentSlot) (string, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	id, ok := u.Equipment[slot]
	if !ok {
		return "", false
	}
	delete(u.Equipment, slot)
	return id, true
}

// --- currency ---

// AddGold adds to the carried gold component.
func (u *User) AddGold(amount int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.Currency.Gold += amount
}

// SpendGold deducts gold if enough is carried, reporting success.
func (u *User) SpendGold(amount int) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Currency.Gold < amount {
		return false
	}
	u.Currency.Gold -= amount
	return true
}

// --- progression ---

// GainExperience adds xp and applies every level-up it triggers for the
// user's active class, returning the level-up details in order.
func (u *User) GainExperience(xp int) []leveling.LevelUpInfo {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.Experience += xp

	var ups []leveling.LevelUpInfo
	for u.ClassLevels.CanGainLevel(u.ActiveClass) && u.Experience >= leveling.XPForLevel(u.ClassLevels.GetLevel(u.ActiveClass)+1) {
		newLevel := u.ClassLevels.GainLevel(u.ActiveClass)
		u.Level = u.ClassLevels.GetTotalLevel()
		u.MaxHealth += leveling.HPPerLevel
		u.Health = u.MaxHealth
		u.Resources.Recalculate(u.resourceStats())
		u.Resources.Current = u.Resources.Max
		ups = append(ups, leveling.LevelUpInfo{
			NewLevel: newLevel,
			HPGain:   leveling.HPPerLevel,
			ManaGain: leveling.ManaPerLevel,
		})
	}
	return ups
}

// --- state flags ---

// SetMovementRestricted sets or clears the movement restriction and its
// reason together, since the two fields are never meaningfully separate.
func (u *User) SetMovementRestricted(restricted bool, reason string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.MovementRestricted = restricted
	if !restricted {
		reason = ""
	}
	u.MovementRestrictedReason = reason
}

// --- bookkeeping ---

// RecordCommand appends to the bounded command-history ring, dropping the
// oldest entry once capacity is reached.
func (u *User) RecordCommand(cmd string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.CommandHistory = append(u.CommandHistory, cmd)
	if len(u.CommandHistory) > commandHistoryCap {
		u.CommandHistory = u.CommandHistory[len(u.CommandHistory)-commandHistoryCap:]
	}
}

// History returns a copy of the command-history ring, oldest first.
func (u *User) History() []string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	out := make([]string, len(u.CommandHistory))
	copy(out, u.CommandHistory)
	return out
}

// --- async admin inbox ---

// QueueAdminMessage appends a message for delivery once the user is next
// online, draining immediately if the caller already knows the user is
// connected (the session layer decides that; this just appends).
func (u *User) QueueAdminMessage(message string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.PendingAdminMessages = append(u.PendingAdminMessages, message)
}

// DrainAdminMessages returns and clears all queued admin messages.
func (u *User) DrainAdminMessages() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	msgs := u.PendingAdminMessages
	u.PendingAdminMessages = nil
	return msgs
}

// --- authorization ---

// HasFlag reports whether an authorization flag (admin, builder, banned)
// is set.
func (u *User) HasFlag(flag string) bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.Flags[flag]
}

// SetFlag sets or clears an authorization flag.
func (u *User) SetFlag(flag string, set bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if set {
		u.Flags[flag] = true
	} else {
		delete(u.Flags, flag)
	}
}

// --- social ---

// IsIgnoring reports whether username is on this user's ignore list.
func (u *User) IsIgnoring(username string) bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	username = strings.ToLower(username)
	for _, n := range u.IgnoreList {
		if strings.ToLower(n) == username {
			return true
		}
	}
	return false
}

// AddIgnore adds username to the ignore list if not already present.
func (u *User) AddIgnore(username string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	lower := strings.ToLower(username)
	for _, n := range u.IgnoreList {
		if strings.ToLower(n) == lower {
			return
		}
	}
	u.IgnoreList = append(u.IgnoreList, username)
}

// RemoveIgnore removes username from the ignore list.
func (u *User) RemoveIgnore(username string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	username = strings.ToLower(username)
	for i, n := range u.IgnoreList {
		if strings.ToLower(n) == username {
			u.IgnoreList = append(u.IgnoreList[:i], u.IgnoreList[i+1:]...)
			return
		}
	}
}

// errUser is a tiny local helper so this file does not need to import
// muderr just for one-line inline errors; command handlers that need the
// UserError/log-level distinction wrap these with muderr.User instead.
type userErr string

func (e userErr) Error() string { return string(e) }

func errUser(msg string) error { return userErr(msg) }
