package command

import (
	"fmt"
	"strings"

	"github.com/towerkeep/mudcore/internal/class"
	"github.com/towerkeep/mudcore/internal/session"
	"github.com/towerkeep/mudcore/internal/world"
)

func registerClass(d *Dispatcher) {
	d.register("class", false, handleClass)
}

func handleClass(ctx *Context) ([]string, session.State) {
	words := ctx.ArgWords()
	if len(words) == 0 {
		return single(ctx, showClassInfo(ctx.User))
	}

	switch strings.ToLower(words[0]) {
	case "list", "all":
		return single(ctx, listAllClasses(ctx.User))
	case "info":
		if len(words) < 2 {
			return single(ctx, "Usage: class info <classname>\n")
		}
		return single(ctx, showClassDetails(words[1]))
	case "switch", "active":
		if len(words) < 2 {
			return single(ctx, "Usage: class switch <classname>\nSwitch which class gains XP from combat.\n")
		}
		return single(ctx, switchActiveClass(ctx.User, words[1]))
	default:
		return single(ctx, fmt.Sprintf("Unknown class command: %s\nUse 'class' to see your classes, 'class list' for all classes, or 'class switch <class>' to change active class.\n", words[0]))
	}
}

// abilityStatMap converts a user's ability scores into the stat-name keys
// class.Definition.MulticlassRequirements checks against.
func abilityStatMap(u *world.User) map[string]int {
	return map[string]int{
		"STR": u.Abilities.Strength,
		"DEX": u.Abilities.Dexterity,
		"CON": u.Abilities.Constitution,
		"INT": u.Abilities.Intelligence,
		"WIS": u.Abilities.Wisdom,
		"CHA": u.Abilities.Charisma,
	}
}

func showClassInfo(u *world.User) string {
	var sb strings.Builder

	sb.WriteString("=== Your Classes ===\n")
	sb.WriteString(fmt.Sprintf("Classes: %s\n", classSummary(u)))
	sb.WriteString(fmt.Sprintf("Active Class: %s (gains XP from combat)\n", u.ActiveClass.String()))
	sb.WriteString(fmt.Sprintf("Primary Class: %s\n", u.ClassLevels.GetPrimaryClass().String()))

	if u.ClassLevels.CanMulticlass() {
		sb.WriteString("\nMulticlassing: UNLOCKED")
		sb.WriteString("\n  Visit a class trainer to learn a new class.")
		sb.WriteString("\n  Use 'class list' to see available classes and requirements.")
	} else {
		sb.WriteString(fmt.Sprintf("\nMulticlassing: Reach level %d in your primary class to unlock.", class.MinLevelForMulticlass))
	}

	sb.WriteString("\n\nCommands:")
	sb.WriteString("\n  class list         - View all classes and requirements")
	sb.WriteString("\n  class info <class> - View detailed class information")
	sb.WriteString("\n  class switch <class> - Change which class gains XP\n")

	return sb.String()
}

func listAllClasses(u *world.User) string {
	var sb strings.Builder
	sb.WriteString("=== Available Classes ===\n")

	stats := abilityStatMap(u)
	for _, c := range class.AllClasses() {
		def := class.GetDefinition(c)
		if def == nil {
			continue
		}

		hasClass := u.ClassLevels.HasClass(c)
		status := ""
		if hasClass {
			status = fmt.Sprintf(" [Level %d]", u.ClassLevels.GetLevel(c))
		}

		sb.WriteString(fmt.Sprintf("\n%s%s\n", c.String(), status))
		sb.WriteString(fmt.Sprintf("  %s\n", def.Description))
		sb.WriteString(fmt.Sprintf("  Hit Die: d%d | Primary: %s\n", def.HitDie, def.PrimaryStat))
		sb.WriteString(fmt.Sprintf("  Multiclass Requirements: %s\n", def.GetMulticlassRequirementsString()))

		if !hasClass && u.ClassLevels.CanMulticlass() {
			if def.CanMulticlassInto(stats) {
				sb.WriteString("  Status: Available to learn!\n")
			} else {
				sb.WriteString(fmt.Sprintf("  Status: requires %s\n", def.GetMulticlassRequirementsString()))
			}
		}
	}

	return sb.String()
}

func showClassDetails(className string) string {
	c, err := class.ParseClass(className)
	if err != nil {
		return fmt.Sprintf("Unknown class: %s\nValid classes: warrior, mage, cleric, rogue, ranger, paladin\n", className)
	}

	def := class.GetDefinition(c)
	if def == nil {
		return fmt.Sprintf("Class definition not found for %s\n", c.String())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("=== %s ===\n", c.String()))
	sb.WriteString(fmt.Sprintf("%s\n\n", def.Description))

	sb.WriteString("Combat Stats:\n")
	sb.WriteString(fmt.Sprintf("  Hit Die: d%d (average %d HP per level)\n", def.HitDie, (def.HitDie/2)+1))
	sb.WriteString(fmt.Sprintf("  Starting HP: %d + CON modifier\n", def.StartingHP))
	sb.WriteString(fmt.Sprintf("  Starting Mana: %d\n", def.StartingMana))
	sb.WriteString(fmt.Sprintf("  Mana per Level: %d\n", def.ManaPerLevel))
	sb.WriteString(fmt.Sprintf("  Primary Stat: %s\n", def.PrimaryStat))

	sb.WriteString("\nProficiencies:\n")
	sb.WriteString(fmt.Sprintf("  Armor: %s\n", formatArmorProficiencies(def.ArmorProficiencies)))
	sb.WriteString(fmt.Sprintf("  Weapons: %s\n", formatWeaponProficiencies(def.WeaponProficiencies)))

	sb.WriteString(fmt.Sprintf("\nMulticlass Requirements: %s\n", def.GetMulticlassRequirementsString()))

	sb.WriteString("\nClass Abilities:\n")
	sb.WriteString(getClassAbilitiesPreview(c))

	return sb.String()
}

func switchActiveClass(u *world.User, className string) string {
	c, err := class.ParseClass(className)
	if err != nil {
		return fmt.Sprintf("Cannot switch to %s: unknown class\n", className)
	}

	if !u.ClassLevels.HasClass(c) {
		if !u.ClassLevels.CanMulticlass() {
			return fmt.Sprintf("Cannot switch to %s: you have not learned that class, and multiclassing is locked until level %d in your primary class.\n", c.String(), class.MinLevelForMulticlass)
		}
		def := class.GetDefinition(c)
		if def == nil || !def.CanMulticlassInto(abilityStatMap(u)) {
			reqs := "unknown requirements"
			if def != nil {
				reqs = def.GetMulticlassRequirementsString()
			}
			return fmt.Sprintf("Cannot switch to %s: you do not meet the requirements (%s).\n", c.String(), reqs)
		}
		u.ClassLevels.AddClass(c)
	}

	u.ActiveClass = c
	return fmt.Sprintf("Active class changed to %s. You will now gain XP in this class.\n", u.ActiveClass.String())
}

func formatArmorProficiencies(profs []class.ArmorType) string {
	if len(profs) == 0 || (len(profs) == 1 && profs[0] == class.ArmorNone) {
		return "None"
	}
	parts := make([]string, 0, len(profs))
	for _, p := range profs {
		if p != class.ArmorNone {
			parts = append(parts, string(p))
		}
	}
	if len(parts) == 0 {
		return "None"
	}
	return strings.Join(parts, ", ")
}

func formatWeaponProficiencies(profs []class.WeaponType) string {
	if len(profs) == 0 {
		return "None"
	}
	parts := make([]string, len(profs))
	for i, p := range profs {
		parts[i] = string(p)
	}
	return strings.Join(parts, ", ")
}

func getClassAbilitiesPreview(c class.Class) string {
	switch c {
	case class.Warrior:
		return "  - Melee damage bonus (+1 per 3 levels)\n  - Heavy armor AC bonus (level 10+)\n  - Second Wind: HP regen in combat (level 15+)\n  - HP bonus (+10% at level 20)\n"
	case class.Mage:
		return "  - Powerful damage spells (fireball, ice storm, meteor)\n  - INT-based spellcasting\n  - Arcane Shield: +2 AC (level 15+)\n  - Highest spell damage potential\n"
	case class.Cleric:
		return "  - Healing spells (heal, cure wounds, resurrection)\n  - WIS-based spellcasting\n  - Divine Protection: +1 AC (level 10+)\n  - Sanctuary: 25% damage reduction below 25% HP (level 20+)\n"
	case class.Rogue:
		return "  - Sneak Attack (+1d6, +1d6 every 5 levels)\n  - Finesse weapon proficiency (DEX for attack/damage)\n  - Evasion: 10% dodge chance (level 15+)\n  - Assassinate: Execute enemies below 20% HP (level 20+)\n"
	case class.Ranger:
		return "  - Ranged damage bonus (+2 base, +1 per 3 levels)\n  - Favored Enemy: +25% damage vs beasts\n  - Nature spells (hunter's mark, spike growth)\n  - Multishot: 20% chance for double attack (level 20+)\n"
	case class.Paladin:
		return "  - Smite: Extra radiant damage\n  - Holy damage bonus vs undead/demons (+2)\n  - Healing spells (lay on hands, cure wounds)\n  - Lay on Hands: HP regen out of combat (level 15+)\n"
	default:
		return "  No special abilities defined.\n"
	}
}
