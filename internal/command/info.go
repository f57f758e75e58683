package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/towerkeep/mudcore/internal/database"
	"github.com/towerkeep/mudcore/internal/help"
	"github.com/towerkeep/mudcore/internal/leveling"
	"github.com/towerkeep/mudcore/internal/race"
	"github.com/towerkeep/mudcore/internal/session"
	"github.com/towerkeep/mudcore/internal/stats"
	"github.com/towerkeep/mudcore/internal/world"
)

func registerInfo(d *Dispatcher) {
	d.register("help", false, handleHelp)
	d.register("score", false, handleScore)
	d.alias("score", "sc", "stats", "abilities", "attributes")
	d.register("level", false, handleLevel)
	d.alias("level", "lvl")
	d.register("password", false, handlePassword)
	d.register("race", false, handleRace)
	d.register("races", false, handleRaces)
	d.register("statistics", false, handleStatistics)
	d.alias("statistics", "lifetime")
}

func handleHelp(ctx *Context) ([]string, session.State) {
	topic := strings.ToLower(strings.TrimSpace(ctx.Args))
	h := help.GetInstance()
	if h == nil {
		if topic == "" {
			return single(ctx, "Help system not loaded. Type 'help <command>' for specific help.\n")
		}
		return single(ctx, fmt.Sprintf("No help available for '%s'.\n", topic))
	}
	return single(ctx, h.GetHelpText(topic, ctx.User.HasFlag("admin"))+"\n")
}

func handleScore(ctx *Context) ([]string, session.State) {
	u := ctx.User
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("=== %s ===\n", u.Username))
	sb.WriteString(fmt.Sprintf("Race: %s\n", u.Race.String()))
	sb.WriteString(fmt.Sprintf("Class: %s\n", classSummary(u)))
	sb.WriteString(fmt.Sprintf("Active: %s (gaining XP)\n", u.ActiveClass.String()))

	level := u.Level
	sb.WriteString(fmt.Sprintf("Level: %d", level))
	if level >= leveling.MaxPlayerLevel {
		sb.WriteString(" (MAX)\n")
	} else {
		sb.WriteString(fmt.Sprintf("  |  XP: %d / %d\n", u.Experience, leveling.XPForLevel(level+1)))
	}

	sb.WriteString(fmt.Sprintf("Health: %d / %d\n", u.Health, u.MaxHealth))
	if u.Resources != nil {
		sb.WriteString(fmt.Sprintf("Mana: %d / %d\n", u.Resources.Current, u.Resources.Max))
	}
	sb.WriteString(fmt.Sprintf("Gold: %d\n", u.Currency.Gold))

	sb.WriteString("\n--- Ability Scores ---\n")
	scores := []struct {
		name  string
		short string
		score int
	}{
		{"Strength", "STR", u.Abilities.Strength},
		{"Dexterity", "DEX", u.Abilities.Dexterity},
		{"Agility", "AGI", u.Abilities.Agility},
		{"Constitution", "CON", u.Abilities.Constitution},
		{"Intelligence", "INT", u.Abilities.Intelligence},
		{"Wisdom", "WIS", u.Abilities.Wisdom},
		{"Charisma", "CHA", u.Abilities.Charisma},
	}
	for _, a := range scores {
		mod := stats.Modifier(a.score)
		sb.WriteString(fmt.Sprintf("  %-12s (%s): %2d (%+d)\n", a.name, a.short, a.score, mod))
	}

	return single(ctx, sb.String())
}

// handleStatistics reports lifetime activity counters separate from the
// ability-score summary shown by 'score'.
func handleStatistics(ctx *Context) ([]string, session.State) {
	u := ctx.User
	if u.Stats == nil {
		return single(ctx, "No statistics recorded yet.\n")
	}
	snap := u.Stats.Snapshot()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("=== %s's Statistics ===\n", u.Username))
	sb.WriteString(fmt.Sprintf("Kills: %d across %d distinct foes\n", snap.TotalKills, len(snap.MobKills)))
	sb.WriteString(fmt.Sprintf("Deaths: %d\n", snap.Deaths))
	sb.WriteString(fmt.Sprintf("Damage dealt: %d   Damage taken: %d\n", snap.DamageDealt, snap.DamageTaken))
	sb.WriteString(fmt.Sprintf("Gold earned (lifetime): %d\n", snap.GoldAccumulated))
	sb.WriteString(fmt.Sprintf("Quests completed: %d\n", snap.QuestsCompleted))
	sb.WriteString(fmt.Sprintf("Items crafted: %d\n", snap.ItemsCrafted))
	sb.WriteString(fmt.Sprintf("Spells cast: %d\n", snap.SpellsCast))
	sb.WriteString(fmt.Sprintf("Rooms moved through: %d\n", snap.DistanceTraveled))
	sb.WriteString(fmt.Sprintf("Areas visited: %d\n", len(snap.AreasVisited)))
	return single(ctx, sb.String())
}

func classSummary(u *world.User) string {
	levels := u.ClassLevels.GetAllLevels()
	parts := make([]string, 0, len(levels))
	for cls, level := range levels {
		parts = append(parts, fmt.Sprintf("%s %d", cls.String(), level))
	}
	return strings.Join(parts, "/")
}

func handleLevel(ctx *Context) ([]string, session.State) {
	u := ctx.User
	var sb strings.Builder
	sb.WriteString("=== Level Progress ===\n")
	sb.WriteString(fmt.Sprintf("Current Level: %d", u.Level))

	if u.Level >= leveling.MaxPlayerLevel {
		sb.WriteString(" (MAX)\n")
		sb.WriteString(fmt.Sprintf("Total Experience: %d\n", u.Experience))
		sb.WriteString("\nYou have reached the maximum level!\n")
		return single(ctx, sb.String())
	}

	sb.WriteString("\n")
	xpNeeded := leveling.XPForLevel(u.Level + 1)
	xpCurrent := leveling.XPForLevel(u.Level)
	xpProgress := u.Experience - xpCurrent
	xpRequired := xpNeeded - xpCurrent
	xpToGo := xpNeeded - u.Experience

	percent := 0
	if xpRequired > 0 {
		percent = (xpProgress * 100) / xpRequired
	}
	sb.WriteString(fmt.Sprintf("Experience: %d / %d\n", u.Experience, xpNeeded))

	barWidth := 20
	filled := (percent * barWidth) / 100
	bar := strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled)
	sb.WriteString(fmt.Sprintf("Progress: [%s] %d%%\n", bar, percent))
	sb.WriteString(fmt.Sprintf("XP to next level: %d\n", xpToGo))

	return single(ctx, sb.String())
}

func handlePassword(ctx *Context) ([]string, session.State) {
	words := ctx.ArgWords()
	if len(words) != 2 {
		return single(ctx, "Usage: password <old_password> <new_password>\n")
	}
	if ctx.DB == nil {
		return single(ctx, "Password change is not available.\n")
	}
	oldPassword, newPassword := words[0], words[1]
	if len(newPassword) < 4 {
		return single(ctx, "New password must be at least 4 characters.\n")
	}

	account, err := ctx.DB.GetAccountByUsername(ctx.User.Username)
	if err != nil || account == nil {
		return single(ctx, "Account not found.\n")
	}
	if err := ctx.DB.ChangePasswordWithVerify(account.ID, oldPassword, newPassword); err != nil {
		if errors.Is(err, database.ErrInvalidCredentials) {
			return single(ctx, "Old password is incorrect.\n")
		}
		return single(ctx, fmt.Sprintf("Failed to change password: %v\n", err))
	}
	return single(ctx, "Password changed successfully.\n")
}

func handleRace(ctx *Context) ([]string, session.State) {
	if ctx.Args == "" {
		playerRace, err := race.ParseRace(strings.ToLower(ctx.User.Race.String()))
		if err != nil {
			return single(ctx, fmt.Sprintf("Your race: %s\n\nUse 'race <name>' to view information about a specific race.\nValid races: Human, Dwarf, Elf, Gnome, Orc\n", ctx.User.Race.String()))
		}
		return single(ctx, formatRaceInfo(playerRace))
	}
	raceName := strings.ToLower(strings.Join(ctx.ArgWords(), "-"))
	r, err := race.ParseRace(raceName)
	if err != nil {
		return single(ctx, fmt.Sprintf("Unknown race: %s\nValid races: Human, Dwarf, Elf, Gnome, Orc\n", ctx.ArgWords()[0]))
	}
	return single(ctx, formatRaceInfo(r))
}

func formatRaceInfo(r race.Race) string {
	def := race.GetDefinition(r)
	if def == nil {
		return fmt.Sprintf("Race information not found for %s\n", r.String())
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("=== %s ===\n", r.String()))
	sb.WriteString(fmt.Sprintf("Size: %s\n\n", def.Size))
	sb.WriteString(fmt.Sprintf("%s\n\n", def.Description))
	sb.WriteString("Stat Bonuses:\n")
	sb.WriteString(fmt.Sprintf("  %s\n\n", def.GetStatBonusesString()))
	sb.WriteString("Racial Abilities:\n")
	for _, ability := range def.Abilities {
		sb.WriteString(fmt.Sprintf("  - %s\n", ability))
	}
	return sb.String()
}

func handleRaces(ctx *Context) ([]string, session.State) {
	var sb strings.Builder
	sb.WriteString("=== Available Races ===\n\n")
	for _, r := range race.AllRaces() {
		def := race.GetDefinition(r)
		if def == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s (%s)\n", r.String(), def.Size))
		sb.WriteString(fmt.Sprintf("  Bonuses: %s\n", def.GetStatBonusesString()))
		sb.WriteString(fmt.Sprintf("  %s\n\n", def.Description))
	}
	sb.WriteString("Use 'race <name>' for detailed information about a specific race.\n")
	return single(ctx, sb.String())
}
