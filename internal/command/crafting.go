package command

import (
	"fmt"
	"strings"

	"github.com/towerkeep/mudcore/internal/session"
	"github.com/towerkeep/mudcore/internal/stats"
)

func registerCrafting(d *Dispatcher) {
	d.register("craft", false, handleCraft)
	d.register("recipes", false, handleRecipes)
}

// handleRecipes lists every recipe the registry knows, grouped by skill.
// With no registry configured (magic-only or minimal configs), crafting
// reports as unavailable rather than erroring.
func handleRecipes(ctx *Context) ([]string, session.State) {
	if ctx.Recipes == nil {
		return single(ctx, "Crafting is not available.\n")
	}
	all := ctx.Recipes.GetAllRecipes()
	if len(all) == 0 {
		return single(ctx, "No recipes are known.\n")
	}
	var b strings.Builder
	b.WriteString("Known recipes:\n")
	for _, r := range all {
		b.WriteString(fmt.Sprintf("  %-20s %-14s diff %-3d skill req %d\n", r.ID, r.Skill, r.Difficulty, r.SkillRequired))
	}
	return single(ctx, b.String())
}

// handleCraft resolves ingredients from the user's inventory by template
// ID, rolls a skill check against the recipe's difficulty, and on success
// consumes the ingredients and grants the output item. Failure consumes
// nothing but still grants partial skill progress, matching the teacher's
// "failure still teaches" skill-gain pattern used for weapon proficiency.
func handleCraft(ctx *Context) ([]string, session.State) {
	if ctx.Recipes == nil {
		return single(ctx, "Crafting is not available.\n")
	}
	if ctx.Args == "" {
		return single(ctx, "Craft what? Usage: craft <recipe>\n")
	}

	recipeID := ctx.ArgWords()[0]
	recipe := ctx.Recipes.GetRecipe(recipeID)
	if recipe == nil {
		return single(ctx, fmt.Sprintf("Unknown recipe '%s'. See 'recipes' for a list.\n", recipeID))
	}
	if ctx.User.Level < recipe.LevelRequired {
		return single(ctx, fmt.Sprintf("You must be level %d to craft this.\n", recipe.LevelRequired))
	}

	skillName := string(recipe.Skill)
	skillLevel := ctx.User.CraftingSkills[skillName]
	if skillLevel < recipe.SkillRequired {
		return single(ctx, fmt.Sprintf("Your %s skill is too low (need %d).\n", skillName, recipe.SkillRequired))
	}

	have := make(map[string][]string) // template ID -> matching instance IDs held
	for _, instID := range ctx.User.Inventory {
		inst := ctx.World.GetItemInstance(instID)
		if inst == nil {
			continue
		}
		have[inst.TemplateID] = append(have[inst.TemplateID], instID)
	}
	for _, ing := range recipe.Ingredients {
		if len(have[ing.ItemID]) < ing.Quantity {
			tpl := ctx.World.GetItemTemplate(ing.ItemID)
			name := ing.ItemID
			if tpl != nil {
				name = tpl.Name
			}
			return single(ctx, fmt.Sprintf("You don't have enough %s (need %d).\n", name, ing.Quantity))
		}
	}

	roll := stats.D100() + skillLevel/5
	success := roll >= recipe.Difficulty

	if success {
		for _, ing := range recipe.Ingredients {
			for i := 0; i < ing.Quantity; i++ {
				instID := have[ing.ItemID][i]
				ctx.User.RemoveItem(instID)
				ctx.World.RemoveItemInstance(instID)
			}
		}
	}

	if skillLevel < 100 {
		gain := 1
		if success {
			gain = recipe.SkillGain
			if gain <= 0 {
				gain = 1
			}
		}
		if ctx.User.CraftingSkills == nil {
			ctx.User.CraftingSkills = make(map[string]int)
		}
		newLevel := skillLevel + gain
		if newLevel > 100 {
			newLevel = 100
		}
		ctx.User.CraftingSkills[skillName] = newLevel
	}

	if !success {
		return single(ctx, fmt.Sprintf("You fail to craft %s.\n", recipe.Name))
	}
	if ctx.User.Stats != nil {
		ctx.User.Stats.RecordItemCrafted()
	}

	var produced string
	for i := 0; i < recipe.OutputCount; i++ {
		inst := ctx.World.SpawnItemInstance(recipe.OutputItem, ctx.User.Username)
		if inst == nil {
			continue
		}
		ctx.User.AddItem(inst.InstanceID)
		tpl := ctx.World.GetItemTemplate(recipe.OutputItem)
		produced = inst.DisplayName(tpl)
	}
	if produced == "" {
		return single(ctx, fmt.Sprintf("You craft the %s, but it vanishes in a puff of misconfiguration.\n", recipe.Name))
	}
	return single(ctx, fmt.Sprintf("You successfully craft %s: %s.\n", recipe.Name, produced))
}
