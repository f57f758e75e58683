package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/towerkeep/mudcore/internal/npc"
	"github.com/towerkeep/mudcore/internal/session"
	"github.com/towerkeep/mudcore/internal/spells"
	"github.com/towerkeep/mudcore/internal/world"
)

func registerMagic(d *Dispatcher) {
	d.register("cast", false, handleCast)
	d.register("spells", false, handleSpells)
}

func handleSpells(ctx *Context) ([]string, session.State) {
	if ctx.Spells == nil {
		return single(ctx, "Magic is not available.\n")
	}
	if len(ctx.User.LearnedSpells) == 0 {
		return single(ctx, "You haven't learned any spells.\n")
	}
	out := "Your spells:\n"
	for _, id := range ctx.User.LearnedSpells {
		spell, ok := ctx.Spells.GetSpell(id)
		if !ok {
			continue
		}
		out += fmt.Sprintf("  - %s (mana: %d)\n", spell.Name, spell.ManaCost)
	}
	return single(ctx, out)
}

func handleCast(ctx *Context) ([]string, session.State) {
	if ctx.Spells == nil {
		return single(ctx, "Magic is not available.\n")
	}
	words := ctx.ArgWords()
	if len(words) == 0 {
		return single(ctx, "Usage: cast <spell> [target]\n")
	}
	spellName := strings.ToLower(words[0])
	spell, exists := ctx.Spells.GetSpell(spellName)
	if !exists {
		return single(ctx, fmt.Sprintf("Unknown spell: '%s'. Type 'spells' to see your available spells.\n", spellName))
	}
	if !known(ctx.User.LearnedSpells, spell.ID) {
		return single(ctx, fmt.Sprintf("You haven't learned '%s'.\n", spell.Name))
	}
	if ctx.User.Resources == nil || !ctx.User.Resources.CanSpend(spell.ManaCost) {
		have := 0
		if ctx.User.Resources != nil {
			have = ctx.User.Resources.Current
		}
		return single(ctx, fmt.Sprintf("Not enough mana to cast %s. (Need %d, have %d)\n", spell.Name, spell.ManaCost, have))
	}
	if until, onCooldown := ctx.User.SpellCooldowns[spell.ID]; onCooldown {
		if remaining := time.Until(until); remaining > 0 {
			return single(ctx, fmt.Sprintf("%s is on cooldown. (%ds remaining)\n", spell.Name, int(remaining.Seconds())))
		}
	}

	targetName := strings.TrimSpace(strings.TrimPrefix(ctx.Args, words[0]))

	if spell.CanTargetRoomEnemies() {
		return castRoomSpell(ctx, spell)
	}
	if targetName == "" {
		if spell.CanTargetSelf() {
			return castSelfSpell(ctx, spell)
		}
		return single(ctx, fmt.Sprintf("Cast %s at whom? Usage: cast %s <target>\n", spell.Name, spell.Name))
	}
	if spell.CanTargetAlly() {
		if target, ok := ctx.World.FindUser(targetName); ok && target.CurrentRoomID == ctx.User.CurrentRoomID {
			return castAllySpell(ctx, spell, target)
		}
	}
	if spell.CanTargetEnemy() {
		if inst, tpl := findRoomNPC(ctx, targetName); inst != nil {
			return castEnemySpell(ctx, spell, inst, tpl)
		}
	}
	return single(ctx, fmt.Sprintf("You don't see '%s' here.\n", targetName))
}

func known(learned []string, id string) bool {
	for _, s := range learned {
		if s == id {
			return true
		}
	}
	return false
}

func healAmount(spell *spells.Spell) int {
	total := 0
	for _, e := range spell.Effects {
		if e.Type == spells.EffectHeal || e.Type == spells.EffectHealPercent {
			total += e.Amount
		}
	}
	return total
}

func applyCooldown(ctx *Context, spell *spells.Spell) {
	if ctx.User.Stats != nil {
		ctx.User.Stats.RecordSpellCast()
	}
	if spell.Cooldown <= 0 {
		return
	}
	ctx.User.SpellCooldowns[spell.ID] = time.Now().Add(time.Duration(spell.Cooldown) * time.Second)
}

func castSelfSpell(ctx *Context, spell *spells.Spell) ([]string, session.State) {
	ctx.User.Resources.Spend(spell.ManaCost)
	applyCooldown(ctx, spell)
	out := fmt.Sprintf("You cast %s!\n", spell.Name)
	if spell.HasHealEffect() {
		healed := ctx.User.Heal(healAmount(spell))
		out += fmt.Sprintf("You recover %d health.\n", healed)
	}
	return single(ctx, out)
}

func castAllySpell(ctx *Context, spell *spells.Spell, target *world.User) ([]string, session.State) {
	ctx.User.Resources.Spend(spell.ManaCost)
	applyCooldown(ctx, spell)
	out := fmt.Sprintf("You cast %s on %s!\n", spell.Name, target.Username)
	if spell.HasHealEffect() {
		healed := target.Heal(healAmount(spell))
		out += fmt.Sprintf("%s recovers %d health.\n", target.Username, healed)
	}
	if target.Username != ctx.User.Username {
		if client, ok := ctx.Manager.ClientFor(target.Username); ok {
			client.Send(fmt.Sprintf("%s casts %s on you!\n", ctx.User.Username, spell.Name))
		}
	}
	return single(ctx, out)
}

func castEnemySpell(ctx *Context, spell *spells.Spell, inst *npc.Instance, tpl *npc.Template) ([]string, session.State) {
	ctx.User.Resources.Spend(spell.ManaCost)
	applyCooldown(ctx, spell)
	out := fmt.Sprintf("You cast %s on %s!\n", spell.Name, tpl.Name)
	if spell.HasDamageEffect() {
		inst.AddThreat(ctx.User.Username, spell.GetDamageAmount())
		dealt := inst.TakeMagicDamage(spell.GetDamageAmount())
		out += fmt.Sprintf("%s takes %d damage!\n", tpl.Name, dealt)
		if !inst.IsAlive() {
			announce, ownReward := resolveAndAnnounceNPCDeath(ctx, tpl, inst)
			out += announce + ownReward
		}
	}
	if spell.HasStunEffect() {
		inst.Stun(3 * time.Second)
	}
	if spell.HasRootEffect() {
		inst.Root(3 * time.Second)
	}
	return single(ctx, out)
}

func castRoomSpell(ctx *Context, spell *spells.Spell) ([]string, session.State) {
	ctx.User.Resources.Spend(spell.ManaCost)
	applyCooldown(ctx, spell)
	state := ctx.World.GetRoomState(ctx.User.CurrentRoomID)
	if state == nil {
		return single(ctx, fmt.Sprintf("You cast %s, but nothing happens.\n", spell.Name))
	}
	out := fmt.Sprintf("You cast %s!\n", spell.Name)
	for _, id := range state.GetNPCInstances() {
		inst := ctx.World.GetNPCInstance(id)
		if inst == nil || !inst.IsAlive() {
			continue
		}
		tpl := ctx.World.GetNPCTemplate(inst.TemplateID)
		if tpl == nil || !tpl.Attackable {
			continue
		}
		if spell.HasDamageEffect() {
			inst.AddThreat(ctx.User.Username, spell.GetDamageAmount())
			dealt := inst.TakeMagicDamage(spell.GetDamageAmount())
			out += fmt.Sprintf("%s takes %d damage!\n", tpl.Name, dealt)
			if !inst.IsAlive() {
				announce, ownReward := resolveAndAnnounceNPCDeath(ctx, tpl, inst)
				out += announce + ownReward
			}
		}
	}
	return single(ctx, out)
}
