package command

import (
	"fmt"
	"strings"

	"github.com/towerkeep/mudcore/internal/items"
	"github.com/towerkeep/mudcore/internal/session"
)

const maxCarryWeight = 150.0

func registerItems(d *Dispatcher) {
	d.register("take", false, handleTake)
	d.alias("take", "get", "pickup")
	d.register("drop", false, handleDrop)
	d.register("inventory", false, handleInventory)
	d.alias("inventory", "inv", "i")
	d.register("equipment", false, handleEquipment)
	d.alias("equipment", "eq")
	d.register("wield", false, handleWield)
	d.alias("wield", "wear")
	d.register("remove", false, handleRemove)
	d.register("eat", false, handleConsume("eat"))
	d.register("drink", false, handleConsume("drink"))
	d.register("use", false, handleConsume("use"))
	d.register("give", false, handleGive)
}

func handleTake(ctx *Context) ([]string, session.State) {
	if ctx.Args == "" {
		return single(ctx, "Take what? Specify an item to pick up.\n")
	}
	state := ctx.World.GetRoomState(ctx.User.CurrentRoomID)
	if state == nil {
		return single(ctx, "You don't see that here.\n")
	}
	for _, id := range state.GetItemInstances() {
		inst := ctx.World.GetItemInstance(id)
		if inst == nil {
			continue
		}
		tpl := ctx.World.GetItemTemplate(inst.TemplateID)
		if tpl == nil || !matchesName(inst.DisplayName(tpl), ctx.Args) {
			continue
		}
		weight := carriedWeight(ctx)
		if weight+tpl.Weight > maxCarryWeight {
			return single(ctx, fmt.Sprintf("You can't carry the %s. It's too heavy! (%.1f)\n", inst.DisplayName(tpl), tpl.Weight))
		}
		state.RemoveItemInstance(id)
		ctx.User.AddItem(id)
		inst.Record("taken", ctx.User.Username)
		return single(ctx, fmt.Sprintf("You take the %s.\n", inst.DisplayName(tpl)))
	}
	return single(ctx, fmt.Sprintf("You don't see '%s' here.\n", ctx.Args))
}

func handleDrop(ctx *Context) ([]string, session.State) {
	if ctx.Args == "" {
		return single(ctx, "Drop what? Specify an item to drop.\n")
	}
	id, ok := findInventoryItem(ctx, ctx.Args)
	if !ok {
		return single(ctx, fmt.Sprintf("You don't have '%s' in your inventory.\n", ctx.Args))
	}
	inst := ctx.World.GetItemInstance(id)
	tpl := ctx.World.GetItemTemplate(inst.TemplateID)
	ctx.User.RemoveItem(id)
	state := ctx.World.GetRoomState(ctx.User.CurrentRoomID)
	if state != nil {
		state.AddItemInstance(id)
	}
	inst.Record("dropped", ctx.User.Username)
	return single(ctx, fmt.Sprintf("You drop the %s.\n", inst.DisplayName(tpl)))
}

func handleInventory(ctx *Context) ([]string, session.State) {
	u := ctx.User
	out := fmt.Sprintf("Gold: %d\n", u.Currency.Gold)
	if len(u.Inventory) == 0 {
		out += "\nYour inventory is empty.\n"
	} else {
		out += "\nYou are carrying:\n"
		for _, id := range u.Inventory {
			inst := ctx.World.GetItemInstance(id)
			if inst == nil {
				continue
			}
			tpl := ctx.World.GetItemTemplate(inst.TemplateID)
			if tpl == nil {
				continue
			}
			out += fmt.Sprintf("  - %s (%.1f, %s)\n", inst.DisplayName(tpl), tpl.Weight, tpl.Type.String())
		}
	}
	out += fmt.Sprintf("\nTotal weight: %.1f\n", carriedWeight(ctx))
	return single(ctx, out)
}

// carriedWeight sums a user's inventory weight by resolving each instance
// through the world, since World keeps templates/instances private to
// their own maps rather than exposing them in bulk.
func carriedWeight(ctx *Context) float64 {
	total := 0.0
	for _, id := range ctx.User.Inventory {
		tpl := ctx.World.ItemTemplateForInstance(id)
		if tpl != nil {
			total += tpl.Weight
		}
	}
	return total
}

var equipmentOrder = []items.EquipmentSlot{
	items.SlotHead, items.SlotNeck, items.SlotBody, items.SlotBack,
	items.SlotLegs, items.SlotFeet, items.SlotHands, items.SlotRing,
	items.SlotWeapon, items.SlotOffHand, items.SlotHeld,
}

func handleEquipment(ctx *Context) ([]string, session.State) {
	u := ctx.User
	if len(u.Equipment) == 0 {
		return single(ctx, "You are not wearing any equipment.\n")
	}
	out := "You are wearing:\n"
	for _, slot := range equipmentOrder {
		instanceID, equipped := u.Equipment[slot]
		if !equipped {
			continue
		}
		inst := ctx.World.GetItemInstance(instanceID)
		if inst == nil {
			continue
		}
		tpl := ctx.World.GetItemTemplate(inst.TemplateID)
		if tpl == nil {
			continue
		}
		out += fmt.Sprintf("  <%s> %s", slot.String(), inst.DisplayName(tpl))
		if tpl.Damage > 0 || tpl.DamageDice != "" {
			out += fmt.Sprintf(" (damage: %s)", damageLabel(tpl))
		}
		if tpl.Armor > 0 {
			out += fmt.Sprintf(" (armor: %d)", tpl.Armor)
		}
		if tpl.TwoHanded {
			out += " [two-handed]"
		}
		out += "\n"
	}
	return single(ctx, out)
}

func damageLabel(tpl *items.Template) string {
	if tpl.DamageDice != "" {
		return tpl.DamageDice
	}
	return fmt.Sprintf("%d", tpl.Damage)
}

func handleWield(ctx *Context) ([]string, session.State) {
	if ctx.Args == "" {
		return single(ctx, "Usage: wield <item>\n")
	}
	id, ok := findInventoryItem(ctx, ctx.Args)
	if !ok {
		return single(ctx, fmt.Sprintf("You don't have '%s' in your inventory.\n", ctx.Args))
	}
	inst := ctx.World.GetItemInstance(id)
	tpl := ctx.World.GetItemTemplate(inst.TemplateID)
	if tpl.Slot == items.SlotNone {
		return single(ctx, fmt.Sprintf("You can't wear or wield the %s.\n", inst.DisplayName(tpl)))
	}
	if err := ctx.User.Equip(id, tpl); err != nil {
		return single(ctx, err.Error()+"\n")
	}
	ctx.User.RemoveItem(id)
	return single(ctx, fmt.Sprintf("You wield the %s.\n", inst.DisplayName(tpl)))
}

func handleRemove(ctx *Context) ([]string, session.State) {
	if ctx.Args == "" {
		return single(ctx, "Remove what? Specify an equipped item.\n")
	}
	for slot, instanceID := range ctx.User.Equipment {
		inst := ctx.World.GetItemInstance(instanceID)
		if inst == nil {
			continue
		}
		tpl := ctx.World.GetItemTemplate(inst.TemplateID)
		if tpl == nil || !matchesName(inst.DisplayName(tpl), ctx.Args) {
			continue
		}
		id, _ := ctx.User.Unequip(slot)
		ctx.User.AddItem(id)
		return single(ctx, fmt.Sprintf("You remove the %s.\n", inst.DisplayName(tpl)))
	}
	return single(ctx, fmt.Sprintf("You aren't wearing '%s'.\n", ctx.Args))
}

func handleConsume(verb string) Handler {
	prompt := strings.ToUpper(verb[:1]) + verb[1:] + " what?\n"
	return func(ctx *Context) ([]string, session.State) {
		if ctx.Args == "" {
			return single(ctx, prompt)
		}
		id, ok := findInventoryItem(ctx, ctx.Args)
		if !ok {
			return single(ctx, fmt.Sprintf("You don't have '%s' in your inventory.\n", ctx.Args))
		}
		inst := ctx.World.GetItemInstance(id)
		tpl := ctx.World.GetItemTemplate(inst.TemplateID)
		if !tpl.Consumable {
			return single(ctx, fmt.Sprintf("You can't %s the %s.\n", verb, inst.DisplayName(tpl)))
		}
		var effects []string
		if tpl.HealAmount > 0 {
			healed := ctx.User.Heal(tpl.HealAmount)
			effects = append(effects, fmt.Sprintf("You recover %d health.", healed))
		}
		if tpl.ManaAmount > 0 && ctx.User.Resources != nil {
			res := ctx.User.Resources
			res.Current += tpl.ManaAmount
			if res.Current > res.Max {
				res.Current = res.Max
			}
			effects = append(effects, fmt.Sprintf("You recover %d %s.", tpl.ManaAmount, string(res.Type)))
		}
		ctx.User.RemoveItem(id)
		ctx.World.RemoveItemInstance(id)
		out := fmt.Sprintf("You consume the %s.\n", inst.DisplayName(tpl))
		for _, e := range effects {
			out += e + "\n"
		}
		return single(ctx, out)
	}
}

func handleGive(ctx *Context) ([]string, session.State) {
	parts := strings.SplitN(ctx.Args, " to ", 2)
	if len(parts) != 2 {
		return single(ctx, "Usage: give <item> to <player>\n")
	}
	itemName := strings.TrimSpace(parts[0])
	targetName := strings.TrimSpace(parts[1])

	target, ok := ctx.World.FindUser(targetName)
	if !ok || ctx.World.GetUserRoom(target.Username) != ctx.User.CurrentRoomID {
		return single(ctx, fmt.Sprintf("%s isn't here.\n", targetName))
	}

	if fields := strings.Fields(itemName); len(fields) == 2 && strings.EqualFold(fields[1], "gold") {
		if amount, ok := parseGoldAmount(fields[0]); ok {
			if !ctx.User.SpendGold(amount) {
				return single(ctx, fmt.Sprintf("You don't have %d gold.\n", amount))
			}
			target.AddGold(amount)
			return single(ctx, fmt.Sprintf("You give %d gold to %s.\n", amount, target.Username))
		}
	}

	id, ok := findInventoryItem(ctx, itemName)
	if !ok {
		return single(ctx, fmt.Sprintf("You don't have '%s' in your inventory.\n", itemName))
	}
	inst := ctx.World.GetItemInstance(id)
	tpl := ctx.World.GetItemTemplate(inst.TemplateID)
	ctx.User.RemoveItem(id)
	target.AddItem(id)
	inst.Record("given:"+target.Username, ctx.User.Username)
	return single(ctx, fmt.Sprintf("You give the %s to %s.\n", inst.DisplayName(tpl), target.Username))
}
