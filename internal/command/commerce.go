package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/towerkeep/mudcore/internal/items"
	"github.com/towerkeep/mudcore/internal/npc"
	"github.com/towerkeep/mudcore/internal/session"
)

func registerCommerce(d *Dispatcher) {
	d.register("shop", false, handleShop)
	d.alias("shop", "list")
	d.register("buy", false, handleBuy)
	d.register("sell", false, handleSell)
	d.register("gold", false, handleGold)
	d.alias("gold", "money", "wallet")
}

// findMerchantNPC returns the first NPC in the room with a shop inventory.
func findMerchantNPC(ctx *Context) (*npc.Instance, *npc.Template) {
	state := ctx.World.GetRoomState(ctx.User.CurrentRoomID)
	if state == nil {
		return nil, nil
	}
	for _, id := range state.GetNPCInstances() {
		inst := ctx.World.GetNPCInstance(id)
		if inst == nil {
			continue
		}
		tpl := ctx.World.GetNPCTemplate(inst.TemplateID)
		if tpl != nil && tpl.HasShopInventory() {
			return inst, tpl
		}
	}
	return nil, nil
}

func handleShop(ctx *Context) ([]string, session.State) {
	_, tpl := findMerchantNPC(ctx)
	if tpl == nil {
		return single(ctx, "There is no shop here.\n")
	}
	name := tpl.Name
	if len(name) > 0 {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	out := fmt.Sprintf("\n=== %s's Shop ===\n", name)
	out += fmt.Sprintf("Your gold: %d\n\n", ctx.User.Currency.Gold)
	out += "Items for sale:\n"
	for _, shopItem := range tpl.ShopInventory {
		itemTpl := ctx.World.GetItemTemplate(shopItem.ItemName)
		if itemTpl == nil {
			continue
		}
		price := shopItem.Price
		if price == 0 {
			price = itemTpl.Value
		}
		out += fmt.Sprintf("  %-20s %5d gold - %s\n", itemTpl.Name, price, itemTpl.Description)
	}
	out += "\nCommands:\n  buy <item>   - Purchase an item\n  sell <item>  - Sell an item from your inventory\n"
	return single(ctx, out)
}

func handleBuy(ctx *Context) ([]string, session.State) {
	if ctx.Args == "" {
		return single(ctx, "Buy what? Usage: buy <item name>\n")
	}
	_, tpl := findMerchantNPC(ctx)
	if tpl == nil {
		return single(ctx, "There is no shop here.\n")
	}
	itemName := strings.ToLower(ctx.Args)

	var shopItem *npc.ShopItem
	var itemTpl *items.Template
	for i := range tpl.ShopInventory {
		candidate := ctx.World.GetItemTemplate(tpl.ShopInventory[i].ItemName)
		if candidate == nil {
			continue
		}
		if strings.Contains(strings.ToLower(candidate.Name), itemName) {
			shopItem = &tpl.ShopInventory[i]
			itemTpl = candidate
			break
		}
	}
	if itemTpl == nil {
		return single(ctx, fmt.Sprintf("%s doesn't sell '%s'. Type 'shop' to see available items.\n", tpl.Name, ctx.Args))
	}
	price := shopItem.Price
	if price == 0 {
		price = itemTpl.Value
	}
	if ctx.User.Currency.Gold < price {
		return single(ctx, fmt.Sprintf("You don't have enough gold. The %s costs %d gold, but you only have %d.\n", itemTpl.Name, price, ctx.User.Currency.Gold))
	}
	ctx.User.SpendGold(price)
	inst := ctx.World.SpawnItemInstance(itemTpl.ID, ctx.User.Username)
	ctx.User.AddItem(inst.InstanceID)
	return single(ctx, fmt.Sprintf("You purchase a %s for %d gold.\nGold remaining: %d\n", itemTpl.Name, price, ctx.User.Currency.Gold))
}

func handleSell(ctx *Context) ([]string, session.State) {
	if ctx.Args == "" {
		return single(ctx, "Sell what? Usage: sell <item name>\n")
	}
	_, tpl := findMerchantNPC(ctx)
	if tpl == nil {
		return single(ctx, "There is no shop here.\n")
	}
	id, ok := findInventoryItem(ctx, ctx.Args)
	if !ok {
		return single(ctx, fmt.Sprintf("You don't have '%s' in your inventory.\n", ctx.Args))
	}
	inst := ctx.World.GetItemInstance(id)
	itemTpl := ctx.World.GetItemTemplate(inst.TemplateID)

	sellPrice := itemTpl.Value / 2
	if sellPrice < 1 && itemTpl.Value > 0 {
		sellPrice = 1
	}
	if itemTpl.Value == 0 {
		return single(ctx, fmt.Sprintf("%s isn't interested in your %s.\n", tpl.Name, inst.DisplayName(itemTpl)))
	}

	ctx.User.RemoveItem(id)
	ctx.World.RemoveItemInstance(id)
	ctx.User.AddGold(sellPrice)
	return single(ctx, fmt.Sprintf("You sell your %s for %d gold.\nGold: %d\n", inst.DisplayName(itemTpl), sellPrice, ctx.User.Currency.Gold))
}

func handleGold(ctx *Context) ([]string, session.State) {
	return single(ctx, fmt.Sprintf("You have %d gold.\n", ctx.User.Currency.Gold))
}

// parseGoldAmount supports "give 50 gold to Bob" style arguments.
func parseGoldAmount(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
