package command

import (
	"fmt"
	"strings"

	"github.com/towerkeep/mudcore/internal/npc"
	"github.com/towerkeep/mudcore/internal/quest"
	"github.com/towerkeep/mudcore/internal/session"
	"github.com/towerkeep/mudcore/internal/world"
)

func registerQuests(d *Dispatcher) {
	d.register("quest", false, handleQuest)
	d.alias("quest", "quests", "journal")
	d.register("accept", false, handleAccept)
	d.register("complete", false, handleComplete)
	d.alias("complete", "turnin")
	d.register("abandon", false, handleAbandon)
	d.register("title", false, handleTitle)
}

// applyKillProgress advances every one of the attacker's active quests that
// has a kill objective matching killedTemplateID. Called from the combat
// death-resolution path (both the direct-attack handler and the tick
// engine's room-combat rounds) for each attacker that gets credit for a kill.
func applyKillProgress(w *world.World, attacker *world.User, killedTemplateID string) {
	if w.Quests == nil || attacker.QuestLog == nil {
		return
	}
	for _, questID := range attacker.QuestLog.GetActiveQuests() {
		def, ok := w.Quests.GetQuest(questID)
		if !ok {
			continue
		}
		attacker.QuestLog.UpdateKillProgressForQuest(questID, def, killedTemplateID)
	}
}

func handleQuest(ctx *Context) ([]string, session.State) {
	if ctx.Args == "" {
		return single(ctx, showQuestSummary(ctx))
	}
	words := ctx.ArgWords()
	switch strings.ToLower(words[0]) {
	case "list":
		return single(ctx, showQuestList(ctx))
	case "available":
		if len(words) > 1 {
			return single(ctx, showAvailableQuestDetails(ctx, strings.Join(words[1:], " ")))
		}
		return single(ctx, showAvailableQuests(ctx))
	default:
		return single(ctx, showQuestDetails(ctx, ctx.Args))
	}
}

func showQuestSummary(ctx *Context) string {
	log := ctx.User.QuestLog
	if log == nil {
		return "You have no quests.\n"
	}
	active := log.GetActiveQuests()
	completed := len(log.GetCompletedQuests())
	if len(active) == 0 && completed == 0 {
		return "Your quest journal is empty. Talk to NPCs to find quests!\n"
	}
	var sb strings.Builder
	sb.WriteString("=== Quest Journal ===\n")
	sb.WriteString(fmt.Sprintf("Active Quests: %d\n", len(active)))
	sb.WriteString(fmt.Sprintf("Completed Quests: %d\n", completed))
	if len(active) > 0 {
		sb.WriteString("\nUse 'quest list' to see details of active quests.\n")
	}
	return sb.String()
}

func showQuestList(ctx *Context) string {
	if ctx.World.Quests == nil {
		return "Quest system not available.\n"
	}
	log := ctx.User.QuestLog
	if log == nil {
		return "You have no active quests.\n"
	}
	activeIDs := log.GetActiveQuests()
	if len(activeIDs) == 0 {
		return "You have no active quests. Talk to NPCs to find quests!\n"
	}
	var sb strings.Builder
	sb.WriteString("=== Active Quests ===\n\n")
	for _, id := range activeIDs {
		def, ok := ctx.World.Quests.GetQuest(id)
		if !ok {
			continue
		}
		progress, hasProgress := log.GetQuestProgress(id)
		if !hasProgress {
			continue
		}
		statusTag := "[IN PROGRESS]"
		if log.CanCompleteQuest(id, def) {
			statusTag = "[COMPLETE]"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", statusTag, def.Name))
		for i, obj := range def.Objectives {
			current := 0
			if i < len(progress.Objectives) {
				current = progress.Objectives[i].Current
			}
			sb.WriteString(fmt.Sprintf("  - %s %s: %d/%d\n", objectiveVerb(obj.Type), objectiveTarget(obj), current, obj.Required))
		}
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n") + "\n"
}

func showQuestDetails(ctx *Context, questName string) string {
	if ctx.World.Quests == nil {
		return "Quest system not available.\n"
	}
	log := ctx.User.QuestLog
	if log == nil {
		return "You have no quests.\n"
	}
	search := strings.ToLower(questName)
	for _, id := range log.GetActiveQuests() {
		def, ok := ctx.World.Quests.GetQuest(id)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(def.Name), search) || strings.Contains(strings.ToLower(id), search) {
			return formatQuestDetails(def, log)
		}
	}
	return fmt.Sprintf("No active quest matching '%s'. Use 'quest list' to see your quests.\n", questName)
}

func formatQuestDetails(q *quest.Quest, log *quest.PlayerQuestLog) string {
	var sb strings.Builder
	progress, _ := log.GetQuestProgress(q.ID)
	statusTag := "[IN PROGRESS]"
	if log.CanCompleteQuest(q.ID, q) {
		statusTag = "[COMPLETE]"
	}
	sb.WriteString(fmt.Sprintf("=== %s %s ===\n\n", statusTag, q.Name))
	sb.WriteString(fmt.Sprintf("%s\n\n", q.Description))
	sb.WriteString("Objectives:\n")
	for i, obj := range q.Objectives {
		current := 0
		if progress != nil && i < len(progress.Objectives) {
			current = progress.Objectives[i].Current
		}
		checkmark := " "
		if current >= obj.Required {
			checkmark = "x"
		}
		sb.WriteString(fmt.Sprintf("  [%s] %s %s: %d/%d\n", checkmark, objectiveVerb(obj.Type), objectiveTarget(obj), current, obj.Required))
	}
	if q.TurnInNPC != "" {
		sb.WriteString(fmt.Sprintf("\nTurn in to: %s\n", q.TurnInNPC))
	}
	sb.WriteString(formatRewards(q.Rewards))
	return sb.String()
}

func formatRewards(r quest.QuestReward) string {
	var sb strings.Builder
	sb.WriteString("\nRewards:\n")
	if r.Gold > 0 {
		sb.WriteString(fmt.Sprintf("  - %d gold\n", r.Gold))
	}
	if r.Experience > 0 {
		sb.WriteString(fmt.Sprintf("  - %d experience\n", r.Experience))
	}
	for _, item := range r.Items {
		sb.WriteString(fmt.Sprintf("  - %s\n", item))
	}
	if len(r.Recipes) > 0 {
		sb.WriteString(fmt.Sprintf("  - Recipe: %s\n", strings.Join(r.Recipes, ", ")))
	}
	if r.Title != "" {
		sb.WriteString(fmt.Sprintf("  - Title: %s\n", r.Title))
	}
	return sb.String()
}

func objectiveVerb(t quest.QuestType) string {
	switch t {
	case quest.QuestTypeKill:
		return "Kill"
	case quest.QuestTypeFetch:
		return "Collect"
	case quest.QuestTypeDelivery:
		return "Deliver"
	case quest.QuestTypeExplore:
		return "Explore"
	case quest.QuestTypeCraft:
		return "Craft"
	case quest.QuestTypeCast:
		return "Cast"
	default:
		return "Complete"
	}
}

func objectiveTarget(obj quest.QuestObjective) string {
	if obj.TargetName != "" {
		return obj.TargetName
	}
	return obj.Target
}

// questGiversInRoom returns every NPC instance/template in the user's room
// flagged as a quest giver.
func questGiversInRoom(ctx *Context) []*npc.Instance {
	state := ctx.World.GetRoomState(ctx.User.CurrentRoomID)
	if state == nil {
		return nil
	}
	var givers []*npc.Instance
	for _, id := range state.GetNPCInstances() {
		inst := ctx.World.GetNPCInstance(id)
		if inst == nil || !inst.IsAlive() {
			continue
		}
		tpl := ctx.World.GetNPCTemplate(inst.TemplateID)
		if tpl != nil && tpl.IsQuestGiver() {
			givers = append(givers, inst)
		}
	}
	return givers
}

// playerQuestState builds the filter state the registry needs to decide
// which quests a player currently qualifies for.
func playerQuestState(ctx *Context) *quest.PlayerQuestState {
	u := ctx.User
	completed := make(map[string]bool)
	for _, id := range u.QuestLog.GetCompletedQuests() {
		completed[id] = true
	}
	active := make(map[string]bool)
	for _, id := range u.QuestLog.GetActiveQuests() {
		active[id] = true
	}
	classLevels := make(map[string]int)
	for cls, lvl := range u.ClassLevels.GetAllLevels() {
		classLevels[cls.String()] = lvl
	}
	return &quest.PlayerQuestState{
		Level:           u.Level,
		ActiveClass:     u.ActiveClass.String(),
		ClassLevels:     classLevels,
		CraftingSkills:  u.CraftingSkills,
		CompletedQuests: completed,
		ActiveQuests:    active,
	}
}

func showAvailableQuests(ctx *Context) string {
	if ctx.World.Quests == nil {
		return "Quest system not available.\n"
	}
	givers := questGiversInRoom(ctx)
	if len(givers) == 0 {
		return "There is no one here offering quests.\n"
	}
	state := playerQuestState(ctx)

	var sb strings.Builder
	sb.WriteString("=== Available Quests ===\n\n")
	found := false
	for _, inst := range givers {
		tpl := ctx.World.GetNPCTemplate(inst.TemplateID)
		available := ctx.World.Quests.GetAvailableQuestsForPlayer(tpl.ID, state)
		if len(available) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s offers:\n", tpl.Name))
		for _, q := range available {
			sb.WriteString(fmt.Sprintf("  [NEW] %s\n", q.Name))
		}
		sb.WriteString("\n")
		found = true
	}
	if !found {
		return "There are no quests available to you right now.\n"
	}
	sb.WriteString("Use 'accept <quest name>' to accept a quest.\n")
	return sb.String()
}

func showAvailableQuestDetails(ctx *Context, questName string) string {
	if ctx.World.Quests == nil {
		return "Quest system not available.\n"
	}
	givers := questGiversInRoom(ctx)
	if len(givers) == 0 {
		return "There is no one here offering quests.\n"
	}
	state := playerQuestState(ctx)
	search := strings.ToLower(questName)
	for _, inst := range givers {
		tpl := ctx.World.GetNPCTemplate(inst.TemplateID)
		for _, q := range ctx.World.Quests.GetAvailableQuestsForPlayer(tpl.ID, state) {
			if strings.Contains(strings.ToLower(q.Name), search) || strings.Contains(strings.ToLower(q.ID), search) {
				var sb strings.Builder
				sb.WriteString(fmt.Sprintf("=== %s ===\n", q.Name))
				sb.WriteString(fmt.Sprintf("Offered by: %s\n\n", tpl.Name))
				sb.WriteString(fmt.Sprintf("%s\n\n", q.Description))
				sb.WriteString("Objectives:\n")
				for _, obj := range q.Objectives {
					sb.WriteString(fmt.Sprintf("  - %s %s: 0/%d\n", objectiveVerb(obj.Type), objectiveTarget(obj), obj.Required))
				}
				if q.TurnInNPC != "" {
					sb.WriteString(fmt.Sprintf("\nTurn in to: %s\n", q.TurnInNPC))
				}
				sb.WriteString(formatRewards(q.Rewards))
				sb.WriteString(fmt.Sprintf("\nUse 'accept %s' to accept this quest.\n", strings.ToLower(q.Name)))
				return sb.String()
			}
		}
	}
	return fmt.Sprintf("No available quest matching '%s'. Use 'quests available' to see available quests.\n", questName)
}

func handleAccept(ctx *Context) ([]string, session.State) {
	if ctx.World.Quests == nil {
		return single(ctx, "Quest system not available.\n")
	}
	givers := questGiversInRoom(ctx)
	if len(givers) == 0 {
		return single(ctx, "There is no one here offering quests.\n")
	}
	if ctx.Args == "" {
		return single(ctx, "Usage: accept <quest name>\nUse 'quests available' to see available quests.\n")
	}
	state := playerQuestState(ctx)
	search := strings.ToLower(ctx.Args)

	for _, inst := range givers {
		tpl := ctx.World.GetNPCTemplate(inst.TemplateID)
		for _, q := range ctx.World.Quests.GetAvailableQuestsForPlayer(tpl.ID, state) {
			if !strings.Contains(strings.ToLower(q.Name), search) && !strings.Contains(strings.ToLower(q.ID), search) {
				continue
			}
			if err := ctx.User.QuestLog.StartQuest(q); err != nil {
				return single(ctx, fmt.Sprintf("Failed to accept quest: %v\n", err))
			}
			for _, itemID := range q.QuestItems {
				item := ctx.World.SpawnItemInstance(itemID, "quest:"+q.ID)
				if item != nil {
					ctx.User.AddItem(item.InstanceID)
				}
			}
			var sb strings.Builder
			sb.WriteString(fmt.Sprintf("Quest Accepted: %s\n\n", q.Name))
			sb.WriteString(fmt.Sprintf("%s\n\n", q.Description))
			sb.WriteString("Objectives:\n")
			for _, obj := range q.Objectives {
				sb.WriteString(fmt.Sprintf("  - %s %s: 0/%d\n", objectiveVerb(obj.Type), objectiveTarget(obj), obj.Required))
			}
			if len(q.QuestItems) > 0 {
				sb.WriteString("\nYou received quest items.\n")
			}
			return single(ctx, sb.String())
		}
	}
	return single(ctx, fmt.Sprintf("No quest matching '%s' is available here.\n", ctx.Args))
}

func handleComplete(ctx *Context) ([]string, session.State) {
	if ctx.World.Quests == nil {
		return single(ctx, "Quest system not available.\n")
	}
	log := ctx.User.QuestLog
	if log == nil {
		return single(ctx, "You have no quests to complete.\n")
	}
	state := ctx.World.GetRoomState(ctx.User.CurrentRoomID)
	if state == nil {
		return single(ctx, "You have no quests ready to turn in.\n")
	}

	type candidate struct {
		def  *quest.Quest
		npc  *npc.Template
	}
	var completable []candidate
	hasAnyCompleted := false

	for _, id := range log.GetActiveQuests() {
		def, ok := ctx.World.Quests.GetQuest(id)
		if !ok {
			continue
		}
		if !log.CanCompleteQuest(id, def) {
			continue
		}
		hasAnyCompleted = true
		for _, instID := range state.GetNPCInstances() {
			inst := ctx.World.GetNPCInstance(instID)
			if inst == nil || !inst.IsAlive() {
				continue
			}
			tpl := ctx.World.GetNPCTemplate(inst.TemplateID)
			if tpl == nil {
				continue
			}
			if strings.EqualFold(tpl.Name, def.TurnInNPC) || tpl.CanTurnInQuest(id) {
				completable = append(completable, candidate{def, tpl})
				break
			}
		}
	}

	if len(completable) == 0 {
		if hasAnyCompleted {
			return single(ctx, "You have completed quests, but the NPC to turn them in to is not here.\n")
		}
		return single(ctx, "You have no quests ready to turn in.\n")
	}

	var chosen candidate
	if ctx.Args != "" {
		search := strings.ToLower(ctx.Args)
		found := false
		for _, c := range completable {
			if strings.Contains(strings.ToLower(c.def.Name), search) {
				chosen = c
				found = true
				break
			}
		}
		if !found {
			return single(ctx, fmt.Sprintf("No completable quest matching '%s' found here.\n", ctx.Args))
		}
	} else if len(completable) == 1 {
		chosen = completable[0]
	} else {
		var sb strings.Builder
		sb.WriteString("Multiple quests can be completed here:\n")
		for _, c := range completable {
			sb.WriteString(fmt.Sprintf("  - %s\n", c.def.Name))
		}
		sb.WriteString("\nUse 'complete <quest name>' to turn in a specific quest.\n")
		return single(ctx, sb.String())
	}

	q := chosen.def
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("=== Quest Complete: %s ===\n\n", q.Name))
	sb.WriteString(fmt.Sprintf("%s says, \"Well done, adventurer!\"\n\n", chosen.npc.Name))
	sb.WriteString("Rewards:\n")

	if q.Rewards.Gold > 0 {
		ctx.User.AddGold(q.Rewards.Gold)
		if ctx.User.Stats != nil {
			ctx.User.Stats.RecordGoldEarned(q.Rewards.Gold)
		}
		sb.WriteString(fmt.Sprintf("  + %d gold\n", q.Rewards.Gold))
	}
	if q.Rewards.Experience > 0 {
		ups := ctx.User.GainExperience(q.Rewards.Experience)
		sb.WriteString(fmt.Sprintf("  + %d experience\n", q.Rewards.Experience))
		for _, lu := range ups {
			sb.WriteString(fmt.Sprintf("\n*** LEVEL UP! You are now level %d! ***\n", lu.NewLevel))
		}
	}
	for _, itemID := range q.Rewards.Items {
		item := ctx.World.SpawnItemInstance(itemID, "quest:"+q.ID)
		if item != nil {
			ctx.User.AddItem(item.InstanceID)
			sb.WriteString(fmt.Sprintf("  + %s\n", item.DisplayName(ctx.World.GetItemTemplate(item.TemplateID))))
		}
	}
	if q.Rewards.Title != "" {
		ctx.User.Titles = append(ctx.User.Titles, q.Rewards.Title)
		sb.WriteString(fmt.Sprintf("  + Title earned: %s\n", q.Rewards.Title))
	}

	log.TurnInQuest(q.ID, q.Repeatable)
	if ctx.User.Stats != nil {
		ctx.User.Stats.RecordQuestCompleted()
	}
	return single(ctx, sb.String())
}

func handleAbandon(ctx *Context) ([]string, session.State) {
	log := ctx.User.QuestLog
	if log == nil || ctx.Args == "" {
		return single(ctx, "Usage: abandon <quest name>\n")
	}
	search := strings.ToLower(ctx.Args)
	for _, id := range log.GetActiveQuests() {
		def, ok := ctx.World.Quests.GetQuest(id)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(def.Name), search) || strings.Contains(strings.ToLower(id), search) {
			log.AbandonQuest(id)
			return single(ctx, fmt.Sprintf("You abandon the quest: %s\n", def.Name))
		}
	}
	return single(ctx, fmt.Sprintf("No active quest matching '%s'.\n", ctx.Args))
}

func handleTitle(ctx *Context) ([]string, session.State) {
	u := ctx.User
	if ctx.Args == "" {
		return single(ctx, showTitles(ctx))
	}
	arg := ctx.Args
	if strings.EqualFold(arg, "none") || strings.EqualFold(arg, "clear") {
		u.ActiveTitle = ""
		return single(ctx, "Your title has been cleared.\n")
	}
	for _, t := range u.Titles {
		if strings.EqualFold(t, arg) {
			u.ActiveTitle = t
			return single(ctx, fmt.Sprintf("Your title is now: %s\n", u.ActiveTitle))
		}
	}
	return single(ctx, "Cannot set title: you have not earned that title.\n")
}

func showTitles(ctx *Context) string {
	u := ctx.User
	if len(u.Titles) == 0 {
		return "You have not earned any titles yet.\n"
	}
	var sb strings.Builder
	sb.WriteString("=== Your Titles ===\n\n")
	for _, t := range u.Titles {
		marker := "  "
		if t == u.ActiveTitle {
			marker = "> "
		}
		sb.WriteString(fmt.Sprintf("%s%s\n", marker, t))
	}
	sb.WriteString("\nUse 'title <name>' to set your active title, or 'title none' to clear it.\n")
	return sb.String()
}
