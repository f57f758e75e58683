package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/towerkeep/mudcore/internal/logger"
	"github.com/towerkeep/mudcore/internal/session"
)

func registerAdmin(d *Dispatcher) {
	d.register("admin", true, handleAdmin)
}

func handleAdmin(ctx *Context) ([]string, session.State) {
	words := ctx.ArgWords()
	if len(words) == 0 {
		return single(ctx, adminHelp())
	}
	sub := strings.ToLower(words[0])
	rest := strings.TrimSpace(strings.TrimPrefix(ctx.Args, words[0]))

	switch sub {
	case "help":
		return single(ctx, adminHelp())
	case "promote":
		return single(ctx, adminPromote(ctx, rest))
	case "demote":
		return single(ctx, adminDemote(ctx, rest))
	case "ban":
		return single(ctx, adminBan(ctx, rest))
	case "unban":
		return single(ctx, adminUnban(ctx, rest))
	case "kick":
		return single(ctx, adminKick(ctx, rest))
	case "announce":
		return single(ctx, adminAnnounce(ctx, rest))
	case "teleport", "tp":
		return single(ctx, adminTeleport(ctx, rest))
	case "goto":
		return single(ctx, adminGoto(ctx, rest))
	case "stats":
		return single(ctx, adminStats(ctx))
	case "players":
		return single(ctx, adminPlayers(ctx))
	default:
		return single(ctx, fmt.Sprintf("Unknown admin command: %s. Type 'admin help' for commands.\n", sub))
	}
}

func adminHelp() string {
	return `
Admin Commands
==============

Player Management:
  admin promote <player>       - Grant admin privileges to a player
  admin demote <player>        - Remove admin privileges from a player
  admin ban <player> [reason]  - Ban a player's account
  admin unban <username>       - Unban an account by username
  admin kick <player> [reason] - Disconnect a player

Communication:
  admin announce <message>     - Broadcast to all players

Teleportation:
  admin teleport <player> <room> - Move a player to a room
  admin tp <player> <room>       - Alias for teleport
  admin goto <room>              - Teleport yourself to a room

Information:
  admin stats    - Show server statistics
  admin players  - List all online players with details
  admin help     - Show this help message
`
}

func adminPromote(ctx *Context, args string) string {
	if args == "" || ctx.DB == nil {
		if ctx.DB == nil {
			return "Account management is not available.\n"
		}
		return "Usage: admin promote <player_name>\n"
	}
	if target, ok := ctx.World.FindUser(args); ok {
		target.SetFlag("admin", true)
		if client, ok := ctx.Manager.ClientFor(target.Username); ok {
			client.Send("\n*** You have been granted admin privileges! ***\n")
		}
		logger.Always("admin action", "action", "promote", "admin", ctx.User.Username, "target", target.Username)
		return fmt.Sprintf("%s has been promoted to admin.\n", target.Username)
	}
	account, err := ctx.DB.GetAccountByUsername(args)
	if err != nil {
		return fmt.Sprintf("Player '%s' not found.\n", args)
	}
	if account.IsAdmin {
		return fmt.Sprintf("Account '%s' is already an admin.\n", account.Username)
	}
	if err := ctx.DB.SetAdmin(account.ID, true); err != nil {
		return fmt.Sprintf("Failed to promote account: %v\n", err)
	}
	logger.Always("admin action", "action", "promote", "admin", ctx.User.Username, "target_account", account.Username, "target_online", false)
	return fmt.Sprintf("Account '%s' has been promoted to admin.\n", account.Username)
}

func adminDemote(ctx *Context, args string) string {
	if ctx.DB == nil {
		return "Account management is not available.\n"
	}
	if args == "" {
		return "Usage: admin demote <player_name>\n"
	}
	admins, err := ctx.DB.GetAllAdmins()
	if err != nil {
		return fmt.Sprintf("Failed to check admin count: %v\n", err)
	}
	if len(admins) <= 1 {
		return "Cannot demote: this would leave the server with no admins.\n"
	}
	if target, ok := ctx.World.FindUser(args); ok {
		target.SetFlag("admin", false)
		if client, ok := ctx.Manager.ClientFor(target.Username); ok {
			client.Send("\n*** Your admin privileges have been revoked. ***\n")
		}
		logger.Always("admin action", "action", "demote", "admin", ctx.User.Username, "target", target.Username)
		return fmt.Sprintf("%s has been demoted from admin.\n", target.Username)
	}
	account, err := ctx.DB.GetAccountByUsername(args)
	if err != nil {
		return fmt.Sprintf("Player '%s' not found.\n", args)
	}
	if !account.IsAdmin {
		return fmt.Sprintf("Account '%s' is not an admin.\n", account.Username)
	}
	if err := ctx.DB.SetAdmin(account.ID, false); err != nil {
		return fmt.Sprintf("Failed to demote account: %v\n", err)
	}
	logger.Always("admin action", "action", "demote", "admin", ctx.User.Username, "target_account", account.Username, "target_online", false)
	return fmt.Sprintf("Account '%s' has been demoted from admin.\n", account.Username)
}

func adminBan(ctx *Context, args string) string {
	if ctx.DB == nil {
		return "Account management is not available.\n"
	}
	words := strings.Fields(args)
	if len(words) == 0 {
		return "Usage: admin ban <player_name> [reason]\n"
	}
	targetName := words[0]
	reason := strings.TrimSpace(strings.TrimPrefix(args, targetName))

	var accountID int64
	var accountUsername string

	if target, ok := ctx.World.FindUser(targetName); ok {
		if target.HasFlag("admin") {
			return "Cannot ban an admin account.\n"
		}
		account, err := ctx.DB.GetAccountByUsername(target.Username)
		if err != nil {
			return fmt.Sprintf("Account for '%s' not found.\n", target.Username)
		}
		accountID = account.ID
		accountUsername = account.Username

		kickMsg := "\n*** YOU HAVE BEEN BANNED"
		if reason != "" {
			kickMsg += ": " + reason
		}
		kickMsg += " ***\n"
		if client, ok := ctx.Manager.ClientFor(target.Username); ok {
			client.Send(kickMsg)
			client.Conn.Close()
		}
	} else {
		account, err := ctx.DB.GetAccountByUsername(targetName)
		if err != nil {
			return fmt.Sprintf("Player '%s' not found.\n", targetName)
		}
		if account.IsAdmin {
			return "Cannot ban an admin account.\n"
		}
		if account.Banned {
			return fmt.Sprintf("Account '%s' is already banned.\n", account.Username)
		}
		accountID = account.ID
		accountUsername = account.Username
	}

	if err := ctx.DB.BanAccount(accountID); err != nil {
		return fmt.Sprintf("Failed to ban account: %v\n", err)
	}
	logger.Always("admin action", "action", "ban", "admin", ctx.User.Username, "target_account", accountUsername, "reason", reason)
	if reason != "" {
		return fmt.Sprintf("Account '%s' has been banned. Reason: %s\n", accountUsername, reason)
	}
	return fmt.Sprintf("Account '%s' has been banned.\n", accountUsername)
}

func adminUnban(ctx *Context, args string) string {
	if ctx.DB == nil {
		return "Account management is not available.\n"
	}
	if args == "" {
		return "Usage: admin unban <username>\n"
	}
	account, err := ctx.DB.GetAccountByUsername(args)
	if err != nil {
		return fmt.Sprintf("Account '%s' not found.\n", args)
	}
	if !account.Banned {
		return fmt.Sprintf("Account '%s' is not banned.\n", args)
	}
	if err := ctx.DB.UnbanAccount(account.ID); err != nil {
		return fmt.Sprintf("Failed to unban account: %v\n", err)
	}
	logger.Always("admin action", "action", "unban", "admin", ctx.User.Username, "target_account", args)
	return fmt.Sprintf("Account '%s' has been unbanned.\n", args)
}

func adminKick(ctx *Context, args string) string {
	words := strings.Fields(args)
	if len(words) == 0 {
		return "Usage: admin kick <player_name> [reason]\n"
	}
	targetName := words[0]
	reason := strings.TrimSpace(strings.TrimPrefix(args, targetName))

	client, ok := ctx.Manager.ClientFor(targetName)
	if !ok {
		return fmt.Sprintf("Player '%s' not found or not online.\n", targetName)
	}
	kickMsg := "\n*** You have been disconnected by an administrator."
	if reason != "" {
		kickMsg += ": " + reason
	}
	kickMsg += " ***\n"
	client.Send(kickMsg)
	client.Conn.Close()

	logger.Always("admin action", "action", "kick", "admin", ctx.User.Username, "target", targetName, "reason", reason)
	if reason != "" {
		return fmt.Sprintf("%s has been kicked. Reason: %s\n", targetName, reason)
	}
	return fmt.Sprintf("%s has been kicked.\n", targetName)
}

func adminAnnounce(ctx *Context, args string) string {
	if args == "" {
		return "Usage: admin announce <message>\n"
	}
	announcement := fmt.Sprintf("\n[ANNOUNCEMENT from %s] %s\n", ctx.User.Username, args)
	for _, client := range ctx.Manager.LiveSessions() {
		client.Send(announcement)
	}
	logger.Always("admin action", "action", "announce", "admin", ctx.User.Username, "message", args)
	return "Announcement sent.\n"
}

func adminTeleport(ctx *Context, args string) string {
	words := strings.Fields(args)
	if len(words) < 2 {
		return "Usage: admin teleport <player_name> <room_id>\n"
	}
	targetName, roomID := words[0], words[1]

	target, ok := ctx.World.FindUser(targetName)
	if !ok {
		return fmt.Sprintf("Player '%s' not found or not online.\n", targetName)
	}
	room := ctx.World.GetRoom(roomID)
	if room == nil {
		return fmt.Sprintf("Room '%s' not found.\n", roomID)
	}

	fromRoom := target.CurrentRoomID
	sendToRoom(ctx, fromRoom, target.Username, fmt.Sprintf("%s vanishes in a flash of light!\n", target.Username))
	ctx.World.MoveUser(target.Username, fromRoom, roomID)
	target.CurrentRoomID = roomID
	sendToRoom(ctx, roomID, target.Username, fmt.Sprintf("%s appears in a flash of light!\n", target.Username))

	if client, ok := ctx.Manager.ClientFor(target.Username); ok {
		client.Send(fmt.Sprintf("\n*** You have been teleported by %s ***\n\n%s", ctx.User.Username, session.RenderRoom(ctx.World, target)))
	}

	logger.Always("admin action", "action", "teleport", "admin", ctx.User.Username, "target", target.Username, "destination", roomID)
	return fmt.Sprintf("%s has been teleported to %s.\n", target.Username, roomID)
}

func adminGoto(ctx *Context, args string) string {
	roomID := strings.TrimSpace(args)
	if roomID == "" {
		return "Usage: admin goto <room_id>\n"
	}
	room := ctx.World.GetRoom(roomID)
	if room == nil {
		return fmt.Sprintf("Room '%s' not found.\n", roomID)
	}

	fromRoom := ctx.User.CurrentRoomID
	sendToRoom(ctx, fromRoom, ctx.User.Username, fmt.Sprintf("%s vanishes in a flash of light!\n", ctx.User.Username))
	ctx.World.MoveUser(ctx.User.Username, fromRoom, roomID)
	ctx.User.CurrentRoomID = roomID
	sendToRoom(ctx, roomID, ctx.User.Username, fmt.Sprintf("%s appears in a flash of light!\n", ctx.User.Username))

	logger.Always("admin action", "action", "goto", "admin", ctx.User.Username, "destination", roomID)
	return fmt.Sprintf("Teleported to %s.\n\n%s", roomID, session.RenderRoom(ctx.World, ctx.User))
}

func adminStats(ctx *Context) string {
	uptime := time.Since(ctx.StartedAt)
	hours := int(uptime.Hours())
	minutes := int(uptime.Minutes()) % 60
	seconds := int(uptime.Seconds()) % 60

	playersOnline := ctx.World.OnlineUserCount()
	roomCount := ctx.World.GetRoomCount()

	var totalAccounts, totalCharacters int
	if ctx.DB != nil {
		totalAccounts, _ = ctx.DB.GetTotalAccounts()
		totalCharacters, _ = ctx.DB.GetTotalCharacters()
	}

	return fmt.Sprintf(`
Server Statistics
=================
Uptime:           %d hours, %d minutes, %d seconds
Players Online:   %d
World Rooms:      %d
Total Accounts:   %d
Total Characters: %d
`,
		hours, minutes, seconds,
		playersOnline,
		roomCount,
		totalAccounts,
		totalCharacters)
}

func adminPlayers(ctx *Context) string {
	sessions := ctx.Manager.LiveSessions()
	if len(sessions) == 0 {
		return "No players online.\n"
	}
	out := "\nOnline Players\n==============\n"
	for _, client := range sessions {
		if client.User == nil {
			continue
		}
		adminTag := ""
		if client.User.HasFlag("admin") {
			adminTag = " [ADMIN]"
		}
		out += fmt.Sprintf("  %s (Lvl %d) - Room: %s - IP: %s%s\n",
			client.User.Username, client.User.Level, client.User.CurrentRoomID, client.Conn.RemoteAddr(), adminTag)
	}
	out += fmt.Sprintf("\nTotal: %d player(s)\n", len(sessions))
	return out
}
