package command

import (
	"fmt"
	"strings"

	"github.com/towerkeep/mudcore/internal/logger"
	"github.com/towerkeep/mudcore/internal/session"
)

func registerSocial(d *Dispatcher) {
	d.register("say", false, handleSay)
	d.register("who", false, handleWho)
	d.register("tell", false, handleTell)
	d.alias("tell", "whisper")
	d.register("shout", false, handleShout)
	d.alias("shout", "yell")
	d.register("emote", false, handleEmote)
	d.alias("emote", "me")
	d.register("report", false, handleReport)
	d.register("ignore", false, handleIgnore)
	d.register("unignore", false, handleUnignore)
	d.register("quit", false, handleQuit)
	d.alias("quit", "exit")
}

// filterChat runs a chat message through the configured word filter, if
// any. It returns the (possibly censored) text and whether the message may
// still be sent; a BLOCK-mode violation returns ok=false.
func filterChat(ctx *Context, message string) (string, bool) {
	if ctx.Chat == nil {
		return message, true
	}
	result := ctx.Chat.Check(message)
	if result.Violated && ctx.Chat.IsBlockMode() {
		return "", false
	}
	return result.Filtered, true
}

// sendToRoom delivers a line to every other live session in a room.
func sendToRoom(ctx *Context, roomID, exclude, line string) {
	state := ctx.World.GetRoomState(roomID)
	if state == nil {
		return
	}
	for _, name := range state.GetPlayers() {
		if name == exclude {
			continue
		}
		client, ok := ctx.Manager.ClientFor(name)
		if !ok {
			continue
		}
		client.Send(line)
	}
}

func handleSay(ctx *Context) ([]string, session.State) {
	if ctx.Args == "" {
		return single(ctx, "Say what?\n")
	}
	message, ok := filterChat(ctx, ctx.Args)
	if !ok {
		return single(ctx, "Watch your language.\n")
	}
	sendToRoom(ctx, ctx.User.CurrentRoomID, ctx.User.Username, fmt.Sprintf("%s says: \"%s\"\n", ctx.User.Username, message))
	logger.Always("chat say", "player", ctx.User.Username, "room", ctx.User.CurrentRoomID, "message", message)
	return single(ctx, fmt.Sprintf("You say: \"%s\"\n", message))
}

func handleWho(ctx *Context) ([]string, session.State) {
	snapshot := ctx.World.OnlineUserSnapshot()
	if len(snapshot) == 0 {
		return single(ctx, "No players online.\n")
	}
	out := "Online players:\n"
	for name := range snapshot {
		out += fmt.Sprintf("  - %s\n", name)
	}
	return single(ctx, out)
}

func handleTell(ctx *Context) ([]string, session.State) {
	words := ctx.ArgWords()
	if len(words) < 2 {
		return single(ctx, "Usage: tell <player> <message>\n")
	}
	targetName := words[0]
	message := strings.TrimSpace(strings.TrimPrefix(ctx.Args, targetName))
	message, okFilter := filterChat(ctx, message)
	if !okFilter {
		return single(ctx, "Watch your language.\n")
	}
	target, ok := ctx.World.FindUser(targetName)
	if !ok {
		return single(ctx, fmt.Sprintf("Player '%s' not found.\n", targetName))
	}
	if target.IsIgnoring(ctx.User.Username) {
		logger.Always("chat tell ignored", "sender", ctx.User.Username, "recipient", target.Username, "message", message)
		return single(ctx, fmt.Sprintf("You tell %s: \"%s\"\n", target.Username, message))
	}
	if client, ok := ctx.Manager.ClientFor(target.Username); ok {
		client.Send(fmt.Sprintf("%s tells you: \"%s\"\n", ctx.User.Username, message))
	}
	logger.Always("chat tell", "sender", ctx.User.Username, "recipient", target.Username, "message", message)
	return single(ctx, fmt.Sprintf("You tell %s: \"%s\"\n", target.Username, message))
}

func handleShout(ctx *Context) ([]string, session.State) {
	if ctx.Args == "" {
		return single(ctx, "Shout what?\n")
	}
	message, ok := filterChat(ctx, ctx.Args)
	if !ok {
		return single(ctx, "Watch your language.\n")
	}
	broadcast := fmt.Sprintf("%s shouts: \"%s\"\n", ctx.User.Username, message)
	for name := range ctx.World.OnlineUserSnapshot() {
		if name == ctx.User.Username {
			continue
		}
		if client, ok := ctx.Manager.ClientFor(name); ok {
			client.Send(broadcast)
		}
	}
	logger.Always("chat shout", "player", ctx.User.Username, "message", message)
	return single(ctx, fmt.Sprintf("You shout: \"%s\"\n", message))
}

func handleEmote(ctx *Context) ([]string, session.State) {
	if ctx.Args == "" {
		return single(ctx, "Emote what?\n")
	}
	sendToRoom(ctx, ctx.User.CurrentRoomID, ctx.User.Username, fmt.Sprintf("%s %s\n", ctx.User.Username, ctx.Args))
	logger.Always("chat emote", "player", ctx.User.Username, "room", ctx.User.CurrentRoomID, "action", ctx.Args)
	return single(ctx, fmt.Sprintf("%s %s\n", ctx.User.Username, ctx.Args))
}

func handleReport(ctx *Context) ([]string, session.State) {
	if ctx.Args == "" {
		return single(ctx, "Usage: report <player> <reason>\n")
	}
	logger.Always("player report", "reporter", ctx.User.Username, "detail", ctx.Args)
	return single(ctx, "Your report has been logged. Thank you.\n")
}

func handleIgnore(ctx *Context) ([]string, session.State) {
	if ctx.Args == "" {
		if len(ctx.User.IgnoreList) == 0 {
			return single(ctx, "You aren't ignoring anyone.\n")
		}
		return single(ctx, fmt.Sprintf("Ignoring: %s\n", strings.Join(ctx.User.IgnoreList, ", ")))
	}
	targetName := ctx.ArgWords()[0]
	if strings.EqualFold(targetName, ctx.User.Username) {
		return single(ctx, "You can't ignore yourself.\n")
	}
	if ctx.User.IsIgnoring(targetName) {
		ctx.User.RemoveIgnore(targetName)
		return single(ctx, fmt.Sprintf("You are no longer ignoring %s.\n", targetName))
	}
	ctx.User.AddIgnore(targetName)
	return single(ctx, fmt.Sprintf("You are now ignoring %s.\n", targetName))
}

func handleUnignore(ctx *Context) ([]string, session.State) {
	if ctx.Args == "" {
		return single(ctx, "Usage: unignore <player>\n")
	}
	targetName := ctx.ArgWords()[0]
	ctx.User.RemoveIgnore(targetName)
	return single(ctx, fmt.Sprintf("You are no longer ignoring %s.\n", targetName))
}

func handleQuit(ctx *Context) ([]string, session.State) {
	ctx.Client.Send("Goodbye!\n")
	ctx.Client.Conn.Close()
	return nil, ctx.Client.State
}
