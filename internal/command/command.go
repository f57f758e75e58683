// Package command implements the input pipeline described by the
// CommandDispatcher design: trim and split a line into a verb and
// argument string, resolve aliases and unique prefixes, gate by
// permission/state, and invoke the matching handler against the
// authenticated user and the world it acts on.
//
// Individual verb groups live in their own files (movement.go, items.go,
// combat.go, ...), each registering into the same Dispatcher.
package command

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/towerkeep/mudcore/internal/chatfilter"
	"github.com/towerkeep/mudcore/internal/crafting"
	"github.com/towerkeep/mudcore/internal/database"
	"github.com/towerkeep/mudcore/internal/logger"
	"github.com/towerkeep/mudcore/internal/muderr"
	"github.com/towerkeep/mudcore/internal/session"
	"github.com/towerkeep/mudcore/internal/spells"
	"github.com/towerkeep/mudcore/internal/world"
)

// Context carries everything a handler needs: the parsed verb/args, the
// acting user and their session, and the world they act on.
type Context struct {
	World     *world.World
	Manager   *session.Manager
	Spells    *spells.SpellRegistry
	Recipes   *crafting.RecipeRegistry
	Chat      *chatfilter.ChatFilter
	DB        *database.Database
	StartedAt time.Time
	Client    *session.ConnectedClient
	User      *world.User
	Verb      string
	Args      string
}

// ArgWords splits the argument string on whitespace.
func (ctx *Context) ArgWords() []string {
	if ctx.Args == "" {
		return nil
	}
	return strings.Fields(ctx.Args)
}

// Handler executes one resolved command and returns the lines to print
// plus an optional state transition (e.g. into EDITOR or SNAKE_GAME).
type Handler func(ctx *Context) ([]string, session.State)

type registration struct {
	handler   Handler
	adminOnly bool
}

// Dispatcher owns the verb registry and the world/session it dispatches
// against. One Dispatcher is built at startup and its Dispatch method is
// wired into session.Manager.OnCommand.
type Dispatcher struct {
	World     *world.World
	Manager   *session.Manager
	Spells    *spells.SpellRegistry
	Recipes   *crafting.RecipeRegistry
	Chat      *chatfilter.ChatFilter
	DB        *database.Database
	StartedAt time.Time
	registry  map[string]registration
	aliases   map[string]string
}

// NewDispatcher builds a dispatcher with every built-in verb registered.
// Manager is needed for anything that reaches another live session directly
// (say/tell/shout, admin kick/teleport); handlers that only touch
// world state never need it. spellRegistry may be nil, in which case cast
// reports magic as unavailable. recipes may be nil, in which case crafting
// reports as unavailable. chat may be nil, in which case chat messages pass
// through unfiltered. db may be nil, in which case password changes report
// as unavailable.
func NewDispatcher(w *world.World, m *session.Manager, spellRegistry *spells.SpellRegistry, recipes *crafting.RecipeRegistry, chat *chatfilter.ChatFilter, db *database.Database) *Dispatcher {
	d := &Dispatcher{
		World:     w,
		Manager:   m,
		Spells:    spellRegistry,
		Recipes:   recipes,
		Chat:      chat,
		DB:        db,
		StartedAt: time.Now(),
		registry:  make(map[string]registration),
		aliases:   make(map[string]string),
	}
	registerMovement(d)
	registerItems(d)
	registerSocial(d)
	registerCombat(d)
	registerMagic(d)
	registerCommerce(d)
	registerState(d)
	registerInfo(d)
	registerAdmin(d)
	registerQuests(d)
	registerClass(d)
	registerCrafting(d)
	return d
}

// register adds a canonical command name to the registry.
func (d *Dispatcher) register(name string, adminOnly bool, h Handler) {
	d.registry[name] = registration{handler: h, adminOnly: adminOnly}
}

// alias points one or more extra words at an already-registered canonical
// command. Alias expansion is not recursive: aliasing to another alias
// resolves against whatever the target currently points to, nothing more.
func (d *Dispatcher) alias(canonical string, names ...string) {
	for _, n := range names {
		d.aliases[n] = canonical
	}
}

// resolve expands an alias (if any), then looks for an exact registry
// hit, then falls back to unique-prefix resolution against the canonical
// command names. It returns the matched registration, or a non-nil
// candidate list when the prefix was ambiguous.
func (d *Dispatcher) resolve(verb string) (registration, []string, bool) {
	if canon, ok := d.aliases[verb]; ok {
		verb = canon
	}
	if reg, ok := d.registry[verb]; ok {
		return reg, nil, true
	}
	var candidates []string
	for name := range d.registry {
		if strings.HasPrefix(name, verb) {
			candidates = append(candidates, name)
		}
	}
	if len(candidates) == 1 {
		return d.registry[candidates[0]], nil, true
	}
	sort.Strings(candidates)
	return registration{}, candidates, false
}

// Dispatch implements session.CommandHandler: parse, resolve, permission
// check, invoke. It is assigned to session.Manager.OnCommand at startup.
func (d *Dispatcher) Dispatch(c *session.ConnectedClient, u *world.User, line string) ([]string, session.State) {
	verb, args := splitVerb(line)
	if verb == "" {
		return nil, c.State
	}

	reg, candidates, ok := d.resolve(verb)
	if !ok {
		if len(candidates) > 1 {
			return []string{fmt.Sprintf("Ambiguous command \"%s\": %s\n", verb, strings.Join(candidates, ", "))}, c.State
		}
		return []string{fmt.Sprintf("Unknown command: %s. Type 'help' for available commands.\n", verb)}, c.State
	}

	if reg.adminOnly && !u.HasFlag("admin") {
		logger.Info("admin command denied", "user", u.Username, "command", verb)
		return []string{"You don't have permission to do that.\n"}, c.State
	}

	ctx := &Context{World: d.World, Manager: d.Manager, Spells: d.Spells, Recipes: d.Recipes, Chat: d.Chat, DB: d.DB, StartedAt: d.StartedAt, Client: c, User: u, Verb: verb, Args: args}
	return reg.handler(ctx)
}

// splitVerb lowercases and extracts the first whitespace-separated token
// as the verb; the remainder (trimmed) is the argument string.
func splitVerb(line string) (string, string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", ""
	}
	parts := strings.SplitN(line, " ", 2)
	if len(parts) == 1 {
		return strings.ToLower(parts[0]), ""
	}
	return strings.ToLower(parts[0]), strings.TrimSpace(parts[1])
}

// single wraps one output line as a handler result with no state change,
// the common case for most handlers.
func single(ctx *Context, line string) ([]string, session.State) {
	return []string{line}, ctx.Client.State
}

// lines wraps several output lines as a handler result with no state change.
func lines(ctx *Context, out []string) ([]string, session.State) {
	return out, ctx.Client.State
}

// errLine renders a muderr.Error (or any error) as the output line for
// inline-reportable failures; non-inline errors are logged by the caller
// and shown as a generic message instead.
func errLine(err error) string {
	if me, ok := err.(*muderr.Error); ok {
		if !me.Inline() {
			logger.Error("command handler failed", "error", me)
			return "Something went wrong. Try again.\n"
		}
		return me.Message + "\n"
	}
	return err.Error() + "\n"
}
