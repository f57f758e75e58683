// Command mudserver is the server's composition root: it loads every
// ruleset and persisted collection, wires the tick engine to the world and
// session layers, and serves telnet, WebSocket, and admin HTTP traffic
// until signaled to shut down. Grounded on cmd/mud/main.go's flag and
// load-order pattern, adapted from tower/floor generation to the flat
// room-graph world model and from the bespoke Server type to the
// session/command/tick/transport/admin package split.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/towerkeep/mudcore/internal/admin"
	"github.com/towerkeep/mudcore/internal/chatfilter"
	"github.com/towerkeep/mudcore/internal/combat"
	"github.com/towerkeep/mudcore/internal/command"
	"github.com/towerkeep/mudcore/internal/config"
	"github.com/towerkeep/mudcore/internal/crafting"
	"github.com/towerkeep/mudcore/internal/database"
	"github.com/towerkeep/mudcore/internal/effect"
	"github.com/towerkeep/mudcore/internal/help"
	"github.com/towerkeep/mudcore/internal/items"
	"github.com/towerkeep/mudcore/internal/logger"
	"github.com/towerkeep/mudcore/internal/metrics"
	"github.com/towerkeep/mudcore/internal/namefilter"
	"github.com/towerkeep/mudcore/internal/npc"
	"github.com/towerkeep/mudcore/internal/quest"
	"github.com/towerkeep/mudcore/internal/race"
	"github.com/towerkeep/mudcore/internal/session"
	"github.com/towerkeep/mudcore/internal/spells"
	"github.com/towerkeep/mudcore/internal/store"
	"github.com/towerkeep/mudcore/internal/text"
	"github.com/towerkeep/mudcore/internal/tick"
	"github.com/towerkeep/mudcore/internal/transport"
	"github.com/towerkeep/mudcore/internal/world"

	"net/http"
	"time"
)

func main() {
	configFile := flag.String("config", "data/server.yaml", "Path to server config YAML file")
	worldDir := flag.String("world-dir", "data/world", "Directory of area room YAML files")
	npcsFile := flag.String("npcs", "data/npcs.yaml", "Path to NPC templates YAML file")
	itemsFile := flag.String("items", "data/items.yaml", "Path to items YAML file")
	racesFile := flag.String("races", "data/races.yaml", "Path to races YAML file")
	spellsFile := flag.String("spells", "data/spells.yaml", "Path to spells YAML file")
	recipesFile := flag.String("recipes", "data/recipes.yaml", "Path to crafting recipes YAML file")
	questsFile := flag.String("quests", "data/quests.yaml", "Path to quests YAML file")
	helpFile := flag.String("help", "data/help.yaml", "Path to help YAML file")
	textFile := flag.String("text", "data/text.yaml", "Path to text YAML file")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	chatFilterConfig := flag.String("chatfilter", "data/chat_filter.yaml", "Path to chat filter config YAML file")
	nameFilterConfig := flag.String("namefilter", "data/name_filter.yaml", "Path to name filter config YAML file")
	dbFile := flag.String("db", "data/mudcore.db", "Path to account/character database file")
	makeAdmin := flag.String("make-admin", "", "Promote an existing account to admin and exit (requires username)")
	readOnly := flag.Bool("readonly", false, "Run in read-only mode (world changes won't be saved to disk)")
	flag.Parse()

	if *makeAdmin != "" {
		handleMakeAdmin(*makeAdmin, *dbFile)
		return
	}

	logConfig, _ := logger.LoadConfig(*loggingConfig)
	logger.Initialize(logConfig)
	logger.Info("starting mudcore server")

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		logger.Warning("failed to load server config, using defaults", "path", *configFile, "error", err)
	}

	gameWorld := world.NewWorld()
	if *readOnly {
		gameWorld.SetReadOnly(true)
		logger.Info("running in read-only mode")
	}

	loadRooms(gameWorld, *worldDir)
	loadItems(gameWorld, *itemsFile)
	loadNPCs(gameWorld, *npcsFile)
	gameWorld.SpawnConfiguredNPCs()

	if _, err := race.LoadRacesFromYAML(*racesFile); err != nil {
		logger.Warning("failed to load races config", "path", *racesFile, "error", err)
	}

	spellRegistry := spells.NewSpellRegistry()
	if err := spellRegistry.LoadFromYAML(*spellsFile); err != nil {
		logger.Warning("failed to load spells config, magic disabled", "path", *spellsFile, "error", err)
	}

	recipeRegistry := crafting.NewRecipeRegistry()
	if err := recipeRegistry.LoadFromYAML(*recipesFile); err != nil {
		logger.Warning("failed to load recipes config, crafting disabled", "path", *recipesFile, "error", err)
	}

	if err := gameWorld.Quests.LoadFromYAML(*questsFile); err != nil {
		logger.Warning("failed to load quests config, quests disabled", "path", *questsFile, "error", err)
	}

	if err := help.Initialize(*helpFile); err != nil {
		logger.Warning("failed to load help config", "path", *helpFile, "error", err)
	}
	if err := text.Initialize(*textFile); err != nil {
		logger.Warning("failed to load text config", "path", *textFile, "error", err)
	}

	db, err := database.Open(*dbFile)
	if err != nil {
		log.Fatalf("failed to open account database: %v", err)
	}
	defer db.Close()

	persistStore, err := store.Open(cfg.Store)
	if err != nil {
		log.Fatalf("failed to open persistence store: %v", err)
	}
	defer persistStore.Close()

	var chatFilter *chatfilter.ChatFilter
	if filterCfg, err := chatfilter.LoadConfig(*chatFilterConfig); err != nil {
		logger.Warning("failed to load chat filter config", "path", *chatFilterConfig, "error", err)
	} else {
		chatFilter = chatfilter.New(filterCfg)
	}
	var nameFilter *namefilter.NameFilter
	if nameCfg, err := namefilter.LoadConfig(*nameFilterConfig); err != nil {
		logger.Warning("failed to load name filter config", "path", *nameFilterConfig, "error", err)
	} else {
		nameFilter = namefilter.New(nameCfg)
	}

	idleTimeout := time.Duration(cfg.Session.IdleTimeoutMinutes) * time.Minute
	manager := session.NewManager(gameWorld, idleTimeout)
	manager.NameFilter = nameFilter

	dispatcher := command.NewDispatcher(gameWorld, manager, spellRegistry, recipeRegistry, chatFilter, db)

	metricsRegistry := metrics.New()
	manager.OnCommand = func(c *session.ConnectedClient, u *world.User, line string) ([]string, session.State) {
		metricsRegistry.CommandsTotal.Inc()
		return dispatcher.Dispatch(c, u, line)
	}

	effectsRegistry := effect.NewRegistry()
	combatSystem := combat.NewSystem(effectsRegistry)
	tickEngine := tick.New(effectsRegistry, combatSystem, cfg.Tick.IntervalMS, cfg.Tick.SaveIntervalTicks, cfg.Tick.TestMode)

	tickEngine.OnRegenTargets(func() []tick.RegenTarget {
		return command.CollectRegenTargets(gameWorld)
	})
	tickEngine.OnCombatRooms(func() []tick.CombatRoom {
		return command.CollectCombatRooms(gameWorld)
	})
	tickEngine.OnCombatResults(func(roomID string, results []combat.AttackResult) {
		metricsRegistry.CombatRounds.Add(float64(len(results)))
		command.HandleCombatResults(gameWorld, manager, tickEngine.RespawnQueue(), roomID, results)
	})
	tickEngine.OnRespawn(func(event tick.RespawnEvent) {
		metricsRegistry.Respawns.Inc()
		command.HandleRespawn(gameWorld, manager, event)
	})
	tickEngine.OnEffectTrigger(func(trigger effect.Trigger) {
		metricsRegistry.EffectTriggers.Inc()
		command.HandleEffectTrigger(gameWorld, manager, tickEngine.RespawnQueue(), trigger)
	})
	forceSave := func() error {
		return saveWorldCollections(gameWorld, persistStore)
	}
	tickEngine.OnAutosave(func() {
		if gameWorld.IsReadOnly() {
			return
		}
		start := time.Now()
		if err := forceSave(); err != nil {
			metricsRegistry.SaveFailures.Inc()
			logger.Error("autosave failed", "error", err)
			return
		}
		metricsRegistry.SaveDuration.Observe(time.Since(start).Seconds())
	})
	tickEngine.OnStepComplete(func(t int, d time.Duration) {
		metricsRegistry.TicksRun.Inc()
		metricsRegistry.TickDuration.Observe(d.Seconds())
		metricsRegistry.ActiveSessions.Set(float64(len(manager.LiveSessions())))
	})
	tickEngine.Start()
	defer tickEngine.Stop()

	connLimiter := transport.NewConnLimiter(cfg.Connections)

	go func() {
		if err := transport.ListenTelnet(cfg.Listen.TelnetAddr, manager, connLimiter); err != nil {
			log.Fatalf("telnet listener error: %v", err)
		}
	}()
	go func() {
		if err := transport.ListenWebSocket(cfg.Listen.WebSocketAddr, cfg.WebSocket, manager, connLimiter); err != nil {
			log.Fatalf("websocket listener error: %v", err)
		}
	}()

	if cfg.Admin.Token != "" {
		adminAPI := admin.New(cfg, gameWorld, manager, db, gameWorld.Clock, metricsRegistry, forceSave)
		go func() {
			logger.Info("admin panel listening", "addr", cfg.Admin.Addr)
			if err := http.ListenAndServe(cfg.Admin.Addr, adminAPI.Handler()); err != nil {
				logger.Error("admin panel stopped", "error", err)
			}
		}()
	} else {
		logger.Warning("admin panel disabled: no admin.token configured")
	}

	logger.Info("mudcore server running",
		"telnet_addr", cfg.Listen.TelnetAddr,
		"websocket_addr", cfg.Listen.WebSocketAddr,
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down")
	manager.Shutdown()
	if !gameWorld.IsReadOnly() {
		if err := saveWorldCollections(gameWorld, persistStore); err != nil {
			logger.Error("final save failed", "error", err)
		}
	}
	logger.Info("server stopped")
}

func loadRooms(w *world.World, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warning("failed to read world directory, starting with no rooms", "dir", dir, "error", err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		areaCfg, err := world.LoadAreaFromYAML(path)
		if err != nil {
			logger.Warning("failed to load area file", "path", path, "error", err)
			continue
		}
		w.LoadRooms(areaCfg)
	}
	logger.Info("rooms loaded", "count", w.GetRoomCount())
}

func loadItems(w *world.World, path string) {
	cfg, err := items.LoadItemsFromYAML(path)
	if err != nil {
		logger.Warning("failed to load items config", "path", path, "error", err)
		return
	}
	for id, def := range cfg.Items {
		w.AddItemTemplate(items.TemplateFromDefinition(id, def))
	}
}

func loadNPCs(w *world.World, path string) {
	cfg, err := npc.LoadNPCsFromYAML(path)
	if err != nil {
		logger.Warning("failed to load NPC config", "path", path, "error", err)
		return
	}
	for id, def := range cfg.NPCs {
		w.AddNPCTemplate(npc.TemplateFromDefinition(id, def))
	}
}

// saveWorldCollections writes every mutable world collection the store
// layer owns; rooms, item templates, and NPC templates are rule data
// loaded from YAML rather than runtime state, so they aren't part of this
// pass. Per-player persistence continues to flow through
// internal/database, which owns the account/character schema.
func saveWorldCollections(w *world.World, s *store.Store) error {
	if err := s.SaveAll(store.CollectionOnlineUsers, w.OnlineUserSnapshot()); err != nil {
		return fmt.Errorf("save online users: %w", err)
	}
	return nil
}

func handleMakeAdmin(username, dbFile string) {
	db, err := database.Open(dbFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	account, err := db.GetAccountByUsername(username)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: account %q not found\n", username)
		os.Exit(1)
	}
	if account.IsAdmin {
		fmt.Printf("account %q is already an admin\n", username)
		return
	}
	if err := db.SetAdmin(account.ID, true); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to promote account: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("account %q promoted to admin\n", username)
}
