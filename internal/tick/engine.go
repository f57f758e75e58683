// Package tick drives the server's single monotonic tick counter and the
// fixed per-tick step order: effect expiry, resource regeneration, vitals
// regeneration, combat rounds, NPC respawn, cooldowns, and autosave.
package tick

import (
	"sync"
	"time"

	"github.com/towerkeep/mudcore/internal/combat"
	"github.com/towerkeep/mudcore/internal/effect"
	"github.com/towerkeep/mudcore/internal/logger"
)

// RegenTarget is anything that regenerates resources and vitals once per
// tick, such as a connected user (world.User implements it).
type RegenTarget interface {
	ID() string
	RegenTick()
}

// CombatRoom supplies one room's combat pairings for this round and
// receives the results, so the engine never needs to know how rooms or
// sessions are represented.
type CombatRoom struct {
	RoomID   string
	Pairings []combat.Pairing
}

// Engine owns the tick counter and fixed step order described in spec
// §4.5. All hooks it calls into are snapshotted before use so the engine
// itself holds no reference to world/session state beyond what a single
// tick needs.
type Engine struct {
	mu sync.Mutex

	current      int
	intervalMs   int
	saveInterval int
	testMode     bool

	effects *effect.Registry
	combat  *combat.System
	respawn *RespawnQueue
	cools   *CooldownTracker

	collectRegenTargets func() []RegenTarget
	collectCombatRooms  func() []CombatRoom
	onCombatResults     func(roomID string, results []combat.AttackResult)
	onEffectTrigger     func(trigger effect.Trigger)
	onRespawn           func(event RespawnEvent)
	autosave            func()
	onStepComplete      func(tick int, duration time.Duration)

	ticker *time.Ticker
	stop   chan struct{}
}

// New creates a tick engine. intervalMs and saveIntervalTicks come from
// config.TickConfig; testMode disables the internal ticker so callers step
// ticks explicitly via Step.
func New(effects *effect.Registry, combatSystem *combat.System, intervalMs, saveIntervalTicks int, testMode bool) *Engine {
	return &Engine{
		intervalMs:   intervalMs,
		saveInterval: saveIntervalTicks,
		testMode:     testMode,
		effects:      effects,
		combat:       combatSystem,
		respawn:      NewRespawnQueue(),
		cools:        NewCooldownTracker(),
		stop:         make(chan struct{}),
	}
}

// RespawnQueue exposes the engine's respawn queue so callers can enqueue
// NPC deaths.
func (e *Engine) RespawnQueue() *RespawnQueue { return e.respawn }

// Cooldowns exposes the engine's cooldown tracker.
func (e *Engine) Cooldowns() *CooldownTracker { return e.cools }

// Current returns the current tick count.
func (e *Engine) Current() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// OnRegenTargets registers the callback that supplies every entity due for
// resource/vitals regeneration this tick.
func (e *Engine) OnRegenTargets(fn func() []RegenTarget) { e.collectRegenTargets = fn }

// OnCombatRooms registers the callback that supplies each in-combat room's
// pairings for this round.
func (e *Engine) OnCombatRooms(fn func() []CombatRoom) { e.collectCombatRooms = fn }

// OnCombatResults registers the callback invoked with one room's resolved
// attack results immediately after its round runs.
func (e *Engine) OnCombatResults(fn func(roomID string, results []combat.AttackResult)) {
	e.onCombatResults = fn
}

// OnEffectTrigger registers the callback invoked for each effect payload
// that fires this tick (damage, heal, stat refresh).
func (e *Engine) OnEffectTrigger(fn func(trigger effect.Trigger)) { e.onEffectTrigger = fn }

// OnRespawn registers the callback invoked when a queued NPC's respawn
// timer elapses.
func (e *Engine) OnRespawn(fn func(event RespawnEvent)) { e.onRespawn = fn }

// OnAutosave registers the callback invoked every saveInterval ticks.
func (e *Engine) OnAutosave(fn func()) { e.autosave = fn }

// OnStepComplete registers a callback invoked after every Step with the
// tick number and how long the step took, for metrics instrumentation.
func (e *Engine) OnStepComplete(fn func(tick int, duration time.Duration)) { e.onStepComplete = fn }

// Start runs the engine's ticker in the background until Stop is called.
// No-op in test mode; use Step to advance manually instead.
func (e *Engine) Start() {
	if e.testMode {
		return
	}
	e.ticker = time.NewTicker(time.Duration(e.intervalMs) * time.Millisecond)
	go func() {
		for {
			select {
			case <-e.stop:
				return
			case <-e.ticker.C:
				e.Step()
			}
		}
	}()
}

// Stop halts the background ticker.
func (e *Engine) Stop() {
	if e.ticker != nil {
		e.ticker.Stop()
	}
	close(e.stop)
}

// Step advances the tick counter by one and runs the fixed step order. It
// is the critical section: callers must not mutate world state concurrently
// with a Step call (see the concurrency model this engine assumes).
func (e *Engine) Step() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.current++
	t := e.current
	now := time.Now()

	// 1. Effect expiry & periodic triggers.
	if e.effects != nil {
		triggers := e.effects.Advance(t, now)
		if e.onEffectTrigger != nil {
			for _, trig := range triggers {
				e.onEffectTrigger(trig)
			}
		}
	}

	// 2 & 3. Resource regeneration and vitals regeneration.
	if e.collectRegenTargets != nil {
		for _, target := range e.collectRegenTargets() {
			target.RegenTick()
		}
	}

	// 4. Combat rounds, one per room.
	if e.collectCombatRooms != nil && e.combat != nil {
		for _, room := range e.collectCombatRooms() {
			results := e.combat.RunRound(room.Pairings)
			if e.onCombatResults != nil {
				e.onCombatResults(room.RoomID, results)
			}
		}
	}

	// 5. NPC respawn.
	ready := e.respawn.Ready(now)
	for _, event := range ready {
		if e.onRespawn != nil {
			e.onRespawn(event)
		}
	}

	// 6. Cooldowns.
	e.cools.Tick()

	// 7. Autosave.
	if e.saveInterval > 0 && t%e.saveInterval == 0 && e.autosave != nil {
		e.autosave()
	}

	logger.Debug("tick advanced", "tick", t)

	if e.onStepComplete != nil {
		e.onStepComplete(t, time.Since(now))
	}
}
