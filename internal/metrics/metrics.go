// Package metrics exposes the server's runtime counters to Prometheus,
// scraped through the admin panel's /pipeline-metrics endpoint. Nothing in
// the teacher repo instrumented itself this way; grounded on the
// goldbox-rpg pack entry's use of github.com/prometheus/client_golang for
// the same purpose (request/tick instrumentation on a long-running game
// loop).
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles every counter/gauge/histogram the tick engine, session
// manager, and command dispatcher report into.
type Registry struct {
	reg *prometheus.Registry

	TickDuration   prometheus.Histogram
	TicksRun       prometheus.Counter
	ActiveSessions prometheus.Gauge
	CommandsTotal  prometheus.Counter
	CombatRounds   prometheus.Counter
	EffectTriggers prometheus.Counter
	Respawns       prometheus.Counter
	SaveDuration   prometheus.Histogram
	SaveFailures   prometheus.Counter
}

// New builds and registers every metric against a fresh registry.
func New() *Registry {
	reg := prometheus.NewRegistry()

	m := &Registry{
		reg: reg,
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mud_tick_duration_seconds",
			Help:    "Wall-clock duration of one tick engine step.",
			Buckets: prometheus.DefBuckets,
		}),
		TicksRun: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mud_ticks_total",
			Help: "Total tick engine steps run.",
		}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mud_active_sessions",
			Help: "Currently connected, authenticated sessions.",
		}),
		CommandsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mud_commands_total",
			Help: "Total player commands dispatched.",
		}),
		CombatRounds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mud_combat_rounds_total",
			Help: "Total attack pairings resolved across all rooms.",
		}),
		EffectTriggers: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mud_effect_triggers_total",
			Help: "Total scheduled effect payloads fired.",
		}),
		Respawns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mud_npc_respawns_total",
			Help: "Total NPC instances respawned.",
		}),
		SaveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mud_autosave_duration_seconds",
			Help:    "Wall-clock duration of one autosave pass.",
			Buckets: prometheus.DefBuckets,
		}),
		SaveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mud_autosave_failures_total",
			Help: "Autosave passes that returned an error.",
		}),
	}

	reg.MustRegister(
		m.TickDuration, m.TicksRun, m.ActiveSessions, m.CommandsTotal,
		m.CombatRounds, m.EffectTriggers, m.Respawns, m.SaveDuration, m.SaveFailures,
	)
	return m
}

// Handler returns the HTTP handler the admin panel mounts at
// /pipeline-metrics.
func (m *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
