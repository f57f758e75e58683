// Package admin implements the HTTP control panel: a small bearer-token
// authenticated API for operators to inspect and manage a running server
// without a telnet/websocket session of their own. Nothing in the teacher
// repo exposed an HTTP surface at all; grounded on net/http +
// encoding/json, the same ambient HTTP stack internal/transport's
// WebSocket listener already uses, with session issuance modeled on the
// teacher's LoginRateLimiter lockout bookkeeping (an in-memory map guarded
// by a mutex, swept of expired entries).
package admin

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/towerkeep/mudcore/internal/config"
	"github.com/towerkeep/mudcore/internal/database"
	"github.com/towerkeep/mudcore/internal/gametime"
	"github.com/towerkeep/mudcore/internal/logger"
	"github.com/towerkeep/mudcore/internal/metrics"
	"github.com/towerkeep/mudcore/internal/session"
	"github.com/towerkeep/mudcore/internal/world"
)

// API serves the admin HTTP surface described by the control-panel
// endpoint list: stats, game-time/config inspection, forced save, and
// player roster management (list/details/update/kick/monitor/delete).
type API struct {
	cfg       *config.ServerConfig
	world     *world.World
	manager   *session.Manager
	db        *database.Database
	clock     *gametime.GameClock
	metrics   *metrics.Registry
	forceSave func() error
	startedAt time.Time

	mu       sync.Mutex
	sessions map[string]time.Time // session token -> expiry

	monitorMu  sync.Mutex
	monitoring map[string]chan<- string // admin session token -> target sink, for cleanup on logout
}

// New builds an admin API bound to the live server state it reports on.
// forceSave is called by POST /force-save; it's injected rather than
// referencing internal/store directly so admin stays agnostic of which
// persistence backend is active.
func New(cfg *config.ServerConfig, w *world.World, m *session.Manager, db *database.Database, clock *gametime.GameClock, reg *metrics.Registry, forceSave func() error) *API {
	return &API{
		cfg:        cfg,
		world:      w,
		manager:    m,
		db:         db,
		clock:      clock,
		metrics:    reg,
		forceSave:  forceSave,
		startedAt:  time.Now(),
		sessions:   make(map[string]time.Time),
		monitoring: make(map[string]chan<- string),
	}
}

// Handler builds the admin mux. Every route but /session requires a valid
// bearer session token.
func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/session", a.handleIssueSession)
	mux.Handle("/stats", a.authenticated(a.handleStats))
	mux.Handle("/gametimer-config", a.authenticated(a.handleGametimeConfig))
	mux.Handle("/mud-config", a.authenticated(a.handleMudConfig))
	mux.Handle("/force-save", a.authenticated(a.handleForceSave))
	mux.Handle("/players", a.authenticated(a.handleOnlinePlayers))
	mux.Handle("/players/all", a.authenticated(a.handleAllPlayers))
	mux.Handle("/players/details/", a.authenticated(a.handlePlayerDetails))
	mux.Handle("/players/update/", a.authenticated(a.handlePlayerUpdate))
	mux.Handle("/players/delete/", a.authenticated(a.handlePlayerDelete))
	mux.Handle("/pipeline-metrics", a.authenticated(a.handleMetrics))
	// /players/{id}/kick and /players/{id}/monitor are registered under one
	// prefix since the action is the path's last segment.
	mux.Handle("/players/", a.authenticated(a.handlePlayerAction))

	return mux
}

// handleIssueSession trades the static configured admin token for a
// short-lived session token, so the long-lived secret is never replayed on
// every request.
func (a *API) handleIssueSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if a.cfg.Admin.Token == "" {
		http.Error(w, "admin panel disabled", http.StatusServiceUnavailable)
		return
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}
	if subtle.ConstantTimeCompare([]byte(body.Token), []byte(a.cfg.Admin.Token)) != 1 {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	sessionMinutes := a.cfg.Admin.SessionMinutes
	if sessionMinutes <= 0 {
		sessionMinutes = 60
	}

	token := uuid.NewString()
	a.mu.Lock()
	a.sessions[token] = time.Now().Add(time.Duration(sessionMinutes) * time.Minute)
	a.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"session_token": token,
		"expires_in_s":  sessionMinutes * 60,
	})
}

// authenticated wraps a handler with bearer-session validation, returning
// 401 for a missing, unknown, or expired session token.
func (a *API) authenticated(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || token == "" {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}

		a.mu.Lock()
		expiry, known := a.sessions[token]
		if known && time.Now().After(expiry) {
			delete(a.sessions, token)
			known = false
		}
		a.mu.Unlock()

		if !known {
			http.Error(w, "session expired or unknown", http.StatusUnauthorized)
			return
		}
		next(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warning("admin response encode failed", "error", err)
	}
}
