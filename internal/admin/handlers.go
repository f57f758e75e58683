package admin

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/towerkeep/mudcore/internal/database"
)

func (a *API) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"uptime_s":       time.Since(a.startedAt).Seconds(),
		"online_players": len(a.manager.LiveSessions()),
		"room_count":     a.world.GetRoomCount(),
		"world_readonly": a.world.IsReadOnly(),
	})
}

func (a *API) handleGametimeConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"hour":        a.clock.GetHour(),
		"time_string": a.clock.GetTimeString(),
		"time_of_day": a.clock.GetTimeOfDay(),
		"is_day":      a.clock.IsDay(),
	})
}

func (a *API) handleMudConfig(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, a.cfg.Game)
	case http.MethodPost:
		var body struct {
			PilgrimMode *bool `json:"pilgrim_mode"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "malformed request body", http.StatusBadRequest)
			return
		}
		if body.PilgrimMode != nil {
			a.cfg.Game.PilgrimMode = *body.PilgrimMode
		}
		writeJSON(w, http.StatusOK, a.cfg.Game)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (a *API) handleForceSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if a.forceSave == nil {
		http.Error(w, "no persistence configured", http.StatusServiceUnavailable)
		return
	}
	if err := a.forceSave(); err != nil {
		http.Error(w, "save failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"saved": true})
}

func (a *API) handleOnlinePlayers(w http.ResponseWriter, r *http.Request) {
	snapshot := a.world.OnlineUserSnapshot()
	out := make([]map[string]any, 0, len(snapshot))
	for username, roomID := range snapshot {
		u, ok := a.world.FindUser(username)
		if !ok {
			continue
		}
		out = append(out, map[string]any{
			"username": u.Username,
			"level":    u.Level,
			"room_id":  roomID,
			"in_combat": u.CombatTarget != "",
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) handleAllPlayers(w http.ResponseWriter, r *http.Request) {
	if a.db == nil {
		http.Error(w, "no account database configured", http.StatusServiceUnavailable)
		return
	}
	accounts, err := a.db.GetAllAccounts()
	if err != nil {
		http.Error(w, "query failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (a *API) handlePlayerDetails(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimPrefix(r.URL.Path, "/players/details/")
	if username == "" {
		http.Error(w, "missing username", http.StatusBadRequest)
		return
	}
	if u, ok := a.world.FindUser(username); ok {
		writeJSON(w, http.StatusOK, u)
		return
	}
	if a.db != nil {
		if account, err := a.db.GetAccountByUsername(username); err == nil {
			writeJSON(w, http.StatusOK, account)
			return
		}
	}
	http.Error(w, "player not found", http.StatusNotFound)
}

func (a *API) handlePlayerUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	username := strings.TrimPrefix(r.URL.Path, "/players/update/")
	if username == "" {
		http.Error(w, "missing username", http.StatusBadRequest)
		return
	}
	var body struct {
		Level *int  `json:"level"`
		Gold  *int  `json:"gold"`
		Admin *bool `json:"is_admin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}
	u, ok := a.world.FindUser(username)
	if !ok {
		http.Error(w, "player not online", http.StatusNotFound)
		return
	}
	if body.Level != nil {
		u.Level = *body.Level
	}
	if body.Gold != nil {
		u.Currency.Gold = *body.Gold
	}
	if body.Admin != nil && a.db != nil {
		if account, err := a.db.GetAccountByUsername(username); err == nil {
			if err := a.db.SetAdmin(account.ID, *body.Admin); err != nil {
				http.Error(w, "update failed: "+err.Error(), http.StatusInternalServerError)
				return
			}
		}
	}
	writeJSON(w, http.StatusOK, u)
}

func (a *API) handlePlayerDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	username := strings.TrimPrefix(r.URL.Path, "/players/delete/")
	if username == "" {
		http.Error(w, "missing username", http.StatusBadRequest)
		return
	}
	if a.db == nil {
		http.Error(w, "no account database configured", http.StatusServiceUnavailable)
		return
	}
	account, err := a.db.GetAccountByUsername(username)
	if err != nil {
		if err == database.ErrAccountNotFound {
			http.Error(w, "player not found", http.StatusNotFound)
			return
		}
		http.Error(w, "lookup failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	a.manager.Kick(username)
	if err := a.db.BanAccount(account.ID); err != nil {
		http.Error(w, "delete failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": username})
}

// handlePlayerAction dispatches POST /players/{username}/kick and
// POST /players/{username}/monitor, the two routes whose action is the
// path's trailing segment rather than a fixed prefix.
func (a *API) handlePlayerAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/players/"), "/"), "/")
	if len(parts) != 2 {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	username, action := parts[0], parts[1]

	switch action {
	case "kick":
		if !a.manager.Kick(username) {
			http.Error(w, "player not online", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"kicked": username})
	case "monitor":
		a.handleMonitor(w, r, username)
	default:
		http.Error(w, "unknown action", http.StatusNotFound)
	}
}

// handleMonitor streams a target session's output back as
// newline-delimited chunked text for as long as the HTTP client stays
// connected, detaching when the request context is canceled.
func (a *API) handleMonitor(w http.ResponseWriter, r *http.Request, username string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	sink := make(chan string, 32)
	adminToken := r.Header.Get("Authorization")
	if !a.manager.Monitor(adminToken, username, sink) {
		http.Error(w, "player not online or already monitored", http.StatusConflict)
		return
	}
	defer a.manager.StopMonitor(username)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	for {
		select {
		case line, open := <-sink:
			if !open {
				return
			}
			w.Write([]byte(line))
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}

func (a *API) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if a.metrics == nil {
		http.Error(w, "metrics not configured", http.StatusServiceUnavailable)
		return
	}
	a.metrics.Handler().ServeHTTP(w, r)
}
