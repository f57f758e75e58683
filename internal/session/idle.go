package session

import (
	"time"

	"github.com/towerkeep/mudcore/internal/logger"
)

// IdleCheckInterval is how often the idle-eviction sweep runs.
const IdleCheckInterval = 30 * time.Second

// StartIdleEviction launches the background sweep that disconnects
// sessions idle past IdleTimeout, skipping anyone the combat-immunity
// hook reports as currently fighting. It returns immediately; the sweep
// stops when Shutdown is called.
func (m *Manager) StartIdleEviction(inCombat func(username string) bool) {
	ticker := time.NewTicker(IdleCheckInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.sweepIdle(inCombat)
			case <-m.shutdown:
				return
			}
		}
	}()
}

func (m *Manager) sweepIdle(inCombat func(username string) bool) {
	if m.IdleTimeout <= 0 {
		return
	}
	for _, c := range m.LiveSessions() {
		if inCombat != nil && inCombat(c.Username) {
			continue
		}
		if c.IdleFor() > m.IdleTimeout {
			c.Send("\nYou have been disconnected for being idle too long.\n")
			logger.Info("idle eviction", "user", c.Username, "idle_for", c.IdleFor())
			c.Conn.Close()
		}
	}
}
