package tick

import "sync"

// CooldownTracker tracks per-entity, per-ability cooldowns measured in
// ticks, decremented once per tick (step 6 of the tick order).
type CooldownTracker struct {
	mu    sync.Mutex
	ticks map[string]map[string]int
}

// NewCooldownTracker creates an empty cooldown tracker.
func NewCooldownTracker() *CooldownTracker {
	return &CooldownTracker{ticks: make(map[string]map[string]int)}
}

// Set starts a cooldown of durationTicks for entityID's ability.
func (c *CooldownTracker) Set(entityID, abilityID string, durationTicks int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if durationTicks <= 0 {
		return
	}
	abilities, ok := c.ticks[entityID]
	if !ok {
		abilities = make(map[string]int)
		c.ticks[entityID] = abilities
	}
	abilities[abilityID] = durationTicks
}

// Remaining returns the ticks left before entityID's ability is ready.
func (c *CooldownTracker) Remaining(entityID, abilityID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	abilities, ok := c.ticks[entityID]
	if !ok {
		return 0
	}
	return abilities[abilityID]
}

// Ready reports whether entityID's ability has no cooldown remaining.
func (c *CooldownTracker) Ready(entityID, abilityID string) bool {
	return c.Remaining(entityID, abilityID) <= 0
}

// Tick decrements every tracked cooldown by one, pruning entries and
// entities that reach zero.
func (c *CooldownTracker) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for entityID, abilities := range c.ticks {
		for abilityID, remaining := range abilities {
			remaining--
			if remaining <= 0 {
				delete(abilities, abilityID)
			} else {
				abilities[abilityID] = remaining
			}
		}
		if len(abilities) == 0 {
			delete(c.ticks, entityID)
		}
	}
}
