package effect

import "time"

// Trigger is one effect's payload firing on a given tick, returned by
// Advance so the caller (the combat system / tick engine) can apply the
// damage, heal, or stat change to the actual target entity.
type Trigger struct {
	TargetID string
	Effect   *Active
}

// Advance runs one tick step of effect expiry and periodic triggers across
// every active effect, per the tick-order spec: for each active effect, if
// its tick interval divides the current tick, fire its payload; then
// decrement remainingTicks and remove anything that has expired.
// Time-based effects are checked against wall-clock instead.
func (r *Registry) Advance(t int, now time.Time) []Trigger {
	r.mu.Lock()
	defer r.mu.Unlock()

	var triggers []Trigger
	var toRemove []string

	for targetID, list := range r.byTarget {
		for _, a := range list {
			if a.DueThisTick(t) {
				triggers = append(triggers, Trigger{TargetID: targetID, Effect: a})
				a.LastTickApplied = t
			}
			if !a.IsTimeBased {
				a.RemainingTicks--
			}
			if a.Expired(now) {
				toRemove = append(toRemove, a.ID)
			}
		}
	}

	for _, id := range toRemove {
		r.removeLocked(id)
	}

	return triggers
}
