package effect

import "sync"

// Registry tracks active effects keyed by target, applying stacking rules
// on insertion and offering lookup and removal by instance ID. It has no
// cross-target side effects: applying or removing an effect on one target
// never touches another target's entries.
type Registry struct {
	mu sync.RWMutex
	// byTarget preserves insertion order per target.
	byTarget map[string][]*Active
	// byInstance indexes every active effect by its instance ID, for O(1) lookup.
	byInstance map[string]*Active
}

// NewRegistry creates an empty effect registry.
func NewRegistry() *Registry {
	return &Registry{
		byTarget:   make(map[string][]*Active),
		byInstance: make(map[string]*Active),
	}
}

// Apply inserts a new effect onto its target, resolving stacking against
// any existing effect of the same type on that target. It returns the
// effect instance that ends up active (the existing one on REFRESH,
// STACK_DURATION, or STRONGEST_WINS when the existing payload is at least as
// strong) or nil on IGNORE, where the new effect is discarded.
func (r *Registry) Apply(a *Active) *Active {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := r.findSameType(a.TargetID, a.Type)
	if existing == nil || a.StackingBehavior == StackIntensity {
		r.insert(a)
		return a
	}

	switch a.StackingBehavior {
	case StackReplace:
		r.removeLocked(existing.ID)
		r.insert(a)
		return a
	case StackRefresh:
		existing.RemainingTicks = a.DurationTicks
		existing.ExpiresAt = a.ExpiresAt
		return existing
	case StackDuration:
		existing.RemainingTicks += a.DurationTicks
		return existing
	case StackStrongestWins:
		if a.Payload.Magnitude() > existing.Payload.Magnitude() {
			r.removeLocked(existing.ID)
			r.insert(a)
			return a
		}
		return existing
	case StackIgnore:
		return nil
	default:
		r.insert(a)
		return a
	}
}

func (r *Registry) insert(a *Active) {
	r.byTarget[a.TargetID] = append(r.byTarget[a.TargetID], a)
	r.byInstance[a.ID] = a
}

func (r *Registry) findSameType(targetID string, typ Type) *Active {
	for _, a := range r.byTarget[targetID] {
		if a.Type == typ {
			return a
		}
	}
	return nil
}

// Remove deletes an effect by instance ID: the instance is found through the
// byInstance index, then dropped from its target's list by a linear scan.
// Returns false if no such instance exists.
func (r *Registry) Remove(instanceID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.removeLocked(instanceID)
}

func (r *Registry) removeLocked(instanceID string) bool {
	a, ok := r.byInstance[instanceID]
	if !ok {
		return false
	}
	delete(r.byInstance, instanceID)
	list := r.byTarget[a.TargetID]
	for i, e := range list {
		if e.ID == instanceID {
			r.byTarget[a.TargetID] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(r.byTarget[a.TargetID]) == 0 {
		delete(r.byTarget, a.TargetID)
	}
	return true
}

// RemoveAllForTarget clears every effect on a target, e.g. when the
// target is removed from the world entirely.
func (r *Registry) RemoveAllForTarget(targetID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byTarget[targetID] {
		delete(r.byInstance, a.ID)
	}
	delete(r.byTarget, targetID)
}

// ListForTarget returns the effects active on a target in insertion order.
func (r *Registry) ListForTarget(targetID string) []*Active {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := r.byTarget[targetID]
	out := make([]*Active, len(list))
	copy(out, list)
	return out
}

// Get returns an effect by instance ID, or nil.
func (r *Registry) Get(instanceID string) *Active {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byInstance[instanceID]
}

// HasType reports whether a target currently has an active effect of the given type.
func (r *Registry) HasType(targetID string, typ Type) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findSameType(targetID, typ) != nil
}

// AllTargets returns every target ID that currently has at least one
// active effect, for the tick engine to walk each step.
func (r *Registry) AllTargets() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.byTarget))
	for targetID := range r.byTarget {
		out = append(out, targetID)
	}
	return out
}
