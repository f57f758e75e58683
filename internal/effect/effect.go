// Package effect tracks active status effects (buffs, debuffs,
// damage/heal-over-time, movement and combat blocks) applied to targets,
// and resolves stacking when a new effect of the same type arrives.
package effect

import (
	"time"

	"github.com/google/uuid"
)

// Type enumerates the kinds of effect the tick engine and combat system
// recognize.
type Type string

const (
	TypePoison          Type = "poison"
	TypeRegen           Type = "regen"
	TypeStun            Type = "stun"
	TypeBuff            Type = "buff"
	TypeDebuff          Type = "debuff"
	TypeDOT             Type = "dot"
	TypeHOT             Type = "hot"
	TypeMovementBlock   Type = "movement_block"
	TypeInstantDamage   Type = "instant_damage"
	TypeInstantHeal     Type = "instant_heal"
	TypeHaste           Type = "haste"
	TypeDamageReduction Type = "damage_reduction"
	TypeAbsorb          Type = "absorb"
	TypeTaunt           Type = "taunt"
	TypeStealth         Type = "stealth"
	TypeSlow            Type = "slow"
	TypeFear            Type = "fear"
	TypeSilence         Type = "silence"
	TypeBleed           Type = "bleed"
)

// StackingBehavior determines what happens when a new effect of a type
// already present on a target is applied.
type StackingBehavior string

const (
	// StackReplace discards the old effect instance in favor of the new one.
	StackReplace StackingBehavior = "replace"
	// StackRefresh keeps the old instance but resets remainingTicks to the
	// new effect's full duration.
	StackRefresh StackingBehavior = "refresh"
	// StackDuration keeps one instance whose remaining duration is the sum
	// of the old and new durations.
	StackDuration StackingBehavior = "stack_duration"
	// StackIntensity keeps both instances, tracked separately.
	StackIntensity StackingBehavior = "stack_intensity"
	// StackStrongestWins keeps whichever instance (old or new) has the
	// larger payload magnitude, discarding the other.
	StackStrongestWins StackingBehavior = "strongest_wins"
	// StackIgnore drops the new effect, leaving the existing one untouched.
	StackIgnore StackingBehavior = "ignore"
)

// Payload carries the numeric and behavioral content of an effect.
type Payload struct {
	DamagePerTick int
	HealPerTick   int
	StatModifiers map[string]int
	BlockMovement bool
	BlockCombat   bool
	Metadata      map[string]string
}

// Magnitude returns a single comparable number for STRONGEST_WINS
// resolution: the larger of the absolute damage and heal rates, added to
// the sum of the absolute stat modifiers.
func (p Payload) Magnitude() int {
	m := p.DamagePerTick
	if p.HealPerTick > m {
		m = p.HealPerTick
	}
	for _, v := range p.StatModifiers {
		if v < 0 {
			m += -v
		} else {
			m += v
		}
	}
	return m
}

// Active is one instance of an effect applied to one target.
type Active struct {
	ID               string
	Type             Type
	Name             string
	Description      string
	DurationTicks    int
	RemainingTicks   int
	IsTimeBased      bool // wall-clock expiry instead of tick count
	ExpiresAt        time.Time
	TickInterval     int
	LastTickApplied  int
	Payload          Payload
	TargetID         string
	IsPlayerEffect   bool
	SourceID         string
	StackingBehavior StackingBehavior
}

// New creates an Active effect instance with a fresh instance ID.
func New(targetID, sourceID string, typ Type, stacking StackingBehavior, durationTicks, tickInterval int, payload Payload) *Active {
	return &Active{
		ID:               uuid.NewString(),
		Type:             typ,
		DurationTicks:    durationTicks,
		RemainingTicks:   durationTicks,
		TickInterval:     tickInterval,
		Payload:          payload,
		TargetID:         targetID,
		SourceID:         sourceID,
		StackingBehavior: stacking,
	}
}

// NewTimeBased creates an Active effect that expires at a wall-clock time
// rather than after a tick count, for effects applied outside the tick
// loop (e.g. a stun duration set directly on a combat hit).
func NewTimeBased(targetID, sourceID string, typ Type, stacking StackingBehavior, expiresAt time.Time, payload Payload) *Active {
	return &Active{
		ID:               uuid.NewString(),
		Type:             typ,
		IsTimeBased:      true,
		ExpiresAt:        expiresAt,
		Payload:          payload,
		TargetID:         targetID,
		SourceID:         sourceID,
		StackingBehavior: stacking,
	}
}

// Expired reports whether the effect should be removed: a tick-based
// effect whose RemainingTicks has reached zero, or a time-based effect
// whose ExpiresAt has passed.
func (a *Active) Expired(now time.Time) bool {
	if a.IsTimeBased {
		return !now.Before(a.ExpiresAt)
	}
	return a.RemainingTicks <= 0
}

// DueThisTick reports whether a tick-based effect's payload should fire on
// tick t, per its TickInterval.
func (a *Active) DueThisTick(t int) bool {
	if a.IsTimeBased || a.TickInterval <= 0 {
		return false
	}
	return t%a.TickInterval == 0
}
