package items

import (
	"time"

	"github.com/google/uuid"
)

// AuditEntry records one mutation of an item instance's custody or state,
// satisfying the optional audit history named in the data model.
type AuditEntry struct {
	At     time.Time
	Action string // e.g. "created", "looted", "traded", "soulbound", "destroyed"
	Actor  string
}

// Instance is a mutable, in-world object that references a Template for
// its static properties. Rooms, inventories, and equipment slots hold
// instance IDs, never Template or *Instance pointers directly, so that an
// instance is never duplicated across two containers.
type Instance struct {
	InstanceID string
	TemplateID string
	CreatedAt  time.Time
	CreatedBy  string

	// Mutable per-object state.
	CustomName        string
	DurabilityCurrent int
	DurabilityMax     int
	Quality           string
	Soulbound         bool
	BoundTo           string
	Charges           int
	Enchantments      []string
	History           []AuditEntry
}

// NewInstance creates a new item instance from a template, seeding
// durability/charges from the template's maximums.
func NewInstance(tpl *Template, createdBy string) *Instance {
	inst := &Instance{
		InstanceID:        uuid.NewString(),
		TemplateID:        tpl.ID,
		CreatedAt:         time.Now(),
		CreatedBy:         createdBy,
		DurabilityCurrent: tpl.MaxDurability,
		DurabilityMax:     tpl.MaxDurability,
		Charges:           tpl.MaxCharges,
		Enchantments:      make([]string, 0),
		History:           make([]AuditEntry, 0, 1),
	}
	inst.History = append(inst.History, AuditEntry{At: inst.CreatedAt, Action: "created", Actor: createdBy})
	return inst
}

// Record appends an audit entry for this instance.
func (i *Instance) Record(action, actor string) {
	i.History = append(i.History, AuditEntry{At: time.Now(), Action: action, Actor: actor})
}

// DisplayName returns the instance's custom name if set, otherwise the
// template's name.
func (i *Instance) DisplayName(tpl *Template) string {
	if i.CustomName != "" {
		return i.CustomName
	}
	if tpl != nil {
		return tpl.Name
	}
	return i.TemplateID
}

// IsBroken returns true if the instance has durability tracking and has
// been worn down to zero.
func (i *Instance) IsBroken() bool {
	return i.DurabilityMax > 0 && i.DurabilityCurrent <= 0
}
