package world

import (
	"fmt"
	"strings"
	"sync"
)

// Exit is one directional connection out of a room. Locked exits require
// the matching KeyID (a item template ID) to pass.
type Exit struct {
	Direction    string
	TargetRoomID string
	Locked       bool
	KeyID        string
}

// Room is the static, shared definition of a location: identity,
// description, exits, and area membership. It never changes once loaded
// except through deliberate admin edits. Room.Exits reference other rooms
// by ID, never by pointer, so rooms can be persisted and reloaded
// independently of each other.
type Room struct {
	ID               string
	Name             string
	Description      string
	DescriptionDay   string // Day-specific description variant
	DescriptionNight string // Night-specific description variant
	AreaID           string
	GridX            int
	GridY            int
	Flags            []string // safe, no-recall, pvp-enabled (see area flag glossary)
	Features         []string // Interactive room features (altar, portal, stairs, etc.)
	Exits            []Exit
}

// NewRoom creates a new static room definition.
func NewRoom(id, name, description string) *Room {
	return &Room{
		ID:          id,
		Name:        name,
		Description: description,
		Flags:       make([]string, 0),
		Features:    make([]string, 0),
		Exits:       make([]Exit, 0),
	}
}

// AddExit appends an exit in the given direction to the target room.
func (r *Room) AddExit(direction, targetRoomID string) {
	r.Exits = append(r.Exits, Exit{Direction: direction, TargetRoomID: targetRoomID})
}

// GetExit returns the exit in the given direction, if any.
func (r *Room) GetExit(direction string) (Exit, bool) {
	for _, e := range r.Exits {
		if e.Direction == direction {
			return e, true
		}
	}
	return Exit{}, false
}

// LockExit marks an existing exit as locked, requiring keyID to pass.
func (r *Room) LockExit(direction, keyID string) {
	for i := range r.Exits {
		if r.Exits[i].Direction == direction {
			r.Exits[i].Locked = true
			r.Exits[i].KeyID = keyID
			return
		}
	}
}

// UnlockExit clears the lock on an exit.
func (r *Room) UnlockExit(direction string) {
	for i := range r.Exits {
		if r.Exits[i].Direction == direction {
			r.Exits[i].Locked = false
			r.Exits[i].KeyID = ""
			return
		}
	}
}

// HasFlag reports whether the room carries a given area flag (safe,
// no-recall, pvp-enabled).
func (r *Room) HasFlag(flag string) bool {
	for _, f := range r.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// HasFeature checks if the room has a specific interactive feature.
func (r *Room) HasFeature(feature string) bool {
	for _, f := range r.Features {
		if f == feature {
			return true
		}
	}
	return false
}

// AddFeature adds a feature to the room, ignoring duplicates.
func (r *Room) AddFeature(feature string) {
	if r.HasFeature(feature) {
		return
	}
	r.Features = append(r.Features, feature)
}

// RemoveFeature removes a feature from the room.
func (r *Room) RemoveFeature(feature string) {
	for i, f := range r.Features {
		if f == feature {
			r.Features = append(r.Features[:i], r.Features[i+1:]...)
			return
		}
	}
}

var featureDescriptions = map[string]string{
	"stairs_up":        "a stairway leading up",
	"stairs_down":      "a stairway leading down",
	"portal":           "a glowing portal",
	"altar":            "an altar for respawning",
	"treasure":         "an opened treasure chest",
	"merchant":         "a merchant's stall",
	"locked_door":      "a locked door",
	"forge":            "a blazing forge",
	"workbench":        "a crafting workbench",
	"alchemy_lab":      "an alchemy laboratory",
	"enchanting_table": "a glowing enchanting table",
}

// describeFeature returns a human-readable phrase for a feature tag,
// falling back to the tag itself for unrecognized features.
func describeFeature(feature string) string {
	if desc, ok := featureDescriptions[feature]; ok {
		return desc
	}
	return feature
}

// RoomState is the mutable, in-world state of a room: what is currently on
// the floor, who is standing in it, and what currency has piled up. It is
// stored separately from the static Room so that reloading room content
// never disturbs what players have dropped there.
type RoomState struct {
	RoomID        string
	ItemInstances []string // item instance IDs currently on the floor
	NPCInstances  []string // NPC instance IDs currently spawned here
	Players       []string // names of players currently in this room
	CurrencyPile  int      // gold sitting on the floor, picked up with "get gold"
	mu            sync.RWMutex
}

// NewRoomState creates empty runtime state for a room.
func NewRoomState(roomID string) *RoomState {
	return &RoomState{
		RoomID:        roomID,
		ItemInstances: make([]string, 0),
		NPCInstances:  make([]string, 0),
		Players:       make([]string, 0),
	}
}

// AddPlayer adds a player to this room's occupant list.
func (s *RoomState) AddPlayer(playerName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Players = append(s.Players, playerName)
}

// RemovePlayer removes a player from this room's occupant list.
func (s *RoomState) RemovePlayer(playerName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, name := range s.Players {
		if name == playerName {
			s.Players = append(s.Players[:i], s.Players[i+1:]...)
			return
		}
	}
}

// GetPlayers returns a copy of the player names currently in this room.
func (s *RoomState) GetPlayers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]string, len(s.Players))
	copy(players, s.Players)
	return players
}

// AddItemInstance drops an item instance onto the room floor.
func (s *RoomState) AddItemInstance(instanceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ItemInstances = append(s.ItemInstances, instanceID)
}

// RemoveItemInstance picks up an item instance from the floor.
func (s *RoomState) RemoveItemInstance(instanceID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, id := range s.ItemInstances {
		if id == instanceID {
			s.ItemInstances = append(s.ItemInstances[:i], s.ItemInstances[i+1:]...)
			return true
		}
	}
	return false
}

// GetItemInstances returns a copy of the item instance IDs on the floor.
func (s *RoomState) GetItemInstances() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, len(s.ItemInstances))
	copy(ids, s.ItemInstances)
	return ids
}

// AddNPCInstance spawns an NPC instance into this room.
func (s *RoomState) AddNPCInstance(instanceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.NPCInstances = append(s.NPCInstances, instanceID)
}

// RemoveNPCInstance removes an NPC instance from this room (death, flee, despawn).
func (s *RoomState) RemoveNPCInstance(instanceID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, id := range s.NPCInstances {
		if id == instanceID {
			s.NPCInstances = append(s.NPCInstances[:i], s.NPCInstances[i+1:]...)
			return true
		}
	}
	return false
}

// GetNPCInstances returns a copy of the NPC instance IDs spawned here.
func (s *RoomState) GetNPCInstances() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, len(s.NPCInstances))
	copy(ids, s.NPCInstances)
	return ids
}

// AddCurrency adds gold to the floor pile.
func (s *RoomState) AddCurrency(amount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CurrencyPile += amount
}

// TakeCurrency removes and returns the entire floor gold pile.
func (s *RoomState) TakeCurrency() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	amount := s.CurrencyPile
	s.CurrencyPile = 0
	return amount
}

// RoomView is the read-only material needed to render a room description
// to a player: the static room plus resolved display names for its
// current occupants, items, and NPCs.
type RoomView struct {
	Room          *Room
	ItemNames     []string
	NPCDescs      []string
	OtherPlayers  []string
	ImplicitExits []string
}

// Describe renders a full room description in the teacher's layout:
// banner, base text, occupants, visible items, exits, and features.
func (r *Room) Describe(baseDesc string, view RoomView) string {
	desc := fmt.Sprintf("\n=== %s ===\n%s\n", r.Name, baseDesc)

	if len(view.NPCDescs) > 0 {
		desc += "\nNPCs here: " + strings.Join(view.NPCDescs, ", ") + "\n"
	}
	if len(view.OtherPlayers) > 0 {
		desc += "\nPlayers here: " + strings.Join(view.OtherPlayers, ", ") + "\n"
	}
	if len(view.ItemNames) > 0 {
		desc += "\nYou can see: " + strings.Join(view.ItemNames, ", ") + "\n"
	}

	exits := make([]string, 0, len(r.Exits)+len(view.ImplicitExits))
	for _, e := range r.Exits {
		exits = append(exits, e.Direction)
	}
	exits = append(exits, view.ImplicitExits...)
	if len(exits) > 0 {
		desc += "\nExits: " + strings.Join(exits, ", ") + "\n"
	}

	if len(r.Features) > 0 {
		featureDescs := make([]string, 0, len(r.Features))
		for _, f := range r.Features {
			featureDescs = append(featureDescs, describeFeature(f))
		}
		desc += "\nFeatures: " + strings.Join(featureDescs, ", ") + "\n"
	}

	return desc
}
