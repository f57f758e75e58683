// Package world holds the authoritative registry of rooms, item and NPC
// templates/instances, and the online-player index. Every mutation is
// expected to run from the tick goroutine or a command handler holding the
// world lock; read-only consumers (admin snapshots) are served copies.
package world

import (
	"strings"
	"sync"

	"github.com/towerkeep/mudcore/internal/gametime"
	"github.com/towerkeep/mudcore/internal/items"
	"github.com/towerkeep/mudcore/internal/logger"
	"github.com/towerkeep/mudcore/internal/npc"
	"github.com/towerkeep/mudcore/internal/quest"
)

// World is the central registry for everything that exists in the game:
// static room/item/NPC templates, mutable room/item/NPC instances, and the
// index of who is currently online and where.
type World struct {
	mu sync.RWMutex

	rooms      map[string]*Room
	roomStates map[string]*RoomState

	itemTemplates map[string]*items.Template
	itemInstances map[string]*items.Instance

	npcTemplates map[string]*npc.Template
	npcInstances map[string]*npc.Instance

	users       map[string]*User // lowercased username -> persistent record
	onlineUsers map[string]string // player name -> current room ID

	Clock  *gametime.GameClock
	Quests *quest.QuestRegistry

	readOnly bool
}

// NewWorld creates an empty registry.
func NewWorld() *World {
	return &World{
		rooms:         make(map[string]*Room),
		roomStates:    make(map[string]*RoomState),
		itemTemplates: make(map[string]*items.Template),
		itemInstances: make(map[string]*items.Instance),
		npcTemplates:  make(map[string]*npc.Template),
		npcInstances:  make(map[string]*npc.Instance),
		users:         make(map[string]*User),
		onlineUsers:   make(map[string]string),
		Clock:         gametime.NewGameClock(),
		Quests:        quest.NewQuestRegistry(),
	}
}

// AddRoom registers a static room definition and ensures runtime state exists for it.
func (w *World) AddRoom(room *Room) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.rooms[room.ID] = room
	if _, ok := w.roomStates[room.ID]; !ok {
		w.roomStates[room.ID] = NewRoomState(room.ID)
	}
}

// GetRoom returns the static room definition for an ID, or nil.
func (w *World) GetRoom(id string) *Room {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.rooms[id]
}

// GetRoomState returns the mutable runtime state for a room, or nil.
func (w *World) GetRoomState(id string) *RoomState {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.roomStates[id]
}

// GetStartingRoom returns the default spawn room.
func (w *World) GetStartingRoom() *Room {
	if room := w.GetRoom("human_town_square"); room != nil {
		return room
	}
	return w.GetRoom("town_square")
}

// GetAllRooms returns a snapshot slice of every registered room.
func (w *World) GetAllRooms() []*Room {
	w.mu.RLock()
	defer w.mu.RUnlock()
	rooms := make([]*Room, 0, len(w.rooms))
	for _, room := range w.rooms {
		rooms = append(rooms, room)
	}
	return rooms
}

// GetRoomCount returns the total number of rooms in the world.
func (w *World) GetRoomCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.rooms)
}

// SetReadOnly sets whether the world rejects mutating operations.
func (w *World) SetReadOnly(readOnly bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.readOnly = readOnly
}

// IsReadOnly returns whether the world is in read-only mode.
func (w *World) IsReadOnly() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.readOnly
}

// AddItemTemplate registers a static item template.
func (w *World) AddItemTemplate(tpl *items.Template) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.itemTemplates[tpl.ID] = tpl
}

// GetItemTemplate returns an item template by ID, or nil.
func (w *World) GetItemTemplate(id string) *items.Template {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.itemTemplates[id]
}

// SpawnItemInstance creates a new item instance from a template and
// registers it in the world's instance table; the caller is responsible
// for placing the returned instance ID into a room, inventory, or equipment slot.
func (w *World) SpawnItemInstance(templateID, createdBy string) *items.Instance {
	w.mu.Lock()
	defer w.mu.Unlock()
	tpl, ok := w.itemTemplates[templateID]
	if !ok {
		return nil
	}
	inst := items.NewInstance(tpl, createdBy)
	w.itemInstances[inst.InstanceID] = inst
	return inst
}

// GetItemInstance returns an item instance by ID, or nil.
func (w *World) GetItemInstance(id string) *items.Instance {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.itemInstances[id]
}

// ItemTemplateForInstance chains an item instance ID to its template,
// returning nil if either lookup misses.
func (w *World) ItemTemplateForInstance(instanceID string) *items.Template {
	w.mu.RLock()
	defer w.mu.RUnlock()
	inst, ok := w.itemInstances[instanceID]
	if !ok {
		return nil
	}
	return w.itemTemplates[inst.TemplateID]
}

// EquippedTemplateResolver returns a resolver bound to this world's item
// tables, suitable for User.ArmorClass and UserFighter.Resolve.
func (w *World) EquippedTemplateResolver() EquippedTemplateResolver {
	return w.ItemTemplateForInstance
}

// FighterFor adapts a user into a combat.Fighter bound to this world's
// item tables, for building one round's attack pairings.
func (w *World) FighterFor(u *User) UserFighter {
	return UserFighter{User: u, Resolve: w.EquippedTemplateResolver()}
}

// RegisterItemInstance adds an already-constructed instance (e.g. loaded
// from persistence) to the instance table.
func (w *World) RegisterItemInstance(inst *items.Instance) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.itemInstances[inst.InstanceID] = inst
}

// RemoveItemInstance deletes an item instance from the world entirely
// (consumed, destroyed). Callers must first remove its ID from whatever
// container held it.
func (w *World) RemoveItemInstance(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.itemInstances, id)
}

// AddNPCTemplate registers a static NPC template.
func (w *World) AddNPCTemplate(tpl *npc.Template) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.npcTemplates[tpl.ID] = tpl
}

// GetNPCTemplate returns an NPC template by ID, or nil.
func (w *World) GetNPCTemplate(id string) *npc.Template {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.npcTemplates[id]
}

// SpawnNPCInstance creates a new NPC instance from a template at roomID,
// registers it, and adds it to that room's runtime state.
func (w *World) SpawnNPCInstance(templateID, roomID string) *npc.Instance {
	w.mu.Lock()
	tpl, ok := w.npcTemplates[templateID]
	if !ok {
		w.mu.Unlock()
		return nil
	}
	inst := npc.NewInstance(tpl, roomID)
	w.npcInstances[inst.InstanceID] = inst
	state := w.roomStates[roomID]
	w.mu.Unlock()

	if state != nil {
		state.AddNPCInstance(inst.InstanceID)
	}
	logger.Info("Spawned NPC", "npc", tpl.Name, "instance", inst.InstanceID, "room", roomID)
	return inst
}

// GetNPCInstance returns an NPC instance by ID, or nil.
func (w *World) GetNPCInstance(id string) *npc.Instance {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.npcInstances[id]
}

// RegisterNPCInstance adds an already-constructed instance to the instance table.
func (w *World) RegisterNPCInstance(inst *npc.Instance) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.npcInstances[inst.InstanceID] = inst
}

// AllNPCInstances returns a snapshot slice of every NPC instance, for the
// tick engine to walk each step.
func (w *World) AllNPCInstances() []*npc.Instance {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*npc.Instance, 0, len(w.npcInstances))
	for _, inst := range w.npcInstances {
		out = append(out, inst)
	}
	return out
}

// RegisterUser adds a newly-created or freshly-loaded character record to
// the authoritative user table, keyed case-insensitively.
func (w *World) RegisterUser(u *User) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.users[strings.ToLower(u.Username)] = u
}

// FindUser looks up a persistent user record by username, or reports false
// if no such character has ever been created.
func (w *World) FindUser(username string) (*User, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	u, ok := w.users[strings.ToLower(username)]
	return u, ok
}

// AllUsers returns a snapshot slice of every known user record, for autosave
// and admin listing.
func (w *World) AllUsers() []*User {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*User, 0, len(w.users))
	for _, u := range w.users {
		out = append(out, u)
	}
	return out
}

// MoveUser atomically updates the online index so a player is recorded in
// exactly one room at a time, transferring them between the two rooms'
// runtime state.
func (w *World) MoveUser(playerName, fromRoomID, toRoomID string) {
	w.mu.Lock()
	w.onlineUsers[playerName] = toRoomID
	fromState := w.roomStates[fromRoomID]
	toState := w.roomStates[toRoomID]
	w.mu.Unlock()

	if fromState != nil {
		fromState.RemovePlayer(playerName)
	}
	if toState != nil {
		toState.AddPlayer(playerName)
	}
}

// AddOnlineUser records a freshly-connected player's starting room.
func (w *World) AddOnlineUser(playerName, roomID string) {
	w.mu.Lock()
	w.onlineUsers[playerName] = roomID
	state := w.roomStates[roomID]
	w.mu.Unlock()
	if state != nil {
		state.AddPlayer(playerName)
	}
}

// RemoveOnlineUser drops a player from the online index on disconnect.
func (w *World) RemoveOnlineUser(playerName string) {
	w.mu.Lock()
	roomID, ok := w.onlineUsers[playerName]
	delete(w.onlineUsers, playerName)
	var state *RoomState
	if ok {
		state = w.roomStates[roomID]
	}
	w.mu.Unlock()
	if state != nil {
		state.RemovePlayer(playerName)
	}
}

// GetUserRoom returns the room ID a player currently occupies, or "" if offline.
func (w *World) GetUserRoom(playerName string) string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.onlineUsers[playerName]
}

// OnlineUserSnapshot returns a copy of the online player -> room index, for
// admin consumers; it never exposes the live map.
func (w *World) OnlineUserSnapshot() map[string]string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make(map[string]string, len(w.onlineUsers))
	for name, room := range w.onlineUsers {
		out[name] = room
	}
	return out
}

// OnlineUserCount returns the number of players currently online.
func (w *World) OnlineUserCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.onlineUsers)
}

// SpawnConfiguredNPCs instantiates one NPC instance per registered
// template at each of its configured spawn locations. Called once at
// server startup after templates and rooms are loaded.
func (w *World) SpawnConfiguredNPCs() {
	w.mu.RLock()
	templates := make([]*npc.Template, 0, len(w.npcTemplates))
	for _, tpl := range w.npcTemplates {
		templates = append(templates, tpl)
	}
	w.mu.RUnlock()

	spawned := 0
	for _, tpl := range templates {
		for _, roomID := range tpl.Locations {
			if w.GetRoom(roomID) == nil {
				logger.Warning("Room not found for NPC location", "npc", tpl.Name, "room", roomID)
				continue
			}
			if w.SpawnNPCInstance(tpl.ID, roomID) != nil {
				spawned++
			}
		}
	}
	logger.Info("NPC population complete", "instances_spawned", spawned)
}
