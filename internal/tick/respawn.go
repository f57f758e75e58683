package tick

import (
	"sync"
	"time"

	"github.com/towerkeep/mudcore/internal/npc"
)

// RespawnEvent names the template and instance ready to respawn, along
// with the room to reinstate it in. The caller is responsible for actually
// adding the instance back into the world registry and broadcasting the
// appearance message.
type RespawnEvent struct {
	Template *npc.Template
	Instance *npc.Instance
	RoomID   string
}

// RespawnQueue tracks dead NPC instances awaiting their respawn timer,
// generalizing the teacher's RespawnManager off any tower-specific
// bookkeeping: it only ever deals in templates, instances, and times.
type RespawnQueue struct {
	mu      sync.Mutex
	pending []RespawnEvent
}

// NewRespawnQueue creates an empty respawn queue.
func NewRespawnQueue() *RespawnQueue {
	return &RespawnQueue{}
}

// Enqueue adds a dead NPC instance to the queue. The instance's RespawnTime
// must already be set (via Instance.CalculateRespawnTime); an instance
// whose template disables respawn (zero RespawnTime) is dropped.
func (q *RespawnQueue) Enqueue(tpl *npc.Template, inst *npc.Instance) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if inst.GetRespawnTime().IsZero() {
		return
	}
	q.pending = append(q.pending, RespawnEvent{Template: tpl, Instance: inst, RoomID: inst.OriginalRoomID})
}

// Ready removes and returns every queued instance whose respawn time has
// elapsed as of now, resetting each to full health at its original room.
func (q *RespawnQueue) Ready(now time.Time) []RespawnEvent {
	q.mu.Lock()
	defer q.mu.Unlock()

	var ready []RespawnEvent
	var remaining []RespawnEvent
	for _, event := range q.pending {
		respawnAt := event.Instance.GetRespawnTime()
		if now.After(respawnAt) || now.Equal(respawnAt) {
			event.Instance.Reset(event.Template)
			ready = append(ready, event)
		} else {
			remaining = append(remaining, event)
		}
	}
	q.pending = remaining
	return ready
}

// Len returns the number of NPCs currently waiting to respawn.
func (q *RespawnQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
