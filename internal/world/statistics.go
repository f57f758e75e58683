package world

import (
	"encoding/json"
	"sync"
)

// Statistics tracks a user's lifetime activity for the 'score' command and
// the admin dashboard. It is a separate lock from User's own mutex since
// combat, quest, and crafting code all touch it independently of whatever
// field of User they're otherwise updating.
type Statistics struct {
	TotalKills       int             `json:"total_kills"`
	MobKills         map[string]int  `json:"mob_kills"` // npc template ID -> count
	AreasVisited     map[string]bool `json:"areas_visited"`
	GoldAccumulated  int64           `json:"gold_accumulated"` // lifetime gold earned, never decremented on spend
	QuestsCompleted  int            `json:"quests_completed"`
	Deaths           int            `json:"deaths"`
	DamageDealt      int64          `json:"damage_dealt"`
	DamageTaken      int64          `json:"damage_taken"`
	ItemsCrafted     int            `json:"items_crafted"`
	SpellsCast       int            `json:"spells_cast"`
	DistanceTraveled int            `json:"distance_traveled"` // room moves
	mu               sync.RWMutex
}

// NewStatistics creates an empty statistics tracker.
func NewStatistics() *Statistics {
	return &Statistics{
		MobKills:     make(map[string]int),
		AreasVisited: make(map[string]bool),
	}
}

func (s *Statistics) RecordKill(npcTemplateID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.TotalKills++
	if s.MobKills == nil {
		s.MobKills = make(map[string]int)
	}
	s.MobKills[npcTemplateID]++
}

// RecordAreaVisited notes a new area the user has entered; repeat visits
// to an already-known area are no-ops.
func (s *Statistics) RecordAreaVisited(areaID string) {
	if areaID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.AreasVisited == nil {
		s.AreasVisited = make(map[string]bool)
	}
	s.AreasVisited[areaID] = true
}

func (s *Statistics) RecordGoldEarned(amount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.GoldAccumulated += int64(amount)
}

func (s *Statistics) RecordQuestCompleted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.QuestsCompleted++
}

func (s *Statistics) RecordDeath() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Deaths++
}

func (s *Statistics) RecordDamageDealt(amount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DamageDealt += int64(amount)
}

func (s *Statistics) RecordDamageTaken(amount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DamageTaken += int64(amount)
}

func (s *Statistics) RecordItemCrafted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ItemsCrafted++
}

func (s *Statistics) RecordSpellCast() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SpellsCast++
}

func (s *Statistics) RecordMove() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DistanceTraveled++
}

func (s *Statistics) Snapshot() Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	mobKills := make(map[string]int, len(s.MobKills))
	for k, v := range s.MobKills {
		mobKills[k] = v
	}
	areas := make(map[string]bool, len(s.AreasVisited))
	for k, v := range s.AreasVisited {
		areas[k] = v
	}
	return Statistics{
		TotalKills:       s.TotalKills,
		MobKills:         mobKills,
		AreasVisited:     areas,
		GoldAccumulated:  s.GoldAccumulated,
		QuestsCompleted:  s.QuestsCompleted,
		Deaths:           s.Deaths,
		DamageDealt:      s.DamageDealt,
		DamageTaken:      s.DamageTaken,
		ItemsCrafted:     s.ItemsCrafted,
		SpellsCast:       s.SpellsCast,
		DistanceTraveled: s.DistanceTraveled,
	}
}

// MarshalJSON and UnmarshalJSON let Statistics round-trip through the
// persistence store despite the embedded mutex.
func (s *Statistics) MarshalJSON() ([]byte, error) {
	snap := s.Snapshot()
	type alias Statistics
	return json.Marshal((*alias)(&snap))
}

func (s *Statistics) UnmarshalJSON(data []byte) error {
	type alias Statistics
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.TotalKills = a.TotalKills
	s.MobKills = a.MobKills
	s.AreasVisited = a.AreasVisited
	s.GoldAccumulated = a.GoldAccumulated
	s.QuestsCompleted = a.QuestsCompleted
	s.Deaths = a.Deaths
	s.DamageDealt = a.DamageDealt
	s.DamageTaken = a.DamageTaken
	s.ItemsCrafted = a.ItemsCrafted
	s.SpellsCast = a.SpellsCast
	s.DistanceTraveled = a.DistanceTraveled
	if s.MobKills == nil {
		s.MobKills = make(map[string]int)
	}
	if s.AreasVisited == nil {
		s.AreasVisited = make(map[string]bool)
	}
	return nil
}
