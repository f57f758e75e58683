package world

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RoomDef is one room's on-disk representation: identity, description,
// area membership, flags/features, and its exits keyed by direction.
// Generalized from the teacher's CityRoomDef (internal/tower/city.go),
// dropping the tower's floor-grid generation in favor of a flat,
// area-grouped room graph per spec §4.2.
type RoomDef struct {
	Name             string            `yaml:"name"`
	Description      string            `yaml:"description"`
	DescriptionDay   string            `yaml:"description_day"`
	DescriptionNight string            `yaml:"description_night"`
	AreaID           string            `yaml:"area"`
	GridX            int               `yaml:"grid_x"`
	GridY            int               `yaml:"grid_y"`
	Flags            []string          `yaml:"flags"`
	Features         []string          `yaml:"features"`
	Exits            map[string]string `yaml:"exits"`
	LockedExits      map[string]string `yaml:"locked_exits"` // direction -> key item template ID
}

// AreaConfig is the on-disk shape of one area/room YAML file: every room
// belonging to that area, keyed by room ID.
type AreaConfig struct {
	Rooms map[string]RoomDef `yaml:"rooms"`
}

// LoadAreaFromYAML reads one area's room definitions from a YAML file.
func LoadAreaFromYAML(path string) (*AreaConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read area file: %w", err)
	}
	var cfg AreaConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse area YAML %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadRooms populates the world's room registry from an AreaConfig: every
// room is created and registered first, then exits (including locked ones)
// are linked in a second pass so forward references within or across areas
// resolve regardless of map iteration order.
func (w *World) LoadRooms(cfg *AreaConfig) {
	for roomID, def := range cfg.Rooms {
		room := NewRoom(roomID, def.Name, def.Description)
		room.DescriptionDay = def.DescriptionDay
		room.DescriptionNight = def.DescriptionNight
		room.AreaID = def.AreaID
		room.GridX = def.GridX
		room.GridY = def.GridY
		room.Flags = append(room.Flags, def.Flags...)
		for _, f := range def.Features {
			room.AddFeature(f)
		}
		w.AddRoom(room)
	}

	for roomID, def := range cfg.Rooms {
		room := w.GetRoom(roomID)
		if room == nil {
			continue
		}
		for direction, targetID := range def.Exits {
			room.AddExit(direction, targetID)
		}
		for direction, keyID := range def.LockedExits {
			room.LockExit(direction, keyID)
		}
	}
}
