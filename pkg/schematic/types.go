package schematic

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jwebster45206/schematic-engine/pkg/geom"
	"github.com/jwebster45206/schematic-engine/pkg/props"
)

// BlockType selects the construction routine for a block record.
type BlockType int32

const (
	BlockEmpty BlockType = iota
	BlockPrimitive
	BlockLight
	BlockPickup
	BlockWorkstation
	BlockText
	BlockInteractable
	BlockWaypoint
	BlockCapybara
	BlockDoor
	BlockElevator
	BlockPrefab
	BlockSinkhole
	BlockCamera
	BlockGenerator
	BlockLocker
)

var blockTypeNames = map[BlockType]string{
	BlockEmpty:        "Empty",
	BlockPrimitive:    "Primitive",
	BlockLight:        "Light",
	BlockPickup:       "Pickup",
	BlockWorkstation:  "Workstation",
	BlockText:         "Text",
	BlockInteractable: "Interactable",
	BlockWaypoint:     "Waypoint",
	BlockCapybara:     "Capybara",
	BlockDoor:         "Door",
	BlockElevator:     "Elevator",
	BlockPrefab:       "Prefab",
	BlockSinkhole:     "Sinkhole",
	BlockCamera:       "Camera",
	BlockGenerator:    "Generator",
	BlockLocker:       "Locker",
}

// NoParentTypes are built under their parent's transform and then left
// unattached, because the underlying objects manage their own root.
var NoParentTypes = []BlockType{BlockDoor, BlockPrefab, BlockSinkhole}

func (t BlockType) String() string {
	if name, ok := blockTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("BlockType(%d)", int32(t))
}

// Known reports whether t has a construction routine.
func (t BlockType) Known() bool {
	_, ok := blockTypeNames[t]
	return ok
}

// Detached reports whether t is in NoParentTypes.
func (t BlockType) Detached() bool {
	for _, np := range NoParentTypes {
		if t == np {
			return true
		}
	}
	return false
}

// ParseBlockType accepts a type name (case-insensitive) or its integer value.
// Integer values without a routine are returned as-is so the dispatcher can
// fall back for them.
func ParseBlockType(s string) (BlockType, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 32); err == nil {
		return BlockType(n), nil
	}
	for t, name := range blockTypeNames {
		if strings.EqualFold(name, s) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown block type %q", s)
}

func (t *BlockType) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := ParseBlockType(s)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	}

	var n int32
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("block type: %w", err)
	}
	*t = BlockType(n)
	return nil
}

// BlockRecord is one node of a serialized schematic.
type BlockRecord struct {
	Name         string       `json:"Name"`
	ObjectID     int          `json:"ObjectId"`
	ParentID     int          `json:"ParentId"`
	AnimatorName string       `json:"AnimatorName,omitempty"`
	Position     geom.Vector3 `json:"Position"`
	Rotation     geom.Vector3 `json:"Rotation"`
	Scale        geom.Vector3 `json:"Scale"`
	BlockType    BlockType    `json:"BlockType"`
	Properties   props.Bag    `json:"Properties,omitempty"`
}

// Data is a whole schematic document. Blocks whose ParentId equals
// RootObjectID hang directly off the schematic root.
type Data struct {
	RootObjectID int           `json:"RootObjectId"`
	Blocks       []BlockRecord `json:"Blocks"`
}
