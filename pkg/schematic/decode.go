package schematic

import (
	"fmt"
	"strconv"

	"github.com/jwebster45206/schematic-engine/pkg/geom"
	"github.com/jwebster45206/schematic-engine/pkg/props"
)

// Spec is the typed, validated form of one record's properties. There is one
// implementation per block type.
type Spec interface {
	BlockType() BlockType
}

// Decoded is a record whose properties have been read into its Spec.
type Decoded struct {
	Record *BlockRecord
	Spec   Spec
	// Static marks toys that never move and need no network smoothing.
	Static bool
}

type EmptySpec struct{}

// UnknownSpec is produced for block types without a construction routine.
type UnknownSpec struct {
	Type BlockType
}

type PrimitiveSpec struct {
	Shape PrimitiveType
	Color geom.Color
	Flags PrimitiveFlags
}

type LightSpec struct {
	Type      LightType
	Color     geom.Color
	Intensity float32
	Range     float32
	Shadows   ShadowConfig
}

// ShadowConfig is either LegacyShadows or ShadowSettings.
type ShadowConfig interface {
	apply(l *Light)
}

// LegacyShadows is the older on/off shadow toggle.
type LegacyShadows struct {
	Enabled bool
}

func (s LegacyShadows) apply(l *Light) {
	if s.Enabled {
		l.Shadows = ShadowsSoft
	} else {
		l.Shadows = ShadowsNone
	}
}

// ShadowSettings is the full shadow and light shape configuration.
type ShadowSettings struct {
	Mode           ShadowMode
	Shape          LightShape
	SpotAngle      float32
	InnerSpotAngle float32
	Strength       float32
}

func (s ShadowSettings) apply(l *Light) {
	l.Shadows = s.Mode
	l.Shape = s.Shape
	l.SpotAngle = s.SpotAngle
	l.InnerSpotAngle = s.InnerSpotAngle
	l.ShadowStrength = s.Strength
}

type PickupSpec struct {
	// Chance is the spawn chance in percent; nil always spawns.
	Chance *float32
	Item   ItemType
	Locked bool
}

type WorkstationSpec struct {
	Interactable bool
}

type TextSpec struct {
	Text        string
	DisplaySize geom.Vector2
}

type InteractableSpec struct {
	Shape    ColliderShape
	Duration float32
	Locked   bool
}

type WaypointSpec struct{}

type CapybaraSpec struct {
	CollidersEnabled bool
}

// DoorSpec leaves every field but Type zero when Type has no archetype.
type DoorSpec struct {
	Type        DoorType
	Breakable   *BreakableState
	Opened      bool
	Permissions Permissions
	Locked      bool
}

type ElevatorDoorSpec struct {
	Position geom.Vector3
	Target   geom.Vector3
	Top      geom.Vector3
	Bottom   geom.Vector3
}

type ElevatorSpec struct {
	Type        ElevatorType
	Doors       []ElevatorDoorSpec
	InitialDoor int
}

type PrefabSpec struct {
	// Ref is a numeric registry id or a template name.
	Ref string
}

type SinkholeSpec struct {
	Spawn geom.Transform
}

type CameraSpec struct {
	Type       CameraType
	Vertical   geom.Vector2
	Horizontal geom.Vector2
	Zoom       geom.Vector2
	Label      string
}

type GeneratorSpec struct {
	RequiredPermissions Permissions
	ActivationTime      float32
	DeactivationTime    float32
	IsOpen              bool
	IsUnlocked          bool
	Engaged             bool
}

// LockerItem is one weighted entry of a chamber loot table.
type LockerItem struct {
	Item   string  `json:"Item"`
	Count  uint32  `json:"Count"`
	Chance float32 `json:"Chance"`
}

// LockerSpec leaves every field after Type zero when Type has no archetype.
type LockerSpec struct {
	Chance      int32
	Type        LockerType
	Permissions Permissions
	Shuffle     bool
	Chambers    map[int][]LockerItem
}

func (EmptySpec) BlockType() BlockType        { return BlockEmpty }
func (s UnknownSpec) BlockType() BlockType    { return s.Type }
func (PrimitiveSpec) BlockType() BlockType    { return BlockPrimitive }
func (LightSpec) BlockType() BlockType        { return BlockLight }
func (PickupSpec) BlockType() BlockType       { return BlockPickup }
func (WorkstationSpec) BlockType() BlockType  { return BlockWorkstation }
func (TextSpec) BlockType() BlockType         { return BlockText }
func (InteractableSpec) BlockType() BlockType { return BlockInteractable }
func (WaypointSpec) BlockType() BlockType     { return BlockWaypoint }
func (CapybaraSpec) BlockType() BlockType     { return BlockCapybara }
func (DoorSpec) BlockType() BlockType         { return BlockDoor }
func (ElevatorSpec) BlockType() BlockType     { return BlockElevator }
func (PrefabSpec) BlockType() BlockType       { return BlockPrefab }
func (SinkholeSpec) BlockType() BlockType     { return BlockSinkhole }
func (CameraSpec) BlockType() BlockType       { return BlockCamera }
func (GeneratorSpec) BlockType() BlockType    { return BlockGenerator }
func (LockerSpec) BlockType() BlockType       { return BlockLocker }

// Decode reads every property the record's block type needs. Missing or
// malformed properties fail here, before anything is spawned. Decode has
// no side effects and needs no collaborators.
func Decode(rec *BlockRecord) (Decoded, error) {
	p := rec.Properties

	static, err := p.BoolOr("Static", false)
	if err != nil {
		return Decoded{}, blockError(rec, err)
	}

	var spec Spec
	switch rec.BlockType {
	case BlockEmpty:
		spec = EmptySpec{}
	case BlockPrimitive:
		spec, err = decodePrimitive(p, rec.Scale)
	case BlockLight:
		spec, err = decodeLight(p)
	case BlockPickup:
		spec, err = decodePickup(p)
	case BlockWorkstation:
		spec, err = decodeWorkstation(p)
	case BlockText:
		spec, err = decodeText(p)
	case BlockInteractable:
		spec, err = decodeInteractable(p)
	case BlockWaypoint:
		spec = WaypointSpec{}
	case BlockCapybara:
		spec, err = decodeCapybara(p)
	case BlockDoor:
		spec, err = decodeDoor(p)
	case BlockElevator:
		spec, err = decodeElevator(p)
	case BlockPrefab:
		spec, err = decodePrefab(p)
	case BlockSinkhole:
		spec = SinkholeSpec{Spawn: geom.Transform{
			Position: rec.Position,
			Rotation: geom.Euler(rec.Rotation),
			Scale:    rec.Scale,
		}}
	case BlockCamera:
		spec, err = decodeCamera(p)
	case BlockGenerator:
		spec, err = decodeGenerator(p)
	case BlockLocker:
		spec, err = decodeLocker(p)
	default:
		spec = UnknownSpec{Type: rec.BlockType}
	}
	if err != nil {
		return Decoded{}, blockError(rec, err)
	}

	return Decoded{Record: rec, Spec: spec, Static: static}, nil
}

func decodePrimitive(p props.Bag, scale geom.Vector3) (Spec, error) {
	var s PrimitiveSpec
	var err error

	if s.Shape, err = props.Enum[PrimitiveType](p, "PrimitiveType"); err != nil {
		return nil, err
	}
	if s.Color, err = p.Color("Color"); err != nil {
		return nil, err
	}

	if p.Has("PrimitiveFlags") {
		flags, err := p.Uint8("PrimitiveFlags")
		if err != nil {
			return nil, err
		}
		s.Flags = PrimitiveFlags(flags)
	} else {
		s.Flags = legacyPrimitiveFlags(scale)
	}
	return s, nil
}

// legacyPrimitiveFlags derives flags for schematics written before flags
// existed, when a negative X scale meant "not collidable".
func legacyPrimitiveFlags(scale geom.Vector3) PrimitiveFlags {
	flags := PrimitiveVisible
	if scale.X >= 0 {
		flags |= PrimitiveCollidable
	}
	return flags
}

func decodeLight(p props.Bag) (Spec, error) {
	var s LightSpec
	var err error

	if s.Type, err = props.EnumOr(p, "LightType", LightPoint); err != nil {
		return nil, err
	}
	if s.Color, err = p.Color("Color"); err != nil {
		return nil, err
	}
	if s.Intensity, err = p.Float32("Intensity"); err != nil {
		return nil, err
	}
	if s.Range, err = p.Float32("Range"); err != nil {
		return nil, err
	}

	if p.Has("Shadows") {
		s.Shadows, err = decodeLegacyShadows(p)
	} else {
		s.Shadows, err = decodeShadowSettings(p)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func decodeLegacyShadows(p props.Bag) (ShadowConfig, error) {
	enabled, err := p.Bool("Shadows")
	if err != nil {
		return nil, err
	}
	return LegacyShadows{Enabled: enabled}, nil
}

func decodeShadowSettings(p props.Bag) (ShadowConfig, error) {
	var s ShadowSettings
	var err error

	if s.Mode, err = props.Enum[ShadowMode](p, "ShadowType"); err != nil {
		return nil, err
	}
	if s.Shape, err = props.Enum[LightShape](p, "Shape"); err != nil {
		return nil, err
	}
	if s.SpotAngle, err = p.Float32("SpotAngle"); err != nil {
		return nil, err
	}
	if s.InnerSpotAngle, err = p.Float32("InnerSpotAngle"); err != nil {
		return nil, err
	}
	if s.Strength, err = p.Float32("ShadowStrength"); err != nil {
		return nil, err
	}
	return s, nil
}

func decodePickup(p props.Bag) (Spec, error) {
	var s PickupSpec
	var err error

	if p.Has("Chance") {
		chance, err := p.Float32("Chance")
		if err != nil {
			return nil, err
		}
		s.Chance = &chance
	}
	if s.Item, err = props.Enum[ItemType](p, "ItemType"); err != nil {
		return nil, err
	}
	s.Locked = p.Has("Locked")
	return s, nil
}

func decodeWorkstation(p props.Bag) (Spec, error) {
	interactable, err := p.BoolOr("IsInteractable", false)
	if err != nil {
		return nil, err
	}
	return WorkstationSpec{Interactable: interactable}, nil
}

func decodeText(p props.Bag) (Spec, error) {
	var s TextSpec
	var err error

	if s.Text, err = p.String("Text"); err != nil {
		return nil, err
	}
	if s.DisplaySize, err = p.Vector2("DisplaySize"); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeInteractable(p props.Bag) (Spec, error) {
	var s InteractableSpec
	var err error

	if s.Shape, err = props.Enum[ColliderShape](p, "Shape"); err != nil {
		return nil, err
	}
	if s.Duration, err = p.Float32("InteractionDuration"); err != nil {
		return nil, err
	}
	if s.Locked, err = p.BoolOr("IsLocked", false); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeCapybara(p props.Bag) (Spec, error) {
	enabled, err := p.Bool("CollidersEnabled")
	if err != nil {
		return nil, err
	}
	return CapybaraSpec{CollidersEnabled: enabled}, nil
}

func decodeDoor(p props.Bag) (Spec, error) {
	var s DoorSpec
	var err error

	if s.Type, err = props.Enum[DoorType](p, "DoorType"); err != nil {
		return nil, err
	}
	if _, ok := s.Type.Archetype(); !ok {
		return s, nil
	}

	if s.Type.Breakable() {
		if s.Breakable, err = decodeBreakable(p); err != nil {
			return nil, err
		}
	}

	if s.Opened, err = p.Bool("SpawnOpened"); err != nil {
		return nil, err
	}
	if s.Permissions, err = props.Enum[Permissions](p, "Permissions"); err != nil {
		return nil, err
	}
	if s.Locked, err = p.Bool("Locked"); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeBreakable(p props.Bag) (*BreakableState, error) {
	var b BreakableState
	var err error

	if b.RemainingHealth, err = p.Float32("Health"); err != nil {
		return nil, err
	}
	if b.IgnoredDamageSources, err = props.Enum[DamageSources](p, "IgnoredDamageSources"); err != nil {
		return nil, err
	}
	if b.IsDestroyed, err = p.Bool("IsDestroyed"); err != nil {
		return nil, err
	}
	interactable, err := p.Bool("Interactable")
	if err != nil {
		return nil, err
	}
	b.NonInteractable = !interactable
	if b.Scp106Passable, err = p.Bool("Scp106Passable"); err != nil {
		return nil, err
	}
	return &b, nil
}

func decodeElevator(p props.Bag) (Spec, error) {
	var s ElevatorSpec
	var err error

	if s.Type, err = props.Enum[ElevatorType](p, "ElevatorType"); err != nil {
		return nil, err
	}
	if _, ok := s.Type.Archetype(); !ok {
		return s, nil
	}

	count, err := p.Int32("DoorCount")
	if err != nil {
		return nil, err
	}
	for i := 0; i < int(count); i++ {
		door, err := decodeElevatorDoor(p, i)
		if err != nil {
			return nil, err
		}
		s.Doors = append(s.Doors, door)
	}

	initial, err := p.Int32("InitialDoor")
	if err != nil {
		return nil, err
	}
	if initial < 0 || int(initial) >= len(s.Doors) {
		return nil, fmt.Errorf("InitialDoor %d with %d doors: %w", initial, len(s.Doors), ErrIndexOutOfRange)
	}
	s.InitialDoor = int(initial)
	return s, nil
}

func decodeElevatorDoor(p props.Bag, i int) (ElevatorDoorSpec, error) {
	var d ElevatorDoorSpec
	var err error

	prefix := "Door-" + strconv.Itoa(i) + "-"
	if d.Position, err = p.Vector3(prefix + "doorPosition"); err != nil {
		return d, err
	}
	if d.Target, err = p.Vector3(prefix + "targetPosition"); err != nil {
		return d, err
	}
	if d.Top, err = p.Vector3(prefix + "topPosition"); err != nil {
		return d, err
	}
	if d.Bottom, err = p.Vector3(prefix + "bottomPosition"); err != nil {
		return d, err
	}
	return d, nil
}

func decodePrefab(p props.Bag) (Spec, error) {
	ref, err := p.String("Prefab")
	if err != nil {
		return nil, err
	}
	return PrefabSpec{Ref: ref}, nil
}

func decodeCamera(p props.Bag) (Spec, error) {
	var s CameraSpec
	var err error

	if s.Type, err = props.Enum[CameraType](p, "CameraType"); err != nil {
		return nil, err
	}
	if _, ok := s.Type.Archetype(); !ok {
		return s, nil
	}

	if s.Vertical, err = p.Vector2("VerticalConstraint"); err != nil {
		return nil, err
	}
	if s.Horizontal, err = p.Vector2("HorizontalConstraint"); err != nil {
		return nil, err
	}
	if s.Zoom, err = p.Vector2("ZoomConstraint"); err != nil {
		return nil, err
	}
	if s.Label, err = p.String("Label"); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeGenerator(p props.Bag) (Spec, error) {
	var s GeneratorSpec
	var err error

	if s.RequiredPermissions, err = props.Enum[Permissions](p, "RequiredPermissions"); err != nil {
		return nil, err
	}
	if s.ActivationTime, err = p.Float32("ActivationTime"); err != nil {
		return nil, err
	}
	if s.DeactivationTime, err = p.Float32("DeactivationTime"); err != nil {
		return nil, err
	}
	if s.IsOpen, err = p.Bool("IsOpen"); err != nil {
		return nil, err
	}
	if s.IsUnlocked, err = p.Bool("IsUnlocked"); err != nil {
		return nil, err
	}
	if s.Engaged, err = p.Bool("Engaged"); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeLocker(p props.Bag) (Spec, error) {
	var s LockerSpec
	var err error

	if s.Chance, err = p.Int32("Chance"); err != nil {
		return nil, err
	}
	if s.Type, err = props.Enum[LockerType](p, "LockerType"); err != nil {
		return nil, err
	}
	if _, ok := s.Type.Archetype(); !ok {
		return s, nil
	}

	if s.Permissions, err = props.Enum[Permissions](p, "KeycardPermissions"); err != nil {
		return nil, err
	}
	if s.Shuffle, err = p.Bool("ShuffleChambers"); err != nil {
		return nil, err
	}
	if err := p.Decode("Chambers", &s.Chambers); err != nil {
		return nil, err
	}
	return s, nil
}
