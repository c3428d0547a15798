package schematic

import (
	"github.com/google/uuid"
	"github.com/jwebster45206/schematic-engine/pkg/geom"
)

// Component is the configured state attached to a spawned object.
type Component interface {
	Kind() string
}

// Toy is implemented by networked admin toys, which may be marked static
// or given a movement smoothing value.
type Toy interface {
	SetStatic(static bool)
	SetMovementSmoothing(v uint8)
}

// ToyBase carries the network flags shared by all toys.
type ToyBase struct {
	IsStatic          bool
	MovementSmoothing uint8
}

func (t *ToyBase) SetStatic(static bool)        { t.IsStatic = static }
func (t *ToyBase) SetMovementSmoothing(v uint8) { t.MovementSmoothing = v }

type Primitive struct {
	ToyBase
	Shape PrimitiveType
	Color geom.Color
	Flags PrimitiveFlags
}

func (*Primitive) Kind() string { return "Primitive" }

type Light struct {
	ToyBase
	Type           LightType
	Color          geom.Color
	Intensity      float32
	Range          float32
	Shadows        ShadowMode
	Shape          LightShape
	SpotAngle      float32
	InnerSpotAngle float32
	ShadowStrength float32
}

func (*Light) Kind() string { return "Light" }

type Pickup struct {
	Item   ItemType
	Serial uuid.UUID
}

func (*Pickup) Kind() string { return "Pickup" }

type Workstation struct {
	Status uint8
}

func (*Workstation) Kind() string { return "Workstation" }

type Text struct {
	ToyBase
	Format      string
	DisplaySize geom.Vector2
}

func (*Text) Kind() string { return "Text" }

type Interactable struct {
	ToyBase
	Shape               ColliderShape
	InteractionDuration float32
	IsLocked            bool
}

func (*Interactable) Kind() string { return "Interactable" }

type Waypoint struct {
	ToyBase
	Priority uint8
}

func (*Waypoint) Kind() string { return "Waypoint" }

type Capybara struct {
	ToyBase
	CollidersEnabled bool
}

func (*Capybara) Kind() string { return "Capybara" }

// BreakableState is the damage model of Lcz, Hcz and Ez doors.
type BreakableState struct {
	RemainingHealth      float32
	IgnoredDamageSources DamageSources
	IsDestroyed          bool
	NonInteractable      bool
	Scp106Passable       bool
}

type Door struct {
	Type        DoorType
	Breakable   *BreakableState // nil for bulk doors and gates
	IsOpened    bool
	Permissions Permissions
	IsLocked    bool
}

func (*Door) Kind() string { return "Door" }

// ElevatorDoor is one floor door of an elevator chamber.
type ElevatorDoor struct {
	Position       geom.Vector3
	TargetPosition geom.Vector3
	TopPosition    geom.Vector3
	BottomPosition geom.Vector3
	Chamber        *Elevator
}

func (*ElevatorDoor) Kind() string { return "ElevatorDoor" }

type Elevator struct {
	Type  ElevatorType
	Doors []*ElevatorDoor
	// LastArrived is the door the chamber starts at.
	LastArrived *ElevatorDoor
}

func (*Elevator) Kind() string { return "Elevator" }

// PrefabInstance is a generic catalog prefab.
type PrefabInstance struct {
	TemplateID uint32
	Name       string
}

func (*PrefabInstance) Kind() string { return "Prefab" }

type Sinkhole struct {
	Spawn geom.Transform
}

func (*Sinkhole) Kind() string { return "Sinkhole" }

type Camera struct {
	ToyBase
	Type                 CameraType
	VerticalConstraint   geom.Vector2
	HorizontalConstraint geom.Vector2
	ZoomConstraint       geom.Vector2
	Label                string
}

func (*Camera) Kind() string { return "Camera" }

type Generator struct {
	RequiredPermissions   Permissions
	TotalActivationTime   float32
	TotalDeactivationTime float32
	IsOpen                bool
	IsUnlocked            bool
	Engaged               bool
}

func (*Generator) Kind() string { return "Generator" }

// ItemStack is a spawned item inside a locker chamber.
type ItemStack struct {
	Item  ItemType
	Name  string
	Count int
}

// Chamber is one physical loot slot of a locker.
type Chamber struct {
	Index               int
	RequiredPermissions Permissions
	Items               []ItemStack
	// DefaultFilled is set when the locker's own loot filled the slot.
	DefaultFilled bool
}

// SpawnItem adds count of item to the chamber.
func (c *Chamber) SpawnItem(item ItemType, name string, count int) {
	c.Items = append(c.Items, ItemStack{Item: item, Name: name, Count: count})
}

type Locker struct {
	Type     LockerType
	Chambers []*Chamber
	// ChambersFilled marks that the server must not refill the chambers.
	ChambersFilled bool
}

func (*Locker) Kind() string { return "Locker" }
