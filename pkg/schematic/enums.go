package schematic

// PrimitiveType is the mesh of a primitive toy.
type PrimitiveType int32

const (
	PrimitiveSphere PrimitiveType = iota
	PrimitiveCapsule
	PrimitiveCylinder
	PrimitiveCube
	PrimitivePlane
	PrimitiveQuad
)

// PrimitiveFlags controls primitive visibility and collision.
type PrimitiveFlags uint8

const (
	PrimitiveFlagsNone  PrimitiveFlags = 0
	PrimitiveCollidable PrimitiveFlags = 1 << 0
	PrimitiveVisible    PrimitiveFlags = 1 << 1
)

type LightType int32

const (
	LightSpot LightType = iota
	LightDirectional
	LightPoint
	LightRectangle
	LightDisc
)

// ShadowMode is how a light casts shadows.
type ShadowMode int32

const (
	ShadowsNone ShadowMode = iota
	ShadowsHard
	ShadowsSoft
)

type LightShape int32

const (
	LightShapeCone LightShape = iota
	LightShapePyramid
	LightShapeBox
)

// ColliderShape is the trigger volume of an interactable toy.
type ColliderShape int32

const (
	ColliderBox ColliderShape = iota
	ColliderSphere
	ColliderCapsule
)

// Permissions is a keycard permission mask used by doors, generators and
// locker chambers.
type Permissions uint16

// DamageSources is a mask of damage kinds a breakable door ignores.
type DamageSources uint8

// ItemType identifies an inventory item.
type ItemType int32

// ItemNone is the absent item.
const ItemNone ItemType = -1

// Workstation status codes.
const (
	WorkstationInteractable uint8 = 0
	WorkstationLocked       uint8 = 4
)

const (
	// WaypointPriority is assigned to every waypoint built from a schematic.
	WaypointPriority uint8 = 255

	// WaypointScaleMultiplier converts authored waypoint scale to bounds.
	WaypointScaleMultiplier float32 = 5

	// TextDisplayScale converts authored text display size to toy units.
	TextDisplayScale float32 = 20

	// MovementSmoothing is applied to every non-static toy.
	MovementSmoothing uint8 = 60
)
