package schematic

import (
	"github.com/google/uuid"
	"github.com/jwebster45206/schematic-engine/pkg/geom"
)

// Object is a live object produced by the builder.
type Object interface {
	Name() string
	SetName(name string)
	// Component returns the configured state, or nil for bare objects.
	Component() Component
}

// Template is a spawnable resource from the catalog.
type Template struct {
	ID        uint32
	Name      string
	Archetype Archetype
	// Chambers is the number of loot slots for locker templates.
	Chambers int
}

// Catalog resolves and instantiates templates.
type Catalog interface {
	Template(a Archetype) (Template, bool)
	PrefabByID(id uint32) (Template, bool)
	// PrefabByName matches names case-insensitively.
	PrefabByName(name string) (Template, bool)
	// Item resolves an item identifier.
	Item(name string) (ItemType, bool)

	Instantiate(t Template, c Component) Object
	// SpawnPickup creates a pickup and returns its unique serial.
	SpawnPickup(item ItemType) (Object, uuid.UUID)
	// FillChamber applies the locker's default loot to a slot.
	FillChamber(l *Locker, c *Chamber)
}

// Scene is the object tree the builder places objects in.
type Scene interface {
	// NewObject creates a bare object that no template backs.
	NewObject(name string, c Component) Object
	// SetParent attaches obj under parent; a nil parent means the scene root.
	SetParent(obj, parent Object)
	SetLocalTransform(obj Object, t geom.Transform)
	WorldTransform(obj Object) geom.Transform
	DetachParent(obj Object)
}

// Registry records locked pickups so a button handler can release them.
type Registry interface {
	RegisterDeferredUnlock(serial uuid.UUID, owner Owner)
}

// Diagnostics receives fallback warnings. *slog.Logger satisfies it.
type Diagnostics interface {
	Warn(msg string, args ...any)
}

// Owner identifies the schematic instance a build pass belongs to.
type Owner struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// NewOwner returns an owner with a fresh id.
func NewOwner(name string) Owner {
	return Owner{ID: uuid.New(), Name: name}
}
