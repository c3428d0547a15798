package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jwebster45206/schematic-engine/pkg/schematic"
)

var (
	ErrNotFound          = errors.New("schematic not found")
	ErrUnsupportedFormat = errors.New("unsupported schematic format")
	ErrInvalidSchematic  = errors.New("invalid schematic")
)

// Schematics loads schematic documents.
type Schematics interface {
	// ListSchematics returns the supported files under the data directory,
	// relative to it and sorted.
	ListSchematics(ctx context.Context) ([]string, error)
	GetSchematic(ctx context.Context, filename string) (*schematic.Data, error)
}

// Storage combines schematic loading (filesystem) with deferred unlock
// persistence (Redis).
type Storage interface {
	Schematics

	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Deferred unlock operations
	SaveUnlocks(ctx context.Context, unlocks map[uuid.UUID]schematic.Owner) error
	// LoadUnlockOwner returns nil when serial is not locked.
	LoadUnlockOwner(ctx context.Context, serial uuid.UUID) (*schematic.Owner, error)
	// DeleteUnlocks releases every serial held by one schematic instance.
	DeleteUnlocks(ctx context.Context, ownerID uuid.UUID) (int, error)
}
