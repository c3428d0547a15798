package storage

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/jwebster45206/schematic-engine/pkg/schematic"
)

// MockStorage is a mock implementation of Storage for testing
type MockStorage struct {
	mu         sync.RWMutex
	schematics map[string]*schematic.Data
	unlocks    map[uuid.UUID]schematic.Owner
	pingError  error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		schematics: make(map[string]*schematic.Data),
		unlocks:    make(map[uuid.UUID]schematic.Owner),
	}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

// AddSchematic adds a schematic to the mock storage (for testing)
func (m *MockStorage) AddSchematic(filename string, data *schematic.Data) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schematics[filename] = data
}

func (m *MockStorage) ListSchematics(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]string, 0, len(m.schematics))
	for name := range m.schematics {
		result = append(result, name)
	}
	slices.Sort(result)
	return result, nil
}

func (m *MockStorage) GetSchematic(ctx context.Context, filename string) (*schematic.Data, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, exists := m.schematics[filename]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, filename)
	}
	return data, nil
}

func (m *MockStorage) SaveUnlocks(ctx context.Context, unlocks map[uuid.UUID]schematic.Owner) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for serial, owner := range unlocks {
		m.unlocks[serial] = owner
	}
	return nil
}

func (m *MockStorage) LoadUnlockOwner(ctx context.Context, serial uuid.UUID) (*schematic.Owner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	owner, exists := m.unlocks[serial]
	if !exists {
		return nil, nil // Return nil for not found
	}
	return &owner, nil
}

func (m *MockStorage) DeleteUnlocks(ctx context.Context, ownerID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for serial, owner := range m.unlocks {
		if owner.ID == ownerID {
			delete(m.unlocks, serial)
			n++
		}
	}
	return n, nil
}
