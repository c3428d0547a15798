package storage

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/schematic-engine/pkg/schematic"
)

func setupTestRedis(t *testing.T, ttl time.Duration) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	store, err := NewRedisStorage("redis://"+mr.Addr(), t.TempDir(), ttl, logger)
	if err != nil {
		mr.Close()
		t.Fatalf("Failed to create redis storage: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
		mr.Close()
	})
	return store, mr
}

func TestRedisStorage_Unlocks(t *testing.T) {
	store, _ := setupTestRedis(t, 0)
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))

	vault := schematic.NewOwner("vault")
	lobby := schematic.NewOwner("lobby")
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	err := store.SaveUnlocks(ctx, map[uuid.UUID]schematic.Owner{a: vault, b: vault, c: lobby})
	require.NoError(t, err)

	owner, err := store.LoadUnlockOwner(ctx, a)
	require.NoError(t, err)
	require.NotNil(t, owner)
	assert.Equal(t, vault, *owner)

	n, err := store.DeleteUnlocks(ctx, vault.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	owner, err = store.LoadUnlockOwner(ctx, b)
	require.NoError(t, err)
	assert.Nil(t, owner)

	owner, err = store.LoadUnlockOwner(ctx, c)
	require.NoError(t, err)
	require.NotNil(t, owner)
	assert.Equal(t, lobby, *owner)
}

func TestRedisStorage_UnlockTTL(t *testing.T) {
	store, mr := setupTestRedis(t, time.Minute)
	ctx := context.Background()

	serial := uuid.New()
	require.NoError(t, store.SaveUnlocks(ctx, map[uuid.UUID]schematic.Owner{serial: schematic.NewOwner("vault")}))

	mr.FastForward(2 * time.Minute)

	owner, err := store.LoadUnlockOwner(ctx, serial)
	require.NoError(t, err)
	assert.Nil(t, owner)
}

func TestRedisStorage_EmptySave(t *testing.T) {
	store, mr := setupTestRedis(t, 0)
	require.NoError(t, store.SaveUnlocks(context.Background(), nil))
	assert.Empty(t, mr.Keys())
}

func TestRedisStorage_Errors(t *testing.T) {
	store, mr := setupTestRedis(t, 0)
	ctx := context.Background()

	mr.Close()

	assert.Error(t, store.Ping(ctx))
	_, err := store.LoadUnlockOwner(ctx, uuid.New())
	assert.Error(t, err)

	_, err = NewRedisStorage("not a url", "", 0, store.logger)
	assert.Error(t, err)
}

func TestRedisStorage_WaitForConnection(t *testing.T) {
	store, mr := setupTestRedis(t, 0)
	ctx := context.Background()

	require.NoError(t, store.WaitForConnection(ctx, 3, time.Millisecond))

	mr.Close()
	err := store.WaitForConnection(ctx, 2, time.Millisecond)
	assert.ErrorContains(t, err, "did not become available after 2 attempts")
}

func TestRedisStorage_ReadsSchematicFiles(t *testing.T) {
	store, _ := setupTestRedis(t, 0)
	writeFile(t, store.dataDir, "a.json", minimalSchematic)

	files, err := store.ListSchematics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.json"}, files)
}

func TestMockStorage(t *testing.T) {
	m := NewMockStorage()
	ctx := context.Background()

	m.AddSchematic("b.json", &schematic.Data{RootObjectID: 2})
	m.AddSchematic("a.json", &schematic.Data{RootObjectID: 1})

	files, err := m.ListSchematics(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.json", "b.json"}, files)

	_, err = m.GetSchematic(ctx, "c.json")
	assert.ErrorIs(t, err, ErrNotFound)

	owner := schematic.NewOwner("vault")
	serial := uuid.New()
	require.NoError(t, m.SaveUnlocks(ctx, map[uuid.UUID]schematic.Owner{serial: owner}))

	got, err := m.LoadUnlockOwner(ctx, serial)
	require.NoError(t, err)
	assert.Equal(t, owner, *got)

	n, err := m.DeleteUnlocks(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
