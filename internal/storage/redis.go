package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/schematic-engine/pkg/schematic"
)

// RedisStorage implements the Storage interface using Redis for deferred
// unlocks and the filesystem for schematic files.
type RedisStorage struct {
	*FileStorage
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

// Ensure RedisStorage implements Storage interface
var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage connects to a redis:// URL. A zero ttl keeps unlocks until
// they are deleted.
func NewRedisStorage(redisURL, dataDir string, ttl time.Duration, logger *slog.Logger) (*RedisStorage, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	return &RedisStorage{
		FileStorage: NewFileStorage(dataDir, logger),
		client:      redis.NewClient(opts),
		logger:      logger,
		ttl:         ttl,
	}, nil
}

// Health and lifecycle methods

func (r *RedisStorage) Ping(ctx context.Context) error {
	cmd := r.client.Ping(ctx)
	if err := cmd.Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStorage) WaitForConnection(ctx context.Context, maxRetries int, retryDelay time.Duration) error {
	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

// Unlock operations (Redis-backed)

func unlockKey(serial uuid.UUID) string {
	return "unlock:" + serial.String()
}

func ownerKey(id uuid.UUID) string {
	return "unlock-owner:" + id.String()
}

func (r *RedisStorage) SaveUnlocks(ctx context.Context, unlocks map[uuid.UUID]schematic.Owner) error {
	if len(unlocks) == 0 {
		return nil
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for serial, owner := range unlocks {
			data, err := json.Marshal(owner)
			if err != nil {
				return fmt.Errorf("failed to marshal owner: %w", err)
			}
			pipe.Set(ctx, unlockKey(serial), data, r.ttl)
			pipe.SAdd(ctx, ownerKey(owner.ID), serial.String())
			if r.ttl > 0 {
				pipe.Expire(ctx, ownerKey(owner.ID), r.ttl)
			}
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to save unlocks", "count", len(unlocks), "error", err)
		return fmt.Errorf("failed to save unlocks: %w", err)
	}

	r.logger.Debug("Saved unlocks", "count", len(unlocks))
	return nil
}

func (r *RedisStorage) LoadUnlockOwner(ctx context.Context, serial uuid.UUID) (*schematic.Owner, error) {
	cmd := r.client.Get(ctx, unlockKey(serial))
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Debug("Unlock not found", "serial", serial)
			return nil, nil
		}
		r.logger.Error("Failed to load unlock", "serial", serial, "error", err)
		return nil, fmt.Errorf("failed to load unlock: %w", err)
	}

	var owner schematic.Owner
	if err := json.Unmarshal([]byte(cmd.Val()), &owner); err != nil {
		r.logger.Error("Failed to unmarshal unlock", "serial", serial, "error", err)
		return nil, fmt.Errorf("failed to unmarshal unlock: %w", err)
	}
	return &owner, nil
}

func (r *RedisStorage) DeleteUnlocks(ctx context.Context, ownerID uuid.UUID) (int, error) {
	serials, err := r.client.SMembers(ctx, ownerKey(ownerID)).Result()
	if err != nil {
		r.logger.Error("Failed to list unlocks", "owner", ownerID, "error", err)
		return 0, fmt.Errorf("failed to list unlocks: %w", err)
	}

	keys := make([]string, 0, len(serials)+1)
	for _, s := range serials {
		keys = append(keys, "unlock:"+s)
	}
	keys = append(keys, ownerKey(ownerID))

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.logger.Error("Failed to delete unlocks", "owner", ownerID, "error", err)
		return 0, fmt.Errorf("failed to delete unlocks: %w", err)
	}
	return len(serials), nil
}
