// Package redis provides the Redis trigger store adapter. Records are
// stored as JSON documents; identifier uniqueness and the uniqueness
// of the (namespace, name) pair are both enforced with SETNX.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"trigger-provider/internal/config"
	"trigger-provider/internal/models"
	"trigger-provider/internal/storage"
)

func init() {
	storage.Register("redis", func(cfg *config.Config) (storage.Store, error) {
		db := 0
		fmt.Sscanf(cfg.RedisDB, "%d", &db)
		return NewAdapter(&Config{
			Address:  cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       db,
		})
	})
}

// Config holds Redis connection settings
type Config struct {
	Address  string `json:"address"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

// Adapter is a Redis-backed trigger store
type Adapter struct {
	rdb *redis.Client
}

// NewAdapter connects to Redis and verifies the connection
func NewAdapter(cfg *Config) (*Adapter, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis config is required")
	}
	if cfg.Address == "" {
		cfg.Address = "localhost:6379"
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Adapter{rdb: rdb}, nil
}

func triggerKey(identifier string) string {
	return "trigger:" + identifier
}

func nameKey(namespace, name string) string {
	return "trigger-name:" + namespace + "/" + name
}

// Insert writes the full trigger record as one JSON document. The
// (namespace, name) reservation and the record are written together;
// a failed record write releases the reservation.
func (a *Adapter) Insert(ctx context.Context, trigger *models.Trigger, identifier string) error {
	type record struct {
		models.Trigger
		APIKey string `json:"apikey"`
	}

	data, err := json.Marshal(record{Trigger: *trigger, APIKey: trigger.APIKey})
	if err != nil {
		return fmt.Errorf("failed to marshal trigger: %w", err)
	}

	reserved, err := a.rdb.SetNX(ctx, nameKey(trigger.Namespace, trigger.Name), identifier, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to insert trigger: %w", err)
	}
	if !reserved {
		return fmt.Errorf("trigger %s/%s already exists", trigger.Namespace, trigger.Name)
	}

	stored, err := a.rdb.SetNX(ctx, triggerKey(identifier), data, 0).Result()
	if err != nil || !stored {
		a.rdb.Del(ctx, nameKey(trigger.Namespace, trigger.Name))
		if err != nil {
			return fmt.Errorf("failed to insert trigger: %w", err)
		}
		return fmt.Errorf("trigger %s already exists", identifier)
	}

	return nil
}

// Get reads a trigger back by identifier
func (a *Adapter) Get(ctx context.Context, identifier string) (*models.Trigger, error) {
	data, err := a.rdb.Get(ctx, triggerKey(identifier)).Result()
	if err == redis.Nil {
		return nil, storage.NotFound(identifier)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trigger: %w", err)
	}

	var record struct {
		models.Trigger
		APIKey string `json:"apikey"`
	}
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal trigger: %w", err)
	}

	trigger := record.Trigger
	trigger.APIKey = record.APIKey
	return &trigger, nil
}

// Health pings the server
func (a *Adapter) Health() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return a.rdb.Ping(ctx).Err()
}

// Close closes the client
func (a *Adapter) Close() error {
	return a.rdb.Close()
}
