package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"prospectdash/internal/domain"
	"prospectdash/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// implements domain.SettingsRepository in memory
type SettingsRepository struct {
	settings domain.OrgSettings
	mutex    sync.RWMutex
}

func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{}
}

func (r *SettingsRepository) GetOrg(ctx context.Context) (domain.OrgSettings, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.settings, nil
}

func (r *SettingsRepository) SaveOrg(ctx context.Context, settings domain.OrgSettings) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.settings = settings
	return nil
}

const orgSettingsKey = "prospectdash:settings:org"

// implements domain.SettingsRepository on redis; the settings are one JSON value
type RedisSettingsRepository struct {
	client *redis.Client
	logger *logger.Logger
}

func NewRedisSettingsRepository(client *redis.Client, logger *logger.Logger) *RedisSettingsRepository {
	return &RedisSettingsRepository{client: client, logger: logger}
}

// NewRedisClient parses a redis:// URL and checks the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func (r *RedisSettingsRepository) GetOrg(ctx context.Context) (domain.OrgSettings, error) {
	raw, err := r.client.Get(ctx, orgSettingsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.OrgSettings{}, nil
	}
	if err != nil {
		return domain.OrgSettings{}, fmt.Errorf("failed to read settings from redis: %w", err)
	}

	var settings domain.OrgSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return domain.OrgSettings{}, fmt.Errorf("failed to decode stored settings: %w", err)
	}
	return settings, nil
}

func (r *RedisSettingsRepository) SaveOrg(ctx context.Context, settings domain.OrgSettings) error {
	payload, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := r.client.Set(ctx, orgSettingsKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to write settings to redis: %w", err)
	}

	r.logger.WithContext(ctx).Debug("Stored organization settings in redis")
	return nil
}

// Ping reports redis health for /health.
func (r *RedisSettingsRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
