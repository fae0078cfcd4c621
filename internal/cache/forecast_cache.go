package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/andresuchdata/fbaplan/backend-go/internal/config"
	"github.com/andresuchdata/fbaplan/backend-go/internal/domain"
	"github.com/redis/go-redis/v9"
)

const forecastKeyPrefix = "fbaplan:forecast"

// ForecastCache stores computed forecast overviews per brand and planning day.
type ForecastCache interface {
	GetOverview(ctx context.Context, brand string, today time.Time) (*domain.ForecastOverview, bool, error)
	SetOverview(ctx context.Context, overview *domain.ForecastOverview) error
	InvalidateBrand(ctx context.Context, brand string) error
}

type redisForecastCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopForecastCache struct{}

// NewForecastCache returns a redis backed cache, or a noop one when caching is disabled.
func NewForecastCache(cfg config.CacheConfig) (ForecastCache, error) {
	if !cfg.Enabled {
		return &noopForecastCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisForecastCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopForecastCache() ForecastCache {
	return &noopForecastCache{}
}

func (c *redisForecastCache) GetOverview(ctx context.Context, brand string, today time.Time) (*domain.ForecastOverview, bool, error) {
	key := buildForecastKey(brand, today)

	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var overview domain.ForecastOverview
	if err := json.Unmarshal(payload, &overview); err != nil {
		return nil, false, fmt.Errorf("decode forecast cache: %w", err)
	}

	return &overview, true, nil
}

func (c *redisForecastCache) SetOverview(ctx context.Context, overview *domain.ForecastOverview) error {
	key := buildForecastKey(overview.BrandName, overview.Today.Time)
	payload, err := json.Marshal(overview)
	if err != nil {
		return fmt.Errorf("encode forecast cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisForecastCache) InvalidateBrand(ctx context.Context, brand string) error {
	return deleteKeysWithPrefix(ctx, c.client, brandPrefix(brand))
}

func (n *noopForecastCache) GetOverview(ctx context.Context, brand string, today time.Time) (*domain.ForecastOverview, bool, error) {
	return nil, false, nil
}

func (n *noopForecastCache) SetOverview(ctx context.Context, overview *domain.ForecastOverview) error {
	return nil
}

func (n *noopForecastCache) InvalidateBrand(ctx context.Context, brand string) error {
	return nil
}

// brandPrefix keeps the brand's case; brands are matched case-sensitively in storage.
func brandPrefix(brand string) string {
	return fmt.Sprintf("%s:%s:", forecastKeyPrefix, strings.TrimSpace(brand))
}

func buildForecastKey(brand string, today time.Time) string {
	return brandPrefix(brand) + today.Format(domain.DateLayout)
}
