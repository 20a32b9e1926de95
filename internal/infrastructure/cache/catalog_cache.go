package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/bitcoindeepa/miniapp-gateway/internal/domain/entity"
)

// Cache key constants
const (
	KeyCatalog     = "catalog:packages"
	KeyMemberCount = "community:member_count"
)

// CatalogCache keeps the normalized package catalog warm in Redis so the
// public catalog route does not hit the upstream on every render. Also hosts
// the community member counter surfaced by the referral screen.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCatalogCache creates a new catalog cache
func NewCatalogCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *CatalogCache {
	return &CatalogCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// GetPackages returns the cached catalog. A redis error is treated as a
// cache miss so the route can still serve from the upstream.
func (c *CatalogCache) GetPackages(ctx context.Context) ([]entity.Package, bool) {
	data, err := c.client.Get(ctx, KeyCatalog).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("catalog cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var packages []entity.Package
	if err := json.Unmarshal(data, &packages); err != nil {
		c.logger.Warn("catalog cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return packages, true
}

// SetPackages stores the normalized catalog with the configured TTL
func (c *CatalogCache) SetPackages(ctx context.Context, packages []entity.Package) error {
	data, err := json.Marshal(packages)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, KeyCatalog, data, c.ttl).Err(); err != nil {
		return err
	}

	c.logger.Debug("cached package catalog", zap.Int("packages", len(packages)))
	return nil
}

// IncrementMembers bumps the community member counter and returns the new
// value. Called when a registration succeeds upstream.
func (c *CatalogCache) IncrementMembers(ctx context.Context) (int64, error) {
	return c.client.Incr(ctx, KeyMemberCount).Result()
}

// MemberCount returns the current community member counter
func (c *CatalogCache) MemberCount(ctx context.Context) (int64, error) {
	count, err := c.client.Get(ctx, KeyMemberCount).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return count, err
}
