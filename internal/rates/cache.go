package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jrbgold/jrb-backend/internal/pricing"
	"github.com/jrbgold/jrb-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// SnapshotCacheKey 마지막으로 게시된 시세 스냅샷 키
const SnapshotCacheKey = "metal_rates:latest"

// SnapshotCache Redis 에 마지막 스냅샷을 보관해 재시작 시 초기값으로 사용
type SnapshotCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewSnapshotCache 스냅샷 캐시 생성
func NewSnapshotCache(client redis.UniversalClient, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{client: client, ttl: ttl}
}

// Store 스냅샷 저장
func (c *SnapshotCache) Store(ctx context.Context, snap pricing.MetalRateSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode metal rate snapshot: %w", err)
	}
	if err := c.client.Set(ctx, SnapshotCacheKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache metal rate snapshot: %w", err)
	}
	return nil
}

// Load 저장된 스냅샷 조회. 없으면 false
func (c *SnapshotCache) Load(ctx context.Context) (pricing.MetalRateSnapshot, bool, error) {
	data, err := c.client.Get(ctx, SnapshotCacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return pricing.MetalRateSnapshot{}, false, nil
	}
	if err != nil {
		return pricing.MetalRateSnapshot{}, false, fmt.Errorf("failed to read cached metal rates: %w", err)
	}

	var snap pricing.MetalRateSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return pricing.MetalRateSnapshot{}, false, fmt.Errorf("failed to decode cached metal rates: %w", err)
	}
	return snap, true, nil
}

// Listener 게시된 스냅샷을 저장하는 리스너
func (c *SnapshotCache) Listener() Listener {
	return func(snap pricing.MetalRateSnapshot) {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := c.Store(ctx, snap); err != nil {
			logger.Error("Failed to cache metal rates", err)
		}
	}
}
