package redis

import (
	"context"
	"fmt"
	"neohearts-service/internal/app/contracts"
	"neohearts-service/internal/pkg/constvars"
	"neohearts-service/internal/pkg/fhir_dto"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type bundleCache struct {
	redisRepo contracts.RedisRepository
	ttl       time.Duration
	Log       *zap.Logger
}

// NewBundleCache stores searchset bundles under newborn:bundle:{id}.
func NewBundleCache(repo contracts.RedisRepository, ttl time.Duration, logger *zap.Logger) contracts.BundleCache {
	return &bundleCache{
		redisRepo: repo,
		ttl:       ttl,
		Log:       logger,
	}
}

func bundleKey(patientID string) string {
	return fmt.Sprintf(constvars.CacheKeyNewbornBundleFormat, patientID)
}

func (c *bundleCache) GetBundle(ctx context.Context, patientID string) (*fhir_dto.Bundle, bool, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	key := bundleKey(patientID)

	raw, err := c.redisRepo.Get(ctx, key)
	if err != nil {
		c.Log.Error("bundleCache.GetBundle error calling redisRepo.Get",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCacheKey, key),
			zap.Error(err),
		)
		return nil, false, err
	}
	if raw == "" {
		c.Log.Debug("bundleCache.GetBundle miss",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCacheKey, key),
		)
		return nil, false, nil
	}

	bundle, err := fhir_dto.ParseBundle([]byte(raw))
	if err != nil {
		// A stale or foreign value is treated as a miss and dropped.
		c.Log.Warn("bundleCache.GetBundle discarding unreadable entry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCacheKey, key),
			zap.Error(err),
		)
		_ = c.redisRepo.Delete(ctx, key)
		return nil, false, nil
	}

	c.Log.Debug("bundleCache.GetBundle hit",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCacheKey, key),
	)
	return bundle, true, nil
}

func (c *bundleCache) SetBundle(ctx context.Context, patientID string, bundle *fhir_dto.Bundle) error {
	raw, err := json.Marshal(bundle)
	if err != nil {
		return err
	}
	return c.redisRepo.Set(ctx, bundleKey(patientID), raw, c.ttl)
}

func (c *bundleCache) DeleteBundle(ctx context.Context, patientID string) error {
	return c.redisRepo.Delete(ctx, bundleKey(patientID))
}

type noopBundleCache struct{}

// NewNoopBundleCache is used when redis is disabled. Every read misses.
func NewNoopBundleCache() contracts.BundleCache {
	return noopBundleCache{}
}

func (noopBundleCache) GetBundle(ctx context.Context, patientID string) (*fhir_dto.Bundle, bool, error) {
	return nil, false, nil
}

func (noopBundleCache) SetBundle(ctx context.Context, patientID string, bundle *fhir_dto.Bundle) error {
	return nil
}

func (noopBundleCache) DeleteBundle(ctx context.Context, patientID string) error {
	return nil
}
