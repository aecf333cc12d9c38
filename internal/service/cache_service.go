package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/lab-portal-api/pkg/errors"
	applog "github.com/noah-isme/lab-portal-api/pkg/logger"
)

// CacheRepository abstracts persistence for cached payloads.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CacheScope groups cached reads that are invalidated together.
type CacheScope string

const (
	ScopeLabs       CacheScope = "labs"
	ScopeTimetables CacheScope = "timetables"
)

func (s CacheScope) key(parts ...string) string {
	return string(s) + ":" + strings.Join(parts, ":")
}

func (s CacheScope) pattern() string {
	return string(s) + ":*"
}

func labListKey(labType string) string {
	if labType == "" {
		return ScopeLabs.key("list", "all")
	}
	return ScopeLabs.key("list", "type", labType)
}

func timetableListKey() string {
	return ScopeTimetables.key("list")
}

func timetableLabKey(labID string) string {
	return ScopeTimetables.key("lab", labID)
}

// CacheService is the read-through cache in front of lab and timetable reads.
// Cache failures never fail a request: they are logged and treated as misses.
type CacheService struct {
	store   CacheRepository
	metrics *MetricsService
	ttl     time.Duration
	logger  *zap.Logger
	enabled bool
}

// NewCacheService constructs a cache service. A nil store disables caching.
func NewCacheService(store CacheRepository, metrics *MetricsService, ttl time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{store: store, metrics: metrics, ttl: ttl, logger: logger, enabled: enabled}
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.store != nil
}

// Lookup decodes the cached value for key into dest and reports a hit.
func (s *CacheService) Lookup(ctx context.Context, key string, dest interface{}) bool {
	if !s.Enabled() {
		return false
	}
	start := time.Now()
	err := s.store.Get(ctx, key, dest)
	s.metrics.RecordCacheLookup(scopeOf(key), err == nil, time.Since(start))
	if err != nil && !errors.Is(err, appErrors.ErrCacheMiss) {
		applog.FromContext(ctx, s.logger).Warn("cache lookup failed", zap.String("key", key), zap.Error(err))
	}
	return err == nil
}

// Store caches value under key with the configured TTL.
func (s *CacheService) Store(ctx context.Context, key string, value interface{}) {
	if !s.Enabled() {
		return
	}
	start := time.Now()
	err := s.store.Set(ctx, key, value, s.ttl)
	s.metrics.ObserveCacheWrite(time.Since(start))
	if err != nil {
		applog.FromContext(ctx, s.logger).Warn("cache store failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops every cached read in the given scopes.
func (s *CacheService) Invalidate(ctx context.Context, scopes ...CacheScope) {
	if !s.Enabled() {
		return
	}
	for _, scope := range scopes {
		if err := s.store.DeleteByPattern(ctx, scope.pattern()); err != nil {
			applog.FromContext(ctx, s.logger).Warn("cache invalidate failed", zap.String("scope", string(scope)), zap.Error(err))
		}
	}
}

func scopeOf(key string) string {
	scope, _, _ := strings.Cut(key, ":")
	return scope
}
