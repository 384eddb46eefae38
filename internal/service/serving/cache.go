package serving

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/meonjeo/ad-booking-service/internal/domain"
)

const (
	filledKeyPrefix = "ads:filled:"
	sampleKeyPrefix = "ads:sample:"
)

// CachingProvider кеширующий слой поверх сервиса выдачи.
// Кешируются только горячие витринные выборки (ServeFilled и SampleOverall),
// точечный Serve ходит напрямую. Ошибки redis не возвращаются наружу:
// при недоступном кеше выдача просто идёт в базу.
type CachingProvider struct {
	Provider

	redis        *redis.Client
	ttl          time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewCachingProvider оборачивает сервис выдачи кешем
func NewCachingProvider(inner Provider, redisClient *redis.Client, ttl time.Duration, logger Logger) *CachingProvider {
	return &CachingProvider{
		Provider:     inner,
		redis:        redisClient,
		ttl:          ttl,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider заменяет провайдер времени (для тестирования)
func (c *CachingProvider) WithTimeProvider(tp TimeProvider) *CachingProvider {
	c.timeProvider = tp
	return c
}

// ServeFilled отдаёт закешированную выборку или считает её и кладёт в кеш
func (c *CachingProvider) ServeFilled(ctx context.Context, req *ServeFilledRequest) (*ServeResponse, error) {
	key := c.filledKey(req)

	var cached ServeResponse
	if c.get(ctx, key, &cached) {
		return &cached, nil
	}

	resp, err := c.Provider.ServeFilled(ctx, req)
	if err != nil {
		return nil, err
	}

	c.set(ctx, key, resp)
	return resp, nil
}

// SampleOverall отдаёт закешированную подборку или считает её и кладёт в кеш
func (c *CachingProvider) SampleOverall(ctx context.Context, perCategory int) (*OverallSample, error) {
	if perCategory <= 0 {
		perCategory = defaultPerCategory
	}
	key := fmt.Sprintf("%s%d:%s", sampleKeyPrefix, perCategory, c.today())

	var cached OverallSample
	if c.get(ctx, key, &cached) {
		return &cached, nil
	}

	sample, err := c.Provider.SampleOverall(ctx, perCategory)
	if err != nil {
		return nil, err
	}

	c.set(ctx, key, sample)
	return sample, nil
}

func (c *CachingProvider) filledKey(req *ServeFilledRequest) string {
	day := c.today()
	if req.Day != nil && !req.Day.IsZero() {
		day = domain.DateOnly(*req.Day).Format(domain.DateFormat)
	}
	return fmt.Sprintf("%s%s:%s:%s", filledKeyPrefix, req.SlotType, req.Category, day)
}

func (c *CachingProvider) today() string {
	return domain.DateOnly(c.timeProvider.Now()).Format(domain.DateFormat)
}

func (c *CachingProvider) get(ctx context.Context, key string, dst interface{}) bool {
	val, err := c.redis.Get(ctx, key).Result()
	switch {
	case err == redis.Nil:
		return false
	case err != nil:
		c.logger.Error("serving cache: failed to get key=%s: %v", key, err)
		return false
	}

	if err := json.Unmarshal([]byte(val), dst); err != nil {
		c.logger.Error("serving cache: failed to decode key=%s: %v", key, err)
		return false
	}
	return true
}

func (c *CachingProvider) set(ctx context.Context, key string, val interface{}) {
	payload, err := json.Marshal(val)
	if err != nil {
		c.logger.Error("serving cache: failed to encode key=%s: %v", key, err)
		return
	}
	if err := c.redis.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Error("serving cache: failed to set key=%s: %v", key, err)
	}
}
