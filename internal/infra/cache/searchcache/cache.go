package searchcache

import (
	"context"
	"errors"
	"time"

	"github.com/karlseguin/ccache/v3"
	"github.com/redis/go-redis/v9"

	"github.com/zomesstay/ZS-SearchService/pkg/metrics"
)

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Cache двухуровневый кеш результатов поиска:
// локальный LRU (ccache) + общий redis. Значения - готовые JSON-ответы.
// Поиск идемпотентен, поэтому устаревание на TTL допустимо
type Cache struct {
	local    *ccache.Cache[[]byte]
	redis    *redis.Client
	localTTL time.Duration
	redisTTL time.Duration
	metrics  *metrics.Metrics
	log      Logger
}

// New создает кеш поверх локального LRU и redis
// metricsCollector может быть nil, если метрики выключены
func New(
	redisClient *redis.Client,
	localMaxSize int64,
	localTTL, redisTTL time.Duration,
	metricsCollector *metrics.Metrics,
	log Logger,
) *Cache {
	return &Cache{
		local:    ccache.New(ccache.Configure[[]byte]().MaxSize(localMaxSize)),
		redis:    redisClient,
		localTTL: localTTL,
		redisTTL: redisTTL,
		metrics:  metricsCollector,
		log:      log,
	}
}

func (c *Cache) observe(tier, result string) {
	if c.metrics != nil {
		c.metrics.CacheRequestsTotal.WithLabelValues(tier, result).Inc()
	}
}

// Get ищет значение сначала в локальном кеше, затем в redis
// Попадание в redis прогревает локальный уровень
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if item := c.local.Get(key); item != nil && !item.Expired() {
		c.observe("local", "hit")
		c.log.Debug("searchcache: local hit: key=%s", key)
		return item.Value(), true
	}

	payload, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("searchcache: redis get failed: key=%s, error=%v", key, err)
		}
		c.observe("redis", "miss")
		return nil, false
	}

	c.local.Set(key, payload, c.localTTL)
	c.observe("redis", "hit")
	c.log.Debug("searchcache: redis hit, local tier warmed: key=%s", key)
	return payload, true
}

// Set сохраняет значение на обоих уровнях
// Ошибка redis не фатальна: локальный уровень продолжает работать
func (c *Cache) Set(ctx context.Context, key string, payload []byte) {
	c.local.Set(key, payload, c.localTTL)

	if err := c.redis.Set(ctx, key, payload, c.redisTTL).Err(); err != nil {
		c.log.Warn("searchcache: redis set failed: key=%s, error=%v", key, err)
	}
}
