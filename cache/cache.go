package cache

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/aryantuntune/Rivaya-Ecommerce/logger"
)

// Cache is an optional Redis-backed response cache for catalog GETs. A nil
// *Cache is valid and disables caching entirely.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis when REDIS_ADDR is set; otherwise caching stays off.
func New() *Cache {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Str("addr", addr).Msg("redis unreachable, response cache disabled")
		return nil
	}

	logger.Info().Str("addr", addr).Msg("response cache enabled")
	return &Cache{client: client, ttl: 5 * time.Minute}
}

type bodyCaptureWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func cacheKey(c *gin.Context) string {
	sum := sha256.Sum256([]byte(c.Request.URL.RawQuery))
	return "cache:" + c.Request.URL.Path + ":" + hex.EncodeToString(sum[:8])
}

// Middleware serves cached JSON for GET requests and stores fresh 200 responses.
func (c *Cache) Middleware() gin.HandlerFunc {
	return func(gc *gin.Context) {
		if c == nil || gc.Request.Method != http.MethodGet {
			gc.Next()
			return
		}

		ctx := gc.Request.Context()
		key := cacheKey(gc)

		if cached, err := c.client.Get(ctx, key).Bytes(); err == nil && len(cached) > 0 {
			gc.Header("X-Cache", "HIT")
			gc.Data(http.StatusOK, "application/json", cached)
			gc.Abort()
			return
		}

		writer := &bodyCaptureWriter{ResponseWriter: gc.Writer}
		gc.Writer = writer
		gc.Header("X-Cache", "MISS")
		gc.Next()

		if gc.Writer.Status() == http.StatusOK {
			if err := c.client.Set(ctx, key, writer.buf.Bytes(), c.ttl).Err(); err != nil {
				logger.Warn().Err(err).Str("key", key).Msg("failed to store cached response")
			}
		}
	}
}

// InvalidatePrefix drops every cached response whose path starts with prefix.
// Called after catalog writes, stock reservations and review changes; analytics
// counters age out with the TTL instead.
func (c *Cache) InvalidatePrefix(ctx context.Context, prefix string) {
	if c == nil {
		return
	}

	iter := c.client.Scan(ctx, 0, "cache:"+prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Warn().Err(err).Str("key", iter.Val()).Msg("failed to invalidate cached response")
		}
	}
	if err := iter.Err(); err != nil {
		logger.Warn().Err(err).Msg("cache invalidation scan failed")
	}
}
