package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go-coverage/internal/shared/contextutil"
	"go-coverage/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const idempotencyLockTTL = 30 * time.Second

// Idempotency replays the stored result of a POST that carried the same
// Idempotency-Key. The handler stores the result under
// idempotency_cache_key and releases idempotency_lock_key when done.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		log := contextutil.GetLogger(ctx, nil)
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), c.GetString("employee_id"), idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var cached json.RawMessage = []byte(val)
			log.Debug("idempotent replay", zap.String("key", idempKey))
			response.Success(c, http.StatusCreated, cached, nil)
			c.Abort()
			return
		}
		if !errors.Is(err, redis.Nil) {
			log.Warn("idempotency cache unavailable", zap.Error(err))
			c.Next()
			return
		}

		isNew, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			log.Warn("idempotency lock unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !isNew {
			response.Error(c, http.StatusConflict, "PROCESSING", "request is still being processed", nil)
			c.Abort()
			return
		}

		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)
		c.Next()
	}
}
