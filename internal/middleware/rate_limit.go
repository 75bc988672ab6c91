package middleware

import (
	"net/http"
	"sync"

	"go-coverage/internal/shared/apperror"
	"go-coverage/internal/shared/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// KeyedRateLimiter hands out one token bucket per key (client IP or
// employee id).
type KeyedRateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	r        rate.Limit
	b        int
}

func NewKeyedRateLimiter(r rate.Limit, b int) *KeyedRateLimiter {
	return &KeyedRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		r:        r,
		b:        b,
	}
}

func (l *KeyedRateLimiter) GetLimiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(l.r, l.b)
		l.limiters[key] = limiter
	}
	return limiter
}

func tooManyRequests(c *gin.Context, message string) {
	response.Error(c, http.StatusTooManyRequests, apperror.CodeTooManyRequests, message, nil)
	c.Abort()
}

// RateLimitByIP limits unauthenticated endpoints such as login.
func RateLimitByIP(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyedRateLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			tooManyRequests(c, "too many requests from this IP")
			return
		}
		c.Next()
	}
}

// RateLimitByUser keys on employee_id and lets anonymous requests through.
func RateLimitByUser(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyedRateLimiter(r, b)
	return func(c *gin.Context) {
		employeeID := c.GetString("employee_id")
		if employeeID == "" {
			c.Next()
			return
		}
		if !limiter.GetLimiter(employeeID).Allow() {
			tooManyRequests(c, "too many requests from this user")
			return
		}
		c.Next()
	}
}
