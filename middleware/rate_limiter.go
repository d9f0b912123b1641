package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"washline/utils"
)

// rateLimiterStore holds a map of IP addresses to their in-process rate
// limiters, used when no redis backend is configured.
type rateLimiterStore struct {
	limiters map[string]*rate.Limiter
	perMin   int
	mu       sync.Mutex
}

func (s *rateLimiterStore) getLimiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[ip]
	if !exists {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMin)), s.perMin)
		s.limiters[ip] = limiter
	}
	return limiter
}

// RateLimit limits requests per IP address. With a redis client the
// limit is a shared fixed-window counter, so it holds across stateless
// instances; without one each process falls back to local limiters.
func RateLimit(redisClient *redis.Client, requestsPerMin int) gin.HandlerFunc {
	if requestsPerMin <= 0 {
		requestsPerMin = 100
	}
	store := &rateLimiterStore{
		limiters: make(map[string]*rate.Limiter),
		perMin:   requestsPerMin,
	}

	return func(c *gin.Context) {
		logger := utils.GetLogger()
		ip := getClientIP(c)

		allowed := true
		if redisClient != nil {
			window := time.Now().Unix() / 60
			key := fmt.Sprintf("ratelimit:%s:%d", ip, window)
			count, err := redisClient.Incr(c.Request.Context(), key).Result()
			if err != nil {
				// Redis down: fail open rather than blocking traffic.
				logger.Warn("Rate limiter redis error", zap.Error(err))
			} else {
				if count == 1 {
					redisClient.Expire(c.Request.Context(), key, time.Minute)
				}
				allowed = count <= int64(requestsPerMin)
			}
		} else {
			allowed = store.getLimiter(ip).Allow()
		}

		if !allowed {
			logger.Warn("Rate limit exceeded", zap.String("ip", ip))
			utils.JSONError(c, http.StatusTooManyRequests, "Rate limit exceeded. Try again later.")
			return
		}
		c.Next()
	}
}
