package middlewares

import (
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type limiterStore struct {
	mu       sync.Mutex
	limiters map[uint]*rate.Limiter
	limit    rate.Limit
	burst    int
	counter  atomic.Int64
}

func newLimiterStore(rpm, burst int) *limiterStore {
	return &limiterStore{
		limiters: make(map[uint]*rate.Limiter),
		limit:    rate.Limit(float64(rpm) / 60),
		burst:    burst,
	}
}

func (s *limiterStore) get(userID uint) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.limiters[userID]
	if !ok {
		l = rate.NewLimiter(s.limit, s.burst)
		s.limiters[userID] = l
	}

	// Every 1000 lookups, evict idle users to keep the map bounded.
	if s.counter.Add(1)%1000 == 0 {
		for id, entry := range s.limiters {
			if entry.Tokens() >= float64(s.burst) && id != userID {
				delete(s.limiters, id)
			}
		}
	}
	return l
}

// RateLimitMiddleware enforces a per-user token bucket, used on the AI
// endpoints where every request costs upstream money. rpm <= 0 disables it.
func RateLimitMiddleware(rpm int) gin.HandlerFunc {
	if rpm <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	burst := rpm
	if burst < 1 {
		burst = 1
	}
	store := newLimiterStore(rpm, burst)

	return func(c *gin.Context) {
		userID := c.GetUint("userID")
		if !store.get(userID).Allow() {
			c.Header("Retry-After", strconv.Itoa(60/rpm+1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
