package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ipLimiter 按客户端 IP 限流，长时间未访问的条目会被清理
type ipLimiter struct {
	mu       sync.Mutex
	limiters map[string]*visitor
	rate     rate.Limit
	burst    int
	idle     time.Duration
	lastGC   time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(r float64, burst int) *ipLimiter {
	return &ipLimiter{
		limiters: make(map[string]*visitor),
		rate:     rate.Limit(r),
		burst:    burst,
		idle:     10 * time.Minute,
	}
}

func (l *ipLimiter) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastGC) > l.idle {
		for key, v := range l.limiters {
			if now.Sub(v.lastSeen) > l.idle {
				delete(l.limiters, key)
			}
		}
		l.lastGC = now
	}

	v, ok := l.limiters[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// RateLimit 超出限制时返回 429
func RateLimit(perSecond float64, burst int) gin.HandlerFunc {
	limiter := newIPLimiter(perSecond, burst)
	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP(), time.Now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "Too many requests.",
				"payload": nil,
			})
			return
		}
		c.Next()
	}
}
