package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	limit "github.com/yangxikun/gin-limit-by-key"
	"golang.org/x/time/rate"
)

// Default limits. A whole classroom usually shares one address, so logins get
// a roomy per-address bucket and submissions are limited per student.
const (
	DefaultSubmitRate  = 2.0
	DefaultSubmitBurst = 10
	DefaultLoginRate   = 10.0
	DefaultLoginBurst  = 60
)

// RateLimitBy throttles each key independently. A limiter idle for an hour is
// dropped. perSecond <= 0 disables the limit.
func RateLimitBy(key func(*gin.Context) string, perSecond float64, burst int, message string) gin.HandlerFunc {
	if perSecond <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if burst < 1 {
		burst = 1
	}
	return limit.NewRateLimiter(
		key,
		func(c *gin.Context) (*rate.Limiter, time.Duration) {
			return rate.NewLimiter(rate.Limit(perSecond), burst), time.Hour
		},
		func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": message})
		},
	)
}

func RateLimitByIP(perSecond float64, burst int) gin.HandlerFunc {
	return RateLimitBy(func(c *gin.Context) string {
		return c.ClientIP()
	}, perSecond, burst, "Too many login attempts, slow down")
}

// RateLimitByStudent must run after AuthMiddleware. Requests without a session
// name fall back to the client address.
func RateLimitByStudent(perSecond float64, burst int) gin.HandlerFunc {
	return RateLimitBy(func(c *gin.Context) string {
		if name := strings.ToLower(strings.TrimSpace(c.GetString(ContextName))); name != "" {
			return "student:" + name
		}
		return "ip:" + c.ClientIP()
	}, perSecond, burst, "Too many submissions, slow down")
}
