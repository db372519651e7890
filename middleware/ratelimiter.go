package middleware

import (
	"net/http"
	"time"

	"github.com/didip/tollbooth"
	"github.com/didip/tollbooth/limiter"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimitMiddleware allows maxRequests per client IP per minute.
func RateLimitMiddleware(maxRequests float64, logger *zap.Logger) gin.HandlerFunc {
	perSecond := maxRequests / 60.0
	lmt := tollbooth.NewLimiter(perSecond, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Minute})

	lmt.SetIPLookups([]string{"RemoteAddr", "X-Forwarded-For", "X-Real-IP"})

	return func(c *gin.Context) {
		httpError := tollbooth.LimitByRequest(lmt, c.Writer, c.Request)
		if httpError != nil {
			logger.Info("rate limited", zap.String("ip", c.ClientIP()), zap.String("path", c.FullPath()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, Message{
				Status: "Request Failed",
				Body:   "Too many submissions, try again later.",
			})
			return
		}
		c.Next()
	}
}

type Message struct {
	Status string `json:"status"`
	Body   string `json:"body"`
}
