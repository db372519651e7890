package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DomainWhitelistMiddleware rejects requests whose Host is not listed. An
// empty list allows every host.
func DomainWhitelistMiddleware(allowedDomains []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(allowedDomains) == 0 {
			c.Next()
			return
		}
		host := c.Request.Host
		if h, _, err := net.SplitHostPort(host); err == nil {
			host = h
		}
		allowed := false
		for _, domain := range allowedDomains {
			if strings.EqualFold(strings.TrimSpace(domain), host) {
				allowed = true
				break
			}
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status":  http.StatusForbidden,
				"message": "Permission denied",
			})
			return
		}

		c.Next()
	}
}
