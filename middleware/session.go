package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionCookie = "sid"
	sessionKey    = "sid"
)

// SessionMiddleware makes sure every request carries a browser session id,
// issuing a fresh cookie when the request has none or a malformed one.
func SessionMiddleware(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookie)
		if err != nil || uuid.Validate(sid) != nil {
			sid = uuid.NewString()
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     SessionCookie,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				Secure:   secure,
				SameSite: http.SameSiteLaxMode,
			})
		}
		c.Set(sessionKey, sid)
		c.Next()
	}
}

// SessionID returns the id installed by SessionMiddleware.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
