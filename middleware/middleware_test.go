package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestDomainWhitelist(t *testing.T) {
	r := gin.New()
	r.Use(DomainWhitelistMiddleware([]string{"thebestschool.edu.pl"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		host string
		want int
	}{
		{"thebestschool.edu.pl", http.StatusOK},
		{"TheBestSchool.edu.pl:8080", http.StatusOK},
		{"evil.example", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Host = tt.host
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestDomainWhitelistEmptyAllowsAll(t *testing.T) {
	r := gin.New()
	r.Use(DomainWhitelistMiddleware(nil))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "anything.example"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionMiddlewareIssuesCookie(t *testing.T) {
	var seen string
	r := gin.New()
	r.Use(SessionMiddleware(false))
	r.GET("/", func(c *gin.Context) {
		seen = SessionID(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, seen, cookies[0].Value)
	assert.NoError(t, uuid.Validate(seen))
}

func TestSessionMiddlewareKeepsValidCookie(t *testing.T) {
	var seen string
	r := gin.New()
	r.Use(SessionMiddleware(false))
	r.GET("/", func(c *gin.Context) {
		seen = SessionID(c)
		c.Status(http.StatusOK)
	})

	sid := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: sid})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, sid, seen)
	assert.Empty(t, w.Result().Cookies())
}

func TestSessionMiddlewareReplacesGarbageCookie(t *testing.T) {
	var seen string
	r := gin.New()
	r.Use(SessionMiddleware(false))
	r.GET("/", func(c *gin.Context) {
		seen = SessionID(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "../../etc"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.NotEqual(t, "../../etc", seen)
	assert.NoError(t, uuid.Validate(seen))
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.POST("/", RateLimitMiddleware(1, zap.NewNop()), func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusTooManyRequests, send())
}

func TestAccessLogPassesThrough(t *testing.T) {
	r := gin.New()
	r.Use(AccessLogMiddleware(zap.NewNop()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}
