package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"checkinly-backend/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRecoveryAnswersJSON(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(), Logger())
	r.GET("/boom", func(*gin.Context) { panic("kaboom") })

	w := serve(r, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"status":"error","message":"Something went wrong. Please try again."}`, w.Body.String())
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"":                 "",
		"Bearer abc":       "abc",
		"bearer  abc ":     "abc",
		"Basic dXNlcjpw":   "",
		"Bearer":           "",
		"BEARER token.x.y": "token.x.y",
	}
	for header, want := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			c.Request.Header.Set("Authorization", header)
		}
		assert.Equal(t, want, BearerToken(c), "header %q", header)
	}
}

func TestRequireRole(t *testing.T) {
	r := gin.New()
	r.GET("/admin", func(c *gin.Context) {
		c.Set(KeyRole, c.Query("role"))
		c.Next()
	}, RequireRole("admin", "manager"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodGet, "/admin?role=manager", nil).Code)
	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/admin?role=housekeeping", nil).Code)
	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/admin", nil).Code)
}

func TestRateLimitWithoutRedisPassesThrough(t *testing.T) {
	r := gin.New()
	r.POST("/signin", RateLimit(config.RateLimitConfig{Enabled: true, Capacity: 1}, nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/signin", nil).Code)
	}
}

func TestRateKey(t *testing.T) {
	r := gin.New()
	var key string
	r.POST("/api/auth/signin", func(c *gin.Context) {
		key = rateKey("rl", c)
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signin", nil)
	req.RemoteAddr = "203.0.113.9:5555"
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "rl:ip:203.0.113.9:route:POST /api/auth/signin", key)
}
