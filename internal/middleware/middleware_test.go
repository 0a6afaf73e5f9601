package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	"github.com/BruksfildServices01/barbershop-booking/internal/tenant"
)

const secret = "test-secret"

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func newRouter(seen *tenant.Caller) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware(&config.Config{JWTSecret: secret}))
	r.GET("/who", func(c *gin.Context) {
		caller, err := tenant.Resolve(TenantContext(c))
		if err != nil {
			c.Status(http.StatusTeapot)
			return
		}
		*seen = caller
		c.Status(http.StatusOK)
	})
	return r
}

func get(r http.Handler, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareResolvesTenant(t *testing.T) {
	var seen tenant.Caller
	r := newRouter(&seen)

	tok := sign(t, jwt.MapClaims{
		"sub":          3,
		"barbershopId": 7,
		"role":         "owner",
		"exp":          time.Now().Add(time.Hour).Unix(),
	})

	w := get(r, "Bearer "+tok)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, tenant.Caller{ShopID: 7, UserID: 3, Role: tenant.RoleOwner}, seen)
}

func TestAuthMiddlewareRejects(t *testing.T) {
	var seen tenant.Caller
	r := newRouter(&seen)

	expired := sign(t, jwt.MapClaims{
		"sub": 3, "barbershopId": 7, "role": "owner",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	unknownRole := sign(t, jwt.MapClaims{"sub": 3, "barbershopId": 7, "role": "admin"})
	noShop := sign(t, jwt.MapClaims{"sub": 3, "role": "barber"})
	other, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": 3, "barbershopId": 7, "role": "owner",
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	for name, header := range map[string]string{
		"missing":      "",
		"not bearer":   "Basic abc",
		"garbage":      "Bearer abc.def.ghi",
		"expired":      "Bearer " + expired,
		"unknown role": "Bearer " + unknownRole,
		"no shop":      "Bearer " + noShop,
		"wrong key":    "Bearer " + other,
	} {
		w := get(r, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, name)
	}
}

func TestTenantContextWithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := TenantContext(c).CurrentShopID()
	assert.False(t, ok)
	assert.Equal(t, tenant.Role(""), TenantContext(c).CurrentRole())
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.example.com"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusConflict) })

	for _, path := range []string{"/ok", "/bad"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, "/bad", entries[1].ContextMap()["path"])
}
