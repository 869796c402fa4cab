package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))

	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterRegister(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	group := NewDomainGroup("cart", "/cart")
	r.Register(group)

	assert.Len(t, r.registrars, 1)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v1"))

	group := NewDomainGroup("cart", "/cart")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	r.Register(group)
	r.Setup()

	req := httptest.NewRequest("GET", "/api/v1/cart/ping", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestRouterUse(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	r.Use(func(c *gin.Context) {
		c.Header("X-Test", "applied")
		c.Next()
	})

	group := NewDomainGroup("rates", "/exchange-rates")
	group.GET("", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	r.Register(group).Setup()

	req := httptest.NewRequest("GET", "/api/v1/exchange-rates", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "applied", w.Header().Get("X-Test"))
}

func TestDomainGroupMethods(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	handled := func(c *gin.Context) { c.Status(http.StatusOK) }

	group := NewDomainGroup("carts", "/carts")
	group.GET("/:key", handled)
	group.POST("/:key/items", handled)
	group.PATCH("/:key/items/:variant_id", handled)
	group.DELETE("/:key", handled)

	r.Register(group).Setup()

	for _, tc := range []struct {
		method string
		path   string
	}{
		{"GET", "/api/v1/carts/abc"},
		{"POST", "/api/v1/carts/abc/items"},
		{"PATCH", "/api/v1/carts/abc/items/var-1"},
		{"DELETE", "/api/v1/carts/abc"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestDomainGroupMiddleware(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	group := NewDomainGroup("checkout", "/checkout")
	group.Use(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusTeapot)
	})
	group.POST("", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	r.Register(group).Setup()

	req := httptest.NewRequest("POST", "/api/v1/checkout", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestDomainGroupAccessors(t *testing.T) {
	group := NewDomainGroup("cart", "/cart")
	assert.Equal(t, "cart", group.Name())
	assert.Equal(t, "/cart", group.Prefix())
}
