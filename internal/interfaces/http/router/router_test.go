package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/plantlease/backend/internal/interfaces/http/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type pingRegistrar struct{}

func (pingRegistrar) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)
	r.Register(pingRegistrar{})
	r.Setup()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestRouterWithAPIVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))
	r.Register(pingRegistrar{})
	r.Setup()

	req := httptest.NewRequest(http.MethodGet, "/api/v2/ping", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func registeredRoutes(engine *gin.Engine) map[string]bool {
	routes := make(map[string]bool)
	for _, route := range engine.Routes() {
		routes[route.Method+" "+route.Path] = true
	}
	return routes
}

func TestBillingRoutes(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)
	r.Register(NewBillingRoutes(handler.NewPaymentHandler(nil)))
	r.Setup()

	routes := registeredRoutes(engine)
	for _, want := range []string{
		"POST /api/v1/invoices",
		"GET /api/v1/invoices/:id",
		"GET /api/v1/invoices/:id/balance",
		"POST /api/v1/invoices/:id/send",
		"POST /api/v1/invoices/:id/cancel",
		"GET /api/v1/invoices/:id/payments",
		"POST /api/v1/invoices/:id/payments",
		"PATCH /api/v1/payments/:id",
		"DELETE /api/v1/payments/:id",
		"POST /api/v1/payments/:id/verify",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}
}

func TestLeasingRoutes(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)
	r.Register(NewLeasingRoutes(handler.NewContractHandler(nil)))
	r.Setup()

	routes := registeredRoutes(engine)
	for _, want := range []string{
		"POST /api/v1/contracts",
		"GET /api/v1/contracts/:id",
		"POST /api/v1/contracts/:id/activate",
		"POST /api/v1/contracts/:id/cancel",
		"GET /api/v1/contracts/:id/plants",
		"POST /api/v1/plants/:id/return",
		"POST /api/v1/plants/:id/replace",
		"GET /api/v1/stock/:id",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}
}
