package router

import (
	"github.com/gin-gonic/gin"
	"github.com/plantlease/backend/internal/interfaces/http/handler"
)

// RouteRegistrar registers a set of routes on a versioned API group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// BillingRoutes registers the invoice and payment ledger endpoints
type BillingRoutes struct {
	handler *handler.PaymentHandler
}

// NewBillingRoutes creates the billing route registrar
func NewBillingRoutes(h *handler.PaymentHandler) *BillingRoutes {
	return &BillingRoutes{handler: h}
}

// RegisterRoutes implements RouteRegistrar
func (r *BillingRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	{
		invoices.POST("", r.handler.CreateInvoice)
		invoices.GET("/:id", r.handler.GetInvoice)
		invoices.GET("/:id/balance", r.handler.GetInvoiceBalance)
		invoices.POST("/:id/send", r.handler.SendInvoice)
		invoices.POST("/:id/cancel", r.handler.CancelInvoice)
		invoices.GET("/:id/payments", r.handler.ListPayments)
		invoices.POST("/:id/payments", r.handler.RecordPayment)
	}

	payments := rg.Group("/payments")
	{
		payments.PATCH("/:id", r.handler.UpdatePayment)
		payments.DELETE("/:id", r.handler.DeletePayment)
		payments.POST("/:id/verify", r.handler.VerifyPayment)
	}
}

// LeasingRoutes registers the contract, plant and stock endpoints
type LeasingRoutes struct {
	handler *handler.ContractHandler
}

// NewLeasingRoutes creates the leasing route registrar
func NewLeasingRoutes(h *handler.ContractHandler) *LeasingRoutes {
	return &LeasingRoutes{handler: h}
}

// RegisterRoutes implements RouteRegistrar
func (r *LeasingRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	contracts := rg.Group("/contracts")
	{
		contracts.POST("", r.handler.CreateContract)
		contracts.GET("/:id", r.handler.GetContract)
		contracts.POST("/:id/activate", r.handler.ActivateContract)
		contracts.POST("/:id/cancel", r.handler.CancelContract)
		contracts.GET("/:id/plants", r.handler.ListContractPlants)
	}

	plants := rg.Group("/plants")
	{
		plants.POST("/:id/return", r.handler.ReturnPlant)
		plants.POST("/:id/replace", r.handler.ReplacePlant)
	}

	rg.GET("/stock/:id", r.handler.GetStock)
}
