// Package api exposes the application over a JSON HTTP surface.
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"splitpay/internal/service"
)

// Router builds the gin engine with all routes registered.
func Router(mode string, h *Handler) *gin.Engine {
	gin.SetMode(mode)

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(), CORS())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		v1.GET("/groups", h.ListGroups)
		v1.GET("/groups/:id", h.GetGroup)
		v1.GET("/groups/:id/balances", h.GroupBalances)
		v1.GET("/groups/:id/balance", h.MemberBalance)
		v1.GET("/groups/:id/expenses", h.ListGroupExpenses)

		v1.POST("/expenses", h.CreateExpense)
		v1.GET("/expenses/:id", h.GetExpense)
		v1.GET("/expenses/:id/settlements", h.ListExpenseSettlements)

		v1.POST("/settlements", h.CreateSettlement)
		v1.GET("/settlements/:id", h.GetSettlement)
		v1.POST("/settlements/:id/execute", h.ExecuteSettlement)

		v1.GET("/users/:id", h.GetUser)
		v1.GET("/wallet/balance", h.WalletBalance)
	}

	return r
}

// Handler bundles the services the routes dispatch to.
type Handler struct {
	groups      *service.GroupService
	expenses    *service.ExpenseService
	settlements *service.SettlementService
}

// NewHandler creates a Handler over the given services.
func NewHandler(groups *service.GroupService, expenses *service.ExpenseService, settlements *service.SettlementService) *Handler {
	return &Handler{groups: groups, expenses: expenses, settlements: settlements}
}
