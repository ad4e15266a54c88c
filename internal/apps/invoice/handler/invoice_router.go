package handler

import (
	"komakresan-backend/internal/common/middleware"
	"komakresan-backend/pkg/token"

	"github.com/gin-gonic/gin"
)

// RegisterInvoiceRoutes registers all invoice routes
func RegisterInvoiceRoutes(rg *gin.RouterGroup, h *InvoiceHandler, maker *token.Maker) {
	invoices := rg.Group("/invoices", middleware.RequireAuth(maker))
	{
		invoices.GET("/:id", h.Get)
		invoices.GET("/company/:id", h.ListForCompany)
	}
}
