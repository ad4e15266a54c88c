package handler

import (
	usermodels "komakresan-backend/internal/apps/user/models"
	"komakresan-backend/internal/common/middleware"
	"komakresan-backend/pkg/token"

	"github.com/gin-gonic/gin"
)

// RegisterPaymentRoutes registers all payment routes. The webhook stays
// unauthenticated, the gateway signs its calls instead.
func RegisterPaymentRoutes(rg *gin.RouterGroup, h *PaymentHandler, maker *token.Maker) {
	payments := rg.Group("/payments")
	{
		payments.POST("/webhook", h.Webhook)
		payments.POST("/verify", h.Verify)

		authed := payments.Group("", middleware.RequireAuth(maker))
		{
			authed.POST("/order", h.CreateOrder)
			authed.GET("/invoice/:id", h.ListForInvoice)
		}

		admin := payments.Group("", middleware.RequireUserType(maker, string(usermodels.UserTypeAdmin)))
		{
			admin.PUT("/gateway-config", h.UpsertGatewayConfig)
		}
	}
}
