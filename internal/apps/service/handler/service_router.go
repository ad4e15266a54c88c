package handler

import (
	"komakresan-backend/internal/common/middleware"
	"komakresan-backend/pkg/token"

	"github.com/gin-gonic/gin"
)

// RegisterServiceRoutes registers the service catalog and service request
// routes
func RegisterServiceRoutes(rg *gin.RouterGroup, h *ServiceHandler, maker *token.Maker) {
	services := rg.Group("/services")
	{
		services.GET("", h.List)
		services.GET("/:slug", h.GetBySlug)

		authed := services.Group("", middleware.RequireAuth(maker))
		{
			authed.POST("", h.Publish)
			authed.PATCH("/:id", h.Update)
			authed.DELETE("/:id", h.Delete)
		}
	}

	requests := rg.Group("/requests", middleware.RequireAuth(maker))
	{
		requests.POST("", h.PlaceRequest)
		requests.GET("/mine", h.ListMyRequests)
		requests.GET("/company/:id", h.ListCompanyRequests)
		requests.PATCH("/:id/accept", h.AcceptRequest)
		requests.PATCH("/:id/complete", h.CompleteRequest)
		requests.PATCH("/:id/cancel", h.CancelRequest)
	}
}
