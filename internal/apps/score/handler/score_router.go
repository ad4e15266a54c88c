package handler

import (
	"komakresan-backend/internal/common/middleware"
	"komakresan-backend/pkg/token"

	"github.com/gin-gonic/gin"
)

// RegisterScoreRoutes registers all service score routes
func RegisterScoreRoutes(rg *gin.RouterGroup, h *ScoreHandler, maker *token.Maker) {
	scores := rg.Group("/scores")
	{
		scores.GET("/request/:id", h.GetForRequest)
		scores.GET("/company/:id", h.CompanySummary)
		scores.POST("", middleware.RequireAuth(maker), h.Submit)
	}
}
