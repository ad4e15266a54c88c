package handler

import (
	usermodels "komakresan-backend/internal/apps/user/models"
	"komakresan-backend/internal/common/middleware"
	"komakresan-backend/pkg/token"

	"github.com/gin-gonic/gin"
)

// RegisterIndustryRoutes registers all industry catalog routes. Reads are
// public, mutations are restricted to admins.
func RegisterIndustryRoutes(rg *gin.RouterGroup, h *IndustryHandler, maker *token.Maker) {
	industries := rg.Group("/industries")
	{
		industries.GET("", h.ListIndustries)
		industries.GET("/categories", h.ListCategories)
		industries.GET("/:slug", h.GetIndustry)

		admin := industries.Group("", middleware.RequireUserType(maker, string(usermodels.UserTypeAdmin)))
		{
			admin.POST("", h.CreateIndustry)
			admin.POST("/categories", h.CreateCategory)
			admin.PATCH("/:id", h.UpdateIndustry)
			admin.DELETE("/:id", h.DeleteIndustry)
		}
	}
}
