package handler

import (
	usermodels "komakresan-backend/internal/apps/user/models"
	"komakresan-backend/internal/common/middleware"
	"komakresan-backend/pkg/token"

	"github.com/gin-gonic/gin"
)

// RegisterCompanyRoutes registers all company routes
func RegisterCompanyRoutes(rg *gin.RouterGroup, h *CompanyHandler, maker *token.Maker) {
	companies := rg.Group("/companies")
	{
		companies.GET("", middleware.OptionalAuth(maker), h.List)
		companies.GET("/:slug", h.GetBySlug)

		authed := companies.Group("", middleware.RequireAuth(maker))
		{
			authed.GET("/mine", h.ListMine)
			authed.PATCH("/:id", h.Update)
			authed.DELETE("/:id", h.Delete)
		}

		owners := companies.Group("", middleware.RequireUserType(maker,
			string(usermodels.UserTypeOwner), string(usermodels.UserTypeAdmin)))
		{
			owners.POST("", h.Create)
		}

		admin := companies.Group("", middleware.RequireUserType(maker, string(usermodels.UserTypeAdmin)))
		{
			admin.PATCH("/:id/validate", h.Validate)
		}
	}
}
