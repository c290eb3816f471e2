package profile

import (
	"go-worksuite/internal/access"
	"go-worksuite/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	resolver middleware.CallerResolver,
	policy access.Enforcer,
) {
	// the completion step runs before a profile exists, so it only needs a
	// valid session
	r.POST("/profile/complete", middleware.AuthMiddleware(), handler.Complete)

	profiles := r.Group("/profiles")
	profiles.Use(middleware.AuthMiddleware(), middleware.ResolveCaller(resolver))
	{
		profiles.GET("/me", handler.GetMine)
		profiles.GET("", middleware.RequireRole(access.RoleAdmin, access.RoleHR), handler.GetAll)
		profiles.GET("/:id", middleware.RequireRole(access.RoleAdmin, access.RoleHR), handler.GetByID)
		profiles.PATCH("/:id/role", middleware.RequireRole(access.RoleAdmin), handler.UpdateRole)
	}
}
