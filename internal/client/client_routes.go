package client

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
	companies := r.Group("/client-companies")
	companies.Use(middleware.AuthMiddleware(), middleware.ResolveCaller(resolver))
	{
		companies.GET("", middleware.Authorize(policy, access.ResourceClient, access.ActionRead), handler.GetAll)
		companies.GET("/:id", middleware.Authorize(policy, access.ResourceClient, access.ActionRead), handler.GetById)
		companies.POST("", middleware.Authorize(policy, access.ResourceClient, access.ActionCreate), handler.Create)
		companies.PUT("/:id", middleware.Authorize(policy, access.ResourceClient, access.ActionUpdate), handler.Update)
		companies.DELETE("/:id", middleware.Authorize(policy, access.ResourceClient, access.ActionDelete), handler.Delete)
	}
}
