package project

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
	projects := r.Group("/projects")
	projects.Use(middleware.AuthMiddleware(), middleware.ResolveCaller(resolver))
	{
		projects.GET("", middleware.Authorize(policy, access.ResourceProject, access.ActionRead), handler.GetAll)
		projects.GET("/:id", middleware.Authorize(policy, access.ResourceProject, access.ActionRead), handler.GetById)
		projects.POST("", middleware.Authorize(policy, access.ResourceProject, access.ActionCreate), handler.Create)
		projects.PUT("/:id", middleware.Authorize(policy, access.ResourceProject, access.ActionUpdate), handler.Update)
		projects.PATCH("/:id/status", middleware.Authorize(policy, access.ResourceProject, access.ActionUpdate), handler.UpdateStatus)
		projects.DELETE("/:id", middleware.Authorize(policy, access.ResourceProject, access.ActionDelete), handler.Delete)

		projects.POST("/:id/members", middleware.Authorize(policy, access.ResourceProject, access.ActionUpdate), handler.AddMember)
		projects.DELETE("/:id/members/:userId", middleware.Authorize(policy, access.ResourceProject, access.ActionUpdate), handler.RemoveMember)
	}
}
