package employee

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
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware(), middleware.ResolveCaller(resolver))
	{
		employees.GET("", middleware.Authorize(policy, access.ResourceEmployee, access.ActionRead), handler.GetAll)
		employees.GET("/:id", middleware.Authorize(policy, access.ResourceEmployee, access.ActionRead), handler.GetById)
		employees.POST("", middleware.Authorize(policy, access.ResourceEmployee, access.ActionCreate), handler.Create)
		employees.PUT("/:id", middleware.Authorize(policy, access.ResourceEmployee, access.ActionUpdate), handler.Update)
		employees.DELETE("/:id", middleware.Authorize(policy, access.ResourceEmployee, access.ActionDelete), handler.Delete)
	}
}
