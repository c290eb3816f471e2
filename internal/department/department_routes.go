package department

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
	departments := r.Group("/departments")
	departments.Use(middleware.AuthMiddleware(), middleware.ResolveCaller(resolver))
	{
		departments.GET("", middleware.Authorize(policy, access.ResourceEmployee, access.ActionRead), handler.GetAll)
		departments.GET("/:id", middleware.Authorize(policy, access.ResourceEmployee, access.ActionRead), handler.GetById)
		departments.POST("", middleware.Authorize(policy, access.ResourceEmployee, access.ActionCreate), handler.Create)
		departments.PUT("/:id", middleware.Authorize(policy, access.ResourceEmployee, access.ActionUpdate), handler.Update)
		departments.DELETE("/:id", middleware.Authorize(policy, access.ResourceEmployee, access.ActionDelete), handler.Delete)
	}
}
